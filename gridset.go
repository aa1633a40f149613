package dem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// A GridSet is a set of georeferenced .dem files in a filesystem. Each .dem
// file must have a .dem.rsc sidecar giving its dimensions.
type GridSet struct {
	mutex        sync.Mutex
	fsys         fs.FS
	logger       logrus.FieldLogger
	cacheSize    int
	missingGrids sync.Map
	gridCache    *lru.Cache[string, *GeoGrid]
}

// A GridSetOption sets an option on a GridSet.
type GridSetOption func(*GridSet)

// NewGridSet returns a new GridSet with the given options.
func NewGridSet(options ...GridSetOption) (*GridSet, error) {
	s := &GridSet{
		cacheSize: 8,
		logger:    discardLogger(),
	}
	for _, option := range options {
		option(s)
	}
	if s.fsys == nil {
		return nil, errors.New("no filesystem")
	}

	var err error
	s.gridCache, err = lru.NewWithEvict(s.cacheSize, func(name string, _ *GeoGrid) {
		gridCacheEvictions.Inc()
		s.logger.WithField("name", name).Debug("evicted grid")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WithCacheSize sets the maximum number of grids held in memory.
func WithCacheSize(cacheSize int) GridSetOption {
	return func(s *GridSet) {
		s.cacheSize = cacheSize
	}
}

// WithFS sets the filesystem containing the .dem files.
func WithFS(fsys fs.FS) GridSetOption {
	return func(s *GridSet) {
		s.fsys = fsys
	}
}

// WithGridSetLogger sets the logger.
func WithGridSetLogger(logger logrus.FieldLogger) GridSetOption {
	return func(s *GridSet) {
		s.logger = logger
	}
}

// Grid returns the grid in the .dem file name, using the cache if possible.
// If the file does not exist, it returns nil and no error.
func (s *GridSet) Grid(ctx context.Context, name string) (*GeoGrid, error) {
	if _, ok := s.missingGrids.Load(name); ok {
		missingGridCacheHits.Inc()
		return nil, nil
	}

	if grid, ok := s.gridCache.Get(name); ok {
		gridCacheHits.Inc()
		return grid, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.missingGrids.Load(name); ok {
		missingGridCacheHits.Inc()
		return nil, nil
	}

	if grid, ok := s.gridCache.Get(name); ok {
		gridCacheHits.Inc()
		return grid, nil
	}

	gridCacheMisses.Inc()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grid, err := s.loadGrid(name)
	if err != nil {
		return nil, err
	}
	if grid == nil {
		return nil, nil
	}

	s.gridCache.Add(name, grid)

	return grid, nil
}

// loadGrid loads the grid in the .dem file name.
func (s *GridSet) loadGrid(name string) (*GeoGrid, error) {
	rsc, err := s.loadRSC(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.missingGrids.Store(name, struct{}{})
		missingGridCacheMisses.Inc()
		s.logger.WithField("name", name).Debug("missing grid")
		return nil, nil
	case err != nil:
		return nil, err
	}

	grid, err := LoadFS(s.fsys, name, rsc.FileLength, rsc.Width)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.missingGrids.Store(name, struct{}{})
		missingGridCacheMisses.Inc()
		s.logger.WithField("name", name).Debug("missing grid")
		return nil, nil
	case err != nil:
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"name": name,
		"rows": grid.Rows(),
		"cols": grid.Cols(),
	}).Debug("loaded grid")

	return NewGeoGrid(grid, rsc)
}

// loadRSC loads the .rsc file for the .dem file name.
func (s *GridSet) loadRSC(name string) (*RSC, error) {
	file, err := s.fsys.Open(RSCFilename(name))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	rsc, err := ReadRSC(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RSCFilename(name), err)
	}
	return rsc, nil
}
