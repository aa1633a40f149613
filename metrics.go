package dem

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	samplesRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_samples_read_total",
		Help: "The total number of samples read from .dem files",
	})
	samplesInterpolated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_samples_interpolated_total",
		Help: "The total number of samples produced by upsampling",
	})
	samplesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_samples_written_total",
		Help: "The total number of samples written to .dem files",
	})
	missingGridCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_missing_grid_cache_hits_total",
		Help: "The total number of hits on the missing grid cache",
	})
	missingGridCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_missing_grid_cache_misses_total",
		Help: "The total number of misses on the missing grid cache",
	})
	gridCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_grid_cache_hits_total",
		Help: "The total number of hits on the grid cache",
	})
	gridCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_grid_cache_misses_total",
		Help: "The total number of misses on the grid cache",
	})
	gridCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_grid_cache_evictions_total",
		Help: "The total number of evictions from the grid cache",
	})
)
