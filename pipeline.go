package dem

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"
)

// A Job describes the upsampling of one .dem file.
type Job struct {
	Input  string
	Rows   int
	Cols   int
	XRate  int
	YRate  int
	Output string
}

type jobOptions struct {
	logger     logrus.FieldLogger
	maxSamples int
	rsc        bool
}

// A JobOption sets an option on a Job run.
type JobOption func(*jobOptions)

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) JobOption {
	return func(o *jobOptions) {
		o.logger = logger
	}
}

// WithMaxSamples sets the maximum number of samples in any grid. Larger grids
// fail with ErrOutOfMemory before they are allocated.
func WithMaxSamples(maxSamples int) JobOption {
	return func(o *jobOptions) {
		o.maxSamples = maxSamples
	}
}

// WithRSC sets whether the input's .dem.rsc file, if present, is checked
// against the job's dimensions and an upsampled .dem.rsc is written next to
// the output.
func WithRSC(rsc bool) JobOption {
	return func(o *jobOptions) {
		o.rsc = rsc
	}
}

// UpsampleFile loads job.Input, upsamples it, and writes the result to
// job.Output. Errors identify the stage and file that failed. No output is
// written unless every stage succeeds.
func UpsampleFile(job Job, options ...JobOption) error {
	o := jobOptions{
		logger:     discardLogger(),
		maxSamples: defaultMaxSamples,
	}
	for _, option := range options {
		option(&o)
	}

	if job.XRate < 1 || job.YRate < 1 {
		return fmt.Errorf("upsample: %w: rate (%d, %d) must be positive", ErrInvalidArgument, job.XRate, job.YRate)
	}

	var rsc *RSC
	if o.rsc {
		switch loadedRSC, err := LoadRSC(job.Input); {
		case errors.Is(err, fs.ErrNotExist):
			o.logger.WithField("path", RSCFilename(job.Input)).Warn("no rsc file")
		case err != nil:
			return fmt.Errorf("load rsc: %w", err)
		default:
			if err := checkRSC(loadedRSC, job.Rows, job.Cols); err != nil {
				return fmt.Errorf("load rsc %s: %w", RSCFilename(job.Input), err)
			}
			rsc = loadedRSC
		}
	}

	o.logger.WithFields(logrus.Fields{
		"path": job.Input,
		"rows": job.Rows,
		"cols": job.Cols,
	}).Info("reading")
	grid, err := load(job.Input, job.Rows, job.Cols, o.maxSamples)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	o.logger.WithFields(logrus.Fields{
		"xrate": job.XRate,
		"yrate": job.YRate,
	}).Info("upsampling")
	up, err := upsample(grid, job.XRate, job.YRate, o.maxSamples)
	if err != nil {
		return fmt.Errorf("upsample: %w", err)
	}
	o.logger.WithFields(logrus.Fields{
		"rows": up.Rows(),
		"cols": up.Cols(),
	}).Info("upsampled")

	// Write errors already carry the "write" stage and the output path.
	if err := Write(job.Output, up); err != nil {
		return err
	}
	o.logger.WithField("path", job.Output).Info("wrote")

	if rsc != nil {
		rscPath := RSCFilename(job.Output)
		if err := WriteRSC(rscPath, rsc.Upsampled(job.XRate, job.YRate)); err != nil {
			return err
		}
		o.logger.WithField("path", rscPath).Info("wrote")
	}

	return nil
}
