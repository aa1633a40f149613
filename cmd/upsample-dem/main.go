package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/twpayne/go-dem"
)

const defaultOutput = "elevation.dem"

var validOutputExts = map[string]bool{
	".dem": true,
	".wbd": true,
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), ""+
		"Usage: upsample-dem [flags] filename rate ncols nrows [outfilename]\n"+
		"Rate must be a positive integer.\n"+
		"ncols = width of DEM, nrows = height.\n"+
		"outfilename must have a .dem or .wbd extension, default %s.\n"+
		"Flags:\n", defaultOutput)
	flag.PrintDefaults()
}

func positiveInt(name, arg string) (int, error) {
	value, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s: %w: must be positive, got %d", name, dem.ErrInvalidArgument, value)
	}
	return value, nil
}

func run(logger *logrus.Logger) error {
	yRate := flag.Int("yrate", 0, "rate in the y (row) direction, default rate")
	rsc := flag.Bool("rsc", false, "check the input's .dem.rsc and write an upsampled .dem.rsc")
	maxSamples := flag.Int("max-samples", 0, "maximum samples in any grid, default unlimited up to 2^31-1")
	metricsFile := flag.String("metrics-file", os.Getenv("DEM_METRICS_FILE"), "write Prometheus metrics to file")
	verbose := flag.Bool("v", false, "verbose")
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() < 4 || flag.NArg() > 5 {
		flag.Usage()
		return errors.New("wrong number of arguments")
	}
	job := dem.Job{
		Input:  flag.Arg(0),
		Output: defaultOutput,
	}
	var err error
	if job.XRate, err = positiveInt("rate", flag.Arg(1)); err != nil {
		return err
	}
	if job.Cols, err = positiveInt("ncols", flag.Arg(2)); err != nil {
		return err
	}
	if job.Rows, err = positiveInt("nrows", flag.Arg(3)); err != nil {
		return err
	}
	switch {
	case *yRate < 0:
		return fmt.Errorf("yrate: %w: must be positive, got %d", dem.ErrInvalidArgument, *yRate)
	case *yRate == 0:
		job.YRate = job.XRate
	default:
		job.YRate = *yRate
	}
	if flag.NArg() == 5 {
		job.Output = flag.Arg(4)
		if !validOutputExts[filepath.Ext(job.Output)] {
			return fmt.Errorf("%s: %w: output filename must have a .dem or .wbd extension", job.Output, dem.ErrInvalidArgument)
		}
	} else {
		logger.WithField("path", job.Output).Info("using default output file")
	}

	options := []dem.JobOption{
		dem.WithLogger(logger),
		dem.WithRSC(*rsc),
	}
	if *maxSamples > 0 {
		options = append(options, dem.WithMaxSamples(*maxSamples))
	}
	err = dem.UpsampleFile(job, options...)

	if *metricsFile != "" {
		if metricsErr := prometheus.WriteToTextfile(*metricsFile, prometheus.DefaultGatherer); metricsErr != nil {
			err = errors.Join(err, metricsErr)
		}
	}

	return err
}

func main() {
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if err := run(logger); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
