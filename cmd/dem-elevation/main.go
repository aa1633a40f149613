package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/twpayne/go-dem"
)

func run() error {
	dir := flag.String("dir", os.Getenv("DEM_PATH"), "directory containing .dem and .dem.rsc files")
	crs := flag.String("crs", "", "CRS of x and y, default longitude and latitude")
	verbose := flag.Bool("v", false, "verbose")
	flag.Parse()

	if flag.NArg() != 3 {
		return errors.New("syntax: dem-elevation name x y")
	}
	name := flag.Arg(0)
	x, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(flag.Arg(2), 64)
	if err != nil {
		return err
	}

	logger := logrus.StandardLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *dir == "" {
		*dir = "."
	}
	gridSet, err := dem.NewGridSet(
		dem.WithFS(os.DirFS(*dir)),
		dem.WithCacheSize(1),
		dem.WithGridSetLogger(logger),
	)
	if err != nil {
		return err
	}

	var options []dem.ElevationServiceOption
	if *crs != "" {
		options = append(options, dem.WithCRS(*crs))
	}
	es, err := dem.NewElevationService(gridSet, name, options...)
	if err != nil {
		return err
	}

	elevations, err := es.Elevation(context.Background(), [][]float64{{x, y}})
	if err != nil {
		return err
	}
	fmt.Println(elevations[0])

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
