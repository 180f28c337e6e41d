package main

import (
	"context"
	"flag"

	"github.com/ridelens/ridelens/pkg/corpus"
	"github.com/ridelens/ridelens/pkg/engine"
	"github.com/ridelens/ridelens/pkg/http"
	"github.com/ridelens/ridelens/pkg/http/usecases"
	"github.com/ridelens/ridelens/pkg/logger"
	"github.com/ridelens/ridelens/pkg/spatialindex"
	"github.com/ridelens/ridelens/pkg/util"
	"go.uber.org/zap"
)

var (
	corpusDir         = flag.String("corpus_dir", "./data/clips", "directory holding .clip.bz2 archives")
	boundingBoxRadius = flag.Float64("bounding_box_radius", 50.0, "leaf node (r-tree) bounding box radius in meters")
	searchRadius      = flag.Float64("search_radius", 100.0, "default nearest-sample search radius in meters")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	analysisEngine := engine.NewEngine(logger)

	clipCorpus := corpus.NewCorpus(logger)
	loaded, err := clipCorpus.LoadDir(*corpusDir)
	if err != nil {
		logger.Warn("corpus directory not loaded, starting with an empty corpus",
			zap.String("dir", *corpusDir), zap.Error(err))
	} else {
		logger.Info("corpus loaded", zap.Int("clips", loaded))
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(clipCorpus.List(), *boundingBoxRadius, logger)

	api := http.NewServer(logger)

	analyticsService := usecases.NewAnalyticsService(logger, analysisEngine)
	corpusService := usecases.NewCorpusService(logger, clipCorpus, rtree, *searchRadius)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx,
		logger, false, analyticsService, corpusService)

	signal := http.GracefulShutdown()

	logger.Info("Ridelens Analytics Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
