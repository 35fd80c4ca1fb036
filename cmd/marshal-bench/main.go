// Command marshal-bench measures batch marshaling of a large schema, sequential
// and on a worker pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"field-marshaller/internal/config"
	"field-marshaller/internal/log"
	"field-marshaller/internal/metrics"
	"field-marshaller/marshal"
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to a YAML configuration file")
		items        = flag.Int("items", 10000, "documents per batch")
		rounds       = flag.Int("rounds", 5, "batches per mode")
		workers      = flag.Int("workers", 0, "pool size for the pooled mode, 0 uses the config or GOMAXPROCS")
		invalidEvery = flag.Int("invalid-every", 0, "make every n-th document fail validation, 0 disables")
	)
	flag.Parse()

	if err := run(*configPath, *items, *rounds, *workers, *invalidEvery); err != nil {
		fmt.Fprintln(os.Stderr, "marshal-bench:", err)
		os.Exit(1)
	}
}

func run(configPath string, items, rounds, workers, invalidEvery int) error {
	cfg := config.Default()
	cfg.Log.Stdout = true

	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, props, err := log.InitLogger(&cfg.Log)
	if err != nil {
		return err
	}
	log.ReplaceGlobals(logger, props)
	defer func() { _ = logger.Sync() }()

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Info(fmt.Sprintf(format, args...))
	}))
	if err != nil {
		log.Warn("failed to set GOMAXPROCS", zap.Error(err))
	}
	defer undo()

	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		metrics.Register(registry)
	}

	if workers <= 0 {
		workers = cfg.Engine.Workers
	}
	if workers <= 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	table := largeTable()
	docs := documents(items, invalidEvery)
	opts := marshal.OptionsFromConfig(cfg)

	log.Info("marshal-bench starting",
		zap.Int("fields", len(table)),
		zap.Int("items", items),
		zap.Int("rounds", rounds),
		zap.Int("workers", workers))

	for _, mode := range []struct {
		name    string
		workers int
	}{
		{"sequential", 1},
		{"pooled", workers},
	} {
		m := marshal.New(append(opts, marshal.WithWorkers(mode.workers))...)

		elapsed, failed, err := measure(m, docs, table, rounds)
		m.Close()

		if err != nil {
			return err
		}

		perItem := elapsed / time.Duration(max(1, items*rounds))
		log.Info("marshal-bench result",
			zap.String("mode", mode.name),
			zap.Int("workers", mode.workers),
			zap.Duration("total", elapsed),
			zap.Duration("per_item", perItem),
			zap.Int64("failed_items", failed))
		fmt.Printf("%-10s workers=%-3d total=%-12s per_item=%-10s failed=%d\n", mode.name, mode.workers, elapsed, perItem, failed)
	}

	if cfg.Metrics.Enabled {
		families, err := registry.Gather()
		if err != nil {
			return err
		}

		for _, mf := range families {
			log.Debug("metric family collected", zap.String("name", mf.GetName()), zap.Int("series", len(mf.GetMetric())))
		}
	}

	return nil
}

func measure(m *marshal.Marshaller, docs []document, table marshal.Table, rounds int) (time.Duration, int64, error) {
	var failed int64
	start := time.Now()

	for range rounds {
		res, err := m.Marshal(context.Background(), docs, table, true)
		if err != nil {
			return 0, 0, err
		}

		failed += int64(len(res.Report))
	}

	return time.Since(start), failed, nil
}
