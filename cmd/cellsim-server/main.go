package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/biodynlabs/cellculture-simulator/internal/api"
	"github.com/biodynlabs/cellculture-simulator/internal/logging"
	"github.com/biodynlabs/cellculture-simulator/internal/observability"
	"github.com/biodynlabs/cellculture-simulator/kb"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP address the API server listens on")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	linesPath := flag.String("cell-lines", "configs/cell_lines.json", "Path to a JSON file with extra cell line profiles")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.Err(err))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	reg := kb.NewBuiltinRegistry()
	loadCellLines(log, reg, *linesPath)

	srv := &http.Server{
		Addr:    *addr,
		Handler: api.NewServer(reg, log, collector).Handler(),
	}

	log.Info(ctx, "starting API server", logging.String("addr", *addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "API server exited", logging.Err(err))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

func serveMetrics(addr string, collector *observability.Collector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

// loadCellLines registers extra profiles from disk. A missing or unreadable
// file is logged and skipped so the built-in database still serves.
func loadCellLines(log logging.Logger, reg *kb.Registry, path string) {
	if path == "" || reg == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn(context.Background(), "skipping cell line load", logging.String("path", path), logging.Err(err))
		return
	}
	defer f.Close()

	summary, err := kb.LoadCellLines(reg, f)
	if err != nil {
		log.Warn(context.Background(), "failed to load cell lines", logging.String("path", path), logging.Err(err))
		return
	}

	log.Info(context.Background(), "loaded cell line profiles",
		logging.String("path", path),
		logging.Int("count", len(summary.LineNames)),
	)
}
