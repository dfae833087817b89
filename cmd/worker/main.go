package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genoslab/docregress/internal/bootstrap"
	"github.com/genoslab/docregress/internal/config"
	"github.com/genoslab/docregress/internal/core/domain"
	"github.com/genoslab/docregress/internal/observability/logging"
	"github.com/genoslab/docregress/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("regress-worker", cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, queue, err := bootstrap.NewWorker(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("regress-worker")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", workerMetrics.Handler())
		server := &http.Server{
			Addr:              ":" + cfg.WorkerMetricsPort,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server", "error", err)
		}
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = queue.SubscribeSamples(ctx, func(handlerCtx context.Context, sample domain.Sample) error {
		evalCtx, cancel := context.WithTimeout(handlerCtx, 10*time.Minute)
		defer cancel()

		if !sample.EnqueuedAt.IsZero() {
			workerMetrics.ObserveQueueLag(time.Since(sample.EnqueuedAt))
		}
		workerMetrics.StartEvaluation()
		outcome, err := app.SampleUC.EvaluateSample(evalCtx, sample, domain.ModeRegression)
		workerMetrics.FinishEvaluation(outcome)
		return err
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
