package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/genoslab/docregress/internal/bootstrap"
	"github.com/genoslab/docregress/internal/config"
	"github.com/genoslab/docregress/internal/core/domain"
	"github.com/genoslab/docregress/internal/infrastructure/queue/nats"
	"github.com/genoslab/docregress/internal/infrastructure/report/excel"
	"github.com/genoslab/docregress/internal/observability/logging"
)

const (
	exitRegression    = 1
	exitConfiguration = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	modeFlag := flag.String("mode", "", "lifecycle mode: regression (default), update-baseline or rebase")
	samplesFlag := flag.String("samples", cfg.SampleDir, "directory scanned for sample documents")
	formatsFlag := flag.String("formats", cfg.Formats, "comma-separated formats to evaluate")
	reportFlag := flag.String("report", "", "optional path for an xlsx outcome report")
	enqueueFlag := flag.Bool("enqueue", false, "publish discovered samples to the evaluation queue instead of evaluating locally")
	flag.Parse()

	logger := logging.NewJSONLogger("regress", cfg.LogLevel)

	// Mode parsing happens before any extraction or store I/O.
	mode, err := domain.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfiguration
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfiguration
	}
	defer app.Close()

	samples, err := app.Scanner.Discover(ctx, *samplesFlag, strings.Split(*formatsFlag, ","))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfiguration
	}
	if len(samples) == 0 {
		logger.Warn("no samples discovered", "dir", *samplesFlag, "formats", *formatsFlag)
		return 0
	}

	if *enqueueFlag {
		return enqueue(ctx, cfg, samples, logger)
	}

	outcomes, allPassed := app.BatchUC.EvaluateBatch(ctx, samples, mode)

	for _, outcome := range outcomes {
		if outcome.Report != "" {
			fmt.Println(outcome.Report)
		} else if outcome.Err != "" {
			fmt.Printf("[%s] error: %s\n", outcome.Key(), outcome.Err)
		}
	}

	if *reportFlag != "" {
		if err := excel.NewWriter().Write(*reportFlag, outcomes); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitConfiguration
		}
		logger.Info("report written", "path", *reportFlag)
	}

	if !allPassed {
		return exitRegression
	}
	return 0
}

func enqueue(ctx context.Context, cfg config.Config, samples []domain.Sample, logger *slog.Logger) int {
	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfiguration
	}
	defer queue.Close()

	for _, sample := range samples {
		if err := queue.PublishSample(ctx, sample); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitConfiguration
		}
		logger.Info("sample enqueued", "key", sample.Key())
	}
	return 0
}
