package config

import (
	"os"
	"strconv"
)

type Config struct {
	LogLevel string

	BaselineDir string
	RebaseDir   string
	SampleDir   string
	Formats     string

	ExtractorURL            string
	ExtractorMode           string
	ExtractorTimeoutSeconds int
	ChecksConfigPath        string

	PostgresDSN string

	NATSURL     string
	NATSSubject string

	WorkerMetricsPort string
}

func Load() Config {
	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		BaselineDir: mustEnv("BASELINE_DIR", "./testdata/baselines"),
		RebaseDir:   mustEnv("REBASE_DIR", ""),
		SampleDir:   mustEnv("SAMPLE_DIR", "./testdata/samples"),
		Formats:     mustEnv("FORMATS", "pdf,docx,pptx,md,hwpx"),

		ExtractorURL:            mustEnv("EXTRACTOR_URL", "http://localhost:8000"),
		ExtractorMode:           mustEnv("EXTRACTOR_MODE", "remote"),
		ExtractorTimeoutSeconds: mustEnvInt("EXTRACTOR_TIMEOUT_SECONDS", 300),
		ChecksConfigPath:        mustEnv("CHECKS_CONFIG", ""),

		// Empty DSN disables run history recording.
		PostgresDSN: mustEnv("POSTGRES_DSN", ""),

		NATSURL:     mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: mustEnv("NATS_SUBJECT", "regression.samples"),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
