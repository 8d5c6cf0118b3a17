package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jsamuelsen/daily-quote-bot/internal/adapters/clients/reddit"
	"github.com/jsamuelsen/daily-quote-bot/internal/adapters/quotes"
	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/config"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/logging"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/telemetry"
)

const telemetryShutdownTimeout = 5 * time.Second

// bootstrap holds what every command needs: validated config and a logger.
type bootstrap struct {
	cfg    *config.Config
	logger *slog.Logger
}

// setup loads and validates configuration, applies flag overrides and
// installs the default logger. Any failure here is fatal.
func setup(c *cli.Context) (*bootstrap, error) {
	cfg, err := config.LoadFrom(c.String("config-dir"), c.String("profile"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if c.IsSet("dry-run") {
		cfg.Bot.DryRun = c.Bool("dry-run")
	}

	if cfg.App.Version == "dev" {
		cfg.App.Version = resolveBuildInfo().Version
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Level:      cfg.Log.File.Level,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	return &bootstrap{cfg: cfg, logger: logger}, nil
}

func (b *bootstrap) telemetry(ctx context.Context) (*telemetry.Provider, error) {
	provider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      b.cfg.Telemetry.Enabled,
		Endpoint:     b.cfg.Telemetry.Endpoint,
		ServiceName:  b.cfg.Telemetry.ServiceName,
		Version:      b.cfg.App.Version,
		Environment:  b.cfg.App.Environment,
		SamplingRate: b.cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	return provider, nil
}

func (b *bootstrap) quotes() (*domain.QuoteList, error) {
	list, err := quotes.Load(b.cfg.Quotes.Items, b.cfg.Quotes.File)
	if err != nil {
		return nil, fmt.Errorf("loading quotes: %w", err)
	}

	return list, nil
}

func (b *bootstrap) reddit() (*reddit.Client, error) {
	client, err := reddit.New(reddit.Config{
		Credentials: b.cfg.Reddit.Credentials(),
		AuthURL:     b.cfg.Reddit.AuthURL,
		APIURL:      b.cfg.Reddit.APIURL,
		Version:     b.cfg.App.Version,
		Timeout:     b.cfg.Client.Timeout,
		Pool:        b.cfg.Client.Transport,
		Logger:      b.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating reddit client: %w", err)
	}

	return client, nil
}

// shutdownTelemetry flushes exporters on exit, detached from the run context.
func (b *bootstrap) shutdownTelemetry(ctx context.Context, provider *telemetry.Provider) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telemetryShutdownTimeout)
	defer cancel()

	if err := provider.Shutdown(ctx); err != nil {
		b.logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}
