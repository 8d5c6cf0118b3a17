package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	ops "github.com/jsamuelsen/daily-quote-bot/internal/adapters/http"
	"github.com/jsamuelsen/daily-quote-bot/internal/adapters/http/handlers"
	"github.com/jsamuelsen/daily-quote-bot/internal/app"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/telemetry"
	"github.com/jsamuelsen/daily-quote-bot/internal/ports"
)

var cmdRun = &cli.Command{
	Name:   "run",
	Usage:  "run the poster loop until interrupted (default)",
	Action: runBot,
}

var cmdLocate = &cli.Command{
	Name:   "locate",
	Usage:  "log in, look for the daily discussion post once and print it",
	Action: runLocate,
}

var cmdCheckConfig = &cli.Command{
	Name:   "check-config",
	Usage:  "load and validate configuration and quotes, then exit",
	Action: runCheckConfig,
}

// newRand returns a randomly seeded source for quote and interval draws.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func runBot(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := setup(c)
	if err != nil {
		return err
	}

	logger := b.logger
	info := resolveBuildInfo()

	logger.Info("starting quotebot",
		slog.String("version", info.Version),
		slog.String("commit", info.Commit),
		slog.String("environment", b.cfg.App.Environment),
	)

	provider, err := b.telemetry(ctx)
	if err != nil {
		return err
	}
	defer b.shutdownTelemetry(ctx, provider)

	quoteList, err := b.quotes()
	if err != nil {
		return err
	}

	platform, err := b.reddit()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := telemetry.NewBotMetrics(reg)
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	rng := newRand()
	status := app.NewStatus(app.DefaultStatusGrace)

	scheduler, err := app.NewScheduler(app.SchedulerConfig{
		Platform: platform,
		Locator: app.NewLocator(app.LocatorConfig{
			Platform: platform,
			Slot:     b.cfg.Bot.StickySlot,
			Marker:   b.cfg.Bot.TitleMarker,
			Logger:   logger,
		}),
		Sender: app.NewSender(app.SenderConfig{
			Platform: platform,
			Rand:     rng,
			DryRun:   b.cfg.Bot.DryRun,
			Logger:   logger,
		}),
		Quotes:    quoteList,
		Community: b.cfg.Bot.Subreddit,
		MinHours:  b.cfg.Bot.MinIntervalHours,
		MaxHours:  b.cfg.Bot.MaxIntervalHours,
		Rand:      rng,
		Sleeper:   app.TimerSleeper{},
		Metrics:   metrics,
		Status:    status,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		// The ops server has nothing to report once the loop ends.
		defer cancel()
		return scheduler.Run(gctx)
	})

	if b.cfg.Ops.Enabled {
		server, err := newOpsServer(b, platform, status, reg, info)
		if err != nil {
			return err
		}

		g.Go(func() error {
			return server.Serve(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}

func newOpsServer(
	b *bootstrap,
	platform ports.HealthChecker,
	status *app.Status,
	reg *prometheus.Registry,
	info handlers.BuildInfo,
) (*ops.Server, error) {
	registry := ports.NewHealthRegistry(b.cfg.Ops.CheckTimeout)

	for _, checker := range []ports.HealthChecker{platform, status} {
		if err := registry.Register(checker); err != nil {
			return nil, fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	server := ops.New(&b.cfg.Ops, b.logger)
	ops.SetupRouter(server.Engine(), ops.RouterConfig{
		Logger:        b.logger,
		ServiceName:   b.cfg.App.Name,
		HealthHandler: handlers.NewHealthHandler(registry, info, reg),
		StatusHandler: handlers.NewStatusHandler(status),
	})

	return server, nil
}

func runLocate(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := setup(c)
	if err != nil {
		return err
	}

	platform, err := b.reddit()
	if err != nil {
		return err
	}

	if err := platform.Authenticate(ctx); err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}

	locator := app.NewLocator(app.LocatorConfig{
		Platform: platform,
		Slot:     b.cfg.Bot.StickySlot,
		Marker:   b.cfg.Bot.TitleMarker,
		Logger:   b.logger,
	})

	post, found, err := locator.Find(ctx, b.cfg.Bot.Subreddit)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if !found {
		fmt.Fprintf(out, "no daily discussion post pinned in r/%s\n", b.cfg.Bot.Subreddit)
		return nil
	}

	fmt.Fprintf(out, "%s\n  id:        %s\n  permalink: https://www.reddit.com%s\n", post.Title, post.ID, post.Permalink)

	return nil
}

func runCheckConfig(c *cli.Context) error {
	b, err := setup(c)
	if err != nil {
		return err
	}

	quoteList, err := b.quotes()
	if err != nil {
		return err
	}

	cfg := b.cfg
	out := c.App.Writer

	fmt.Fprintf(out, "profile:    %s\n", cfg.App.Environment)
	fmt.Fprintf(out, "account:    %s\n", cfg.Reddit.Username)
	fmt.Fprintf(out, "subreddit:  r/%s (sticky slot %d, title contains %q)\n",
		cfg.Bot.Subreddit, cfg.Bot.StickySlot, cfg.Bot.TitleMarker)
	fmt.Fprintf(out, "interval:   %d-%d hours\n", cfg.Bot.MinIntervalHours, cfg.Bot.MaxIntervalHours)
	fmt.Fprintf(out, "quotes:     %d\n", quoteList.Len())
	fmt.Fprintf(out, "dry run:    %t\n", cfg.Bot.DryRun)
	fmt.Fprintf(out, "ops server: %t\n", cfg.Ops.Enabled)
	fmt.Fprintln(out, "config ok")

	return nil
}
