package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Houeta/price-cage/internal/api"
	"github.com/Houeta/price-cage/internal/bot"
	"github.com/Houeta/price-cage/internal/config"
	"github.com/Houeta/price-cage/internal/monitoring"
	"github.com/Houeta/price-cage/internal/parser"
	"github.com/Houeta/price-cage/internal/repository/sqlite"
	"github.com/Houeta/price-cage/internal/services/alerts"
	"github.com/Houeta/price-cage/internal/services/analyzer"
	"github.com/Houeta/price-cage/internal/services/crawler"
	"github.com/Houeta/price-cage/internal/services/merger"
	"github.com/Houeta/price-cage/internal/services/monitor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 10 * time.Second

// newBot is replaced in tests to avoid reaching the Telegram API.
var newBot = bot.NewBot

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

// run wires the application and blocks until shutdown. Every resource opened here is
// released by its deferred close before run returns.
func run() error {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	sites, err := config.LoadSites(cfg.SitesFile)
	if err != nil {
		return fmt.Errorf("failed to load sites: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer repo.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(reg)

	mrg := merger.NewMerger(logger, repo, metrics)
	alertGen := alerts.NewGenerator(logger, repo, metrics)
	trendAnalyzer := analyzer.NewAnalyzer(logger, repo)
	crawl := crawler.NewCrawler(
		logger,
		parser.NewSessionFactory(logger, cfg.Crawl.UserAgent, cfg.Crawl.Timeout),
		mrg,
		repo,
		metrics,
		crawler.Config{Delay: cfg.Crawl.Delay, Concurrency: cfg.Crawl.Concurrency},
	)

	// The bot is optional; without a token alerts are only served over HTTP.
	var notifier monitor.Notifier
	var priceBot *bot.Bot
	if cfg.Tg.Token != "" {
		priceBot, err = newBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, repo, alertGen,
			bot.AlertSettings{Threshold: cfg.Alerts.Threshold, Lookback: cfg.Alerts.Lookback})
		if err != nil {
			return fmt.Errorf("failed to init bot: %w", err)
		}
		notifier = priceBot
	} else {
		logger.WarnContext(ctx, "PC_TELEGRAM_TOKEN is empty, Telegram bot disabled")
	}

	mon := monitor.NewMonitor(logger, crawl, alertGen, notifier, mrg, monitor.Config{
		Sites:          sites,
		Interval:       cfg.Crawl.Interval,
		AlertThreshold: cfg.Alerts.Threshold,
		AlertLookback:  cfg.Alerts.Lookback,
		RetentionDays:  cfg.RetentionDays,
	})

	server := api.NewServer(logger, api.Config{
		Addr:           cfg.HTTPAddr,
		AlertThreshold: cfg.Alerts.Threshold,
		AlertLookback:  cfg.Alerts.Lookback,
	}, api.Deps{
		Analyzer: trendAnalyzer,
		Alerts:   alertGen,
		Stats:    mrg,
		DB:       repo,
		Metrics:  metrics,
		Gatherer: reg,
	})

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "sites", len(sites))

	if priceBot != nil {
		// Start the bot in a goroutine to allow main to listen for signals.
		go priceBot.Start()
		defer priceBot.Stop()
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		mon.Run(gctx)
		return nil
	})
	group.Go(server.Start)
	group.Go(func() error {
		<-gctx.Done()

		// Log that a shutdown signal has been received.
		logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}

	// Log graceful shutdown completion.
	logger.Info("Application stopped gracefully.")
	return nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
