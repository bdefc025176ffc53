package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/price-cage/internal/models"
)

type Crawler interface {
	RunCrawl(ctx context.Context, sites []models.SiteConfig) (models.CrawlSummary, error)
}

type AlertGenerator interface {
	Generate(ctx context.Context, thresholdPct float64, lookback time.Duration) ([]models.Alert, error)
}

// Notifier delivers alerts to subscribers.
type Notifier interface {
	NotifyAlerts(ctx context.Context, alerts []models.Alert) error
}

type HistoryCleaner interface {
	CleanOldHistory(ctx context.Context, keepDays int) (int64, error)
}

// Config holds the knobs of one monitoring cycle.
type Config struct {
	Sites          []models.SiteConfig
	Interval       time.Duration
	AlertThreshold float64
	AlertLookback  time.Duration
	RetentionDays  int
}

// Result describes one finished cycle.
type Result struct {
	Crawl   models.CrawlSummary
	Alerts  []models.Alert
	Deleted int64
}

// Monitor is an orchestrator that performs a full crawl-and-alert cycle.
type Monitor struct {
	log      *slog.Logger
	crawler  Crawler
	alerts   AlertGenerator
	notifier Notifier
	cleaner  HistoryCleaner
	cfg      Config
}

type Interface interface {
	// RunCycle performs one crawl, alert and cleanup pass.
	RunCycle(ctx context.Context) (*Result, error)
}

// NewMonitor creates a new Monitor instance. notifier may be nil when nobody is subscribed to alerts.
func NewMonitor(
	log *slog.Logger,
	crawler Crawler,
	alerts AlertGenerator,
	notifier Notifier,
	cleaner HistoryCleaner,
	cfg Config,
) *Monitor {
	return &Monitor{log: log, crawler: crawler, alerts: alerts, notifier: notifier, cleaner: cleaner, cfg: cfg}
}

// RunCycle performs the full cycle.
func (m *Monitor) RunCycle(ctx context.Context) (*Result, error) {
	const opn = "monitor.RunCycle"
	log := m.log.With("op", opn)

	// 1. Crawl every configured site
	log.InfoContext(ctx, "Starting crawl", "sites", len(m.cfg.Sites))
	summary, err := m.crawler.RunCrawl(ctx, m.cfg.Sites)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to crawl sites: %w", opn, err)
	}
	result := &Result{Crawl: summary}

	// 2. Detect price swings
	alerts, err := m.alerts.Generate(ctx, m.cfg.AlertThreshold, m.cfg.AlertLookback)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate alerts: %w", opn, err)
	}
	result.Alerts = alerts
	log.InfoContext(ctx, "Alert detection complete", "alerts", len(alerts))

	// 3. Tell subscribers; a delivery failure does not undo the cycle
	if m.notifier != nil && len(alerts) > 0 {
		if err = m.notifier.NotifyAlerts(ctx, alerts); err != nil {
			log.ErrorContext(ctx, "Failed to notify subscribers", "error", err)
		}
	}

	// 4. Retention cleanup
	if m.cleaner != nil && m.cfg.RetentionDays > 0 {
		result.Deleted, err = m.cleaner.CleanOldHistory(ctx, m.cfg.RetentionDays)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to clean old history: %w", opn, err)
		}
	}

	log.InfoContext(ctx, "Cycle complete",
		"products", summary.ProductsProcessed,
		"errors", summary.Errors,
		"alerts", len(alerts),
		"deleted", result.Deleted,
	)

	return result, nil
}

// Run executes a cycle immediately and then on every interval tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	const opn = "monitor.Run"
	log := m.log.With("op", opn)

	if m.cfg.Interval <= 0 {
		log.WarnContext(ctx, "Crawl interval is not positive, scheduler disabled")
		return
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := m.RunCycle(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				log.InfoContext(ctx, "Cycle interrupted by shutdown")
				return
			}
			log.ErrorContext(ctx, "Monitoring cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			log.InfoContext(ctx, "Scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}
