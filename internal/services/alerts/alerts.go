package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/monitoring"
	"github.com/Houeta/price-cage/internal/repository/sqlite"
	"github.com/shopspring/decimal"
)

// DefaultLookback is used when a non-positive lookback is requested.
const DefaultLookback = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// Generator flags price swings between the two latest observations of every active product.
type Generator struct {
	log     *slog.Logger
	repo    sqlite.AlertRepository
	metrics *monitoring.Metrics
	now     func() time.Time
}

// NewGenerator creates a new Generator instance.
func NewGenerator(log *slog.Logger, repo sqlite.AlertRepository, metrics *monitoring.Metrics) *Generator {
	return &Generator{log: log, repo: repo, metrics: metrics, now: time.Now}
}

// WithClock replaces the time source.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate returns one alert per active product whose price moved by at least thresholdPct percent
// between its two most recent events inside the lookback window.
func (g *Generator) Generate(ctx context.Context, thresholdPct float64, lookback time.Duration) ([]models.Alert, error) {
	const opn = "alerts.Generate"
	log := g.log.With("op", opn)

	if lookback <= 0 {
		lookback = DefaultLookback
	}
	since := g.now().UTC().Add(-lookback)

	products, err := g.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list active products: %w", opn, err)
	}

	alerts := make([]models.Alert, 0)
	for _, product := range products {
		events, err := g.repo.RecentPriceEvents(ctx, product.ID, since, 2)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to load price events of %s: %w", opn, product.ID, err)
		}

		alert, ok := compare(product, events, thresholdPct)
		if !ok {
			continue
		}

		g.metrics.IncAlert(string(alert.Type))
		alerts = append(alerts, alert)
	}

	log.InfoContext(ctx, "Price alerts generated", "products", len(products), "alerts", len(alerts))

	return alerts, nil
}

// compare expects events newest first.
func compare(product models.StoredProduct, events []models.PriceHistoryEvent, thresholdPct float64) (models.Alert, bool) {
	if len(events) < 2 {
		return models.Alert{}, false
	}

	newest, older := events[0], events[1]
	if !older.Price.Valid || !older.Price.Decimal.IsPositive() || !newest.Price.Valid {
		return models.Alert{}, false
	}

	pct := newest.Price.Decimal.Sub(older.Price.Decimal).Div(older.Price.Decimal).Mul(hundred)
	if pct.Abs().InexactFloat64() < thresholdPct {
		return models.Alert{}, false
	}

	alertType := models.PriceDecrease
	if pct.IsPositive() {
		alertType = models.PriceIncrease
	}

	return models.Alert{
		ProductID:     product.ID,
		ProductName:   product.Name,
		SourceURL:     product.SourceURL,
		CurrentPrice:  newest.Price.Decimal,
		PreviousPrice: older.Price.Decimal,
		Currency:      newest.Currency,
		ChangePercent: pct.Round(2).InexactFloat64(),
		Type:          alertType,
		Timestamp:     newest.RecordedAt,
	}, true
}
