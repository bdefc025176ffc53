package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/repository/sqlite"
)

// DefaultWindowDays is used when a non-positive window is requested.
const DefaultWindowDays = 30

// ErrNoData means the filter and window matched no price history. It is a normal outcome.
var ErrNoData = errors.New("no price history for the requested filter and window")

// Analyzer computes read-only price statistics over stored price history.
type Analyzer struct {
	log  *slog.Logger
	repo sqlite.HistoryRepository
	now  func() time.Time
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(log *slog.Logger, repo sqlite.HistoryRepository) *Analyzer {
	return &Analyzer{log: log, repo: repo, now: time.Now}
}

// WithClock replaces the time source.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Analyze builds a trend report over the events of the last windowDays days matching filter.
func (a *Analyzer) Analyze(ctx context.Context, filter models.PriceFilter, windowDays int) (*models.TrendReport, error) {
	const opn = "analyzer.Analyze"

	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	to := a.now().UTC()
	from := to.AddDate(0, 0, -windowDays)

	events, err := a.repo.QueryPriceEvents(ctx, filter, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	if len(events) == 0 {
		return nil, ErrNoData
	}

	a.log.DebugContext(ctx, "Analyzing price history", "op", opn, "events", len(events), "window_days", windowDays)

	return buildReport(events, windowDays), nil
}

// Compare analyzes every product independently and summarizes those that had data.
func (a *Analyzer) Compare(ctx context.Context, productIDs []string, windowDays int) (*models.Comparison, error) {
	const opn = "analyzer.Compare"

	comparison := &models.Comparison{Products: make(map[string]*models.TrendReport, len(productIDs))}

	for _, id := range productIDs {
		if _, done := comparison.Products[id]; done {
			continue
		}

		report, err := a.Analyze(ctx, models.PriceFilter{ProductID: id}, windowDays)
		if errors.Is(err, ErrNoData) {
			comparison.NoData = append(comparison.NoData, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: product %s: %w", opn, id, err)
		}
		comparison.Products[id] = report
	}

	if len(comparison.Products) == 0 {
		return comparison, nil
	}

	summary := &models.ComparisonSummary{
		AvgPrice: models.PriceRange{Lowest: math.Inf(1), Highest: math.Inf(-1)},
		TrendSummary: map[models.Trend]int{
			models.TrendRising:           0,
			models.TrendFalling:          0,
			models.TrendStable:           0,
			models.TrendInsufficientData: 0,
		},
	}

	means := make([]float64, 0, len(comparison.Products))
	for _, report := range comparison.Products {
		avg := report.Price.Mean
		means = append(means, avg)
		summary.AvgPrice.Lowest = math.Min(summary.AvgPrice.Lowest, avg)
		summary.AvgPrice.Highest = math.Max(summary.AvgPrice.Highest, avg)
		summary.TrendSummary[report.Trend.Trend]++
	}
	summary.AvgPrice.Average = mean(means)
	comparison.Summary = summary

	return comparison, nil
}

func buildReport(events []models.PriceHistoryEvent, windowDays int) *models.TrendReport {
	prices := make([]float64, 0, len(events))
	var known []models.PriceHistoryEvent
	for _, e := range events {
		if !e.Price.Valid {
			continue
		}
		prices = append(prices, e.Price.Decimal.InexactFloat64())
		known = append(known, e)
	}

	return &models.TrendReport{
		PeriodDays:   windowDays,
		TotalRecords: len(events),
		Price:        priceStatistics(prices),
		Trend:        trend(known),
		Volatility:   volatility(prices),
		Availability: availability(events),
	}
}

func priceStatistics(prices []float64) models.PriceStatistics {
	if len(prices) == 0 {
		return models.PriceStatistics{}
	}

	lo, hi := prices[0], prices[0]
	for _, p := range prices[1:] {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}

	return models.PriceStatistics{
		Min:    lo,
		Max:    hi,
		Mean:   mean(prices),
		Median: median(prices),
		StdDev: stdDev(prices),
		Range:  hi - lo,
	}
}

// trend averages prices per UTC calendar day and fits a line through the daily averages.
func trend(events []models.PriceHistoryEvent) models.TrendAnalysis {
	var (
		days  []models.DailyAverage
		sum   float64
		count int
	)
	flush := func() {
		if count > 0 {
			days[len(days)-1].Price = sum / float64(count)
		}
	}

	for _, e := range events {
		day := e.RecordedAt.UTC().Truncate(24 * time.Hour)
		if len(days) == 0 || !days[len(days)-1].Date.Equal(day) {
			flush()
			days = append(days, models.DailyAverage{Date: day})
			sum, count = 0, 0
		}
		sum += e.Price.Decimal.InexactFloat64()
		count++
	}
	flush()

	if len(days) < 2 {
		return models.TrendAnalysis{Trend: models.TrendInsufficientData, DailyAverages: days}
	}

	ys := make([]float64, len(days))
	for i, d := range days {
		ys[i] = d.Price
	}
	slope, correlation := linearFit(ys)

	return models.TrendAnalysis{
		Trend:         ClassifyTrend(slope),
		Slope:         slope,
		Correlation:   correlation,
		Strength:      math.Abs(correlation),
		DailyAverages: days,
	}
}

func volatility(prices []float64) models.VolatilityAnalysis {
	changes := pctChanges(prices)
	if len(changes) == 0 {
		return models.VolatilityAnalysis{Classification: models.VolatilityStable}
	}

	var maxChange, sumAbs float64
	for _, c := range changes {
		maxChange = math.Max(maxChange, math.Abs(c))
		sumAbs += math.Abs(c)
	}

	result := models.VolatilityAnalysis{
		Classification: models.VolatilityStable,
		MaxChange:      maxChange,
		AvgChange:      sumAbs / float64(len(changes)),
	}

	// A single change has no spread to measure.
	if len(changes) < 2 {
		return result
	}

	result.Volatility = stdDev(changes)
	result.Classification = ClassifyVolatility(result.Volatility)
	return result
}

func availability(events []models.PriceHistoryEvent) models.AvailabilityAnalysis {
	counts := make(map[models.Availability]int)
	for _, e := range events {
		counts[e.Availability]++
	}

	total := float64(len(events))
	analysis := models.AvailabilityAnalysis{Distribution: make(map[models.Availability]models.AvailabilityShare, len(counts))}
	for state, count := range counts {
		analysis.Distribution[state] = models.AvailabilityShare{
			Count:      count,
			Percentage: float64(count) / total * 100,
		}
	}
	analysis.StockOutFrequency = analysis.Distribution[models.OutOfStock].Percentage

	return analysis
}
