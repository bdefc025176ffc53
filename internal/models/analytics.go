package models

import "time"

// Trend is the direction of a daily-average price series.
type Trend string

const (
	TrendRising           Trend = "rising"
	TrendFalling          Trend = "falling"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// Volatility classes.
const (
	VolatilityStable = "stable"
	VolatilityLow    = "low"
	VolatilityMedium = "medium"
	VolatilityHigh   = "high"
)

// TrendReport is the result of analysing a window of price history.
type TrendReport struct {
	PeriodDays   int                  `json:"period_days"`
	TotalRecords int                  `json:"total_records"`
	Price        PriceStatistics      `json:"price_statistics"`
	Trend        TrendAnalysis        `json:"trend_analysis"`
	Volatility   VolatilityAnalysis   `json:"volatility_analysis"`
	Availability AvailabilityAnalysis `json:"availability_analysis"`
}

// PriceStatistics summarises the known prices of the window.
type PriceStatistics struct {
	Min    float64 `json:"min_price"`
	Max    float64 `json:"max_price"`
	Mean   float64 `json:"avg_price"`
	Median float64 `json:"median_price"`
	StdDev float64 `json:"std_price"`
	Range  float64 `json:"price_range"`
}

// DailyAverage is the mean price observed on one calendar day.
type DailyAverage struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// TrendAnalysis is the linear fit of daily averages against the day index.
type TrendAnalysis struct {
	Trend         Trend          `json:"trend"`
	Slope         float64        `json:"slope"`
	Correlation   float64        `json:"correlation"`
	Strength      float64        `json:"trend_strength"`
	DailyAverages []DailyAverage `json:"daily_averages,omitempty"`
}

// VolatilityAnalysis is the spread of period-over-period price changes.
type VolatilityAnalysis struct {
	Volatility     float64 `json:"volatility"`
	Classification string  `json:"classification"`
	MaxChange      float64 `json:"max_change"`
	AvgChange      float64 `json:"avg_change"`
}

// AvailabilityShare is the count and percentage of one availability value.
type AvailabilityShare struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AvailabilityAnalysis is the distribution of stock states across the window.
type AvailabilityAnalysis struct {
	Distribution      map[Availability]AvailabilityShare `json:"availability_distribution"`
	StockOutFrequency float64                            `json:"stock_out_frequency"`
}

// PriceRange is the lowest, highest and average of per-product mean prices.
type PriceRange struct {
	Lowest  float64 `json:"lowest"`
	Highest float64 `json:"highest"`
	Average float64 `json:"average"`
}

// ComparisonSummary aggregates several product reports.
type ComparisonSummary struct {
	AvgPrice     PriceRange    `json:"avg_price_comparison"`
	TrendSummary map[Trend]int `json:"trend_summary"`
}

// Comparison holds per-product reports and, when any product had data, their summary.
type Comparison struct {
	Products map[string]*TrendReport `json:"products"`
	NoData   []string                `json:"no_data,omitempty"`
	Summary  *ComparisonSummary      `json:"comparison_summary,omitempty"`
}
