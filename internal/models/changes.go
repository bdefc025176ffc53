package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertType is the direction of a price swing.
type AlertType string

const (
	PriceIncrease AlertType = "price_increase"
	PriceDecrease AlertType = "price_decrease"
)

// Alert - a price swing between the two latest observations of a product.
type Alert struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SourceURL     string          `json:"source_url"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PreviousPrice decimal.Decimal `json:"previous_price"`
	Currency      string          `json:"currency"`
	ChangePercent float64         `json:"change_percentage"`
	Type          AlertType       `json:"alert_type"`
	Timestamp     time.Time       `json:"timestamp"`
}

// MergeSummary - counters of one batch handed to the merge engine.
type MergeSummary struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Errors    int `json:"errors"`
}

// CrawlSummary - result of a whole crawl run.
type CrawlSummary struct {
	ProductsProcessed int `json:"products_processed"`
	Errors            int `json:"errors"`
}

// CrawlLog - per-website record of one crawl run.
type CrawlLog struct {
	ID                 string
	WebsiteDomain      string
	Status             string // success, partial, failed
	TotalProducts      int
	SuccessfulProducts int
	FailedProducts     int
	NewProducts        int
	UpdatedProducts    int
	StartTime          time.Time
	EndTime            time.Time
	ErrorMessage       string
}

// Stats - totals kept by the storage layer.
type Stats struct {
	TotalProducts     int `json:"total_products"`
	TotalBrands       int `json:"total_brands"`
	TotalWebsites     int `json:"total_websites"`
	TotalPriceRecords int `json:"total_price_records"`
}
