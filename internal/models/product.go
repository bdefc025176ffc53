package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Availability is the normalized stock state of a product.
type Availability string

const (
	InStock      Availability = "in_stock"
	OutOfStock   Availability = "out_of_stock"
	LimitedStock Availability = "limited_stock"
	Preorder     Availability = "preorder"
	Discontinued Availability = "discontinued"
	Unknown      Availability = "unknown"
)

// Valid reports whether a is one of the known availability values.
func (a Availability) Valid() bool {
	switch a {
	case InStock, OutOfStock, LimitedStock, Preorder, Discontinued, Unknown:
		return true
	}
	return false
}

// ProductRecord is the canonical shape produced by any site extractor for a single crawled page.
// A record lives only until it is merged into storage.
type ProductRecord struct {
	Name          string
	Brand         string
	Description   string
	Price         decimal.NullDecimal // Price is invalid when the page carried no parsable amount.
	OriginalPrice decimal.NullDecimal
	Currency      string
	Availability  Availability
	Category      string
	ImageURLs     []string
	SizeOptions   []string
	ColorOptions  []string
	SourceURL     string
	ScrapedAt     time.Time
}

// Brand is a product brand, auto-registered the first time it is seen.
type Brand struct {
	ID          string
	Name        string
	DisplayName string
	Category    string
	CreatedAt   time.Time
}

// Website is a crawled shop, identified by its domain.
type Website struct {
	ID        string
	Name      string
	Domain    string
	BaseURL   string
	CreatedAt time.Time
}

// StoredProduct is the persistent product state keyed by (WebsiteID, SourceURL).
type StoredProduct struct {
	ID            string
	Name          string
	BrandID       string
	WebsiteID     string
	Category      string
	Description   string
	CurrentPrice  decimal.NullDecimal
	OriginalPrice decimal.NullDecimal
	Currency      string
	Availability  Availability
	ImageURLs     []string
	SizeOptions   []string
	ColorOptions  []string
	SourceURL     string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastScraped   time.Time
}

// PriceHistoryEvent is one append-only observation of a product's price and stock state.
type PriceHistoryEvent struct {
	ID            string
	ProductID     string
	Price         decimal.NullDecimal
	OriginalPrice decimal.NullDecimal
	Currency      string
	Availability  Availability
	RecordedAt    time.Time
}

// PriceFilter narrows price history queries. Empty fields match everything.
type PriceFilter struct {
	ProductID string
	Category  string
	Brand     string
}
