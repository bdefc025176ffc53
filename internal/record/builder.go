// Package record assembles canonical product records from raw extracted fields.
package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/normalize"
	"github.com/Houeta/price-cage/internal/parser"
	"github.com/shopspring/decimal"
)

// ErrEmptyName is returned when the product name is empty after normalization.
var ErrEmptyName = errors.New("empty product name")

const defaultCurrency = "JPY"

// Build normalizes raw fields into a ProductRecord. Only an empty name fails the record;
// every other field falls back to a safe default.
func Build(raw *parser.RawProduct, site models.SiteConfig, scrapedAt time.Time) (*models.ProductRecord, error) {
	const opn = "record.Build"

	name := normalize.Name(raw.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: %s: %w", opn, raw.URL, ErrEmptyName)
	}

	currency := strings.ToUpper(strings.TrimSpace(site.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	locale := Locale(site.Locale, currency)

	description := normalize.Description(raw.Description)

	brand := strings.TrimSpace(raw.Brand)
	if brand == "" {
		brand = site.Brand
	}
	if brand == "" {
		brand = site.Name
	}

	return &models.ProductRecord{
		Name:          name,
		Brand:         brand,
		Description:   description,
		Price:         price(raw.Price, locale),
		OriginalPrice: price(raw.OriginalPrice, locale),
		Currency:      currency,
		Availability:  availability(raw.Availability),
		Category:      normalize.Taxonomy(site.Taxonomy).Categorize(raw.Category, name, description, raw.URL),
		ImageURLs:     nonNil(raw.Images),
		SizeOptions:   normalize.Sizes(raw.Sizes...),
		ColorOptions:  normalize.Colors(raw.Colors...),
		SourceURL:     raw.URL,
		ScrapedAt:     scrapedAt.UTC(),
	}, nil
}

// Locale picks the price locale of a site, deriving it from the currency when unset.
func Locale(locale, currency string) string {
	if locale != "" {
		return locale
	}
	switch currency {
	case "JPY":
		return normalize.LocaleJA
	case "EUR":
		return normalize.LocaleEU
	default:
		return normalize.LocaleEN
	}
}

func price(text, locale string) decimal.NullDecimal {
	amount, ok := normalize.Price(text, locale)
	return decimal.NullDecimal{Decimal: amount, Valid: ok}
}

// availability accepts both stock wording and values that are already canonical.
func availability(text string) models.Availability {
	if a := models.Availability(strings.TrimSpace(text)); a.Valid() {
		return a
	}
	return normalize.Availability(text)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
