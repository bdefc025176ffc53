// Package normalize turns raw page text into canonical values: prices, size and color tags,
// categories, availability states and cleaned product names.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Supported price locales.
const (
	LocaleJA = "ja" // 15,800円(税込) - integer yen amounts.
	LocaleEN = "en" // $1,234.00 - comma thousands, dot decimals.
	LocaleEU = "eu" // 1.234,56 € - dot thousands, comma decimals.
)

type priceRule struct {
	strip  *regexp.Regexp // currency glyphs, tax wording and thousands separators
	amount *regexp.Regexp // first contiguous amount after stripping
	comma  bool           // decimal separator is a comma
}

var priceRules = map[string]priceRule{
	LocaleJA: {
		strip:  regexp.MustCompile(`[¥￥円税込別価格定本体,\s]`),
		amount: regexp.MustCompile(`\d+`),
	},
	LocaleEN: {
		strip:  regexp.MustCompile(`[$£€,\s]|USD|GBP|EUR`),
		amount: regexp.MustCompile(`\d+(?:\.\d+)?`),
	},
	LocaleEU: {
		strip:  regexp.MustCompile(`[$£€.\s]|USD|GBP|EUR`),
		amount: regexp.MustCompile(`\d+(?:,\d+)?`),
		comma:  true,
	},
}

// Price extracts the first amount from text using the locale's token set. Unknown locales fall back
// to LocaleEN. The second result is false when the text holds no digits; callers must treat that as
// an unknown price rather than zero.
func Price(text, locale string) (decimal.Decimal, bool) {
	rule, ok := priceRules[strings.ToLower(locale)]
	if !ok {
		rule = priceRules[LocaleEN]
	}

	cleaned := rule.strip.ReplaceAllString(text, "")
	raw := rule.amount.FindString(cleaned)
	if raw == "" {
		return decimal.Zero, false
	}
	if rule.comma {
		raw = strings.Replace(raw, ",", ".", 1)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}

	return amount, true
}
