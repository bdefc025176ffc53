package normalize

import (
	"regexp"
	"strings"

	"github.com/Houeta/price-cage/internal/models"
)

type stripRule struct {
	pattern *regexp.Regexp
	repl    string
}

// nameRules are applied in order.
var nameRules = []stripRule{
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`(?i)^(?:(?:(?:NEW|SALE)\b|新商品|限定|送料無料)[\s!！:：]*)+`), ""},
	{regexp.MustCompile(`(?i)[\s\-–]*(?:在庫あり|在庫なし|予約|売り切れ|sold out|in stock|out of stock)$`), ""},
	{regexp.MustCompile(`\s*[\[\(（【][A-Z0-9][A-Z0-9\-]*[\]\)）】]$`), ""},
}

// Name trims whitespace and strips promotional prefixes, stock-status suffixes and trailing
// bracketed product codes.
func Name(raw string) string {
	name := strings.TrimSpace(raw)
	for _, rule := range nameRules {
		name = strings.TrimSpace(rule.pattern.ReplaceAllString(name, rule.repl))
	}
	return name
}

var descriptionRules = []stripRule{
	{regexp.MustCompile(`<[^>]+>`), " "},
	{regexp.MustCompile(`送料無料.*?円以上`), ""},
	{regexp.MustCompile(`平日.*?時までの注文で翌日発送`), ""},
	{regexp.MustCompile(`代引き手数料.*?円`), ""},
	{regexp.MustCompile(`クレジットカード.*?可能`), ""},
	{regexp.MustCompile(`\s+`), " "},
}

// Description removes markup, shop boilerplate and redundant whitespace.
func Description(raw string) string {
	description := raw
	for _, rule := range descriptionRules {
		description = rule.pattern.ReplaceAllString(description, rule.repl)
	}
	return strings.TrimSpace(description)
}

type availabilityRule struct {
	state    models.Availability
	keywords []string
}

// availabilityRules are checked in order; negative wording precedes positive so that
// "out of stock" is never read as "in stock".
var availabilityRules = []availabilityRule{
	{models.Discontinued, []string{"discontinued", "no longer available", "販売終了", "生産終了"}},
	{models.OutOfStock, []string{"out of stock", "sold out", "unavailable", "在庫なし", "在庫切れ", "売り切れ", "品切れ"}},
	{models.Preorder, []string{"pre-order", "preorder", "予約"}},
	{models.LimitedStock, []string{"limited", "few left", "low stock", "残りわずか", "残り僅か", "在庫僅少"}},
	{models.InStock, []string{"in stock", "available", "add to cart", "在庫あり", "カートに入れる"}},
}

// Availability maps stock wording onto the availability enum, models.Unknown when nothing matches.
func Availability(text string) models.Availability {
	lowered := strings.ToLower(text)
	for _, rule := range availabilityRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.state
			}
		}
	}
	return models.Unknown
}
