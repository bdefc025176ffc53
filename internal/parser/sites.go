package parser

import (
	"sort"
	"strings"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// supreme reads stock state from the size selector when the page shows no explicit stock text.
type supreme struct {
	*generic
}

func newSupreme(site models.SiteConfig) SiteParser {
	return &supreme{generic: newGeneric(site)}
}

func (s *supreme) ParseProductDetail(doc *goquery.Document, productURL string) (*RawProduct, error) {
	raw, err := s.generic.ParseProductDetail(doc, productURL)
	if err != nil {
		return nil, err
	}

	if len(raw.Sizes) == 0 {
		raw.Sizes = selectOptions(doc.Selection, "select[name=size]")
	}
	if len(raw.Colors) == 0 {
		raw.Colors = selectOptions(doc.Selection, "select[name=color]")
	}

	if raw.Availability != "" {
		return raw, nil
	}

	switch {
	case exists(doc.Selection, "span.sold-out"):
		raw.Availability = string(models.OutOfStock)
	case exists(doc.Selection, "select[name=size]"):
		if doc.Find("select[name=size] option[value]:not([disabled])").Length() > 0 {
			raw.Availability = string(models.InStock)
		} else {
			raw.Availability = string(models.OutOfStock)
		}
	}

	return raw, nil
}

// selectOptions returns the labels of options that carry a value, minus placeholders.
func selectOptions(scope *goquery.Selection, selectSelector string) []string {
	var labels []string
	scope.Find(selectSelector + " option").Each(func(_ int, opt *goquery.Selection) {
		if v, ok := opt.Attr("value"); !ok || strings.TrimSpace(v) == "" {
			return
		}
		if label := strings.TrimSpace(opt.Text()); label != "" {
			labels = append(labels, label)
		}
	})
	return withoutPlaceholders(labels)
}

var (
	productURLIndicators = []string{"product", "item", "detail", "goods", "p_", "i_"}
	specTableSelectors   = []string{
		".specifications", ".spec-table", ".product-specs", ".detail-table", ".product-info-table",
	}
	specSizeKeys  = []string{"サイズ", "size", "寸法"}
	specColorKeys = []string{"カラー", "color", "色"}
	specBrandKeys = []string{"ブランド", "brand", "メーカー"}
)

// centerSP keeps only product-looking links and reads a specification table.
type centerSP struct {
	*generic
}

func newCenterSP(site models.SiteConfig) SiteParser {
	return &centerSP{generic: newGeneric(site)}
}

func (c *centerSP) ParseProductList(doc *goquery.Document, pageURL string) []string {
	links := c.generic.ParseProductList(doc, pageURL)

	filtered := make([]string, 0, len(links))
	for _, link := range links {
		lowered := strings.ToLower(link)
		for _, indicator := range productURLIndicators {
			if strings.Contains(lowered, indicator) {
				filtered = append(filtered, link)
				break
			}
		}
	}
	return filtered
}

func (c *centerSP) ParseProductDetail(doc *goquery.Document, productURL string) (*RawProduct, error) {
	raw, err := c.generic.ParseProductDetail(doc, productURL)
	if err != nil {
		return nil, err
	}

	raw.Specs = specifications(doc.Selection)
	keys := make([]string, 0, len(raw.Specs))
	for key := range raw.Specs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw.Specs[key]
		lowered := strings.ToLower(key)
		switch {
		case containsAny(lowered, specSizeKeys):
			raw.Sizes = append(raw.Sizes, value)
		case containsAny(lowered, specColorKeys):
			raw.Colors = append(raw.Colors, value)
		case containsAny(lowered, specBrandKeys) && raw.Brand == "":
			raw.Brand = value
		}
	}

	return raw, nil
}

// specifications reads key/value rows from the first spec table that yields any.
func specifications(scope *goquery.Selection) map[string]string {
	specs := make(map[string]string)
	for _, selector := range specTableSelectors {
		scope.Find(selector).First().Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("th, td")
			if cells.Length() < 2 {
				return
			}
			key := strings.TrimSpace(spaces.ReplaceAllString(cells.Eq(0).Text(), " "))
			value := strings.TrimSpace(spaces.ReplaceAllString(cells.Eq(1).Text(), " "))
			if key != "" && value != "" {
				specs[key] = value
			}
		})
		if len(specs) > 0 {
			break
		}
	}
	return specs
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
