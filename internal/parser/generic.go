package parser

import (
	"fmt"
	"strings"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/PuerkitoBio/goquery"
)

var defaultLinkLocators = []string{"a@href"}

// placeholderOptions are select options that do not name a variant.
var placeholderOptions = []string{"choose", "select", "選択", "お選びください"}

// generic extracts everything from the site's selector configuration.
type generic struct {
	site models.SiteConfig
}

func newGeneric(site models.SiteConfig) *generic {
	return &generic{site: site}
}

func (g *generic) Site() models.SiteConfig {
	return g.site
}

func (g *generic) CategoryURLs() []string {
	urls := make([]string, 0, len(g.site.Categories))
	for _, category := range g.site.Categories {
		urls = append(urls, absoluteURL(g.site.BaseURL, category))
	}
	return uniqueStrings(urls)
}

func (g *generic) ParseProductList(doc *goquery.Document, pageURL string) []string {
	scopes := []*goquery.Selection{doc.Selection}
	for _, raw := range g.site.Selectors.ProductList {
		if items := doc.Find(parseLocator(raw).selector); items.Length() > 0 {
			scopes = scopes[:0]
			items.Each(func(_ int, s *goquery.Selection) { scopes = append(scopes, s) })
			break
		}
	}

	linkLocators := g.site.Selectors.ProductLink
	if len(linkLocators) == 0 {
		linkLocators = defaultLinkLocators
	}

	var links []string
	for _, scope := range scopes {
		for _, href := range hrefs(scope, linkLocators) {
			links = append(links, absoluteURL(pageURL, href))
		}
	}

	return uniqueStrings(links)
}

// hrefs reads link targets; locators without an attribute default to href.
func hrefs(scope *goquery.Selection, locators []string) []string {
	withAttr := make([]string, 0, len(locators))
	for _, raw := range locators {
		loc := parseLocator(raw)
		if loc.attr == "" {
			loc.attr = "href"
		}
		withAttr = append(withAttr, loc.selector+"@"+loc.attr)
	}
	// a link selector may match the container itself
	if values := allTexts(scope, withAttr); len(values) > 0 {
		return values
	}
	for _, raw := range withAttr {
		loc := parseLocator(raw)
		if scope.Is(loc.selector) {
			if v := loc.value(scope); v != "" {
				return []string{v}
			}
		}
	}
	return nil
}

func (g *generic) ParseProductDetail(doc *goquery.Document, productURL string) (*RawProduct, error) {
	sel := g.site.Selectors
	root := doc.Selection

	raw := &RawProduct{
		URL:           productURL,
		Name:          firstText(root, sel.Name),
		Brand:         firstText(root, sel.Brand),
		Price:         firstText(root, sel.Price),
		OriginalPrice: firstText(root, sel.OriginalPrice),
		Availability:  firstText(root, sel.Availability),
		Description:   firstText(root, sel.Description),
		Category:      firstText(root, sel.Category),
		Sizes:         withoutPlaceholders(allTexts(root, sel.Size)),
		Colors:        withoutPlaceholders(allTexts(root, sel.Color)),
	}

	for _, src := range allTexts(root, sel.Image) {
		raw.Images = append(raw.Images, absoluteURL(productURL, src))
	}
	raw.Images = uniqueStrings(raw.Images)

	if raw.Name == "" {
		return nil, fmt.Errorf("%w: name on %s", ErrExtraction, productURL)
	}
	if raw.Price == "" {
		return nil, fmt.Errorf("%w: price on %s", ErrExtraction, productURL)
	}

	return raw, nil
}

func withoutPlaceholders(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		lowered := strings.ToLower(v)
		placeholder := false
		for _, p := range placeholderOptions {
			if strings.Contains(lowered, p) {
				placeholder = true
				break
			}
		}
		if !placeholder {
			out = append(out, v)
		}
	}
	return out
}
