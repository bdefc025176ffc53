package parser

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrExtraction is returned when a required field is missing after all locators were tried.
	ErrExtraction = errors.New("required field not found")
	// ErrUnknownParser is returned for a site whose parser kind is not registered.
	ErrUnknownParser = errors.New("unknown parser kind")
)

// RawProduct holds the raw text found on a product page, before normalization.
type RawProduct struct {
	URL           string
	Name          string
	Brand         string
	Price         string
	OriginalPrice string
	Availability  string
	Description   string
	Category      string
	Images        []string
	Sizes         []string
	Colors        []string
	Specs         map[string]string
}

// SiteParser extracts product links and raw product fields from pages of one site.
type SiteParser interface {
	// Site returns the configuration the parser was built from.
	Site() models.SiteConfig
	// CategoryURLs returns the absolute listing pages to crawl.
	CategoryURLs() []string
	// ParseProductList returns absolute, de-duplicated product URLs found on a listing page.
	ParseProductList(doc *goquery.Document, pageURL string) []string
	// ParseProductDetail extracts raw fields from a product page.
	ParseProductDetail(doc *goquery.Document, productURL string) (*RawProduct, error)
}

// Constructor builds a SiteParser for a site configuration.
type Constructor func(site models.SiteConfig) SiteParser

// Parser kinds.
const (
	KindGeneric  = "generic"
	KindVenum    = "venum"
	KindSupreme  = "supreme"
	KindCenterSP = "centersp"
)

var registry = map[string]Constructor{
	KindGeneric:  func(site models.SiteConfig) SiteParser { return newGeneric(site) },
	KindVenum:    func(site models.SiteConfig) SiteParser { return newGeneric(site) },
	KindSupreme:  newSupreme,
	KindCenterSP: newCenterSP,
}

// New returns the registered parser for site.Parser. An empty kind selects the generic parser.
func New(site models.SiteConfig) (SiteParser, error) {
	kind := site.Parser
	if kind == "" {
		kind = KindGeneric
	}

	constructor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (site %s)", ErrUnknownParser, kind, site.Name)
	}

	return constructor(site), nil
}

// Kinds lists the registered parser kinds.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
