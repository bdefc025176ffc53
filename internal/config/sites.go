package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/normalize"
	"github.com/Houeta/price-cage/internal/parser"
	"github.com/spf13/viper"
)

var ErrInvalidSite = errors.New("invalid site configuration")

type sitesFile struct {
	Sites []models.SiteConfig `mapstructure:"sites"`
}

// LoadSites reads site definitions from a YAML (or any viper-supported) file.
// An empty path returns the built-in sites.
func LoadSites(path string) ([]models.SiteConfig, error) {
	const opn = "config.LoadSites"

	if path == "" {
		return DefaultSites(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: failed to read sites file: %w", opn, err)
	}

	var file sitesFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("%s: failed to decode sites file: %w", opn, err)
	}

	if err := ValidateSites(file.Sites); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return file.Sites, nil
}

// ValidateSites checks that every site can be crawled.
func ValidateSites(sites []models.SiteConfig) error {
	if len(sites) == 0 {
		return fmt.Errorf("%w: no sites defined", ErrInvalidSite)
	}

	seen := make(map[string]struct{}, len(sites))
	for i, site := range sites {
		if site.Name == "" {
			return fmt.Errorf("%w: site #%d has no name", ErrInvalidSite, i+1)
		}
		if _, dup := seen[site.Name]; dup {
			return fmt.Errorf("%w: duplicate site %q", ErrInvalidSite, site.Name)
		}
		seen[site.Name] = struct{}{}

		base, err := url.Parse(site.BaseURL)
		if err != nil || base.Scheme == "" || base.Host == "" {
			return fmt.Errorf("%w: %s: base_url %q is not absolute", ErrInvalidSite, site.Name, site.BaseURL)
		}
		if site.Parser != "" && !slices.Contains(parser.Kinds(), site.Parser) {
			return fmt.Errorf("%w: %s: %w %q", ErrInvalidSite, site.Name, parser.ErrUnknownParser, site.Parser)
		}
		if len(site.Selectors.Name) == 0 || len(site.Selectors.Price) == 0 {
			return fmt.Errorf("%w: %s: name and price selectors are required", ErrInvalidSite, site.Name)
		}
	}

	return nil
}

// DefaultSites are crawled when no sites file is configured.
func DefaultSites() []models.SiteConfig {
	return []models.SiteConfig{
		{
			Name:     "venum",
			Parser:   parser.KindVenum,
			BaseURL:  "https://www.venum.com",
			Brand:    "Venum",
			Currency: "JPY",
			Taxonomy: normalize.TaxonomyFightingGear,
			Categories: []string{
				"/boxing-gloves", "/mma-gloves", "/shin-guards", "/mouthguards",
				"/headgear", "/rashguards", "/shorts", "/t-shirts",
			},
			Selectors: models.Selectors{
				ProductLink:   []string{"a.product-item-link@href", "a[href*='/products/']@href"},
				Name:          []string{"h1.product-name", "h1.page-title"},
				Price:         []string{"span.regular-price", "span.price"},
				OriginalPrice: []string{"span.old-price"},
				Availability:  []string{"div.stock-status"},
				Image:         []string{"img.product-image-main@src"},
				Description:   []string{"div.product-description"},
				Size:          []string{"select[name=size] option"},
				Color:         []string{"select[name=color] option"},
			},
		},
		{
			Name:       "tatami",
			Parser:     parser.KindGeneric,
			BaseURL:    "https://www.tatamifightwear.com",
			Brand:      "Tatami",
			Currency:   "JPY",
			Taxonomy:   normalize.TaxonomyFightingGear,
			Categories: []string{"/collections/gis", "/collections/rash-guards", "/collections/shorts"},
			Selectors:  shopifySelectors(),
		},
		{
			Name:       "hayabusa",
			Parser:     parser.KindGeneric,
			BaseURL:    "https://www.hayabusafight.com",
			Brand:      "Hayabusa",
			Currency:   "JPY",
			Taxonomy:   normalize.TaxonomyFightingGear,
			Categories: []string{"/collections/boxing-gloves", "/collections/mma-gloves", "/collections/apparel"},
			Selectors:  shopifySelectors(),
		},
		{
			Name:     "supreme",
			Parser:   parser.KindSupreme,
			BaseURL:  "https://www.supremenewyork.com",
			Brand:    "Supreme",
			Currency: "JPY",
			Taxonomy: normalize.TaxonomyStreetwear,
			Categories: []string{
				"/shop/all/jackets", "/shop/all/shirts", "/shop/all/t-shirts", "/shop/all/sweatshirts",
				"/shop/all/tops-sweaters", "/shop/all/pants", "/shop/all/shorts", "/shop/all/hats",
				"/shop/all/bags", "/shop/all/accessories",
			},
			Selectors: models.Selectors{
				ProductLink:   []string{"a[href*='/shop/']@href"},
				Name:          []string{"h1#name", "h1.product-name"},
				Price:         []string{"span#price", "span.price"},
				OriginalPrice: []string{"span.original-price"},
				Availability:  []string{".availability"},
				Image:         []string{"img#img-main@src", ".product-image img@src"},
				Description:   []string{"p.description", ".product-description"},
			},
		},
		{
			Name:       "bape",
			Parser:     parser.KindGeneric,
			BaseURL:    "https://jp.bape.com",
			Brand:      "A Bathing Ape",
			Currency:   "JPY",
			Locale:     "ja",
			Taxonomy:   normalize.TaxonomyStreetwear,
			Categories: []string{"/collections/men", "/collections/women"},
			Selectors:  shopifySelectors(),
		},
		{
			Name:       "stussy",
			Parser:     parser.KindGeneric,
			BaseURL:    "https://jp.stussy.com",
			Brand:      "Stussy",
			Currency:   "JPY",
			Locale:     "ja",
			Taxonomy:   normalize.TaxonomyStreetwear,
			Categories: []string{"/collections/tees", "/collections/sweats", "/collections/headwear"},
			Selectors:  shopifySelectors(),
		},
		{
			Name:       "center-sp",
			Parser:     parser.KindCenterSP,
			BaseURL:    "https://www.center-sp.co.jp/ec/",
			Currency:   "JPY",
			Locale:     "ja",
			Taxonomy:   normalize.TaxonomySports,
			Render:     true,
			Categories: []string{"category/boxing", "category/martial-arts", "category/training"},
			Selectors: models.Selectors{
				ProductLink: []string{"a@href"},
				Name: []string{
					"h1", ".product-name", ".item-name", ".product-title", "#product-name", "#item-name", ".main-title",
				},
				Price: []string{
					".price", ".product-price", ".item-price", "#price", ".price-value", ".cost", ".yen", "[class*=price]",
				},
				Image: []string{
					".product-image img@src", ".item-image img@src", ".main-image img@src",
					"img[src*=product]@src", "img[src*=item]@src",
				},
				Description: []string{
					".product-description", ".item-description", ".description",
					".product-detail", ".item-detail", ".detail-text",
				},
				Availability: []string{".stock", ".zaiko", ".availability"},
			},
		},
	}
}

// shopifySelectors fit the storefront theme most of the built-in shops share.
func shopifySelectors() models.Selectors {
	return models.Selectors{
		ProductList:   []string{".product-card", ".grid-product", ".product-item"},
		ProductLink:   []string{"a[href*='/products/']@href"},
		Name:          []string{"h1.product__title", "h1.product-single__title", "h1"},
		Price:         []string{".price-item--sale", ".price__current", ".product__price", "meta[property='og:price:amount']@content"},
		OriginalPrice: []string{".price-item--regular s", ".price__compare", "s.product__price--compare"},
		Availability:  []string{".product-form__inventory", ".product__inventory", "button[name=add] span"},
		Image:         []string{".product__media img@src", "meta[property='og:image']@content"},
		Description:   []string{".product__description", ".product-single__description"},
		Size:          []string{"select[name*=Size] option", "fieldset[name=Size] label"},
		Color:         []string{"select[name*=Color] option", "fieldset[name=Color] label"},
		Category:      []string{"meta[property='product:category']@content"},
	}
}
