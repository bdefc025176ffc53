package models

// Selectors holds the ordered locator lists of a site. A locator is a CSS selector optionally
// suffixed with "@attr" to read an attribute instead of the element text.
type Selectors struct {
	ProductList   []string `mapstructure:"product_list"`
	ProductLink   []string `mapstructure:"product_link"`
	Name          []string `mapstructure:"name"`
	Price         []string `mapstructure:"price"`
	OriginalPrice []string `mapstructure:"original_price"`
	Availability  []string `mapstructure:"availability"`
	Image         []string `mapstructure:"image"`
	Description   []string `mapstructure:"description"`
	Size          []string `mapstructure:"size"`
	Color         []string `mapstructure:"color"`
	Brand         []string `mapstructure:"brand"`
	Category      []string `mapstructure:"category"`
}

// SiteConfig describes how one shop is crawled.
type SiteConfig struct {
	Name       string    `mapstructure:"name"`
	Parser     string    `mapstructure:"parser"`
	BaseURL    string    `mapstructure:"base_url"`
	Brand      string    `mapstructure:"brand"`
	Currency   string    `mapstructure:"currency"`
	Locale     string    `mapstructure:"locale"`
	Taxonomy   string    `mapstructure:"taxonomy"`
	Categories []string  `mapstructure:"categories"`
	Render     bool      `mapstructure:"render"`
	Selectors  Selectors `mapstructure:"selectors"`
}
