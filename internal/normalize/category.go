package normalize

import "strings"

// KeywordGroup is one category tag and the keywords that select it.
type KeywordGroup struct {
	Name     string
	Keywords []string
}

// CategoryTable is an ordered list of keyword groups with a fallback tag. The first group with a
// keyword contained in the text wins.
type CategoryTable struct {
	Groups   []KeywordGroup
	Fallback string
}

// Taxonomy names usable from site configuration.
const (
	TaxonomySports       = "sports"
	TaxonomyFightingGear = "fighting_gear"
	TaxonomyStreetwear   = "streetwear"
)

// SportsCategories classifies sports and martial-arts equipment shops.
var SportsCategories = CategoryTable{
	Groups: []KeywordGroup{
		{Name: "boxing", Keywords: []string{"ボクシング", "boxing", "グローブ", "glove", "パンチング", "punching"}},
		{Name: "martial_arts", Keywords: []string{
			"格闘技", "martial", "空手", "karate", "柔道", "judo", "柔術", "jujitsu", "jiu-jitsu", "テコンドー", "taekwondo",
		}},
		{Name: "training", Keywords: []string{
			"トレーニング", "training", "フィットネス", "fitness", "ダンベル", "dumbbell", "バーベル", "barbell",
		}},
		{Name: "protective_gear", Keywords: []string{
			"プロテクター", "protector", "protective", "ヘッドギア", "headgear", "マウスピース", "mouthpiece", "ガード", "guard",
		}},
		{Name: "apparel", Keywords: []string{
			"ウェア", "wear", "シューズ", "shoes", "tシャツ", "shirt", "パンツ", "pants", "ショーツ", "shorts", "apparel", "clothing",
		}},
	},
	Fallback: "equipment",
}

// FightingGearCategories classifies fight-wear brand shops.
var FightingGearCategories = CategoryTable{
	Groups: []KeywordGroup{
		{Name: "boxing_gloves", Keywords: []string{"boxing"}},
		{Name: "mma_gloves", Keywords: []string{"mma"}},
		{Name: "shin_guards", Keywords: []string{"shin"}},
		{Name: "headgear", Keywords: []string{"headgear", "head"}},
		{Name: "mouthguards", Keywords: []string{"mouthguard", "mouth"}},
		{Name: "rash_guards", Keywords: []string{"rashguard", "rash"}},
		{Name: "shorts", Keywords: []string{"short"}},
		{Name: "t_shirts", Keywords: []string{"t-shirt", "tshirt"}},
	},
	Fallback: "equipment",
}

// StreetwearCategories classifies streetwear brand shops. T-shirts are listed before shirts so
// that "t-shirt" never lands in the shirts group.
var StreetwearCategories = CategoryTable{
	Groups: []KeywordGroup{
		{Name: "jackets", Keywords: []string{"jacket"}},
		{Name: "t_shirts", Keywords: []string{"t-shirt", "tee"}},
		{Name: "hoodies", Keywords: []string{"sweatshirt", "hoodie"}},
		{Name: "shirts", Keywords: []string{"shirt"}},
		{Name: "pants", Keywords: []string{"pant", "jean"}},
		{Name: "shorts", Keywords: []string{"short"}},
		{Name: "hats", Keywords: []string{"hat", "cap", "beanie"}},
		{Name: "bags", Keywords: []string{"bag", "backpack"}},
	},
	Fallback: "other",
}

var taxonomies = map[string]CategoryTable{
	TaxonomySports:       SportsCategories,
	TaxonomyFightingGear: FightingGearCategories,
	TaxonomyStreetwear:   StreetwearCategories,
}

// Taxonomy returns the named category table, SportsCategories for unknown names.
func Taxonomy(name string) CategoryTable {
	if table, ok := taxonomies[name]; ok {
		return table
	}
	return SportsCategories
}

// Categorize joins texts and returns the first matching group name or the fallback tag. It never
// returns an empty string.
func (c CategoryTable) Categorize(texts ...string) string {
	combined := strings.ToLower(strings.Join(texts, " "))

	for _, group := range c.Groups {
		for _, keyword := range group.Keywords {
			if strings.Contains(combined, strings.ToLower(keyword)) {
				return group.Name
			}
		}
	}

	if c.Fallback == "" {
		return "other"
	}
	return c.Fallback
}
