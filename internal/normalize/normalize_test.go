package normalize_test

import (
	"testing"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		locale   string
		expected float64
		ok       bool
	}{
		{name: "japanese tax included", text: "¥15,800円(税込)", locale: normalize.LocaleJA, expected: 15800, ok: true},
		{name: "japanese list price wording", text: "定価 12,100円", locale: normalize.LocaleJA, expected: 12100, ok: true},
		{name: "japanese full width yen", text: "￥3,980", locale: normalize.LocaleJA, expected: 3980, ok: true},
		{name: "western thousands", text: "$1,234.00", locale: normalize.LocaleEN, expected: 1234, ok: true},
		{name: "western cents", text: " $89.99 USD ", locale: normalize.LocaleEN, expected: 89.99, ok: true},
		{name: "western first amount wins", text: "Now $59.99 was $79.99", locale: normalize.LocaleEN, expected: 59.99, ok: true},
		{name: "european comma decimals", text: "1.234,56 €", locale: normalize.LocaleEU, expected: 1234.56, ok: true},
		{name: "unknown locale falls back to en", text: "£45.50", locale: "xx", expected: 45.5, ok: true},
		{name: "no digits", text: "Price on request", locale: normalize.LocaleEN, expected: 0, ok: false},
		{name: "empty", text: "", locale: normalize.LocaleJA, expected: 0, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, ok := normalize.Price(tc.text, tc.locale)

			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.expected, amount.InexactFloat64(), 1e-9)
		})
	}
}

func TestPrice_IgnoresGlyphs(t *testing.T) {
	variants := []string{"15800", "¥15800", "15,800円", "税込価格 ¥15,800", "15,800円(税込)", "本体価格15800円"}

	for _, variant := range variants {
		amount, ok := normalize.Price(variant, normalize.LocaleJA)
		require.True(t, ok, variant)
		assert.InDelta(t, 15800.0, amount.InexactFloat64(), 1e-9, variant)
	}
}

func TestSizes(t *testing.T) {
	testCases := []struct {
		name      string
		fragments []string
		expected  []string
	}{
		{name: "latin options", fragments: []string{"S", "M", "L", "XL"}, expected: []string{"S", "M", "L", "XL"}},
		{name: "katakana", fragments: []string{"エックスエル", "エス"}, expected: []string{"XL", "S"}},
		{name: "duplicates collapse", fragments: []string{"M", "m", "Medium"}, expected: []string{"M"}},
		{name: "free size", fragments: []string{"フリーサイズ", "One Size"}, expected: []string{"FREE"}},
		{name: "unknown dropped", fragments: []string{"Choose an option", "16oz"}, expected: []string{}},
		{name: "mixed fragment", fragments: []string{"XS / S / 2XL"}, expected: []string{"XS", "S", "XXL"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalize.Sizes(tc.fragments...))
		})
	}
}

func TestColors(t *testing.T) {
	testCases := []struct {
		name      string
		fragments []string
		expected  []string
	}{
		{name: "japanese aliases", fragments: []string{"黒", "ブラック", "black"}, expected: []string{"black"}},
		{name: "description text", fragments: []string{"サイズ：16オンス、カラー：レッド/ブラック"}, expected: []string{"red", "black"}},
		{name: "grey spelling", fragments: []string{"Grey"}, expected: []string{"gray"}},
		{name: "unknown dropped", fragments: []string{"Camo", "Multicolor"}, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalize.Colors(tc.fragments...))
		})
	}
}

func TestCategorize(t *testing.T) {
	testCases := []struct {
		name     string
		table    normalize.CategoryTable
		texts    []string
		expected string
	}{
		{name: "japanese boxing", table: normalize.SportsCategories, texts: []string{"ボクシンググローブ 16oz"}, expected: "boxing"},
		{name: "priority order", table: normalize.SportsCategories, texts: []string{"karate training glove"}, expected: "boxing"},
		{name: "from url", table: normalize.SportsCategories, texts: []string{"Item 7", "", "https://x/judo/7"}, expected: "martial_arts"},
		{name: "sports fallback", table: normalize.SportsCategories, texts: []string{"bottle"}, expected: "equipment"},
		{name: "t-shirt is not shirt", table: normalize.StreetwearCategories, texts: []string{"Box Logo T-Shirt"}, expected: "t_shirts"},
		{name: "shirt", table: normalize.StreetwearCategories, texts: []string{"Flannel Shirt"}, expected: "shirts"},
		{name: "streetwear fallback", table: normalize.StreetwearCategories, texts: []string{"Sticker"}, expected: "other"},
		{name: "fighting gear", table: normalize.FightingGearCategories, texts: []string{"Challenger MMA Gloves"}, expected: "mma_gloves"},
		{name: "empty table", table: normalize.CategoryTable{}, texts: []string{"anything"}, expected: "other"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.table.Categorize(tc.texts...))
		})
	}
}

func TestCategorize_IsTotal(t *testing.T) {
	inputs := []string{"", " ", "\x00", "日本語", "🥊", "https://", "1234"}
	tables := []normalize.CategoryTable{
		normalize.SportsCategories,
		normalize.FightingGearCategories,
		normalize.StreetwearCategories,
		normalize.Taxonomy("missing"),
	}

	for _, table := range tables {
		for _, input := range inputs {
			assert.NotEmpty(t, table.Categorize(input))
		}
	}
}

func TestName(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{raw: "NEW ボクシンググローブ 16oz レッド [BG-001]", expected: "ボクシンググローブ 16oz レッド"},
		{raw: "  Venum   Challenger 3.0  ", expected: "Venum Challenger 3.0"},
		{raw: "SALE! Glove A (GL-42)", expected: "Glove A"},
		{raw: "限定 ヘッドギア 在庫なし", expected: "ヘッドギア"},
		{raw: "Newton Trainer", expected: "Newton Trainer"},
		{raw: "Box Logo Tee - Sold Out", expected: "Box Logo Tee"},
		{raw: "NEW", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalize.Name(tc.raw))
		})
	}
}

func TestDescription(t *testing.T) {
	raw := "<p>プロ仕様のグローブ。</p>\n  送料無料 5,000円以上  本革製"

	assert.Equal(t, "プロ仕様のグローブ。 本革製", normalize.Description(raw))
}

func TestAvailability(t *testing.T) {
	testCases := []struct {
		text     string
		expected models.Availability
	}{
		{text: "In stock", expected: models.InStock},
		{text: "Currently unavailable", expected: models.OutOfStock},
		{text: "SOLD OUT", expected: models.OutOfStock},
		{text: "在庫あり", expected: models.InStock},
		{text: "残りわずか", expected: models.LimitedStock},
		{text: "Pre-order now", expected: models.Preorder},
		{text: "販売終了", expected: models.Discontinued},
		{text: "", expected: models.Unknown},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalize.Availability(tc.text))
		})
	}
}
