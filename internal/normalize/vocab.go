package normalize

import (
	"strings"
	"unicode"
)

// Alias maps one canonical tag to the raw fragments that normalize to it.
type Alias struct {
	Tag     string
	Aliases []string
}

// AliasTable is an ordered alias table. Order matters: for aliases contained in each other
// (エックスエル contains エル) the longer one must come first.
type AliasTable []Alias

// SizeAliases is the closed size vocabulary.
var SizeAliases = AliasTable{
	{Tag: "XXL", Aliases: []string{"XXL", "2XL", "エックスエックスエル"}},
	{Tag: "XL", Aliases: []string{"XL", "エックスエル"}},
	{Tag: "XS", Aliases: []string{"XS", "エックスエス"}},
	{Tag: "S", Aliases: []string{"S", "エス", "スモール", "small"}},
	{Tag: "M", Aliases: []string{"M", "エム", "ミディアム", "medium"}},
	{Tag: "L", Aliases: []string{"L", "エル", "ラージ", "large"}},
	{Tag: "FREE", Aliases: []string{"FREE", "フリー", "フリーサイズ", "one size", "os"}},
}

// ColorAliases is the closed color vocabulary.
var ColorAliases = AliasTable{
	{Tag: "black", Aliases: []string{"黒", "ブラック", "black"}},
	{Tag: "white", Aliases: []string{"白", "ホワイト", "white"}},
	{Tag: "red", Aliases: []string{"赤", "レッド", "red"}},
	{Tag: "blue", Aliases: []string{"青", "ブルー", "blue", "navy", "ネイビー"}},
	{Tag: "green", Aliases: []string{"緑", "グリーン", "green", "khaki", "カーキ"}},
	{Tag: "yellow", Aliases: []string{"黄", "イエロー", "yellow"}},
	{Tag: "pink", Aliases: []string{"ピンク", "pink"}},
	{Tag: "purple", Aliases: []string{"紫", "パープル", "purple"}},
	{Tag: "orange", Aliases: []string{"オレンジ", "orange"}},
	{Tag: "brown", Aliases: []string{"茶色", "ブラウン", "brown"}},
	{Tag: "gray", Aliases: []string{"グレー", "グレイ", "gray", "grey"}},
	{Tag: "silver", Aliases: []string{"シルバー", "silver"}},
	{Tag: "gold", Aliases: []string{"ゴールド", "gold"}},
}

// Sizes maps raw size fragments onto SizeAliases.
func Sizes(fragments ...string) []string {
	return SizeAliases.Match(fragments...)
}

// Colors maps raw color fragments onto ColorAliases.
func Colors(fragments ...string) []string {
	return ColorAliases.Match(fragments...)
}

// Match splits every fragment into tokens and maps each token onto the first tag with a matching
// alias. Latin aliases must equal a token (or a run of tokens for multi-word aliases), other scripts
// match as substrings since Japanese text is not space separated. Unmatched tokens are dropped.
// The result keeps first-seen order without duplicates.
func (t AliasTable) Match(fragments ...string) []string {
	seen := make(map[string]struct{})
	tags := []string{}

	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, fragment := range fragments {
		lowered := strings.ToLower(fragment)
		tokens := tokenize(lowered)
		for _, token := range tokens {
			if tag, ok := t.lookup(token); ok {
				add(tag)
			}
		}
		// multi-word latin aliases ("one size") span tokens
		joined := " " + strings.Join(tokens, " ") + " "
		for _, entry := range t {
			for _, alias := range entry.Aliases {
				if strings.Contains(alias, " ") && strings.Contains(joined, " "+strings.ToLower(alias)+" ") {
					add(entry.Tag)
				}
			}
		}
	}

	return tags
}

func (t AliasTable) lookup(token string) (string, bool) {
	for _, entry := range t {
		for _, alias := range entry.Aliases {
			alias = strings.ToLower(alias)
			if isLatin(alias) {
				if token == alias {
					return entry.Tag, true
				}
				continue
			}
			if strings.Contains(token, alias) {
				return entry.Tag, true
			}
		}
	}
	return "", false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '/', ',', '、', '，', '・', '|', ':', '：', '(', ')', '（', '）', '[', ']', '-', '_':
			return true
		}
		return unicode.IsSpace(r)
	})
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
