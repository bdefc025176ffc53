package parser

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// locator is a CSS selector with an optional attribute to read instead of the element text.
type locator struct {
	selector string
	attr     string
}

var attrSuffix = regexp.MustCompile(`^(.+)@([a-zA-Z_:][-a-zA-Z0-9_:.]*)$`)

func parseLocator(raw string) locator {
	raw = strings.TrimSpace(raw)
	if m := attrSuffix.FindStringSubmatch(raw); m != nil {
		return locator{selector: strings.TrimSpace(m[1]), attr: m[2]}
	}
	return locator{selector: raw}
}

var spaces = regexp.MustCompile(`\s+`)

func (l locator) value(s *goquery.Selection) string {
	if l.attr != "" {
		v, _ := s.Attr(l.attr)
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(spaces.ReplaceAllString(s.Text(), " "))
}

// firstText tries locators in order and returns the first non-empty value.
func firstText(scope *goquery.Selection, locators []string) string {
	for _, raw := range locators {
		loc := parseLocator(raw)
		if loc.selector == "" {
			continue
		}

		var found string
		scope.Find(loc.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = loc.value(s)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// allTexts returns every non-empty value of the first locator that yields any.
func allTexts(scope *goquery.Selection, locators []string) []string {
	for _, raw := range locators {
		loc := parseLocator(raw)
		if loc.selector == "" {
			continue
		}

		var values []string
		scope.Find(loc.selector).Each(func(_ int, s *goquery.Selection) {
			if v := loc.value(s); v != "" {
				values = append(values, v)
			}
		})
		if len(values) > 0 {
			return values
		}
	}
	return nil
}

// exists reports whether any locator matches an element.
func exists(scope *goquery.Selection, locators ...string) bool {
	for _, raw := range locators {
		if scope.Find(parseLocator(raw).selector).Length() > 0 {
			return true
		}
	}
	return false
}

// absoluteURL resolves ref against base. Empty, fragment-only and javascript: references yield "".
func absoluteURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(strings.ToLower(ref), "javascript:") {
		return ""
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		if strings.HasPrefix(ref, "//") {
			return "https:" + ref
		}
		return refURL.String()
	}

	resolved := baseURL.ResolveReference(refURL)
	resolved.Fragment = ""
	return resolved.String()
}

// uniqueStrings drops empty values and duplicates, keeping first-seen order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
