package taxonomy

import "strings"

// Region menus expand into primary languages and countries. Values are
// ISO-639-1 / ISO alpha-2; the compiler turns the first entry into the
// primary-marked form.
type Region struct {
	Languages []string
	Countries []string
}

var regions = map[string]Region{
	"india":       {Languages: []string{"hi", "ta", "te", "ml", "kn", "bn"}, Countries: []string{"in"}},
	"korea":       {Languages: []string{"ko"}, Countries: []string{"kr"}},
	"japan":       {Languages: []string{"ja"}, Countries: []string{"jp"}},
	"china":       {Languages: []string{"zh"}, Countries: []string{"cn", "hk", "tw"}},
	"france":      {Languages: []string{"fr"}, Countries: []string{"fr"}},
	"germany":     {Languages: []string{"de"}, Countries: []string{"de", "at"}},
	"italy":       {Languages: []string{"it"}, Countries: []string{"it"}},
	"spain":       {Languages: []string{"es"}, Countries: []string{"es"}},
	"latin":       {Languages: []string{"es", "pt"}, Countries: []string{"mx", "ar", "br", "co", "cl"}},
	"scandinavia": {Languages: []string{"sv", "da", "no", "fi", "is"}, Countries: []string{"se", "dk", "no", "fi", "is"}},
	"turkey":      {Languages: []string{"tr"}, Countries: []string{"tr"}},
	"russia":      {Languages: []string{"ru"}, Countries: []string{"ru"}},
	"arabia":      {Languages: []string{"ar"}, Countries: []string{"eg", "sa", "ae", "ma", "lb"}},
	"britain":     {Languages: []string{"en"}, Countries: []string{"gb", "ie"}},
	"australia":   {Languages: []string{"en"}, Countries: []string{"au", "nz"}},
}

// RegionFor resolves a region menu tag.
func RegionFor(name string) (Region, bool) {
	r, ok := regions[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// Spam buckets excluded under strict filtering when the caller has not
// chosen a language or country explicitly. These buckets flood every
// index menu with barely-voted entries.
var (
	SpamLanguages = []string{"hi", "tr"}
	SpamCountries = []string{"in", "tr"}
)

// NormalizeCountry lowers a country code and applies the common
// misspelling: IMDb files the United Kingdom under "gb", not "uk".
// Prefixes survive.
func NormalizeCountry(code string) string {
	stripped := code
	prefix := ""
	if s, neg := Negated(code); neg {
		stripped, prefix = s, PrefixNegate
	} else if s, prim := Primary(code); prim {
		stripped, prefix = s, PrefixPrimary
	}
	c := strings.ToLower(strings.TrimSpace(stripped))
	if c == "uk" {
		c = "gb"
	}
	return prefix + c
}

// NormalizeLanguage lowers a language code, keeping prefixes.
func NormalizeLanguage(code string) string {
	stripped := code
	prefix := ""
	if s, neg := Negated(code); neg {
		stripped, prefix = s, PrefixNegate
	} else if s, prim := Primary(code); prim {
		stripped, prefix = s, PrefixPrimary
	}
	return prefix + strings.ToLower(strings.TrimSpace(stripped))
}
