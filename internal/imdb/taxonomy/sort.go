package taxonomy

import "strings"

// SortKey is the abstract sort vocabulary. Each key knows its wire
// value per dialect and the order used when the caller does not pick
// one.
type SortKey struct {
	Search       string
	List         string
	DefaultOrder string // "asc" or "desc"
}

var sortKeys = map[string]SortKey{
	"popularity": {Search: "moviemeter", List: "moviemeter", DefaultOrder: "asc"},
	"starmeter":  {Search: "starmeter", List: "starmeter", DefaultOrder: "asc"},
	"rating":     {Search: "user_rating", List: "user_rating", DefaultOrder: "desc"},
	"votes":      {Search: "num_votes", List: "num_votes", DefaultOrder: "desc"},
	"date":       {Search: "release_date", List: "release_date", DefaultOrder: "desc"},
	"year":       {Search: "year", List: "year", DefaultOrder: "desc"},
	"alphabetic": {Search: "alpha", List: "alpha", DefaultOrder: "asc"},
	"runtime":    {Search: "runtime", List: "runtime", DefaultOrder: "desc"},
	"gross":      {Search: "boxoffice_gross_us", List: "boxoffice_gross_us", DefaultOrder: "desc"},
	"added":      {Search: "release_date", List: "date_added", DefaultOrder: "desc"},
	"order":      {Search: "release_date", List: "list_order", DefaultOrder: "asc"},
	"myrating":   {Search: "user_rating", List: "your_rating", DefaultOrder: "desc"},
}

// SortWire resolves an abstract sort key for a dialect, applying the
// popularity rewrite: IMDb's popularity sort is "moviemeter" for titles
// and "starmeter" for people. Empty order falls back to the key's
// default.
func SortWire(key, order string, d Dialect, person bool) (wireKey, wireOrder string, ok bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "_", "")
	if k == "popularity" && person {
		k = "starmeter"
	}
	sk, found := sortKeys[k]
	if !found {
		return "", "", false
	}
	wireKey = sk.Search
	if d == DialectList {
		wireKey = sk.List
	}
	wireOrder = strings.ToLower(strings.TrimSpace(order))
	if wireOrder != "asc" && wireOrder != "desc" {
		wireOrder = sk.DefaultOrder
	}
	return wireKey, wireOrder, true
}

// SortForNiche maps best/worst style tags to the sort they imply.
func SortForNiche(niche string) (key, order string, ok bool) {
	switch niche {
	case "best", "prestige", "quality":
		return "rating", "desc", true
	case "worst":
		return "rating", "asc", true
	case "popular", "trend":
		return "popularity", "asc", true
	case "unpopular":
		return "popularity", "desc", true
	case "viewed":
		return "votes", "desc", true
	case "gross":
		return "gross", "desc", true
	case "new", "arrival", "home":
		return "date", "desc", true
	}
	return "", "", false
}
