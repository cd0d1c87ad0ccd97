package taxonomy

import "strings"

// Genres are stored lowercase in Results; the search endpoint wants
// them capitalized, the list endpoint lower-dashed.
var genreWire = map[string][2]string{
	"action":      {"Action", "action"},
	"adventure":   {"Adventure", "adventure"},
	"animation":   {"Animation", "animation"},
	"biography":   {"Biography", "biography"},
	"comedy":      {"Comedy", "comedy"},
	"crime":       {"Crime", "crime"},
	"documentary": {"Documentary", "documentary"},
	"drama":       {"Drama", "drama"},
	"family":      {"Family", "family"},
	"fantasy":     {"Fantasy", "fantasy"},
	"film-noir":   {"Film-Noir", "film-noir"},
	"game-show":   {"Game-Show", "game-show"},
	"history":     {"History", "history"},
	"horror":      {"Horror", "horror"},
	"music":       {"Music", "music"},
	"musical":     {"Musical", "musical"},
	"mystery":     {"Mystery", "mystery"},
	"news":        {"News", "news"},
	"reality-tv":  {"Reality-TV", "reality-tv"},
	"romance":     {"Romance", "romance"},
	"sci-fi":      {"Sci-Fi", "sci-fi"},
	"short":       {"Short", "short"},
	"sport":       {"Sport", "sport"},
	"talk-show":   {"Talk-Show", "talk-show"},
	"thriller":    {"Thriller", "thriller"},
	"war":         {"War", "war"},
	"western":     {"Western", "western"},
}

// GenreSupported reports whether the genre exists in IMDb's closed set.
func GenreSupported(genre string) bool {
	_, ok := genreWire[normalizeGenreKey(genre)]
	return ok
}

// GenreWire translates an abstract genre to the dialect's spelling. The
// negation prefix is preserved. Unsupported genres return ok=false so
// the compiler can fail fast on topic expansions.
func GenreWire(genre string, d Dialect) (string, bool) {
	stripped, negated := Negated(genre)
	wire, ok := genreWire[normalizeGenreKey(stripped)]
	if !ok {
		return "", false
	}
	v := wire[d]
	if negated {
		v = PrefixNegate + v
	}
	return v, true
}

// GenreNormalize lowercases a wire-form genre back into the abstract
// vocabulary, tolerating spacing variants ("Sci Fi", "SCI-FI").
func GenreNormalize(wire string) string {
	return normalizeGenreKey(wire)
}

func normalizeGenreKey(genre string) string {
	g := strings.ToLower(strings.TrimSpace(genre))
	g = strings.ReplaceAll(g, " ", "-")
	g = strings.ReplaceAll(g, "_", "-")
	return g
}

// Topic and mood menus add at most one genre because IMDb ANDs the
// genres parameter; these tables pick that genre per tag.
var TopicGenre = map[string]string{
	"crime":     "crime",
	"war":       "war",
	"western":   "western",
	"sport":     "sport",
	"music":     "music",
	"musical":   "musical",
	"history":   "history",
	"biography": "biography",
	"noir":      "film-noir",
	"reality":   "reality-tv",
	"talk":      "talk-show",
	"game":      "game-show",
	"news":      "news",
}

var MoodGenre = map[string]string{
	"laugh":      "comedy",
	"cry":        "drama",
	"fear":       "horror",
	"tense":      "thriller",
	"love":       "romance",
	"wonder":     "fantasy",
	"explore":    "adventure",
	"adrenaline": "action",
	"puzzle":     "mystery",
	"dream":      "sci-fi",
}
