package taxonomy

// TitleType is the abstract title-type vocabulary. The wire value
// differs between endpoint families: lists say "movie" where search
// says "feature", otherwise the camelCase spellings match.
type TitleType string

const (
	TypeFeature     TitleType = "feature"
	TypeTVMovie     TitleType = "tvmovie"
	TypeSeries      TitleType = "series"
	TypeMiniSeries  TitleType = "mini"
	TypeEpisode     TitleType = "episode"
	TypeSpecial     TitleType = "special"
	TypeShort       TitleType = "short"
	TypeTVShort     TitleType = "tvshort"
	TypeVideo       TitleType = "video"
	TypeDocumentary TitleType = "documentary"
	TypeGame        TitleType = "game"
	TypeMusicVideo  TitleType = "music"
	TypePodcast     TitleType = "podcast"
	TypePodcastEp   TitleType = "podcastepisode"
)

var titleTypeWire = map[TitleType][2]string{
	// abstract: {search dialect, list dialect}
	TypeFeature:     {"feature", "movie"},
	TypeTVMovie:     {"tvMovie", "tvMovie"},
	TypeSeries:      {"tvSeries", "tvSeries"},
	TypeMiniSeries:  {"tvMiniSeries", "tvMiniSeries"},
	TypeEpisode:     {"tvEpisode", "tvEpisode"},
	TypeSpecial:     {"tvSpecial", "tvSpecial"},
	TypeShort:       {"short", "short"},
	TypeTVShort:     {"tvShort", "tvShort"},
	TypeVideo:       {"video", "video"},
	TypeDocumentary: {"documentary", "documentary"},
	TypeGame:        {"videoGame", "videoGame"},
	TypeMusicVideo:  {"musicVideo", "musicVideo"},
	TypePodcast:     {"podcastSeries", "podcastSeries"},
	TypePodcastEp:   {"podcastEpisode", "podcastEpisode"},
}

// TitleTypeWire translates an abstract type for a dialect. Unknown types
// pass through unchanged so a caller can feed raw wire values.
func TitleTypeWire(t TitleType, d Dialect) string {
	wire, ok := titleTypeWire[t]
	if !ok {
		return string(t)
	}
	return wire[d]
}

// TitleTypeFromWire maps a wire value of either dialect back to the
// abstract type.
var titleTypeFromWire = func() map[string]TitleType {
	m := make(map[string]TitleType, len(titleTypeWire)*2)
	for abstract, wire := range titleTypeWire {
		m[wire[DialectSearch]] = abstract
		m[wire[DialectList]] = abstract
	}
	return m
}()

// TitleTypeFromWire resolves an IMDb wire value back to the abstract
// vocabulary.
func TitleTypeFromWire(wire string) (TitleType, bool) {
	t, ok := titleTypeFromWire[wire]
	return t, ok
}

// Closed type sets the compiler selects from media and niche. Featured
// film menus include everything film-shaped; the narrower tags get their
// own lists.
var (
	TypesFilm     = []TitleType{TypeFeature, TypeTVMovie, TypeVideo, TypeSpecial, TypeShort, TypeTVShort}
	TypesFilmOnly = []TitleType{TypeFeature, TypeTVMovie, TypeVideo}
	TypesShow     = []TitleType{TypeSeries, TypeMiniSeries}
	TypesMini     = []TitleType{TypeMiniSeries}
	TypesShort    = []TitleType{TypeShort, TypeTVShort}
	TypesSpecial  = []TitleType{TypeSpecial}
	TypesEpisode  = []TitleType{TypeEpisode}
)
