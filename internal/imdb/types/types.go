// Package types contains shared type definitions for the IMDb provider packages.
package types

// Media classifies what a request targets or what a result describes.
type Media string

const (
	MediaMovie   Media = "movie"
	MediaShow    Media = "show"
	MediaSeason  Media = "season"
	MediaEpisode Media = "episode"
	MediaPerson  Media = "person"
	MediaList    Media = "list"
	MediaUnknown Media = "unknown"
)

// Niche tags are the closed, high-level category vocabulary the compiler
// expands into concrete IMDb parameters. Order matters: earlier tags win
// when two tags imply conflicting parameters.
type Niche string

const (
	NicheFeature   Niche = "feature"
	NicheShort     Niche = "short"
	NicheSpecial   Niche = "special"
	NicheMini      Niche = "mini"
	NicheAnima     Niche = "anima"
	NicheAnime     Niche = "anime"
	NicheDonghua   Niche = "donghua"
	NicheDocu      Niche = "docu"
	NicheFamily    Niche = "family"
	NicheNew       Niche = "new"
	NicheHome      Niche = "home"
	NicheBest      Niche = "best"
	NicheWorst     Niche = "worst"
	NichePrestige  Niche = "prestige"
	NichePopular   Niche = "popular"
	NicheUnpopular Niche = "unpopular"
	NicheViewed    Niche = "viewed"
	NicheGross     Niche = "gross"
	NicheAward     Niche = "award"
	NicheTrend     Niche = "trend"
	NicheArrival   Niche = "arrival"
	NicheKid       Niche = "kid"
	NicheTeen      Niche = "teen"
	NicheAdult     Niche = "adult"
	NicheRegion    Niche = "region"
	NicheTopic     Niche = "topic"
	NicheMood      Niche = "mood"
	NicheAge       Niche = "age"
	NicheQuality   Niche = "quality"
	NicheOriginal  Niche = "original"
	NicheSet       Niche = "set"
	NicheTele      Niche = "tele"
)

// Release narrows a request to a release window.
type Release string

const (
	ReleaseNew    Release = "new"    // released up to today
	ReleaseHome   Release = "home"   // released and available for home viewing
	ReleaseFuture Release = "future" // not yet released
)

// Strictness is the post-filter level applied to compiled requests.
type Strictness string

const (
	FilterNone    Strictness = "none"
	FilterLenient Strictness = "lenient"
	FilterStrict  Strictness = "strict"
)

// Voting strictness symbols accepted wherever a numeric rating or vote
// bound is expected.
const (
	VotingMinimal  = "minimal"
	VotingLenient  = "lenient"
	VotingNormal   = "normal"
	VotingModerate = "moderate"
	VotingStrict   = "strict"
	VotingExtreme  = "extreme"
)

// Range is an inclusive bound pair. Nil halves are open ends.
type Range struct {
	Lo *float64
	Hi *float64
}

// NewRange builds a closed range from two concrete bounds.
func NewRange(lo, hi float64) Range {
	return Range{Lo: &lo, Hi: &hi}
}

// RangeFrom builds a half-open range bounded below.
func RangeFrom(lo float64) Range { return Range{Lo: &lo} }

// RangeTo builds a half-open range bounded above.
func RangeTo(hi float64) Range { return Range{Hi: &hi} }

// Empty reports whether both ends are open.
func (r Range) Empty() bool { return r.Lo == nil && r.Hi == nil }

// Contains reports whether v lies within the range. Open ends always pass.
func (r Range) Contains(v float64) bool {
	if r.Lo != nil && v < *r.Lo {
		return false
	}
	if r.Hi != nil && v > *r.Hi {
		return false
	}
	return true
}

// Request is the language-neutral input consumed by the query compiler.
// It is created by the caller and never mutated once a fetch begins.
type Request struct {
	Media  Media
	Niches []Niche

	ID      string
	User    string
	Query   string
	Keyword []string

	Types  []string
	Status string

	Release Release

	// Year, Date, Duration, Rating and Votes accept scalars, ranges,
	// booleans and symbolic strictness names; see compile.ParseYears and
	// friends for the accepted shapes.
	Year     any
	Date     any
	Duration any
	Rating   any
	Votes    any

	Genres       []string
	Languages    []string // ISO-639-1; "+" prefix = primary, "!" = exclude
	Countries    []string // ISO alpha-2; same prefixes; "uk" maps to "gb"
	Certificates []string

	Company string
	Studio  string
	Network string

	Group  string // award-group id, or "true" for the default group
	Gender string

	Online  bool
	Theater bool

	Limit  int // 1..250
	Page   int
	Sort   string
	Order  string
	Adult  bool
	Filter Strictness
	View   string
	CSV    bool
}

// Clone returns a deep copy so callers can derive variants without
// aliasing slices.
func (r Request) Clone() Request {
	out := r
	out.Niches = append([]Niche(nil), r.Niches...)
	out.Keyword = append([]string(nil), r.Keyword...)
	out.Types = append([]string(nil), r.Types...)
	out.Genres = append([]string(nil), r.Genres...)
	out.Languages = append([]string(nil), r.Languages...)
	out.Countries = append([]string(nil), r.Countries...)
	out.Certificates = append([]string(nil), r.Certificates...)
	return out
}

// HasNiche reports whether the request carries the given tag.
func (r Request) HasNiche(n Niche) bool {
	for _, have := range r.Niches {
		if have == n {
			return true
		}
	}
	return false
}

// CastMember is one credited cast entry. Order is the on-page billing
// position starting at 0.
type CastMember struct {
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Order     int    `json:"order"`
}

// Finance aggregates box-office figures in US dollars.
type Finance struct {
	Budget  int64 `json:"budget,omitempty"`
	Revenue int64 `json:"revenue,omitempty"`
	Opening int64 `json:"opening,omitempty"`
	Profit  int64 `json:"profit,omitempty"`
}

// AwardSummary is the best-effort aggregate from an awards page.
type AwardSummary struct {
	Wins        int    `json:"wins,omitempty"`
	Nominations int    `json:"nominations,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// Voting preserves a provider's native rating sub-fields.
type Voting struct {
	Rating float64 `json:"rating,omitempty"`
	Votes  int64   `json:"votes,omitempty"`
}

// MetaImage wraps an artwork URL with sort hints shared with sibling
// providers.
type MetaImage struct {
	Link      string `json:"link"`
	Provider  string `json:"provider"`
	Kind      string `json:"kind"`
	SortIndex int    `json:"sortIndex"`
	SortVote  int    `json:"sortVote"`
}

// Temp carries provider-native leftovers keyed by provider name
// ("imdb", "metacritic"). Downstream caches use it to remember the
// request context an item came from.
type Temp struct {
	Voting   *Voting  `json:"voting,omitempty"`
	Image    string   `json:"image,omitempty"`
	Time     string   `json:"time,omitempty"`
	Count    int      `json:"count,omitempty"`
	Position int      `json:"position,omitempty"`
	Niches   []Niche  `json:"niches,omitempty"`
	Extra    []string `json:"extra,omitempty"`
}

// Episode is one entry of a season record.
type Episode struct {
	ID        string  `json:"id"`
	Season    int     `json:"season"`
	Episode   int     `json:"episode"`
	Title     string  `json:"title,omitempty"`
	Plot      string  `json:"plot,omitempty"`
	Premiered string  `json:"premiered,omitempty"`
	Duration  int     `json:"duration,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Votes     int64   `json:"votes,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// Result is the normalized record the extractors emit. Title-, person-
// and list-records share the shape; Media distinguishes them.
type Result struct {
	IDs   map[string]string `json:"ids"` // keyed by provider
	Media Media             `json:"media"`
	Niche []Niche           `json:"niche"`

	Title         string `json:"title,omitempty"`
	OriginalTitle string `json:"originaltitle,omitempty"`
	Plot          string `json:"plot,omitempty"`

	Year      int    `json:"year,omitempty"`
	Premiered string `json:"premiered,omitempty"` // YYYY-MM-DD

	Genres      []string `json:"genres,omitempty"`
	Certificate string   `json:"certificate,omitempty"`
	Duration    int      `json:"duration,omitempty"` // seconds
	Country     []string `json:"country,omitempty"`
	Language    []string `json:"language,omitempty"`
	Studio      []string `json:"studio,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`

	Cast     []CastMember `json:"cast,omitempty"`
	Director []string     `json:"director,omitempty"`
	Writer   []string     `json:"writer,omitempty"`
	Creator  []string     `json:"creator,omitempty"`

	Award   *AwardSummary `json:"award,omitempty"`
	Finance *Finance      `json:"finance,omitempty"`

	Rating float64 `json:"rating,omitempty"`
	Votes  int64   `json:"votes,omitempty"`

	Season   int       `json:"season,omitempty"`
	Episodes []Episode `json:"episodes,omitempty"`

	Poster *MetaImage `json:"poster,omitempty"`

	Temp map[string]*Temp `json:"temp,omitempty"`
}

// NewResult returns a record with the always-present fields initialized.
func NewResult(media Media) *Result {
	return &Result{
		IDs:   map[string]string{},
		Media: media,
		Niche: []Niche{},
		Temp:  map[string]*Temp{},
	}
}

// TempFor returns the provider bucket, creating it on first use.
func (r *Result) TempFor(provider string) *Temp {
	if r.Temp == nil {
		r.Temp = map[string]*Temp{}
	}
	t, ok := r.Temp[provider]
	if !ok {
		t = &Temp{}
		r.Temp[provider] = t
	}
	return t
}
