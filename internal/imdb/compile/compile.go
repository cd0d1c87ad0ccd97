// Package compile turns language-neutral requests into concrete IMDb
// URLs. The compiler is a pure function of the request, the taxonomy
// tables and the company knowledge base; it performs no IO.
package compile

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/reeldex/reeldex/internal/imdb/company"
	"github.com/reeldex/reeldex/internal/imdb/id"
	"github.com/reeldex/reeldex/internal/imdb/taxonomy"
	"github.com/reeldex/reeldex/internal/imdb/types"
	"github.com/reeldex/reeldex/internal/imdb/voting"
)

// MaxURLLength is the longest URL IMDb's frontends reliably accept.
// Company include/exclude lists are truncated to fit under it.
const MaxURLLength = 7190

// DefaultLimit is the page size used when a request does not choose one.
const DefaultLimit = 50

// Compiler compiles requests against the shared knowledge base.
type Compiler struct {
	kb     *company.KB
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a compiler. The knowledge base may be nil when no company
// menus are needed.
func New(kb *company.KB, logger zerolog.Logger) *Compiler {
	return &Compiler{
		kb:     kb,
		logger: logger.With().Str("component", "compile").Logger(),
		now:    time.Now,
	}
}

// WithClock overrides the compiler's clock; tests pin it so compiled
// date bounds are reproducible.
func (c *Compiler) WithClock(now func() time.Time) *Compiler {
	out := *c
	out.now = now
	return &out
}

// Compiled is the outcome of compilation: the URL plus the request
// context downstream stages need (post-filter predicates, decoration
// niches, local paging).
type Compiled struct {
	URL      string
	Endpoint Endpoint

	// Reduce means the endpoint ignores the start offset; the caller
	// slices the oversized response locally.
	Reduce bool

	Limit  int
	Page   int
	Offset int

	Media  types.Media
	Niches []types.Niche

	Genres       []string
	Languages    []string
	Countries    []string
	Certificates []string

	Bounds voting.Bounds
	Years  types.Range
	DateLo string
	DateHi string

	CSV bool
}

// Compile builds the URL for a request against the given endpoint.
// Returns types.ErrNoEndpoint for media IMDb has no surface for and
// types.ErrInvalidRequest for unsatisfiable expansions.
func (c *Compiler) Compile(req types.Request, ep Endpoint) (*Compiled, error) {
	if req.Media == types.MediaSeason && (ep == EndpointSearchTitle || ep == EndpointSearchName || ep == EndpointFind) {
		// IMDb has no season search surface.
		return nil, types.ErrNoEndpoint
	}

	switch ep {
	case EndpointTitle:
		return c.compileTitle(req)
	case EndpointEpisodes:
		return c.compileEpisodes(req)
	case EndpointAward:
		return c.compileAward(req)
	case EndpointFind:
		return c.compileFind(req)
	case EndpointListExport:
		return c.compileExport(req)
	case EndpointUserLists:
		return c.compileUserPage(req, ep)
	}

	return c.compileQuery(req, ep)
}

func (c *Compiler) compileTitle(req types.Request) (*Compiled, error) {
	title, err := id.Title(req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
	}
	return &Compiled{URL: id.TitleURL(title), Endpoint: EndpointTitle, Media: req.Media, Niches: req.Niches}, nil
}

func (c *Compiler) compileEpisodes(req types.Request) (*Compiled, error) {
	show, err := id.Title(req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
	}
	season := 0
	if req.Page > 0 { // season number travels in Page for episode requests
		season = req.Page
	}
	return &Compiled{URL: id.EpisodesURL(show, season), Endpoint: EndpointEpisodes, Media: types.MediaEpisode, Niches: req.Niches, Page: season}, nil
}

func (c *Compiler) compileAward(req types.Request) (*Compiled, error) {
	title, err := id.Title(req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
	}
	return &Compiled{URL: id.AwardURL(title), Endpoint: EndpointAward, Media: req.Media, Niches: req.Niches}, nil
}

func (c *Compiler) compileFind(req types.Request) (*Compiled, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("%w: find requires a query", types.ErrInvalidRequest)
	}
	kind := "tt"
	if req.Media == types.MediaPerson {
		kind = "nm"
	}
	u := fmt.Sprintf("%s?q=%s&s=%s", id.FindURL(), url.QueryEscape(req.Query), kind)
	return &Compiled{URL: u, Endpoint: EndpointFind, Media: req.Media, Niches: req.Niches, Limit: clampLimit(req.Limit, 250)}, nil
}

func (c *Compiler) compileExport(req types.Request) (*Compiled, error) {
	list, err := id.List(req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
	}
	out, errQ := c.compileQueryContext(req, EndpointListExport)
	if errQ != nil {
		return nil, errQ
	}
	out.URL = id.ListExportURL(list)
	out.CSV = true
	return out, nil
}

func (c *Compiler) compileUserPage(req types.Request, ep Endpoint) (*Compiled, error) {
	user, err := id.User(req.User)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
	}
	return &Compiled{URL: id.UserListsURL(user), Endpoint: ep, Media: types.MediaList, Niches: req.Niches}, nil
}

// compileQueryContext resolves the request context (bounds, predicates,
// decoration) without building a URL. Export compilation reuses it so
// the post-filter can enforce what the export endpoint cannot.
func (c *Compiler) compileQueryContext(req types.Request, ep Endpoint) (*Compiled, error) {
	st := newState(c, req, ep)
	if err := st.expand(); err != nil {
		return nil, err
	}
	return st.out, nil
}

func (c *Compiler) compileQuery(req types.Request, ep Endpoint) (*Compiled, error) {
	st := newState(c, req, ep)
	if err := st.expand(); err != nil {
		return nil, err
	}
	if err := st.assemble(); err != nil {
		return nil, err
	}
	return st.out, nil
}

// state carries one compilation through expansion and assembly.
type state struct {
	c   *Compiler
	req types.Request
	ep  Endpoint
	out *Compiled

	searchTypes []taxonomy.TitleType
	genres      []string
	languages   []string
	countries   []string
	keywords    []string
	sortKey     string
	sortOrder   string
	group       string
	online      bool
	theater     bool
	status      string

	companies company.Resolution
}

func newState(c *Compiler, req types.Request, ep Endpoint) *state {
	return &state{
		c:   c,
		req: req.Clone(),
		ep:  ep,
		out: &Compiled{
			Endpoint: ep,
			Media:    req.Media,
			Niches:   append([]types.Niche(nil), req.Niches...),
			CSV:      req.CSV,
		},
	}
}

func (s *state) expand() error {
	s.genres = append(s.genres, s.req.Genres...)
	s.languages = normalizeAll(s.req.Languages, taxonomy.NormalizeLanguage)
	s.countries = normalizeAll(s.req.Countries, taxonomy.NormalizeCountry)
	s.keywords = append(s.keywords, s.req.Keyword...)
	s.sortKey = s.req.Sort
	s.sortOrder = s.req.Order
	s.group = s.req.Group
	s.online = s.req.Online
	s.theater = s.req.Theater
	s.status = s.req.Status

	if err := s.expandNiches(); err != nil {
		return err
	}
	s.expandRelease()
	if err := s.expandBounds(); err != nil {
		return err
	}
	if err := s.expandCompanies(); err != nil {
		return err
	}
	s.applyFilterLevels()
	s.resolveSort()

	s.out.Genres = append([]string(nil), s.genres...)
	s.out.Languages = append([]string(nil), s.languages...)
	s.out.Countries = append([]string(nil), s.countries...)
	s.out.Certificates = append([]string(nil), s.req.Certificates...)

	return nil
}

func (s *state) expandNiches() error {
	for _, n := range s.req.Niches {
		switch n {
		case types.NicheAnime:
			s.addGenre("animation")
			s.addPrimaryLanguage("ja")
		case types.NicheDonghua:
			s.addGenre("animation")
			s.addPrimaryLanguage("zh")
		case types.NicheAnima:
			s.addGenre("animation")
		case types.NicheDocu:
			s.addGenre("documentary")
		case types.NicheFamily, types.NicheKid:
			s.addGenre("family")
		case types.NicheRegion:
			region, ok := taxonomy.RegionFor(s.req.Query)
			if !ok {
				return fmt.Errorf("%w: unknown region %q", types.ErrInvalidRequest, s.req.Query)
			}
			for i, lang := range region.Languages {
				if i == 0 {
					s.addPrimaryLanguage(lang)
					continue
				}
				s.languages = append(s.languages, lang)
			}
			for i, country := range region.Countries {
				if i == 0 {
					s.countries = append([]string{taxonomy.PrefixPrimary + country}, s.countries...)
					continue
				}
				s.countries = append(s.countries, country)
			}
			// The region query fed the expansion; it is not a keyword.
			s.req.Query = ""
		case types.NicheTopic:
			genre, ok := taxonomy.TopicGenre[strings.ToLower(s.req.Query)]
			if !ok {
				// IMDb ANDs genres, so an unsupported topic genre can
				// only produce an empty menu. Fail fast instead.
				return fmt.Errorf("%w: unsupported topic %q", types.ErrInvalidRequest, s.req.Query)
			}
			s.addGenre(genre)
			s.req.Query = ""
		case types.NicheMood:
			genre, ok := taxonomy.MoodGenre[strings.ToLower(s.req.Query)]
			if !ok {
				return fmt.Errorf("%w: unsupported mood %q", types.ErrInvalidRequest, s.req.Query)
			}
			s.addGenre(genre)
			s.req.Query = ""
		case types.NicheNew, types.NicheArrival:
			if s.req.Release == "" {
				s.req.Release = types.ReleaseNew
			}
		case types.NicheHome:
			if s.req.Release == "" {
				s.req.Release = types.ReleaseHome
			}
		case types.NicheAward:
			if s.group == "" {
				s.group = taxonomy.DefaultAwardGroup
			}
		}
	}
	return nil
}

func (s *state) expandRelease() {
	now := s.c.now()
	switch s.req.Release {
	case types.ReleaseNew:
		if s.req.Date == nil {
			s.req.Date = [2]string{"", formatDate(now)}
		}
		if s.sortKey == "" {
			s.sortKey, s.sortOrder = "date", "desc"
		}
	case types.ReleaseHome:
		if s.req.Date == nil {
			s.req.Date = [2]string{"", formatDate(now)}
		}
		s.online = true
		if s.sortKey == "" {
			s.sortKey, s.sortOrder = "date", "desc"
		}
	case types.ReleaseFuture:
		if s.req.Date == nil {
			s.req.Date = [2]string{formatDate(now.AddDate(0, 0, 1)), ""}
		}
		if s.sortKey == "" {
			s.sortKey, s.sortOrder = "date", "asc"
		}
	}
}

func (s *state) expandBounds() error {
	now := s.c.now()

	years, ok := YearRange(s.req.Year, now)
	if !ok {
		return fmt.Errorf("%w: bad year value %v", types.ErrInvalidRequest, s.req.Year)
	}
	s.out.Years = years

	lo, hi, ok := DateRange(s.req.Date, now)
	if !ok {
		return fmt.Errorf("%w: bad date value %v", types.ErrInvalidRequest, s.req.Date)
	}
	s.out.DateLo, s.out.DateHi = lo, hi

	s.out.Bounds = voting.Resolve(voting.Params{
		Media:     s.req.Media,
		Niches:    s.req.Niches,
		Release:   s.req.Release,
		Rating:    s.req.Rating,
		Votes:     s.req.Votes,
		Genres:    s.genres,
		Languages: s.languages,
		Countries: s.countries,
		Company:   s.req.Company,
		Status:    s.status,
	})
	return nil
}

func (s *state) expandCompanies() error {
	if s.c.kb == nil {
		return nil
	}

	resolve := func(name string, bucket company.Bucket) error {
		entry, ok := s.c.kb.Entry(name)
		if !ok {
			// Raw company ids pass straight through.
			if strings.HasPrefix(name, "co") {
				s.companies.Include = append(s.companies.Include, name)
				return nil
			}
			return fmt.Errorf("%w: unknown company %q", types.ErrInvalidRequest, name)
		}
		switch bucket {
		case company.BucketStudio:
			s.companies.Include = append(s.companies.Include, entry.Studios...)
		case company.BucketNetwork:
			s.companies.Include = append(s.companies.Include, entry.Networks...)
		}
		return nil
	}

	if s.req.Company != "" {
		if s.req.HasNiche(types.NicheOriginal) {
			// Originals menus go through the full recipe.
			lang := ""
			if len(s.languages) > 0 {
				lang = s.languages[0]
			}
			res, err := s.c.kb.Resolve(s.req.Company, s.req.Media, lang)
			if err != nil {
				if strings.HasPrefix(s.req.Company, "co") {
					s.companies.Include = append(s.companies.Include, s.req.Company)
				} else {
					return fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
				}
			} else {
				s.companies = res
			}
		} else if entry, ok := s.c.kb.Entry(s.req.Company); ok {
			// Plain company filters use everything we know about the
			// brand, no exclusions.
			s.companies.Include = append(s.companies.Include, entry.Studios...)
			s.companies.Include = append(s.companies.Include, entry.Networks...)
		} else if err := resolve(s.req.Company, company.BucketStudio); err != nil {
			return err
		}
	}
	if s.req.Studio != "" {
		if err := resolve(s.req.Studio, company.BucketStudio); err != nil {
			return err
		}
	}
	if s.req.Network != "" {
		if err := resolve(s.req.Network, company.BucketNetwork); err != nil {
			return err
		}
	}

	// Company menus without a date bound would surface announced but
	// unreleased titles; pin them to the past.
	if !s.companies.Empty() && s.out.DateLo == "" && s.out.DateHi == "" {
		s.out.DateHi = formatDate(s.c.now())
	}
	return nil
}

// applyFilterLevels adds the implicit exclusions the strictness level
// calls for. filter=none never adds anything.
func (s *state) applyFilterLevels() {
	if s.req.Filter == types.FilterNone || s.req.Filter == "" {
		return
	}

	exempt := s.req.HasNiche(types.NicheRegion) || s.req.HasNiche(types.NicheAward) || s.group != ""

	if s.req.Filter == types.FilterStrict && !exempt {
		if !hasChosen(s.languages) {
			for _, lang := range taxonomy.SpamLanguages {
				s.languages = append(s.languages, taxonomy.PrefixNegate+lang)
			}
		}
		if !hasChosen(s.countries) {
			for _, country := range taxonomy.SpamCountries {
				s.countries = append(s.countries, taxonomy.PrefixNegate+country)
			}
		}
	}

	// Keep plain film and show menus free of shorts and documentaries
	// unless the request asked for them.
	if s.req.Filter == types.FilterLenient || s.req.Filter == types.FilterStrict {
		if (s.req.Media == types.MediaMovie || s.req.Media == types.MediaShow) && len(s.genres) == 0 && !s.nicheWantsNarrow() {
			s.addGenre("!documentary")
			if s.req.Media == types.MediaMovie && !s.typesIncludeShort() {
				s.addGenre("!short")
			}
		}
	}
}

func (s *state) nicheWantsNarrow() bool {
	for _, n := range s.req.Niches {
		switch n {
		case types.NicheDocu, types.NicheShort, types.NicheSpecial, types.NicheAnime,
			types.NicheAnima, types.NicheDonghua, types.NicheTopic, types.NicheMood:
			return true
		}
	}
	return false
}

func (s *state) typesIncludeShort() bool {
	for _, t := range s.deriveTypes() {
		if t == taxonomy.TypeShort || t == taxonomy.TypeTVShort {
			return true
		}
	}
	return false
}

func (s *state) resolveSort() {
	if s.sortKey == "" && s.group != "" {
		// Bottom groups read best ascending.
		if g, ok := taxonomy.AwardGroupWire(s.group); ok && g.Bottom {
			s.sortKey, s.sortOrder = "rating", "asc"
		} else {
			s.sortKey, s.sortOrder = "rating", "desc"
		}
		return
	}
	if s.sortKey == "" {
		for _, n := range s.req.Niches {
			if key, order, ok := taxonomy.SortForNiche(string(n)); ok {
				s.sortKey, s.sortOrder = key, order
				return
			}
		}
	}
}

// deriveTypes picks the title-type set from media and niche.
func (s *state) deriveTypes() []taxonomy.TitleType {
	if len(s.req.Types) > 0 {
		out := make([]taxonomy.TitleType, 0, len(s.req.Types))
		for _, t := range s.req.Types {
			out = append(out, taxonomy.TitleType(t))
		}
		return out
	}
	switch {
	case s.req.HasNiche(types.NicheShort):
		return taxonomy.TypesShort
	case s.req.HasNiche(types.NicheSpecial):
		return taxonomy.TypesSpecial
	case s.req.HasNiche(types.NicheMini):
		return taxonomy.TypesMini
	}
	switch s.req.Media {
	case types.MediaMovie:
		return taxonomy.TypesFilm
	case types.MediaShow:
		return taxonomy.TypesShow
	case types.MediaEpisode:
		return taxonomy.TypesEpisode
	}
	return nil
}

// assemble builds the final URL, enforcing the length budget by
// truncating the company list.
func (s *state) assemble() error {
	base, err := s.basePath()
	if err != nil {
		return err
	}

	build := func(companyBudget int) (string, error) {
		params := s.buildParams(companyBudget)
		query := encodeParams(params)
		if query == "" {
			return base, nil
		}
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
		}
		return base + sep + query, nil
	}

	full, err := build(0)
	if err != nil {
		return err
	}
	if len(full) > MaxURLLength {
		overflow := len(full) - MaxURLLength
		budget := len(s.companies.Compose(0)) - overflow
		if budget < 0 {
			budget = 0
		}
		full, err = build(budget)
		if err != nil {
			return err
		}
		s.c.logger.Debug().
			Int("budget", budget).
			Msg("Truncated company list to fit URL budget")
	}
	if len(full) > MaxURLLength {
		// Companies were already trimmed; the rest of the query is not
		// negotiable, so an oversized request is unsatisfiable.
		return fmt.Errorf("%w: query exceeds %d characters", types.ErrInvalidRequest, MaxURLLength)
	}

	s.out.URL = full
	return nil
}

func (s *state) basePath() (string, error) {
	switch s.ep {
	case EndpointSearchTitle:
		return id.SearchURL(id.KindTitle), nil
	case EndpointSearchName:
		return id.SearchURL(id.KindPerson), nil
	case EndpointList:
		list, err := id.List(s.req.ID)
		if err != nil {
			return "", fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
		}
		return id.ListURL(list), nil
	case EndpointWatchlist, EndpointRatings, EndpointCheckins:
		user, err := id.User(s.req.User)
		if err != nil {
			return "", fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
		}
		switch s.ep {
		case EndpointWatchlist:
			return id.WatchlistURL(user), nil
		case EndpointRatings:
			return id.RatingsURL(user), nil
		default:
			return id.CheckinsURL(user), nil
		}
	}
	return "", fmt.Errorf("%w: endpoint %s has no query surface", types.ErrInvalidRequest, s.ep)
}

type param struct {
	key   string
	value string
}

func (s *state) buildParams(companyBudget int) []param {
	dialect := s.ep.Dialect()
	var params []param
	add := func(key, value string) {
		if value != "" {
			params = append(params, param{key, value})
		}
	}

	// Types.
	if typ := s.deriveTypes(); len(typ) > 0 {
		wire := make([]string, len(typ))
		for i, t := range typ {
			wire[i] = taxonomy.TitleTypeWire(t, dialect)
		}
		add("title_type", strings.Join(wire, ","))
	}

	if s.status != "" {
		if wire, ok := taxonomy.StatusWire(s.status); ok {
			add("production_status", wire)
		}
	}

	// Date and year bounds.
	if s.out.DateLo != "" || s.out.DateHi != "" {
		add("release_date", EncodeDatePair(s.out.DateLo, s.out.DateHi))
	}
	if !s.out.Years.Empty() {
		add("year", EncodeRange(s.out.Years))
	}

	// Rating and vote bounds.
	if r := s.out.Bounds.RatingRange(); !r.Empty() {
		add("user_rating", EncodeRange(r))
	}
	if v := s.out.Bounds.VotesRange(); !v.Empty() {
		add("num_votes", EncodeRange(v))
	}

	// Runtime travels in minutes on the wire.
	if dur, ok := DurationRange(s.req.Duration); ok && !dur.Empty() {
		add("runtime", EncodeRange(secondsToMinutes(dur)))
	}

	// Genres.
	if len(s.genres) > 0 {
		wire := make([]string, 0, len(s.genres))
		for _, g := range s.genres {
			if w, ok := taxonomy.GenreWire(g, dialect); ok {
				wire = append(wire, w)
			}
		}
		add("genres", strings.Join(wire, ","))
	}

	if len(s.keywords) > 0 {
		add("keywords", strings.Join(s.keywords, ","))
	}
	if s.req.Query != "" {
		add("title", s.req.Query)
	}

	// Companies, under the URL budget.
	if !s.companies.Empty() {
		add("companies", s.companies.Compose(companyBudget))
	}

	if s.group != "" {
		if g, ok := taxonomy.AwardGroupWire(s.group); ok {
			add("groups", g.Wire)
		} else if s.group != "true" {
			add("groups", s.group)
		}
	}
	if s.req.Gender != "" {
		if wire, ok := taxonomy.GenderWire(s.req.Gender); ok {
			add("gender", wire)
		}
	}

	// Languages and countries: primary markers map to dedicated
	// single-valued parameters.
	primaryLang, langs := splitPrimary(s.languages)
	add("primary_language", primaryLang)
	add("languages", strings.Join(langs, ","))

	primaryCountry, countries := splitPrimary(s.countries)
	add("country_of_origin", primaryCountry)
	add("countries", strings.Join(countries, ","))

	// Certificates, with the NR special case.
	add("certificates", s.certificatesWire())

	if s.online {
		if dialect == taxonomy.DialectList {
			add("watch_option", taxonomy.OnlineAvailabilityList)
		} else {
			add("online_availability", taxonomy.OnlineAvailabilitySearch)
		}
	}
	if s.theater {
		add("now_playing", taxonomy.TheaterAvailability)
	}

	if s.req.Adult {
		add("adult", "include")
	}

	// Sort.
	if s.sortKey != "" {
		person := s.ep == EndpointSearchName
		if key, order, ok := taxonomy.SortWire(s.sortKey, s.sortOrder, dialect, person); ok {
			add("sort", key+","+order)
		}
	}

	// Paging.
	limit := clampLimit(s.req.Limit, s.ep.pageLimit())
	page := s.req.Page
	if page < 1 {
		page = 1
	}
	s.out.Limit = limit
	s.out.Page = page

	if dialect == taxonomy.DialectList {
		add("mode", taxonomy.ViewWire(s.req.View, dialect))
		add("page", strconv.Itoa(page))
	} else {
		offset := (page-1)*limit + 1
		s.out.Offset = offset
		count := limit
		if page > 1 {
			// The new layout ignores start; fetch enough to slice
			// locally.
			count = limit * page
			if count > 250 {
				count = 250
			}
			s.out.Reduce = true
		}
		add("count", strconv.Itoa(count))
		add("start", strconv.Itoa(offset))
		if s.req.View != "" {
			add("view", taxonomy.ViewWire(s.req.View, dialect))
		}
	}

	return params
}

func (s *state) certificatesWire() string {
	certs := s.req.Certificates
	if len(certs) == 1 {
		if normalized, ok := taxonomy.NormalizeCertificate(certs[0]); ok && normalized == "NR" {
			// "NR" is not a certificate IMDb knows; unrated means
			// "none of the known ones".
			negated := make([]string, 0, len(taxonomy.KnownCertificates()))
			for _, known := range taxonomy.KnownCertificates() {
				negated = append(negated, taxonomy.PrefixNegate+"US:"+known)
			}
			return strings.Join(negated, ",")
		}
	}
	wire := make([]string, 0, len(certs))
	for _, cert := range certs {
		if w, ok := taxonomy.CertificateWire(cert); ok {
			wire = append(wire, w)
		}
	}
	return strings.Join(wire, ",")
}

func (s *state) addGenre(genre string) {
	for _, have := range s.genres {
		if have == genre {
			return
		}
	}
	s.genres = append(s.genres, genre)
}

func (s *state) addPrimaryLanguage(lang string) {
	marked := taxonomy.PrefixPrimary + lang
	for _, have := range s.languages {
		if have == marked || have == lang {
			return
		}
	}
	s.languages = append([]string{marked}, s.languages...)
}

// splitPrimary separates the single primary-marked value from the rest.
func splitPrimary(values []string) (primary string, rest []string) {
	for _, v := range values {
		if stripped, ok := taxonomy.Primary(v); ok {
			if primary == "" {
				primary = stripped
				continue
			}
			// Only one primary slot exists on the wire; extras demote.
			rest = append(rest, stripped)
			continue
		}
		rest = append(rest, v)
	}
	return primary, rest
}

func secondsToMinutes(r types.Range) types.Range {
	out := types.Range{}
	if r.Lo != nil {
		v := *r.Lo / 60
		out.Lo = &v
	}
	if r.Hi != nil {
		v := *r.Hi / 60
		out.Hi = &v
	}
	return out
}

func hasChosen(values []string) bool {
	for _, v := range values {
		if _, negated := taxonomy.Negated(v); !negated {
			return true
		}
	}
	return false
}

func clampLimit(limit, ceiling int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}

func normalizeAll(values []string, f func(string) string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, f(v))
	}
	return out
}

// encodeParams renders parameters in insertion order. Commas, colons
// and the negation prefix stay literal; IMDb reads them either way and
// the readable form keeps compiled URLs diffable.
func encodeParams(params []param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(escapeValue(p.value))
	}
	return sb.String()
}

func escapeValue(v string) string {
	escaped := url.QueryEscape(v)
	escaped = strings.ReplaceAll(escaped, "%2C", ",")
	escaped = strings.ReplaceAll(escaped, "%21", "!")
	escaped = strings.ReplaceAll(escaped, "%3A", ":")
	return escaped
}
