// Package imdb is the public surface of the IMDb provider. A Service
// compiles language-neutral requests into IMDb URLs, fetches them
// through the rate-limited fetcher, extracts the payload and applies
// the post-filter, returning normalized results.
package imdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/reeldex/reeldex/internal/imdb/company"
	"github.com/reeldex/reeldex/internal/imdb/compile"
	"github.com/reeldex/reeldex/internal/imdb/extract"
	"github.com/reeldex/reeldex/internal/imdb/fetch"
	"github.com/reeldex/reeldex/internal/imdb/filter"
	"github.com/reeldex/reeldex/internal/imdb/id"
	"github.com/reeldex/reeldex/internal/imdb/taxonomy"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

// Cache lifetimes per page family. Discovery results churn with votes
// and rankings; title records are close to immutable.
const (
	ttlDiscover = 3 * time.Hour
	ttlList     = 30 * time.Minute
	ttlTitle    = 24 * time.Hour
	ttlEpisodes = 12 * time.Hour
	ttlAward    = 7 * 24 * time.Hour

	// Resolved user list ids are stable; IMDb never reassigns them.
	listIDLifetime = 30 * 24 * time.Hour
)

// Fetcher is the transport the service speaks through.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts fetch.Options) (*fetch.Response, error)
}

var _ Fetcher = (*fetch.Fetcher)(nil)

// Config holds the service defaults applied to requests that do not
// choose their own.
type Config struct {
	Language string
	Country  string
	Adult    bool
	Filter   types.Strictness
}

// Service is the IMDb provider facade.
type Service struct {
	cfg      Config
	compiler *compile.Compiler
	fetcher  Fetcher
	logger   zerolog.Logger

	// listIDs memoizes user list-id resolution (watchlist, ratings,
	// checkins) for a month.
	listIDs *gocache.Cache
}

// New creates the service. A nil knowledge base loads the embedded one.
func New(cfg Config, fetcher Fetcher, kb *company.KB, logger zerolog.Logger) (*Service, error) {
	if kb == nil {
		loaded, err := company.Load()
		if err != nil {
			return nil, fmt.Errorf("company table: %w", err)
		}
		kb = loaded
	}
	if cfg.Filter == "" {
		cfg.Filter = types.FilterLenient
	}
	return &Service{
		cfg:      cfg,
		compiler: compile.New(kb, logger),
		fetcher:  fetcher,
		logger:   logger.With().Str("component", "imdb").Logger(),
		listIDs:  gocache.New(listIDLifetime, time.Hour),
	}, nil
}

// Discover runs a discovery query and returns normalized results.
func (s *Service) Discover(ctx context.Context, req types.Request) ([]*types.Result, error) {
	s.applyDefaults(&req)

	ep := compile.EndpointSearchTitle
	switch {
	case req.Media == types.MediaPerson:
		ep = compile.EndpointSearchName
	case id.Classify(req.ID) == id.KindList:
		return s.List(ctx, req)
	}

	c, err := s.compiler.Compile(req, ep)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, c, ttlDiscover)
}

// DiscoverMovie is Discover pinned to the movie axis.
func (s *Service) DiscoverMovie(ctx context.Context, req types.Request) ([]*types.Result, error) {
	req.Media = types.MediaMovie
	return s.Discover(ctx, req)
}

// DiscoverShow is Discover pinned to the show axis.
func (s *Service) DiscoverShow(ctx context.Context, req types.Request) ([]*types.Result, error) {
	req.Media = types.MediaShow
	return s.Discover(ctx, req)
}

// DiscoverPerson is Discover pinned to the person axis.
func (s *Service) DiscoverPerson(ctx context.Context, req types.Request) ([]*types.Result, error) {
	req.Media = types.MediaPerson
	return s.Discover(ctx, req)
}

// Search is Discover without implicit exclusions.
func (s *Service) Search(ctx context.Context, req types.Request) ([]*types.Result, error) {
	req.Filter = types.FilterNone
	return s.Discover(ctx, req)
}

// Lists returns the public lists of a user.
func (s *Service) Lists(ctx context.Context, user string) ([]*types.Result, error) {
	c, err := s.compiler.Compile(types.Request{Media: types.MediaList, User: user}, compile.EndpointUserLists)
	if err != nil {
		return nil, err
	}
	resp, err := s.fetch(ctx, c, ttlList)
	if err != nil {
		return nil, err
	}
	return extract.UserLists(resp.Payload)
}

// List returns the items of a list. With req.CSV the export endpoint is
// used and the post-filter enforces what the export cannot encode.
func (s *Service) List(ctx context.Context, req types.Request) ([]*types.Result, error) {
	s.applyDefaults(&req)

	ep := compile.EndpointList
	if req.CSV {
		ep = compile.EndpointListExport
	}
	c, err := s.compiler.Compile(req, ep)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, c, ttlList)
}

// ListWatch returns a user's watchlist.
func (s *Service) ListWatch(ctx context.Context, user string, req types.Request) ([]*types.Result, error) {
	return s.userList(ctx, user, req, compile.EndpointWatchlist)
}

// ListRating returns a user's ratings list.
func (s *Service) ListRating(ctx context.Context, user string, req types.Request) ([]*types.Result, error) {
	return s.userList(ctx, user, req, compile.EndpointRatings)
}

// ListCheckin returns a user's check-ins list.
func (s *Service) ListCheckin(ctx context.Context, user string, req types.Request) ([]*types.Result, error) {
	return s.userList(ctx, user, req, compile.EndpointCheckins)
}

// userList resolves the backing list id of a user page, then reads it
// as a regular list. Resolution costs one fetch and is memoized.
func (s *Service) userList(ctx context.Context, user string, req types.Request, ep compile.Endpoint) ([]*types.Result, error) {
	listID, err := s.resolveListID(ctx, user, ep)
	if err == nil && listID != "" {
		req.ID = listID
		req.User = ""
		return s.List(ctx, req)
	}
	if errors.Is(err, types.ErrPrivacy) {
		return nil, err
	}

	// No resolvable id; query the user page directly.
	req.User = user
	c, cerr := s.compiler.Compile(req, ep)
	if cerr != nil {
		return nil, cerr
	}
	return s.run(ctx, c, ttlList)
}

var listIDRe = regexp.MustCompile(`ls\d{5,}`)

func (s *Service) resolveListID(ctx context.Context, user string, ep compile.Endpoint) (string, error) {
	uid, err := id.User(user)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
	}

	key := fmt.Sprintf("%s|%s", ep, uid)
	if cached, ok := s.listIDs.Get(key); ok {
		return cached.(string), nil
	}

	var pageURL string
	switch ep {
	case compile.EndpointWatchlist:
		pageURL = id.WatchlistURL(uid)
	case compile.EndpointRatings:
		pageURL = id.RatingsURL(uid)
	case compile.EndpointCheckins:
		pageURL = id.CheckinsURL(uid)
	default:
		return "", fmt.Errorf("%w: endpoint %s has no backing list", types.ErrInvalidRequest, ep)
	}

	resp, err := s.fetcher.Fetch(ctx, pageURL, fetch.Options{
		Language: s.cfg.Language,
		Country:  s.cfg.Country,
		CacheTTL: ttlList,
	})
	if err != nil {
		return "", err
	}

	// The page redirects to its canonical list on some layouts; the id
	// otherwise sits in the embedded page state.
	listID := listIDRe.FindString(resp.FinalURL)
	if listID == "" {
		listID = listIDRe.FindString(string(resp.Payload))
	}
	if listID != "" {
		s.listIDs.Set(key, listID, gocache.DefaultExpiration)
	}
	return listID, nil
}

// Metadata returns the full record of a title. One transparent retry
// covers transient network failures.
func (s *Service) Metadata(ctx context.Context, titleID, language, country string) (*types.Result, error) {
	c, err := s.compiler.Compile(types.Request{ID: titleID}, compile.EndpointTitle)
	if err != nil {
		return nil, err
	}

	opts := fetch.Options{Language: language, Country: country, CacheTTL: ttlTitle}
	resp, err := s.fetcher.Fetch(ctx, c.URL, opts)
	if errors.Is(err, types.ErrNetwork) {
		resp, err = s.fetcher.Fetch(ctx, c.URL, opts)
	}
	if err != nil {
		return nil, err
	}
	return extract.Title(resp.Payload)
}

// MetadataSeason fetches several seasons of a show concurrently and
// returns them in the requested order. Failed seasons stay nil in the
// slice; the call errors only when every season failed.
func (s *Service) MetadataSeason(ctx context.Context, showID string, seasons []int) ([]*types.Result, error) {
	results := make([]*types.Result, len(seasons))

	var g errgroup.Group
	for i, season := range seasons {
		g.Go(func() error {
			r, err := s.season(ctx, showID, season)
			if err != nil {
				s.logger.Warn().Err(err).Str("show", showID).Int("season", season).
					Msg("Season fetch failed")
				return fmt.Errorf("season %d: %w", season, err)
			}
			results[i] = r
			return nil
		})
	}
	err := g.Wait()

	for _, r := range results {
		if r != nil {
			return results, nil
		}
	}
	return nil, err
}

// MetadataEpisode returns the episode list of one season.
func (s *Service) MetadataEpisode(ctx context.Context, showID string, season int) ([]types.Episode, error) {
	r, err := s.season(ctx, showID, season)
	if err != nil {
		return nil, err
	}
	return r.Episodes, nil
}

func (s *Service) season(ctx context.Context, showID string, season int) (*types.Result, error) {
	c, err := s.compiler.Compile(types.Request{ID: showID, Page: season}, compile.EndpointEpisodes)
	if err != nil {
		return nil, err
	}
	resp, err := s.fetch(ctx, c, ttlEpisodes)
	if err != nil {
		return nil, err
	}
	r, err := extract.Season(resp.Payload, season)
	if err != nil {
		return nil, err
	}
	if show, serr := id.Title(showID); serr == nil {
		r.IDs["imdb"] = show.String()
	}
	return r, nil
}

// MetadataAward returns a best-effort awards summary for a title.
func (s *Service) MetadataAward(ctx context.Context, titleID string) (*types.AwardSummary, error) {
	c, err := s.compiler.Compile(types.Request{ID: titleID}, compile.EndpointAward)
	if err != nil {
		return nil, err
	}
	resp, err := s.fetch(ctx, c, ttlAward)
	if err != nil {
		return nil, err
	}
	return extract.Awards(resp.Payload)
}

// Person returns the basic record of a person page.
func (s *Service) Person(ctx context.Context, personID string) (*types.Result, error) {
	pid, err := id.Person(personID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidRequest, err)
	}

	resp, err := s.fetcher.Fetch(ctx, id.PersonURL(pid), fetch.Options{
		Language: s.cfg.Language,
		Country:  s.cfg.Country,
		CacheTTL: ttlTitle,
	})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Payload))
	if err != nil {
		return nil, err
	}

	r := types.NewResult(types.MediaPerson)
	r.IDs["imdb"] = pid.String()
	if name, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		r.Title = strings.TrimSuffix(strings.TrimSpace(name), " - IMDb")
	}
	if bio, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		r.Plot = strings.TrimSpace(bio)
	}
	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && img != "" {
		r.Poster = &types.MetaImage{Link: img, Provider: "imdb", Kind: "poster"}
	}
	return r, nil
}

// run executes a compiled query end to end.
func (s *Service) run(ctx context.Context, c *compile.Compiled, ttl time.Duration) ([]*types.Result, error) {
	resp, err := s.fetch(ctx, c, ttl)
	if err != nil {
		return nil, err
	}

	var results []*types.Result
	if c.Media == types.MediaPerson {
		results, err = extract.Persons(resp.Payload)
	} else {
		results, err = extract.Titles(resp.Payload)
	}
	if err != nil {
		return nil, err
	}

	results = filter.Apply(results, c)
	s.decorate(results, c)
	results = pageSlice(results, c)

	s.logger.Debug().
		Str("url", id.Shorten(c.URL)).
		Int("results", len(results)).
		Msg("Query complete")
	return results, nil
}

func (s *Service) fetch(ctx context.Context, c *compile.Compiled, ttl time.Duration) (*fetch.Response, error) {
	return s.fetcher.Fetch(ctx, c.URL, fetch.Options{
		Language: s.cfg.Language,
		Country:  s.cfg.Country,
		CacheTTL: ttl,
	})
}

func (s *Service) applyDefaults(req *types.Request) {
	if req.Filter == "" {
		req.Filter = s.cfg.Filter
	}
	if !req.Adult {
		req.Adult = s.cfg.Adult
	}
}

// decorate backfills per-item fields from the request context. IMDb
// returns only the leading genres per item; the search parameter is
// evidence the item matches the rest.
func (s *Service) decorate(results []*types.Result, c *compile.Compiled) {
	genres := positive(c.Genres)
	languages := positive(c.Languages)
	countries := positive(c.Countries)
	certificates := positive(c.Certificates)

	for _, r := range results {
		if len(r.Niche) == 0 && len(c.Niches) > 0 {
			r.Niche = append([]types.Niche(nil), c.Niches...)
		}
		if len(r.Genres) == 0 {
			r.Genres = append([]string(nil), genres...)
		}
		if len(r.Language) == 0 {
			r.Language = append([]string(nil), languages...)
		}
		if len(r.Country) == 0 {
			r.Country = append([]string(nil), countries...)
		}
		if r.Certificate == "" && len(certificates) == 1 && certificates[0] != "NR" {
			r.Certificate = certificates[0]
		}
	}
}

// positive strips the negation and primary markers and drops negated
// values entirely.
func positive(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.HasPrefix(v, taxonomy.PrefixNegate) {
			continue
		}
		out = append(out, strings.TrimPrefix(v, taxonomy.PrefixPrimary))
	}
	return out
}

// pageSlice applies local paging for endpoints that ignore the start
// offset: the compiler over-fetches and the requested page is cut here.
func pageSlice(results []*types.Result, c *compile.Compiled) []*types.Result {
	if !c.Reduce || c.Offset <= 1 {
		return results
	}
	start := c.Offset - 1 // start is 1-based on the wire
	if start >= len(results) {
		return []*types.Result{}
	}
	end := start + c.Limit
	if c.Limit <= 0 || end > len(results) {
		end = len(results)
	}
	return results[start:end]
}
