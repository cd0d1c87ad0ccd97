package compile

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeldex/reeldex/internal/imdb/company"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	kb, err := company.Load()
	require.NoError(t, err)
	return New(kb, zerolog.Nop()).WithClock(func() time.Time { return testNow })
}

func TestCompileBestAnimeMovies(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media:  types.MediaMovie,
		Niches: []types.Niche{types.NicheBest, types.NicheAnime},
		Page:   1,
		Filter: types.FilterStrict,
	}, EndpointSearchTitle)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.URL, "https://www.imdb.com/search/title/?"), out.URL)
	assert.Contains(t, out.URL, "title_type=feature,tvMovie,video,tvSpecial,short,tvShort")
	assert.Contains(t, out.URL, "genres=Animation")
	assert.Contains(t, out.URL, "primary_language=ja")
	assert.Contains(t, out.URL, "sort=user_rating,desc")
	assert.Contains(t, out.URL, "count=50")
	assert.Contains(t, out.URL, "start=1")
	// Strict default thresholds, anime-scaled votes.
	assert.Contains(t, out.URL, "user_rating=7.5,")
	assert.Contains(t, out.URL, "num_votes=2000,")
}

func TestCompileDeterministic(t *testing.T) {
	c := newTestCompiler(t)
	req := types.Request{
		Media:  types.MediaMovie,
		Niches: []types.Niche{types.NicheBest, types.NicheAnime},
		Filter: types.FilterStrict,
	}

	first, err := c.Compile(req, EndpointSearchTitle)
	require.NoError(t, err)
	second, err := c.Compile(req, EndpointSearchTitle)
	require.NoError(t, err)
	assert.Equal(t, first.URL, second.URL)
}

func TestCompileAnimeArrivals(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media:  types.MediaShow,
		Niches: []types.Niche{types.NicheAnime, types.NicheArrival},
	}, EndpointSearchTitle)
	require.NoError(t, err)

	assert.Contains(t, out.URL, "release_date=,2026-09-01")
	assert.Contains(t, out.URL, "sort=release_date,desc")
	assert.Equal(t, "2026-09-01", out.DateHi)
	assert.Empty(t, out.DateLo)
}

func TestCompileFutureRelease(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media:   types.MediaMovie,
		Release: types.ReleaseFuture,
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "release_date=2026-09-02,")
}

func TestCompileNetflixOriginals(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media:   types.MediaShow,
		Niches:  []types.Niche{types.NicheOriginal},
		Company: "netflix",
	}, EndpointSearchTitle)
	require.NoError(t, err)

	assert.Contains(t, out.URL, "companies=")
	assert.Contains(t, out.URL, "co0452640", "netflix network id missing")

	kb, _ := company.Load()
	apple, _ := kb.Entry("apple")
	assert.Contains(t, out.URL, "!"+apple.Networks[0], "apple should be negated")
	hulu, _ := kb.Entry("hulu")
	assert.Contains(t, out.URL, "!"+hulu.Networks[0], "hulu should be negated")

	// Company menus without explicit dates pin to released titles.
	assert.Contains(t, out.URL, "release_date=,2026-09-01")
}

func TestCompileSeasonHasNoEndpoint(t *testing.T) {
	c := newTestCompiler(t)
	_, err := c.Compile(types.Request{Media: types.MediaSeason}, EndpointSearchTitle)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNoEndpoint))
}

func TestCompileUnratedCertificate(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media:        types.MediaMovie,
		Certificates: []string{"NR"},
	}, EndpointSearchTitle)
	require.NoError(t, err)

	assert.Contains(t, out.URL, "certificates=!US:G,!US:PG,!US:PG-13,!US:R,!US:NC-17")
	assert.Contains(t, out.URL, "!US:TV-MA")
}

func TestCompileUnsupportedTopicFailsFast(t *testing.T) {
	c := newTestCompiler(t)
	_, err := c.Compile(types.Request{
		Media:  types.MediaMovie,
		Niches: []types.Niche{types.NicheTopic},
		Query:  "basketweaving",
	}, EndpointSearchTitle)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidRequest))
}

func TestCompileStrictSpamExclusions(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media:  types.MediaMovie,
		Filter: types.FilterStrict,
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "languages=!hi,!tr")
	assert.Contains(t, out.URL, "countries=!in,!tr")

	// An explicit language suppresses the implicit exclusion.
	out, err = c.Compile(types.Request{
		Media:     types.MediaMovie,
		Filter:    types.FilterStrict,
		Languages: []string{"fr"},
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.NotContains(t, out.URL, "languages=!hi")

	// filter=none adds nothing implicit.
	out, err = c.Compile(types.Request{
		Media:  types.MediaMovie,
		Filter: types.FilterNone,
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.NotContains(t, out.URL, "languages=")
	assert.NotContains(t, out.URL, "genres=")
}

func TestCompileLenientGenreExclusions(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media:  types.MediaShow,
		Filter: types.FilterLenient,
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "genres=!Documentary")
}

func TestCompileUKCountryAlias(t *testing.T) {
	c := newTestCompiler(t)
	out, err := c.Compile(types.Request{
		Media:     types.MediaMovie,
		Countries: []string{"+uk"},
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "country_of_origin=gb")
}

func TestCompileListDialect(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media: types.MediaMovie,
		ID:    "ls012345678",
		Types: []string{"feature"},
		Page:  2,
		Limit: 100,
	}, EndpointList)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.URL, "https://www.imdb.com/list/ls012345678/?"), out.URL)
	// The list dialect says "movie", not "feature".
	assert.Contains(t, out.URL, "title_type=movie")
	assert.Contains(t, out.URL, "page=2")
	assert.False(t, out.Reduce)
}

func TestCompileRatingsSortRemap(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media: types.MediaMovie,
		User:  "ur12345678",
		Sort:  "myrating",
	}, EndpointRatings)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.URL, "https://www.imdb.com/user/ur12345678/ratings"), out.URL)
	assert.Contains(t, out.URL, "sort=your_rating,desc")
}

func TestCompileReduceMode(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media: types.MediaMovie,
		Page:  3,
		Limit: 50,
	}, EndpointSearchTitle)
	require.NoError(t, err)

	assert.True(t, out.Reduce)
	assert.Contains(t, out.URL, "count=150")
	assert.Contains(t, out.URL, "start=101")
	assert.Equal(t, 101, out.Offset)
}

func TestCompileBottomGroupSort(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media: types.MediaMovie,
		Group: "bottom100",
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "groups=bottom_100")
	assert.Contains(t, out.URL, "sort=user_rating,asc")

	out, err = c.Compile(types.Request{
		Media: types.MediaMovie,
		Group: "top250",
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "sort=user_rating,desc")
}

func TestCompileURLBudget(t *testing.T) {
	c := newTestCompiler(t)

	// A pathological keyword payload cannot push the URL over budget:
	// the company list gives way.
	keywords := make([]string, 0, 333)
	for i := 0; i < 333; i++ {
		keywords = append(keywords, strings.Repeat("k", 20))
	}
	out, err := c.Compile(types.Request{
		Media:   types.MediaShow,
		Niches:  []types.Niche{types.NicheOriginal},
		Company: "netflix",
		Keyword: keywords,
	}, EndpointSearchTitle)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out.URL), MaxURLLength)

	// With no companies to give way, an oversized query is rejected.
	keywords = make([]string, 0, 500)
	for i := 0; i < 500; i++ {
		keywords = append(keywords, strings.Repeat("k", 20))
	}
	_, err = c.Compile(types.Request{
		Media:   types.MediaShow,
		Keyword: keywords,
	}, EndpointSearchTitle)
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestCompileExport(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{
		Media: types.MediaMovie,
		ID:    "ls012345",
		CSV:   true,
	}, EndpointListExport)
	require.NoError(t, err)
	assert.Equal(t, "https://www.imdb.com/list/ls012345/export", out.URL)
	assert.True(t, out.CSV)
}

func TestCompileTitlePage(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{ID: "tt0111161", Media: types.MediaMovie}, EndpointTitle)
	require.NoError(t, err)
	assert.Equal(t, "https://www.imdb.com/title/tt0111161/", out.URL)

	_, err = c.Compile(types.Request{ID: "nm0000151"}, EndpointTitle)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidRequest), "foreign id must be rejected")
}

func TestCompileEpisodesSeasonZero(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{ID: "tt0944947", Page: 0}, EndpointEpisodes)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "episodes?season=Unknown")
}

func TestCompileFind(t *testing.T) {
	c := newTestCompiler(t)

	out, err := c.Compile(types.Request{Media: types.MediaMovie, Query: "blade runner"}, EndpointFind)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "/find/?q=blade+runner&s=tt")

	out, err = c.Compile(types.Request{Media: types.MediaPerson, Query: "harrison ford"}, EndpointFind)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "&s=nm")
}
