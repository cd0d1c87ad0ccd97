package imdb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeldex/reeldex/internal/imdb/fetch"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

type stubFetcher struct {
	mu    sync.Mutex
	urls  []string
	serve func(url string, opts fetch.Options) (*fetch.Response, error)
}

func (f *stubFetcher) Fetch(_ context.Context, url string, opts fetch.Options) (*fetch.Response, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	return f.serve(url, opts)
}

func (f *stubFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

func newService(t *testing.T, stub *stubFetcher) *Service {
	t.Helper()
	s, err := New(Config{Language: "en", Country: "us"}, stub, nil, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func searchPage(n int) []byte {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(
			`{"titleId":"tt%07d","titleText":"Title %d","titleType":"movie","releaseYear":%d,
			 "ratingSummary":{"aggregateRating":7.5,"voteCount":10000}}`, i+1, i+1, 2000+i))
	}
	return []byte(fmt.Sprintf(
		`<html><script type="application/json">{"props":{"pageProps":{"searchResults":
		{"titleResults":{"total":%d,"titleListItems":[%s]}}}}}</script></html>`,
		n, strings.Join(items, ",")))
}

func servePage(page []byte) func(string, fetch.Options) (*fetch.Response, error) {
	return func(url string, _ fetch.Options) (*fetch.Response, error) {
		return &fetch.Response{Payload: page, FinalURL: url}, nil
	}
}

func TestDiscoverDecoratesFromRequest(t *testing.T) {
	stub := &stubFetcher{serve: servePage(searchPage(2))}
	s := newService(t, stub)

	results, err := s.Discover(context.Background(), types.Request{
		Media:  types.MediaMovie,
		Niches: []types.Niche{types.NicheAnime},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The anime niche implies the animation genre and a primary
	// Japanese language; items missing those fields inherit them.
	assert.Contains(t, results[0].Niche, types.NicheAnime)
	assert.Contains(t, results[0].Genres, "animation")
	assert.Contains(t, results[0].Language, "ja")
}

func TestDiscoverReduceSlicesLocally(t *testing.T) {
	stub := &stubFetcher{serve: servePage(searchPage(6))}
	s := newService(t, stub)

	results, err := s.Discover(context.Background(), types.Request{
		Media: types.MediaMovie,
		Limit: 2,
		Page:  2,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "tt0000003", results[0].IDs["imdb"])
	assert.Equal(t, "tt0000004", results[1].IDs["imdb"])
}

func TestSearchSkipsImplicitExclusions(t *testing.T) {
	stub := &stubFetcher{serve: servePage(searchPage(1))}
	s := newService(t, stub)

	_, err := s.Search(context.Background(), types.Request{Media: types.MediaMovie})
	require.NoError(t, err)
	require.NotEmpty(t, stub.urls)
	assert.NotContains(t, stub.urls[0], "!Documentary")

	stub2 := &stubFetcher{serve: servePage(searchPage(1))}
	s2 := newService(t, stub2)
	_, err = s2.Discover(context.Background(), types.Request{Media: types.MediaMovie, Filter: types.FilterStrict})
	require.NoError(t, err)
	assert.Contains(t, stub2.urls[0], "languages=!hi,!tr")
}

func TestListPrivacyPassthrough(t *testing.T) {
	stub := &stubFetcher{serve: func(string, fetch.Options) (*fetch.Response, error) {
		return nil, types.ErrPrivacy
	}}
	s := newService(t, stub)

	_, err := s.List(context.Background(), types.Request{Media: types.MediaMovie, ID: "ls123456789"})
	assert.ErrorIs(t, err, types.ErrPrivacy)
}

func TestListRejectsForeignID(t *testing.T) {
	stub := &stubFetcher{serve: servePage(searchPage(1))}
	s := newService(t, stub)

	_, err := s.List(context.Background(), types.Request{ID: "nm0000138"})
	assert.ErrorIs(t, err, types.ErrInvalidRequest)
	assert.Zero(t, stub.calls())
}

func TestListWatchResolvesAndMemoizes(t *testing.T) {
	page := searchPage(1)
	stub := &stubFetcher{serve: func(url string, _ fetch.Options) (*fetch.Response, error) {
		if strings.Contains(url, "/watchlist") {
			return &fetch.Response{Payload: []byte("<html></html>"), FinalURL: "https://www.imdb.com/list/ls0987654321/"}, nil
		}
		return &fetch.Response{Payload: page, FinalURL: url}, nil
	}}
	s := newService(t, stub)

	_, err := s.ListWatch(context.Background(), "ur11111111", types.Request{Media: types.MediaMovie})
	require.NoError(t, err)
	_, err = s.ListWatch(context.Background(), "ur11111111", types.Request{Media: types.MediaMovie})
	require.NoError(t, err)

	resolutions := 0
	for _, u := range stub.urls {
		if strings.Contains(u, "/watchlist") {
			resolutions++
		}
	}
	assert.Equal(t, 1, resolutions)
	assert.Contains(t, stub.urls[1], "/list/ls0987654321")
}

func TestMetadataRetriesNetworkOnce(t *testing.T) {
	attempts := 0
	stub := &stubFetcher{serve: func(url string, _ fetch.Options) (*fetch.Response, error) {
		attempts++
		if attempts == 1 {
			return nil, types.ErrNetwork
		}
		page := []byte(`<html><script type="application/json">{"props":{"pageProps":{
			"mainColumnData":{"id":"tt1375666","titleType":{"id":"movie"},
			"titleText":{"text":"Inception"},"releaseYear":{"year":2010}}}}}</script></html>`)
		return &fetch.Response{Payload: page, FinalURL: url}, nil
	}}
	s := newService(t, stub)

	r, err := s.Metadata(context.Background(), "tt1375666", "en", "us")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "Inception", r.Title)
}

func episodesPage(season int) []byte {
	return []byte(fmt.Sprintf(`<html><script type="application/json">{"props":{"pageProps":{
		"contentData":{"section":{"episodes":{"total":1,"items":[
			{"id":"tt%07d","season":"%d","episode":"1","titleText":"Opener",
			 "aggregateRating":8.0,"voteCount":1000}
		]}}}}}}</script></html>`, season, season))
}

func TestMetadataSeasonOrdersResults(t *testing.T) {
	stub := &stubFetcher{serve: func(url string, _ fetch.Options) (*fetch.Response, error) {
		for season := 1; season <= 3; season++ {
			if strings.Contains(url, fmt.Sprintf("season=%d", season)) {
				return &fetch.Response{Payload: episodesPage(season), FinalURL: url}, nil
			}
		}
		return nil, fmt.Errorf("unexpected url %s", url)
	}}
	s := newService(t, stub)

	results, err := s.MetadataSeason(context.Background(), "tt0903747", []int{3, 1, 2})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 3, results[0].Season)
	assert.Equal(t, 1, results[1].Season)
	assert.Equal(t, 2, results[2].Season)
	assert.Equal(t, "tt0903747", results[0].IDs["imdb"])
	require.Len(t, results[0].Episodes, 1)
}

func TestMetadataSeasonPartialSuccess(t *testing.T) {
	stub := &stubFetcher{serve: func(url string, _ fetch.Options) (*fetch.Response, error) {
		if strings.Contains(url, "season=2") {
			return nil, types.ErrNetwork
		}
		return &fetch.Response{Payload: episodesPage(1), FinalURL: url}, nil
	}}
	s := newService(t, stub)

	results, err := s.MetadataSeason(context.Background(), "tt0903747", []int{1, 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])
}

func TestMetadataSeasonAllFailed(t *testing.T) {
	stub := &stubFetcher{serve: func(string, fetch.Options) (*fetch.Response, error) {
		return nil, types.ErrNetwork
	}}
	s := newService(t, stub)

	_, err := s.MetadataSeason(context.Background(), "tt0903747", []int{1, 2})
	assert.ErrorIs(t, err, types.ErrNetwork)
}

func TestMetadataSeasonNoEndpointForSearch(t *testing.T) {
	stub := &stubFetcher{serve: servePage(searchPage(1))}
	s := newService(t, stub)

	_, err := s.Discover(context.Background(), types.Request{Media: types.MediaSeason})
	assert.ErrorIs(t, err, types.ErrNoEndpoint)
}

func TestPerson(t *testing.T) {
	stub := &stubFetcher{serve: func(url string, _ fetch.Options) (*fetch.Response, error) {
		page := []byte(`<html><head>
			<meta property="og:title" content="Leonardo DiCaprio - IMDb"/>
			<meta property="og:description" content="Actor and producer."/>
			<meta property="og:image" content="https://m.media-amazon.com/images/M/leo._V1_.jpg"/>
		</head></html>`)
		return &fetch.Response{Payload: page, FinalURL: url}, nil
	}}
	s := newService(t, stub)

	r, err := s.Person(context.Background(), "nm0000138")
	require.NoError(t, err)
	assert.Equal(t, "Leonardo DiCaprio", r.Title)
	assert.Equal(t, "Actor and producer.", r.Plot)
	require.NotNil(t, r.Poster)

	_, err = s.Person(context.Background(), "tt1375666")
	assert.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestLists(t *testing.T) {
	stub := &stubFetcher{serve: func(url string, _ fetch.Options) (*fetch.Response, error) {
		page := []byte(`<html><script type="application/json">{"props":{"pageProps":{
			"mainColumnData":{"lists":{"total":1,"edges":[
				{"node":{"id":"ls000000001","name":{"originalText":"Favorites"},
				 "listType":{"id":"TITLES"},"items":{"total":12}}}
			]}}}}}</script></html>`)
		return &fetch.Response{Payload: page, FinalURL: url}, nil
	}}
	s := newService(t, stub)

	results, err := s.Lists(context.Background(), "ur11111111")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ls000000001", results[0].IDs["imdb"])
	assert.Equal(t, types.MediaList, results[0].Media)
}
