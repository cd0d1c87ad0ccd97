package compile

import "github.com/reeldex/reeldex/internal/imdb/taxonomy"

// Endpoint identifies the IMDb surface a request compiles against. Each
// family speaks its own parameter dialect.
type Endpoint int

const (
	EndpointSearchTitle Endpoint = iota
	EndpointSearchName
	EndpointFind
	EndpointList
	EndpointListExport
	EndpointUserLists
	EndpointWatchlist
	EndpointRatings
	EndpointCheckins
	EndpointTitle
	EndpointEpisodes
	EndpointAward
)

// String names the endpoint for logs.
func (e Endpoint) String() string {
	switch e {
	case EndpointSearchTitle:
		return "search-title"
	case EndpointSearchName:
		return "search-name"
	case EndpointFind:
		return "find"
	case EndpointList:
		return "list"
	case EndpointListExport:
		return "list-export"
	case EndpointUserLists:
		return "user-lists"
	case EndpointWatchlist:
		return "watchlist"
	case EndpointRatings:
		return "ratings"
	case EndpointCheckins:
		return "checkins"
	case EndpointTitle:
		return "title"
	case EndpointEpisodes:
		return "episodes"
	case EndpointAward:
		return "award"
	}
	return "unknown"
}

// Dialect returns the parameter dialect the endpoint speaks.
func (e Endpoint) Dialect() taxonomy.Dialect {
	switch e {
	case EndpointList, EndpointListExport, EndpointUserLists,
		EndpointWatchlist, EndpointRatings, EndpointCheckins:
		return taxonomy.DialectList
	}
	return taxonomy.DialectSearch
}

// pageLimit is the per-page ceiling the endpoint accepts.
func (e Endpoint) pageLimit() int {
	if e.Dialect() == taxonomy.DialectList {
		return 100
	}
	return 250
}
