package id

import (
	"fmt"
	"strings"
)

// Generated links always use the www subdomain: the bare domain answers
// with a redirect that costs an extra round trip on every request.
const base = "https://www.imdb.com"

// TitleURL returns the canonical title page link.
func TitleURL(title ID) string {
	return fmt.Sprintf("%s/title/%s/", base, title)
}

// EpisodesURL returns the season episode listing for a show. Season 0 is
// addressed as the special value "Unknown" on IMDb.
func EpisodesURL(show ID, season int) string {
	slug := fmt.Sprintf("%d", season)
	if season == 0 {
		slug = "Unknown"
	}
	return fmt.Sprintf("%s/title/%s/episodes?season=%s", base, show, slug)
}

// AwardURL returns a title's awards page.
func AwardURL(title ID) string {
	return fmt.Sprintf("%s/title/%s/awards", base, title)
}

// PersonURL returns the canonical person page link.
func PersonURL(person ID) string {
	return fmt.Sprintf("%s/name/%s/", base, person)
}

// ListURL returns a list page.
func ListURL(list ID) string {
	return fmt.Sprintf("%s/list/%s/", base, list)
}

// ListExportURL returns the CSV export of a list.
func ListExportURL(list ID) string {
	return fmt.Sprintf("%s/list/%s/export", base, list)
}

// UserListsURL returns a user's lists-of-lists page.
func UserListsURL(user ID) string {
	return fmt.Sprintf("%s/user/%s/lists", base, user)
}

// WatchlistURL returns a user's watchlist page.
func WatchlistURL(user ID) string {
	return fmt.Sprintf("%s/user/%s/watchlist", base, user)
}

// RatingsURL returns a user's ratings page.
func RatingsURL(user ID) string {
	return fmt.Sprintf("%s/user/%s/ratings", base, user)
}

// CheckinsURL returns a user's check-ins page.
func CheckinsURL(user ID) string {
	return fmt.Sprintf("%s/user/%s/checkins", base, user)
}

// SearchURL returns the structured search endpoint for the kind:
// /search/title for titles, /search/name for persons.
func SearchURL(kind Kind) string {
	if kind == KindPerson {
		return base + "/search/name/"
	}
	return base + "/search/title/"
}

// FindURL returns the free-text find endpoint.
func FindURL() string {
	return base + "/find/"
}

// Shorten strips the www subdomain from an outgoing link. Links handed
// back to callers end up in QR codes where every character counts.
func Shorten(link string) string {
	return strings.Replace(link, "://www.imdb.com", "://imdb.com", 1)
}
