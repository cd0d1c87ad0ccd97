// Package filter prunes extracted results against the constraints the
// endpoint could not encode. Ratings pages and CSV exports accept no
// query parameters, so year, date, rating, votes, genre and type
// enforcement happen here instead. The pass is pure: applying it twice,
// or applying two passes in either order, yields the same output.
package filter

import (
	"strings"

	"github.com/reeldex/reeldex/internal/imdb/compile"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

const fiveHours = 5 * 3600

// Apply filters results against a compiled request. Null fields on a
// result pass every predicate; only positive evidence excludes.
func Apply(results []*types.Result, c *compile.Compiled) []*types.Result {
	if c == nil {
		return results
	}

	kept := make([]*types.Result, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		reconcileEpisodePrefix(r, c.Media)
		trimEpisodeRuntime(r)
		if keep(r, c) {
			kept = append(kept, r)
		}
	}
	return kept
}

func keep(r *types.Result, c *compile.Compiled) bool {
	if !mediaMatches(r, c) {
		return false
	}
	if !runtimePlausible(r, c) {
		return false
	}

	if r.Year > 0 && !c.Years.Empty() && !c.Years.Contains(float64(r.Year)) {
		return false
	}
	if r.Premiered != "" {
		if c.DateLo != "" && r.Premiered < c.DateLo {
			return false
		}
		if c.DateHi != "" && r.Premiered > c.DateHi {
			return false
		}
	}
	if r.Rating > 0 {
		if f := c.Bounds.RatingFloor; f != nil && r.Rating < *f {
			return false
		}
		if f := c.Bounds.RatingCeiling; f != nil && r.Rating > *f {
			return false
		}
	}
	if r.Votes > 0 {
		if f := c.Bounds.VotesFloor; f != nil && r.Votes < int64(*f) {
			return false
		}
		if f := c.Bounds.VotesCeiling; f != nil && r.Votes > int64(*f) {
			return false
		}
	}
	if !genresMatch(r, c) {
		return false
	}
	return true
}

// mediaMatches enforces the requested media axis. Only CSV payloads
// need it: exports return the whole list regardless of the query.
func mediaMatches(r *types.Result, c *compile.Compiled) bool {
	if !c.CSV {
		return true
	}
	switch c.Media {
	case types.MediaMovie:
		return r.Media == types.MediaMovie || r.Media == types.MediaUnknown
	case types.MediaShow:
		return r.Media == types.MediaShow || r.Media == types.MediaUnknown
	case types.MediaPerson:
		return r.Media == types.MediaPerson
	default:
		return true
	}
}

// runtimePlausible drops items whose runtime cannot belong to the
// requested media: five-plus hours is not a movie, and a show whose
// lone episode runs under five hours is a mislabeled single.
func runtimePlausible(r *types.Result, c *compile.Compiled) bool {
	if r.Duration <= 0 {
		return true
	}
	switch c.Media {
	case types.MediaMovie:
		return r.Duration < fiveHours
	case types.MediaShow:
		if t, ok := r.Temp["imdb"]; ok && t.Count == 1 && r.Duration < fiveHours {
			return false
		}
	}
	return true
}

func genresMatch(r *types.Result, c *compile.Compiled) bool {
	if len(r.Genres) == 0 {
		return true
	}
	for _, want := range c.Genres {
		var negated bool
		g := strings.ToLower(want)
		if strings.HasPrefix(g, "!") {
			negated = true
			g = g[1:]
		}
		has := false
		for _, have := range r.Genres {
			if strings.EqualFold(have, g) {
				has = true
				break
			}
		}
		if negated && has {
			return false
		}
		// A positive genre constraint is advisory: IMDb returns
		// only the leading genres per item, so absence is not
		// evidence of a mismatch.
	}
	return true
}

// reconcileEpisodePrefix fixes items that leak into movie lists with
// an "Episode: " title prefix. The prefix is stripped and the media
// axis corrected.
func reconcileEpisodePrefix(r *types.Result, media types.Media) {
	const prefix = "Episode: "
	if media != types.MediaMovie || !strings.HasPrefix(r.Title, prefix) {
		return
	}
	r.Title = strings.TrimPrefix(r.Title, prefix)
	r.Media = types.MediaEpisode
}

// trimEpisodeRuntime clears runtimes over five hours on episode rows;
// IMDb sometimes reports a season's total there.
func trimEpisodeRuntime(r *types.Result) {
	for i := range r.Episodes {
		if r.Episodes[i].Duration > 18000 {
			r.Episodes[i].Duration = 0
		}
	}
}
