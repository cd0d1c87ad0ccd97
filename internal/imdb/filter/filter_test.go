package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reeldex/reeldex/internal/imdb/compile"
	"github.com/reeldex/reeldex/internal/imdb/types"
	"github.com/reeldex/reeldex/internal/imdb/voting"
)

func movie(id string, year int, rating float64, votes int64) *types.Result {
	r := types.NewResult(types.MediaMovie)
	r.IDs["imdb"] = id
	r.Year = year
	r.Rating = rating
	r.Votes = votes
	return r
}

func ptr[T any](v T) *T { return &v }

func TestApplyYearAndRating(t *testing.T) {
	c := &compile.Compiled{
		Media: types.MediaMovie,
		Years: types.NewRange(2000, 2010),
		Bounds: voting.Bounds{
			RatingFloor: ptr(7.0),
			VotesFloor:  ptr(1000),
		},
	}

	results := []*types.Result{
		movie("tt1", 2005, 8.0, 5000),  // passes
		movie("tt2", 1995, 8.0, 5000),  // year out of range
		movie("tt3", 2005, 6.0, 5000),  // rating below floor
		movie("tt4", 2005, 8.0, 500),   // votes below floor
		movie("tt5", 0, 0, 0),          // nulls pass everything
	}

	kept := Apply(results, c)
	ids := make([]string, 0, len(kept))
	for _, r := range kept {
		ids = append(ids, r.IDs["imdb"])
	}
	assert.Equal(t, []string{"tt1", "tt5"}, ids)
}

func TestApplyDateRange(t *testing.T) {
	c := &compile.Compiled{Media: types.MediaMovie, DateLo: "2020-01-01", DateHi: "2020-12-31"}

	in := movie("tt1", 2020, 0, 0)
	in.Premiered = "2020-06-15"
	out := movie("tt2", 2021, 0, 0)
	out.Premiered = "2021-02-01"
	noDate := movie("tt3", 0, 0, 0)

	kept := Apply([]*types.Result{in, out, noDate}, c)
	assert.Len(t, kept, 2)
	assert.Equal(t, "tt1", kept[0].IDs["imdb"])
	assert.Equal(t, "tt3", kept[1].IDs["imdb"])
}

func TestApplyNegatedGenre(t *testing.T) {
	c := &compile.Compiled{Media: types.MediaMovie, Genres: []string{"!documentary"}}

	doc := movie("tt1", 0, 0, 0)
	doc.Genres = []string{"documentary", "music"}
	drama := movie("tt2", 0, 0, 0)
	drama.Genres = []string{"drama"}
	bare := movie("tt3", 0, 0, 0)

	kept := Apply([]*types.Result{doc, drama, bare}, c)
	assert.Len(t, kept, 2)
	assert.Equal(t, "tt2", kept[0].IDs["imdb"])
}

func TestApplyPositiveGenreIsAdvisory(t *testing.T) {
	// IMDb truncates per-item genre lists; a missing genre is not a
	// mismatch.
	c := &compile.Compiled{Media: types.MediaMovie, Genres: []string{"animation"}}
	r := movie("tt1", 0, 0, 0)
	r.Genres = []string{"adventure"}
	assert.Len(t, Apply([]*types.Result{r}, c), 1)
}

func TestApplyCSVTypeEnforcement(t *testing.T) {
	c := &compile.Compiled{Media: types.MediaShow, CSV: true}

	show := types.NewResult(types.MediaShow)
	show.IDs["imdb"] = "tt1"
	film := types.NewResult(types.MediaMovie)
	film.IDs["imdb"] = "tt2"
	unknown := types.NewResult(types.MediaUnknown)
	unknown.IDs["imdb"] = "tt3"

	kept := Apply([]*types.Result{show, film, unknown}, c)
	assert.Len(t, kept, 2)
	assert.Equal(t, "tt1", kept[0].IDs["imdb"])
	assert.Equal(t, "tt3", kept[1].IDs["imdb"])
}

func TestApplyRuntimeBounds(t *testing.T) {
	movieQuery := &compile.Compiled{Media: types.MediaMovie}

	long := movie("tt1", 0, 0, 0)
	long.Duration = 6 * 3600
	normal := movie("tt2", 0, 0, 0)
	normal.Duration = 2 * 3600

	kept := Apply([]*types.Result{long, normal}, movieQuery)
	assert.Len(t, kept, 1)
	assert.Equal(t, "tt2", kept[0].IDs["imdb"])

	showQuery := &compile.Compiled{Media: types.MediaShow}
	single := types.NewResult(types.MediaShow)
	single.IDs["imdb"] = "tt3"
	single.Duration = 2 * 3600
	single.TempFor("imdb").Count = 1
	series := types.NewResult(types.MediaShow)
	series.IDs["imdb"] = "tt4"
	series.Duration = 2 * 3600
	series.TempFor("imdb").Count = 62

	kept = Apply([]*types.Result{single, series}, showQuery)
	assert.Len(t, kept, 1)
	assert.Equal(t, "tt4", kept[0].IDs["imdb"])
}

func TestApplyEpisodePrefix(t *testing.T) {
	c := &compile.Compiled{Media: types.MediaMovie}
	r := movie("tt1", 0, 0, 0)
	r.Title = "Episode: The One That Leaked"

	kept := Apply([]*types.Result{r}, c)
	assert.Len(t, kept, 1)
	assert.Equal(t, "The One That Leaked", kept[0].Title)
	assert.Equal(t, types.MediaEpisode, kept[0].Media)
}

func TestApplyEpisodeRuntimeField(t *testing.T) {
	c := &compile.Compiled{Media: types.MediaSeason}
	r := types.NewResult(types.MediaSeason)
	r.IDs["imdb"] = "tt1"
	r.Episodes = []types.Episode{
		{ID: "tt2", Duration: 2700},
		{ID: "tt3", Duration: 19000}, // season total, not an episode
	}

	kept := Apply([]*types.Result{r}, c)
	assert.Equal(t, 2700, kept[0].Episodes[0].Duration)
	assert.Zero(t, kept[0].Episodes[1].Duration)
}

func TestApplyIdempotent(t *testing.T) {
	c := &compile.Compiled{
		Media:  types.MediaMovie,
		Years:  types.RangeFrom(2000),
		Bounds: voting.Bounds{RatingFloor: ptr(6.0)},
	}
	results := []*types.Result{
		movie("tt1", 2005, 7.0, 100),
		movie("tt2", 1990, 7.0, 100),
	}

	once := Apply(results, c)
	twice := Apply(once, c)
	assert.Equal(t, once, twice)
}
