package voting

import (
	"testing"

	"github.com/reeldex/reeldex/internal/imdb/types"
)

func TestResolveSymbols(t *testing.T) {
	b := Resolve(Params{Media: types.MediaMovie, Rating: "strict", Votes: "strict"})
	if b.RatingFloor == nil || *b.RatingFloor != 7.5 {
		t.Errorf("RatingFloor = %v, want 7.5", b.RatingFloor)
	}
	if b.VotesFloor == nil || *b.VotesFloor != 20000 {
		t.Errorf("VotesFloor = %v, want 20000", b.VotesFloor)
	}
}

func TestResolveScalarForms(t *testing.T) {
	// A bare number is a floor regardless of how it arrives.
	for _, rating := range []any{"7.5", 7.5} {
		b := Resolve(Params{Media: types.MediaMovie, Rating: rating})
		if b.RatingFloor == nil || *b.RatingFloor != 7.5 {
			t.Errorf("Rating %v floor = %v, want 7.5", rating, b.RatingFloor)
		}
		if b.RatingCeiling != nil {
			t.Errorf("Rating %v ceiling = %v, want nil", rating, *b.RatingCeiling)
		}
	}
}

func TestResolveShowScaling(t *testing.T) {
	b := Resolve(Params{Media: types.MediaShow, Votes: "normal"})
	if b.VotesFloor == nil || *b.VotesFloor != 500 {
		t.Errorf("show normal votes = %v, want 500", b.VotesFloor)
	}

	b = Resolve(Params{Media: types.MediaEpisode, Votes: "normal"})
	if b.VotesFloor == nil || *b.VotesFloor != 50 {
		t.Errorf("episode normal votes = %v, want 50", b.VotesFloor)
	}

	b = Resolve(Params{Media: types.MediaSeason, Votes: "normal"})
	if b.VotesFloor == nil || *b.VotesFloor != 25 {
		t.Errorf("season normal votes = %v, want 25", b.VotesFloor)
	}
}

func TestResolveNicheScaling(t *testing.T) {
	// Anime scales votes by 0.1 and the niche "best" default applies
	// strict thresholds.
	b := Resolve(Params{
		Media:  types.MediaMovie,
		Niches: []types.Niche{types.NicheBest, types.NicheAnime},
	})
	if b.RatingFloor == nil || *b.RatingFloor != 7.5 {
		t.Errorf("best anime rating floor = %v, want 7.5", b.RatingFloor)
	}
	if b.VotesFloor == nil || *b.VotesFloor != 2000 {
		t.Errorf("best anime votes floor = %v, want 2000", b.VotesFloor)
	}
}

func TestResolveCompoundScalingRoundsUp(t *testing.T) {
	// donghua(0.05) on a show(0.5): 1000 * 0.025 = 25.
	b := Resolve(Params{
		Media:  types.MediaShow,
		Niches: []types.Niche{types.NicheDonghua},
		Votes:  "normal",
	})
	if b.VotesFloor == nil || *b.VotesFloor != 25 {
		t.Errorf("donghua show votes = %v, want 25", b.VotesFloor)
	}

	// Tiny products still floor at 1.
	b = Resolve(Params{
		Media:  types.MediaEpisode,
		Niches: []types.Niche{types.NicheShort, types.NicheSpecial},
		Votes:  "minimal",
	})
	if b.VotesFloor == nil || *b.VotesFloor != 1 {
		t.Errorf("compound minimal votes = %v, want 1", b.VotesFloor)
	}
}

func TestResolveWorstFlipsToCeiling(t *testing.T) {
	b := Resolve(Params{
		Media:  types.MediaMovie,
		Niches: []types.Niche{types.NicheWorst},
	})
	if b.RatingFloor != nil {
		t.Errorf("worst should have no rating floor, got %v", *b.RatingFloor)
	}
	if b.RatingCeiling == nil || *b.RatingCeiling != 5 {
		t.Errorf("worst rating ceiling = %v, want 5", b.RatingCeiling)
	}
}

func TestResolveExplicitNumbersPassThrough(t *testing.T) {
	b := Resolve(Params{
		Media:  types.MediaShow,
		Rating: types.NewRange(6, 9),
		Votes:  12345,
	})
	if b.RatingFloor == nil || *b.RatingFloor != 6 || b.RatingCeiling == nil || *b.RatingCeiling != 9 {
		t.Errorf("explicit rating range = %v..%v", b.RatingFloor, b.RatingCeiling)
	}
	// Explicit numbers are never scaled by media.
	if b.VotesFloor == nil || *b.VotesFloor != 12345 {
		t.Errorf("explicit votes = %v, want 12345", b.VotesFloor)
	}
}

func TestResolveNoConstraints(t *testing.T) {
	b := Resolve(Params{Media: types.MediaMovie})
	if b.RatingFloor != nil || b.RatingCeiling != nil || b.VotesFloor != nil || b.VotesCeiling != nil {
		t.Errorf("unconstrained request produced bounds: %+v", b)
	}
}
