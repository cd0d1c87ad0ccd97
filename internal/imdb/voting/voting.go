// Package voting translates symbolic strictness levels into concrete
// rating and vote bounds, scaled by what the request is actually asking
// for. A vote floor tuned for mainstream features would empty out an
// anime-short menu; the scaling model keeps niche menus populated
// without letting index spam through.
package voting

import (
	"math"
	"strconv"
	"strings"

	"github.com/reeldex/reeldex/internal/imdb/types"
)

// Symbolic strictness defaults.
var ratingLevels = map[string]float64{
	types.VotingMinimal:  0,
	types.VotingLenient:  1,
	types.VotingNormal:   3,
	types.VotingModerate: 5,
	types.VotingStrict:   7.5,
	types.VotingExtreme:  8,
}

var votesLevels = map[string]int{
	types.VotingMinimal:  1,
	types.VotingLenient:  20,
	types.VotingNormal:   1000,
	types.VotingModerate: 5000,
	types.VotingStrict:   20000,
	types.VotingExtreme:  50000,
}

// Params is the request context the model scales by.
type Params struct {
	Media   types.Media
	Niches  []types.Niche
	Release types.Release

	// Rating and Votes accept nil, a number, a types.Range, or a
	// strictness symbol.
	Rating any
	Votes  any

	Genres    []string
	Languages []string
	Countries []string
	Company   string
	Status    string
}

// Bounds are the resolved floors and ceilings. Nil means unbounded.
type Bounds struct {
	RatingFloor   *float64
	RatingCeiling *float64
	VotesFloor    *int
	VotesCeiling  *int
}

// RatingRange returns the bounds as a types.Range.
func (b Bounds) RatingRange() types.Range {
	return types.Range{Lo: b.RatingFloor, Hi: b.RatingCeiling}
}

// VotesRange returns the bounds as a types.Range.
func (b Bounds) VotesRange() types.Range {
	r := types.Range{}
	if b.VotesFloor != nil {
		v := float64(*b.VotesFloor)
		r.Lo = &v
	}
	if b.VotesCeiling != nil {
		v := float64(*b.VotesCeiling)
		r.Hi = &v
	}
	return r
}

// Resolve computes the final bounds for a request. Explicit numeric
// values pass through unscaled; symbols and niche defaults are scaled
// by the media and niche factors and rounded up to the next integer.
func Resolve(p Params) Bounds {
	bounds := Bounds{}

	ratingSym, ratingRange := interpret(p.Rating)
	votesSym, votesRange := interpret(p.Votes)

	// Niche defaults kick in only when the caller gave no bound at all.
	if ratingSym == "" && ratingRange.Empty() {
		ratingSym = defaultSymbol(p.Niches)
	}
	if votesSym == "" && votesRange.Empty() {
		votesSym = defaultSymbol(p.Niches)
	}

	scale := votesScale(p)

	if ratingSym != "" {
		if floor, ok := ratingLevels[ratingSym]; ok {
			if worst(p.Niches) {
				bounds.RatingCeiling = ptrF(ratingCeilingFor(floor))
			} else {
				bounds.RatingFloor = ptrF(floor)
			}
		}
	} else {
		bounds.RatingFloor = ratingRange.Lo
		bounds.RatingCeiling = ratingRange.Hi
	}

	if votesSym != "" {
		if floor, ok := votesLevels[votesSym]; ok {
			bounds.VotesFloor = ptrI(scaleUp(floor, scale))
		}
	} else {
		if votesRange.Lo != nil {
			bounds.VotesFloor = ptrI(int(*votesRange.Lo))
		}
		if votesRange.Hi != nil {
			bounds.VotesCeiling = ptrI(int(*votesRange.Hi))
		}
	}

	return bounds
}

// interpret splits a loose bound value into symbol or range form.
func interpret(v any) (symbol string, r types.Range) {
	switch t := v.(type) {
	case nil:
		return "", types.Range{}
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if _, ok := ratingLevels[s]; ok {
			return s, types.Range{}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			// A bare number is a floor, same as the numeric forms.
			return "", types.RangeFrom(f)
		}
		return "", types.Range{}
	case int:
		f := float64(t)
		return "", types.RangeFrom(f)
	case int64:
		f := float64(t)
		return "", types.RangeFrom(f)
	case float64:
		return "", types.RangeFrom(t)
	case types.Range:
		return "", t
	case *types.Range:
		if t == nil {
			return "", types.Range{}
		}
		return "", *t
	}
	return "", types.Range{}
}

// defaultSymbol picks the implied strictness for quality-flavored
// niches.
func defaultSymbol(niches []types.Niche) string {
	for _, n := range niches {
		switch n {
		case types.NichePrestige:
			return types.VotingExtreme
		case types.NicheBest, types.NicheQuality:
			return types.VotingStrict
		case types.NicheWorst:
			return types.VotingModerate
		case types.NichePopular, types.NicheViewed, types.NicheGross, types.NicheTrend:
			return types.VotingNormal
		case types.NicheNew, types.NicheArrival, types.NicheHome:
			return types.VotingLenient
		}
	}
	return ""
}

func worst(niches []types.Niche) bool {
	for _, n := range niches {
		if n == types.NicheWorst {
			return true
		}
	}
	return false
}

// ratingCeilingFor mirrors a floor into the ceiling used by "worst"
// menus: a strictness of 5 means "at most 5" there.
func ratingCeilingFor(floor float64) float64 {
	if floor <= 0 {
		return 10
	}
	return floor
}

// votesScale multiplies the media factor with every matching niche
// factor.
func votesScale(p Params) float64 {
	scale := 1.0

	switch p.Media {
	case types.MediaShow:
		scale *= 0.5
	case types.MediaEpisode:
		scale *= 0.5 * 0.1
	case types.MediaSeason:
		scale *= 0.5 * 0.05
	case types.MediaList:
		scale *= 0.05
	}

	for _, n := range p.Niches {
		switch n {
		case types.NicheDocu:
			scale *= 0.2
		case types.NicheDonghua:
			scale *= 0.05
		case types.NicheAnime, types.NicheTopic:
			scale *= 0.1
		case types.NicheShort:
			scale *= 0.05
		case types.NicheTele:
			scale *= 0.1
		case types.NicheSpecial:
			scale *= 0.04
		case types.NicheRegion:
			scale *= 0.33
		case types.NicheKid, types.NicheTeen:
			scale *= 0.75
		case types.NicheSet:
			scale *= 0.05
		}
	}

	return scale
}

func scaleUp(v int, scale float64) int {
	scaled := int(math.Ceil(float64(v) * scale))
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

// StrictFloor exposes the rating floor for a symbol; used by tests and
// the post-filter to reason about compiled thresholds.
func StrictFloor(symbol string) (float64, bool) {
	v, ok := ratingLevels[symbol]
	return v, ok
}

// VotesFloorFor exposes the unscaled vote floor for a symbol.
func VotesFloorFor(symbol string) (int, bool) {
	v, ok := votesLevels[symbol]
	return v, ok
}
