package compile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/reeldex/reeldex/internal/imdb/types"
)

// Request year/date/duration values arrive in several shapes: scalars,
// two-element ranges, booleans ("anything up to now"), date strings,
// relative day counts and raw timestamps. Everything normalizes into an
// inclusive two-element range with nil open ends.

const (
	minYear = 1850

	// Integers below this magnitude are relative day offsets; above it
	// they are unix timestamps.
	relativeDayLimit = 100000
)

// YearRange normalizes a loose year value. ok is false when the value
// cannot be interpreted.
func YearRange(v any, now time.Time) (types.Range, bool) {
	switch t := v.(type) {
	case nil:
		return types.Range{}, true
	case bool:
		if !t {
			return types.Range{}, true
		}
		// true means "everything up to now".
		return types.RangeTo(float64(now.Year())), true
	case int:
		return yearScalar(float64(t))
	case int64:
		return yearScalar(float64(t))
	case float64:
		return yearScalar(t)
	case types.Range:
		return t, true
	case *types.Range:
		if t == nil {
			return types.Range{}, true
		}
		return *t, true
	case string:
		return yearString(t, now)
	}
	return types.Range{}, false
}

func yearScalar(y float64) (types.Range, bool) {
	if y < minYear || y > 9999 {
		return types.Range{}, false
	}
	return types.NewRange(y, y), true
}

func yearString(s string, now time.Time) (types.Range, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Range{}, true
	}
	if s == "true" {
		return types.RangeTo(float64(now.Year())), true
	}
	if lo, hi, ok := splitRange(s); ok {
		r := types.Range{}
		if lo != "" {
			y, err := strconv.Atoi(lo)
			if err != nil {
				return types.Range{}, false
			}
			f := float64(y)
			r.Lo = &f
		}
		if hi != "" {
			y, err := strconv.Atoi(hi)
			if err != nil {
				return types.Range{}, false
			}
			f := float64(y)
			r.Hi = &f
		}
		return r, true
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return types.Range{}, false
	}
	return yearScalar(float64(y))
}

// DateRange normalizes a loose date value into inclusive YYYY-MM-DD
// bounds. Empty strings mean open ends.
func DateRange(v any, now time.Time) (lo, hi string, ok bool) {
	switch t := v.(type) {
	case nil:
		return "", "", true
	case bool:
		if !t {
			return "", "", true
		}
		return "", formatDate(now), true
	case int:
		return dateScalar(int64(t), now)
	case int64:
		return dateScalar(t, now)
	case float64:
		return dateScalar(int64(t), now)
	case [2]string:
		return t[0], t[1], true
	case string:
		return dateString(t, now)
	}
	return "", "", false
}

func dateScalar(v int64, now time.Time) (string, string, bool) {
	if v == 0 {
		return "", "", true
	}
	if abs(v) < relativeDayLimit {
		// Relative days: negative into the past, positive into the
		// future.
		target := now.AddDate(0, 0, int(v))
		if v < 0 {
			return formatDate(target), formatDate(now), true
		}
		return formatDate(now), formatDate(target), true
	}
	// Timestamp.
	d := formatDate(time.Unix(v, 0).UTC())
	return d, d, true
}

func dateString(s string, now time.Time) (string, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", true
	}
	if lo, hi, ok := splitRange(s); ok {
		loN, okLo := normalizeDate(lo, false)
		hiN, okHi := normalizeDate(hi, true)
		if !okLo || !okHi {
			return "", "", false
		}
		return loN, hiN, true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return dateScalar(n, now)
	}
	d, ok := normalizeDate(s, false)
	if !ok {
		return "", "", false
	}
	hiD, _ := normalizeDate(s, true)
	return d, hiD, true
}

// normalizeDate accepts YYYY, YYYY-MM and YYYY-MM-DD. Partial dates
// snap to the start of the period, or its end when endOfPeriod is set
// (hi bounds are inclusive).
func normalizeDate(s string, endOfPeriod bool) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		switch layout {
		case "2006-01-02":
			return formatDate(t), true
		case "2006-01":
			if endOfPeriod {
				return formatDate(t.AddDate(0, 1, -1)), true
			}
			return formatDate(t), true
		case "2006":
			if endOfPeriod {
				return fmt.Sprintf("%s-12-31", s), true
			}
			return fmt.Sprintf("%s-01-01", s), true
		}
	}
	return "", false
}

// DurationRange normalizes seconds.
func DurationRange(v any) (types.Range, bool) {
	switch t := v.(type) {
	case nil:
		return types.Range{}, true
	case int:
		return types.NewRange(float64(t), float64(t)), true
	case int64:
		return types.NewRange(float64(t), float64(t)), true
	case float64:
		return types.NewRange(t, t), true
	case types.Range:
		return t, true
	case string:
		if lo, hi, ok := splitRange(t); ok {
			r := types.Range{}
			if lo != "" {
				f, err := strconv.ParseFloat(lo, 64)
				if err != nil {
					return types.Range{}, false
				}
				r.Lo = &f
			}
			if hi != "" {
				f, err := strconv.ParseFloat(hi, 64)
				if err != nil {
					return types.Range{}, false
				}
				r.Hi = &f
			}
			return r, true
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return types.Range{}, false
		}
		return types.NewRange(f, f), true
	}
	return types.Range{}, false
}

// EncodeRange renders a range as the wire "lo,hi" form with empty open
// halves. Whole numbers drop the decimal point.
func EncodeRange(r types.Range) string {
	return encodeHalf(r.Lo) + "," + encodeHalf(r.Hi)
}

// EncodeDatePair renders date bounds the same way.
func EncodeDatePair(lo, hi string) string {
	return lo + "," + hi
}

// DecodeRange parses a wire "lo,hi" back into a range. Used by tests to
// verify the round trip and by the post-filter when reading a compiled
// request back.
func DecodeRange(s string) (types.Range, bool) {
	lo, hi, ok := splitRange(s)
	if !ok {
		return types.Range{}, false
	}
	r := types.Range{}
	if lo != "" {
		f, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return types.Range{}, false
		}
		r.Lo = &f
	}
	if hi != "" {
		f, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return types.Range{}, false
		}
		r.Hi = &f
	}
	return r, true
}

func encodeHalf(v *float64) string {
	if v == nil {
		return ""
	}
	if *v == math.Trunc(*v) {
		return strconv.FormatInt(int64(*v), 10)
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func splitRange(s string) (lo, hi string, ok bool) {
	i := strings.Index(s, ",")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
