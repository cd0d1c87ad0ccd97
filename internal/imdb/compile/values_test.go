package compile

import (
	"testing"
	"time"

	"github.com/reeldex/reeldex/internal/imdb/types"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestYearRange(t *testing.T) {
	tests := []struct {
		name string
		in   any
		lo   string
		hi   string
		ok   bool
	}{
		{"nil", nil, "", "", true},
		{"scalar", 1994, "1994", "1994", true},
		{"true means up to now", true, "", "2026", true},
		{"range string", "2000,2010", "2000", "2010", true},
		{"open low", ",2010", "", "2010", true},
		{"open high", "2000,", "2000", "", true},
		{"too old", 1700, "", "", false},
		{"garbage", "soonest", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := YearRange(tt.in, testNow)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got := EncodeRange(r); got != tt.lo+","+tt.hi {
				t.Errorf("EncodeRange = %q, want %q", got, tt.lo+","+tt.hi)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name string
		in   any
		lo   string
		hi   string
	}{
		{"nil", nil, "", ""},
		{"true bounds at today", true, "", "2026-09-01"},
		{"relative past days", -7, "2026-08-25", "2026-09-01"},
		{"relative future days", 14, "2026-09-01", "2026-09-15"},
		{"timestamp", int64(1788220800), "2026-09-01", "2026-09-01"},
		{"full date", "2020-06-15", "2020-06-15", "2020-06-15"},
		{"year month", "2020-06", "2020-06-01", "2020-06-30"},
		{"pair", [2]string{"", "2026-09-01"}, "", "2026-09-01"},
		{"range string", "2019-01-01,2019-12-31", "2019-01-01", "2019-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := DateRange(tt.in, testNow)
			if !ok {
				t.Fatal("DateRange rejected input")
			}
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("DateRange = %q,%q; want %q,%q", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestEncodeDecodeRangeRoundTrip(t *testing.T) {
	ranges := []types.Range{
		types.NewRange(7.5, 10),
		types.RangeFrom(1000),
		types.RangeTo(5),
		types.NewRange(1990, 1999),
	}
	for _, r := range ranges {
		encoded := EncodeRange(r)
		decoded, ok := DecodeRange(encoded)
		if !ok {
			t.Fatalf("DecodeRange(%q) failed", encoded)
		}
		if EncodeRange(decoded) != encoded {
			t.Errorf("round trip %q -> %q", encoded, EncodeRange(decoded))
		}
	}
}

func TestDurationRange(t *testing.T) {
	r, ok := DurationRange(5400)
	if !ok || r.Lo == nil || *r.Lo != 5400 {
		t.Errorf("DurationRange(5400) = %+v, %v", r, ok)
	}
	if _, ok := DurationRange("not a duration"); ok {
		t.Error("DurationRange accepted garbage")
	}
}
