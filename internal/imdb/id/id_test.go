package id

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{"tt0111161", KindTitle},
		{"ls012345678", KindList},
		{"co0144901", KindCompany},
		{"nm0000151", KindPerson},
		{"ur12345678", KindUser},
		{"TT0111161", KindTitle},
		{"0111161", KindUnknown},
		{"tt", KindUnknown},
		{"", KindUnknown},
		{"xx123", KindUnknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.raw); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw     string
		kind    Kind
		want    string
		wantErr bool
	}{
		{"tt0111161", KindTitle, "tt0111161", false},
		{"0111161", KindTitle, "tt0111161", false},
		{" TT0111161 ", KindTitle, "tt0111161", false},
		{"0111161", KindList, "ls0111161", false},
		{"nm0000151", KindTitle, "", true},
		{"tt0111161", KindUnknown, "tt0111161", false},
		{"garbage", KindUnknown, "", true},
		{"", KindTitle, "", true},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.raw, tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("Normalize(%q, %v) error = %v, wantErr %v", tt.raw, tt.kind, err, tt.wantErr)
			continue
		}
		if err == nil && got.String() != tt.want {
			t.Errorf("Normalize(%q, %v) = %q, want %q", tt.raw, tt.kind, got, tt.want)
		}
	}
}

func TestNormalizeClassifyRoundTrip(t *testing.T) {
	for kind, raw := range map[Kind]string{
		KindTitle:   "tt0944947",
		KindList:    "ls000055555",
		KindCompany: "co0319272",
		KindPerson:  "nm0000206",
		KindUser:    "ur10101010",
	} {
		normalized, err := Normalize(raw, kind)
		if err != nil {
			t.Fatalf("Normalize(%q, %v) error: %v", raw, kind, err)
		}
		if got := Classify(normalized.String()); got != kind {
			t.Errorf("Classify(Normalize(%q)) = %v, want %v", raw, got, kind)
		}
		// Idempotence.
		again, err := Normalize(normalized.String(), kind)
		if err != nil || again.String() != normalized.String() {
			t.Errorf("Normalize not idempotent for %q: %q, %v", raw, again, err)
		}
	}
}

func TestExtractTitle(t *testing.T) {
	got, ok := ExtractTitle(`[link=/title/tt0903747/]Breaking Bad[/link]`)
	if !ok || got.String() != "tt0903747" {
		t.Errorf("ExtractTitle = %q, %v", got, ok)
	}
	if _, ok := ExtractTitle("no id here"); ok {
		t.Error("ExtractTitle matched text without an id")
	}
}

func TestLinks(t *testing.T) {
	title := MustTitle("tt0944947")
	if got := TitleURL(title); got != "https://www.imdb.com/title/tt0944947/" {
		t.Errorf("TitleURL = %q", got)
	}
	if got := EpisodesURL(title, 2); got != "https://www.imdb.com/title/tt0944947/episodes?season=2" {
		t.Errorf("EpisodesURL = %q", got)
	}
	if got := EpisodesURL(title, 0); got != "https://www.imdb.com/title/tt0944947/episodes?season=Unknown" {
		t.Errorf("EpisodesURL season 0 = %q", got)
	}
	user, _ := User("ur12345678")
	if got := WatchlistURL(user); got != "https://www.imdb.com/user/ur12345678/watchlist" {
		t.Errorf("WatchlistURL = %q", got)
	}
	if got := Shorten(TitleURL(title)); got != "https://imdb.com/title/tt0944947/" {
		t.Errorf("Shorten = %q", got)
	}
}

func TestThumb(t *testing.T) {
	raw := "https://m.media-amazon.com/images/M/MV5BMDFkYTc0MGEtZmNhMC00ZDIzLWFmNTEtODM1ZmRlYWMwMWFmXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_UX182_CR0,0,182,268_AL_.jpg"

	got := Thumb(raw, 780, false)
	want := "https://m.media-amazon.com/images/M/MV5BMDFkYTc0MGEtZmNhMC00ZDIzLWFmNTEtODM1ZmRlYWMwMWFmXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_UX780_.jpg"
	if got != want {
		t.Errorf("Thumb = %q, want %q", got, want)
	}

	// Idempotent for the same size.
	if again := Thumb(got, 780, false); again != got {
		t.Errorf("Thumb not idempotent: %q", again)
	}
}

func TestThumbCrop(t *testing.T) {
	raw := "https://m.media-amazon.com/images/M/abc@._V1_UX182_CR0,0,182,268_AL_.jpg"
	got := Thumb(raw, 364, true)
	want := "https://m.media-amazon.com/images/M/abc@._V1_UX364_CR0,0,364,536_.jpg"
	if got != want {
		t.Errorf("Thumb crop = %q, want %q", got, want)
	}
	if again := Thumb(got, 364, true); again != got {
		t.Errorf("Thumb crop not idempotent: %q", again)
	}
}

func TestThumbForeignURL(t *testing.T) {
	raw := "https://example.com/poster.jpg"
	if got := Thumb(raw, 780, false); got != raw {
		t.Errorf("Thumb rewrote a non-IMDb url: %q", got)
	}
}
