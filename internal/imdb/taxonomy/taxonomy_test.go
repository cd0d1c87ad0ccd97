package taxonomy

import "testing"

func TestTitleTypeWire(t *testing.T) {
	tests := []struct {
		abstract TitleType
		dialect  Dialect
		want     string
	}{
		{TypeFeature, DialectSearch, "feature"},
		{TypeFeature, DialectList, "movie"},
		{TypeSeries, DialectSearch, "tvSeries"},
		{TypeSeries, DialectList, "tvSeries"},
		{TypeMiniSeries, DialectSearch, "tvMiniSeries"},
	}
	for _, tt := range tests {
		if got := TitleTypeWire(tt.abstract, tt.dialect); got != tt.want {
			t.Errorf("TitleTypeWire(%v, %v) = %q, want %q", tt.abstract, tt.dialect, got, tt.want)
		}
	}
}

func TestTitleTypeFromWireBothDialects(t *testing.T) {
	for _, wire := range []string{"feature", "movie"} {
		got, ok := TitleTypeFromWire(wire)
		if !ok || got != TypeFeature {
			t.Errorf("TitleTypeFromWire(%q) = %v, %v", wire, got, ok)
		}
	}
}

func TestGenreWire(t *testing.T) {
	tests := []struct {
		genre   string
		dialect Dialect
		want    string
		ok      bool
	}{
		{"animation", DialectSearch, "Animation", true},
		{"animation", DialectList, "animation", true},
		{"sci-fi", DialectSearch, "Sci-Fi", true},
		{"Sci Fi", DialectSearch, "Sci-Fi", true},
		{"!documentary", DialectSearch, "!Documentary", true},
		{"jazzercise", DialectSearch, "", false},
	}
	for _, tt := range tests {
		got, ok := GenreWire(tt.genre, tt.dialect)
		if got != tt.want || ok != tt.ok {
			t.Errorf("GenreWire(%q, %v) = %q, %v; want %q, %v", tt.genre, tt.dialect, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCertificateWire(t *testing.T) {
	tests := []struct {
		cert string
		want string
		ok   bool
	}{
		{"pg13", "US:PG-13", true},
		{"tv-ma", "US:TV-MA", true},
		{"!r", "!US:R", true},
		{"de:pg", "DE:PG", true},
		{"unrated", "US:NR", true},
		{"not rated", "US:NR", true},
		{"banana", "", false},
	}
	for _, tt := range tests {
		got, ok := CertificateWire(tt.cert)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CertificateWire(%q) = %q, %v; want %q, %v", tt.cert, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHistoricalCertificate(t *testing.T) {
	if got := HistoricalCertificate("X", false); got != "NC-17" {
		t.Errorf("film X = %q, want NC-17", got)
	}
	if got := HistoricalCertificate("X", true); got != "TV-MA" {
		t.Errorf("tv X = %q, want TV-MA", got)
	}
	if got := HistoricalCertificate("Not Rated", false); got != "NR" {
		t.Errorf("Not Rated = %q, want NR", got)
	}
	if got := HistoricalCertificate("Suitable for mature audiences only", false); got != "" {
		t.Errorf("advisory text = %q, want empty", got)
	}
}

func TestSortWire(t *testing.T) {
	key, order, ok := SortWire("popularity", "", DialectSearch, false)
	if !ok || key != "moviemeter" || order != "asc" {
		t.Errorf("popularity = %q,%q,%v", key, order, ok)
	}
	key, _, _ = SortWire("popularity", "", DialectSearch, true)
	if key != "starmeter" {
		t.Errorf("person popularity = %q, want starmeter", key)
	}
	key, order, ok = SortWire("myrating", "desc", DialectList, false)
	if !ok || key != "your_rating" || order != "desc" {
		t.Errorf("myrating list = %q,%q,%v", key, order, ok)
	}
	if _, _, ok := SortWire("chaos", "", DialectSearch, false); ok {
		t.Error("unknown sort key accepted")
	}
}

func TestSortForNiche(t *testing.T) {
	key, order, ok := SortForNiche("best")
	if !ok || key != "rating" || order != "desc" {
		t.Errorf("best = %q,%q,%v", key, order, ok)
	}
	key, order, _ = SortForNiche("worst")
	if key != "rating" || order != "asc" {
		t.Errorf("worst = %q,%q", key, order)
	}
}

func TestNormalizeCountry(t *testing.T) {
	tests := map[string]string{
		"uk":  "gb",
		"UK":  "gb",
		"+uk": "+gb",
		"!us": "!us",
		"de":  "de",
	}
	for in, want := range tests {
		if got := NormalizeCountry(in); got != want {
			t.Errorf("NormalizeCountry(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAwardGroupWire(t *testing.T) {
	g, ok := AwardGroupWire("bottom100")
	if !ok || g.Wire != "bottom_100" || !g.Bottom {
		t.Errorf("bottom100 = %+v, %v", g, ok)
	}
	g, ok = AwardGroupWire("oscar_winner")
	if !ok || g.Wire != "oscar_winner" || g.Bottom {
		t.Errorf("oscarwinner = %+v, %v", g, ok)
	}
}
