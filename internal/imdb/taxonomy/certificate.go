package taxonomy

import "strings"

// Certificates are addressed in the US system unless a request value
// already carries a region qualifier. "NR" on its own compiles into a
// negation of every known certificate.
var certificates = []string{
	"G", "PG", "PG-13", "R", "NC-17",
	"TV-Y", "TV-Y7", "TV-G", "TV-PG", "TV-14", "TV-MA",
}

// KnownCertificates returns the closed certificate set, film ratings
// first.
func KnownCertificates() []string {
	out := make([]string, len(certificates))
	copy(out, certificates)
	return out
}

// CertificateWire qualifies and uppercases a certificate value for the
// wire ("pg13" → "US:PG-13"). Negation prefixes survive. Unknown values
// return ok=false.
func CertificateWire(cert string) (string, bool) {
	stripped, negated := Negated(cert)
	if i := strings.Index(stripped, ":"); i >= 0 {
		// Already region-qualified; trust the caller.
		region := strings.ToUpper(stripped[:i])
		name, ok := NormalizeCertificate(stripped[i+1:])
		if !ok {
			return "", false
		}
		return withNegation(region+":"+name, negated), true
	}
	name, ok := NormalizeCertificate(stripped)
	if !ok {
		return "", false
	}
	return withNegation("US:"+name, negated), true
}

func withNegation(v string, negated bool) string {
	if negated {
		return PrefixNegate + v
	}
	return v
}

// NormalizeCertificate maps spelling variants onto the closed set.
// "NR" is accepted and returned verbatim even though it is not a real
// IMDb certificate; the compiler special-cases it.
func NormalizeCertificate(cert string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(cert))
	c = strings.ReplaceAll(c, "_", "-")
	c = strings.ReplaceAll(c, " ", "-")
	switch c {
	case "PG13":
		c = "PG-13"
	case "NC17":
		c = "NC-17"
	case "TVY":
		c = "TV-Y"
	case "TVY7", "TV-Y7-FV":
		c = "TV-Y7"
	case "TVG":
		c = "TV-G"
	case "TVPG":
		c = "TV-PG"
	case "TV14":
		c = "TV-14"
	case "TVMA":
		c = "TV-MA"
	case "NOT-RATED", "NOTRATED", "UNRATED", "UR":
		c = "NR"
	}
	if c == "NR" {
		return c, true
	}
	for _, known := range certificates {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// HistoricalCertificate resolves certificates IMDb still emits on old
// titles into their modern equivalent. "X" depends on the media: films
// became NC-17, television is addressed as TV-MA. Long unrecognized
// strings are advisory text, not certificates, and are discarded.
func HistoricalCertificate(cert string, television bool) string {
	c := strings.ToUpper(strings.TrimSpace(cert))
	switch c {
	case "X", "M/X", "GP/X":
		if television {
			return "TV-MA"
		}
		return "NC-17"
	case "M", "GP":
		return "PG"
	case "APPROVED", "PASSED":
		return ""
	}
	if normalized, ok := NormalizeCertificate(c); ok {
		return normalized
	}
	return ""
}
