package extract

import (
	"html"
	"regexp"
	"strings"

	"github.com/reeldex/reeldex/internal/imdb/taxonomy"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

var (
	bbcodeRe   = regexp.MustCompile(`\[/?[a-zA-Z]+[^\]]*\]`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	spacesRe   = regexp.MustCompile(`  +`)
	summaryRe  = regexp.MustCompile(`(?i)see full (summary|synopsis)\s*(»|&raquo;)?\s*$`)
	linkRe     = regexp.MustCompile(`\[link=[^\]]*/((?:tt|nm)\d+)[^\]]*\]`)
)

// cleanDescription normalizes a plot string from any payload form.
// List descriptions arrive with BBcode, residual markup and the "Add
// a plot" placeholder; exports additionally HTML-encode quotes.
func cleanDescription(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.EqualFold(s, "add a plot") || strings.HasPrefix(strings.ToLower(s), "add a plot") {
		return ""
	}
	s = summaryRe.ReplaceAllString(s, "")
	s = bbcodeRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\u200b", "")
	s = strings.ReplaceAll(s, "\ufeff", "")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanCertificate maps odd and historical ratings onto the supported
// set. Unrecognized long strings (reasons, advisories) are dropped.
func cleanCertificate(raw string, media types.Media) string {
	television := media == types.MediaShow || media == types.MediaSeason || media == types.MediaEpisode
	return taxonomy.HistoricalCertificate(raw, television)
}

// cleanGenres lowercases genre values and drops parameter artifacts
// (negation and primary prefixes) that leak into list payloads.
func cleanGenres(raw []string) []string {
	genres := make([]string, 0, len(raw))
	for _, g := range raw {
		g = strings.TrimSpace(strings.ToLower(g))
		g = strings.TrimPrefix(g, taxonomy.PrefixNegate)
		g = strings.TrimPrefix(g, taxonomy.PrefixPrimary)
		if g == "" {
			continue
		}
		genres = append(genres, g)
	}
	return genres
}

// linkedID pulls a title or person id out of [link=…] description
// markup, used when an export row's Const is not a real IMDb id.
func linkedID(description string) string {
	m := linkRe.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	return m[1]
}
