package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/reeldex/reeldex/internal/imdb/id"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

var (
	yearSpanRe   = regexp.MustCompile(`\((\d{4})(?:[–-](?:\s*(\d{4}))?)?`)
	yearSeriesRe = regexp.MustCompile(`\(\d{4}[–-]`)
	runtimeRe    = regexp.MustCompile(`(\d+)\s*min`)
	episodeRowRe = regexp.MustCompile(`^S(\d+)[., ]*Ep?(\d+)`)
)

// htmlTitles parses an old-layout lister page. IMDb still serves this
// form on some list views and as the season page fallback.
func htmlTitles(payload []byte) ([]*types.Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("html payload: %w", err)
	}

	var results []*types.Result
	doc.Find("div.lister-item, div.list_item").Each(func(i int, item *goquery.Selection) {
		r := htmlTitle(item)
		if r == nil {
			return
		}
		temp := r.TempFor("imdb")
		if temp.Position == 0 {
			temp.Position = i + 1
		}
		results = append(results, r)
	})
	if results == nil {
		results = []*types.Result{}
	}
	return results, nil
}

func htmlTitle(item *goquery.Selection) *types.Result {
	header := item.Find("h3.lister-item-header a, div.info a").First()
	href, _ := header.Attr("href")
	tid, ok := id.ExtractTitle(href)
	if !ok {
		return nil
	}

	yearText := item.Find("span.lister-item-year, span.year_type").First().Text()
	media := types.MediaMovie
	// A dash after the first year ("2016–2018", "2016– ") marks a series.
	if yearSeriesRe.MatchString(yearText) || strings.Contains(yearText, "TV Series") {
		media = types.MediaShow
	}

	r := types.NewResult(media)
	r.IDs["imdb"] = tid.String()
	r.Title = cleanDescription(header.Text())
	if m := yearSpanRe.FindStringSubmatch(yearText); m != nil {
		r.Year, _ = strconv.Atoi(m[1])
	}

	if plot := item.Find("p.text-muted:not(.lister-item-year)").Last().Text(); plot != "" {
		r.Plot = cleanDescription(plot)
	} else if plot := item.Find("div.item_description").Text(); plot != "" {
		r.Plot = cleanDescription(plot)
	}

	if genre := item.Find("span.genre").First().Text(); genre != "" {
		r.Genres = cleanGenres(strings.Split(genre, ","))
	}
	if cert := item.Find("span.certificate").First().Text(); cert != "" {
		r.Certificate = cleanCertificate(cert, media)
	}
	if m := runtimeRe.FindStringSubmatch(item.Find("span.runtime").First().Text()); m != nil {
		mins, _ := strconv.Atoi(m[1])
		r.Duration = mins * 60
	}

	if v, ok := item.Find("div.ratings-imdb-rating").First().Attr("data-value"); ok {
		r.Rating, _ = strconv.ParseFloat(v, 64)
	} else if s := item.Find("div.ipl-rating-star span.ipl-rating-star__rating").First().Text(); s != "" {
		r.Rating, _ = strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	if v, ok := item.Find(`span[name="nv"]`).First().Attr("data-value"); ok {
		votes, _ := strconv.ParseInt(strings.ReplaceAll(v, ",", ""), 10, 64)
		r.Votes = votes
	}

	if img, ok := item.Find("img.loadlate").First().Attr("loadlate"); ok {
		r.Poster = posterImage(img)
	} else if img, ok := item.Find("img").First().Attr("src"); ok && strings.Contains(img, "._V1") {
		r.Poster = posterImage(img)
	}

	temp := r.TempFor("imdb")
	temp.Voting = &types.Voting{Rating: r.Rating, Votes: r.Votes}
	if idx := item.Find("span.lister-item-index").First().Text(); idx != "" {
		idx = strings.TrimSuffix(strings.TrimSpace(idx), ".")
		idx = strings.ReplaceAll(idx, ",", "")
		if pos, err := strconv.Atoi(idx); err == nil {
			temp.Position = pos
		}
	}
	return r
}

// htmlEpisodes parses the old episodes table, the fallback when a
// season page carries no embedded JSON.
func htmlEpisodes(payload []byte) ([]types.Episode, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("html payload: %w", err)
	}

	var episodes []types.Episode
	doc.Find("div.list_item, div.eplist > div.list.detail div.info, div.eplist article").Each(func(i int, item *goquery.Selection) {
		link := item.Find("a[href*='/title/tt']").First()
		href, _ := link.Attr("href")
		eid, ok := id.ExtractTitle(href)
		if !ok {
			return
		}

		ep := types.Episode{
			ID:      eid.String(),
			Episode: i + 1,
			Title:   cleanDescription(link.Text()),
		}
		if label := item.Find("div.image div").First().Text(); label != "" {
			if m := episodeRowRe.FindStringSubmatch(strings.TrimSpace(label)); m != nil {
				ep.Season, _ = strconv.Atoi(m[1])
				ep.Episode, _ = strconv.Atoi(m[2])
			}
		}
		if plot := item.Find("div.item_description").First().Text(); plot != "" {
			ep.Plot = cleanDescription(plot)
		}
		if v, ok := item.Find("div.ipl-rating-star span.ipl-rating-star__rating").First().Attr("data-value"); ok {
			ep.Rating, _ = strconv.ParseFloat(v, 64)
		} else if s := item.Find("span.ipl-rating-star__rating").First().Text(); s != "" {
			ep.Rating, _ = strconv.ParseFloat(strings.TrimSpace(s), 64)
		}
		if s := item.Find("span.ipl-rating-star__total-votes").First().Text(); s != "" {
			s = strings.Trim(strings.TrimSpace(s), "()")
			votes, _ := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
			ep.Votes = votes
		}
		if airdate := item.Find("div.airdate").First().Text(); airdate != "" {
			ep.Premiered = normalizeAirdate(airdate)
		}
		episodes = append(episodes, ep)
	})
	if episodes == nil {
		episodes = []types.Episode{}
	}
	return episodes, nil
}

var airdateMonths = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// normalizeAirdate turns "12 Jan. 2020" into "2020-01-12". Partial
// dates (year only) return empty.
func normalizeAirdate(raw string) string {
	fields := strings.Fields(strings.ReplaceAll(strings.TrimSpace(raw), ".", ""))
	if len(fields) != 3 {
		return ""
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return ""
	}
	name := strings.ToLower(fields[1])
	if len(name) < 3 {
		return ""
	}
	month, ok := airdateMonths[name[:3]]
	if !ok {
		return ""
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
