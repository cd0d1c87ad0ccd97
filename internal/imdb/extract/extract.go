package extract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/reeldex/reeldex/internal/imdb/types"
)

// Titles extracts title records from any list-shaped payload: search
// results, list pages, CSV exports and the old HTML listers.
func Titles(payload []byte) ([]*types.Result, error) {
	switch Sniff(payload) {
	case FormCSV:
		return csvRows(payload)
	case FormJSON:
		props, err := parsePageState(payload)
		if err != nil {
			return nil, err
		}
		if len(props.SearchResults) > 0 {
			return searchTitles(props.SearchResults)
		}
		if len(props.MainColumnData) > 0 {
			return listTitles(props.MainColumnData)
		}
		return nil, errNoPageState
	case FormHTML:
		return htmlTitles(payload)
	default:
		return nil, fmt.Errorf("unrecognized payload")
	}
}

// Persons extracts person records from a name search, a person list
// or a CSV export of either.
func Persons(payload []byte) ([]*types.Result, error) {
	switch Sniff(payload) {
	case FormCSV:
		return csvRows(payload)
	case FormJSON:
		props, err := parsePageState(payload)
		if err != nil {
			return nil, err
		}
		if len(props.SearchResults) > 0 {
			return searchNames(props.SearchResults)
		}
		if len(props.MainColumnData) > 0 {
			return listNames(props.MainColumnData)
		}
		return nil, errNoPageState
	default:
		return nil, fmt.Errorf("unrecognized payload")
	}
}

// UserLists extracts list records from a user's lists index.
func UserLists(payload []byte) ([]*types.Result, error) {
	props, err := parsePageState(payload)
	if err != nil {
		return nil, err
	}
	if len(props.MainColumnData) == 0 {
		return nil, errNoPageState
	}
	return userLists(props.MainColumnData)
}

// Title extracts the full record from a title page.
func Title(payload []byte) (*types.Result, error) {
	props, err := parsePageState(payload)
	if err != nil {
		return nil, err
	}
	return titlePage(props)
}

// Episodes extracts a season's episode list. The embedded JSON form is
// tried first; pages without it fall back to the old episodes table.
func Episodes(payload []byte) ([]types.Episode, error) {
	props, err := parsePageState(payload)
	if err == nil && len(props.ContentData) > 0 {
		episodes, jerr := seasonEpisodes(props.ContentData)
		if jerr == nil && len(episodes) > 0 {
			return episodes, nil
		}
	}
	if errors.Is(err, errNoPageState) || err == nil {
		return htmlEpisodes(payload)
	}
	return nil, err
}

// Season extracts a season page and aggregates it into one record:
// rating is the mean of the non-zero episode ratings, votes the
// maximum, and the episode count lands in the provider temp.
func Season(payload []byte, season int) (*types.Result, error) {
	episodes, err := Episodes(payload)
	if err != nil {
		return nil, err
	}

	r := types.NewResult(types.MediaSeason)
	r.Season = season
	r.Episodes = episodes

	var sum float64
	var rated int
	for _, ep := range episodes {
		if ep.Rating > 0 {
			sum += ep.Rating
			rated++
		}
		if ep.Votes > r.Votes {
			r.Votes = ep.Votes
		}
	}
	if rated > 0 {
		r.Rating = sum / float64(rated)
	}

	temp := r.TempFor("imdb")
	temp.Count = len(episodes)
	temp.Voting = &types.Voting{Rating: r.Rating, Votes: r.Votes}
	return r, nil
}

// Awards produces a best-effort summary from an awards page by
// counting outcomes in either layout.
func Awards(payload []byte) (*types.AwardSummary, error) {
	wins := bytes.Count(payload, []byte(`"isWinner":true`))
	losses := bytes.Count(payload, []byte(`"isWinner":false`))

	if wins == 0 && losses == 0 {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("awards payload: %w", err)
		}
		doc.Find("td.title_award_outcome b, span.award_category").Each(func(_ int, sel *goquery.Selection) {
			switch sel.Text() {
			case "Winner":
				wins++
			case "Nominee":
				losses++
			}
		})
	}

	if wins == 0 && losses == 0 {
		return nil, nil
	}
	return &types.AwardSummary{
		Wins:        wins,
		Nominations: wins + losses,
		Summary:     fmt.Sprintf("%d wins & %d nominations", wins, losses),
	}, nil
}
