package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/reeldex/reeldex/internal/imdb/id"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

const (
	posterSize = 780
	thumbSize  = 396
)

// titleTypeMedia maps IMDb titleType ids onto the media axis. Episode
// ids only appear in list payloads; search queries never ask for them.
func titleTypeMedia(typeID string) types.Media {
	switch typeID {
	case "tvSeries", "tvMiniSeries":
		return types.MediaShow
	case "tvEpisode":
		return types.MediaEpisode
	case "":
		return types.MediaUnknown
	default:
		return types.MediaMovie
	}
}

func searchTitles(raw json.RawMessage) ([]*types.Result, error) {
	var node searchNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("search payload: %w", err)
	}

	results := make([]*types.Result, 0, len(node.TitleResults.TitleListItems))
	for i, item := range node.TitleResults.TitleListItems {
		tid, err := id.Title(item.TitleID)
		if err != nil {
			continue
		}
		media := titleTypeMedia(item.TitleType)
		r := types.NewResult(media)
		r.IDs["imdb"] = tid.String()
		r.Title = item.TitleText
		if item.OriginalTitleText != "" && item.OriginalTitleText != item.TitleText {
			r.OriginalTitle = item.OriginalTitleText
		}
		r.Plot = cleanDescription(item.Plot)
		r.Year = item.ReleaseYear
		if len(item.ReleaseDate) >= 10 {
			r.Premiered = item.ReleaseDate[:10]
		}
		r.Genres = cleanGenres(item.Genres)
		r.Certificate = cleanCertificate(item.Certificate, media)
		r.Duration = item.Runtime
		r.Rating = item.RatingSummary.AggregateRating
		r.Votes = int64(item.RatingSummary.VoteCount)
		if item.PrimaryImage.URL != "" {
			r.Poster = posterImage(item.PrimaryImage.URL)
		}
		temp := r.TempFor("imdb")
		temp.Position = i + 1
		temp.Voting = &types.Voting{Rating: r.Rating, Votes: r.Votes}
		reconcilePremiered(r)
		results = append(results, r)
	}
	return results, nil
}

func searchNames(raw json.RawMessage) ([]*types.Result, error) {
	var node searchNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("name search payload: %w", err)
	}

	results := make([]*types.Result, 0, len(node.NameResults.NameListItems))
	for i, item := range node.NameResults.NameListItems {
		nid, err := id.Person(item.NameID)
		if err != nil {
			continue
		}
		r := types.NewResult(types.MediaPerson)
		r.IDs["imdb"] = nid.String()
		r.Title = item.NameText
		r.Plot = cleanDescription(item.Bio)
		if item.PrimaryImage.URL != "" {
			r.Poster = posterImage(item.PrimaryImage.URL)
		}
		r.TempFor("imdb").Position = i + 1
		results = append(results, r)
	}
	return results, nil
}

// listTitles decodes the new-layout list items. Edges wrap full Title
// nodes, unlike the flattened search items.
func listTitles(raw json.RawMessage) ([]*types.Result, error) {
	var node listNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("list payload: %w", err)
	}

	results := make([]*types.Result, 0, len(node.List.TitleListItemSearch.Edges))
	for i, edge := range node.List.TitleListItemSearch.Edges {
		r := titleFromNode(&edge.ListItem)
		if r == nil {
			continue
		}
		r.TempFor("imdb").Position = i + 1
		results = append(results, r)
	}
	return results, nil
}

func listNames(raw json.RawMessage) ([]*types.Result, error) {
	var node listNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("list payload: %w", err)
	}

	results := make([]*types.Result, 0, len(node.List.NameListItemSearch.Edges))
	for i, edge := range node.List.NameListItemSearch.Edges {
		item := edge.ListItem
		nid, err := id.Person(item.ID)
		if err != nil {
			continue
		}
		r := types.NewResult(types.MediaPerson)
		r.IDs["imdb"] = nid.String()
		r.Title = item.NameText.Text
		if item.Bio != nil {
			r.Plot = cleanDescription(item.Bio.Text.PlainText)
		}
		if item.PrimaryImage.URL != "" {
			r.Poster = posterImage(item.PrimaryImage.URL)
		}
		r.TempFor("imdb").Position = i + 1
		results = append(results, r)
	}
	return results, nil
}

// titleFromNode converts one embedded Title node.
func titleFromNode(node *titleNode) *types.Result {
	tid, err := id.Title(node.ID)
	if err != nil {
		return nil
	}
	media := titleTypeMedia(node.TitleType.ID)
	if media == types.MediaUnknown && node.ReleaseYear.EndYear > 0 {
		// A year span means a series even when the type is missing.
		media = types.MediaShow
	}

	r := types.NewResult(media)
	r.IDs["imdb"] = tid.String()
	r.Title = node.TitleText.Text
	if t := node.OriginalTitleText.Text; t != "" && t != r.Title {
		r.OriginalTitle = t
	}
	r.Plot = cleanDescription(node.Plot.PlotText.PlainText)
	r.Year = node.ReleaseYear.Year
	if d := node.ReleaseDate; d.Year > 0 && d.Month > 0 && d.Day > 0 {
		r.Premiered = fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	genres := make([]string, 0, len(node.Genres.Genres))
	for _, g := range node.Genres.Genres {
		genres = append(genres, g.Text)
	}
	r.Genres = cleanGenres(genres)
	r.Certificate = cleanCertificate(node.Certificate.Rating, media)
	r.Duration = node.Runtime.Seconds
	r.Rating = node.RatingsSummary.AggregateRating
	r.Votes = int64(node.RatingsSummary.VoteCount)
	for _, c := range node.CountriesOfOrigin.Countries {
		if c.ID != "" {
			r.Country = append(r.Country, strings.ToLower(c.ID))
		}
	}
	for _, l := range node.SpokenLanguages.SpokenLanguages {
		if l.ID != "" {
			r.Language = append(r.Language, strings.ToLower(l.ID))
		}
	}
	if node.PrimaryImage.URL != "" {
		r.Poster = posterImage(node.PrimaryImage.URL)
	}
	temp := r.TempFor("imdb")
	temp.Voting = &types.Voting{Rating: r.Rating, Votes: r.Votes}
	if node.Episodes != nil {
		temp.Count = node.Episodes.Episodes.Total
	}
	reconcilePremiered(r)
	return r
}

// titlePage merges a title page's aboveTheFoldData and mainColumnData
// into one record. The main column carries credits and finance; the
// fold carries the richer plot and poster.
func titlePage(props *pageProps) (*types.Result, error) {
	var main mainColumnNode
	if len(props.MainColumnData) == 0 {
		return nil, fmt.Errorf("title payload: missing main column")
	}
	if err := json.Unmarshal(props.MainColumnData, &main); err != nil {
		return nil, fmt.Errorf("title payload: %w", err)
	}

	r := titleFromNode(&main.titleNode)
	if r == nil {
		return nil, fmt.Errorf("title payload: invalid id %q", main.ID)
	}

	if len(props.AboveTheFoldData) > 0 {
		var fold titleNode
		if err := json.Unmarshal(props.AboveTheFoldData, &fold); err == nil {
			if r.Plot == "" {
				r.Plot = cleanDescription(fold.Plot.PlotText.PlainText)
			}
			if r.Poster == nil && fold.PrimaryImage.URL != "" {
				r.Poster = posterImage(fold.PrimaryImage.URL)
			}
			if r.Certificate == "" {
				r.Certificate = cleanCertificate(fold.Certificate.Rating, r.Media)
			}
		}
	}

	for i, edge := range main.Cast.Edges {
		member := types.CastMember{
			Name:  edge.Node.Name.NameText.Text,
			Order: i,
		}
		if len(edge.Node.Characters) > 0 {
			roles := make([]string, 0, len(edge.Node.Characters))
			for _, c := range edge.Node.Characters {
				roles = append(roles, c.Name)
			}
			member.Role = strings.Join(roles, " / ")
		}
		if u := edge.Node.Name.PrimaryImage.URL; u != "" {
			member.Thumbnail = id.Thumb(u, thumbSize, true)
		}
		r.Cast = append(r.Cast, member)
	}
	r.Director = principalNames(main.Directors)
	r.Writer = principalNames(main.Writers)
	r.Creator = principalNames(main.Creators)

	for _, edge := range main.Production.Edges {
		if name := edge.Node.Company.CompanyText.Text; name != "" {
			r.Studio = append(r.Studio, name)
		}
	}
	if len(main.DetailsExternalLinks.Edges) > 0 {
		r.Homepage = main.DetailsExternalLinks.Edges[0].Node.URL
	}

	if main.Metacritic != nil && main.Metacritic.Metascore.Score > 0 {
		r.TempFor("metacritic").Voting = &types.Voting{
			Rating: float64(main.Metacritic.Metascore.Score),
			Votes:  int64(main.Metacritic.Metascore.ReviewCount),
		}
	}

	r.Finance = finance(&main)
	r.Award = award(&main)
	return r, nil
}

func principalNames(categories []principalCategory) []string {
	var names []string
	for _, cat := range categories {
		for _, credit := range cat.Credits {
			if n := credit.Name.NameText.Text; n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}

func finance(main *mainColumnNode) *types.Finance {
	f := &types.Finance{}
	if main.ProductionBudget != nil {
		f.Budget = int64(main.ProductionBudget.Budget.Amount)
	}
	if main.WorldwideGross != nil {
		f.Revenue = int64(main.WorldwideGross.Total.Amount)
	}
	if main.OpeningWeekendGross != nil {
		f.Opening = int64(main.OpeningWeekendGross.Gross.Total.Amount)
	}
	if f.Budget == 0 && f.Revenue == 0 && f.Opening == 0 {
		return nil
	}
	if f.Budget > 0 && f.Revenue > 0 {
		f.Profit = f.Revenue - f.Budget
	}
	return f
}

func award(main *mainColumnNode) *types.AwardSummary {
	a := &types.AwardSummary{
		Wins:        main.Wins.Total,
		Nominations: main.Nominations.Total,
	}
	if s := main.PrestigiousAwardSummary; s != nil {
		name := s.Award.Text.Text
		switch {
		case s.Wins > 0:
			a.Summary = fmt.Sprintf("Won %s %s", plural(s.Wins, name), yearSuffix(s.Award.Year))
		case s.Nominations > 0:
			a.Summary = fmt.Sprintf("Nominated for %s %s", plural(s.Nominations, name), yearSuffix(s.Award.Year))
		}
		a.Summary = strings.TrimSpace(a.Summary)
	}
	if a.Wins == 0 && a.Nominations == 0 && a.Summary == "" {
		return nil
	}
	return a
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func yearSuffix(year int) string {
	if year == 0 {
		return ""
	}
	return fmt.Sprintf("(%d)", year)
}

// userLists decodes a user's lists index into list-records.
func userLists(raw json.RawMessage) ([]*types.Result, error) {
	var node userListsNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("user lists payload: %w", err)
	}

	results := make([]*types.Result, 0, len(node.Lists.Edges))
	for _, edge := range node.Lists.Edges {
		lid, err := id.List(edge.Node.ID)
		if err != nil {
			continue
		}
		r := types.NewResult(types.MediaList)
		r.IDs["imdb"] = lid.String()
		r.Title = edge.Node.Name.OriginalText
		temp := r.TempFor("imdb")
		temp.Count = edge.Node.Items.Total
		if t := edge.Node.ListType.ID; t != "" {
			temp.Extra = append(temp.Extra, strings.ToLower(t))
		}
		results = append(results, r)
	}
	return results, nil
}

// seasonEpisodes decodes the contentData of a season page.
func seasonEpisodes(raw json.RawMessage) ([]types.Episode, error) {
	var node episodesNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("episodes payload: %w", err)
	}

	episodes := make([]types.Episode, 0, len(node.Section.Episodes.Items))
	for _, item := range node.Section.Episodes.Items {
		eid, err := id.Title(item.ID)
		if err != nil {
			continue
		}
		ep := types.Episode{
			ID:      eid.String(),
			Season:  atoiSeason(item.Season),
			Episode: atoiSeason(item.Episode),
			Title:   item.TitleText,
			Plot:    cleanDescription(item.Plot),
			Rating:  item.AggregateRating,
			Votes:   int64(item.VoteCount),
		}
		if d := item.ReleaseDate; d.Year > 0 && d.Month > 0 && d.Day > 0 {
			ep.Premiered = fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
		}
		if item.Image.URL != "" {
			ep.Thumbnail = id.Thumb(item.Image.URL, thumbSize, true)
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

// atoiSeason parses season and episode labels. IMDb labels the
// unknown season "Unknown", which maps back to 0.
func atoiSeason(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func posterImage(url string) *types.MetaImage {
	return &types.MetaImage{
		Link:      id.Thumb(url, posterSize, false),
		Provider:  "imdb",
		Kind:      "poster",
		SortIndex: 0,
		SortVote:  0,
	}
}

// reconcilePremiered keeps year and premiered consistent. The release
// year field wins over the release date when they disagree.
func reconcilePremiered(r *types.Result) {
	if r.Year == 0 && len(r.Premiered) >= 4 {
		if y, err := strconv.Atoi(r.Premiered[:4]); err == nil {
			r.Year = y
		}
		return
	}
	if r.Year > 0 && len(r.Premiered) >= 4 {
		if y, err := strconv.Atoi(r.Premiered[:4]); err == nil && y != r.Year {
			r.Premiered = ""
		}
	}
}
