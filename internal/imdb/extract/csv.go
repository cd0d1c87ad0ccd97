package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/reeldex/reeldex/internal/imdb/id"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

// csvRows decodes a list export. The header row names the columns;
// exports mix title and person rows, decided per row by the Const
// prefix or the presence of a Name value.
func csvRows(payload []byte) ([]*types.Result, error) {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1 // IMDb pads some rows short

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv payload: %w", err)
	}
	if len(records) < 2 {
		return []*types.Result{}, nil
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	results := make([]*types.Result, 0, len(records)-1)
	for n, row := range records[1:] {
		konst := field(row, "const")
		description := field(row, "description")
		if id.Classify(konst) == id.KindUnknown {
			// Some exports carry the real id only in description markup.
			konst = linkedID(description)
		}

		var r *types.Result
		if strings.HasPrefix(konst, "nm") || field(row, "name") != "" {
			r = csvPerson(konst, row, field)
		} else {
			r = csvTitle(konst, row, field)
		}
		if r == nil {
			continue
		}

		temp := r.TempFor("imdb")
		if pos, err := strconv.Atoi(field(row, "position")); err == nil {
			temp.Position = pos
		} else {
			temp.Position = n + 1
		}
		if created := field(row, "created"); created != "" {
			temp.Time = created
		}
		if r.Plot == "" && description != "" {
			r.Plot = cleanDescription(description)
		}
		results = append(results, r)
	}
	return results, nil
}

func csvTitle(konst string, row []string, field func([]string, string) string) *types.Result {
	tid, err := id.Title(konst)
	if err != nil {
		return nil
	}

	media := types.MediaUnknown
	switch strings.ToLower(field(row, "title type")) {
	case "movie", "tv movie", "video", "tv special", "short", "tv short":
		media = types.MediaMovie
	case "tv series", "tv mini series", "tv mini-series":
		media = types.MediaShow
	case "tv episode":
		media = types.MediaEpisode
	}

	r := types.NewResult(media)
	r.IDs["imdb"] = tid.String()
	r.Title = cleanDescription(field(row, "title"))
	if orig := cleanDescription(field(row, "original title")); orig != "" && orig != r.Title {
		r.OriginalTitle = orig
	}
	if y, err := strconv.Atoi(field(row, "year")); err == nil {
		r.Year = y
	}
	if date := field(row, "release date"); len(date) >= 10 {
		r.Premiered = date[:10]
	}
	if genres := field(row, "genres"); genres != "" {
		r.Genres = cleanGenres(strings.Split(genres, ","))
	}
	if mins, err := strconv.Atoi(field(row, "runtime (mins)")); err == nil {
		r.Duration = mins * 60
	}
	if rating, err := strconv.ParseFloat(field(row, "imdb rating"), 64); err == nil {
		r.Rating = rating
	}
	if votes, err := strconv.Atoi(field(row, "num votes")); err == nil {
		r.Votes = int64(votes)
	}
	if directors := field(row, "directors"); directors != "" {
		for _, d := range strings.Split(directors, ",") {
			if d = strings.TrimSpace(d); d != "" {
				r.Director = append(r.Director, d)
			}
		}
	}

	temp := r.TempFor("imdb")
	temp.Voting = &types.Voting{Rating: r.Rating, Votes: r.Votes}
	if mine, err := strconv.ParseFloat(field(row, "your rating"), 64); err == nil {
		temp.Extra = append(temp.Extra, fmt.Sprintf("myrating=%g", mine))
	}
	reconcilePremiered(r)
	return r
}

func csvPerson(konst string, row []string, field func([]string, string) string) *types.Result {
	nid, err := id.Person(konst)
	if err != nil {
		return nil
	}
	r := types.NewResult(types.MediaPerson)
	r.IDs["imdb"] = nid.String()
	r.Title = cleanDescription(field(row, "name"))
	if known := field(row, "known for"); known != "" {
		r.TempFor("imdb").Extra = append(r.TempFor("imdb").Extra, known)
	}
	return r
}
