package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reeldex/reeldex/internal/imdb/types"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// discoverFlags are the request fields shared by discover and search.
type discoverFlags struct {
	media     string
	niches    []string
	query     string
	keywords  []string
	genres    []string
	languages []string
	countries []string
	certs     []string
	company   string
	year      string
	rating    string
	votes     string
	sort      string
	order     string
	limit     int
	page      int
	csv       bool
	filter    string
}

func (f *discoverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.media, "media", "m", "movie", "media axis: movie, show or person")
	cmd.Flags().StringSliceVarP(&f.niches, "niche", "n", nil, "niche tags (anime, best, new, ...)")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "title query, or the region/topic/mood argument")
	cmd.Flags().StringSliceVarP(&f.keywords, "keyword", "k", nil, "keywords")
	cmd.Flags().StringSliceVarP(&f.genres, "genre", "g", nil, "genres; prefix ! to exclude")
	cmd.Flags().StringSliceVar(&f.languages, "language", nil, "languages; prefix + for primary, ! to exclude")
	cmd.Flags().StringSliceVar(&f.countries, "country", nil, "countries; prefix + for primary, ! to exclude")
	cmd.Flags().StringSliceVar(&f.certs, "certificate", nil, "certificates")
	cmd.Flags().StringVar(&f.company, "company", "", "company name or co id")
	cmd.Flags().StringVar(&f.year, "year", "", "year or year range (2000-2010)")
	cmd.Flags().StringVar(&f.rating, "rating", "", "rating bound or strictness symbol")
	cmd.Flags().StringVar(&f.votes, "votes", "", "votes bound or strictness symbol")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort key")
	cmd.Flags().StringVar(&f.order, "order", "", "sort order: asc or desc")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "page size (1-250)")
	cmd.Flags().IntVar(&f.page, "page", 0, "page number")
	cmd.Flags().StringVar(&f.filter, "filter", "", "post-filter level: none, lenient or strict")
}

func (f *discoverFlags) request() types.Request {
	req := types.Request{
		Media:        types.Media(f.media),
		Query:        f.query,
		Keyword:      f.keywords,
		Genres:       f.genres,
		Languages:    f.languages,
		Countries:    f.countries,
		Certificates: f.certs,
		Company:      f.company,
		Sort:         f.sort,
		Order:        f.order,
		Limit:        f.limit,
		Page:         f.page,
		CSV:          f.csv,
		Filter:       types.Strictness(f.filter),
	}
	for _, n := range f.niches {
		req.Niches = append(req.Niches, types.Niche(strings.ToLower(n)))
	}
	if f.year != "" {
		req.Year = parseBound(f.year)
	}
	if f.rating != "" {
		req.Rating = parseBound(f.rating)
	}
	if f.votes != "" {
		req.Votes = parseBound(f.votes)
	}
	return req
}

// parseBound turns "7.5", "2000-2010" or a strictness symbol into the
// request's loose value shape.
func parseBound(s string) any {
	if lo, hi, ok := strings.Cut(s, "-"); ok && lo != "" && hi != "" {
		l, lerr := strconv.ParseFloat(lo, 64)
		h, herr := strconv.ParseFloat(hi, 64)
		if lerr == nil && herr == nil {
			return types.NewRange(l, h)
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	flags := &discoverFlags{}
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Run a discovery query",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.ensureService()
			if err != nil {
				return err
			}
			results, err := service.Discover(cmd.Context(), flags.request())
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	flags.register(cmd)
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	flags := &discoverFlags{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Discover without implicit exclusions",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.ensureService()
			if err != nil {
				return err
			}
			results, err := service.Search(cmd.Context(), flags.request())
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	flags.register(cmd)
	return cmd
}

func newMetadataCommand(ctx *commandContext) *cobra.Command {
	var language, country string
	cmd := &cobra.Command{
		Use:   "metadata <tt-id>",
		Short: "Fetch the full record of a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.ensureService()
			if err != nil {
				return err
			}
			result, err := service.Metadata(cmd.Context(), args[0], language, country)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "language tag")
	cmd.Flags().StringVar(&country, "country", "", "country tag")
	return cmd
}

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seasons <tt-id> <season>...",
		Short: "Fetch season records of a show",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seasons := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("season %q is not a number", arg)
				}
				seasons = append(seasons, n)
			}
			service, err := ctx.ensureService()
			if err != nil {
				return err
			}
			results, err := service.MetadataSeason(cmd.Context(), args[0], seasons)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	flags := &discoverFlags{}
	var watch, ratings, checkins bool
	cmd := &cobra.Command{
		Use:   "list <ls-id | ur-id>",
		Short: "Read a list, or a user page with --watch/--ratings/--checkins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.ensureService()
			if err != nil {
				return err
			}
			req := flags.request()

			var results []*types.Result
			switch {
			case watch:
				results, err = service.ListWatch(cmd.Context(), args[0], req)
			case ratings:
				results, err = service.ListRating(cmd.Context(), args[0], req)
			case checkins:
				results, err = service.ListCheckin(cmd.Context(), args[0], req)
			default:
				req.ID = args[0]
				results, err = service.List(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.csv, "csv", false, "use the CSV export endpoint")
	cmd.Flags().BoolVar(&watch, "watch", false, "read the user's watchlist")
	cmd.Flags().BoolVar(&ratings, "ratings", false, "read the user's ratings")
	cmd.Flags().BoolVar(&checkins, "checkins", false, "read the user's check-ins")
	return cmd
}

func newListsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lists <ur-id>",
		Short: "Enumerate the public lists of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.ensureService()
			if err != nil {
				return err
			}
			results, err := service.Lists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
}

func newAwardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "award <tt-id>",
		Short: "Fetch the awards summary of a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.ensureService()
			if err != nil {
				return err
			}
			summary, err := service.MetadataAward(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}
}
