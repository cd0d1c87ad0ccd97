package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"

	"github.com/reeldex/reeldex/internal/config"
	"github.com/reeldex/reeldex/internal/database"
	"github.com/reeldex/reeldex/internal/imdb"
	"github.com/reeldex/reeldex/internal/imdb/company"
	"github.com/reeldex/reeldex/internal/imdb/fetch"
	"github.com/reeldex/reeldex/internal/imdb/types"
	"github.com/reeldex/reeldex/internal/logger"
)

// commandContext wires the service lazily so help and flag errors do
// not open the database.
type commandContext struct {
	configFlag *string

	cfg     *config.Config
	log     *logger.Logger
	db      *database.DB
	sweeper gocron.Scheduler
	service *imdb.Service
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "reeldex",
		Short:         "IMDb discovery and metadata queries",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newDiscoverCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newMetadataCommand(ctx))
	rootCmd.AddCommand(newSeasonsCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newListsCommand(ctx))
	rootCmd.AddCommand(newAwardCommand(ctx))

	return rootCmd
}

// ensureService builds the full stack on first use.
func (c *commandContext) ensureService() (*imdb.Service, error) {
	if c.service != nil {
		return c.service, nil
	}

	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg

	c.log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}
	c.db = db

	cache := fetch.NewCache(db, c.log.Logger)
	sweeper, err := cache.StartSweeper()
	if err != nil {
		return nil, fmt.Errorf("start cache sweeper: %w", err)
	}
	c.sweeper = sweeper

	fetcher := fetch.New(fetch.Config{
		Timeout:        time.Duration(cfg.IMDb.Timeout) * time.Second,
		Concurrency:    int64(cfg.IMDb.Concurrency),
		WindowRequests: cfg.IMDb.WindowRequests,
		Window:         time.Duration(cfg.IMDb.WindowSeconds) * time.Second,
	}, cache, c.log.Logger)

	var kb *company.KB
	if cfg.IMDb.Companies != "" {
		data, err := os.ReadFile(cfg.IMDb.Companies)
		if err != nil {
			return nil, fmt.Errorf("company table override: %w", err)
		}
		kb, err = company.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("company table override: %w", err)
		}
	}

	service, err := imdb.New(imdb.Config{
		Language: cfg.IMDb.Language,
		Country:  cfg.IMDb.Country,
		Adult:    cfg.IMDb.Adult,
		Filter:   types.Strictness(cfg.IMDb.Filter),
	}, fetcher, kb, c.log.Logger)
	if err != nil {
		return nil, err
	}
	c.service = service
	return service, nil
}

func (c *commandContext) close() {
	if c.sweeper != nil {
		_ = c.sweeper.Shutdown()
	}
	if c.db != nil {
		c.db.Close()
	}
	if c.log != nil {
		c.log.Close()
	}
}
