package commands

import (
	"log/slog"
	"time"

	"lauzhack-dataset/lib/scrapers/github"
	"lauzhack-dataset/lib/serviceutil"
	"lauzhack-dataset/lib/sqliteutil"
	"lauzhack-dataset/services/dataset"
	"lauzhack-dataset/services/dataset/db"

	"github.com/spf13/cobra"
)

var enrichDb *string
var enrichToken *string

func init() {
	enrichDb = enrichCmd.Flags().String("db", "", "The database holding scraped projects (overrides config).")
	enrichToken = enrichCmd.Flags().String("token", "", "GitHub API token, raises the rate limit ceiling (overrides config).")
	rootCmd.AddCommand(enrichCmd)
}

var enrichCmd = &cobra.Command{
	Use:   "enrich [--db <path/to/dataset.db>] [--token <github token>]",
	Short: "Enriches scraped project links with GitHub repository metadata.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		dbpath := cfg.Database
		if *enrichDb != "" {
			dbpath = *enrichDb
		}
		token := cfg.Token
		if *enrichToken != "" {
			token = *enrichToken
		}

		ctx := cmd.Context()

		out, err := sqliteutil.OpenDB(db.Schema, dbpath)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()
		store := dataset.NewStore(out)

		links, err := store.GithubLinks(ctx)
		if err != nil {
			serviceutil.Fatal("failed to list project links", err)
		}
		slog.Info("found unique github repositories", "count", len(links), "token", token != "")

		client := github.NewClient(github.ClientOptions{Token: token})
		delay := time.Duration(cfg.DelayMs) * time.Millisecond

		t1 := time.Now()
		profiles := github.EnrichBatch(ctx, client, links, delay)

		err = store.SaveProfiles(ctx, profiles)
		if err != nil {
			serviceutil.Fatal("failed to save repository profiles", err)
		}

		slog.Info(
			"enrichment done",
			"resolved", len(profiles),
			"skipped", len(links)-len(profiles),
			"seconds", time.Since(t1).Seconds(),
		)
	},
}
