package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lauzhack-dataset/lib/fetch"
	"lauzhack-dataset/lib/scrapers/event"
	"lauzhack-dataset/lib/scrapers/projects"
	"lauzhack-dataset/lib/serviceutil"
	"lauzhack-dataset/lib/sqliteutil"
	"lauzhack-dataset/services/dataset"
	"lauzhack-dataset/services/dataset/db"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

var scrapeDb *string

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "", "The database to write scrape results to (overrides config).")
	rootCmd.AddCommand(scrapeCmd)
}

func parseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--db <path/to/dataset.db>]",
	Short: "Scrapes project listings and event home pages into the dataset.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		dbpath := cfg.Database
		if *scrapeDb != "" {
			dbpath = *scrapeDb
		}

		ctx := cmd.Context()
		fetcher := fetch.NewClient(fetch.ClientOptions{})

		out, err := sqliteutil.OpenDB(db.Schema, dbpath)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()
		store := dataset.NewStore(out)

		t1 := time.Now()

		var allProjects []projects.Project
		var events []event.Info
		for _, year := range cfg.Years {
			allProjects = append(allProjects, scrapeProjects(ctx, fetcher, cfg, year)...)
			if info, ok := scrapeHome(ctx, fetcher, cfg, year); ok {
				events = append(events, info)
			}
		}
		allProjects = projects.Dedup(allProjects)

		err = store.SaveProjects(ctx, allProjects)
		if err != nil {
			serviceutil.Fatal("failed to save projects", err)
		}
		err = store.SaveEvents(ctx, events)
		if err != nil {
			serviceutil.Fatal("failed to save events", err)
		}

		slog.Info(
			"scraping done",
			"projects", len(allProjects),
			"events", len(events),
			"seconds", time.Since(t1).Seconds(),
		)
	},
}

func scrapeProjects(ctx context.Context, fetcher *fetch.Client, cfg Config, year int) []projects.Project {
	url := fmt.Sprintf(cfg.ProjectsURL, year)
	slog.Info("fetching projects", "year", year, "url", url)

	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Error("failed to fetch projects page", "year", year, "err", err)
		return nil
	}
	doc, err := parseDocument(html)
	if err != nil {
		slog.Error("failed to parse projects page", "year", year, "err", err)
		return nil
	}

	found := projects.ParseProjects(ctx, year, doc)
	slog.Info("found projects", "year", year, "count", len(found))
	return found
}

func scrapeHome(ctx context.Context, fetcher *fetch.Client, cfg Config, year int) (event.Info, bool) {
	url := fmt.Sprintf(cfg.HomeURL, year)
	slog.Info("fetching home page", "year", year, "url", url)

	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Error("failed to fetch home page", "year", year, "err", err)
		return event.Info{}, false
	}
	doc, err := parseDocument(html)
	if err != nil {
		slog.Error("failed to parse home page", "year", year, "err", err)
		return event.Info{}, false
	}

	return event.ParseHomePage(ctx, year, url, doc), true
}
