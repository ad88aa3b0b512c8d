package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"lauzhack-dataset/lib/serviceutil"
	"lauzhack-dataset/lib/sqliteutil"
	"lauzhack-dataset/services/dataset"
	"lauzhack-dataset/services/dataset/db"

	"github.com/spf13/cobra"
)

var exportDb *string
var exportDir *string

func init() {
	exportDb = exportCmd.Flags().String("db", "", "The database to export from (overrides config).")
	exportDir = exportCmd.Flags().String("out", "data", "The directory to write csv/json files to.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--db <path/to/dataset.db>] [--out <dir>]",
	Short: "Exports the dataset as csv and json files.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		dbpath := cfg.Database
		if *exportDb != "" {
			dbpath = *exportDb
		}

		ctx := cmd.Context()

		out, err := sqliteutil.OpenDB(db.Schema, dbpath)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()
		store := dataset.NewStore(out)

		records, err := store.Projects(ctx)
		if err != nil {
			serviceutil.Fatal("failed to read projects", err)
		}
		events, err := store.Events(ctx)
		if err != nil {
			serviceutil.Fatal("failed to read events", err)
		}
		profiles, err := store.Profiles(ctx)
		if err != nil {
			serviceutil.Fatal("failed to read repository profiles", err)
		}

		err = os.MkdirAll(*exportDir, 0o755)
		if err != nil {
			serviceutil.Fatal("failed to create output directory", err)
		}

		write := func(name string, fn func(f *os.File) error) {
			path := filepath.Join(*exportDir, name)
			f, err := os.Create(path)
			if err != nil {
				serviceutil.Fatal("failed to create output file", err)
			}
			defer f.Close()
			if err := fn(f); err != nil {
				serviceutil.Fatal("failed to write output file", err)
			}
			slog.Info("wrote", "path", path)
		}

		write("lauzhack_projects.csv", func(f *os.File) error {
			return dataset.WriteProjectsCSV(f, records)
		})
		write("lauzhack_projects.json", func(f *os.File) error {
			return dataset.WriteJSON(f, records)
		})
		write("lauzhack_hackathons.csv", func(f *os.File) error {
			return dataset.WriteEventsCSV(f, events)
		})
		write("lauzhack_hackathons.json", func(f *os.File) error {
			return dataset.WriteJSON(f, events)
		})
		write("github_repos_data.json", func(f *os.File) error {
			return dataset.WriteJSON(f, profiles)
		})
		write("lauzhack_projects_with_github.csv", func(f *os.File) error {
			return dataset.WriteEnrichedCSV(f, records, profiles)
		})
		write("lauzhack_full_dataset.json", func(f *os.File) error {
			return dataset.WriteJSON(f, dataset.MergeByYear(records, events))
		})
	},
}
