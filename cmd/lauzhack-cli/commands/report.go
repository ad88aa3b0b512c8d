package commands

import (
	"os"

	"lauzhack-dataset/lib/serviceutil"
	"lauzhack-dataset/lib/sqliteutil"
	"lauzhack-dataset/services/dataset"
	"lauzhack-dataset/services/dataset/db"

	"github.com/spf13/cobra"
)

var reportDb *string

func init() {
	reportDb = reportCmd.Flags().String("db", "", "The database to report on (overrides config).")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [--db <path/to/dataset.db>]",
	Short: "Prints summary statistics for the dataset.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		dbpath := cfg.Database
		if *reportDb != "" {
			dbpath = *reportDb
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
		profiles, err := store.Profiles(ctx)
		if err != nil {
			serviceutil.Fatal("failed to read repository profiles", err)
		}

		dataset.WriteSummary(os.Stdout, records, profiles)
	},
}
