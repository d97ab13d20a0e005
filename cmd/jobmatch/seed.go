package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/ingestion"
)

var seedCSVPath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a job corpus CSV into the database",
	Long:  `Read a job corpus CSV file and upsert every row into the jobs table, keyed by job_id.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedCSVPath, "csv", "data/jobs_sample.csv", "Path to the job corpus CSV")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	records, err := ingestion.LoadJobsCSV(seedCSVPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.InitSchema(ctx); err != nil {
		return err
	}

	count, err := database.CreateJobs(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to seed jobs: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d jobs from %s\n", count, seedCSVPath)
	return nil
}
