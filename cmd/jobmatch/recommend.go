package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobmatch/internal/extract"
	"github.com/jonathan/jobmatch/internal/ingestion"
	"github.com/jonathan/jobmatch/internal/observability"
	"github.com/jonathan/jobmatch/internal/recommender"
	"github.com/jonathan/jobmatch/internal/skills"
)

var (
	recommendCSVPath    string
	recommendSkillsPath string
	recommendResumePath string
	recommendTopK       int
	recommendWTFIDF     float64
	recommendWSkills    float64
	recommendJSON       bool
	recommendVerbose    bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank a job corpus CSV against a resume file, offline",
	Long:  `Load a job corpus from CSV, extract text from a resume file (PDF, DOCX or plain text) and print the top matches without needing a database or server.`,
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendCSVPath, "csv", "data/jobs_sample.csv", "Path to the job corpus CSV")
	recommendCmd.Flags().StringVar(&recommendSkillsPath, "skills", "", "Path to the skill master list, one phrase per line")
	recommendCmd.Flags().StringVarP(&recommendResumePath, "resume", "r", "", "Path to the resume file (required)")
	recommendCmd.Flags().IntVarP(&recommendTopK, "top-k", "k", recommender.DefaultTopK, "Number of matches to return")
	recommendCmd.Flags().Float64Var(&recommendWTFIDF, "weight-tfidf", recommender.DefaultWeightTFIDF, "Lexical similarity weight")
	recommendCmd.Flags().Float64Var(&recommendWSkills, "weight-skills", recommender.DefaultWeightSkills, "Skills overlap weight")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Emit results as JSON")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print corpus details")

	recommendCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if recommendTopK <= 0 {
		return fmt.Errorf("--top-k must be positive")
	}
	if recommendWTFIDF < 0 || recommendWSkills < 0 {
		return fmt.Errorf("weights must be non-negative")
	}

	jobs, err := ingestion.LoadJobsCSV(recommendCSVPath)
	if err != nil {
		return err
	}

	skillMaster, err := skills.LoadList(recommendSkillsPath)
	if err != nil {
		return fmt.Errorf("failed to load skill master list: %w", err)
	}

	resumeText, err := extract.FromFile(recommendResumePath)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	engine, err := recommender.NewEngine(jobs, skillMaster, recommender.DefaultVectorizerConfig())
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if recommendVerbose {
		printer.PrintCorpusSummary(jobs, engine.VocabularySize())
	}

	ranked := engine.Recommend(resumeText, recommendTopK, recommendWTFIDF, recommendWSkills)

	if recommendJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	printer.PrintRanking(ranked)
	return nil
}
