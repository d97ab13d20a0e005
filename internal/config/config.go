// Package config provides configuration loading and validation for the
// job match CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/jobmatch/internal/recommender"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Paths
	JobsCSV    string `json:"jobs_csv,omitempty"`    // Path to the job corpus CSV
	SkillsPath string `json:"skills_path,omitempty"` // Path to the skill master list, one phrase per line

	// Ranking defaults
	WeightTFIDF  float64 `json:"weight_tfidf,omitempty"`  // Lexical similarity weight (default 0.7)
	WeightSkills float64 `json:"weight_skills,omitempty"` // Skills overlap weight (default 0.3)
	TopK         int     `json:"top_k,omitempty"`         // Default number of results (default 10)

	// Services
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisAddr   string `json:"redis_addr,omitempty"`   // Optional Redis address for match caching
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero-valued ranking fields with the engine
// defaults.
func (c *Config) ApplyDefaults() {
	if c.WeightTFIDF == 0 && c.WeightSkills == 0 {
		c.WeightTFIDF = recommender.DefaultWeightTFIDF
		c.WeightSkills = recommender.DefaultWeightSkills
	}
	if c.TopK == 0 {
		c.TopK = recommender.DefaultTopK
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.WeightTFIDF < 0 {
		return fmt.Errorf("config error: 'weight_tfidf' must be non-negative")
	}
	if c.WeightSkills < 0 {
		return fmt.Errorf("config error: 'weight_skills' must be non-negative")
	}
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.JobsCSV != "" {
		if _, err := os.Stat(c.JobsCSV); os.IsNotExist(err) {
			return fmt.Errorf("config error: jobs CSV not found: %s", c.JobsCSV)
		}
	}
	return nil
}
