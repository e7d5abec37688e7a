package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/xinshuoliu/Finance/internal/recurring"
)

// FileName is the config file at the root of the data directory.
const FileName = "finance.yaml"

// EnvDataDir overrides the data directory location.
const EnvDataDir = "FINANCE_DIR"

// Config represents the top-level finance.yaml configuration.
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Candidates CandidatesConfig `yaml:"candidates"`
	Git        GitConfig        `yaml:"git"`
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Currency string `yaml:"currency"`
}

// CandidatesConfig tunes unsupervised recurring-merchant detection.
type CandidatesConfig struct {
	MinMonths  int `yaml:"min_months"`
	MaxResults int `yaml:"max_results"`
}

// GitConfig controls git snapshots of the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a finance.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data dir.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Currency: "CAD",
		},
		Candidates: CandidatesConfig{
			MinMonths:  recurring.DefaultMinMonths,
			MaxResults: recurring.MaxCandidates,
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Finance",
			AuthorEmail: "finance@localhost",
		},
	}
}

// ResolveDataDir picks the data directory: an explicit flag wins, then the
// FINANCE_DIR environment variable (a .env file in the working directory
// is honored), then the current directory.
func ResolveDataDir(flagDir string) string {
	if flagDir != "" {
		return flagDir
	}

	// Best effort: a missing .env is the normal case.
	_ = godotenv.Load()

	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	return "."
}
