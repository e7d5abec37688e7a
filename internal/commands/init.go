package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xinshuoliu/Finance/internal/config"
	"github.com/xinshuoliu/Finance/internal/gitops"
)

func newInitCommand(dataDir *string) *cobra.Command {
	var currency string
	var autoCommit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new finance data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := config.ResolveDataDir(*dataDir)
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, currency, autoCommit)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "CAD", "display currency")
	cmd.Flags().BoolVar(&autoCommit, "auto-commit", false, "git-commit the data dir after every mutation")

	return cmd
}

func runInit(dir, currency string, autoCommit bool) error {
	// Create directory structure.
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write finance.yaml.
	cfg := config.Default()
	cfg.Display.Currency = currency
	cfg.Git.AutoCommit = autoCommit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Raw exports stay out of history; the stores and audit log go in.
	gitignore := "import/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.CommitAll(dir, "init: finance data directory", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Printf("Initialized finance data directory at %s (%s)\n", dir, hash)
	return nil
}
