package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xinshuoliu/Finance/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:     "finance",
		Short:   "Categorize, budget, and spot recurring charges in bank CSV exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "data directory (default $FINANCE_DIR or .)")

	rootCmd.AddCommand(newInitCommand(&dataDir))
	rootCmd.AddCommand(newLoadCommand(&dataDir))
	rootCmd.AddCommand(newCategoryCommand(&dataDir))
	rootCmd.AddCommand(newBudgetCommand(&dataDir))
	rootCmd.AddCommand(newRecurringCommand(&dataDir))

	return rootCmd
}
