package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xinshuoliu/Finance/internal/auditlog"
)

func newCategoryCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories and their learned keywords",
	}

	cmd.AddCommand(newCategoryListCommand(dataDir))
	cmd.AddCommand(newCategoryAddCommand(dataDir))
	cmd.AddCommand(newCategoryLearnCommand(dataDir))

	return cmd
}

func newCategoryListCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories in classification order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)
			for _, cat := range w.categories.Categories() {
				if len(cat.Keywords) == 0 {
					fmt.Println(cat.Name)
					continue
				}
				fmt.Printf("%s: %s\n", cat.Name, strings.Join(cat.Keywords, ", "))
			}
			return nil
		},
	}
}

func newCategoryAddCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new empty category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			applied, err := w.categories.Add(args[0])
			if err != nil {
				return err
			}
			if !applied {
				fmt.Printf("Category %q already exists\n", args[0])
				return nil
			}

			if err := w.recordMutation(auditlog.ActionCategoryAdded, args[0], ""); err != nil {
				return err
			}
			fmt.Printf("Added category %q\n", args[0])
			return nil
		},
	}
}

func newCategoryLearnCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "learn <category> <details>",
		Short: "Record a user correction: details text becomes a keyword",
		Long: "Record that a transaction with the given details belongs to the " +
			"given category. The details text is appended to the category's " +
			"keyword set, so future loads classify matching transactions " +
			"automatically. Duplicate keywords are ignored.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)
			category, details := args[0], args[1]

			applied, err := w.categories.Learn(category, details)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println("Not applied (empty or already known)")
				return nil
			}

			if err := w.recordMutation(auditlog.ActionKeywordLearned, category, details); err != nil {
				return err
			}
			fmt.Printf("Learned %q for category %q\n", details, category)
			return nil
		},
	}
}
