package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xinshuoliu/Finance/internal/auditlog"
	"github.com/xinshuoliu/Finance/internal/budget"
	"github.com/xinshuoliu/Finance/internal/model"
)

func newBudgetCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage per-category spend caps",
	}

	cmd.AddCommand(newBudgetSetCommand(dataDir))
	cmd.AddCommand(newBudgetClearCommand(dataDir))
	cmd.AddCommand(newBudgetStatusCommand(dataDir))

	return cmd
}

func newBudgetSetCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set a category's spend cap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[1], err)
			}

			applied, err := w.budgets.Set(args[0], amount)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println("Not applied (budget must be >= 0)")
				return nil
			}

			if err := w.recordMutation(auditlog.ActionBudgetSet, args[0], amount.StringFixed(2)); err != nil {
				return err
			}
			fmt.Printf("Budget saved for %s: %s %s\n", args[0], amount.StringFixed(2), w.cfg.Display.Currency)
			return nil
		},
	}
}

func newBudgetClearCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <category>",
		Short: "Remove a category's spend cap (back to unset, not zero)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			applied, err := w.budgets.Clear(args[0])
			if err != nil {
				return err
			}
			if !applied {
				fmt.Printf("No budget set for %s\n", args[0])
				return nil
			}

			if err := w.recordMutation(auditlog.ActionBudgetCleared, args[0], ""); err != nil {
				return err
			}
			fmt.Printf("Budget cleared for %s\n", args[0])
			return nil
		},
	}
}

func newBudgetStatusCommand(dataDir *string) *cobra.Command {
	var format string
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "status [file.csv]",
		Short: "Show spent vs budget per category over the filtered window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			var txns []model.Transaction
			var err error
			if len(args) > 0 {
				txns, err = w.loadFile(args[0], format, &flags)
			} else {
				txns, _, err = w.loadImportDir(format, &flags)
			}
			if err != nil {
				return err
			}

			// Budget accounting runs over debits only.
			lines := budget.Report(txns, w.budgets)
			printBudgetLines(lines, w.cfg.Display.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "bank", "export format")
	flags.register(cmd)

	return cmd
}

func printBudgetLines(lines []budget.Line, currency string) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSPENT\tBUDGET\tSTATUS")
	for _, l := range lines {
		if !l.HasBudget || !l.Budget.IsPositive() {
			fmt.Fprintf(tw, "%s\t%s %s\t-\tno budget set\n", l.Category, l.Spent.StringFixed(2), currency)
			continue
		}
		if l.Over {
			fmt.Fprintf(tw, "%s\t%s %s\t%s %s\tover by %s %s\n",
				l.Category, l.Spent.StringFixed(2), currency, l.Budget.StringFixed(2), currency,
				l.Overage.StringFixed(2), currency)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s %s\t%s %s remaining (%s%% used)\n",
			l.Category, l.Spent.StringFixed(2), currency, l.Budget.StringFixed(2), currency,
			l.Remaining.StringFixed(2), currency, l.PercentUsed.StringFixed(0))
	}
	tw.Flush()
}
