package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xinshuoliu/Finance/internal/auditlog"
	"github.com/xinshuoliu/Finance/internal/filter"
	"github.com/xinshuoliu/Finance/internal/model"
	"github.com/xinshuoliu/Finance/internal/recurring"
)

func newRecurringCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Track and detect recurring charges",
	}

	cmd.AddCommand(newRecurringListCommand(dataDir))
	cmd.AddCommand(newRecurringAddCommand(dataDir))
	cmd.AddCommand(newRecurringRemoveCommand(dataDir))
	cmd.AddCommand(newRecurringDetectCommand(dataDir))
	cmd.AddCommand(newRecurringCandidatesCommand(dataDir))

	return cmd
}

func newRecurringListCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the recurring keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)
			for _, word := range w.keywords.All() {
				fmt.Println(word)
			}
			return nil
		},
	}
}

func newRecurringAddCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <keyword>",
		Short: "Declare a keyword that flags recurring debits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			applied, err := w.keywords.Add(args[0])
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println("Not applied (empty or already present)")
				return nil
			}

			if err := w.recordMutation(auditlog.ActionRecurringAdded, "", args[0]); err != nil {
				return err
			}
			fmt.Printf("Added recurring keyword %q\n", args[0])
			return nil
		},
	}
}

func newRecurringRemoveCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <keyword>",
		Short: "Remove a recurring keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			applied, err := w.keywords.Remove(args[0])
			if err != nil {
				return err
			}
			if !applied {
				fmt.Printf("Keyword %q not present\n", args[0])
				return nil
			}

			if err := w.recordMutation(auditlog.ActionRecurringRemove, "", args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed recurring keyword %q\n", args[0])
			return nil
		},
	}
}

func newRecurringDetectCommand(dataDir *string) *cobra.Command {
	var format string
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "detect [file.csv]",
		Short: "Show debits matching the recurring keywords, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			txns, err := loadForRecurring(w, args, format, &flags)
			if err != nil {
				return err
			}

			matches := recurring.Match(txns, w.keywords.All())
			printTransactions(matches, w.cfg.Display.Currency)

			printMerchantSummaries(recurring.Summarize(matches), w.cfg.Display.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "bank", "export format")
	flags.register(cmd)

	return cmd
}

func newRecurringCandidatesCommand(dataDir *string) *cobra.Command {
	var format string
	var minMonths int
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "candidates [file.csv]",
		Short: "Detect merchants recurring across distinct calendar months",
		Long: "Group debits by merchant and surface those appearing in at least " +
			"--min-months distinct calendar months. Candidates are suggestions " +
			"only; promote one with `finance recurring add`.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			txns, err := loadForRecurring(w, args, format, &flags)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("min-months") {
				minMonths = w.cfg.Candidates.MinMonths
			}

			candidates := recurring.Candidates(txns, minMonths)
			printCandidates(candidates, w.cfg.Display.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "bank", "export format")
	cmd.Flags().IntVar(&minMonths, "min-months", recurring.DefaultMinMonths,
		fmt.Sprintf("distinct-month threshold (%d-%d)", recurring.MinMonthsFloor, recurring.MinMonthsCeil))
	flags.register(cmd)

	return cmd
}

// loadForRecurring loads the window recurrence analysis runs over. Unless
// the user picked a direction explicitly, that window is debits only.
func loadForRecurring(w *workspace, args []string, format string, flags *filterFlags) ([]model.Transaction, error) {
	var txns []model.Transaction
	var err error
	if len(args) > 0 {
		txns, err = w.loadFile(args[0], format, flags)
	} else {
		txns, _, err = w.loadImportDir(format, flags)
	}
	if err != nil {
		return nil, err
	}

	if flags.direction == "" {
		txns = filter.Debits(txns)
	}
	return txns, nil
}

func printMerchantSummaries(summaries []recurring.MerchantSummary, currency string) {
	if len(summaries) == 0 {
		return
	}
	fmt.Println("Per-merchant summary:")
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MERCHANT\tOCCURRENCES\tTOTAL\tAVERAGE\tMONTHLY ESTIMATE")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s %s\t%s %s\t%s %s\n",
			s.Merchant, s.Occurrences,
			s.Total.StringFixed(2), currency,
			s.Average.StringFixed(2), currency,
			s.MonthlyEstimate.StringFixed(2), currency)
	}
	tw.Flush()
}

func printCandidates(candidates []recurring.Candidate, currency string) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MERCHANT\tMONTHS\tOCCURRENCES\tTOTAL\tAVERAGE")
	for _, c := range candidates {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s %s\t%s %s\n",
			c.Merchant, c.Months, c.Occurrences,
			c.Total.StringFixed(2), currency,
			c.Average.StringFixed(2), currency)
	}
	tw.Flush()
	fmt.Printf("%d candidate(s)\n", len(candidates))
}
