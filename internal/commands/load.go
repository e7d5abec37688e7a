package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xinshuoliu/Finance/internal/classify"
	"github.com/xinshuoliu/Finance/internal/importer"
	"github.com/xinshuoliu/Finance/internal/model"
)

func newLoadCommand(dataDir *string) *cobra.Command {
	var format string
	var markProcessed bool
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "load [file.csv]",
		Short: "Parse, classify, and summarize a bank export",
		Long: "Parse a bank CSV export, classify every transaction against the " +
			"category store, and print the transactions plus per-category spend " +
			"totals. Without a file argument, every CSV in <dir>/import/ is loaded.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := openWorkspace(*dataDir)

			var txns []model.Transaction
			var files []importer.FileInfo
			var err error

			if len(args) > 0 {
				txns, err = w.loadFile(args[0], format, &flags)
			} else {
				txns, files, err = w.loadImportDir(format, &flags)
			}
			if err != nil {
				return err
			}

			printTransactions(txns, w.cfg.Display.Currency)
			printSummary(txns, w.cfg.Display.Currency)

			if markProcessed {
				for _, fi := range files {
					if err := importer.MarkProcessed(w.dir, fi.Name); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "bank", "export format")
	cmd.Flags().BoolVar(&markProcessed, "mark-processed", false, "move loaded files to import/processed/")
	flags.register(cmd)

	return cmd
}

func printTransactions(txns []model.Transaction, currency string) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDETAILS\tAMOUNT\tDIRECTION\tCATEGORY")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n",
			t.Date.Format("2006-01-02"), t.Details, t.Amount.StringFixed(2), currency, t.Direction, t.Category)
	}
	tw.Flush()
	fmt.Printf("%d transaction(s)\n\n", len(txns))
}

func printSummary(txns []model.Transaction, currency string) {
	totals := classify.Summary(txns)
	if len(totals) > 0 {
		fmt.Println("Expense summary:")
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tAMOUNT")
		for _, row := range totals {
			fmt.Fprintf(tw, "%s\t%s %s\n", row.Category, row.Amount.StringFixed(2), currency)
		}
		tw.Flush()
	}

	payments := classify.TotalPayments(txns)
	if !payments.IsZero() {
		fmt.Printf("Total payments: %s %s\n", payments.StringFixed(2), currency)
	}
}
