package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"folio/ledger"
)

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Show current aggregate positions",
	Args:  cobra.NoArgs,
	RunE:  runHoldings,
}

func init() {
	rootCmd.AddCommand(holdingsCmd)
}

func runHoldings(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	holdings, err := a.svc.Holdings(cmd.Context(), owner)
	if err != nil {
		if errors.Is(err, ledger.ErrNoPortfolio) {
			fmt.Printf("no portfolio for owner %q\n", owner)
			return nil
		}
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INSTRUMENT\tQUANTITY\tAVG COST")
	for _, h := range holdings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", h.Instrument, h.Quantity, h.AverageCost)
	}
	return w.Flush()
}
