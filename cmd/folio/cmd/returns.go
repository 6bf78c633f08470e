package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var returnsCmd = &cobra.Command{
	Use:   "returns",
	Short: "Mark holdings to market and report cumulative return",
	Args:  cobra.NoArgs,
	RunE:  runReturns,
}

func init() {
	rootCmd.AddCommand(returnsCmd)
}

func runReturns(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	v, err := a.svc.CumulativeReturn(cmd.Context(), owner)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INSTRUMENT\tQUANTITY\tAVG COST\tMARK\tVALUE")
	for _, p := range v.Positions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Instrument, p.Quantity, p.AverageCost, p.Mark, p.MarketValue)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	pct := v.Return.Mul(decimal.NewFromInt(100)).Round(2)
	fmt.Printf("\ninvested %s, market value %s, return %s%%\n",
		v.Invested, v.MarketValue, pct)
	return nil
}
