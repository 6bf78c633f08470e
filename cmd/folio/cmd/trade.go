package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"folio/ledger"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record, revise, retract and list trades",
	Long: `Manage the portfolio's trade history.

Subcommands:
  record   - record a new buy or sell
  revise   - correct a recorded trade's quantity and price
  retract  - remove a trade and reverse its effect
  history  - list trades in applied order

Examples:
  folio trade record --instrument AAPL --side buy --quantity 10 --price 187.41
  folio trade revise 01J9X1B3NM5T0Q8K --quantity 12 --price 186.90
  folio trade retract 01J9X1B3NM5T0Q8K`,
}

var tradeRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a new trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeRecord,
}

var tradeReviseCmd = &cobra.Command{
	Use:   "revise <trade-id>",
	Short: "Correct a recorded trade's quantity and price",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeRevise,
}

var tradeRetractCmd = &cobra.Command{
	Use:   "retract <trade-id>",
	Short: "Remove a trade and reverse its effect",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeRetract,
}

var tradeHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List trades in applied order",
	Args:  cobra.NoArgs,
	RunE:  runTradeHistory,
}

var (
	tradeInstrument string
	tradeSide       string
	tradeQuantity   string
	tradePrice      string
	tradeTime       string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeRecordCmd)
	tradeCmd.AddCommand(tradeReviseCmd)
	tradeCmd.AddCommand(tradeRetractCmd)
	tradeCmd.AddCommand(tradeHistoryCmd)

	tradeRecordCmd.Flags().StringVarP(&tradeInstrument, "instrument", "i", "", "instrument symbol")
	tradeRecordCmd.Flags().StringVarP(&tradeSide, "side", "s", "", "buy or sell")
	tradeRecordCmd.Flags().StringVarP(&tradeQuantity, "quantity", "q", "", "trade size")
	tradeRecordCmd.Flags().StringVarP(&tradePrice, "price", "p", "", "execution price")
	tradeRecordCmd.Flags().StringVar(&tradeTime, "time", "", "execution time, RFC 3339 (default now)")
	_ = tradeRecordCmd.MarkFlagRequired("instrument")
	_ = tradeRecordCmd.MarkFlagRequired("side")
	_ = tradeRecordCmd.MarkFlagRequired("quantity")
	_ = tradeRecordCmd.MarkFlagRequired("price")

	tradeReviseCmd.Flags().StringVarP(&tradeQuantity, "quantity", "q", "", "corrected size")
	tradeReviseCmd.Flags().StringVarP(&tradePrice, "price", "p", "", "corrected price")
	_ = tradeReviseCmd.MarkFlagRequired("quantity")
	_ = tradeReviseCmd.MarkFlagRequired("price")
}

func runTradeRecord(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	side, err := ledger.ParseSide(tradeSide)
	if err != nil {
		return err
	}
	qty, err := decimal.NewFromString(tradeQuantity)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	price, err := decimal.NewFromString(tradePrice)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}

	t := ledger.Trade{
		Instrument: tradeInstrument,
		Quantity:   qty,
		Price:      price,
		Side:       side,
	}
	if tradeTime != "" {
		at, err := time.Parse(time.RFC3339, tradeTime)
		if err != nil {
			return fmt.Errorf("time: %w", err)
		}
		t.ExecutedAt = at
	}

	h, err := a.svc.Record(cmd.Context(), owner, t)
	if err != nil {
		return err
	}
	printHolding(h)
	return nil
}

func runTradeRevise(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	qty, err := decimal.NewFromString(tradeQuantity)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	price, err := decimal.NewFromString(tradePrice)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}

	h, err := a.svc.Revise(cmd.Context(), owner, args[0], qty, price)
	if err != nil {
		return err
	}
	printHolding(h)
	return nil
}

func runTradeRetract(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	h, err := a.svc.Retract(cmd.Context(), owner, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("retracted %s\n", args[0])
	printHolding(h)
	return nil
}

func runTradeHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	trades, err := a.svc.History(cmd.Context(), owner)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRADE\tINSTRUMENT\tSIDE\tQUANTITY\tPRICE\tEXECUTED")
	for _, t := range trades {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Instrument, t.Side, t.Quantity, t.Price,
			t.ExecutedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func printHolding(h ledger.Holding) {
	if h.Quantity.IsZero() {
		fmt.Printf("%s: position closed\n", h.Instrument)
		return
	}
	fmt.Printf("%s: %s @ avg cost %s\n", h.Instrument, h.Quantity, h.AverageCost)
}
