package cmd

import (
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"folio/config"
	"folio/journal"
	"folio/ledger"
	"folio/market"
)

var (
	cfgFile string
	owner   string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "A stock-portfolio position ledger",
	Long: `Folio tracks a stock portfolio as a ledger of buy/sell trades.

It maintains, per instrument, the net quantity held and its volume-weighted
average cost, and keeps those aggregates consistent with the full trade
history across recording, in-place revision and retraction of trades.

Commands:
  trade     - record, revise, retract and list trades
  holdings  - show current aggregate positions
  returns   - mark holdings to market and report cumulative return`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./folio.yaml when present)")
	rootCmd.PersistentFlags().StringVarP(&owner, "owner", "o", "default", "portfolio owner key")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if _, err := os.Stat("./folio.yaml"); err == nil {
		return config.LoadFromFile("./folio.yaml")
	}
	return config.Default(), nil
}

// app wires the ledger service to the configured stores and quote feed.
type app struct {
	svc   *ledger.Service
	close func() error
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var (
		trades     ledger.TradeStore
		portfolios ledger.PortfolioStore
		closer     = func() error { return nil }
	)
	if cfg.Database.Path == "" {
		mem := journal.NewMemory()
		trades, portfolios = mem, mem
	} else {
		db, err := journal.NewSQLite(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		trades, portfolios = db, db
		closer = db.Close
	}

	var feed market.QuoteFeed
	switch cfg.Quotes.Type {
	case "http":
		feed = market.NewClient(cfg.Quotes.BaseURL, os.Getenv(cfg.Quotes.TokenEnv))
	default:
		prices := make(map[string]decimal.Decimal, len(cfg.Quotes.Prices))
		for sym, p := range cfg.Quotes.Prices {
			prices[sym] = decimal.NewFromFloat(p)
		}
		feed = market.NewStatic(prices)
	}

	return &app{
		svc:   ledger.NewService(trades, portfolios, feed),
		close: closer,
	}, nil
}
