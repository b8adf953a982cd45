package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradingai-demo/internal/config"
	"tradingai-demo/internal/content"
	"tradingai-demo/internal/market"
	"tradingai-demo/internal/scheduler"
	"tradingai-demo/internal/session"
	"tradingai-demo/internal/simulator"
)

var rootCmd = &cobra.Command{
	Use:   "cli",
	Short: "Offline tools for the TradingAI demo engine",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a demo session on a virtual clock and print its final state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		ticks, _ := cmd.Flags().GetInt("ticks")
		seed, _ := cmd.Flags().GetInt64("seed")
		buy, _ := cmd.Flags().GetStringSlice("buy")
		sell, _ := cmd.Flags().GetBool("sell")
		out, _ := cmd.Flags().GetString("out")

		if ticks < 0 {
			return fmt.Errorf("--ticks must be >= 0")
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		res, err := simulate(cfg.Simulation, simulateArgs{Ticks: ticks, Seed: seed, Buy: buy, Sell: sell})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Ticker after %d ticks (%s virtual):\n", res.Snapshot.Ticks, res.Elapsed)
		renderTicker(w, res.Snapshot.Ticker)
		fmt.Fprintf(w, "\nPerformance metrics after %d drifts:\n", res.Snapshot.Drifts)
		renderMetrics(w, res.Snapshot.Metrics)
		fmt.Fprintln(w, "\nAccount:")
		renderAccount(w, res.Snapshot.Account)
		if len(res.Ledger) > 0 {
			fmt.Fprintln(w, "\nLedger:")
			renderLedger(w, res.Ledger)
		}

		if out != "" {
			if err := simulator.WriteLedgerCSVFile(out, res.Ledger); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nwrote ledger: %s\n", out)
		}
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the simulator asset catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		renderCatalog(cmd.OutOrStdout(), cfg.Simulation.ModelCatalog())
		return nil
	},
}

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Print dashboard signals ranked by confidence",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		renderSignals(cmd.OutOrStdout(), content.RankSignals(content.Signals(), limit))
		return nil
	},
}

type simulateArgs struct {
	Ticks int
	Seed  int64
	Buy   []string
	Sell  bool
}

type simulateResult struct {
	Snapshot session.Snapshot
	Ledger   []simulator.LedgerEntry
	Elapsed  time.Duration
}

// simulate buys the requested assets, advances the virtual clock by the
// requested number of ticker intervals and optionally sells everything.
func simulate(cfg config.SimulationConfig, args simulateArgs) (*simulateResult, error) {
	sched := scheduler.NewManual()
	s, err := session.New("cli", cfg, sched, market.NewSource(args.Seed))
	if err != nil {
		return nil, err
	}
	s.Mount()
	defer s.Unmount()

	for _, sym := range args.Buy {
		if _, err := s.AddAsset(sym); err != nil {
			return nil, err
		}
	}
	sched.Advance(time.Duration(args.Ticks) * cfg.TickInterval)
	if args.Sell {
		for _, sym := range args.Buy {
			if _, err := s.RemoveAsset(sym); err != nil {
				return nil, err
			}
		}
	}
	return &simulateResult{Snapshot: s.Snapshot(), Ledger: s.Ledger(), Elapsed: sched.Now()}, nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (optional)")

	simulateCmd.Flags().Int("ticks", 10, "Number of ticker intervals to advance")
	simulateCmd.Flags().Int64("seed", 1, "Random seed (0 = seed from clock)")
	simulateCmd.Flags().StringSlice("buy", []string{"AAPL"}, "Catalog symbols to buy before advancing")
	simulateCmd.Flags().Bool("sell", true, "Sell the bought symbols after advancing")
	simulateCmd.Flags().String("out", "", "Optional path to write the ledger CSV")

	signalsCmd.Flags().Int("limit", 0, "Show only the top N signals (0 = all)")

	rootCmd.AddCommand(simulateCmd, catalogCmd, signalsCmd)
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
