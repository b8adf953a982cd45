package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/config"
	"tradingai-demo/internal/logging"
	"tradingai-demo/internal/market"
	"tradingai-demo/internal/model"
	"tradingai-demo/internal/scheduler"
	"tradingai-demo/internal/session"
)

// Demo:
// - Mount a session on the real-time scheduler
// - Buy one catalog asset and trigger a trade execution
// - Print the ticker and metrics as snapshots arrive, then unmount
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	duration := flag.Duration("duration", 10*time.Second, "How long to run")
	seed := flag.Int64("seed", 0, "Random seed (0 = seed from clock)")
	symbol := flag.String("buy", "AAPL", "Catalog symbol to buy at start")
	rows := flag.Int("rows", 4, "Ticker rows to print")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logging.Setup(cfg.Logging, false); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	s, err := session.New("demo", cfg.Simulation, scheduler.NewRealtime(), market.NewSource(*seed))
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	s.Mount()
	snaps, cancel := s.Subscribe()
	defer cancel()

	if *symbol != "" {
		if _, err := s.AddAsset(*symbol); err != nil {
			log.Fatalf("Failed to buy %s: %v", *symbol, err)
		}
		if err := s.ExecuteTrade(); err != nil {
			log.Warnf("Trade not executed: %v", err)
		}
	}

	deadline := time.After(*duration)
	lastTick, lastDrift := -1, -1
loop:
	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				break loop
			}
			if snap.Ticks != lastTick {
				lastTick = snap.Ticks
				printTicker(snap, *rows)
			}
			if snap.Drifts != lastDrift {
				lastDrift = snap.Drifts
				m := snap.Metrics
				fmt.Printf("  metrics: return=%.1f%% sharpe=%.2f drawdown=%.1f%% win=%.1f%%\n",
					m.TotalReturn, m.Sharpe, m.MaxDrawdown, m.WinRate)
			}
		case <-deadline:
			break loop
		}
	}

	s.Unmount()
	final := s.Snapshot()
	fmt.Printf("\nfinal: ticks=%d drifts=%d hero=%.2f cash=%s total=%s return=%s%% state=%s\n",
		final.Ticks, final.Drifts, final.HeroPrice,
		final.Account.Cash.StringFixed(2),
		final.Account.TotalValue.StringFixed(2),
		final.Account.TotalReturn.StringFixed(4),
		final.Account.State)
}

func printTicker(snap session.Snapshot, n int) {
	if n > len(snap.Ticker) {
		n = len(snap.Ticker)
	}
	parts := make([]string, 0, n)
	for _, r := range snap.Ticker[:n] {
		arrow := "▲"
		if r.Trend == model.TrendDown {
			arrow = "▼"
		}
		parts = append(parts, fmt.Sprintf("%s %.2f %s", r.Symbol, r.Price, arrow))
	}
	fmt.Printf("tick %3d [%s] %s\n", snap.Ticks, snap.Account.State, strings.Join(parts, " | "))
}
