package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/config"
	"tradingai-demo/internal/market"
	"tradingai-demo/internal/model"
	"tradingai-demo/internal/monitoring"
	"tradingai-demo/internal/performance"
	"tradingai-demo/internal/scheduler"
	"tradingai-demo/internal/simulator"
	"tradingai-demo/internal/ticker"
)

var (
	ErrUnknownAsset = errors.New("unknown asset")
	ErrNotMounted   = errors.New("session is not mounted")
)

const subscriberBuffer = 16

// Session is one visitor's demo: the hero ticker and headline price, the
// dashboard metrics and the paper-trading account, plus the timers that
// animate them.
//
// All state is guarded by mu, so timer callbacks and API calls never overlap.
type Session struct {
	id    string
	cfg   config.SimulationConfig
	sched scheduler.Scheduler
	now   func() time.Time

	mu        sync.Mutex
	gen       *market.Generator
	catalog   model.Catalog
	board     *ticker.Board
	drifter   *performance.Drifter
	hero      *performance.Walk
	account   *simulator.Account
	mounted   bool
	jobs      []scheduler.Job
	execJob   scheduler.Job
	subs      map[int]chan Snapshot
	subSeq    int
	createdAt time.Time
	updatedAt time.Time
}

// New seeds a session from cfg. A nil src uses a math/rand source seeded from cfg.Seed.
func New(id string, cfg config.SimulationConfig, sched scheduler.Scheduler, src market.Source) (*Session, error) {
	if sched == nil {
		return nil, errors.New("scheduler is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = market.NewSource(cfg.Seed)
	}
	gen := market.NewGenerator(src, cfg.Symbols)

	board, err := ticker.New(gen, cfg.TickerOptions())
	if err != nil {
		return nil, fmt.Errorf("ticker: %w", err)
	}
	account, err := simulator.NewAccount(cfg.AccountOptions())
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	hero, err := performance.NewWalk(cfg.HeroStartPrice, cfg.HeroStepWidth)
	if err != nil {
		return nil, fmt.Errorf("hero: %w", err)
	}

	now := time.Now()
	return &Session{
		id:        id,
		cfg:       cfg,
		sched:     sched,
		now:       time.Now,
		gen:       gen,
		catalog:   cfg.ModelCatalog(),
		board:     board,
		drifter:   performance.NewDrifter(cfg.InitialMetrics, cfg.DriftWidths),
		hero:      hero,
		account:   account,
		subs:      map[int]chan Snapshot{},
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Catalog() model.Catalog {
	out := make(model.Catalog, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Mount starts the ticker, hero price and metrics timers. It is idempotent.
// A trade left executing by Unmount gets a fresh completion timer.
func (s *Session) Mount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return
	}
	s.mounted = true
	s.jobs = []scheduler.Job{
		s.sched.Every(s.cfg.TickInterval, s.tick),
		s.sched.Every(s.cfg.HeroInterval, s.heroStep),
		s.sched.Every(s.cfg.DriftInterval, s.drift),
	}
	if s.account.Executing() {
		s.execJob = s.sched.After(s.cfg.ExecutionDelay, s.completeExecution)
	}
	monitoring.SessionsActive.Inc()
	log.WithField("session", s.id).Debug("session mounted")
}

// Unmount cancels every timer, including a pending trade completion, and
// closes all subscriber channels. No state changes after it returns.
func (s *Session) Unmount() {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = false
	jobs := s.jobs
	if s.execJob != nil {
		jobs = append(jobs, s.execJob)
	}
	s.jobs = nil
	s.execJob = nil
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.mu.Unlock()

	// Stop outside the lock: an in-flight callback may be waiting on mu.
	for _, j := range jobs {
		j.Stop()
	}
	monitoring.SessionsActive.Dec()
	log.WithField("session", s.id).Debug("session unmounted")
}

func (s *Session) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return
	}
	s.board = s.board.Tick(s.gen)
	monitoring.TickerTicks.Inc()
	s.publishLocked()
}

func (s *Session) heroStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return
	}
	s.hero.Step(s.gen)
	monitoring.HeroSteps.Inc()
	s.publishLocked()
}

func (s *Session) drift() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return
	}
	s.drifter.Drift(s.gen)
	monitoring.MetricsDrifts.Inc()
	s.publishLocked()
}

// AddAsset buys one lot of the catalog asset. Adding a held symbol is a no-op
// and reports false.
func (s *Session) AddAsset(symbol string) (bool, error) {
	asset, ok := s.catalog.Lookup(symbol)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownAsset, symbol)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.account.AddAsset(asset)
	if changed {
		monitoring.PortfolioChanges.WithLabelValues(string(model.ActionBuy)).Inc()
		log.WithFields(log.Fields{"session": s.id, "symbol": asset.Symbol}).Debug("asset added")
		s.publishLocked()
	}
	return changed, nil
}

// RemoveAsset sells the holding for symbol. Removing an unheld symbol is a no-op.
func (s *Session) RemoveAsset(symbol string) (bool, error) {
	asset, ok := s.catalog.Lookup(symbol)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownAsset, symbol)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.account.RemoveAsset(asset.Symbol)
	if changed {
		monitoring.PortfolioChanges.WithLabelValues(string(model.ActionSell)).Inc()
		log.WithFields(log.Fields{"session": s.id, "symbol": asset.Symbol}).Debug("asset removed")
		s.publishLocked()
	}
	return changed, nil
}

// ExecuteTrade flips the account into Executing and schedules the automatic
// return to Idle after the configured delay. Cash and holdings are unchanged.
func (s *Session) ExecuteTrade() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return ErrNotMounted
	}
	if err := s.account.BeginExecution(); err != nil {
		return err
	}
	s.execJob = s.sched.After(s.cfg.ExecutionDelay, s.completeExecution)
	monitoring.TradesExecuted.Inc()
	log.WithField("session", s.id).Debug("trade execution started")
	s.publishLocked()
	return nil
}

func (s *Session) completeExecution() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return
	}
	s.account.CompleteExecution()
	s.execJob = nil
	s.publishLocked()
}

func (s *Session) SetRiskTolerance(v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.account.SetRiskTolerance(v); err != nil {
		return err
	}
	s.publishLocked()
	return nil
}

func (s *Session) Ledger() []simulator.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account.Ledger()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that receives a snapshot after every change.
// Slow subscribers miss snapshots instead of blocking the session. The
// channel is closed by cancel or by Unmount.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Snapshot, subscriberBuffer)
	if !s.mounted {
		close(ch)
		return ch, func() {}
	}
	s.subSeq++
	id := s.subSeq
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
}

func (s *Session) publishLocked() {
	s.updatedAt = s.now()
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
