package simulator

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tradingai-demo/internal/model"
)

var (
	ErrEmptyPortfolio    = errors.New("portfolio is empty")
	ErrExecutionInFlight = errors.New("trade execution already in progress")
	ErrRiskOutOfRange    = errors.New("risk tolerance must be within [0, 100]")
)

var hundred = decimal.NewFromInt(100)

// Options are the fixed constants of a paper-trading account.
type Options struct {
	InitialBalance decimal.Decimal
	LotSize        int64 // units bought per holding
	RiskTolerance  int   // starting slider value, 0..100
	Now            func() time.Time
}

func DefaultOptions() Options {
	return Options{
		InitialBalance: decimal.NewFromInt(100000),
		LotSize:        10,
		RiskTolerance:  50,
		Now:            time.Now,
	}
}

func (o Options) Validate() error {
	if !o.InitialBalance.IsPositive() {
		return errors.New("InitialBalance must be > 0")
	}
	if o.LotSize <= 0 {
		return errors.New("LotSize must be > 0")
	}
	if o.RiskTolerance < 0 || o.RiskTolerance > 100 {
		return ErrRiskOutOfRange
	}
	return nil
}

// Account is the state of the paper-trading simulator: cash, an ordered set of
// holdings keyed by symbol, and the trade-execution flag.
//
// Entry debits Price*LotSize; exit credits Price*LotSize*(1+ChangePercent/100).
// The static ChangePercent stands in for P&L; there is no live repricing.
//
// Account is not safe for concurrent use.
type Account struct {
	opts      Options
	cash      decimal.Decimal
	holdings  []model.Asset
	risk      int
	executing bool
	ledger    []LedgerEntry
}

func NewAccount(opts Options) (*Account, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Account{
		opts: opts,
		cash: opts.InitialBalance,
		risk: opts.RiskTolerance,
	}, nil
}

func (a *Account) lot() decimal.Decimal {
	return decimal.NewFromInt(a.opts.LotSize)
}

// EntryCost is what AddAsset debits for one holding of asset.
func (a *Account) EntryCost(asset model.Asset) decimal.Decimal {
	return asset.Price.Mul(a.lot())
}

// ExitValue is what RemoveAsset credits for one holding of asset.
func (a *Account) ExitValue(asset model.Asset) decimal.Decimal {
	return a.EntryCost(asset).Mul(asset.ExitFactor())
}

// AddAsset buys one lot of asset. It is a no-op returning false when the symbol is already held.
func (a *Account) AddAsset(asset model.Asset) bool {
	if a.Holds(asset.Symbol) {
		return false
	}
	cost := a.EntryCost(asset)
	a.holdings = append(a.holdings, asset)
	a.cash = a.cash.Sub(cost)
	a.record(model.ActionBuy, asset, cost)
	return true
}

// RemoveAsset sells the holding for symbol. It is a no-op returning false when nothing is held.
func (a *Account) RemoveAsset(symbol string) bool {
	idx := a.indexOf(symbol)
	if idx < 0 {
		return false
	}
	asset := a.holdings[idx]
	proceeds := a.ExitValue(asset)

	holdings := make([]model.Asset, 0, len(a.holdings)-1)
	holdings = append(holdings, a.holdings[:idx]...)
	holdings = append(holdings, a.holdings[idx+1:]...)
	a.holdings = holdings
	a.cash = a.cash.Add(proceeds)
	a.record(model.ActionSell, asset, proceeds)
	return true
}

func (a *Account) Holds(symbol string) bool {
	return a.indexOf(symbol) >= 0
}

func (a *Account) indexOf(symbol string) int {
	for i, h := range a.holdings {
		if h.Symbol == symbol {
			return i
		}
	}
	return -1
}

// PortfolioValue sums the exit value of every holding.
func (a *Account) PortfolioValue() decimal.Decimal {
	total := decimal.Zero
	for _, h := range a.holdings {
		total = total.Add(a.ExitValue(h))
	}
	return total
}

func (a *Account) TotalValue() decimal.Decimal {
	return a.cash.Add(a.PortfolioValue())
}

// TotalReturn is the percent gain of TotalValue over the initial balance.
func (a *Account) TotalReturn() decimal.Decimal {
	initial := a.opts.InitialBalance
	return a.TotalValue().Sub(initial).Div(initial).Mul(hundred)
}

func (a *Account) Cash() decimal.Decimal { return a.cash }

func (a *Account) InitialBalance() decimal.Decimal { return a.opts.InitialBalance }

func (a *Account) LotSize() int64 { return a.opts.LotSize }

// Holdings returns the held assets in insertion order.
func (a *Account) Holdings() []model.Asset {
	out := make([]model.Asset, len(a.holdings))
	copy(out, a.holdings)
	return out
}

func (a *Account) RiskTolerance() int { return a.risk }

// SetRiskTolerance stores the slider value. It has no effect on valuation.
func (a *Account) SetRiskTolerance(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: got %d", ErrRiskOutOfRange, v)
	}
	a.risk = v
	return nil
}

func (a *Account) Executing() bool { return a.executing }

func (a *Account) State() model.ExecutionState {
	return model.ExecutionStateFrom(a.executing)
}

// BeginExecution moves Idle -> Executing. It requires a non-empty portfolio
// and no execution already in flight. Cash and holdings are untouched.
func (a *Account) BeginExecution() error {
	if a.executing {
		return ErrExecutionInFlight
	}
	if len(a.holdings) == 0 {
		return ErrEmptyPortfolio
	}
	a.executing = true
	return nil
}

// CompleteExecution moves Executing -> Idle.
func (a *Account) CompleteExecution() {
	a.executing = false
}

// View is a read-only copy of the account for presentation.
type View struct {
	Cash           decimal.Decimal      `json:"cash"`
	InitialBalance decimal.Decimal      `json:"initial_balance"`
	Holdings       []model.Asset        `json:"holdings"`
	LotSize        int64                `json:"lot_size"`
	PortfolioValue decimal.Decimal      `json:"portfolio_value"`
	TotalValue     decimal.Decimal      `json:"total_value"`
	TotalReturn    decimal.Decimal      `json:"total_return"`
	RiskTolerance  int                  `json:"risk_tolerance"`
	Executing      bool                 `json:"executing"`
	State          model.ExecutionState `json:"state"`
}

func (a *Account) View() View {
	return View{
		Cash:           a.cash,
		InitialBalance: a.opts.InitialBalance,
		Holdings:       a.Holdings(),
		LotSize:        a.opts.LotSize,
		PortfolioValue: a.PortfolioValue(),
		TotalValue:     a.TotalValue(),
		TotalReturn:    a.TotalReturn(),
		RiskTolerance:  a.risk,
		Executing:      a.executing,
		State:          a.State(),
	}
}
