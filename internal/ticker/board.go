package ticker

import (
	"errors"

	"github.com/shopspring/decimal"

	"tradingai-demo/internal/market"
	"tradingai-demo/internal/model"
)

// Options sizes the board and its random walk.
type Options struct {
	Rows      int     // number of ticker rows
	Window    int     // history length per row
	StepWidth float64 // full swing of one tick; the step is in [-StepWidth/2, +StepWidth/2)
}

func DefaultOptions() Options {
	return Options{Rows: 12, Window: 15, StepWidth: 5}
}

func (o Options) Validate() error {
	if o.Rows <= 0 {
		return errors.New("Rows must be > 0")
	}
	if o.Window <= 0 {
		return errors.New("Window must be > 0")
	}
	if o.StepWidth < 0 {
		return errors.New("StepWidth must be >= 0")
	}
	return nil
}

// Board is an immutable snapshot of the ticker rows.
// Tick never mutates the receiver; it returns the next snapshot.
type Board struct {
	rows  []model.TickerRow
	ticks int
	opts  Options
}

// cents rounds a quoted price to two decimals.
func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// New seeds every row with a random symbol, price and history window, all
// quoted in cents.
func New(gen *market.Generator, opts Options) (*Board, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rows := make([]model.TickerRow, opts.Rows)
	for i := range rows {
		row := model.TickerRow{
			Symbol:  gen.NextSymbol(),
			Price:   cents(gen.NextPrice()),
			History: make([]float64, opts.Window),
		}
		for j := range row.History {
			row.History[j] = cents(gen.NextPrice())
		}
		rows[i] = row
	}
	return &Board{rows: rows, opts: opts}, nil
}

// FromRows builds a board from explicit rows. Every history must have the same length.
func FromRows(rows []model.TickerRow, stepWidth float64) (*Board, error) {
	if len(rows) == 0 {
		return nil, errors.New("at least one row is required")
	}
	window := len(rows[0].History)
	out := make([]model.TickerRow, len(rows))
	for i, r := range rows {
		if len(r.History) != window || window == 0 {
			return nil, errors.New("all rows need a non-empty history of equal length")
		}
		out[i] = r.Clone()
	}
	return &Board{rows: out, opts: Options{Rows: len(rows), Window: window, StepWidth: stepWidth}}, nil
}

// Tick advances every row by one random step, appending the new price to its
// history and evicting the oldest entry. The row price is quoted in cents and
// the next step starts from it; history keeps the unrounded value.
func (b *Board) Tick(gen *market.Generator) *Board {
	next := make([]model.TickerRow, len(b.rows))
	for i, r := range b.rows {
		newPrice := r.Price + gen.Step(b.opts.StepWidth)
		history := make([]float64, 0, len(r.History))
		history = append(history, r.History[1:]...)
		history = append(history, newPrice)
		next[i] = model.TickerRow{
			Symbol:  r.Symbol,
			Price:   cents(newPrice),
			History: history,
		}
	}
	return &Board{rows: next, ticks: b.ticks + 1, opts: b.opts}
}

// Rows returns a deep copy of the rows.
func (b *Board) Rows() []model.TickerRow {
	out := make([]model.TickerRow, len(b.rows))
	for i, r := range b.rows {
		out[i] = r.Clone()
	}
	return out
}

// Ticks is the number of ticks applied since the board was seeded.
func (b *Board) Ticks() int { return b.ticks }

func (b *Board) Options() Options { return b.opts }
