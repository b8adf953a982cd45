package performance

import (
	"errors"

	"tradingai-demo/internal/market"
	"tradingai-demo/internal/model"
)

// Widths is the full swing of one drift step per metric.
// A step for a field is uniform in [-width/2, +width/2).
type Widths struct {
	TotalReturn float64 `yaml:"total_return"`
	Sharpe      float64 `yaml:"sharpe"`
	MaxDrawdown float64 `yaml:"max_drawdown"`
	WinRate     float64 `yaml:"win_rate"`
}

func DefaultWidths() Widths {
	return Widths{
		TotalReturn: 0.5,
		Sharpe:      0.05,
		MaxDrawdown: 0.2,
		WinRate:     0.3,
	}
}

func (w Widths) Validate() error {
	if w.TotalReturn < 0 || w.Sharpe < 0 || w.MaxDrawdown < 0 || w.WinRate < 0 {
		return errors.New("drift widths must be >= 0")
	}
	return nil
}

// Drifter holds the dashboard metrics and nudges them on every Drift.
// Values are not clamped and may leave realistic ranges over a long session.
type Drifter struct {
	current model.PerformanceMetrics
	initial model.PerformanceMetrics
	widths  Widths
	drifts  int
}

func NewDrifter(initial model.PerformanceMetrics, widths Widths) *Drifter {
	return &Drifter{current: initial, initial: initial, widths: widths}
}

// Drift applies one independent random step to each metric and returns the new snapshot.
func (d *Drifter) Drift(gen *market.Generator) model.PerformanceMetrics {
	prev := d.current
	d.current = model.PerformanceMetrics{
		TotalReturn: prev.TotalReturn + gen.Step(d.widths.TotalReturn),
		Sharpe:      prev.Sharpe + gen.Step(d.widths.Sharpe),
		MaxDrawdown: prev.MaxDrawdown + gen.Step(d.widths.MaxDrawdown),
		WinRate:     prev.WinRate + gen.Step(d.widths.WinRate),
	}
	d.drifts++
	return d.current
}

func (d *Drifter) Current() model.PerformanceMetrics { return d.current }

func (d *Drifter) Initial() model.PerformanceMetrics { return d.initial }

func (d *Drifter) Drifts() int { return d.drifts }

// MaxStep is the largest magnitude a single Drift can move each field.
func (d *Drifter) MaxStep() model.PerformanceMetrics {
	return model.PerformanceMetrics{
		TotalReturn: d.widths.TotalReturn / 2,
		Sharpe:      d.widths.Sharpe / 2,
		MaxDrawdown: d.widths.MaxDrawdown / 2,
		WinRate:     d.widths.WinRate / 2,
	}
}
