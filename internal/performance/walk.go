package performance

import (
	"errors"

	"tradingai-demo/internal/market"
)

// Walk is a single unbounded random walk, used for the hero headline price.
type Walk struct {
	value float64
	start float64
	width float64
	steps int
}

func NewWalk(start, width float64) (*Walk, error) {
	if width < 0 {
		return nil, errors.New("walk width must be >= 0")
	}
	return &Walk{value: start, start: start, width: width}, nil
}

// Step moves the value by a uniform step in [-width/2, +width/2) and returns it.
func (w *Walk) Step(gen *market.Generator) float64 {
	w.value += gen.Step(w.width)
	w.steps++
	return w.value
}

func (w *Walk) Value() float64 { return w.value }

func (w *Walk) Start() float64 { return w.start }

func (w *Walk) Steps() int { return w.steps }
