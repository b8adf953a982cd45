package market

import (
	"math/rand"
	"time"
)

// Source is the randomness consumed by the simulation.
// *math/rand.Rand satisfies it; tests use SequenceSource.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// DefaultSymbols is the symbol set used by the hero ticker.
var DefaultSymbols = []string{"AAPL", "TSLA", "MSFT", "GOOGL", "NVDA", "AMZN", "META", "NFLX"}

const (
	MinPrice   = 100.0
	PriceRange = 500.0
)

// Generator produces synthetic symbols and prices for cosmetic simulation only.
type Generator struct {
	src     Source
	symbols []string
}

// NewSource returns a seeded source. A zero seed uses the current time.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func NewGenerator(src Source, symbols []string) *Generator {
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	s := make([]string, len(symbols))
	copy(s, symbols)
	return &Generator{src: src, symbols: s}
}

// NextSymbol picks one symbol uniformly at random.
func (g *Generator) NextSymbol() string {
	return g.symbols[g.src.Intn(len(g.symbols))]
}

// NextPrice returns a price uniformly distributed in [100, 600).
func (g *Generator) NextPrice() float64 {
	return MinPrice + g.src.Float64()*PriceRange
}

// Step returns a symmetric random step in [-width/2, +width/2).
func (g *Generator) Step(width float64) float64 {
	return (g.src.Float64() - 0.5) * width
}

func (g *Generator) Symbols() []string {
	out := make([]string, len(g.symbols))
	copy(out, g.symbols)
	return out
}
