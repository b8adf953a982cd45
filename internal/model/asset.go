package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset is immutable reference data for one tradable symbol in the simulator.
// Units:
// - Price: $ per share
// - ChangePercent: percent, e.g. 2.4 means +2.4%
// - Confidence: model confidence score 0..100
type Asset struct {
	Symbol        string          `json:"symbol" yaml:"symbol"`
	Name          string          `json:"name" yaml:"name"`
	Price         decimal.Decimal `json:"price" yaml:"-"`
	ChangePercent decimal.Decimal `json:"change_percent" yaml:"-"`
	Confidence    int             `json:"confidence" yaml:"confidence"`
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.Symbol) == "" {
		return errors.New("Symbol is required")
	}
	if !a.Price.IsPositive() {
		return fmt.Errorf("%s: Price must be > 0", a.Symbol)
	}
	if a.ChangePercent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return fmt.Errorf("%s: ChangePercent must be > -100", a.Symbol)
	}
	if a.Confidence < 0 || a.Confidence > 100 {
		return fmt.Errorf("%s: Confidence must be in [0, 100]", a.Symbol)
	}
	return nil
}

// Direction reports "up" for a non-negative change and "down" otherwise.
func (a Asset) Direction() Trend {
	if a.ChangePercent.IsNegative() {
		return TrendDown
	}
	return TrendUp
}

// ExitFactor is the multiplier applied to the entry cost on exit: 1 + ChangePercent/100.
func (a Asset) ExitFactor() decimal.Decimal {
	return decimal.NewFromInt(1).Add(a.ChangePercent.Div(decimal.NewFromInt(100)))
}

// Catalog is the fixed, ordered list of assets offered by the simulator.
type Catalog []Asset

// Lookup finds an asset by symbol (case-insensitive).
func (c Catalog) Lookup(symbol string) (Asset, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, a := range c {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return Asset{}, false
}

func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.New("catalog must contain at least one asset")
	}
	seen := make(map[string]bool, len(c))
	for _, a := range c {
		if err := a.Validate(); err != nil {
			return err
		}
		if seen[a.Symbol] {
			return fmt.Errorf("duplicate catalog symbol %q", a.Symbol)
		}
		seen[a.Symbol] = true
	}
	return nil
}

// DefaultCatalog returns the assets shown in the live simulator.
func DefaultCatalog() Catalog {
	return Catalog{
		NewAsset("AAPL", "Apple Inc.", 185.25, 2.4, 92),
		NewAsset("TSLA", "Tesla Inc.", 242.50, 5.1, 87),
		NewAsset("GOOGL", "Alphabet Inc.", 125.75, -1.2, 83),
		NewAsset("MSFT", "Microsoft Corp.", 378.90, 1.8, 91),
		NewAsset("NVDA", "NVIDIA Corp.", 495.20, 3.7, 89),
	}
}

func NewAsset(symbol, name string, price, changePercent float64, confidence int) Asset {
	return Asset{
		Symbol:        symbol,
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		ChangePercent: decimal.NewFromFloat(changePercent),
		Confidence:    confidence,
	}
}
