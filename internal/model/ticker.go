package model

// Trend is the color-coding direction of a ticker row or signal.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// TickerRow is one line of the hero price ticker.
// History is a FIFO window of the most recent prices, oldest first.
type TickerRow struct {
	Symbol  string    `json:"symbol"`
	Price   float64   `json:"price"`
	History []float64 `json:"history"`
}

// Trend compares the current price with the oldest price still in the window.
func (r TickerRow) Trend() Trend {
	if len(r.History) == 0 || r.Price >= r.History[0] {
		return TrendUp
	}
	return TrendDown
}

// Clone returns a copy that shares no memory with r.
func (r TickerRow) Clone() TickerRow {
	h := make([]float64, len(r.History))
	copy(h, r.History)
	return TickerRow{Symbol: r.Symbol, Price: r.Price, History: h}
}
