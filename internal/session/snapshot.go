package session

import (
	"time"

	"tradingai-demo/internal/model"
	"tradingai-demo/internal/simulator"
)

// TickerView is a ticker row with its derived trend.
type TickerView struct {
	model.TickerRow
	Trend model.Trend `json:"trend"`
}

// Snapshot is an immutable copy of a session's state.
type Snapshot struct {
	ID        string                   `json:"id"`
	Mounted   bool                     `json:"mounted"`
	Ticker    []TickerView             `json:"ticker"`
	Ticks     int                      `json:"ticks"`
	HeroPrice float64                  `json:"hero_price"`
	Metrics   model.PerformanceMetrics `json:"metrics"`
	Drifts    int                      `json:"drifts"`
	Account   simulator.View           `json:"account"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func (s *Session) snapshotLocked() Snapshot {
	rows := s.board.Rows()
	views := make([]TickerView, len(rows))
	for i, r := range rows {
		views[i] = TickerView{TickerRow: r, Trend: r.Trend()}
	}
	return Snapshot{
		ID:        s.id,
		Mounted:   s.mounted,
		Ticker:    views,
		Ticks:     s.board.Ticks(),
		HeroPrice: s.hero.Value(),
		Metrics:   s.drifter.Current(),
		Drifts:    s.drifter.Drifts(),
		Account:   s.account.View(),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}
