package ticker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradingai-demo/internal/market"
	"tradingai-demo/internal/model"
)

func TestNew(t *testing.T) {
	gen := market.NewGenerator(market.NewSource(1), nil)

	t.Run("default board has 12 rows of 15 prices", func(t *testing.T) {
		b, err := New(gen, DefaultOptions())
		require.NoError(t, err)

		rows := b.Rows()
		require.Len(t, rows, 12)
		for _, r := range rows {
			require.Len(t, r.History, 15)
			require.GreaterOrEqual(t, r.Price, 100.0)
			require.LessOrEqual(t, r.Price, 600.0)
			require.Equal(t, cents(r.Price), r.Price)
			require.Contains(t, market.DefaultSymbols, r.Symbol)
		}
	})

	t.Run("rejects invalid options", func(t *testing.T) {
		_, err := New(gen, Options{Rows: 0, Window: 15})
		require.Error(t, err)

		_, err = New(gen, Options{Rows: 1, Window: 0})
		require.Error(t, err)
	})
}

func TestTick(t *testing.T) {
	t.Run("history keeps its length", func(t *testing.T) {
		gen := market.NewGenerator(market.NewSource(99), nil)
		b, err := New(gen, DefaultOptions())
		require.NoError(t, err)

		for i := 0; i < 100; i++ {
			b = b.Tick(gen)
			for _, r := range b.Rows() {
				require.Len(t, r.History, 15)
			}
		}
		assert.Equal(t, 100, b.Ticks())
	})

	t.Run("history is a FIFO window", func(t *testing.T) {
		b, err := FromRows([]model.TickerRow{
			{Symbol: "AAPL", Price: 12, History: []float64{10, 11, 12}},
		}, 5)
		require.NoError(t, err)

		// step = (0.7 - 0.5) * 5 = 1
		gen := market.NewGenerator(market.ConstantSource(0.7), nil)
		next := b.Tick(gen)

		row := next.Rows()[0]
		assert.InDelta(t, 13.0, row.Price, 1e-9)
		require.Len(t, row.History, 3)
		assert.Equal(t, 11.0, row.History[0])
		assert.Equal(t, 12.0, row.History[1])
		assert.InDelta(t, 13.0, row.History[2], 1e-9)
		assert.Equal(t, "AAPL", row.Symbol)
	})

	t.Run("step stays within half the width", func(t *testing.T) {
		gen := market.NewGenerator(market.NewSource(5), nil)
		b, err := New(gen, DefaultOptions())
		require.NoError(t, err)

		for i := 0; i < 50; i++ {
			prev := b.Rows()
			b = b.Tick(gen)
			for j, r := range b.Rows() {
				require.LessOrEqual(t, r.Price-prev[j].Price, 2.505+1e-9)
				require.GreaterOrEqual(t, r.Price-prev[j].Price, -2.505-1e-9)
			}
		}
	})

	t.Run("price is quoted in cents and history is not", func(t *testing.T) {
		b, err := FromRows([]model.TickerRow{
			{Symbol: "NVDA", Price: 100, History: []float64{99, 100}},
		}, 5)
		require.NoError(t, err)

		// step = (0.5015 - 0.5) * 5 = 0.0075
		gen := market.NewGenerator(market.ConstantSource(0.5015), nil)
		b = b.Tick(gen)
		row := b.Rows()[0]
		assert.Equal(t, 100.01, row.Price)
		assert.InDelta(t, 100.0075, row.History[1], 1e-9)

		// The next step starts from the rounded price.
		row = b.Tick(gen).Rows()[0]
		assert.Equal(t, 100.02, row.Price)
		assert.InDelta(t, 100.0175, row.History[1], 1e-9)
	})

	t.Run("previous snapshot is not mutated", func(t *testing.T) {
		b, err := FromRows([]model.TickerRow{
			{Symbol: "TSLA", Price: 3, History: []float64{1, 2, 3}},
		}, 5)
		require.NoError(t, err)

		_ = b.Tick(market.NewGenerator(market.ConstantSource(0.9), nil))

		row := b.Rows()[0]
		assert.Equal(t, []float64{1, 2, 3}, row.History)
		assert.Equal(t, 3.0, row.Price)
		assert.Equal(t, 0, b.Ticks())
	})

	t.Run("rows returns copies", func(t *testing.T) {
		b, err := FromRows([]model.TickerRow{
			{Symbol: "MSFT", Price: 3, History: []float64{1, 2, 3}},
		}, 5)
		require.NoError(t, err)

		rows := b.Rows()
		rows[0].History[0] = 100
		assert.Equal(t, 1.0, b.Rows()[0].History[0])
	})
}

func TestTrend(t *testing.T) {
	up := model.TickerRow{Price: 10, History: []float64{10, 9, 10}}
	down := model.TickerRow{Price: 9.99, History: []float64{10, 11, 9.99}}
	assert.Equal(t, model.TrendUp, up.Trend())
	assert.Equal(t, model.TrendDown, down.Trend())
}

func TestFromRows(t *testing.T) {
	_, err := FromRows(nil, 5)
	require.Error(t, err)

	_, err = FromRows([]model.TickerRow{
		{Symbol: "A", History: []float64{1, 2}},
		{Symbol: "B", History: []float64{1}},
	}, 5)
	require.Error(t, err)
}
