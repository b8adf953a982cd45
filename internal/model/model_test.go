package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())

	a, ok := c.Lookup(" googl ")
	require.True(t, ok)
	assert.Equal(t, "GOOGL", a.Symbol)
	assert.Equal(t, TrendDown, a.Direction())
	assert.Equal(t, "0.988", a.ExitFactor().String())

	_, ok = c.Lookup("DOGE")
	assert.False(t, ok)

	dup := append(Catalog{}, c[0], c[0])
	assert.Error(t, dup.Validate())
	assert.Error(t, Catalog{}.Validate())
	assert.Error(t, Catalog{NewAsset("X", "x", 0, 1, 50)}.Validate())
}

func TestTickerRowTrend(t *testing.T) {
	row := TickerRow{Symbol: "AAPL", Price: 101, History: []float64{101, 99, 102}}
	assert.Equal(t, TrendUp, row.Trend())
	row.Price = 100.99
	assert.Equal(t, TrendDown, row.Trend())

	clone := row.Clone()
	clone.History[0] = 0
	assert.Equal(t, 101.0, row.History[0])
}

func TestExecutionStateFrom(t *testing.T) {
	assert.Equal(t, ExecutionExecuting, ExecutionStateFrom(true))
	assert.Equal(t, ExecutionIdle, ExecutionStateFrom(false))
}
