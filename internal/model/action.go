package model

// TradeAction is the side of a simulated portfolio change.
// Keep these values stable; they are intended for CSV output.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// ExecutionState is the trade-execution state of a simulator account.
type ExecutionState string

const (
	ExecutionIdle      ExecutionState = "IDLE"
	ExecutionExecuting ExecutionState = "EXECUTING"
)

func ExecutionStateFrom(executing bool) ExecutionState {
	if executing {
		return ExecutionExecuting
	}
	return ExecutionIdle
}
