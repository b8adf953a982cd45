package simulator

import (
	"time"

	"github.com/shopspring/decimal"

	"tradingai-demo/internal/model"
)

// LedgerEntry is one effective portfolio change.
// This is the primary artifact for "what happened" in a simulator session.
type LedgerEntry struct {
	Seq    int               `json:"seq"`
	Time   time.Time         `json:"time"`
	Action model.TradeAction `json:"action"`
	Symbol string            `json:"symbol"`
	Units  int64             `json:"units"`
	Price  decimal.Decimal   `json:"price"`
	// Amount is the cash debited (BUY) or credited (SELL).
	Amount    decimal.Decimal `json:"amount"`
	CashAfter decimal.Decimal `json:"cash_after"`
}

func (a *Account) record(action model.TradeAction, asset model.Asset, amount decimal.Decimal) {
	a.ledger = append(a.ledger, LedgerEntry{
		Seq:       len(a.ledger) + 1,
		Time:      a.opts.Now(),
		Action:    action,
		Symbol:    asset.Symbol,
		Units:     a.opts.LotSize,
		Price:     asset.Price,
		Amount:    amount,
		CashAfter: a.cash,
	})
}

// Ledger returns a copy of all entries, oldest first.
func (a *Account) Ledger() []LedgerEntry {
	out := make([]LedgerEntry, len(a.ledger))
	copy(out, a.ledger)
	return out
}
