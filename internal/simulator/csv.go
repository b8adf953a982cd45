package simulator

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
)

type ledgerCSVRow struct {
	Seq       string `csv:"seq"`
	Time      string `csv:"time"`
	Action    string `csv:"action"`
	Symbol    string `csv:"symbol"`
	Units     string `csv:"units"`
	Price     string `csv:"price"`
	Amount    string `csv:"amount"`
	CashAfter string `csv:"cash_after"`
}

func toCSVRows(entries []LedgerEntry) []*ledgerCSVRow {
	rows := make([]*ledgerCSVRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &ledgerCSVRow{
			Seq:       strconv.Itoa(e.Seq),
			Time:      fmtTime(e.Time),
			Action:    string(e.Action),
			Symbol:    e.Symbol,
			Units:     strconv.FormatInt(e.Units, 10),
			Price:     e.Price.StringFixed(2),
			Amount:    e.Amount.StringFixed(2),
			CashAfter: e.CashAfter.StringFixed(2),
		})
	}
	return rows
}

// WriteLedgerCSV writes the header and one row per entry.
func WriteLedgerCSV(w io.Writer, entries []LedgerEntry) error {
	rows := toCSVRows(entries)
	return gocsv.Marshal(&rows, w)
}

func WriteLedgerCSVFile(path string, entries []LedgerEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLedgerCSV(f, entries)
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
