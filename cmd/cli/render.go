package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"tradingai-demo/internal/content"
	"tradingai-demo/internal/model"
	"tradingai-demo/internal/session"
	"tradingai-demo/internal/simulator"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	return table
}

func renderTicker(w io.Writer, rows []session.TickerView) {
	table := newTable(w, "symbol", "price", "first in window", "trend")
	for _, r := range rows {
		first := ""
		if len(r.History) > 0 {
			first = fmt.Sprintf("%.2f", r.History[0])
		}
		table.Append([]string{r.Symbol, fmt.Sprintf("%.2f", r.Price), first, string(r.Trend)})
	}
	table.Render()
}

func renderMetrics(w io.Writer, m model.PerformanceMetrics) {
	table := newTable(w, "total return %", "sharpe", "max drawdown %", "win rate %")
	table.Append([]string{
		fmt.Sprintf("%.1f", m.TotalReturn),
		fmt.Sprintf("%.2f", m.Sharpe),
		fmt.Sprintf("%.1f", m.MaxDrawdown),
		fmt.Sprintf("%.1f", m.WinRate),
	})
	table.Render()
}

func renderAccount(w io.Writer, v simulator.View) {
	table := newTable(w, "cash", "holdings", "portfolio value", "total value", "total return %", "state")
	table.Append([]string{
		v.Cash.StringFixed(2),
		strconv.Itoa(len(v.Holdings)),
		v.PortfolioValue.StringFixed(2),
		v.TotalValue.StringFixed(2),
		v.TotalReturn.StringFixed(5),
		string(v.State),
	})
	table.Render()
}

func renderLedger(w io.Writer, entries []simulator.LedgerEntry) {
	table := newTable(w, "seq", "action", "symbol", "units", "price", "amount", "cash after")
	for _, e := range entries {
		table.Append([]string{
			strconv.Itoa(e.Seq),
			string(e.Action),
			e.Symbol,
			strconv.FormatInt(e.Units, 10),
			e.Price.StringFixed(2),
			e.Amount.StringFixed(2),
			e.CashAfter.StringFixed(2),
		})
	}
	table.Render()
}

func renderCatalog(w io.Writer, catalog model.Catalog) {
	table := newTable(w, "symbol", "name", "price", "change %", "confidence")
	for _, a := range catalog {
		table.Append([]string{
			a.Symbol,
			a.Name,
			a.Price.StringFixed(2),
			a.ChangePercent.StringFixed(1),
			strconv.Itoa(a.Confidence),
		})
	}
	table.Render()
}

func renderSignals(w io.Writer, signals []content.Signal) {
	table := newTable(w, "symbol", "confidence", "direction", "change")
	for _, s := range signals {
		table.Append([]string{s.Symbol, strconv.Itoa(s.Confidence) + "%", string(s.Direction), s.Change})
	}
	table.Render()
}
