package domain

import "github.com/shopspring/decimal"

// ReportWindow selects the time window a report aggregates over.
type ReportWindow string

const (
	WindowToday ReportWindow = "today"
	WindowWeek  ReportWindow = "week" // current calendar week, Monday through today
	WindowMonth ReportWindow = "month"
	WindowAll   ReportWindow = "all"
)

// Valid reports whether w is a known window.
func (w ReportWindow) Valid() bool {
	switch w {
	case WindowToday, WindowWeek, WindowMonth, WindowAll:
		return true
	}
	return false
}

// WindowTotals are the aggregate figures for one time window. Payment events
// never contribute: they are cash flow, not sales.
type WindowTotals struct {
	Window ReportWindow    `json:"window"`
	Units  int             `json:"units"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}

// ReportOverview carries the three headline totals shown together.
type ReportOverview struct {
	Today WindowTotals `json:"today"`
	Week  WindowTotals `json:"week"`
	Month WindowTotals `json:"month"`
}

// ProductSalesRow is one row of the per-product breakdown within a window.
type ProductSalesRow struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Units  int             `json:"units"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}
