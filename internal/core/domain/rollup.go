package domain

import "github.com/shopspring/decimal"

// MonthlyRollupEntry is one row of the monthly profit rollup, keyed by
// calendar month ("2006-01"). The rollup is a cache: the whole table is
// rebuilt from the sales journal whenever it is needed, never patched
// incrementally, so it cannot drift from the journal.
type MonthlyRollupEntry struct {
	Month       string          `json:"month"`
	TotalSales  decimal.Decimal `json:"totalSales"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
	UpdatedAt   string          `json:"updatedAt"`
}
