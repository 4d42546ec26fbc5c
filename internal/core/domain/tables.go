package domain

// TableSet is the full in-memory workbook: the six tables the ledger engine
// owns. The engine holds exactly one instance and persists it as one unit.
type TableSet struct {
	Inventory      []Product
	Sales          []SaleEvent
	Debts          []DebtEntry
	Transfers      []TransferRecord
	PaymentSummary []PaymentSummaryEntry
	MonthlyRollup  []MonthlyRollupEntry
}

// NewTableSet returns an empty table set with the canonical (non-nil) tables.
func NewTableSet() *TableSet {
	return &TableSet{
		Inventory:      []Product{},
		Sales:          []SaleEvent{},
		Debts:          []DebtEntry{},
		Transfers:      []TransferRecord{},
		PaymentSummary: []PaymentSummaryEntry{},
		MonthlyRollup:  []MonthlyRollupEntry{},
	}
}

// Clone returns a deep copy of the table set. All row types are value types
// (decimal.Decimal values are immutable), so copying the slices is enough.
// The engine snapshots the tables before each mutating pipeline and restores
// the snapshot when the workbook write fails.
func (t *TableSet) Clone() *TableSet {
	c := &TableSet{
		Inventory:      make([]Product, len(t.Inventory)),
		Sales:          make([]SaleEvent, len(t.Sales)),
		Debts:          make([]DebtEntry, len(t.Debts)),
		Transfers:      make([]TransferRecord, len(t.Transfers)),
		PaymentSummary: make([]PaymentSummaryEntry, len(t.PaymentSummary)),
		MonthlyRollup:  make([]MonthlyRollupEntry, len(t.MonthlyRollup)),
	}
	copy(c.Inventory, t.Inventory)
	copy(c.Sales, t.Sales)
	copy(c.Debts, t.Debts)
	copy(c.Transfers, t.Transfers)
	copy(c.PaymentSummary, t.PaymentSummary)
	copy(c.MonthlyRollup, t.MonthlyRollup)
	return c
}
