// Package workbook persists the ledger's table set as a single xlsx
// workbook. Sheet and column names are Spanish, matching the operator's
// existing file, so a workbook written here opens unchanged in the
// spreadsheet they already use.
package workbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	portsrepo "github.com/DeliciasWera/tienda_ledger_app/internal/core/ports/repositories"
	"github.com/DeliciasWera/tienda_ledger_app/internal/utils/normalize"
)

const (
	sheetInventory = "Inventario"
	sheetSales     = "Ventas"
	sheetDebts     = "Deudas"
	sheetTransfers = "Transferencias"
	sheetSummary   = "ResumenPagos"
	sheetRollup    = "Ganancias"
)

var (
	headerInventory = []string{"Código", "Nombre", "PrecioCompra", "PrecioVenta", "Stock", "Categoría"}
	headerSales     = []string{"Fecha", "Código", "Nombre", "Cantidad", "PrecioVenta", "PrecioCompra", "Total", "Ganancia", "Persona", "Tipo", "Descripción"}
	headerDebts     = []string{"Persona", "Adeuda", "Pagado", "TotalDeuda", "Estado"}
	headerTransfers = []string{"Fecha", "Código", "Nombre", "Cantidad", "Precio", "Total", "Persona", "Cuenta", "Descripción"}
	headerSummary   = []string{"Persona", "TotalEfectivo", "TotalTransferencia", "TotalFiado", "TotalPagado", "DeudaActual", "UltimaActualizacion"}
	headerRollup    = []string{"Mes", "TotalVentasMes", "TotalGananciaMes", "UltimaActualizacion"}
)

var sheetOrder = []string{sheetInventory, sheetSales, sheetDebts, sheetTransfers, sheetSummary, sheetRollup}

// XlsxRepository reads and writes the workbook at a fixed path. Loading is
// lenient (missing or corrupt data becomes empty tables), writing is
// all-or-nothing through a temp file rename.
type XlsxRepository struct {
	path      string
	backupDir string
	logger    *slog.Logger
}

var _ portsrepo.WorkbookRepository = (*XlsxRepository)(nil)

// NewXlsxRepository creates a repository for the workbook at path, with
// backups placed under backupDir.
func NewXlsxRepository(path, backupDir string, logger *slog.Logger) *XlsxRepository {
	return &XlsxRepository{path: path, backupDir: backupDir, logger: logger}
}

// LoadAll reads every sheet from the workbook. A missing file yields empty
// canonical tables; a corrupt file or sheet yields an empty table for the
// affected sheet and a warning, never an error. Numeric cells are
// renormalized with parse-or-zero semantics, so a hand-edited workbook
// always loads.
func (r *XlsxRepository) LoadAll(ctx context.Context) (*domain.TableSet, error) {
	tables := domain.NewTableSet()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Info("workbook not found, starting empty", "path", r.path)
			return tables, nil
		}
		r.logger.Warn("workbook unreadable, starting empty", "path", r.path, "error", err)
		return tables, nil
	}
	defer f.Close()

	tables.Inventory = r.loadInventory(f)
	tables.Sales = r.loadSales(f)
	tables.Debts = r.loadDebts(f)
	tables.Transfers = r.loadTransfers(f)
	tables.PaymentSummary = r.loadSummary(f)
	tables.MonthlyRollup = r.loadRollup(f)
	return tables, nil
}

// SaveAll writes every table into a fresh workbook and renames it over the
// previous file, so a crash mid-write never leaves a half-written workbook.
func (r *XlsxRepository) SaveAll(ctx context.Context, tables *domain.TableSet) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetInventory)
	for _, name := range sheetOrder[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	writeSheet(f, sheetInventory, headerInventory, len(tables.Inventory), func(i int) []interface{} {
		p := tables.Inventory[i]
		return []interface{}{p.Code, p.Name, moneyCell(p.PurchasePrice), moneyCell(p.SalePrice), p.Stock, p.Category}
	})
	writeSheet(f, sheetSales, headerSales, len(tables.Sales), func(i int) []interface{} {
		ev := tables.Sales[i]
		return []interface{}{ev.Timestamp, ev.ProductCode, ev.ProductName, ev.Quantity,
			moneyCell(ev.SalePrice), moneyCell(ev.PurchasePrice), moneyCell(ev.Total), moneyCell(ev.Profit),
			ev.Person, string(ev.Kind), ev.Note}
	})
	writeSheet(f, sheetDebts, headerDebts, len(tables.Debts), func(i int) []interface{} {
		d := tables.Debts[i]
		return []interface{}{d.Person, moneyCell(d.Owed), moneyCell(d.Paid), moneyCell(d.Balance), d.Status}
	})
	writeSheet(f, sheetTransfers, headerTransfers, len(tables.Transfers), func(i int) []interface{} {
		tr := tables.Transfers[i]
		return []interface{}{tr.Timestamp, tr.ProductCode, tr.ProductName, tr.Quantity,
			moneyCell(tr.Price), moneyCell(tr.Total), tr.Person, tr.Account, tr.Note}
	})
	writeSheet(f, sheetSummary, headerSummary, len(tables.PaymentSummary), func(i int) []interface{} {
		s := tables.PaymentSummary[i]
		return []interface{}{s.Person, moneyCell(s.TotalCash), moneyCell(s.TotalTransfer),
			moneyCell(s.TotalCredit), moneyCell(s.TotalPaid), moneyCell(s.DebtBalance), s.UpdatedAt}
	})
	writeSheet(f, sheetRollup, headerRollup, len(tables.MonthlyRollup), func(i int) []interface{} {
		m := tables.MonthlyRollup[i]
		return []interface{}{m.Month, moneyCell(m.TotalSales), moneyCell(m.TotalProfit), m.UpdatedAt}
	})

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating workbook directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp workbook: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing workbook: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing workbook: %w", err)
	}
	return nil
}

// Backup verifies the persisted workbook reads back fully, then copies it
// into a timestamped directory under the backup root.
func (r *XlsxRepository) Backup(ctx context.Context) (string, error) {
	if err := r.verifyReadable(); err != nil {
		return "", fmt.Errorf("workbook failed verification: %w", err)
	}

	destDir := filepath.Join(r.backupDir, "backup_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	dest := filepath.Join(destDir, filepath.Base(r.path))
	if err := copyFile(r.path, dest); err != nil {
		return "", fmt.Errorf("copying workbook: %w", err)
	}
	r.logger.Info("workbook copied", "dest", dest)
	return dest, nil
}

// ExportTo copies the persisted workbook into destDir.
func (r *XlsxRepository) ExportTo(ctx context.Context, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	dest := filepath.Join(destDir, filepath.Base(r.path))
	if err := copyFile(r.path, dest); err != nil {
		return "", fmt.Errorf("copying workbook: %w", err)
	}
	return dest, nil
}

// verifyReadable opens the workbook and reads every expected sheet, so a
// backup is never taken of a file that cannot be restored from.
func (r *XlsxRepository) verifyReadable() error {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, name := range sheetOrder {
		if _, err := f.GetRows(name); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	return nil
}

func (r *XlsxRepository) rows(f *excelize.File, sheet string) [][]string {
	rows, err := f.GetRows(sheet)
	if err != nil {
		r.logger.Warn("sheet unreadable, using empty table", "sheet", sheet, "error", err)
		return nil
	}
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func (r *XlsxRepository) loadInventory(f *excelize.File) []domain.Product {
	out := []domain.Product{}
	for _, row := range r.rows(f, sheetInventory) {
		p := domain.Product{
			Code:          normalize.Text(cell(row, 0)),
			Name:          normalize.Text(cell(row, 1)),
			PurchasePrice: normalize.Money(cell(row, 2)),
			SalePrice:     normalize.Money(cell(row, 3)),
			Stock:         normalize.Quantity(cell(row, 4)),
			Category:      normalize.Text(cell(row, 5)),
		}
		if p.Code == "" && p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *XlsxRepository) loadSales(f *excelize.File) []domain.SaleEvent {
	out := []domain.SaleEvent{}
	for _, row := range r.rows(f, sheetSales) {
		out = append(out, domain.SaleEvent{
			Timestamp:     normalize.Text(cell(row, 0)),
			ProductCode:   normalize.Text(cell(row, 1)),
			ProductName:   normalize.Text(cell(row, 2)),
			Quantity:      normalize.Quantity(cell(row, 3)),
			SalePrice:     normalize.Money(cell(row, 4)),
			PurchasePrice: normalize.Money(cell(row, 5)),
			Total:         normalize.Money(cell(row, 6)),
			Profit:        normalize.Money(cell(row, 7)),
			Person:        normalize.Text(cell(row, 8)),
			Kind:          domain.EventKind(normalize.Text(cell(row, 9))),
			Note:          normalize.Text(cell(row, 10)),
		})
	}
	return out
}

func (r *XlsxRepository) loadDebts(f *excelize.File) []domain.DebtEntry {
	out := []domain.DebtEntry{}
	for _, row := range r.rows(f, sheetDebts) {
		d := domain.DebtEntry{
			Person: normalize.Text(cell(row, 0)),
			Owed:   normalize.Money(cell(row, 1)),
			Paid:   normalize.Money(cell(row, 2)),
		}
		if d.Person == "" {
			continue
		}
		// Balance and Status are derived; the stored cells are ignored.
		d.Recalculate()
		out = append(out, d)
	}
	return out
}

func (r *XlsxRepository) loadTransfers(f *excelize.File) []domain.TransferRecord {
	out := []domain.TransferRecord{}
	for _, row := range r.rows(f, sheetTransfers) {
		out = append(out, domain.TransferRecord{
			Timestamp:   normalize.Text(cell(row, 0)),
			ProductCode: normalize.Text(cell(row, 1)),
			ProductName: normalize.Text(cell(row, 2)),
			Quantity:    normalize.Quantity(cell(row, 3)),
			Price:       normalize.Money(cell(row, 4)),
			Total:       normalize.Money(cell(row, 5)),
			Person:      normalize.Text(cell(row, 6)),
			Account:     normalize.Text(cell(row, 7)),
			Note:        normalize.Text(cell(row, 8)),
		})
	}
	return out
}

func (r *XlsxRepository) loadSummary(f *excelize.File) []domain.PaymentSummaryEntry {
	out := []domain.PaymentSummaryEntry{}
	for _, row := range r.rows(f, sheetSummary) {
		e := domain.PaymentSummaryEntry{
			Person:        normalize.Text(cell(row, 0)),
			TotalCash:     normalize.Money(cell(row, 1)),
			TotalTransfer: normalize.Money(cell(row, 2)),
			TotalCredit:   normalize.Money(cell(row, 3)),
			TotalPaid:     normalize.Money(cell(row, 4)),
			DebtBalance:   normalize.Money(cell(row, 5)),
			UpdatedAt:     normalize.Text(cell(row, 6)),
		}
		if e.Person == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (r *XlsxRepository) loadRollup(f *excelize.File) []domain.MonthlyRollupEntry {
	out := []domain.MonthlyRollupEntry{}
	for _, row := range r.rows(f, sheetRollup) {
		e := domain.MonthlyRollupEntry{
			Month:       normalize.Text(cell(row, 0)),
			TotalSales:  normalize.Money(cell(row, 1)),
			TotalProfit: normalize.Money(cell(row, 2)),
			UpdatedAt:   normalize.Text(cell(row, 3)),
		}
		if e.Month == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// writeSheet writes the header and n data rows into sheet.
func writeSheet(f *excelize.File, sheet string, header []string, n int, rowAt func(i int) []interface{}) {
	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	f.SetSheetRow(sheet, "A1", &headerCells)
	for i := 0; i < n; i++ {
		row := rowAt(i)
		f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row)
	}
}

// moneyCell renders a monetary amount as a numeric cell value. Two-decimal
// amounts are exact in float64 at ledger scale.
func moneyCell(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// cell returns row[i] or "" when the row is shorter; excelize trims
// trailing empty cells from GetRows.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
