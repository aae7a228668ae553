package writer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-organizer/internal/analyzer"
	"github.com/insightdelivered/statement-organizer/internal/models"
)

// ExcelWriter writes statements to an XLSX workbook, one sheet per
// statement.
type ExcelWriter struct{}

var excelColumns = []any{"Date", "Description", "Amount", "Balance", "Type", "Category"}

// WriteToFile writes all statements to an XLSX file at the given path.
func (w *ExcelWriter) WriteToFile(path string, statements []models.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, st := range statements {
		sheet := fmt.Sprintf("Statement %d", i+1)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to name sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to add sheet: %w", err)
			}
		}
		if err := writeSheet(f, sheet, st); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, st models.Statement) error {
	meta := [][]any{
		{"Bank", st.Account.BankName},
		{"Branch", st.Account.Branch},
		{"Account Name", st.Account.AccountName},
		{"Account Number", st.Account.AccountNumber},
		{"Statement Period", st.Account.StatementPeriod},
	}
	row := 1
	for _, m := range meta {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &m); err != nil {
			return err
		}
		row++
	}
	row++ // blank spacer row

	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &excelColumns); err != nil {
		return err
	}
	row++

	for _, txn := range st.Transactions {
		cells := []any{
			txn.Date,
			txn.Description,
			txn.Amount.InexactFloat64(),
			txn.BalanceString(),
			txn.TypeString(),
			analyzer.Categorize(txn.Description),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			return err
		}
		row++
	}
	return nil
}
