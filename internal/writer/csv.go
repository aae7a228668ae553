// Package writer exports organized statements to tabular formats.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/statement-organizer/internal/analyzer"
	"github.com/insightdelivered/statement-organizer/internal/models"
)

// csvRow is the exported shape of one transaction.
type csvRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Balance     string `csv:"balance"`
	Type        string `csv:"type"`
	Category    string `csv:"category"`
}

func toCSVRows(st models.Statement) []csvRow {
	rows := make([]csvRow, 0, len(st.Transactions))
	for _, txn := range st.Transactions {
		rows = append(rows, csvRow{
			Date:        txn.Date,
			Description: txn.Description,
			Amount:      txn.Amount.StringFixed(2),
			Balance:     txn.BalanceString(),
			Type:        txn.TypeString(),
			Category:    analyzer.Categorize(txn.Description),
		})
	}
	return rows
}

// CSVWriter writes statements to CSV, one section per statement.
type CSVWriter struct {
	// IncludeHeader emits account metadata rows before each section.
	IncludeHeader bool
}

// WriteToFile writes all statements to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, statements []models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, statements)
}

// Write writes all statements in CSV format to the given writer. Each
// statement gets its own column-header row so multi-holder documents stay
// readable as sections.
func (w *CSVWriter) Write(out io.Writer, statements []models.Statement) error {
	for i, st := range statements {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if w.IncludeHeader {
			if err := writeMetadata(out, st.Account); err != nil {
				return err
			}
		}
		if err := gocsv.Marshal(toCSVRows(st), out); err != nil {
			return fmt.Errorf("failed to write CSV rows: %w", err)
		}
	}
	return nil
}

func writeMetadata(out io.Writer, acct models.AccountInfo) error {
	meta := []struct{ label, value string }{
		{"Bank", acct.BankName},
		{"Branch", acct.Branch},
		{"Account Name", acct.AccountName},
		{"Account Number", acct.AccountNumber},
		{"Statement Period", acct.StatementPeriod},
	}
	cw := csv.NewWriter(out)
	for _, m := range meta {
		if m.value == models.Unknown {
			continue
		}
		if err := cw.Write([]string{"# " + m.label, m.value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
