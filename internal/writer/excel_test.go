package writer

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-organizer/internal/models"
)

func TestExcelWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := &ExcelWriter{}
	if err := w.WriteToFile(path, []models.Statement{sampleStatement()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Statement 1" {
		t.Fatalf("sheets: got %v, want [Statement 1]", sheets)
	}

	cells := []struct {
		ref  string
		want string
	}{
		{"A3", "Account Name"},
		{"B3", "John Doe"},
		{"A4", "Account Number"},
		{"B4", "1234"},
		{"A7", "Date"},
		{"B7", "Description"},
		{"C7", "Amount"},
		{"F7", "Category"},
		{"A8", "01/02/2023"},
		{"B8", "Grocery Store"},
		{"C8", "-45"},
		{"D8", "955.00"},
		{"E8", "DEBIT"},
		{"F8", "OTHER"},
		{"B9", "Salary credit"},
		{"E9", "CREDIT"},
	}
	for _, c := range cells {
		got, err := f.GetCellValue("Statement 1", c.ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", c.ref, err)
		}
		if got != c.want {
			t.Errorf("cell %s: got %q, want %q", c.ref, got, c.want)
		}
	}
}

func TestExcelWriteMultipleSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := &ExcelWriter{}
	statements := []models.Statement{sampleStatement(), sampleStatement()}
	if err := w.WriteToFile(path, statements); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets: got %v, want two", sheets)
	}
	got, err := f.GetCellValue("Statement 2", "B8")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Grocery Store" {
		t.Errorf("Statement 2 B8: got %q, want %q", got, "Grocery Store")
	}
}
