package parser

import (
	"reflect"
	"testing"

	"github.com/insightdelivered/statement-organizer/internal/models"
)

func TestSegmentNoMarker(t *testing.T) {
	lines := []string{
		"Account No: 1234",
		"John Doe",
		"01/02/2023 Grocery Store 45.00 955.00",
	}

	blocks := Segment(lines)
	if len(blocks) != 1 {
		t.Fatalf("blocks: got %d, want 1", len(blocks))
	}
	if !reflect.DeepEqual([]string(blocks[0]), lines) {
		t.Errorf("block lines: got %#v, want %#v", blocks[0], lines)
	}
}

func TestSegmentMarkers(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []models.StatementBlock
	}{
		{
			name: "two markers yield two blocks",
			lines: []string{
				"Statement of Account",
				"Account No: 1111",
				"01/01/2023 Deposit 100.00 100.00",
				"STATEMENT OF ACCOUNT",
				"Account No: 2222",
				"02/01/2023 Withdrawal 50.00 50.00",
			},
			expected: []models.StatementBlock{
				{"Account No: 1111", "01/01/2023 Deposit 100.00 100.00"},
				{"Account No: 2222", "02/01/2023 Withdrawal 50.00 50.00"},
			},
		},
		{
			name: "preamble before first marker stays in first block",
			lines: []string{
				"First National Bank",
				"Account Statement",
				"Account No: 1111",
			},
			expected: []models.StatementBlock{
				{"First National Bank", "Account No: 1111"},
			},
		},
		{
			name: "marker with empty body yields empty block",
			lines: []string{
				"Statement of Account",
				"Account No: 1111",
				"Statement of Account",
			},
			expected: []models.StatementBlock{
				{"Account No: 1111"},
				nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.lines)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %#v, want %#v", got, tt.expected)
			}
		})
	}
}

// Segmenting never duplicates or drops a non-marker line.
func TestSegmentPreservesLines(t *testing.T) {
	lines := []string{
		"preamble line",
		"Statement of Account",
		"a",
		"b",
		"Statement of Account",
		"c",
	}

	blocks := Segment(lines)
	if len(blocks) != 2 {
		t.Fatalf("blocks: got %d, want 2", len(blocks))
	}

	var flat []string
	for _, b := range blocks {
		flat = append(flat, b...)
	}
	want := []string{"preamble line", "a", "b", "c"}
	if !reflect.DeepEqual(flat, want) {
		t.Errorf("concatenated lines: got %#v, want %#v", flat, want)
	}
}
