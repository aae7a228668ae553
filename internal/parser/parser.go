// Package parser turns a blob of raw bank-statement text into structured
// per-account-holder statements. The pipeline is three pure stages:
// Normalize splits and cleans lines, Segment partitions them into
// per-holder blocks, Organize extracts account metadata and transaction
// rows from each block. Recognition failures never abort the pipeline —
// they degrade to sentinel values or skipped rows.
package parser

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/insightdelivered/statement-organizer/internal/models"
)

// ErrInvalidInput reports a contract violation on the top-level call: the
// input is not decodable text. No partial work is performed in this case.
var ErrInvalidInput = errors.New("statement input is not valid text")

// Extract runs the full pipeline on one document's raw text and returns one
// Statement per account-holder block, in source order. An empty or
// whitespace-only input yields an empty list, not an error. The pipeline
// holds no shared state, so concurrent calls on independent inputs are safe.
func Extract(raw string) ([]models.Statement, error) {
	if !utf8.ValidString(raw) || strings.ContainsRune(raw, 0) {
		return nil, ErrInvalidInput
	}

	lines := Normalize(raw)
	if len(lines) == 0 {
		return []models.Statement{}, nil
	}

	blocks := Segment(lines)
	statements := make([]models.Statement, 0, len(blocks))
	for _, block := range blocks {
		statements = append(statements, Organize(block))
	}
	return statements, nil
}
