package parser

import (
	"regexp"

	"github.com/insightdelivered/statement-organizer/internal/models"
)

// defaultMarkerPatterns recognize the banner heading that opens each account
// holder's statement when several statements are concatenated in one
// document. Label lines such as "Account No:" are deliberately not markers —
// they carry field values the organizer still needs.
var defaultMarkerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[=\-*\s]*statement\s+of\s+account[=\-*\s]*$`),
	regexp.MustCompile(`(?i)^[=\-*\s]*account\s+statement[=\-*\s]*$`),
	regexp.MustCompile(`(?i)^[=\-*\s]*bank\s+statement[=\-*\s]*$`),
	regexp.MustCompile(`(?i)^[=\-*\s]*statement\s+for\s+account\s+holder\b.*$`),
}

// Segment partitions normalized lines into per-account-holder blocks. Each
// marker line is consumed as a delimiter and starts a new block; lines before
// the first marker are kept as part of the first block so no content line is
// dropped: k markers yield exactly k blocks. With no marker at all the whole
// input is a single implicit block — the common single-holder case. A marker
// immediately followed by another marker (or end of input) yields an empty
// block, which the organizer turns into a statement with no transactions.
func Segment(lines []string) []models.StatementBlock {
	return SegmentWith(lines, defaultMarkerPatterns)
}

// SegmentWith is Segment with a caller-supplied marker-pattern set.
func SegmentWith(lines []string, markers []*regexp.Regexp) []models.StatementBlock {
	var blocks []models.StatementBlock
	var current models.StatementBlock
	started := false

	for _, line := range lines {
		if matchesAny(line, markers) {
			if started {
				blocks = append(blocks, current)
				current = nil
			}
			started = true
			continue
		}
		current = append(current, line)
	}

	if started || len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
