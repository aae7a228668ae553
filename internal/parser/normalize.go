package parser

import (
	"regexp"
	"strings"
)

// defaultDiscardPatterns match lines that are extraction noise rather than
// statement content: page furniture, separators, boilerplate footers. The
// list is configuration, not control flow — formats are added here.
var defaultDiscardPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page\s+\d+(\s+of\s+\d+)?$`),
	regexp.MustCompile(`(?i)^-?\s*\d+\s*-?$`),
	regexp.MustCompile(`(?i)^\(?continued(\s+(on|from)\s+(next|previous)\s+page)?\)?\.?$`),
	regexp.MustCompile(`^[-_=*.\s]{4,}$`),
	regexp.MustCompile(`(?i)^end\s+of\s+statement\b`),
	regexp.MustCompile(`(?i)^this\s+is\s+a\s+(computer|system)[- ]generated\s+statement\b`),
	regexp.MustCompile(`(?i)^please\s+(examine|verify)\s+this\s+statement\b`),
}

// Normalize splits raw extracted text into logical lines: each line is
// whitespace-trimmed, and lines that are empty or match a discard pattern
// are dropped. Line content is otherwise untouched — downstream field
// recognition relies on original casing and spacing. Pure function; empty
// or whitespace-only input yields an empty slice.
func Normalize(raw string) []string {
	return NormalizeWith(raw, defaultDiscardPatterns)
}

// NormalizeWith is Normalize with a caller-supplied discard-pattern set.
func NormalizeWith(raw string, discard []*regexp.Regexp) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		if matchesAny(line, discard) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
