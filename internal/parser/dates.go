package parser

import (
	"regexp"
	"strings"
	"time"
)

// Date formats seen in extracted statement text. A transaction row is only
// opened by a line that begins with one of these.
var (
	// DD/MM/YYYY, DD-MM-YYYY, DD.MM.YYYY (2- or 4-digit year)
	leadingNumericDate = regexp.MustCompile(`^(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})\b`)
	// DD Mon YYYY or DD-Mon-YYYY, month name possibly spelled out
	leadingTextDate = regexp.MustCompile(`(?i)^(\d{1,2}[ -](?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*(?:[ -]\d{2,4})?)\b`)
	// ISO YYYY-MM-DD
	leadingISODate = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\b`)
)

// leadingDate returns the date token at the start of the line and the rest
// of the line after it. ok is false when the line does not begin with a
// recognizable date.
func leadingDate(line string) (token, rest string, ok bool) {
	line = strings.TrimSpace(line)
	for _, pat := range []*regexp.Regexp{leadingISODate, leadingNumericDate, leadingTextDate} {
		if m := pat.FindStringSubmatch(line); m != nil {
			token = m[1]
			rest = strings.TrimSpace(line[len(m[0]):])
			return token, rest, true
		}
	}
	return "", "", false
}

// dateLayouts are tried in order when normalizing a date token.
var dateLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2-1-06",
	"2.1.2006",
	"2 Jan 2006",
	"2 Jan 06",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"2-January-2006",
	"2006-01-02",
}

// normalizeDate rewrites a recognized date token as DD/MM/YYYY. Tokens that
// match none of the known layouts are returned as parsed, unchanged.
func normalizeDate(token string) string {
	cleaned := strings.Join(strings.Fields(token), " ")
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, cleaned); err == nil {
			return d.Format("02/01/2006")
		}
	}
	return token
}
