package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-organizer/internal/models"
)

// fieldRule maps a label pattern to an AccountInfo field. Rules are tried
// independently on every line; the first non-empty value wins per field and
// misses leave the Unknown sentinel in place.
type fieldRule struct {
	pattern *regexp.Regexp
	field   func(*models.AccountInfo) *string
	value   func(m []string) string
}

func firstGroup(m []string) string {
	return cleanFieldValue(m[1])
}

// cleanFieldValue trims a captured label value. Extracted PDF text often runs
// several print columns into one line, so anything after a run of two or more
// spaces is treated as a different column and dropped.
func cleanFieldValue(v string) string {
	v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), ":"))
	if idx := strings.Index(v, "  "); idx >= 0 {
		v = v[:idx]
	}
	return strings.TrimRight(v, " .,;-")
}

var fieldRules = []fieldRule{
	{
		pattern: regexp.MustCompile(`(?i)\b(?:account\s+(?:number|no)|a/c\s+no)\.?\s*[:#\-]?\s*([0-9Xx*]+[0-9Xx*\- ]*)`),
		field:   func(a *models.AccountInfo) *string { return &a.AccountNumber },
		value: func(m []string) string {
			return strings.TrimRight(strings.TrimSpace(m[1]), "- ")
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(?:account\s+(?:holder|name)|customer\s+name|name\s+of\s+(?:the\s+)?account\s+holder)\s*[:\-]?\s*(.+)$`),
		field:   func(a *models.AccountInfo) *string { return &a.AccountName },
		value:   firstGroup,
	},
	{
		pattern: regexp.MustCompile(`(?i)\bbank\s+name\s*[:\-]?\s*(.+)$`),
		field:   func(a *models.AccountInfo) *string { return &a.BankName },
		value:   firstGroup,
	},
	{
		// A line that is nothing but a bank name, e.g. "State Bank of India"
		// or "Metro Bank plc".
		pattern: regexp.MustCompile(`(?i)^([a-z][a-z&.,'\- ]*\bbank\b(?:\s+(?:of\s+[a-z ]+|plc|ltd\.?|limited|uk))?)\s*$`),
		field:   func(a *models.AccountInfo) *string { return &a.BankName },
		value:   firstGroup,
	},
	{
		pattern: regexp.MustCompile(`(?i)\bbranch(?:\s+name)?\s*[:\-]\s*(.+)$`),
		field:   func(a *models.AccountInfo) *string { return &a.Branch },
		value:   firstGroup,
	},
	{
		pattern: regexp.MustCompile(`(?i)\bstatement\s+(?:period|date\s+range)\s*[:\-]?\s*(.+)$`),
		field:   func(a *models.AccountInfo) *string { return &a.StatementPeriod },
		value:   periodValue,
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(?:statement\s+|period\s+)?from\s+(\S.*?)\s+to\s+(\S.*)$`),
		field:   func(a *models.AccountInfo) *string { return &a.StatementPeriod },
		value: func(m []string) string {
			from := cleanFieldValue(m[1])
			to := cleanFieldValue(m[2])
			if !containsDate(from) || !containsDate(to) {
				return ""
			}
			return from + " to " + to
		},
	},
}

// anyDatePattern finds a date anywhere in a string, used when assembling a
// statement-period range.
var anyDatePattern = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|\d{1,2}[ -](?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[ -]\d{2,4}|\d{4}-\d{2}-\d{2})\b`)

func containsDate(s string) bool {
	return anyDatePattern.MatchString(s)
}

// periodValue prefers a "d1 to d2" rendering when the period line carries two
// dates, and otherwise keeps the label value as written.
func periodValue(m []string) string {
	if dates := anyDatePattern.FindAllString(m[1], 2); len(dates) == 2 {
		return dates[0] + " to " + dates[1]
	}
	return firstGroup(m)
}

// extractFields runs the field rules over the block's lines.
func extractFields(block models.StatementBlock) models.AccountInfo {
	info := models.UnknownAccount()
	for _, line := range block {
		for _, rule := range fieldRules {
			target := rule.field(&info)
			if *target != models.Unknown {
				continue
			}
			m := rule.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if v := rule.value(m); v != "" {
				*target = v
			}
		}
	}
	return info
}

// rowState drives transaction-row reconstruction. The states are explicit so
// the continuation-line merge is testable on its own rather than hidden in
// ad-hoc flags.
type rowState int

const (
	awaitingRow rowState = iota
	inRow
)

// rawRow is a transaction row before the debit/credit side is resolved.
type rawRow struct {
	date       string
	desc       string
	amount     numericToken
	balance    numericToken
	hasBalance bool
}

// Organize extracts account metadata and transaction rows from one statement
// block. Recognition failures degrade to sentinel values or skipped rows; the
// result is always a valid Statement, possibly with no transactions.
func Organize(block models.StatementBlock) models.Statement {
	var rows []rawRow
	state := awaitingRow
	var pending rawRow

	for _, line := range block {
		token, rest, ok := leadingDate(line)
		if !ok {
			if state == inRow {
				// Continuation of the open row's description.
				if pending.desc == "" {
					pending.desc = line
				} else {
					pending.desc += " " + line
				}
			}
			// awaitingRow: not a row, not a continuation — skipped.
			continue
		}

		desc, nums := splitRowTail(rest)
		if len(nums) == 0 {
			// Date-led but no numeric token: not a recognizable row.
			continue
		}

		if state == inRow {
			rows = append(rows, pending)
		}
		pending = rawRow{date: normalizeDate(token), desc: desc, amount: nums[0]}
		if len(nums) == 2 {
			pending.balance = nums[1]
			pending.hasBalance = true
		}
		state = inRow
	}
	if state == inRow {
		rows = append(rows, pending)
	}

	return models.Statement{
		Account:      extractFields(block),
		Transactions: finalizeRows(rows),
		RawText:      strings.Join(block, "\n"),
	}
}

// balanceTolerance absorbs rounding noise when checking balance progression.
var balanceTolerance = decimal.New(15, -3)

// finalizeRows resolves each row's debit/credit side and applies the sign
// convention (debits negative, credits positive). Resolution order: explicit
// Dr/Cr indicator or sign, then balance progression against the previous
// row's running balance, then debit when the row carries a running balance.
// A row with no balance and no indicator keeps its unsigned magnitude and an
// empty Type so the ambiguity is surfaced rather than silently resolved.
func finalizeRows(rows []rawRow) []models.Transaction {
	txns := make([]models.Transaction, 0, len(rows))
	var prevBal decimal.Decimal
	havePrev := false

	for _, r := range rows {
		t := models.Transaction{Date: r.date, Description: r.desc}

		mag := r.amount.value
		typ := r.amount.indicator
		if typ == "" && r.amount.negative {
			typ = models.TypeDebit
		}

		if r.hasBalance {
			t.Balance = r.balance.value
			if r.balance.negative {
				t.Balance = t.Balance.Neg()
			}
			t.HasBalance = true
		}

		if typ == "" && t.HasBalance {
			if havePrev {
				if prevBal.Sub(mag).Sub(t.Balance).Abs().LessThanOrEqual(balanceTolerance) {
					typ = models.TypeDebit
				} else if prevBal.Add(mag).Sub(t.Balance).Abs().LessThanOrEqual(balanceTolerance) {
					typ = models.TypeCredit
				}
			}
			if typ == "" {
				typ = models.TypeDebit
			}
		}

		switch typ {
		case models.TypeDebit:
			t.Amount = mag.Neg()
		default:
			t.Amount = mag
		}
		t.Type = typ

		if t.HasBalance {
			prevBal = t.Balance
			havePrev = true
		}
		txns = append(txns, t)
	}
	return txns
}
