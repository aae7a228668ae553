package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-organizer/internal/models"
)

// numericToken is one monetary value pulled off the tail of a row, together
// with any debit/credit indicator that was attached to it or followed it.
type numericToken struct {
	value     decimal.Decimal // unsigned magnitude
	negative  bool            // explicit leading/trailing minus or parentheses
	indicator string          // models.TypeDebit, models.TypeCredit, or ""
}

var currencySymbols = strings.NewReplacer("£", "", "$", "", "€", "", "₹", "", " ", "")

// indicatorSuffix matches a Dr/Cr marker attached to the end of a token,
// e.g. "45.00Dr" or "2,000.00CR.".
var indicatorSuffix = regexp.MustCompile(`(?i)(dr|cr)\.?$`)

// digitsPattern rejects tokens with no digits at all before decimal parsing.
var digitsPattern = regexp.MustCompile(`\d`)

// parseIndicator recognizes a standalone debit/credit marker token.
func parseIndicator(tok string) (string, bool) {
	switch strings.ToLower(strings.TrimSuffix(tok, ".")) {
	case "dr", "debit":
		return models.TypeDebit, true
	case "cr", "credit":
		return models.TypeCredit, true
	}
	return "", false
}

// parseNumeric interprets a single whitespace-separated token as a monetary
// value. It tolerates thousands separators, currency symbols, a leading or
// trailing sign, parentheses for negatives, and an attached Dr/Cr suffix.
func parseNumeric(tok string) (numericToken, bool) {
	var nt numericToken

	s := currencySymbols.Replace(strings.TrimSpace(tok))
	if s == "" || !digitsPattern.MatchString(s) {
		return nt, false
	}

	if m := indicatorSuffix.FindStringSubmatch(s); m != nil {
		if strings.EqualFold(m[1], "dr") {
			nt.indicator = models.TypeDebit
		} else {
			nt.indicator = models.TypeCredit
		}
		s = s[:len(s)-len(m[0])]
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		nt.negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		nt.negative = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if strings.HasSuffix(s, "-") {
		nt.negative = true
		s = s[:len(s)-1]
	}

	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nt, false
	}
	nt.value = d.Abs()
	return nt, true
}

// splitRowTail walks the row's tokens from the right, consuming up to two
// numeric tokens (and any Dr/Cr markers between them). Statement layouts put
// the running balance last, so with two numerics the earlier one is the
// amount and the later one the balance. Everything to the left is the
// description.
func splitRowTail(rest string) (description string, nums []numericToken) {
	toks := strings.Fields(rest)
	i := len(toks) - 1
	pending := ""

	for i >= 0 && len(nums) < 2 {
		tok := toks[i]
		if ind, ok := parseIndicator(tok); ok {
			if pending != "" {
				break
			}
			pending = ind
			i--
			continue
		}
		nt, ok := parseNumeric(tok)
		if !ok {
			break
		}
		if nt.indicator == "" {
			nt.indicator = pending
		}
		pending = ""
		nums = append([]numericToken{nt}, nums...)
		i--
	}

	boundary := i + 1
	if pending != "" {
		// A bare Dr/Cr with no numeric to its left belongs to the description.
		boundary++
	}
	return strings.Join(toks[:boundary], " "), nums
}
