// Package analyzer aggregates extracted statements into category and
// monthly totals for reporting. It is pure and operates only on values
// produced by the parser.
package analyzer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-organizer/internal/models"
)

// Transaction categories, assigned by description keywords. The first
// category whose keyword list matches wins; rule order matters.
const (
	CategoryDeposit    = "DEPOSIT"
	CategoryWithdrawal = "WITHDRAWAL"
	CategoryInterest   = "INTEREST"
	CategoryCharges    = "CHARGES"
	CategoryTransfer   = "TRANSFER"
	CategoryOther      = "OTHER"
)

type categoryRule struct {
	name     string
	keywords []string
}

var categoryRules = []categoryRule{
	{CategoryDeposit, []string{"cash deposit", "by cash", "by imps", "deposit", "credit"}},
	{CategoryWithdrawal, []string{"withdrawal", "debit", "to cash", "paid"}},
	{CategoryInterest, []string{"interest", "int.coll"}},
	{CategoryCharges, []string{"charge", "fee", "gst", "cgst", "inspection"}},
	{CategoryTransfer, []string{"transfer", "trf", "imps", "neft", "rtgs"}},
}

// Categorize assigns a category from the transaction description.
func Categorize(description string) string {
	lower := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.name
			}
		}
	}
	return CategoryOther
}

// Summary holds aggregate totals over one or more statements. Totals are
// amount magnitudes: the debit/credit split is already carried by the
// category, so summing signed values would cancel instead of accumulate.
type Summary struct {
	CategoryTotals map[string]decimal.Decimal            `json:"categoryTotals"`
	MonthlyTotals  map[string]map[string]decimal.Decimal `json:"monthlyTotals"`
	Count          int                                   `json:"count"`
}

// monthKey derives a YYYY-MM bucket from a normalized transaction date.
// Dates the parser left unnormalized bucket under the Unknown sentinel.
func monthKey(date string) string {
	d, err := time.Parse("02/01/2006", date)
	if err != nil {
		return models.Unknown
	}
	return d.Format("2006-01")
}

// Summarize computes category and monthly totals across all statements.
func Summarize(statements []models.Statement) Summary {
	s := Summary{
		CategoryTotals: make(map[string]decimal.Decimal),
		MonthlyTotals:  make(map[string]map[string]decimal.Decimal),
	}
	for _, st := range statements {
		for _, txn := range st.Transactions {
			cat := Categorize(txn.Description)
			mag := txn.Amount.Abs()
			s.CategoryTotals[cat] = s.CategoryTotals[cat].Add(mag)

			month := monthKey(txn.Date)
			if s.MonthlyTotals[month] == nil {
				s.MonthlyTotals[month] = make(map[string]decimal.Decimal)
			}
			s.MonthlyTotals[month][cat] = s.MonthlyTotals[month][cat].Add(mag)
			s.Count++
		}
	}
	return s
}

// WriteReport prints a plain-text summary: categories by descending total,
// then per-month breakdowns in chronological order.
func (s Summary) WriteReport(w io.Writer) {
	fmt.Fprintln(w, "Transaction Categories Summary:")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, cat := range sortedByTotal(s.CategoryTotals) {
		fmt.Fprintf(w, "%-15s: %s\n", cat, s.CategoryTotals[cat].StringFixed(2))
	}

	fmt.Fprintln(w, "\nMonthly Transaction Totals:")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	months := make([]string, 0, len(s.MonthlyTotals))
	for m := range s.MonthlyTotals {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, month := range months {
		fmt.Fprintf(w, "\n%s:\n", month)
		for _, cat := range sortedByTotal(s.MonthlyTotals[month]) {
			fmt.Fprintf(w, "  %-15s: %s\n", cat, s.MonthlyTotals[month][cat].StringFixed(2))
		}
	}
}

func sortedByTotal(totals map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !totals[keys[i]].Equal(totals[keys[j]]) {
			return totals[keys[i]].GreaterThan(totals[keys[j]])
		}
		return keys[i] < keys[j]
	})
	return keys
}
