package models

import "github.com/shopspring/decimal"

// Unknown is the sentinel value for any field the extraction heuristics
// could not recognize. It is a valid outcome, not an error state.
const Unknown = "Unknown"

// Transaction type values. An empty Type means the debit/credit side could
// not be determined and the amount is an unsigned magnitude.
const (
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)

// Transaction represents a single statement row reconstructed from text.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	HasBalance  bool            `json:"hasBalance"`
	Type        string          `json:"type"` // DEBIT, CREDIT, or "" when undetermined
}

// BalanceString renders the running balance for display, using the Unknown
// sentinel when no balance was present on the source row.
func (t Transaction) BalanceString() string {
	if !t.HasBalance {
		return Unknown
	}
	return t.Balance.StringFixed(2)
}

// TypeString renders the debit/credit side for display.
func (t Transaction) TypeString() string {
	if t.Type == "" {
		return Unknown
	}
	return t.Type
}

// AccountInfo holds the metadata recognized near the top of a statement
// block. Any field may be the Unknown sentinel.
type AccountInfo struct {
	AccountNumber   string `json:"accountNumber"`
	AccountName     string `json:"accountName"`
	BankName        string `json:"bankName"`
	Branch          string `json:"branch"`
	StatementPeriod string `json:"statementPeriod"`
}

// UnknownAccount returns an AccountInfo with every field set to the sentinel.
func UnknownAccount() AccountInfo {
	return AccountInfo{
		AccountNumber:   Unknown,
		AccountName:     Unknown,
		BankName:        Unknown,
		Branch:          Unknown,
		StatementPeriod: Unknown,
	}
}

// StatementBlock is a contiguous sequence of normalized text lines believed
// to belong to one account holder's statement. It has no identity beyond its
// position in the document.
type StatementBlock []string

// Statement aggregates the account metadata and ordered transactions for one
// block, plus the block's reconstructed raw text for display and debugging.
// A Statement is constructed once and not mutated afterwards. An empty
// transaction list is a valid outcome.
type Statement struct {
	Account      AccountInfo   `json:"account"`
	Transactions []Transaction `json:"transactions"`
	RawText      string        `json:"rawText"`
}
