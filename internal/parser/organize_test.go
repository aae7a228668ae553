package parser

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-organizer/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrganizeAccountAndRows(t *testing.T) {
	block := models.StatementBlock{
		"Account No: 1234",
		"John Doe",
		"01/02/2023 Grocery Store 45.00 955.00",
		"02/02/2023 Salary 2000.00 Cr 2955.00",
	}

	st := Organize(block)

	if st.Account.AccountNumber != "1234" {
		t.Errorf("account number: got %q, want %q", st.Account.AccountNumber, "1234")
	}
	if st.Account.AccountName != models.Unknown {
		t.Errorf("account name: got %q, want the Unknown sentinel", st.Account.AccountName)
	}
	if len(st.Transactions) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(st.Transactions))
	}

	first := st.Transactions[0]
	if first.Date != "01/02/2023" {
		t.Errorf("txn[0].Date: got %q, want %q", first.Date, "01/02/2023")
	}
	if first.Description != "Grocery Store" {
		t.Errorf("txn[0].Description: got %q, want %q", first.Description, "Grocery Store")
	}
	if !first.Amount.Equal(dec("-45.00")) {
		t.Errorf("txn[0].Amount: got %s, want -45.00", first.Amount)
	}
	if !first.HasBalance || !first.Balance.Equal(dec("955.00")) {
		t.Errorf("txn[0].Balance: got %s (has=%v), want 955.00", first.Balance, first.HasBalance)
	}
	if first.Type != models.TypeDebit {
		t.Errorf("txn[0].Type: got %q, want %q", first.Type, models.TypeDebit)
	}

	second := st.Transactions[1]
	if !second.Amount.Equal(dec("2000.00")) {
		t.Errorf("txn[1].Amount: got %s, want 2000.00", second.Amount)
	}
	if second.Type != models.TypeCredit {
		t.Errorf("txn[1].Type: got %q, want %q", second.Type, models.TypeCredit)
	}
	if !second.HasBalance || !second.Balance.Equal(dec("2955.00")) {
		t.Errorf("txn[1].Balance: got %s (has=%v), want 2955.00", second.Balance, second.HasBalance)
	}
}

func TestOrganizeContinuationLines(t *testing.T) {
	block := models.StatementBlock{
		"01/02/2023 NEFT CR 1,000.00 2,000.00",
		"REF 882211",
		"FROM SAVINGS",
		"02/02/2023 Rent 500.00 1,500.00",
	}

	st := Organize(block)
	if len(st.Transactions) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(st.Transactions))
	}

	want := "NEFT CR REF 882211 FROM SAVINGS"
	if st.Transactions[0].Description != want {
		t.Errorf("description: got %q, want %q", st.Transactions[0].Description, want)
	}
}

func TestOrganizeSkipsUnparsableRows(t *testing.T) {
	block := models.StatementBlock{
		"01/02/2023 Grocery Store 45.00 955.00",
		"15/02/2023 PENDING AUTHORISATION",
		"03/02/2023 Rent 500.00 455.00",
	}

	st := Organize(block)
	if len(st.Transactions) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(st.Transactions))
	}
	if st.Transactions[1].Description != "Rent" {
		t.Errorf("txn[1].Description: got %q, want %q", st.Transactions[1].Description, "Rent")
	}
}

func TestOrganizeBalanceProgression(t *testing.T) {
	// No indicator on the second row: the balance going up means credit.
	block := models.StatementBlock{
		"01/02/2023 Opening charge 100.00 Dr 900.00",
		"02/02/2023 Refund received 50.00 950.00",
		"03/02/2023 Card purchase 30.00 920.00",
	}

	st := Organize(block)
	if len(st.Transactions) != 3 {
		t.Fatalf("transactions: got %d, want 3", len(st.Transactions))
	}

	if st.Transactions[1].Type != models.TypeCredit {
		t.Errorf("txn[1].Type: got %q, want %q", st.Transactions[1].Type, models.TypeCredit)
	}
	if !st.Transactions[1].Amount.Equal(dec("50.00")) {
		t.Errorf("txn[1].Amount: got %s, want 50.00", st.Transactions[1].Amount)
	}
	if st.Transactions[2].Type != models.TypeDebit {
		t.Errorf("txn[2].Type: got %q, want %q", st.Transactions[2].Type, models.TypeDebit)
	}
	if !st.Transactions[2].Amount.Equal(dec("-30.00")) {
		t.Errorf("txn[2].Amount: got %s, want -30.00", st.Transactions[2].Amount)
	}
}

func TestOrganizeSingleNumericRow(t *testing.T) {
	block := models.StatementBlock{
		"01/02/2023 Card payment 45.00",
	}

	st := Organize(block)
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(st.Transactions))
	}

	txn := st.Transactions[0]
	if txn.HasBalance {
		t.Error("balance should be unknown for a single-numeric row")
	}
	if txn.BalanceString() != models.Unknown {
		t.Errorf("BalanceString: got %q, want %q", txn.BalanceString(), models.Unknown)
	}
	// No indicator and no balance: the amount stays an unsigned magnitude
	// and the ambiguity is surfaced through the empty type.
	if txn.Type != "" {
		t.Errorf("Type: got %q, want empty", txn.Type)
	}
	if !txn.Amount.Equal(dec("45.00")) {
		t.Errorf("Amount: got %s, want 45.00", txn.Amount)
	}
}

func TestOrganizeEmptyBlock(t *testing.T) {
	st := Organize(nil)

	if len(st.Transactions) != 0 {
		t.Errorf("transactions: got %d, want 0", len(st.Transactions))
	}
	if st.Account != models.UnknownAccount() {
		t.Errorf("account: got %+v, want all Unknown", st.Account)
	}
	if st.RawText != "" {
		t.Errorf("raw text: got %q, want empty", st.RawText)
	}
}

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name     string
		lines    models.StatementBlock
		expected models.AccountInfo
	}{
		{
			name: "all fields labelled",
			lines: models.StatementBlock{
				"Bank Name: State Bank of India",
				"Branch: MG Road",
				"Account Name: John Doe",
				"Account Number: 12345678",
				"Statement Period: 01/01/2024 to 31/01/2024",
			},
			expected: models.AccountInfo{
				AccountNumber:   "12345678",
				AccountName:     "John Doe",
				BankName:        "State Bank of India",
				Branch:          "MG Road",
				StatementPeriod: "01/01/2024 to 31/01/2024",
			},
		},
		{
			name: "masked account number and standalone bank line",
			lines: models.StatementBlock{
				"Metro Bank plc",
				"A/C No. XXXX-5678",
			},
			expected: models.AccountInfo{
				AccountNumber:   "XXXX-5678",
				AccountName:     models.Unknown,
				BankName:        "Metro Bank plc",
				Branch:          models.Unknown,
				StatementPeriod: models.Unknown,
			},
		},
		{
			name: "from-to period phrase",
			lines: models.StatementBlock{
				"Account Holder: Jane Roe",
				"From 01/01/2024 to 31/01/2024",
			},
			expected: models.AccountInfo{
				AccountNumber:   models.Unknown,
				AccountName:     "Jane Roe",
				BankName:        models.Unknown,
				Branch:          models.Unknown,
				StatementPeriod: "01/01/2024 to 31/01/2024",
			},
		},
		{
			name:     "nothing recognized",
			lines:    models.StatementBlock{"just some text", "more text"},
			expected: models.UnknownAccount(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractFields(tt.lines)
			if got != tt.expected {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
		})
	}
}
