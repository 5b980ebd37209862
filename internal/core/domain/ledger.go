package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementSource discriminates where a ledger movement originated.
type MovementSource string

const (
	MovementJournal MovementSource = "JOURNAL"
	MovementOpening MovementSource = "OPENING"
)

// LedgerMovement is the common shape shared by posted journal lines and
// posted opening-batch lines, so merging and sorting the two sources is a
// single code path. Opening movements carry the period start date and the
// batch number as reference.
type LedgerMovement struct {
	Source      MovementSource  `json:"source"`
	Date        time.Time       `json:"date"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerRow is one output row of a ledger query carrying the running balance
// after the row's movement has been applied. The synthetic opening row has
// IsOpening set and its balance split into the debit or credit column by sign.
type LedgerRow struct {
	Date           time.Time       `json:"date"`
	IsOpening      bool            `json:"isOpening"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerSummary aggregates the transaction rows of a ledger query. The
// totals exclude the synthetic opening row. IsBalanced compares total debit
// and credit within tolerance; it is meaningful only for multi-account
// exports, a single account's totals need not match.
type LedgerSummary struct {
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	IsBalanced     bool            `json:"isBalanced"`
}

// LedgerReport is the full result of a ledger query for one account.
type LedgerReport struct {
	Account Account       `json:"account"`
	Rows    []LedgerRow   `json:"rows"`
	Summary LedgerSummary `json:"summary"`
}

// AccountSummary is one row of the as-of account list: the account and its
// combined journal plus posted-opening balance (debit minus credit).
type AccountSummary struct {
	AccountID      string                `json:"accountID"`
	Code           string                `json:"code"`
	Name           string                `json:"name"`
	Classification AccountClassification `json:"classification"`
	Balance        decimal.Decimal       `json:"balance"`
}
