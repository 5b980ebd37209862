package domain

// AccountClassification defines the fundamental accounting category of an
// account. It drives the sign convention for every aggregate built on top.
type AccountClassification string

const (
	Asset     AccountClassification = "ASSET"
	Liability AccountClassification = "LIABILITY"
	Equity    AccountClassification = "EQUITY"
	Revenue   AccountClassification = "REVENUE"
	Expense   AccountClassification = "EXPENSE"
)

// AccountTypeCode refines a classification for statement grouping.
type AccountTypeCode string

// TypeCodeCOGS tags expense accounts that belong to the cost-of-goods-sold
// section of the income statement rather than the operating expense section.
const TypeCodeCOGS AccountTypeCode = "COGS"

// Account represents a chart-of-accounts node within the core domain.
// Accounts are created by chart-of-accounts setup and are immutable once
// referenced by a posted journal line.
type Account struct {
	AccountID         string                `json:"accountID"`
	CompanyID         string                `json:"companyID"`
	Code              string                `json:"code"`
	Name              string                `json:"name"`
	NameLocal         string                `json:"nameLocal"`
	Classification    AccountClassification `json:"classification"`
	TypeCode          AccountTypeCode       `json:"typeCode"`
	InIncomeStatement bool                  `json:"inIncomeStatement"` // report-group membership
	IsGroup           bool                  `json:"isGroup"`           // header node, carries no balance
	Level             int                   `json:"level"`
	ParentAccountID   string                `json:"parentAccountID"`
	IsActive          bool                  `json:"isActive"`
	AuditFields
}
