package domain

import "time"

// JournalStatus indicates the state of a journal entry. Only POSTED journals
// are visible to ledger aggregation.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple
// transaction lines. Journals are immutable once posted; this core never
// mutates journal data after intake.
type Journal struct {
	JournalID   string        `json:"journalID"`
	CompanyID   string        `json:"companyID"`
	JournalDate time.Time     `json:"journalDate"`
	Reference   string        `json:"reference"`
	Description string        `json:"description"`
	Status      JournalStatus `json:"status"`
	AuditFields
}
