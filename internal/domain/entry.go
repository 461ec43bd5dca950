package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

type EntryStatus string

const (
	EntryStatusPending  EntryStatus = "PENDING"
	EntryStatusSettled  EntryStatus = "SETTLED"
	EntryStatusCanceled EntryStatus = "CANCELED"
)

// Valid reports whether s is one of the known entry statuses.
func (s EntryStatus) Valid() bool {
	switch s {
	case EntryStatusPending, EntryStatusSettled, EntryStatusCanceled:
		return true
	}
	return false
}

// ParseEntryStatus resolves a status name case-insensitively.
func ParseEntryStatus(raw string) (EntryStatus, bool) {
	status := EntryStatus(strings.ToUpper(strings.TrimSpace(raw)))
	return status, status.Valid()
}

// ParseEntryType resolves a type name case-insensitively.
func ParseEntryType(raw string) (EntryType, bool) {
	typ := EntryType(strings.ToUpper(strings.TrimSpace(raw)))
	return typ, typ.Valid()
}

// Entry is a single income or expense record owned by a user.
//
// Optional fields are pointers (or the zero value for ID, Type and Status) so
// that a partially filled Entry can travel as a search template and so that
// an invalid Entry can exist until it is validated before persistence.
type Entry struct {
	ID           int64
	Description  string
	Month        *int
	Year         *int
	Amount       *decimal.Decimal
	Type         EntryType
	Status       EntryStatus
	UserID       int64
	RegisteredAt *time.Time
}

// NewEntry builds an entry from its required attributes. It performs no
// validation.
func NewEntry(userID int64, description string, month, year int, amount decimal.Decimal, typ EntryType) Entry {
	return Entry{
		Description: description,
		Month:       &month,
		Year:        &year,
		Amount:      &amount,
		Type:        typ,
		UserID:      userID,
	}
}

// HasID reports whether the entry was already assigned an identifier.
func (e Entry) HasID() bool {
	return e.ID != 0
}
