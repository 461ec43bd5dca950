package service

import (
	"strings"

	"finance-tracker/internal/domain"
)

// ValidateEntry checks the fields of entry in a fixed order and returns the
// first failure: description, month, year, amount, type. A year is valid when
// it is written with exactly four digits, so negative years always fail.
func ValidateEntry(entry domain.Entry) error {
	if strings.TrimSpace(entry.Description) == "" {
		return domain.ErrInvalidDescription
	}
	if entry.Month == nil || *entry.Month < 1 || *entry.Month > 12 {
		return domain.ErrInvalidMonth
	}
	if entry.Year == nil || *entry.Year < 1000 || *entry.Year > 9999 {
		return domain.ErrInvalidYear
	}
	if entry.Amount == nil || !entry.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !entry.Type.Valid() {
		return domain.ErrInvalidType
	}
	return nil
}
