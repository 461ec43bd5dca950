package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/domain"
)

// EntryRepository exposes persistence operations for Entry records.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) (int64, error)
	// Update stores entry under its id, inserting the row when it is missing.
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)
	// FindByExample returns entries whose populated template fields match.
	// Description matches case-insensitively by substring, other fields exactly.
	FindByExample(ctx context.Context, template domain.Entry) ([]domain.Entry, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Entry, error)
	// SumByTypeAndUser is invalid (Valid=false) when the user has no entry of typ.
	SumByTypeAndUser(ctx context.Context, userID int64, typ domain.EntryType) (decimal.NullDecimal, error)
}
