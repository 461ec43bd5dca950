package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

// EntryService coordinates entry level operations backed by repositories.
type EntryService interface {
	Create(ctx context.Context, entry domain.Entry) (*domain.Entry, error)
	Update(ctx context.Context, entry domain.Entry) (*domain.Entry, error)
	Delete(ctx context.Context, entry domain.Entry) error
	ChangeStatus(ctx context.Context, entry domain.Entry, status domain.EntryStatus) (*domain.Entry, error)
	Search(ctx context.Context, filter domain.Entry) ([]domain.Entry, error)
	FindByID(ctx context.Context, id int64) (*domain.Entry, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Entry, error)
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type entryService struct {
	entries repository.EntryRepository
	log     logrus.FieldLogger
}

func NewEntryService(entries repository.EntryRepository, log logrus.FieldLogger) EntryService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &entryService{
		entries: entries,
		log:     log.WithField("component", "entry_service"),
	}
}

func (s *entryService) Create(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	if err := ValidateEntry(entry); err != nil {
		return nil, err
	}
	entry.Status = domain.EntryStatusPending

	if _, err := s.entries.Create(ctx, &entry); err != nil {
		return nil, err
	}
	s.logEntry("entry created", entry)
	return &entry, nil
}

func (s *entryService) Update(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	if !entry.HasID() {
		return nil, domain.ErrMissingID
	}
	if err := ValidateEntry(entry); err != nil {
		return nil, err
	}

	if err := s.entries.Update(ctx, &entry); err != nil {
		return nil, err
	}
	s.logEntry("entry updated", entry)
	return &entry, nil
}

func (s *entryService) Delete(ctx context.Context, entry domain.Entry) error {
	if !entry.HasID() {
		return domain.ErrMissingID
	}
	if err := s.entries.Delete(ctx, entry.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrEntryNotFound
		}
		return err
	}
	s.logEntry("entry deleted", entry)
	return nil
}

func (s *entryService) ChangeStatus(ctx context.Context, entry domain.Entry, status domain.EntryStatus) (*domain.Entry, error) {
	entry.Status = status
	return s.Update(ctx, entry)
}

func (s *entryService) Search(ctx context.Context, filter domain.Entry) ([]domain.Entry, error) {
	return s.entries.FindByExample(ctx, filter)
}

func (s *entryService) FindByID(ctx context.Context, id int64) (*domain.Entry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService) ListByUser(ctx context.Context, userID int64) ([]domain.Entry, error) {
	return s.entries.ListByUser(ctx, userID)
}

// Balance returns the user's income minus expense; a type without entries
// counts as zero.
func (s *entryService) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	income, err := s.entries.SumByTypeAndUser(ctx, userID, domain.EntryTypeIncome)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum income: %w", err)
	}
	expense, err := s.entries.SumByTypeAndUser(ctx, userID, domain.EntryTypeExpense)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expense: %w", err)
	}
	return orZero(income).Sub(orZero(expense)), nil
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func (s *entryService) logEntry(msg string, entry domain.Entry) {
	s.log.WithFields(logrus.Fields{
		"entry_id": entry.ID,
		"user_id":  entry.UserID,
		"type":     entry.Type,
		"status":   entry.Status,
	}).Info(msg)
}
