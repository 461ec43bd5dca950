package service

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"finance-tracker/internal/domain"
)

// MockEntryRepository implements repository.EntryRepository for testing.
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.Entry) (int64, error) {
	args := m.Called(ctx, entry)
	if id := args.Get(0).(int64); id != 0 {
		entry.ID = id
	}
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*domain.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntryRepository) FindByExample(ctx context.Context, template domain.Entry) ([]domain.Entry, error) {
	args := m.Called(ctx, template)
	if e, ok := args.Get(0).([]domain.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Entry, error) {
	args := m.Called(ctx, userID)
	if e, ok := args.Get(0).([]domain.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntryRepository) SumByTypeAndUser(ctx context.Context, userID int64, typ domain.EntryType) (decimal.NullDecimal, error) {
	args := m.Called(ctx, userID, typ)
	return args.Get(0).(decimal.NullDecimal), args.Error(1)
}

// MockUserRepository implements repository.UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	args := m.Called(ctx, user)
	if id := args.Get(0).(int64); id != 0 {
		user.ID = id
	}
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
