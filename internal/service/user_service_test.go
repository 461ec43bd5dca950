package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

func storedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: 1, Name: "Maria", Email: "test@test.com", PasswordHash: string(hash)}
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, bcrypt.MinCost, quietLogger())
		repo.On("GetByEmail", ctx, "test@test.com").Return(storedUser(t, "123"), nil).Once()

		user, err := svc.Authenticate(ctx, "test@test.com", "123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "test@test.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		assert.Empty(t, user.Password)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, bcrypt.MinCost, quietLogger())
		repo.On("GetByEmail", ctx, "test@test.com").Return(storedUser(t, "1234"), nil).Once()

		_, err := svc.Authenticate(ctx, "test@test.com", "123")
		assert.ErrorIs(t, err, domain.ErrIncorrectPassword)
		assert.Equal(t, domain.KindAuthentication, domain.KindOf(err))
	})

	t.Run("password is not trimmed", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, bcrypt.MinCost, quietLogger())
		repo.On("GetByEmail", ctx, "test@test.com").Return(storedUser(t, "123"), nil).Once()

		_, err := svc.Authenticate(ctx, "test@test.com", " 123")
		assert.ErrorIs(t, err, domain.ErrIncorrectPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, bcrypt.MinCost, quietLogger())
		repo.On("GetByEmail", ctx, "nobody@test.com").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Authenticate(ctx, "nobody@test.com", "123")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.NotErrorIs(t, err, domain.ErrIncorrectPassword)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, bcrypt.MinCost, quietLogger())
		dbErr := errors.New("locked")
		repo.On("GetByEmail", ctx, "test@test.com").Return(nil, dbErr).Once()

		_, err := svc.Authenticate(ctx, "test@test.com", "123")
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
	})
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, bcrypt.MinCost, quietLogger())
		repo.On("ExistsByEmail", ctx, "email@email.com").Return(false, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Password == "" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("senha")) == nil
		})).Return(int64(1), nil).Once()

		user, err := svc.Register(ctx, domain.User{Name: "nome", Email: "email@email.com", Password: "senha"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "nome", user.Name)
		assert.Equal(t, "email@email.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, bcrypt.MinCost, quietLogger())
		repo.On("ExistsByEmail", ctx, "email@email.com").Return(false, nil).Once()

		_, err := svc.Register(ctx, domain.User{Email: "email@email.com", Password: strings.Repeat("a", 73)})
		assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email does not insert", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, bcrypt.MinCost, quietLogger())
		repo.On("ExistsByEmail", ctx, "email@email.com").Return(true, nil).Once()

		_, err := svc.Register(ctx, domain.User{Email: "email@email.com", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		assert.Equal(t, domain.KindDuplicateEmail, domain.KindOf(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_ValidateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo, bcrypt.MinCost, quietLogger())

	repo.On("ExistsByEmail", ctx, "free@test.com").Return(false, nil).Once()
	repo.On("ExistsByEmail", ctx, "taken@test.com").Return(true, nil).Once()

	assert.NoError(t, svc.ValidateEmail(ctx, "free@test.com"))
	assert.ErrorIs(t, svc.ValidateEmail(ctx, "taken@test.com"), domain.ErrEmailTaken)
}

func TestUserService_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo, bcrypt.MinCost, quietLogger())

	repo.On("GetByID", ctx, int64(1)).Return(storedUser(t, "x"), nil).Once()
	repo.On("GetByID", ctx, int64(2)).Return(nil, repository.ErrNotFound).Once()

	user, err := svc.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.FindByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, domain.KindAuthentication, domain.KindOf(err))
}
