package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, user domain.User) (*domain.User, error)
	ValidateEmail(ctx context.Context, email string) error
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users      repository.UserRepository
	bcryptCost int
	log        logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, bcryptCost int, log logrus.FieldLogger) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &userService{
		users:      users,
		bcryptCost: bcryptCost,
		log:        log.WithField("component", "user_service"),
	}
}

// Register stores a new user after checking that no other user has the same
// email. The check and the insert are separate statements, so two racing
// registrations may both succeed.
func (s *userService) Register(ctx context.Context, user domain.User) (*domain.User, error) {
	if err := s.ValidateEmail(ctx, user.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""

	if _, err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return sanitizeUser(&user), nil
}

func (s *userService) ValidateEmail(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailTaken
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrIncorrectPassword
	}

	return sanitizeUser(user), nil
}

func (s *userService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
