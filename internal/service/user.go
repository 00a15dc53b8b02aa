package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/repository"
)

const minPasswordLength = 8

// UserService manages catalog operators. Users are read straight from the
// backend; they are not cached.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	Create(ctx context.Context, u model.User, password string) (model.User, error)
	Update(ctx context.Context, id int64, patch model.UserPatch) (model.User, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	repo repository.UserRepository
	cost int
}

// NewUserService creates a user service hashing with bcrypt.DefaultCost.
func NewUserService(repo repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Zero keeps the current cost.
func (s *UserServiceImpl) WithHashCost(cost int) *UserServiceImpl {
	if cost > 0 {
		s.cost = cost
	}
	return s
}

func (s *UserServiceImpl) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if u == nil {
		return model.User{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return *u, nil
}

func (s *UserServiceImpl) Create(ctx context.Context, u model.User, password string) (model.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := validateEmail(u.Email); err != nil {
		return model.User{}, err
	}

	taken, err := s.repo.ExistsByNaturalKey(ctx, u.Email)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, fmt.Errorf("%w: email %q", ErrConflict, u.Email)
	}

	u.Password, err = s.hash(password)
	if err != nil {
		return model.User{}, err
	}
	u.Active = true
	return s.repo.Save(ctx, u)
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	next := current

	if patch.Email != nil {
		next.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
		if err := validateEmail(next.Email); err != nil {
			return model.User{}, err
		}
		if next.Email != current.Email {
			taken, err := s.repo.ExistsByNaturalKey(ctx, next.Email)
			if err != nil {
				return model.User{}, err
			}
			if taken {
				return model.User{}, fmt.Errorf("%w: email %q", ErrConflict, next.Email)
			}
		}
	}
	if patch.Username != nil {
		next.Username = *patch.Username
	}
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Active != nil {
		next.Active = *patch.Active
	}
	if patch.Password != nil {
		if next.Password, err = s.hash(*patch.Password); err != nil {
			return model.User{}, err
		}
	}
	return s.repo.Update(ctx, next)
}

func (s *UserServiceImpl) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteByID(ctx, id)
}

func (s *UserServiceImpl) hash(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}
	return nil
}
