package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/WindyDante/Clear/internal/domain"
	"github.com/WindyDante/Clear/internal/repo"
	"github.com/WindyDante/Clear/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStatus summarizes an account for the status endpoint.
type UserStatus struct {
	Username    string
	NumOfDone   int64
	NumOfUndone int64
}

// UserService handles registration, credentials and account state.
type UserService struct {
	users      repo.UserRepo
	categories repo.CategoryRepo
	todos      repo.TodoRepo
}

// NewUserService returns a new UserService.
func NewUserService(users repo.UserRepo, categories repo.CategoryRepo, todos repo.TodoRepo) *UserService {
	return &UserService{users: users, categories: categories, todos: todos}
}

// Register creates a user with a hashed password and the "default"
// category every account starts with.
func (s *UserService) Register(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.users.Insert(ctx, dom.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	if _, err := s.categories.Insert(ctx, dom.Category{UserID: u.ID, Name: dom.DefaultCategoryName}); err != nil {
		return dom.User{}, err
	}
	return u, nil
}

// ValidateCredentials checks username and password; returns the user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Status returns the username plus done/undone todo counts.
func (s *UserService) Status(ctx context.Context, userID int64) (UserStatus, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserStatus{}, ErrUserNotFound
		}
		return UserStatus{}, err
	}
	done, err := s.todos.CountByUserAndStatus(ctx, userID, dom.StatusDisabled)
	if err != nil {
		return UserStatus{}, err
	}
	undone, err := s.todos.CountByUserAndStatus(ctx, userID, dom.StatusEnabled)
	if err != nil {
		return UserStatus{}, err
	}
	return UserStatus{Username: u.Username, NumOfDone: done, NumOfUndone: undone}, nil
}

// UpdateTheme stores the user's theme preference.
func (s *UserService) UpdateTheme(ctx context.Context, userID int64, theme int) error {
	affected, err := s.users.UpdateTheme(ctx, userID, theme)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
