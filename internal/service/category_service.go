package service

import (
	"context"
	"errors"

	dom "github.com/WindyDante/Clear/internal/domain"
	"github.com/WindyDante/Clear/internal/repo"

	"github.com/jackc/pgx/v5"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryService resolves category ids for the current user. Pure
// read-through, no caching: categories change far less often than todo
// pages and are read rarely.
type CategoryService struct {
	repo repo.CategoryRepo
}

// NewCategoryService returns a new CategoryService.
func NewCategoryService(r repo.CategoryRepo) *CategoryService {
	return &CategoryService{repo: r}
}

// DefaultCategoryID returns the id of the user's "default" category.
// Registration always creates one, so ErrCategoryNotFound here means the
// account is broken, not that the request was.
func (s *CategoryService) DefaultCategoryID(ctx context.Context, userID int64) (int64, error) {
	c, err := s.repo.FindByUserAndName(ctx, userID, dom.DefaultCategoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCategoryNotFound
		}
		return 0, err
	}
	return c.ID, nil
}

// ResolveOwned checks that categoryID exists and belongs to userID.
func (s *CategoryService) ResolveOwned(ctx context.Context, userID, categoryID int64) error {
	c, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return err
	}
	if c.UserID != userID {
		return ErrCategoryNotFound
	}
	return nil
}

// Categories lists the user's categories, oldest first.
func (s *CategoryService) Categories(ctx context.Context, userID int64) ([]dom.Category, error) {
	return s.repo.FindByUser(ctx, userID)
}
