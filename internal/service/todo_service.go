package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/WindyDante/Clear/internal/cache"
	dom "github.com/WindyDante/Clear/internal/domain"
	"github.com/WindyDante/Clear/internal/repo"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrTodoNotFound   = errors.New("todo not found")
	ErrEmptyTitle     = errors.New("title must not be empty")
	ErrInvalidDueDate = errors.New("due_date is in the past")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CategoryResolver is the slice of CategoryService the todo service needs.
type CategoryResolver interface {
	DefaultCategoryID(ctx context.Context, userID int64) (int64, error)
	ResolveOwned(ctx context.Context, userID, categoryID int64) error
}

// TodoService performs todo mutations and paginated reads. Every write
// goes to Postgres first and only then drops the owner's cached pages, so
// a later read can at worst rebuild from post-write state.
type TodoService struct {
	repo       repo.TodoRepo
	categories CategoryResolver
	cache      *cache.PageCache
	log        *zap.Logger
	sf         singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, categories CategoryResolver, c *cache.PageCache, log *zap.Logger) *TodoService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TodoService{repo: r, categories: categories, cache: c, log: log}
}

// Create validates and persists a new todo. A missing category id falls
// back to the user's default category; an explicit one must belong to the
// user. The new row may land on any page, so all of the user's cached
// pages are dropped.
func (s *TodoService) Create(ctx context.Context, userID int64, title, content string, categoryID *int64, dueDate *time.Time) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return dom.Todo{}, ErrEmptyTitle
	}
	if dueDate != nil && dueDate.Before(time.Now().UTC()) {
		return dom.Todo{}, ErrInvalidDueDate
	}

	var catID int64
	if categoryID != nil {
		if err := s.categories.ResolveOwned(ctx, userID, *categoryID); err != nil {
			return dom.Todo{}, err
		}
		catID = *categoryID
	} else {
		id, err := s.categories.DefaultCategoryID(ctx, userID)
		if err != nil {
			return dom.Todo{}, err
		}
		catID = id
	}

	t, err := s.repo.Insert(ctx, dom.Todo{
		UserID:     userID,
		CategoryID: catID,
		Title:      title,
		Content:    content,
		Status:     dom.StatusEnabled,
		DueDate:    dueDate,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidate(ctx, userID)
	return t, nil
}

// Update applies the non-nil patch fields to the user's todo. Zero
// affected rows means the todo does not exist or is owned by someone else.
func (s *TodoService) Update(ctx context.Context, userID, id int64, patch dom.TodoPatch) error {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return ErrEmptyTitle
		}
		patch.Title = &trimmed
	}
	if patch.DueDate != nil && patch.DueDate.Before(time.Now().UTC()) {
		return ErrInvalidDueDate
	}
	if patch.CategoryID != nil {
		if err := s.categories.ResolveOwned(ctx, userID, *patch.CategoryID); err != nil {
			return err
		}
	}

	affected, err := s.repo.UpdateByID(ctx, userID, id, patch)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	s.invalidate(ctx, userID)
	return nil
}

// Delete removes the user's todo.
func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	affected, err := s.repo.DeleteByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	s.invalidate(ctx, userID)
	return nil
}

// GetByID returns one of the user's todos.
func (s *TodoService) GetByID(ctx context.Context, userID, id int64) (dom.Todo, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrTodoNotFound
		}
		return dom.Todo{}, err
	}
	if t.UserID != userID {
		return dom.Todo{}, ErrTodoNotFound
	}
	return t, nil
}

// PageQuery returns one page of the user's todos, newest first, cache-aside.
// Concurrent misses for the same fingerprint are coalesced so the store
// sees one query per cold page.
func (s *TodoService) PageQuery(ctx context.Context, userID int64, page, pageSize int, filter dom.TodoFilter) (cache.CachedPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	fp := cache.Fingerprint{UserID: userID, Page: page, PageSize: pageSize, Filter: filter}
	if s.cache == nil {
		return s.queryPage(ctx, userID, page, pageSize, filter)
	}

	v, err, _ := s.sf.Do(fp.Key(), func() (interface{}, error) {
		cached, ok, err := s.cache.Get(ctx, fp)
		if err != nil {
			s.log.Warn("page cache read failed", zap.Int64("user_id", userID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
		result, err := s.queryPage(ctx, userID, page, pageSize, filter)
		if err != nil {
			return cache.CachedPage{}, err
		}
		if err := s.cache.Put(ctx, fp, result); err != nil {
			s.log.Warn("page cache write failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return result, nil
	})
	if err != nil {
		return cache.CachedPage{}, err
	}
	return v.(cache.CachedPage), nil
}

func (s *TodoService) queryPage(ctx context.Context, userID int64, page, pageSize int, filter dom.TodoFilter) (cache.CachedPage, error) {
	total, err := s.repo.CountByUser(ctx, userID, filter)
	if err != nil {
		return cache.CachedPage{}, err
	}
	items, err := s.repo.FindByUser(ctx, userID, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return cache.CachedPage{}, err
	}
	return cache.CachedPage{Total: total, Items: items}, nil
}

// invalidate drops every cached page for userID. The write has already
// committed, so a failure here must not fail the request: retry once, then
// log and let the entry TTL correct the cache.
func (s *TodoService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	err := s.cache.InvalidateUser(ctx, userID)
	if err == nil {
		return
	}
	s.log.Warn("cache invalidation failed, retrying", zap.Int64("user_id", userID), zap.Error(err))
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.log.Error("cache invalidation failed, stale pages until TTL",
			zap.Int64("user_id", userID), zap.Error(err))
	}
}
