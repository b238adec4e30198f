package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/WindyDante/Clear/internal/cache"
	dom "github.com/WindyDante/Clear/internal/domain"

	"github.com/jackc/pgx/v5"
)

// memTodoRepo is an in-memory repo.TodoRepo. Newest-first ordering falls
// out of reverse insertion order.
type memTodoRepo struct {
	mu            sync.Mutex
	nextID        int64
	todos         []dom.Todo
	categoryNames map[int64]string

	inserts     int
	pageQueries int
}

func newMemTodoRepo(categoryNames map[int64]string) *memTodoRepo {
	if categoryNames == nil {
		categoryNames = map[int64]string{}
	}
	return &memTodoRepo{categoryNames: categoryNames}
}

func (r *memTodoRepo) Insert(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.todos = append(r.todos, t)
	return t, nil
}

func (r *memTodoRepo) FindByID(_ context.Context, id int64) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.todos {
		if t.ID == id {
			return t, nil
		}
	}
	return dom.Todo{}, pgx.ErrNoRows
}

func (r *memTodoRepo) matches(t dom.Todo, userID int64, f dom.TodoFilter) bool {
	if t.UserID != userID {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	return true
}

func (r *memTodoRepo) FindByUser(_ context.Context, userID int64, f dom.TodoFilter, limit, offset int) ([]dom.TodoView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pageQueries++
	var all []dom.TodoView
	for i := len(r.todos) - 1; i >= 0; i-- {
		t := r.todos[i]
		if !r.matches(t, userID, f) {
			continue
		}
		all = append(all, dom.TodoView{
			ID:           t.ID,
			Title:        t.Title,
			Content:      t.Content,
			Status:       t.Status,
			CategoryID:   t.CategoryID,
			CategoryName: r.categoryNames[t.CategoryID],
			DueDate:      t.DueDate,
			CreatedAt:    t.CreatedAt,
			UpdatedAt:    t.UpdatedAt,
		})
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memTodoRepo) CountByUser(_ context.Context, userID int64, f dom.TodoFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.todos {
		if r.matches(t, userID, f) {
			n++
		}
	}
	return n, nil
}

func (r *memTodoRepo) CountByUserAndStatus(_ context.Context, userID int64, status int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.todos {
		if t.UserID == userID && t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memTodoRepo) UpdateByID(_ context.Context, userID, id int64, patch dom.TodoPatch) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.todos {
		if t.ID != id || t.UserID != userID {
			continue
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Content != nil {
			t.Content = *patch.Content
		}
		if patch.CategoryID != nil {
			t.CategoryID = *patch.CategoryID
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.DueDate != nil {
			t.DueDate = patch.DueDate
		}
		t.UpdatedAt = time.Now()
		r.todos[i] = t
		return 1, nil
	}
	return 0, nil
}

func (r *memTodoRepo) DeleteByID(_ context.Context, userID, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.todos {
		if t.ID == id && t.UserID == userID {
			r.todos = append(r.todos[:i], r.todos[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// flakyBackend wraps a MemoryBackend and fails selected operations, for
// exercising the degraded-cache paths.
type flakyBackend struct {
	*cache.MemoryBackend
	failGet  bool
	failScan bool

	scanCalls int
}

func newFlakyBackend() *flakyBackend {
	return &flakyBackend{MemoryBackend: cache.NewMemoryBackend()}
}

func (b *flakyBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if b.failGet {
		return nil, false, errors.New("backend down")
	}
	return b.MemoryBackend.Get(ctx, key)
}

func (b *flakyBackend) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	b.scanCalls++
	if b.failScan {
		return nil, errors.New("backend down")
	}
	return b.MemoryBackend.KeysMatching(ctx, pattern)
}

// fakeResolver is a canned CategoryResolver.
type fakeResolver struct {
	defaultIDs map[int64]int64 // userID -> default category id
	owned      map[int64]int64 // categoryID -> owner userID
}

func (f *fakeResolver) DefaultCategoryID(_ context.Context, userID int64) (int64, error) {
	id, ok := f.defaultIDs[userID]
	if !ok {
		return 0, ErrCategoryNotFound
	}
	return id, nil
}

func (f *fakeResolver) ResolveOwned(_ context.Context, userID, categoryID int64) error {
	if f.owned[categoryID] != userID {
		return ErrCategoryNotFound
	}
	return nil
}

// fakeUserRepo implements repo.UserRepo with function fields.
type fakeUserRepo struct {
	InsertFunc         func(ctx context.Context, u dom.User) (dom.User, error)
	FindByIDFunc       func(ctx context.Context, id int64) (dom.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (dom.User, error)
	UpdateThemeFunc    func(ctx context.Context, userID int64, theme int) (int64, error)
}

func (f *fakeUserRepo) Insert(ctx context.Context, u dom.User) (dom.User, error) {
	return f.InsertFunc(ctx, u)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (dom.User, error) {
	return f.FindByIDFunc(ctx, id)
}
func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (dom.User, error) {
	return f.FindByUsernameFunc(ctx, username)
}
func (f *fakeUserRepo) UpdateTheme(ctx context.Context, userID int64, theme int) (int64, error) {
	return f.UpdateThemeFunc(ctx, userID, theme)
}

// fakeCategoryRepo implements repo.CategoryRepo with function fields.
type fakeCategoryRepo struct {
	InsertFunc            func(ctx context.Context, c dom.Category) (dom.Category, error)
	FindByIDFunc          func(ctx context.Context, id int64) (dom.Category, error)
	FindByUserFunc        func(ctx context.Context, userID int64) ([]dom.Category, error)
	FindByUserAndNameFunc func(ctx context.Context, userID int64, name string) (dom.Category, error)
}

func (f *fakeCategoryRepo) Insert(ctx context.Context, c dom.Category) (dom.Category, error) {
	return f.InsertFunc(ctx, c)
}
func (f *fakeCategoryRepo) FindByID(ctx context.Context, id int64) (dom.Category, error) {
	return f.FindByIDFunc(ctx, id)
}
func (f *fakeCategoryRepo) FindByUser(ctx context.Context, userID int64) ([]dom.Category, error) {
	return f.FindByUserFunc(ctx, userID)
}
func (f *fakeCategoryRepo) FindByUserAndName(ctx context.Context, userID int64, name string) (dom.Category, error) {
	return f.FindByUserAndNameFunc(ctx, userID, name)
}
