package service

import (
	"context"
	"errors"
	"testing"

	dom "github.com/WindyDante/Clear/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_CreatesUserAndDefaultCategory(t *testing.T) {
	ctx := context.Background()

	var createdCategory *dom.Category
	users := &fakeUserRepo{
		InsertFunc: func(_ context.Context, u dom.User) (dom.User, error) {
			if u.Username != "alice" {
				t.Errorf("Insert username = %q; want alice", u.Username)
			}
			if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
				t.Errorf("stored hash does not match password: %v", err)
			}
			u.ID = 1
			return u, nil
		},
	}
	categories := &fakeCategoryRepo{
		InsertFunc: func(_ context.Context, c dom.Category) (dom.Category, error) {
			createdCategory = &c
			c.ID = 7
			return c, nil
		},
	}
	svc := NewUserService(users, categories, newMemTodoRepo(nil))

	u, err := svc.Register(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("user ID = %d; want 1", u.ID)
	}
	if createdCategory == nil {
		t.Fatal("no default category created")
	}
	if createdCategory.UserID != 1 || createdCategory.Name != dom.DefaultCategoryName {
		t.Fatalf("default category = %+v; want user 1, name %q", createdCategory, dom.DefaultCategoryName)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := &fakeUserRepo{
		InsertFunc: func(_ context.Context, u dom.User) (dom.User, error) {
			return dom.User{}, &pgconn.PgError{Code: "23505"}
		},
	}
	svc := NewUserService(users, &fakeCategoryRepo{}, newMemTodoRepo(nil))

	if _, err := svc.Register(context.Background(), "alice", "pw"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Register error = %v; want ErrUsernameTaken", err)
	}
}

func TestRegister_EmptyCredentials(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, &fakeCategoryRepo{}, newMemTodoRepo(nil))

	for _, tc := range []struct{ username, password string }{
		{"", "pw"},
		{"   ", "pw"},
		{"alice", ""},
	} {
		if _, err := svc.Register(context.Background(), tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Register(%q, %q) error = %v; want ErrInvalidCredentials", tc.username, tc.password, err)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	users := &fakeUserRepo{
		FindByUsernameFunc: func(_ context.Context, username string) (dom.User, error) {
			if username != "alice" {
				return dom.User{}, pgx.ErrNoRows
			}
			return dom.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}
	svc := NewUserService(users, &fakeCategoryRepo{}, newMemTodoRepo(nil))
	ctx := context.Background()

	u, err := svc.ValidateCredentials(ctx, "alice", "right")
	if err != nil {
		t.Fatalf("ValidateCredentials: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("user ID = %d; want 1", u.ID)
	}

	if _, err := svc.ValidateCredentials(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v; want ErrInvalidCredentials", err)
	}
	if _, err := svc.ValidateCredentials(ctx, "nobody", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v; want ErrInvalidCredentials", err)
	}
}

func TestStatus_CountsDoneAndUndone(t *testing.T) {
	ctx := context.Background()
	todos := newMemTodoRepo(nil)
	for i, status := range []int{dom.StatusEnabled, dom.StatusEnabled, dom.StatusDisabled} {
		if _, err := todos.Insert(ctx, dom.Todo{UserID: 1, Title: "t", Status: status, CategoryID: int64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	// Another user's todos must not leak into the counts.
	if _, err := todos.Insert(ctx, dom.Todo{UserID: 2, Title: "x", Status: dom.StatusEnabled}); err != nil {
		t.Fatal(err)
	}

	users := &fakeUserRepo{
		FindByIDFunc: func(_ context.Context, id int64) (dom.User, error) {
			return dom.User{ID: id, Username: "alice"}, nil
		},
	}
	svc := NewUserService(users, &fakeCategoryRepo{}, todos)

	st, err := svc.Status(ctx, 1)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Username != "alice" || st.NumOfUndone != 2 || st.NumOfDone != 1 {
		t.Fatalf("Status = %+v; want alice 2 undone / 1 done", st)
	}
}

func TestUpdateTheme_UnknownUser(t *testing.T) {
	users := &fakeUserRepo{
		UpdateThemeFunc: func(_ context.Context, userID int64, theme int) (int64, error) {
			return 0, nil
		},
	}
	svc := NewUserService(users, &fakeCategoryRepo{}, newMemTodoRepo(nil))

	if err := svc.UpdateTheme(context.Background(), 99, 1); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("UpdateTheme error = %v; want ErrUserNotFound", err)
	}
}
