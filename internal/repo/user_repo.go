package repo

import (
	"context"

	dom "github.com/WindyDante/Clear/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Repository[dom.User]
	FindByUsername(ctx context.Context, username string) (dom.User, error)
	UpdateTheme(ctx context.Context, userID int64, theme int) (int64, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) Insert(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (username, password_hash, theme)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, theme, created_at, updated_at`
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.Username, u.PasswordHash, u.Theme).Scan(
		&out.ID, &out.Username, &out.PasswordHash, &out.Theme, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGUserRepo) FindByID(ctx context.Context, id int64) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, theme, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Theme, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *PGUserRepo) FindByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, theme, created_at, updated_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Theme, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *PGUserRepo) UpdateTheme(ctx context.Context, userID int64, theme int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET theme = $2, updated_at = NOW() WHERE id = $1`,
		userID, theme,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
