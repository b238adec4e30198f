package repo

import (
	"context"

	dom "github.com/WindyDante/Clear/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepo provides category persistence.
type CategoryRepo interface {
	Repository[dom.Category]
	FindByUser(ctx context.Context, userID int64) ([]dom.Category, error)
	FindByUserAndName(ctx context.Context, userID int64, name string) (dom.Category, error)
}

// PGCategoryRepo implements CategoryRepo with Postgres.
type PGCategoryRepo struct {
	db *pgxpool.Pool
}

// NewPGCategoryRepo returns a new PGCategoryRepo.
func NewPGCategoryRepo(db *pgxpool.Pool) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

func (r *PGCategoryRepo) Insert(ctx context.Context, c dom.Category) (dom.Category, error) {
	query := `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at, updated_at`
	var out dom.Category
	err := r.db.QueryRow(ctx, query, c.UserID, c.Name).Scan(
		&out.ID, &out.UserID, &out.Name, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGCategoryRepo) FindByID(ctx context.Context, id int64) (dom.Category, error) {
	var c dom.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM categories WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PGCategoryRepo) FindByUser(ctx context.Context, userID int64) ([]dom.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM categories
		 WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Category
	for rows.Next() {
		var c dom.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PGCategoryRepo) FindByUserAndName(ctx context.Context, userID int64, name string) (dom.Category, error) {
	var c dom.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM categories
		 WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
