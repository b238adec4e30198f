package repo

import (
	"context"

	dom "github.com/WindyDante/Clear/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo provides todo persistence. UpdateByID and DeleteByID take the
// owner id and report affected rows: zero means the todo does not exist or
// belongs to someone else.
type TodoRepo interface {
	Repository[dom.Todo]
	FindByUser(ctx context.Context, userID int64, f dom.TodoFilter, limit, offset int) ([]dom.TodoView, error)
	CountByUser(ctx context.Context, userID int64, f dom.TodoFilter) (int64, error)
	CountByUserAndStatus(ctx context.Context, userID int64, status int) (int64, error)
	UpdateByID(ctx context.Context, userID, id int64, patch dom.TodoPatch) (int64, error)
	DeleteByID(ctx context.Context, userID, id int64) (int64, error)
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Insert(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (user_id, category_id, title, content, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, category_id, title, content, status, due_date, created_at, updated_at`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.UserID, t.CategoryID, t.Title, t.Content, t.Status, t.DueDate).Scan(
		&out.ID, &out.UserID, &out.CategoryID, &out.Title, &out.Content, &out.Status,
		&out.DueDate, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTodoRepo) FindByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		SELECT id, user_id, category_id, title, content, status, due_date, created_at, updated_at
		FROM todos WHERE id = $1`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Title, &t.Content, &t.Status,
		&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTodoRepo) FindByUser(ctx context.Context, userID int64, f dom.TodoFilter, limit, offset int) ([]dom.TodoView, error) {
	query := `
		SELECT t.id, t.title, t.content, t.status, t.category_id, c.name, t.due_date, t.created_at, t.updated_at
		FROM todos t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		  AND ($2::bigint IS NULL OR t.category_id = $2)
		  AND ($3::int IS NULL OR t.status = $3)
		ORDER BY t.created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.db.Query(ctx, query, userID, f.CategoryID, f.Status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.TodoView
	for rows.Next() {
		var v dom.TodoView
		if err := rows.Scan(&v.ID, &v.Title, &v.Content, &v.Status, &v.CategoryID,
			&v.CategoryName, &v.DueDate, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) CountByUser(ctx context.Context, userID int64, f dom.TodoFilter) (int64, error) {
	query := `
		SELECT COUNT(*) FROM todos
		WHERE user_id = $1
		  AND ($2::bigint IS NULL OR category_id = $2)
		  AND ($3::int IS NULL OR status = $3)`
	var n int64
	err := r.db.QueryRow(ctx, query, userID, f.CategoryID, f.Status).Scan(&n)
	return n, err
}

func (r *PGTodoRepo) CountByUserAndStatus(ctx context.Context, userID int64, status int) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM todos WHERE user_id = $1 AND status = $2`,
		userID, status,
	).Scan(&n)
	return n, err
}

func (r *PGTodoRepo) UpdateByID(ctx context.Context, userID, id int64, patch dom.TodoPatch) (int64, error) {
	query := `
		UPDATE todos SET
			title       = COALESCE($3, title),
			content     = COALESCE($4, content),
			category_id = COALESCE($5, category_id),
			status      = COALESCE($6, status),
			due_date    = COALESCE($7, due_date),
			updated_at  = NOW()
		WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID,
		patch.Title, patch.Content, patch.CategoryID, patch.Status, patch.DueDate)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGTodoRepo) DeleteByID(ctx context.Context, userID, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
