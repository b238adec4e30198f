package domain

import "time"

// Todo status values. Enabled means the item is still open.
const (
	StatusDisabled = 0 // done
	StatusEnabled  = 1 // active / undone
)

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Postgres, Redis.
type Todo struct {
	ID         int64
	UserID     int64
	CategoryID int64
	Title      string
	Content    string
	Status     int
	DueDate    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoView is a todo row joined with its category name, as served from
// paginated queries and the page cache.
type TodoView struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Status       int        `json:"status"`
	CategoryID   int64      `json:"category_id"`
	CategoryName string     `json:"category_name"`
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TodoPatch carries the optional field changes for an update. Nil means
// "leave as is".
type TodoPatch struct {
	Title      *string
	Content    *string
	CategoryID *int64
	Status     *int
	DueDate    *time.Time
}

// TodoFilter narrows paginated queries. Nil fields match everything.
type TodoFilter struct {
	CategoryID *int64
	Status     *int
}
