package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/WindyDante/Clear/internal/domain"
)

// DueDate parses due_date from JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC.
type DueDate struct{ t *time.Time }

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("due_date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DueDate) Ptr() *time.Time { return d.t }

type CreateTodoRequest struct {
	Title      string  `json:"title" binding:"required,min=1,max=120"`
	Content    string  `json:"content" binding:"max=1000"`
	CategoryID *int64  `json:"category_id"` // optional: defaults to the user's "default" category
	DueDate    DueDate `json:"due_date"`    // optional: "2026-02-19" or RFC3339
}

type UpdateTodoRequest struct {
	Title      *string  `json:"title" binding:"omitempty,min=1,max=120"`
	Content    *string  `json:"content" binding:"omitempty,max=1000"`
	CategoryID *int64   `json:"category_id"`
	Status     *int     `json:"status" binding:"omitempty,oneof=0 1"`
	DueDate    *DueDate `json:"due_date"` // nil = keep, value = set
}

type TodoResponse struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Status     int        `json:"status"`
	CategoryID int64      `json:"category_id"`
	DueDate    *time.Time `json:"due_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PageResponse is one page of todos plus the total match count. Its shape
// is exactly what the page cache stores.
type PageResponse struct {
	Total int64          `json:"total"`
	Items []dom.TodoView `json:"items"`
}
