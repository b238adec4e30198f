package domain

import "time"

// DefaultCategoryName is the category every user gets at registration.
// Todos created without an explicit category land here.
const DefaultCategoryName = "default"

// Category groups a user's todos. Names are unique per user.
type Category struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
