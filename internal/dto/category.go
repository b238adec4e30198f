package dto

// CategoryResponse is one category in the listing.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
