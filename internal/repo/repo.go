package repo

import "context"

// Repository is the generic persistence surface shared by all entity repos.
// Concrete repos embed it and add their entity-specific queries; services
// compose repos rather than inheriting a base implementation.
type Repository[E any] interface {
	Insert(ctx context.Context, e E) (E, error)
	FindByID(ctx context.Context, id int64) (E, error)
}
