package repository

import (
	"context"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
)

// Collection is a remote list of records addressed by id.
// List always returns the whole collection in the backend's order.
type Collection[T entity.Record] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) error
	Replace(ctx context.Context, id int, rec T) error
	Delete(ctx context.Context, id int) error
}

// Lister is the read-only part of a Collection, enough for reference lists.
type Lister[T entity.Record] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
}
