package restapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/internal/domain/repository"
)

// Collection maps one backend collection onto repository.Collection:
// GET /{name}, POST /{name}, PUT /{name}/{id}, DELETE /{name}/{id}.
type Collection[T entity.Record] struct {
	client *Client
	name   string
}

func NewCollection[T entity.Record](client *Client, name string) *Collection[T] {
	return &Collection[T]{client: client, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := c.client.do(ctx, c.name, http.MethodGet, c.client.url(c.name), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Create inserts rec; the backend assigns the id, so the response body is ignored.
func (c *Collection[T]) Create(ctx context.Context, rec T) error {
	return c.client.do(ctx, c.name, http.MethodPost, c.client.url(c.name), rec, nil)
}

func (c *Collection[T]) Replace(ctx context.Context, id int, rec T) error {
	return c.client.do(ctx, c.name, http.MethodPut, c.client.url(c.name, strconv.Itoa(id)), rec, nil)
}

func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	return c.client.do(ctx, c.name, http.MethodDelete, c.client.url(c.name, strconv.Itoa(id)), nil, nil)
}

var (
	_ repository.Collection[entity.Country]  = (*Collection[entity.Country])(nil)
	_ repository.Collection[entity.Employee] = (*Collection[entity.Employee])(nil)
)

// Collections bundles one typed collection per backend endpoint.
type Collections struct {
	Countries *Collection[entity.Country]
	States    *Collection[entity.State]
	Districts *Collection[entity.District]
	Languages *Collection[entity.Language]
	Roles     *Collection[entity.Role]
	UserRoles *Collection[entity.UserRole]
	Users     *Collection[entity.User]
	Employees *Collection[entity.Employee]
}

func NewCollections(client *Client) *Collections {
	return &Collections{
		Countries: NewCollection[entity.Country](client, Countries),
		States:    NewCollection[entity.State](client, States),
		Districts: NewCollection[entity.District](client, Districts),
		Languages: NewCollection[entity.Language](client, Languages),
		Roles:     NewCollection[entity.Role](client, Roles),
		UserRoles: NewCollection[entity.UserRole](client, UserRoles),
		Users:     NewCollection[entity.User](client, Users),
		Employees: NewCollection[entity.Employee](client, Employees),
	}
}
