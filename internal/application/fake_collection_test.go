package application

import (
	"context"
	"errors"
	"sync"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
)

var errBackend = errors.New("backend unavailable")

// fakeCollection is an in-memory repository.Collection that assigns ids on
// Create and counts every call.
type fakeCollection[T entity.Record] struct {
	mu      sync.Mutex
	name    string
	records []T
	nextID  int
	setID   func(T, int) T

	listErr, createErr, replaceErr, deleteErr error
	listHook                                  func(call int)

	lists, creates, replaces, deletes int
}

func newFake[T entity.Record](name string, setID func(T, int) T, records ...T) *fakeCollection[T] {
	f := &fakeCollection[T]{name: name, setID: setID}
	for _, r := range records {
		f.records = append(f.records, r)
		if r.Key() > f.nextID {
			f.nextID = r.Key()
		}
	}
	return f
}

func (f *fakeCollection[T]) Name() string { return f.name }

func (f *fakeCollection[T]) List(context.Context) ([]T, error) {
	f.mu.Lock()
	f.lists++
	call, hook := f.lists, f.listHook
	err := f.listErr
	out := append([]T{}, f.records...)
	f.mu.Unlock()
	if hook != nil {
		hook(call)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeCollection[T]) Create(_ context.Context, rec T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	f.records = append(f.records, f.setID(rec, f.nextID))
	return nil
}

func (f *fakeCollection[T]) Replace(_ context.Context, id int, rec T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaces++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	for i, r := range f.records {
		if r.Key() == id {
			f.records[i] = f.setID(rec, id)
			return nil
		}
	}
	return errBackend
}

func (f *fakeCollection[T]) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.records {
		if r.Key() == id {
			f.records = append(f.records[:i:i], f.records[i+1:]...)
			return nil
		}
	}
	return errBackend
}

func (f *fakeCollection[T]) calls() (lists, creates, replaces, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists, f.creates, f.replaces, f.deletes
}

func countryID(c entity.Country, id int) entity.Country { c.ID = id; return c }
func stateID(s entity.State, id int) entity.State       { s.ID = id; return s }
func roleID(r entity.Role, id int) entity.Role          { r.ID = id; return r }
func userRoleID(u entity.UserRole, id int) entity.UserRole {
	u.ID = id
	return u
}
func userID(u entity.User, id int) entity.User { u.ID = id; return u }
