package application

import (
	"context"
	"strconv"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/internal/domain/repository"
)

// Reference list names shared by screen definitions and handlers.
const (
	RefCountries = "countries"
	RefStates    = "states"
	RefDistricts = "districts"
	RefLanguages = "languages"
	RefRoles     = "roles"
	RefUsers     = "users"
	RefGenders   = "genders"
)

// Refs holds the reference lists one screen loaded, by name.
// Every screen keeps its own copy; nothing is shared between screens.
type Refs map[string][]entity.Option

// Lookup finds the option with id in the named list.
func (r Refs) Lookup(name string, id int) (entity.Option, bool) {
	for _, o := range r[name] {
		if o.ID == id {
			return o, true
		}
	}
	return entity.Option{}, false
}

// Has reports whether id is present in the named list.
func (r Refs) Has(name string, id int) bool {
	_, ok := r.Lookup(name, id)
	return ok
}

// NameOf resolves id to its display name, falling back to the raw id.
func (r Refs) NameOf(name string, id int) string {
	if o, ok := r.Lookup(name, id); ok {
		return o.Name
	}
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

func (r Refs) clone() Refs {
	out := make(Refs, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ReferenceSource loads one reference list for a screen.
type ReferenceSource struct {
	Name string
	Load func(ctx context.Context) ([]entity.Option, error)
}

// ReferenceFrom reads a backend collection as options.
func ReferenceFrom[T entity.Referable](name string, l repository.Lister[T]) ReferenceSource {
	return ReferenceSource{
		Name: name,
		Load: func(ctx context.Context) ([]entity.Option, error) {
			recs, err := l.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]entity.Option, 0, len(recs))
			for _, rec := range recs {
				out = append(out, rec.Option())
			}
			return out, nil
		},
	}
}

// StaticReference serves a fixed list, such as the gender enum.
func StaticReference(name string, opts []entity.Option) ReferenceSource {
	return ReferenceSource{
		Name: name,
		Load: func(context.Context) ([]entity.Option, error) { return opts, nil },
	}
}
