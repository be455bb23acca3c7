package application

import (
	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/internal/domain/repository"
)

// Column is one table/export column. Value may resolve join fields via refs.
type Column[T any] struct {
	Key    string
	Header string
	Value  func(rec T, refs Refs) string
}

// Screen configures a Controller for one entity.
type Screen[T entity.Record] struct {
	// Name is the URL segment and notice channel, e.g. "countries".
	Name  string
	Title string

	Collection repository.Collection[T]
	References []ReferenceSource

	// SearchText is the designated field the search box matches against.
	SearchText func(T) string
	Columns    []Column[T]

	// Check validates foreign keys against the loaded references.
	// It returns field -> message for every broken reference.
	Check func(rec T, refs Refs) map[string]string

	// Clone deep-copies records that carry slices, so form edits never alias the list.
	Clone func(T) T

	// ExportName is the file name stem used by exports.
	ExportName string
}

func (s Screen[T]) clone(rec T) T {
	if s.Clone == nil {
		return rec
	}
	return s.Clone(rec)
}

func (s Screen[T]) display(rec T, refs Refs) map[string]string {
	out := make(map[string]string, len(s.Columns))
	for _, col := range s.Columns {
		out[col.Key] = col.Value(rec, refs)
	}
	return out
}
