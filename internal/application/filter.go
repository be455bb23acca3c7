package application

import "github.com/oksasatya/refdata-console/internal/domain/entity"

// FilterByParent keeps the children whose parent id equals parentID.
func FilterByParent[T any](children []T, parentID int, parentOf func(T) int) []T {
	out := make([]T, 0)
	for _, c := range children {
		if parentOf(c) == parentID {
			out = append(out, c)
		}
	}
	return out
}

// ChildOptions is FilterByParent over dropdown options.
func ChildOptions(children []entity.Option, parentID int) []entity.Option {
	return FilterByParent(children, parentID, func(o entity.Option) int { return o.ParentID })
}

// ToggleMultiSelect removes item from set when present and appends it otherwise.
// The input slice is never modified.
func ToggleMultiSelect[T comparable](set []T, item T) []T {
	out := make([]T, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == item {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, item)
	}
	return out
}
