package entity

// NewID is the id of a record the backend has not stored yet.
const NewID = 0

// Record is anything kept in a REST collection keyed by an integer id.
type Record interface {
	Key() int
}

// Option is the reduced form of a record used for dropdowns, joins and
// parent/child filtering. ParentID is zero when the record has no parent.
type Option struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID int    `json:"parentId,omitempty"`
}

// Referable records can be offered as options by other screens.
type Referable interface {
	Record
	Option() Option
}

// IsNew reports whether r still carries the unsaved sentinel id.
func IsNew(r Record) bool { return r.Key() == NewID }
