package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrNoPendingDelete    = errors.New("no delete awaiting confirmation")
	ErrImageStoreDisabled = errors.New("image storage not configured")
)

// Messages shown when a save is rejected before it reaches the backend.
const (
	MsgRequiredFields   = "Please fill all required fields."
	MsgMissingReference = "Selected reference no longer exists"
)

// ValidationError blocks a save before any write is sent. Reference is set
// when every field was filled but a foreign id is not among the loaded references.
type ValidationError struct {
	Fields    map[string]string
	Reference bool
}

// Message is the notice text for the rejection.
func (e *ValidationError) Message() string {
	if e.Reference {
		return MsgMissingReference
	}
	return MsgRequiredFields
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
