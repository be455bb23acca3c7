package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Employee composes the place, gender and language references.
type Employee struct {
	ID         int         `json:"id,omitempty"`
	FirstName  string      `json:"firstName" validate:"notblank"`
	MiddleName string      `json:"middleName"`
	LastName   string      `json:"lastName" validate:"notblank"`
	Address    string      `json:"address"`
	Email      string      `json:"email" validate:"omitempty,email"`
	Mobile     string      `json:"mobile"`
	CountryID  int         `json:"countryId" validate:"required"`
	StateID    int         `json:"stateId" validate:"required"`
	DistrictID int         `json:"districtId" validate:"required"`
	GenderID   int         `json:"genderId" validate:"required"`
	Image      string      `json:"image"`
	Languages  LanguageIDs `json:"languages"`
}

func (e Employee) Key() int { return e.ID }

// FullName joins the non-empty name parts.
func (e Employee) FullName() string {
	name := e.FirstName
	for _, part := range []string{e.MiddleName, e.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// LanguageIDs is the employee's language set in selection order.
//
// The backend reads it back as [{"languageId":1}] but expects [1] on write,
// so decoding accepts both shapes and encoding always writes plain ids.
type LanguageIDs []int

func (l LanguageIDs) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(l))
}

func (l *LanguageIDs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("languages: %w", err)
	}
	ids := make(LanguageIDs, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			var link struct {
				LanguageID int `json:"languageId"`
			}
			if err := json.Unmarshal(item, &link); err != nil {
				return fmt.Errorf("languages: %w", err)
			}
			ids = append(ids, link.LanguageID)
			continue
		}
		var id int
		if err := json.Unmarshal(item, &id); err != nil {
			return fmt.Errorf("languages: %w", err)
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

// Contains reports whether id is selected.
func (l LanguageIDs) Contains(id int) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}
