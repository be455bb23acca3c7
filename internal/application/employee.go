package application

import (
	"context"
	"io"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
)

// SelectCountry sets the employee's country. A chosen state (and with it the
// district) that does not belong to the new country is cleared.
func SelectCountry(e *entity.Employee, countryID int, refs Refs) {
	e.CountryID = countryID
	if e.StateID == 0 {
		return
	}
	if !containsOption(ChildOptions(refs[RefStates], countryID), e.StateID) {
		e.StateID = 0
		e.DistrictID = 0
	}
}

// SelectState sets the employee's state and clears a district outside it.
func SelectState(e *entity.Employee, stateID int, refs Refs) {
	e.StateID = stateID
	if e.DistrictID == 0 {
		return
	}
	if !containsOption(ChildOptions(refs[RefDistricts], stateID), e.DistrictID) {
		e.DistrictID = 0
	}
}

// ToggleLanguage adds or removes one language from the employee's set.
func ToggleLanguage(e *entity.Employee, languageID int) {
	e.Languages = ToggleMultiSelect(e.Languages, languageID)
}

func containsOption(opts []entity.Option, id int) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

// ImageStore uploads employee pictures and returns the URL to keep in Employee.Image.
type ImageStore interface {
	UploadEmployeeImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// AttachImage uploads a picture and sets it on the employee form.
func AttachImage(ctx context.Context, store ImageStore, form *Controller[entity.Employee], filename, contentType string, r io.Reader) (entity.Employee, error) {
	if store == nil {
		return entity.Employee{}, ErrImageStoreDisabled
	}
	url, err := store.UploadEmployeeImage(ctx, filename, contentType, r)
	if err != nil {
		return entity.Employee{}, err
	}
	return form.UpdateForm(func(e *entity.Employee, _ Refs) { e.Image = url }), nil
}
