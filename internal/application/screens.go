package application

import (
	"strconv"
	"strings"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/internal/domain/repository"
)

func idColumn[T entity.Record]() Column[T] {
	return Column[T]{Key: "id", Header: "Id", Value: func(rec T, _ Refs) string { return strconv.Itoa(rec.Key()) }}
}

func joinColumn[T any](key, header, ref string, fk func(T) int) Column[T] {
	return Column[T]{Key: key, Header: header, Value: func(rec T, refs Refs) string { return refs.NameOf(ref, fk(rec)) }}
}

func textColumn[T any](key, header string, get func(T) string) Column[T] {
	return Column[T]{Key: key, Header: header, Value: func(rec T, _ Refs) string { return get(rec) }}
}

// requireRef flags field when a non-zero id is missing from the loaded ref list.
// Zero ids are left to the required-field gate.
func requireRef(fields map[string]string, field string, refs Refs, ref string, id int) {
	if id != 0 && !refs.Has(ref, id) {
		fields[field] = "is not in the loaded " + ref
	}
}

func CountryScreen(col repository.Collection[entity.Country]) Screen[entity.Country] {
	return Screen[entity.Country]{
		Name:       "countries",
		Title:      "Country",
		Collection: col,
		SearchText: func(c entity.Country) string { return c.Name },
		Columns: []Column[entity.Country]{
			idColumn[entity.Country](),
			textColumn("name", "Name", func(c entity.Country) string { return c.Name }),
		},
		ExportName: "countries",
	}
}

func StateScreen(col repository.Collection[entity.State], countries repository.Lister[entity.Country]) Screen[entity.State] {
	return Screen[entity.State]{
		Name:       "states",
		Title:      "State",
		Collection: col,
		References: []ReferenceSource{ReferenceFrom(RefCountries, countries)},
		SearchText: func(s entity.State) string { return s.Name },
		Columns: []Column[entity.State]{
			idColumn[entity.State](),
			textColumn("name", "State Name", func(s entity.State) string { return s.Name }),
			joinColumn("country", "Country", RefCountries, func(s entity.State) int { return s.CountryID }),
		},
		Check: func(s entity.State, refs Refs) map[string]string {
			fields := map[string]string{}
			requireRef(fields, "countryId", refs, RefCountries, s.CountryID)
			return fields
		},
		ExportName: "states",
	}
}

func DistrictScreen(col repository.Collection[entity.District], states repository.Lister[entity.State]) Screen[entity.District] {
	return Screen[entity.District]{
		Name:       "districts",
		Title:      "District",
		Collection: col,
		References: []ReferenceSource{ReferenceFrom(RefStates, states)},
		SearchText: func(d entity.District) string { return d.Name },
		Columns: []Column[entity.District]{
			idColumn[entity.District](),
			textColumn("name", "District Name", func(d entity.District) string { return d.Name }),
			joinColumn("state", "State", RefStates, func(d entity.District) int { return d.StateID }),
		},
		Check: func(d entity.District, refs Refs) map[string]string {
			fields := map[string]string{}
			requireRef(fields, "stateId", refs, RefStates, d.StateID)
			return fields
		},
		ExportName: "districts",
	}
}

func LanguageScreen(col repository.Collection[entity.Language]) Screen[entity.Language] {
	return Screen[entity.Language]{
		Name:       "languages",
		Title:      "Language",
		Collection: col,
		SearchText: func(l entity.Language) string { return l.Name },
		Columns: []Column[entity.Language]{
			idColumn[entity.Language](),
			textColumn("name", "Name", func(l entity.Language) string { return l.Name }),
		},
		ExportName: "languages",
	}
}

func RoleScreen(col repository.Collection[entity.Role]) Screen[entity.Role] {
	return Screen[entity.Role]{
		Name:       "roles",
		Title:      "Role",
		Collection: col,
		SearchText: func(r entity.Role) string { return r.Name },
		Columns: []Column[entity.Role]{
			idColumn[entity.Role](),
			textColumn("name", "Name", func(r entity.Role) string { return r.Name }),
		},
		ExportName: "roles",
	}
}

// UserRoleScreen searches by the numeric user id, as a join entity has no text of its own.
func UserRoleScreen(col repository.Collection[entity.UserRole], users repository.Lister[entity.User], roles repository.Lister[entity.Role]) Screen[entity.UserRole] {
	return Screen[entity.UserRole]{
		Name:       "user-roles",
		Title:      "User Role",
		Collection: col,
		References: []ReferenceSource{
			ReferenceFrom(RefUsers, users),
			ReferenceFrom(RefRoles, roles),
		},
		SearchText: func(ur entity.UserRole) string { return strconv.Itoa(ur.UserID) },
		Columns: []Column[entity.UserRole]{
			idColumn[entity.UserRole](),
			joinColumn("user", "User", RefUsers, func(ur entity.UserRole) int { return ur.UserID }),
			joinColumn("role", "Role", RefRoles, func(ur entity.UserRole) int { return ur.RoleID }),
		},
		Check: func(ur entity.UserRole, refs Refs) map[string]string {
			fields := map[string]string{}
			requireRef(fields, "userId", refs, RefUsers, ur.UserID)
			requireRef(fields, "roleId", refs, RefRoles, ur.RoleID)
			return fields
		},
		ExportName: "user_roles",
	}
}

// EmployeeReferences are the collections the employee screen joins against.
type EmployeeReferences struct {
	Countries repository.Lister[entity.Country]
	States    repository.Lister[entity.State]
	Districts repository.Lister[entity.District]
	Languages repository.Lister[entity.Language]
}

func EmployeeScreen(col repository.Collection[entity.Employee], refs EmployeeReferences) Screen[entity.Employee] {
	return Screen[entity.Employee]{
		Name:       "employees",
		Title:      "Employee",
		Collection: col,
		References: []ReferenceSource{
			ReferenceFrom(RefCountries, refs.Countries),
			ReferenceFrom(RefStates, refs.States),
			ReferenceFrom(RefDistricts, refs.Districts),
			ReferenceFrom(RefLanguages, refs.Languages),
			StaticReference(RefGenders, entity.GenderOptions()),
		},
		SearchText: func(e entity.Employee) string { return e.FullName() },
		Columns: []Column[entity.Employee]{
			idColumn[entity.Employee](),
			textColumn("firstName", "First Name", func(e entity.Employee) string { return e.FirstName }),
			textColumn("middleName", "Middle Name", func(e entity.Employee) string { return e.MiddleName }),
			textColumn("lastName", "Last Name", func(e entity.Employee) string { return e.LastName }),
			textColumn("email", "Email", func(e entity.Employee) string { return e.Email }),
			textColumn("mobile", "Mobile", func(e entity.Employee) string { return e.Mobile }),
			textColumn("address", "Address", func(e entity.Employee) string { return e.Address }),
			joinColumn("country", "Country", RefCountries, func(e entity.Employee) int { return e.CountryID }),
			joinColumn("state", "State", RefStates, func(e entity.Employee) int { return e.StateID }),
			joinColumn("district", "District", RefDistricts, func(e entity.Employee) int { return e.DistrictID }),
			joinColumn("gender", "Gender", RefGenders, func(e entity.Employee) int { return e.GenderID }),
			{Key: "languages", Header: "Languages", Value: languageNames},
		},
		Check:      checkEmployee,
		Clone:      cloneEmployee,
		ExportName: "employees",
	}
}

// languageNames joins the employee's languages with " | " so the CSV stays comma-free.
func languageNames(e entity.Employee, refs Refs) string {
	names := make([]string, 0, len(e.Languages))
	for _, id := range e.Languages {
		names = append(names, refs.NameOf(RefLanguages, id))
	}
	return strings.Join(names, " | ")
}

func checkEmployee(e entity.Employee, refs Refs) map[string]string {
	fields := map[string]string{}
	requireRef(fields, "countryId", refs, RefCountries, e.CountryID)
	requireRef(fields, "stateId", refs, RefStates, e.StateID)
	requireRef(fields, "districtId", refs, RefDistricts, e.DistrictID)
	requireRef(fields, "genderId", refs, RefGenders, e.GenderID)
	if s, ok := refs.Lookup(RefStates, e.StateID); ok && s.ParentID != e.CountryID {
		fields["stateId"] = "does not belong to the selected country"
	}
	if d, ok := refs.Lookup(RefDistricts, e.DistrictID); ok && d.ParentID != e.StateID {
		fields["districtId"] = "does not belong to the selected state"
	}
	for _, id := range e.Languages {
		if !refs.Has(RefLanguages, id) {
			fields["languages"] = "must reference loaded languages"
			break
		}
	}
	return fields
}

func cloneEmployee(e entity.Employee) entity.Employee {
	if e.Languages != nil {
		e.Languages = append(entity.LanguageIDs(nil), e.Languages...)
	}
	return e
}
