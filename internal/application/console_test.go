package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
)

func TestConsoleMountAll(t *testing.T) {
	setLang := func(l entity.Language, id int) entity.Language { l.ID = id; return l }
	setEmp := func(e entity.Employee, id int) entity.Employee { e.ID = id; return e }
	setDist := func(d entity.District, id int) entity.District { d.ID = id; return d }

	countries := newFake("Countries", countryID, entity.Country{ID: 1, Name: "India"})
	roles := newFake("Roles", roleID)
	roles.listErr = errBackend

	c := NewConsole(Backend{
		Countries: countries,
		States:    newFake("States", stateID, entity.State{ID: 1, Name: "Goa", CountryID: 1}),
		Districts: newFake("Districts", setDist),
		Languages: newFake("Languages", setLang),
		Roles:     roles,
		UserRoles: newFake("UserRoles", userRoleID),
		Users:     newFake("Users", userID),
		Employees: newFake("Employees", setEmp),
	}, nil, nil, quietLogger())

	require.ErrorIs(t, c.MountAll(context.Background()), errBackend)
	sizes := c.Sizes()
	require.Equal(t, 1, sizes["countries"])
	require.Equal(t, 1, sizes["states"])
	require.Equal(t, 0, sizes["roles"])
	require.Len(t, sizes, 7)

	row, err := c.States.Record(1)
	require.NoError(t, err)
	require.Equal(t, "India", row.Display["country"])
}
