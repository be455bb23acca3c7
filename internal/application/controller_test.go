package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRoleController(t *testing.T, roles ...entity.Role) (*Controller[entity.Role], *fakeCollection[entity.Role], *MemoryNotifier) {
	t.Helper()
	col := newFake("Roles", roleID, roles...)
	notices := NewMemoryNotifier(0)
	c := NewController(RoleScreen(col), nil, notices, quietLogger())
	require.NoError(t, c.Mount(context.Background()))
	return c, col, notices
}

func messages(t *testing.T, n *MemoryNotifier, screen string) []string {
	t.Helper()
	queued, err := n.Drain(context.Background(), screen)
	require.NoError(t, err)
	out := make([]string, 0, len(queued))
	for _, q := range queued {
		out = append(out, q.Message)
	}
	return out
}

func TestLoadReplacesList(t *testing.T) {
	c, col, _ := newRoleController(t, entity.Role{ID: 1, Name: "Admin"})
	require.Equal(t, []entity.Role{{ID: 1, Name: "Admin"}}, c.Records())

	col.records = []entity.Role{{ID: 2, Name: "Viewer"}}
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, []entity.Role{{ID: 2, Name: "Viewer"}}, c.Records())
}

func TestLoadFailureKeepsPreviousList(t *testing.T) {
	c, col, _ := newRoleController(t, entity.Role{ID: 1, Name: "Admin"})
	col.listErr = errBackend

	err := c.Load(context.Background())
	require.ErrorIs(t, err, errBackend)
	require.Equal(t, []entity.Role{{ID: 1, Name: "Admin"}}, c.Records())
}

func TestEmptyBackendGivesEmptyView(t *testing.T) {
	c, _, _ := newRoleController(t)
	v := c.View(context.Background(), Query{Page: 1, Size: 5})
	require.True(t, v.Empty)
	require.NotNil(t, v.Rows)
	require.Equal(t, 0, v.Total)
}

func TestSaveInsertsResetsFormAndReloads(t *testing.T) {
	c, col, notices := newRoleController(t)

	require.NoError(t, c.Save(context.Background(), entity.Role{Name: "Auditor"}))

	lists, creates, replaces, _ := col.calls()
	require.Equal(t, 1, creates)
	require.Zero(t, replaces)
	require.Equal(t, 2, lists, "mount plus reload")
	require.Equal(t, []entity.Role{{ID: 1, Name: "Auditor"}}, c.Records())
	require.Equal(t, entity.Role{}, c.Form())
	require.Equal(t, []string{"Data saved successfully!"}, messages(t, notices, "roles"))
}

func TestSaveWithIDReplaces(t *testing.T) {
	c, col, _ := newRoleController(t, entity.Role{ID: 4, Name: "Admin"})

	form, err := c.Edit(4)
	require.NoError(t, err)
	form.Name = "Administrator"
	require.NoError(t, c.Save(context.Background(), form))

	_, creates, replaces, _ := col.calls()
	require.Zero(t, creates)
	require.Equal(t, 1, replaces)
	require.Equal(t, []entity.Role{{ID: 4, Name: "Administrator"}}, c.Records())
}

func TestSaveValidationBlocksNetwork(t *testing.T) {
	c, col, notices := newRoleController(t)

	err := c.Save(context.Background(), entity.Role{Name: "   "})
	require.True(t, IsValidation(err))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, map[string]string{"name": "is required"}, verr.Fields)

	lists, creates, replaces, _ := col.calls()
	require.Equal(t, 1, lists)
	require.Zero(t, creates+replaces)
	require.Equal(t, entity.Role{Name: "   "}, c.Form())
	require.Equal(t, []string{"Please fill all required fields."}, messages(t, notices, "roles"))
}

func TestSaveFailureKeepsFormAndList(t *testing.T) {
	c, col, notices := newRoleController(t, entity.Role{ID: 1, Name: "Admin"})
	col.createErr = errBackend

	err := c.Save(context.Background(), entity.Role{Name: "Auditor"})
	require.ErrorIs(t, err, errBackend)
	require.False(t, IsValidation(err))
	require.Equal(t, entity.Role{Name: "Auditor"}, c.Form())
	require.Equal(t, []entity.Role{{ID: 1, Name: "Admin"}}, c.Records())
	require.Equal(t, []string{"Failed to save data"}, messages(t, notices, "roles"))
}

func TestSaveSucceedsWhenReloadFails(t *testing.T) {
	c, col, notices := newRoleController(t)
	col.listErr = errBackend

	require.NoError(t, c.Save(context.Background(), entity.Role{Name: "Auditor"}))
	require.Equal(t, []string{"Data saved successfully!", "Failed to reload data"}, messages(t, notices, "roles"))
}

func TestForeignKeyCheck(t *testing.T) {
	countries := newFake("Countries", countryID, entity.Country{ID: 1, Name: "India"})
	states := newFake("States", stateID)
	c := NewController(StateScreen(states, countries), nil, nil, quietLogger())
	require.NoError(t, c.Mount(context.Background()))

	err := c.Save(context.Background(), entity.State{Name: "Bavaria", CountryID: 7})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.True(t, verr.Reference)
	require.Equal(t, map[string]string{"countryId": "is not in the loaded countries"}, verr.Fields)
	_, creates, _, _ := states.calls()
	require.Zero(t, creates)
	lists, _, _, _ := countries.calls()
	require.Equal(t, 2, lists, "a missing foreign id refreshes the references once")

	require.NoError(t, c.Save(context.Background(), entity.State{Name: "Maharashtra", CountryID: 1}))
	row, err := c.Record(1)
	require.NoError(t, err)
	require.Equal(t, "India", row.Display["country"])
}

func TestSaveSeesParentCreatedAfterMount(t *testing.T) {
	countries := newFake("Countries", countryID, entity.Country{ID: 1, Name: "India"})
	states := newFake("States", stateID)
	notices := NewMemoryNotifier(0)
	c := NewController(StateScreen(states, countries), nil, notices, quietLogger())
	require.NoError(t, c.Mount(context.Background()))

	require.NoError(t, countries.Create(context.Background(), entity.Country{Name: "Germany"}))

	require.NoError(t, c.Save(context.Background(), entity.State{Name: "Bavaria", CountryID: 2}))
	require.Equal(t, []string{"Data saved successfully!"}, messages(t, notices, "states"))
	row, err := c.Record(1)
	require.NoError(t, err)
	require.Equal(t, "Germany", row.Display["country"])
}

func TestMissingReferenceHasOwnMessage(t *testing.T) {
	countries := newFake("Countries", countryID, entity.Country{ID: 1, Name: "India"})
	states := newFake("States", stateID)
	notices := NewMemoryNotifier(0)
	c := NewController(StateScreen(states, countries), nil, notices, quietLogger())
	require.NoError(t, c.Mount(context.Background()))

	require.Error(t, c.Save(context.Background(), entity.State{Name: "Bavaria", CountryID: 7}))
	require.Equal(t, []string{"Selected reference no longer exists"}, messages(t, notices, "states"))

	require.Error(t, c.Save(context.Background(), entity.State{CountryID: 1}))
	require.Equal(t, []string{"Please fill all required fields."}, messages(t, notices, "states"))
}

func TestRefreshFailureStillRejects(t *testing.T) {
	countries := newFake("Countries", countryID, entity.Country{ID: 1, Name: "India"})
	states := newFake("States", stateID)
	c := NewController(StateScreen(states, countries), nil, nil, quietLogger())
	require.NoError(t, c.Mount(context.Background()))
	countries.listErr = errBackend

	err := c.Save(context.Background(), entity.State{Name: "Bavaria", CountryID: 7})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.True(t, verr.Reference)
	require.Equal(t, []entity.Option{{ID: 1, Name: "India"}}, c.Refs()[RefCountries], "failed refresh keeps the loaded list")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	c, col, notices := newRoleController(t, entity.Role{ID: 1, Name: "Admin"}, entity.Role{ID: 2, Name: "Viewer"})

	p, err := c.RequestDelete(2)
	require.NoError(t, err)
	require.Equal(t, PendingDelete{ID: 2, Label: "Viewer"}, p)
	_, _, _, deletes := col.calls()
	require.Zero(t, deletes, "request alone sends nothing")

	v := c.View(context.Background(), Query{Page: 1, Size: 5})
	require.Equal(t, &PendingDelete{ID: 2, Label: "Viewer"}, v.PendingDelete)

	require.NoError(t, c.ConfirmDelete(context.Background()))
	_, _, _, deletes = col.calls()
	require.Equal(t, 1, deletes)
	require.Equal(t, []entity.Role{{ID: 1, Name: "Admin"}}, c.Records())
	require.Equal(t, []string{"Data deleted successfully!"}, messages(t, notices, "roles"))

	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNoPendingDelete)
}

func TestCancelDeleteSendsNothing(t *testing.T) {
	c, col, _ := newRoleController(t, entity.Role{ID: 1, Name: "Admin"})

	_, err := c.RequestDelete(1)
	require.NoError(t, err)
	require.True(t, c.CancelDelete())
	require.False(t, c.CancelDelete())
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNoPendingDelete)

	_, _, _, deletes := col.calls()
	require.Zero(t, deletes)
	require.Len(t, c.Records(), 1)
}

func TestRequestDeleteUnknownID(t *testing.T) {
	c, _, _ := newRoleController(t)
	_, err := c.RequestDelete(9)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFailureKeepsList(t *testing.T) {
	c, col, notices := newRoleController(t, entity.Role{ID: 1, Name: "Admin"})
	col.deleteErr = errBackend

	_, err := c.RequestDelete(1)
	require.NoError(t, err)
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), errBackend)
	require.Len(t, c.Records(), 1)
	require.Equal(t, []string{"Failed to delete data"}, messages(t, notices, "roles"))
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNoPendingDelete, "confirmation consumed")
}

func TestEditAndResetForm(t *testing.T) {
	c, _, _ := newRoleController(t, entity.Role{ID: 3, Name: "Admin"})

	_, err := c.Edit(99)
	require.ErrorIs(t, err, ErrNotFound)

	form, err := c.Edit(3)
	require.NoError(t, err)
	require.Equal(t, entity.Role{ID: 3, Name: "Admin"}, form)
	require.True(t, c.View(context.Background(), Query{}).Editing)

	c.ResetForm()
	require.Equal(t, entity.Role{}, c.Form())
	require.False(t, c.View(context.Background(), Query{}).Editing)
}

func TestStaleLoadIsDropped(t *testing.T) {
	col := newFake("Roles", roleID, entity.Role{ID: 1, Name: "old"})
	c := NewController(RoleScreen(col), nil, nil, quietLogger())

	release := make(chan struct{})
	started := make(chan struct{})
	col.listHook = func(call int) {
		if call == 1 {
			close(started)
			<-release
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Load(context.Background()))
	}()
	<-started

	col.mu.Lock()
	col.records = []entity.Role{{ID: 2, Name: "new"}}
	col.mu.Unlock()
	require.NoError(t, c.Load(context.Background()))
	close(release)
	wg.Wait()

	require.Equal(t, []entity.Role{{ID: 2, Name: "new"}}, c.Records())
}

func TestStaleReferenceLoadIsDropped(t *testing.T) {
	countries := newFake("Countries", countryID, entity.Country{ID: 1, Name: "old"})
	c := NewController(StateScreen(newFake("States", stateID), countries), nil, nil, quietLogger())

	release := make(chan struct{})
	started := make(chan struct{})
	countries.listHook = func(call int) {
		if call == 1 {
			close(started)
			<-release
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.LoadReferences(context.Background()))
	}()
	<-started

	countries.mu.Lock()
	countries.records = []entity.Country{{ID: 2, Name: "new"}}
	countries.mu.Unlock()
	require.NoError(t, c.LoadReferences(context.Background()))
	close(release)
	wg.Wait()

	require.Equal(t, []entity.Option{{ID: 2, Name: "new"}}, c.Refs()[RefCountries])
}

func TestViewDrainsNoticesOnce(t *testing.T) {
	c, _, _ := newRoleController(t)
	require.Error(t, c.Save(context.Background(), entity.Role{}))

	v := c.View(context.Background(), Query{})
	require.Len(t, v.Notices, 1)
	require.Equal(t, NoticeWarning, v.Notices[0].Level)
	require.Empty(t, c.View(context.Background(), Query{}).Notices)
}

func TestMountAppliesReferencesThatLoad(t *testing.T) {
	users := newFake("Users", userID, entity.User{ID: 1, Name: "asha"})
	roles := newFake("Roles", roleID)
	roles.listErr = errBackend
	col := newFake("UserRoles", userRoleID, entity.UserRole{ID: 1, UserID: 1, RoleID: 5})

	c := NewController(UserRoleScreen(col, users, roles), nil, nil, quietLogger())
	err := c.Mount(context.Background())
	require.ErrorIs(t, err, errBackend)

	refs := c.Refs()
	require.Equal(t, []entity.Option{{ID: 1, Name: "asha"}}, refs[RefUsers])
	_, ok := refs[RefRoles]
	require.False(t, ok)

	row, err := c.Record(1)
	require.NoError(t, err)
	require.Equal(t, "asha", row.Display["user"])
	require.Equal(t, "5", row.Display["role"], "unresolved join falls back to the id")
}

func TestEditedFormDoesNotAliasList(t *testing.T) {
	emps := newFake("Employees", func(e entity.Employee, id int) entity.Employee { e.ID = id; return e },
		entity.Employee{ID: 1, FirstName: "A", LastName: "B", Languages: entity.LanguageIDs{1, 2}})
	c := NewController(EmployeeScreen(emps, EmployeeReferences{
		Countries: newFake("Countries", countryID),
		States:    newFake("States", stateID),
		Districts: newFake("Districts", func(d entity.District, id int) entity.District { d.ID = id; return d }),
		Languages: newFake("Languages", func(l entity.Language, id int) entity.Language { l.ID = id; return l }),
	}), nil, nil, quietLogger())
	require.NoError(t, c.Mount(context.Background()))

	_, err := c.Edit(1)
	require.NoError(t, err)
	c.UpdateForm(func(e *entity.Employee, _ Refs) { ToggleLanguage(e, 1) })

	require.Equal(t, entity.LanguageIDs{2}, c.Form().Languages)
	require.Equal(t, entity.LanguageIDs{1, 2}, c.Records()[0].Languages)
}

func TestIsValidation(t *testing.T) {
	require.False(t, IsValidation(errors.New("x")))
	require.True(t, IsValidation(&ValidationError{Fields: map[string]string{"a": "b"}}))
}
