package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/internal/infrastructure/restapi"
	"github.com/oksasatya/refdata-console/internal/infrastructure/restapi/restapitest"
	"github.com/oksasatya/refdata-console/pkg/helpers"
)

func newCollections(t *testing.T) (*restapitest.Backend, *restapi.Collections) {
	t.Helper()
	backend, srv := restapitest.Start(t)
	return backend, restapi.NewCollections(restapi.NewClient(srv.URL, time.Second, helpers.NewNopLogger()))
}

func TestRunIsIdempotent(t *testing.T) {
	backend, cols := newCollections(t)
	ctx := context.Background()

	require.NoError(t, run(ctx, cols))
	first := map[string][]map[string]any{}
	for _, name := range []string{restapi.Roles, restapi.Languages, restapi.Countries, restapi.States, restapi.Districts} {
		first[name] = backend.Records(name)
	}
	require.Len(t, first[restapi.Roles], 2)
	require.Len(t, first[restapi.Languages], 3)
	require.Len(t, first[restapi.Countries], 1)
	require.Len(t, first[restapi.States], 2)
	require.Len(t, first[restapi.Districts], 3)

	require.NoError(t, run(ctx, cols))
	for name, recs := range first {
		require.Equal(t, recs, backend.Records(name), name)
	}
}

func TestRunLinksChildrenToParents(t *testing.T) {
	backend, cols := newCollections(t)
	backend.Seed(restapi.Countries, map[string]any{"id": 4, "name": "India"})

	require.NoError(t, run(context.Background(), cols))

	states, err := names[entity.State](context.Background(), cols.States)
	require.NoError(t, err)
	for _, rec := range backend.Records(restapi.States) {
		require.EqualValues(t, 4, rec["countryId"], rec["name"])
	}
	for _, rec := range backend.Records(restapi.Districts) {
		want := states["Maharashtra"]
		if rec["name"] == "North Goa" {
			want = states["Goa"]
		}
		require.EqualValues(t, want, rec["stateId"], rec["name"])
	}
	require.Len(t, backend.Records(restapi.Countries), 1, "existing country is reused")
}

func TestSeedAddsOnlyMissingNames(t *testing.T) {
	backend, cols := newCollections(t)
	backend.Seed(restapi.Roles, map[string]any{"name": "admin"})

	ids, err := seed[entity.Role](context.Background(), cols.Roles, entity.Role{Name: "admin"}, entity.Role{Name: "auditor"})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"admin": 1, "auditor": 2}, ids)

	var posts int
	for _, c := range backend.Calls() {
		if c.Method == http.MethodPost {
			posts++
		}
	}
	require.Equal(t, 1, posts)
}

func TestSeedStopsOnBackendFailure(t *testing.T) {
	backend, cols := newCollections(t)
	backend.Fail(http.MethodGet, restapi.Roles, http.StatusInternalServerError, -1)

	_, err := seed[entity.Role](context.Background(), cols.Roles, entity.Role{Name: "admin"})
	require.ErrorContains(t, err, "list "+restapi.Roles)
	require.Error(t, run(context.Background(), cols))
	require.Empty(t, backend.Records(restapi.Roles))
}
