package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/refdata-console/internal/application"
	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/pkg/helpers"
)

func TestFailMapsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := application.NewController(application.RoleScreen(nil), nil, nil, helpers.NewNopLogger())
	h := NewScreenHandler(ctrl, nil, helpers.NewNopLogger())

	cases := []struct {
		err  error
		code int
	}{
		{&application.ValidationError{Fields: map[string]string{"name": "is required"}}, http.StatusBadRequest},
		{fmt.Errorf("edit: %w", application.ErrNotFound), http.StatusNotFound},
		{application.ErrNoPendingDelete, http.StatusConflict},
		{application.ErrImageStoreDisabled, http.StatusServiceUnavailable},
		{errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.fail(c, tc.err)
		require.Equal(t, tc.code, w.Code, tc.err.Error())
		require.True(t, c.IsAborted())
	}
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		raw string
		ok  bool
	}{{"7", true}, {"0", false}, {"-1", false}, {"x", false}} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: tc.raw}}
		_, ok := pathID(c)
		require.Equal(t, tc.ok, ok, tc.raw)
		if !ok {
			require.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}

func TestNilPageSizeKeepsRequestedSize(t *testing.T) {
	h := NewScreenHandler[entity.Role](nil, nil, helpers.NewNopLogger())
	require.Equal(t, 7, h.PageSize(7))
}
