package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSuccessWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")

	Success(c, 0, map[string]int{"n": 1}, "ok", PageMeta{Total: 1, TotalPages: 1, Page: 1, Size: 5})

	require.Equal(t, http.StatusOK, w.Code)
	var got APIResponse[map[string]int]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "rid-1", got.RequestID)
	require.Equal(t, 1, got.Data["n"])
	require.Equal(t, "ok", got.Message)
}

func TestErrorAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	resp := Error[any](c, http.StatusNotFound, "record not found", nil)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, resp.Success)
	require.Contains(t, w.Body.String(), `"message":"record not found"`)
}
