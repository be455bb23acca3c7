package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestNewEngineRejectsBadProxy(t *testing.T) {
	_, err := NewEngine([]string{"10.0.0.0/8", "proxy.internal"})
	require.Error(t, err)
}

func TestNewEngineClientAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	get := func(trusted []string) string {
		r, err := NewEngine(trusted)
		require.NoError(t, err)
		r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")+"|"+c.ClientIP()) })
		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	require.Equal(t, "192.0.2.1|192.0.2.1", get(nil))
	require.Equal(t, "10.0.0.9|10.0.0.9", get([]string{"192.0.2.1"}))
}
