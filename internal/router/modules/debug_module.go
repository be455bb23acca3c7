package modules

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/refdata-console/internal/interface/middleware"
	"github.com/oksasatya/refdata-console/pkg/response"
)

var publishOnce sync.Once

// DebugModule serves health, expvar and Prometheus metrics.
type DebugModule struct {
	Root    gin.IRoutes
	Redis   *redis.Client
	Metrics bool
	// Sizes reports records loaded per screen; published as expvar "screens".
	Sizes func() map[string]int
}

func NewDebugModule(root gin.IRoutes, rdb *redis.Client, metrics bool, sizes func() map[string]int) *DebugModule {
	return &DebugModule{Root: root, Redis: rdb, Metrics: metrics, Sizes: sizes}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	if m.Sizes != nil {
		sizes := m.Sizes
		publishOnce.Do(func() {
			expvar.Publish("screens", expvar.Func(func() any { return sizes() }))
		})
	}

	rg.GET("/health", m.health)
	if !m.Metrics {
		return
	}
	// Public metrics endpoints, rate-limited per IP
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	if m.Root != nil {
		m.Root.GET("/metrics", rl, gin.WrapH(promhttp.Handler()))
	}
}

func (m *DebugModule) health(c *gin.Context) {
	status := gin.H{"status": "ok", "redis": "disabled"}
	if m.Redis != nil {
		if err := m.Redis.Ping(c.Request.Context()).Err(); err != nil {
			status["redis"] = "down"
		} else {
			status["redis"] = "up"
		}
	}
	response.Success(c, http.StatusOK, status, "healthy", nil)
}
