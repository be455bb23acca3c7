package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/refdata-console/internal/application"
	"github.com/oksasatya/refdata-console/internal/container"
	handlers "github.com/oksasatya/refdata-console/internal/interface/http"
	"github.com/oksasatya/refdata-console/internal/interface/middleware"
	"github.com/oksasatya/refdata-console/internal/router/modules"
	"github.com/oksasatya/refdata-console/pkg/validation"
)

// BuildConsole creates one controller per screen over the backend collections.
func BuildConsole() *application.Console {
	cols := container.GetCollections()
	return application.NewConsole(application.Backend{
		Countries: cols.Countries,
		States:    cols.States,
		Districts: cols.Districts,
		Languages: cols.Languages,
		Roles:     cols.Roles,
		UserRoles: cols.UserRoles,
		Users:     cols.Users,
		Employees: cols.Employees,
	}, validation.New(), container.GetNotifier(), container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	console := container.GetConsole()
	if console == nil {
		console = BuildConsole()
		container.SetConsole(console)
	}

	exports := middleware.RateLimit(container.GetRedis(), cfg.ExportRateLimit, time.Minute, middleware.KeyByRoute("export"), middleware.AllowPrivateIP())

	r.Add(modules.NewScreenModule(handlers.NewScreenHandler(console.Countries, cfg.PageSize, logger), exports))
	r.Add(modules.NewScreenModule(handlers.NewScreenHandler(console.States, cfg.PageSize, logger), exports))
	r.Add(modules.NewScreenModule(handlers.NewScreenHandler(console.Districts, cfg.PageSize, logger), exports))
	r.Add(modules.NewScreenModule(handlers.NewScreenHandler(console.Languages, cfg.PageSize, logger), exports))
	r.Add(modules.NewScreenModule(handlers.NewScreenHandler(console.Roles, cfg.PageSize, logger), exports))
	r.Add(modules.NewScreenModule(handlers.NewScreenHandler(console.UserRoles, cfg.PageSize, logger), exports))
	r.Add(modules.NewEmployeeModule(handlers.NewEmployeeHandler(console.Employees, cfg.PageSize, container.GetImageStore(), logger), exports))

	r.Add(modules.NewDebugModule(r.Engine, container.GetRedis(), cfg.DebugMetricsEnabled, console.Sizes))
}

// NewEngine builds the gin engine with the global middleware chain.
// Forwarding headers are honoured only from the trusted proxies.
func NewEngine(trustedProxies []string, mw ...gin.HandlerFunc) (*gin.Engine, error) {
	trusted, err := middleware.ParseTrustedProxies(trustedProxies)
	if err != nil {
		return nil, err
	}
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP(trusted))
	r.Use(mw...)
	return r, nil
}
