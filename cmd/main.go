package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/refdata-console/config"
	"github.com/oksasatya/refdata-console/internal/container"
	"github.com/oksasatya/refdata-console/internal/infrastructure/notice"
	"github.com/oksasatya/refdata-console/internal/infrastructure/restapi"
	"github.com/oksasatya/refdata-console/internal/infrastructure/storage"
	"github.com/oksasatya/refdata-console/internal/router"
	"github.com/oksasatya/refdata-console/pkg/helpers"
	"github.com/oksasatya/refdata-console/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetBackend(restapi.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, logger))

	// Redis is optional: without it notices stay in process and rate limits are off
	if cfg.RedisEnabled() {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable, continuing; notices will fail until it is back")
		}
		container.SetRedis(rdb)
		container.SetNotifier(notice.NewRedisNotifier(rdb, cfg.NoticeTTL))
	}

	// GCS is optional: without a bucket picture upload answers 503
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
		container.SetImageStore(storage.NewGCSImageStore(gcsClient, cfg.GCSBucket, logger))
	}

	console := router.BuildConsole()
	container.SetConsole(console)
	mountCtx, cancelMount := context.WithTimeout(ctx, cfg.BackendTimeout)
	if err := console.MountAll(mountCtx); err != nil {
		logger.WithError(err).Warn("initial load incomplete; screens reload on demand")
	}
	cancelMount()

	// Gin engine and global middleware
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		// no origins configured: open to any origin, without credentials
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r, err := router.NewEngine(cfg.TrustedProxyList(), cors.New(corsCfg))
	if err != nil {
		logger.WithError(err).Fatal("invalid TRUSTED_PROXIES")
	}
	if cfg.HTTPLogEnabled {
		r.Use(helpers.GinLogger(logger))
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()
	reg.LogRoutes(logger)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s (backend %s)", cfg.Port, cfg.BackendBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
