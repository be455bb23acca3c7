package container

import (
	"time"

	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/refdata-console/config"
	"github.com/oksasatya/refdata-console/internal/application"
	"github.com/oksasatya/refdata-console/internal/infrastructure/restapi"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	gcsClient   *storage.Client

	backend     *restapi.Client
	collections *restapi.Collections
	notifier    application.Notifier
	imageStore  application.ImageStore
	console     *application.Console
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

// SetRedis and SetGCS accept nil when the service is not configured.
func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }
func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

func SetBackend(c *restapi.Client) { backend = c; collections = restapi.NewCollections(c) }
func GetBackend() *restapi.Client  { return backend }
func GetCollections() *restapi.Collections {
	return collections
}

func SetNotifier(n application.Notifier) { notifier = n }

// GetNotifier falls back to an in-process notifier when none was set.
func GetNotifier() application.Notifier {
	if notifier == nil {
		var ttl time.Duration
		if cfg != nil {
			ttl = cfg.NoticeTTL
		}
		notifier = application.NewMemoryNotifier(ttl)
	}
	return notifier
}

func SetImageStore(s application.ImageStore) { imageStore = s }
func GetImageStore() application.ImageStore  { return imageStore }

func SetConsole(c *application.Console) { console = c }
func GetConsole() *application.Console  { return console }
