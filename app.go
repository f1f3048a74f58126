package main

import (
	"context"
	"log"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/monitoring"
	"taskboard/internal/seed"
	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
)

type application struct {
	pool    *database.DatabasePool
	cache   *cache.MultiLevelCache
	tasks   *services.CachedTaskService
	tags    *services.CachedTagService
	monitor *monitoring.Monitor
	router  *gin.Engine
}

// newApplication opens the database, applies migrations and the optional
// seed file, and wires services, cache and routes.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	pool, err := database.NewDatabasePool(database.PoolConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	app := &application{pool: pool}

	if err := pool.Migrate(); err != nil {
		app.Close()
		return nil, err
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache = cache.NewRedisCache(cache.CacheConfigFrom(cfg))
		log.Printf("🧠 Redis list cache enabled at %s", cfg.GetRedisAddr())
	}
	app.cache = cache.NewMultiLevelCache(redisCache, cfg.Redis.ListTTL)

	taskService := services.NewTaskService(pool.DB, services.TaskOptions{
		TagPolicy:       services.TagPolicy(cfg.Board.TagPolicy),
		DefaultTagColor: cfg.Board.DefaultTagColor,
	})
	app.tasks = services.NewCachedTaskService(taskService, app.cache, cfg.Redis.ListTTL)
	app.tags = services.NewCachedTagService(services.NewTagService(pool.DB), app.cache, cfg.Redis.ListTTL)

	if cfg.Board.SeedFile != "" {
		file, err := seed.LoadFile(cfg.Board.SeedFile)
		if err == nil {
			_, err = seed.Apply(ctx, file, app.tasks, app.tags)
		}
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	app.monitor = monitoring.NewMonitor()
	app.monitor.RegisterHealthCheck("database", func(ctx context.Context) error {
		return pool.Health()
	})
	app.monitor.RegisterHealthCheck("cache", app.cache.Health)
	app.monitor.RegisterStats("database", pool.Stats)
	app.monitor.RegisterStats("cache", app.tasks.GetCacheStats)

	extra := []gin.HandlerFunc{middleware.CORS(cfg.Server)}
	if cfg.RateLimit.Enabled {
		extra = append(extra, middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	}

	app.router, err = handlers.SetupRouter(handlers.RouterConfig{
		Tasks:   app.tasks,
		Tags:    app.tags,
		Monitor: app.monitor,
		Options: handlers.Options{
			Locale:   services.MatchLocale(cfg.Board.Locale),
			Location: cfg.Location(),
		},
		Middleware: extra,
	})
	if err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (a *application) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Printf("⚠️ Failed to close cache: %v", err)
		}
	}
	if err := a.pool.Close(); err != nil {
		log.Printf("⚠️ Failed to close database: %v", err)
	}
}
