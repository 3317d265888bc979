package app

import (
	"context"
	"database/sql"

	"go-hrms/internal/config"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// App holds the infrastructure shared by every module of the API process.
type App struct {
	Config *config.Config
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
	Logger *zap.Logger
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func connectDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectPostgres(ctx, cfg.Database.DSN(), connectRetries)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

// BuildApp connects Postgres and Redis, migrates the schema, seeds the
// bootstrap superadmin and mounts every module on router.
func BuildApp(ctx context.Context, cfg *config.Config, router *gin.Engine, logger *zap.Logger) (*App, error) {
	gormDB, sqlDB, err := connectDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := Migrate(ctx, gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("schema migrated")

	rdb, err := connection.ConnectRedis(ctx, cfg.Redis.Addr, connectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	a := &App{Config: cfg, GormDB: gormDB, DB: sqlDB, Redis: rdb, Logger: logger}

	router.Use(middleware.RequestID())
	if err := registerModules(ctx, router, a); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
