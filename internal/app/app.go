// Package app wires configuration into stores, services and engines. Both
// binaries build the same App and differ only in the engine they serve.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"healthy-backend/internal/core/auth"
	"healthy-backend/internal/core/cache"
	"healthy-backend/internal/core/config"
	"healthy-backend/internal/core/database"
	"healthy-backend/internal/core/logger"
	"healthy-backend/internal/notify"
	"healthy-backend/internal/repo"
	"healthy-backend/internal/service"
	"healthy-backend/internal/transport/http/router"
)

type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Services router.Services

	closers []func()
}

// New opens the database (and redis when enabled) and builds the services.
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{Cfg: cfg, Log: l}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Writer:             logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", database.MaskDSN(cfg.DB.DSN), err)
	}
	a.DB = db
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))

	if cfg.DB.AutoMigrate {
		if err := repo.Migrate(db.WithContext(ctx)); err != nil {
			a.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	users := repo.NewUserRepo(db)
	recipes := repo.NewRecipeRepo(db)
	authSvc := service.NewAuthService(users, jwter, cfg.Security.BcryptCost).WithLogger(l)
	recipeSvc := service.NewRecipeService(recipes, repo.NewDietRepo(db), repo.NewIngredientRepo(db)).WithLogger(l)

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			// redis 只做缓存和通知，连不上就降级运行
			l.Warn("redis unreachable, running without cache and notifications", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = rdb.Close()
		} else {
			a.Redis = rdb
			n := notify.NewRedis(rdb, cfg.Redis.NotifyChannel, l.Named("notify"))
			authSvc.WithNotifier(n)
			recipeSvc.WithCache(cache.New(rdb, cfg.App.Name+":"), time.Duration(cfg.Redis.RecipeTTLSec)*time.Second)
			// 先等通知发完再关连接
			a.closers = append(a.closers, func() { _ = rdb.Close() }, n.Close)
			l.Info("redis connected", zap.String("addr", cfg.Redis.Addr), zap.String("channel", cfg.Redis.NotifyChannel))
		}
	}

	a.Services = router.Services{
		Auth:      authSvc,
		Recipes:   recipeSvc,
		Users:     service.NewUserService(users),
		MealPlans: service.NewMealPlanService(repo.NewMealPlanRepo(db), recipes),
		Progress:  service.NewProgressService(repo.NewProgressRepo(db)),
	}
	return a, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
