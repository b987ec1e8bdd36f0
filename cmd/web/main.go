package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"holistay/internal/cep"
	"holistay/internal/core/auth"
	"holistay/internal/core/cache"
	"holistay/internal/core/config"
	"holistay/internal/core/database"
	"holistay/internal/core/logger"
	"holistay/internal/core/server"
	"holistay/internal/domain"
	"holistay/internal/identity"
	"holistay/internal/property"
	"holistay/internal/repo"
	"holistay/internal/session"
	"holistay/internal/transport/http/handler"
	"holistay/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&identity.AccountModel{},
			&identity.AuthCodeModel{},
			&domain.Profile{},
			&domain.Property{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 会话令牌
	tokens := &auth.SessionTokens{
		Secret: []byte(cfg.Session.Secret),
		Issuer: cfg.Session.Issuer,
		TTL:    time.Duration(cfg.Session.TTLMin) * time.Minute,
	}

	// 依赖
	provider := identity.NewGormProvider(db, tokens, log)
	profiles := repo.NewProfileRepo(db)
	properties := repo.NewPropertyRepo(db)
	resolver := session.NewResolver(provider, profiles, log)
	propSvc := property.NewService(properties, log)

	// CEP 查询（redis 没配就直查不缓存）
	var cepCache *cache.Cache
	if cfg.Redis.Addr != "" {
		cepCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}
	cepClient := cep.NewClient(
		cfg.CEP.BaseURL,
		time.Duration(cfg.CEP.TimeoutSec)*time.Second,
		cepCache,
		time.Duration(cfg.CEP.CacheTTLHour)*time.Hour,
		log,
	)

	cookie := handler.CookieOpts{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}
	authH := handler.NewAuthHandler(provider, resolver, cookie, log)
	pagesH := handler.NewPagesHandler(propSvc, log)

	r := router.NewWebEngine(log, router.Deps{
		Resolver:   resolver,
		Auth:       authH,
		Pages:      pagesH,
		Properties: propSvc,
		CEP:        cepClient,
		CookieName: cfg.Session.CookieName,
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("holistay starting",
		zap.String("addr", addr),
		zap.String("open", baseURL+"/login"),
		zap.String("health", baseURL+"/health"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("holistay start FAILED", zap.Error(err))
		}
	}()
	log.Info("holistay started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("holistay stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
