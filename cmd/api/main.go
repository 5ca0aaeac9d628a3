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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-job-tracker/internal/core/auth"
	"go-job-tracker/internal/core/config"
	"go-job-tracker/internal/core/database"
	"go-job-tracker/internal/core/logger"
	"go-job-tracker/internal/core/server"
	"go-job-tracker/internal/core/session"
	"go-job-tracker/internal/domain"
	"go-job-tracker/internal/repo"
	"go-job-tracker/internal/repo/memory"
	"go-job-tracker/internal/service"
	"go-job-tracker/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     cfg.Log.File.Enable,
		Filename:   cfg.Log.File.Filename,
		MaxSizeMB:  cfg.Log.File.MaxSizeMB,
		MaxBackups: cfg.Log.File.MaxBackups,
		MaxAgeDays: cfg.Log.File.MaxAgeDays,
		Compress:   cfg.Log.File.Compress,
	})
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	st := mustOpenStore(cfg, log)
	sessions := mustOpenSessions(cfg, log)

	jwter := &auth.JWTer{
		Secret: []byte(cfg.Session.Secret),
		Issuer: cfg.Session.Issuer,
		TTL:    time.Duration(cfg.Session.TTLMin) * time.Minute,
	}
	svc := router.Services{
		Auth:         service.NewAuthService(st, sessions, jwter),
		Applications: service.NewApplicationService(st),
		Documents:    service.NewDocumentService(st),
		Interviews:   service.NewInterviewService(st),
		Stats:        service.NewStatsService(st, time.Now),
	}
	r := router.NewTracker(log, router.Options{
		Limits:       cfg.Limits,
		AllowOrigins: cfg.CORS.AllowOrigins,
		Cookie: auth.Cookie{
			Name:   cfg.Session.CookieName,
			Domain: cfg.Session.CookieDomain,
			Secure: cfg.Session.CookieSecure,
		},
	}, svc)

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
	log.Info("tracker api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("db", cfg.DB.Driver),
		zap.String("sessions", cfg.Session.Store),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("tracker api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := sessions.Close(); err != nil {
		log.Warn("session store close", zap.Error(err))
	}
	if err := st.Close(); err != nil {
		log.Warn("store close", zap.Error(err))
	}
	log.Info("tracker api stopped gracefully")
}

// mustOpenStore picks the entity store from db.driver. Anything but memory
// goes through GORM; db.migrate decides how the schema is brought up.
func mustOpenStore(cfg *config.Config, l *zap.Logger) domain.Store {
	if cfg.DB.Driver == "memory" {
		l.Warn("using in-memory store; data is lost on restart")
		return memory.New(time.Now)
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	switch cfg.DB.Migrate {
	case "auto":
		if err := repo.AutoMigrate(db); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	case "sql":
		if err := database.Migrate(cfg.DB.DSN, database.Up, l); err != nil {
			l.Fatal("migrate failed", zap.Error(err))
		}
	}
	return repo.NewStore(db, time.Now)
}

func mustOpenSessions(cfg *config.Config, l *zap.Logger) session.Store {
	if cfg.Session.Store != "redis" {
		return session.NewMemoryStore(time.Now)
	}
	rs := session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		l.Fatal("redis ping", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	return rs
}
