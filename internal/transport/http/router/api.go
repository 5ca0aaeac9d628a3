package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-job-tracker/internal/core/auth"
	"go-job-tracker/internal/core/config"
	"go-job-tracker/internal/core/server"
	"go-job-tracker/internal/service"
	"go-job-tracker/internal/transport/http/ez"
	"go-job-tracker/internal/transport/http/handler"
	mdw "go-job-tracker/internal/transport/http/middleware"
	resp "go-job-tracker/internal/transport/http/response"
)

type Options struct {
	Limits       config.Limits
	AllowOrigins []string
	Cookie       auth.Cookie
}

// Services is everything the API handlers call into.
type Services struct {
	Auth         *service.AuthService
	Applications *service.ApplicationService
	Documents    *service.DocumentService
	Interviews   *service.InterviewService
	Stats        *service.StatsService
}

// NewTracker builds the full job tracker API.
func NewTracker(l *zap.Logger, opt Options, svc Services) *gin.Engine {
	reg := NewRegistry(
		handler.NewAuthHandler(svc.Auth, opt.Cookie, l),
		handler.NewApplicationHandler(svc.Applications, l),
		handler.NewDocumentHandler(svc.Documents, l),
		handler.NewInterviewHandler(svc.Interviews, l),
		handler.NewStatsHandler(svc.Stats, l),
	)
	return NewAPIEngine(l, opt, svc.Auth, reg)
}

func NewAPIEngine(l *zap.Logger, opt Options, authn mdw.Authenticator, reg *Registry) *gin.Engine {
	ez.Init()
	r := server.NewRouter(l, opt.AllowOrigins)

	lim := opt.Limits
	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(rate.Limit(lim.RPS), lim.Burst),
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(mdw.Session(authn, opt.Cookie, l))
	reg.MountAll(api)

	r.NoRoute(func(c *gin.Context) { resp.Abort(c, http.StatusNotFound, "") })
	return r
}
