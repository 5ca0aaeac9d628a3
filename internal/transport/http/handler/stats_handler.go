package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-job-tracker/internal/service"
	"go-job-tracker/internal/transport/http/ez"
)

type StatsHandler struct {
	svc *service.StatsService
	log *zap.Logger
}

func NewStatsHandler(svc *service.StatsService, l *zap.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: l}
}

func (h *StatsHandler) MountAPI(api *gin.RouterGroup) {
	ez.RegisterAction(ez.New(api, h.log), ez.Action[struct{}, service.Stats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (service.Stats, error) {
			return h.svc.Compute(c.Request.Context(), ez.UserID(c))
		},
	})
}
