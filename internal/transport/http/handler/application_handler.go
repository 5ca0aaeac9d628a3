package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-job-tracker/internal/domain"
	"go-job-tracker/internal/service"
	"go-job-tracker/internal/transport/http/ez"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
	log *zap.Logger
}

func NewApplicationHandler(svc *service.ApplicationService, l *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, log: l}
}

type statusIn struct {
	Status *string `json:"status"`
}

func (h *ApplicationHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/applications"), h.log)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.JobApplication]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.JobApplication, error) {
			list, err := h.svc.List(c.Request.Context(), ez.UserID(c))
			return orEmpty(list), err
		},
	})

	ez.RegisterAction(e, ez.Action[service.NewApplication, *domain.JobApplication]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.NewApplication) (*domain.JobApplication, error) {
			return h.svc.Create(c.Request.Context(), ez.UserID(c), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.JobApplication]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		ID:     true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.JobApplication, error) {
			return h.svc.Get(c.Request.Context(), ez.UserID(c), ez.PathID(c))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.ApplicationPatch, *domain.JobApplication]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		ID:     true,
		Owned:  h.owned,
		Handler: func(c *gin.Context, in *domain.ApplicationPatch) (*domain.JobApplication, error) {
			return h.svc.Update(c.Request.Context(), ez.UserID(c), ez.PathID(c), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[statusIn, *domain.JobApplication]{
		Method: http.MethodPatch,
		Path:   "/:id/status",
		Binder: ez.BindJSON,
		Auth:   true,
		ID:     true,
		Owned:  h.owned,
		Handler: func(c *gin.Context, in *statusIn) (*domain.JobApplication, error) {
			status := ""
			if in.Status != nil {
				status = *in.Status
			}
			return h.svc.SetStatus(c.Request.Context(), ez.UserID(c), ez.PathID(c), status)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		ID:     true,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			return struct{}{}, h.svc.Delete(c.Request.Context(), ez.UserID(c), ez.PathID(c))
		},
	})
}

// orEmpty keeps empty lists serialised as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (h *ApplicationHandler) owned(c *gin.Context, id uint) error {
	_, err := h.svc.Get(c.Request.Context(), ez.UserID(c), id)
	return err
}
