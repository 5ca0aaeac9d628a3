package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-job-tracker/internal/domain"
	"go-job-tracker/internal/service"
	"go-job-tracker/internal/transport/http/ez"
)

type InterviewHandler struct {
	svc *service.InterviewService
	log *zap.Logger
}

func NewInterviewHandler(svc *service.InterviewService, l *zap.Logger) *InterviewHandler {
	return &InterviewHandler{svc: svc, log: l}
}

type interviewFilter struct {
	ApplicationID *uint `form:"applicationId"`
}

func (h *InterviewHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/interviews"), h.log)

	ez.RegisterAction(e, ez.Action[interviewFilter, []domain.Interview]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *interviewFilter) ([]domain.Interview, error) {
			list, err := h.svc.List(c.Request.Context(), ez.UserID(c), in.ApplicationID)
			return orEmpty(list), err
		},
	})

	ez.RegisterAction(e, ez.Action[service.NewInterview, *domain.Interview]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.NewInterview) (*domain.Interview, error) {
			return h.svc.Create(c.Request.Context(), ez.UserID(c), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Interview]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		ID:     true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Interview, error) {
			return h.svc.Get(c.Request.Context(), ez.UserID(c), ez.PathID(c))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.InterviewPatch, *domain.Interview]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		ID:     true,
		Owned:  h.owned,
		Handler: func(c *gin.Context, in *domain.InterviewPatch) (*domain.Interview, error) {
			return h.svc.Update(c.Request.Context(), ez.UserID(c), ez.PathID(c), *in)
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

func (h *InterviewHandler) owned(c *gin.Context, id uint) error {
	_, err := h.svc.Get(c.Request.Context(), ez.UserID(c), id)
	return err
}
