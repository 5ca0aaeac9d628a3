package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-job-tracker/internal/domain"
	"go-job-tracker/internal/service"
	"go-job-tracker/internal/transport/http/ez"
)

type DocumentHandler struct {
	svc *service.DocumentService
	log *zap.Logger
}

func NewDocumentHandler(svc *service.DocumentService, l *zap.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: l}
}

func (h *DocumentHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/documents"), h.log)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Document]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Document, error) {
			list, err := h.svc.List(c.Request.Context(), ez.UserID(c))
			return orEmpty(list), err
		},
	})

	ez.RegisterAction(e, ez.Action[service.NewDocument, *domain.Document]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.NewDocument) (*domain.Document, error) {
			return h.svc.Create(c.Request.Context(), ez.UserID(c), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Document]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		ID:     true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Document, error) {
			return h.svc.Get(c.Request.Context(), ez.UserID(c), ez.PathID(c))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.DocumentPatch, *domain.Document]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		ID:     true,
		Owned:  h.owned,
		Handler: func(c *gin.Context, in *domain.DocumentPatch) (*domain.Document, error) {
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

func (h *DocumentHandler) owned(c *gin.Context, id uint) error {
	_, err := h.svc.Get(c.Request.Context(), ez.UserID(c), id)
	return err
}
