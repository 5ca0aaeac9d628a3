package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-job-tracker/internal/core/auth"
	"go-job-tracker/internal/domain"
	"go-job-tracker/internal/service"
	"go-job-tracker/internal/transport/http/ez"
)

type AuthHandler struct {
	svc    *service.AuthService
	cookie auth.Cookie
	log    *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, cookie auth.Cookie, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie, log: l}
}

func (h *AuthHandler) Priority() int { return 10 }

func (h *AuthHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/auth"), h.log)

	ez.RegisterAction(e, ez.Action[service.RegisterInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.RegisterInput) (*domain.User, error) {
			u, iss, err := h.svc.Register(c.Request.Context(), *in)
			if err != nil {
				return nil, err
			}
			h.cookie.Set(c, iss.Token, iss.ExpiresAt)
			return u, nil
		},
	})

	ez.RegisterAction(e, ez.Action[service.LoginInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.LoginInput) (*domain.User, error) {
			u, iss, err := h.svc.Login(c.Request.Context(), *in)
			if errors.Is(err, domain.ErrUnauthorized) {
				return nil, ez.Unauthorized("invalid username or password")
			}
			if err != nil {
				return nil, err
			}
			h.cookie.Set(c, iss.Token, iss.ExpiresAt)
			return u, nil
		},
	})

	// logout always clears the cookie, even when the session is already gone
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodPost,
		Path:   "/logout",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			err := h.svc.Logout(c.Request.Context(), h.cookie.Read(c))
			h.cookie.Clear(c)
			return struct{}{}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.svc.Me(c.Request.Context(), ez.UserID(c))
		},
	})
}
