package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-job-tracker/internal/core/auth"
	"go-job-tracker/internal/domain"
	"go-job-tracker/internal/transport/http/ez"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uint, error)
}

// Session resolves the session cookie to a user id. A missing or stale
// cookie leaves the request anonymous; actions with Auth set then answer
// 401. Only a failing session store aborts here.
func Session(a Authenticator, cookie auth.Cookie, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := cookie.Read(c)
		if tok == "" {
			c.Next()
			return
		}
		uid, err := a.Authenticate(c.Request.Context(), tok)
		switch {
		case err == nil:
			ez.SetUserID(c, uid)
		case errors.Is(err, domain.ErrUnauthorized):
		default:
			ez.Fail(c, l, err)
			return
		}
		c.Next()
	}
}
