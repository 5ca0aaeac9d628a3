// Package ez registers typed JSON actions on a gin router group: bind the
// input, run the handler and map its error onto a status code.
package ez

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-job-tracker/internal/domain"
	resp "go-job-tracker/internal/transport/http/response"
)

type Binder string

const (
	BindJSON  Binder = "json"  // request body
	BindQuery Binder = "query" // ?a=b
	BindNone  Binder = "none"  // handler reads c.Param / cookies itself
)

const (
	KeyUserID = "userId"
	keyPathID = "ez.pathId"
)

// AErr carries an explicit status for failures that are not domain errors.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

func SetUserID(c *gin.Context, id uint) { c.Set(KeyUserID, id) }

// UserID is the authenticated caller, or 0.
func UserID(c *gin.Context) uint { return c.GetUint(KeyUserID) }

// PathID is the :id parameter of an action registered with ID set.
func PathID(c *gin.Context) uint { return c.GetUint(keyPathID) }

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

func (e EZ) Group(path string) EZ { return EZ{g: e.g.Group(path), log: e.log} }

// Action is one endpoint: I is the bound input, O the response body.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	Auth   bool // 401 unless the session middleware resolved a user
	ID     bool // parse :id first; anything but a positive integer is 404
	Status int  // success status, 200 when zero; 204 writes no body
	// Owned runs after the id is parsed and before the body is bound, so a
	// missing or foreign id is reported ahead of any payload error.
	Owned   func(c *gin.Context, id uint) error
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		if a.Auth && UserID(c) == 0 {
			Fail(c, e.log, domain.ErrUnauthorized)
			return
		}
		if a.ID {
			id, ok := parseID(c.Param("id"))
			if !ok {
				Fail(c, e.log, domain.ErrNotFound)
				return
			}
			c.Set(keyPathID, id)
			if a.Owned != nil {
				if err := a.Owned(c, id); err != nil {
					Fail(c, e.log, err)
					return
				}
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			Fail(c, e.log, bindError(bindErr))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, e.log, err)
			return
		}
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, out)
	}
	e.g.Handle(strings.ToUpper(a.Method), a.Path, h)
}

func parseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Fail aborts with the status err maps to. 5xx causes are logged and
// replaced by a generic message.
func Fail(c *gin.Context, l *zap.Logger, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError && l != nil {
		l.Error("request failed",
			zap.String("rid", c.Writer.Header().Get("X-Request-ID")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	resp.Abort(c, status, msg)
}

func classify(err error) (int, string) {
	var ae *AErr
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ae):
		if ae.Code >= http.StatusInternalServerError {
			return ae.Code, resp.Text(ae.Code)
		}
		return ae.Code, ae.Error()
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Msg
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ""
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ""
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ""
	default:
		return http.StatusInternalServerError, ""
	}
}
