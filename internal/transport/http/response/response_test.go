package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		status int
		msg    string
		want   string
	}{
		{http.StatusBadRequest, "company is required", `{"message":"company is required"}`},
		{http.StatusInternalServerError, "", `{"message":"internal error"}`},
		{http.StatusTeapot, "", `{"message":"I'm a teapot"}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Abort(c, tt.status, tt.msg)

		assert.True(t, c.IsAborted())
		assert.Equal(t, tt.status, w.Code)
		assert.JSONEq(t, tt.want, w.Body.String())
	}
}
