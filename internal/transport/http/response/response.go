package response

import "github.com/gin-gonic/gin"

// Message is the body of every error response.
type Message struct {
	Message string `json:"message"`
}

// Abort stops the chain and writes {"message": msg}. An empty msg falls back
// to the status text.
func Abort(c *gin.Context, status int, msg string) {
	if msg == "" {
		msg = Text(status)
	}
	c.AbortWithStatusJSON(status, Message{Message: msg})
}
