package response

import "net/http"

// messages holds the generic body text per status. Internal failures never
// carry more detail than this.
var messages = map[int]string{
	http.StatusBadRequest:            "bad request",
	http.StatusUnauthorized:          "unauthorized",
	http.StatusForbidden:             "forbidden",
	http.StatusNotFound:              "not found",
	http.StatusRequestEntityTooLarge: "request body too large",
	http.StatusTooManyRequests:       "too many requests",
	http.StatusInternalServerError:   "internal error",
	http.StatusServiceUnavailable:    "server busy",
	http.StatusGatewayTimeout:        "timeout",
}

// Text returns the default message for status.
func Text(status int) string {
	if m, ok := messages[status]; ok {
		return m
	}
	return http.StatusText(status)
}
