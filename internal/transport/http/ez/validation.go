package ez

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init makes gin's validator report JSON field names.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindError turns a gin binding failure into a 400 (or 413) with a message
// naming the offending field.
func bindError(err error) error {
	var mbe *http.MaxBytesError
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	var pe *time.ParseError
	var ne *strconv.NumError
	var verrs validator.ValidationErrors

	switch {
	case errors.As(err, &mbe):
		return &AErr{Code: http.StatusRequestEntityTooLarge, Msg: "request body too large"}
	case errors.Is(err, io.EOF):
		return BadRequest("request body must be a JSON object")
	case errors.As(err, &se), errors.Is(err, io.ErrUnexpectedEOF):
		return BadRequest("invalid json")
	case errors.As(err, &ute):
		if ute.Field == "" {
			return BadRequest("a field has the wrong type")
		}
		return BadRequest(ute.Field + " must be a " + jsonKind(ute.Type))
	case errors.As(err, &pe):
		return BadRequest("dates must be RFC 3339 timestamps")
	case errors.As(err, &ne):
		return BadRequest("invalid query parameter")
	case errors.As(err, &verrs) && len(verrs) > 0:
		fe := verrs[0]
		return BadRequest(fe.Field() + " " + formatFieldError(fe))
	default:
		return BadRequest("invalid payload")
	}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	default:
		if param != "" {
			return "failed " + fe.Tag() + "=" + param
		}
		return "failed " + fe.Tag()
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value of another type"
	}
	switch {
	case isNumberKind(t.Kind()):
		return "number"
	case t.Kind() == reflect.Bool:
		return "boolean"
	case t.Kind() == reflect.String:
		return "string"
	case t.Kind() == reflect.Slice:
		return "list"
	default:
		return "object"
	}
}
