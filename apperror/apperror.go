// Package apperror defines the error taxonomy shared by handlers and services
// and the single place where errors become HTTP responses.
package apperror

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindInvalidToken
	KindInvalidCredentials
	KindForbidden
	KindNotFound
	KindConflict
)

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindInvalidToken, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidToken:
		return "invalid_token"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is an error with a kind, a client-safe message and optional per-field details.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind so callers can write errors.Is(err, apperror.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is checks.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrInternal           = &Error{Kind: KindInternal}
)

func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func InvalidToken(msg string) *Error {
	return &Error{Kind: KindInvalidToken, Message: msg}
}

// InvalidCredentials is deliberately generic so it never reveals whether an account exists.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid email or password"}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// FromDB maps gorm errors onto the taxonomy.
func FromDB(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(what)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict(what + " already exists")
	}
	return Internal("Failed to access "+strings.ToLower(what), err)
}

// FromBinding converts gin binding failures into a validation error with per-field messages.
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldName(fe)] = fieldMessage(fe)
		}
		return Validation("Invalid input", fields)
	}
	return &Error{Kind: KindValidation, Message: "Malformed request body", Err: err}
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// Respond writes err as JSON and aborts the gin chain.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error", err)
	}

	if appErr.Kind == KindInternal {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
	}

	body := gin.H{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.AbortWithStatusJSON(appErr.Kind.Status(), body)
}
