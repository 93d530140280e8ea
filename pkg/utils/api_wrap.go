package utils

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string       `json:"status"`
	Code    int          `json:"code"`
	Message string       `json:"message,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldIssue `json:"errors,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func RespondValidation(c *gin.Context, issues []FieldIssue) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Message: "Invalid request",
		TraceID: c.GetString("trace_id"),
		Errors:  issues,
	})
}

// BindJSON binds the body into req and writes a 400 on failure.
// It reports whether the handler should continue.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			RespondValidation(c, issuesFromValidator(verrs))
			return false
		}
		RespondError(c, http.StatusBadRequest, "Invalid request format")
		return false
	}
	return true
}

// BindQuery mirrors BindJSON for query strings.
func BindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			RespondValidation(c, issuesFromValidator(verrs))
			return false
		}
		RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return false
	}
	return true
}

func issuesFromValidator(verrs validator.ValidationErrors) []FieldIssue {
	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{Field: fe.Field(), Issue: describeTag(fe)})
	}
	return issues
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

var registerOnce sync.Once

// RegisterJSONFieldNames makes validator report json field names instead of Go field names.
func RegisterJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

type errorMapping struct {
	target  error
	code    int
	message string
}

var serviceErrors = []errorMapping{
	{ErrMissingOrMalformedToken, http.StatusUnauthorized, "Authorization header missing or invalid"},
	{ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
	{ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrForbiddenRole, http.StatusForbidden, "Forbidden: insufficient permissions"},
	{ErrForbiddenOwner, http.StatusForbidden, "Forbidden: not the owner of this resource"},
	{ErrNotLinked, http.StatusForbidden, "Client is not linked to this therapist"},
	{ErrNotFound, http.StatusNotFound, "Not found"},
	{ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{ErrEmailAlreadyExists, http.StatusConflict, "Email already registered"},
	{ErrAlreadyLinked, http.StatusConflict, "Client already linked"},
	{ErrInviteExists, http.StatusConflict, "An invite for this email is already pending"},
	{ErrEmailBelongsToTherapist, http.StatusConflict, "Email belongs to a therapist account"},
	{ErrWriteConflict, http.StatusConflict, "Conflicting write, please retry"},
	{ErrInvalidSessionTransition, http.StatusConflict, "Session cannot move to the requested status"},
	{ErrInvalidOperationOnInvite, http.StatusBadRequest, "Operation not allowed on a pending invite"},
}

func HandleServiceError(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		RespondValidation(c, verr.Issues)
		return
	}
	if errors.Is(err, ErrValidation) {
		RespondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			RespondError(c, m.code, m.message)
			return
		}
	}

	zap.L().Error("unhandled service error",
		zap.Error(err),
		zap.String("trace_id", c.GetString("trace_id")),
		zap.String("path", c.FullPath()),
	)
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
