package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their json names so error details match the payload.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ErrorResponse is the body of every error the service returns.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type BadRequestErrorResponse struct {
	ErrorResponse
	Details []ValidationError `json:"details"`
}

func ValidateRequest(obj any) []ValidationError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []ValidationError{{Message: err.Error(), Type: "invalid"}}
	}

	validationErrors := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fe.Field(),
			Message: getErrorMsg(fe),
			Type:    fe.Tag(),
		})
	}

	return validationErrors
}

func getErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value must be at most " + err.Param() + " characters"
	case "datetime":
		return "Date must use the format YYYY-MM-DD"
	default:
		return "Invalid value"
	}
}

func RespondWithValidationError(c *gin.Context, validationErrors []ValidationError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, BadRequestErrorResponse{
		ErrorResponse: newErrorResponse(http.StatusBadRequest, "Invalid request data"),
		Details:       validationErrors,
	})
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, newErrorResponse(code, message))
}

func newErrorResponse(code int, message string) ErrorResponse {
	return ErrorResponse{
		Status:  code,
		Error:   http.StatusText(code),
		Message: message,
	}
}
