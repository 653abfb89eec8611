package middleware

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
)

var setupOnce sync.Once

// SetupValidator names fields by their json tag and registers the domain tags
// unit_status and billing_cycle. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("unit_status", func(fl validator.FieldLevel) bool {
			return property.UnitStatus(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("billing_cycle", func(fl validator.FieldLevel) bool {
			return property.BillingCycle(fl.Field().String()).IsValid()
		})
	})
}

// FormatValidationErrors turns binding errors into the validation envelope
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}

	message := "Request validation failed"
	if len(details) == 0 && err != nil {
		// malformed JSON or a type mismatch
		message = "Invalid request body: " + err.Error()
	}
	return dto.NewValidationErrorResponse(message, requestID, details)
}

// HandleValidationError writes a 400 validation response
func HandleValidationError(c *gin.Context, err error) {
	resp := FormatValidationErrors(err, GetRequestID(c))
	c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeValidation), resp)
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	case "numeric":
		return "Must be numeric"
	case "unit_status":
		return "Must be one of: vacant occupied maintenance reserved"
	case "billing_cycle":
		return "Must be one of: monthly quarterly annually per_use"
	default:
		return "Invalid value"
	}
}
