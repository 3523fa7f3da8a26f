package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/dto"
)

// slugPattern matches catalog identifiers such as "classic-oxford-shirt".
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var setupOnce sync.Once

// SetupValidator configures gin's validator: errors name the JSON (or
// form) field, and the "slug" tag is available to request structs.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return ""
}

// FormatValidationErrors converts a binding error into the validation
// envelope, one detail per failed field.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	errors.As(err, &fieldErrs)

	details := make([]dto.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return dto.Failure(dto.ErrCodeValidation, "Request validation failed", dto.RequestID(requestID), dto.Details(details))
}

// HandleValidationError answers 400 with FormatValidationErrors.
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// Messages by tag. Length tags on strings get a " characters" suffix.
var validationMessages = map[string]string{
	"required": "This field is required",
	"min":      "Must be at least ",
	"max":      "Must be at most ",
	"gte":      "Must be greater than or equal to ",
	"lte":      "Must be less than or equal to ",
	"oneof":    "Must be one of: ",
	"uuid":     "Invalid UUID format",
	"alphanum": "Must be alphanumeric",
	"slug":     "Must be lowercase letters, digits and hyphens",
}

func validationMessage(fe validator.FieldError) string {
	msg, ok := validationMessages[fe.Tag()]
	if !ok {
		return "Invalid value"
	}
	if !strings.HasSuffix(msg, " ") {
		return msg
	}
	msg += fe.Param()
	if (fe.Tag() == "min" || fe.Tag() == "max") && fe.Kind() == reflect.String {
		msg += " characters"
	}
	return msg
}
