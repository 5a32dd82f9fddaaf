package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationConfig struct {
	CustomValidators    map[string]validator.Func
	CustomErrorMessages map[string]string
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		CustomErrorMessages: map[string]string{
			"required": "field is required",
			"email":    "invalid email format",
			"min":      "value is too small",
			"max":      "value is too large",
			"gt":       "value must be greater",
		},
	}
}

// Validation registers custom validators on gin's binding engine and
// renders any validator errors handlers attached via c.Error as a
// field-level 400.
func Validation(config ValidationConfig) gin.HandlerFunc {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		for tag, fn := range config.CustomValidators {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(err)
			}
		}

		// Report the json field name, not the Go struct field.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		var fieldErrors []ValidationError
		for _, err := range c.Errors {
			errs, ok := err.Err.(validator.ValidationErrors)
			if !ok {
				continue
			}
			for _, e := range errs {
				msg := config.CustomErrorMessages[e.Tag()]
				if msg == "" {
					msg = e.Error()
				}
				fieldErrors = append(fieldErrors, ValidationError{
					Field:   e.Field(),
					Message: msg,
				})
			}
		}

		if len(fieldErrors) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"errors": fieldErrors,
			})
		}
	}
}
