package domain

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func projectValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// Validate checks required fields and URL formats. It returns a
// *ValidationError describing the first violation.
func (p ProjectInput) Validate() error {
	err := projectValidator().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Message: describe(fe.Tag())}
	}
	return &ValidationError{Message: err.Error()}
}

func describe(tag string) string {
	switch tag {
	case "required":
		return "field required"
	case "notblank":
		return "must not be blank"
	case "http_url":
		return "must be a valid http or https URL"
	default:
		return "failed on '" + tag + "' validation"
	}
}
