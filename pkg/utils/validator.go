package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ss-infotech2024/Event-Finder/internal/models"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Custom validations
	v.RegisterValidation("event_category", validateEventCategory)

	return &Validator{
		validate: v,
	}
}

// Struct validates s and converts the first failure into a field-specific
// ValidationError.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return models.NewValidationError(fe.Field(), messageForTag(fe))
	}
	return err
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return "must not be negative"
	case "event_category":
		return fmt.Sprintf("must be one of: %s", strings.Join(models.Categories, ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Accepts canonical category names and their known aliases.
func validateEventCategory(fl validator.FieldLevel) bool {
	_, ok := models.NormalizeCategory(fl.Field().String())
	return ok
}
