// Package validation checks request payloads before any store access and
// reports the first failing field as a single message.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"duckstore/internal/apperrors"
	"duckstore/internal/models"
)

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateRegistration checks a registration payload.
func (v *Validator) ValidateRegistration(req *models.RegisterRequest) error {
	return v.check(req)
}

// ValidateLogin checks a login payload.
func (v *Validator) ValidateLogin(req *models.LoginRequest) error {
	return v.check(req)
}

// ValidateProduct checks a product creation payload.
func (v *Validator) ValidateProduct(in *models.ProductInput) error {
	return v.check(in)
}

// ValidateProductPatch checks a partial update; an empty patch is rejected.
func (v *Validator) ValidateProductPatch(p *models.ProductPatch) error {
	if err := v.check(p); err != nil {
		return err
	}
	if len(p.Columns()) == 0 {
		return apperrors.Validation("update must contain at least one field")
	}
	return nil
}

func (v *Validator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.Validation(err.Error())
	}
	return apperrors.Validation(describe(validationErrors[0]))
}

// describe renders a field error the way clients of the original API saw it,
// e.g. `"name" length must be at least 3 characters long`.
func describe(fe validator.FieldError) string {
	field := fmt.Sprintf("%q", fe.Field())
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if isString {
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
