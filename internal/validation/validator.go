// Package validation checks request bodies with struct tags. Besides the
// built-in tags it knows notblank and section.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/retail-admin/backoffice/internal/sections"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("section", validateSection)
	return v
}

// Struct validates s and turns the first failing field into a message a
// client can show next to the input.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return describe(verrs[0])
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Errorf("%s is required", fe.Field())
	case "section":
		return fmt.Errorf("%s: unknown section %q", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateSection(fl validator.FieldLevel) bool {
	return sections.Has(fl.Field().String())
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
