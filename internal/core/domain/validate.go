package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return strings.ToLower(f.Name)
			}
			return name
		})
		_ = validate.RegisterValidation("target_format", func(fl validator.FieldLevel) bool {
			_, err := ParseTargetFormat(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks s against its `validate` struct tags and converts the first
// failure into a parse error naming the offending field.
func Validate(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrParse.WithCause(err)
	}
	return ErrParse.WithDetails(describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("`%s` is required", field)
	case "required_without":
		return fmt.Sprintf("one of `%s` or `%s` required", field, strings.ToLower(fe.Param()))
	case "excluded_with":
		return fmt.Sprintf("either `%s` or `%s` expected, not both", field, strings.ToLower(fe.Param()))
	case "url", "http_url":
		return fmt.Sprintf("`%s` is not a valid URL: %v", field, fe.Value())
	case "min":
		return fmt.Sprintf("`%s` needs at least %s value(s)", field, fe.Param())
	case "gt":
		return fmt.Sprintf("`%s` must be greater than %s", field, fe.Param())
	case "target_format":
		return fmt.Sprintf("unknown target format: %v", fe.Value())
	default:
		return fmt.Sprintf("`%s` failed %q validation", field, fe.Tag())
	}
}
