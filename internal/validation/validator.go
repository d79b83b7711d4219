package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/freelance-directory/internal/domain"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// FieldErrors maps a json field name to a human readable message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator wraps go-playground/validator with the directory's custom tags.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator. Field names in errors come from json tags.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerRules(v)
	return &Validator{validate: v}
}

// Struct validates s and returns FieldErrors when any rule fails.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func registerRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
	mustRegister("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister("skill", optional(func(s string) bool { return domain.Skill(s).Valid() }))
	mustRegister("area", optional(func(s string) bool { return domain.Area(s).Valid() }))
	mustRegister("fee", optional(func(s string) bool { return domain.RequestFee(s).Valid() }))
}

// optional leaves empty values to the required tag.
func optional(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || valid(value)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "url":
		return "must be a valid URL"
	case "username":
		return "may contain only letters, digits and @/./+/-/_"
	case "skill":
		return "unknown skill"
	case "area":
		return "unknown area"
	case "fee":
		return "unknown request fee"
	default:
		return fmt.Sprintf("invalid value (failed on %q)", fe.Tag())
	}
}
