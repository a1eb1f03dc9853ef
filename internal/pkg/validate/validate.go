package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{2,20}$`)

// v is the package-level singleton validator. Custom rules are registered in
// init() before the first call to Struct.
var v = validator.New(validator.WithRequiredStructEnabled())

func init() {
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return Username(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// Username reports whether s is 2-20 letters, digits or underscores.
func Username(s string) bool {
	return usernamePattern.MatchString(s)
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, message(fe))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be no more than %s characters long", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, fe.Param())
	case "email":
		return "Invalid email address"
	case "username":
		return "Username must be 2-20 characters and use only letters, numbers, or underscores"
	default:
		return fmt.Sprintf("field '%s' failed '%s'", field, fe.Tag())
	}
}
