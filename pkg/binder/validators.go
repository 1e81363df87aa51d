package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	dateRE = regexp.MustCompile(`^\d{4}-(0[0-9]|1[0-2])-(0[0-9]|1[0-9]|2[0-9]|3[0-1])$`)
	pinRE  = regexp.MustCompile(`^\d{6,8}$`)
	slugRE = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// dateValidator accepts YYYY-MM-DD or the empty string, so it can be used to
// clear a value. Add `ne=` when the date is required.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return dateRE.MatchString(value)
}

// pinValidator ensures an operator PIN is 6 to 8 digits.
func pinValidator(fl validator.FieldLevel) bool {
	return pinRE.MatchString(fl.Field().String())
}

func slugValidator(fl validator.FieldLevel) bool {
	return slugRE.MatchString(fl.Field().String())
}
