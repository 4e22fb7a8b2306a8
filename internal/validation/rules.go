package validation

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/iliyamo/user-dashboard/internal/model"
)

// PasswordSymbols is the set a password must draw at least one character from.
const PasswordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?~`

// strongPassword requires a digit, an upper and a lower case letter and a
// symbol from PasswordSymbols, with no whitespace.  Length is left to the
// min/max tags.
func strongPassword(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// maxBytes caps the UTF-8 length of a string.  bcrypt refuses passwords
// longer than 72 bytes, which a 64-character password can exceed.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// genderValue accepts male, female or other in any letter case.
func genderValue(fl validator.FieldLevel) bool {
	return model.Gender(strings.ToLower(fl.Field().String())).Valid()
}

// phoneFor builds a validation that accepts numbers valid in region.
func phoneFor(region string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		num, err := phonenumbers.Parse(fl.Field().String(), region)
		if err != nil {
			return false
		}
		return phonenumbers.IsValidNumberForRegion(num, region)
	}
}

// message renders one field error the way clients see it.
func message(fe validator.FieldError) string {
	name := `"` + fe.Field() + `"`
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return name + " length must be at least " + fe.Param() + " characters long"
	case "max":
		return name + " length must be less than or equal to " + fe.Param() + " characters long"
	case "email":
		return name + " must be a valid email"
	case "uuid":
		return name + " must be a valid UUID"
	case "password":
		return name + " must contain a digit, an uppercase letter, a lowercase letter and one of " +
			PasswordSymbols + ", and no whitespace"
	case "maxbytes":
		return name + " must be at most " + fe.Param() + " bytes long"
	case "phone":
		return name + " must be a valid phone number"
	case "gender":
		return name + " must be one of [male, female, other]"
	default:
		return name + " failed on the '" + fe.Tag() + "' rule"
	}
}
