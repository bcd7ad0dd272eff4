// Package validation provides custom validation rules for the application.
package validation

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/hajjcare/accounts/internal/errors"
)

var (
	nationalIDRegex     = regexp.MustCompile(`^\d{14}$`)
	passportNumberRegex = regexp.MustCompile(`^[A-Za-z0-9]{6,20}$`)
	mobileNumberRegex   = regexp.MustCompile(`^[0-9]{10,15}$`)
	usernameRegex       = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)
)

// WrapValidationError converts jellydator validation errors into an ErrInvalidInput
// public error that lists every failing field. Errors that are not field errors are
// reported under the "_" key.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrors validation.Errors
	if !errors.As(err, &fieldErrors) {
		return apperrors.Invalid("validation failed", map[string]string{"_": err.Error()})
	}

	fields := make(map[string]string, len(fieldErrors))
	for field, fieldErr := range fieldErrors {
		if fieldErr == nil {
			continue
		}
		fields[field] = fieldErr.Error()
	}
	return apperrors.Invalid("validation failed", fields)
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NationalID validates a 14 digit national identity number.
var NationalID = validation.NewStringRuleWithError(
	nationalIDRegex.MatchString,
	validation.NewError(
		"validation_national_id",
		"national ID must be exactly 14 digits and contain only numbers",
	),
)

// PassportNumber validates an alphanumeric passport number of 6 to 20 characters.
var PassportNumber = validation.NewStringRuleWithError(
	passportNumberRegex.MatchString,
	validation.NewError(
		"validation_passport_number",
		"passport number must be 6 to 20 letters or digits",
	),
)

// MobileNumber validates a mobile number of 10 to 15 digits.
var MobileNumber = validation.NewStringRuleWithError(
	mobileNumberRegex.MatchString,
	validation.NewError("validation_mobile_number", "mobile number must be 10 to 15 digits"),
)

// Username validates account usernames.
var Username = validation.NewStringRuleWithError(
	usernameRegex.MatchString,
	validation.NewError(
		"validation_username",
		"username must be 3 to 50 letters, digits, dots, dashes or underscores",
	),
)

// PasswordLength enforces the minimum password length for operator-set passwords.
var PasswordLength = validation.Length(8, 128)
