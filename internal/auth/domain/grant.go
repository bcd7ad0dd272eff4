package domain

import (
	"errors"

	validation "github.com/jellydator/validation"

	customValidation "github.com/hajjcare/accounts/internal/validation"
)

// GrantRequest carries exactly one credential variant selected by GrantType.
// The json tags name the fields in validation errors.
type GrantRequest struct {
	GrantType      GrantType `json:"grant_type"`
	Username       string    `json:"username"`
	Password       string    `json:"password"` //nolint:gosec // request input, never logged
	NationalID     string    `json:"nationalId"`
	PassportNumber string    `json:"passportNumber"`
	RefreshToken   string    `json:"refresh_token"` //nolint:gosec // request input, never logged

	// TypeErrors holds fields whose JSON value had the wrong type. Such a field is left empty.
	TypeErrors validation.Errors `json:"-"`
}

// Validate reports every structural problem of the request at once, keyed by JSON field name.
// Fields that belong to a different grant type must be empty. A type error replaces any
// other error of the same field.
func (r *GrantRequest) Validate() error {
	fieldErrors, err := r.fieldErrors()
	if err != nil {
		return customValidation.WrapValidationError(err)
	}
	for field, typeErr := range r.TypeErrors {
		if fieldErrors == nil {
			fieldErrors = validation.Errors{}
		}
		fieldErrors[field] = typeErr
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return customValidation.WrapValidationError(fieldErrors)
}

func (r *GrantRequest) fieldErrors() (validation.Errors, error) {
	if r.GrantType == "" {
		return validation.Errors{
			"grant_type": validation.NewError("validation_required", "cannot be blank"),
		}, nil
	}
	if !r.GrantType.IsValid() {
		return validation.Errors{
			"grant_type": validation.NewError("validation_grant_type", "unsupported grant type"),
		}, nil
	}

	is := func(g GrantType) bool { return r.GrantType == g }

	err := validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.When(is(GrantTypePassword), validation.Required, customValidation.NotBlank).
				Else(forbidden)),
		validation.Field(&r.Password,
			validation.When(is(GrantTypePassword), validation.Required).Else(forbidden)),
		validation.Field(&r.NationalID,
			validation.When(is(GrantTypeNationalID), validation.Required, customValidation.NationalID).
				Else(forbidden)),
		validation.Field(&r.PassportNumber,
			validation.When(is(GrantTypePassportNumber), validation.Required, customValidation.PassportNumber).
				Else(forbidden)),
		validation.Field(&r.RefreshToken,
			validation.When(is(GrantTypeRefreshToken), validation.Required).Else(forbidden)),
	)
	if err == nil {
		return nil, nil
	}
	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		return fieldErrors, nil
	}
	return nil, err
}

var forbidden = validation.Empty.Error("must be empty for this grant type")
