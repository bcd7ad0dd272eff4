// Package dto provides data transfer objects for the token endpoints.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
)

// GrantTokenRequest is the body of POST /v1/token.
type GrantTokenRequest struct {
	GrantType      string `json:"grant_type"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"` //nolint:gosec // request input, never logged
	NationalID     string `json:"nationalId,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	RefreshToken   string `json:"refresh_token,omitempty"` //nolint:gosec // request input, never logged

	typeErrors validation.Errors
}

var errNotAString = validation.NewError("validation_is_string", "must be a string")

// DecodeGrantTokenRequest decodes body one field at a time. A field holding a non-string
// JSON value is left empty and recorded as a type error instead of failing the body.
// Only a body that is not a JSON object returns an error.
func DecodeGrantTokenRequest(body []byte) (*GrantTokenRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	req := &GrantTokenRequest{}
	fields := []struct {
		name string
		dst  *string
	}{
		{"grant_type", &req.GrantType},
		{"username", &req.Username},
		{"password", &req.Password},
		{"nationalId", &req.NationalID},
		{"passportNumber", &req.PassportNumber},
		{"refresh_token", &req.RefreshToken},
	}
	for _, field := range fields {
		value, ok := raw[field.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, field.dst); err != nil {
			if req.typeErrors == nil {
				req.typeErrors = validation.Errors{}
			}
			req.typeErrors[field.name] = errNotAString
		}
	}
	return req, nil
}

// HasTypeErrors reports whether any field had the wrong JSON type.
func (r *GrantTokenRequest) HasTypeErrors() bool {
	return len(r.typeErrors) > 0
}

// ToDomain converts the request into a grant request. Validation happens in the use case.
func (r *GrantTokenRequest) ToDomain() *authDomain.GrantRequest {
	return &authDomain.GrantRequest{
		GrantType:      authDomain.GrantType(r.GrantType),
		Username:       r.Username,
		Password:       r.Password,
		NationalID:     r.NationalID,
		PassportNumber: r.PassportNumber,
		RefreshToken:   r.RefreshToken,
		TypeErrors:     r.typeErrors,
	}
}

// RevokeTokenRequest is the body of POST /v1/token/revoke.
type RevokeTokenRequest struct {
	RefreshToken string `json:"refreshToken"` //nolint:gosec // request input, never logged
}
