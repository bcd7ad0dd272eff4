// Package dto provides data transfer objects for account profile endpoints.
package dto

import (
	"time"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
)

// AccountResponse is the public profile of an account. The password hash is never included.
type AccountResponse struct {
	ID             int64     `json:"id"`
	HajjID         *int64    `json:"hajjId,omitempty"`
	FirstName      *string   `json:"firstName,omitempty"`
	MiddleName     *string   `json:"middleName,omitempty"`
	LastName       *string   `json:"lastName,omitempty"`
	Username       *string   `json:"username,omitempty"`
	NationalID     *string   `json:"nationalId,omitempty"`
	PassportNumber *string   `json:"passportNumber,omitempty"`
	MobileNumber   *string   `json:"mobileNumber,omitempty"`
	Role           string    `json:"role"`
	HasPassword    bool      `json:"hasPassword"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// MapAccountToResponse converts a domain account into its public profile.
func MapAccountToResponse(account *accountDomain.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		HajjID:         account.HajjID,
		FirstName:      account.FirstName,
		MiddleName:     account.MiddleName,
		LastName:       account.LastName,
		Username:       account.Username,
		NationalID:     account.NationalID,
		PassportNumber: account.PassportNumber,
		MobileNumber:   account.MobileNumber,
		Role:           account.Role.String(),
		HasPassword:    account.HasPassword(),
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}
