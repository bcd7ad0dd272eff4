package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hajjcare/accounts/internal/errors"
)

func TestParseRole(t *testing.T) {
	for _, role := range AllRoles() {
		t.Run(role.String(), func(t *testing.T) {
			parsed, err := ParseRole(string(role))
			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		})
	}

	t.Run("case sensitive", func(t *testing.T) {
		_, err := ParseRole("Admin")
		assert.ErrorIs(t, err, ErrInvalidRole)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseRole("nurse")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestAllRoles_ReturnsCopy(t *testing.T) {
	roles := AllRoles()
	roles[0] = "root"

	assert.Equal(t, RoleAdmin, AllRoles()[0])
	assert.False(t, Role("root").IsValid())
}

func TestAccount_HasPassword(t *testing.T) {
	empty := ""
	hash := "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"

	assert.False(t, (&Account{}).HasPassword())
	assert.False(t, (&Account{HashedPassword: &empty}).HasPassword())
	assert.True(t, (&Account{HashedPassword: &hash}).HasPassword())
}
