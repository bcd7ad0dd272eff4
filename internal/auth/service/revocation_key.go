package service

import (
	"crypto/sha256"
	"encoding/hex"
)

const revocationKeyPrefix = "revoked:"

// RevocationKey derives the ledger key of a refresh token. Only the SHA-256 digest of
// the token is stored, never the bearer material itself.
func RevocationKey(token string) string {
	hash := sha256.Sum256([]byte(token))
	return revocationKeyPrefix + hex.EncodeToString(hash[:])
}
