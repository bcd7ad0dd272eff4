// Package repository implements the revocation ledger backends.
//
// A ledger records "this refresh token is revoked" under a derived key until the
// token would have expired anyway. Entries never outlive their ttl and a ttl that is
// not positive is rejected with ErrInvalidTTL.
package repository
