package security

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword digests a plain text password to lowercase hex.
// Unsalted SHA-256: verification is exact string equality against the stored
// digest, which is the compatibility contract of this system. Demo-grade only.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))

	return hex.EncodeToString(sum[:])
}

// helper that compares a stored digest with a plaintext password.

func CheckPassword(hash, plain string) error {
	if hash != HashPassword(plain) {
		return ErrPasswordMismatch
	}

	return nil
}
