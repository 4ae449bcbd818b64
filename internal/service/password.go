package service

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters for password digests
const (
	passwordSaltLen   = 16
	passwordTime      = 1
	passwordMemory    = 64 * 1024
	passwordThreads   = 4
	passwordDigestLen = 32
)

// newPasswordSalt returns a fresh random salt
func newPasswordSalt() ([]byte, error) {
	salt := make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// hashPassword derives the stored digest for a password and salt
func hashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, passwordTime, passwordMemory, passwordThreads, passwordDigestLen)
}

// verifyPassword reports whether the candidate password matches the
// stored digest, in constant time
func verifyPassword(password string, salt, digest []byte) bool {
	candidate := hashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}
