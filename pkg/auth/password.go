package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLength = 16   // bytes of randomness per user
	iterations = 1000 // PBKDF2 iteration count
	keyLength  = 64   // derived key bytes
)

// GenerateSalt returns a fresh hex-encoded random salt, used once per user.
func GenerateSalt() (string, error) {
	buf := make([]byte, SaltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a hex-encoded key from the password and salt using
// PBKDF2-SHA512. The same (password, salt) pair always yields the same hash.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	return hex.EncodeToString(key)
}

// VerifyPassword reports whether password hashes to expected under salt.
func VerifyPassword(password, salt, expected string) bool {
	derived := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(expected)) == 1
}
