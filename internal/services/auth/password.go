package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes of its input. Passwords are
// digested first so any length is accepted and every byte counts.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func hashPassword(password string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword(passwordKey(password), cost)
}

func checkPassword(hash []byte, password string) error {
	return bcrypt.CompareHashAndPassword(hash, passwordKey(password))
}
