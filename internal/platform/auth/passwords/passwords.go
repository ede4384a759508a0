// Package passwords hashes and checks account passwords.
package passwords

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooWeak is returned by ValidateNew for passwords failing complexity rules.
var ErrTooWeak = errors.New("password must be at least 8 characters and contain a letter and a digit")

// Hash derives a bcrypt hash from the plaintext password.
func Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// Check reports whether the plaintext password matches the stored hash.
func Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateNew enforces the minimum complexity for newly chosen passwords:
// at least 8 characters with at least one letter and one digit.
func ValidateNew(password string) error {
	if len(password) < 8 {
		return ErrTooWeak
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrTooWeak
	}
	return nil
}
