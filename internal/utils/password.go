package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordLength is returned when a plain password falls outside the
// accepted 8–20 character range.  The check runs before hashing so the
// limit applies to what the user typed, not to the bcrypt output.
var ErrPasswordLength = errors.New("password must be between 8 and 20 characters")

// CheckPasswordLength validates the plain password length ahead of hashing.
func CheckPasswordLength(plain string) error {
	if len(plain) < 8 || len(plain) > 20 {
		return ErrPasswordLength
	}
	return nil
}

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	if err := CheckPasswordLength(plain); err != nil {
		return "", err
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
