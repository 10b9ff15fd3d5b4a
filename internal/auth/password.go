package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
)

// bcryptCost matches the work factor used for all stored password hashes.
const bcryptCost = 12

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored hash.
// Returns ErrUnauthorized on mismatch so callers never leak which part
// of a credential check failed.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}
