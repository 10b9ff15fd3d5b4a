package auth

import (
	"errors"
	"testing"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in plaintext")
	}

	if err := CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}

	if err := CheckPassword(hash, "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("wrong password: got %v, want unauthorized", err)
	}
}
