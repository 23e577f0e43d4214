package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashingLifecycle(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	password := "S3curePass!"
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if hash == "" {
		t.Fatal("expected hash to be populated")
	}

	if err := hasher.Verify(hash, password); err != nil {
		t.Fatalf("expected password to verify, got error: %v", err)
	}

	if err := hasher.Verify(hash, "wrong"); err == nil {
		t.Fatal("expected verification to fail for wrong password")
	}
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	hasher := NewPasswordHasher(99)
	if hasher.cost != DefaultBcryptCost {
		t.Fatalf("expected out-of-range cost to fall back to %d, got %d", DefaultBcryptCost, hasher.cost)
	}

	hasher = NewPasswordHasher(bcrypt.MinCost)
	if hasher.cost != bcrypt.MinCost {
		t.Fatalf("expected cost %d, got %d", bcrypt.MinCost, hasher.cost)
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	if _, err := hasher.Hash("   "); err == nil {
		t.Fatal("expected error for blank password")
	}
}
