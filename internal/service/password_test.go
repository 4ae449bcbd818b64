package service

import (
	"bytes"
	"testing"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	salt, err := newPasswordSalt()
	if err != nil {
		t.Fatalf("newPasswordSalt() error = %v", err)
	}
	if len(salt) != passwordSaltLen {
		t.Fatalf("salt length = %d, want %d", len(salt), passwordSaltLen)
	}

	hash := hashPassword("s3cret", salt)
	if len(hash) != passwordDigestLen {
		t.Fatalf("digest length = %d, want %d", len(hash), passwordDigestLen)
	}

	if !verifyPassword("s3cret", salt, hash) {
		t.Error("correct password rejected")
	}
	if verifyPassword("wrong", salt, hash) {
		t.Error("wrong password accepted")
	}
	if verifyPassword("s3cret", make([]byte, passwordSaltLen), hash) {
		t.Error("wrong salt accepted")
	}
}

func TestPasswordSaltsAreDistinct(t *testing.T) {
	first, err := newPasswordSalt()
	if err != nil {
		t.Fatal(err)
	}
	second, err := newPasswordSalt()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(first, second) {
		t.Error("consecutive salts are identical")
	}
	if bytes.Equal(hashPassword("pw", first), hashPassword("pw", second)) {
		t.Error("same password under distinct salts produced the same digest")
	}
}
