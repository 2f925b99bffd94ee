package service

import (
	"strings"
	"testing"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash equals plaintext")
	}
	if strings.Contains(hash, "s3cret-pass") {
		t.Fatalf("hash contains plaintext")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("first hash: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("second hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
	if !VerifyPassword("same-password", first) || !VerifyPassword("same-password", second) {
		t.Fatalf("both hashes should verify against the original password")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if VerifyPassword("battery-staple", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestVerifyPassword_MalformedCredential(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed credential verified")
	}
	if VerifyPassword("anything", "") {
		t.Fatalf("empty credential verified")
	}
}
