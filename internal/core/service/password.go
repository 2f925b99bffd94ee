package service

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a one-way bcrypt hash of plaintext. bcrypt generates
// a fresh salt per call, so hashing the same password twice yields
// different credentials.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored credential.
// Comparison is constant-time-equivalent inside bcrypt. A malformed stored
// credential counts as a mismatch; it never escapes as an error.
func VerifyPassword(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
