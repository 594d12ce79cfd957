package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash := HashPassword("s3cret-password")
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword("s3cret-password", hash) {
		t.Fatal("correct password should verify")
	}
	if CheckPassword("wrong-password", hash) {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1 := HashPassword("same-input")
	h2 := HashPassword("same-input")
	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ (salt)")
	}
	if !CheckPassword("same-input", h1) || !CheckPassword("same-input", h2) {
		t.Fatal("both hashes should verify the original password")
	}
}
