package auth

import (
	"strings"
	"testing"
	"time"
)

func TestIssueParseRoundTrip(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "gamereview", TTL: time.Minute}

	tok, err := j.Issue("42", "ADMIN")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	c, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.UID != "42" || c.Subject != "42" {
		t.Fatalf("uid = %q sub = %q, want 42", c.UID, c.Subject)
	}
	if c.Role != "ADMIN" {
		t.Fatalf("role = %q, want ADMIN", c.Role)
	}
}

func TestParseExpired(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "gamereview", TTL: -time.Minute}

	tok, err := j.Issue("1", "USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := j.Parse(tok); err != ErrInvalidToken {
		t.Fatalf("expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	access := &JWTer{Secret: []byte("access-secret"), Issuer: "gamereview", TTL: time.Minute}
	refresh := &JWTer{Secret: []byte("refresh-secret"), Issuer: "gamereview", TTL: time.Hour}

	tok, err := access.Issue("1", "USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	// access 令牌不能当 refresh 用，反之亦然
	if _, err := refresh.Parse(tok); err != ErrInvalidToken {
		t.Fatalf("cross-secret parse: err = %v, want ErrInvalidToken", err)
	}
}

func TestParseTampered(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "gamereview", TTL: time.Minute}

	tok, err := j.Issue("1", "USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := j.Parse(tampered); err != ErrInvalidToken {
		t.Fatalf("tampered token: err = %v, want ErrInvalidToken", err)
	}
	if _, err := j.Parse("not-a-jwt"); err != ErrInvalidToken {
		t.Fatalf("garbage token: err = %v, want ErrInvalidToken", err)
	}
}

func TestExpiry(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "gamereview", TTL: time.Hour}

	tok, err := j.Issue("1", "USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	exp, err := j.Expiry(tok)
	if err != nil {
		t.Fatalf("Expiry: %v", err)
	}
	want := time.Now().Add(time.Hour)
	if d := want.Sub(exp); d > 5*time.Second || d < -5*time.Second {
		t.Fatalf("expiry = %v, want ~%v", exp, want)
	}
}
