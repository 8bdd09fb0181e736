package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.GenerateToken("u1", "ana@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	sub, err := issuer.Subject(token)
	if err != nil {
		t.Fatalf("Subject: %v", err)
	}
	if sub != "u1" {
		t.Fatalf("sub = %q", sub)
	}
	if HashToken(token) == HashToken(token+"x") {
		t.Fatal("hash collision on different tokens")
	}
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	token, err := NewTokenIssuer("a", time.Hour).GenerateToken("u1", "e")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenIssuer("b", time.Hour).Subject(token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}

	expired := NewTokenIssuer("a", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken("u1", "e")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := expired.Subject(old); err == nil {
		t.Fatal("expired token was accepted")
	}
}
