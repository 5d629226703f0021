package utils

import (
	"testing"
	"time"
)

func TestOTP(t *testing.T) {
	t.Parallel()

	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP failed: %v", err)
		}
		if !ValidOTPFormat(code) {
			t.Fatalf("generated code %q is not 4 digits", code)
		}
	}

	for _, bad := range []string{"", "123", "12345", "12a4", "１２３４"} {
		if ValidOTPFormat(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}

	hash, err := HashOTP("1234")
	if err != nil {
		t.Fatalf("HashOTP failed: %v", err)
	}
	if !CompareOTP(hash, "1234") || CompareOTP(hash, "4321") {
		t.Fatal("expected hash to match only its code")
	}
}

func TestTokenIssuer(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.GenerateToken(SessionClaims{AccountID: "client123", SessionID: "s1", Role: "client"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.AccountID != "client123" || claims.SessionID != "s1" || claims.Role != "client" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := NewTokenIssuer("other", time.Hour).ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
	expired, _ := NewTokenIssuer("secret", -time.Minute).GenerateToken(SessionClaims{AccountID: "a", SessionID: "s"})
	if _, err := issuer.ParseToken(expired); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
