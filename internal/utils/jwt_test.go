package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "partner@example.com", "partner", 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if until := time.Until(tok.Exp); until < 29*time.Minute || until > 31*time.Minute {
		t.Fatalf("unexpected expiry %v", tok.Exp)
	}

	claims, err := VerifyAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "partner@example.com" || claims.Role != "partner" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyAccessTokenRejections(t *testing.T) {
	valid, err := NewAccessToken(testSecret, "a@b.com", "admin", 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	expired, err := NewAccessToken(testSecret, "a@b.com", "admin", -1)
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}
	// Flip the final byte of the signature segment.
	last := valid.Token[len(valid.Token)-1]
	flip := "A"
	if last == 'A' {
		flip = "B"
	}
	tampered := valid.Token[:len(valid.Token)-1] + flip

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong secret", mustToken(t, "other-secret")},
		{"expired", expired.Token},
		{"tampered signature", tampered},
		{"truncated", valid.Token[:len(valid.Token)/2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyAccessToken(testSecret, tt.token)
			// Every rejection collapses into the same error kind.
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("got %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifyAccessTokenMissingSubject(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "", "admin", 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, tok.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestNewIDFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if len(id) != 32 || strings.ToLower(id) != id {
			t.Fatalf("unexpected id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func mustToken(t *testing.T, secret string) string {
	t.Helper()
	tok, err := NewAccessToken(secret, "a@b.com", "admin", 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok.Token
}
