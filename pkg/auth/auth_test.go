package auth

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.GenerateToken(42, "0x1234567890abcdef1234567890abcdef12345678")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.WalletAddress != "0x1234567890abcdef1234567890abcdef12345678" {
		t.Errorf("wallet = %q", claims.WalletAddress)
	}
	if claims.ID == "" {
		t.Error("token id missing")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).GenerateToken(1, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.GenerateToken(1, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestZeroTTLDefaultsToDay(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	if tm.ttl != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", tm.ttl)
	}
}

func TestValidateTokenEmpty(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.ValidateToken(""); err != ErrNoToken {
		t.Errorf("err = %v, want ErrNoToken", err)
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "mixed case with whitespace",
			input: "  0xABCDEF1234567890abcdef1234567890ABCDEF12  ",
			want:  "0xabcdef1234567890abcdef1234567890abcdef12",
		},
		{
			name:    "missing prefix",
			input:   "abcdef1234567890abcdef1234567890abcdef1234",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "0xabc",
			wantErr: true,
		},
		{
			name:    "non hex characters",
			input:   "0xzzzdef1234567890abcdef1234567890abcdef12",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAddress(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateNonceUnique(t *testing.T) {
	a, err := GenerateNonce()
	if err != nil {
		t.Fatalf("nonce: %v", err)
	}
	b, err := GenerateNonce()
	if err != nil {
		t.Fatalf("nonce: %v", err)
	}
	if a == b {
		t.Error("nonces must differ")
	}
	if len(a) != 32 {
		t.Errorf("nonce length = %d, want 32", len(a))
	}
}

func TestLoginMessageContainsNonce(t *testing.T) {
	msg := LoginMessage("abc123")
	if !strings.Contains(msg, "abc123") {
		t.Errorf("message %q missing nonce", msg)
	}
}
