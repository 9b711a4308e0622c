package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// NonceTTL is how long a login nonce stays valid.
const NonceTTL = 5 * time.Minute

var ErrInvalidAddress = errors.New("invalid wallet address")

// NormalizeAddress lowercases a wallet address and verifies its shape
// (0x prefix followed by 40 hex characters).
func NormalizeAddress(address string) (string, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if len(address) != 42 || !strings.HasPrefix(address, "0x") {
		return "", ErrInvalidAddress
	}
	if _, err := hex.DecodeString(address[2:]); err != nil {
		return "", ErrInvalidAddress
	}
	return address, nil
}

// GenerateNonce returns a random login nonce.
func GenerateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// LoginMessage is the text a wallet signs to prove ownership of its
// address. Verification of the signature happens in the identity
// provider; the server only checks that the nonce matches.
func LoginMessage(nonce string) string {
	return "Sign this message to log in to Inkwell: " + nonce
}
