// Package testutil holds shared helpers for package tests.
package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

// GenerateKey returns a fresh ed25519 public key for use as a wallet or
// program address in tests.
func GenerateKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

// GenerateKeys returns n fresh ed25519 public keys.
func GenerateKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		keys[i] = GenerateKey(t)
	}
	return keys
}
