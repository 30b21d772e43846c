// Package pointer provides helpers for optional scalar fields that are
// modelled as pointers, like the COption values in token account state.
package pointer

// Uint64 returns a pointer to the provided uint64 value
func Uint64(value uint64) *uint64 {
	return &value
}
