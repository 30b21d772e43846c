// Package runtime defines the boundary between an on-chain program and the
// host that executes it: the view of an account an instruction receives,
// the cross-program invocation capability, and the rent model.
//
// The host guarantees atomicity (a failed instruction persists no writes)
// and serializes instructions touching the same accounts; the program never
// needs its own locking.
package runtime

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// AccountInfo is the program's view of a single account for the duration
// of one instruction. Data is shared with the host and with any programs
// invoked downstream, so writes are visible across CPI boundaries within
// the same transaction.
type AccountInfo struct {
	Key        ed25519.PublicKey
	Lamports   uint64
	Data       []byte
	Owner      ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	Executable bool
}

// IsOwnedBy reports whether the account is owned by the given program.
func (a *AccountInfo) IsOwnedBy(program ed25519.PublicKey) bool {
	return bytes.Equal(a.Owner, program)
}

// HasAddress reports whether the account sits at the given address.
func (a *AccountInfo) HasAddress(address ed25519.PublicKey) bool {
	return bytes.Equal(a.Key, address)
}

func (a *AccountInfo) String() string {
	return base58.Encode(a.Key)
}
