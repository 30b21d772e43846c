package review

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/moviedao/review-program/pkg/runtime"
)

// ValidateAccount runs the fixed pre-mutation checks on a supplied
// account, in order: signer flag, writable flag, owner, address. Each
// failure maps to its own error kind. The check is pure; it never touches
// account data.
//
// Owner and address checks are skipped when the corresponding expectation
// is nil, for accounts whose owner or address is established elsewhere.
func ValidateAccount(info *runtime.AccountInfo, expectSigner, expectWritable bool, expectedOwner, expectedAddress ed25519.PublicKey) error {
	if expectSigner && !info.IsSigner {
		return errors.Wrap(ErrMissingSignature, info.String())
	}
	if expectWritable && !info.IsWritable {
		return errors.Wrap(ErrNotWritable, info.String())
	}
	if expectedOwner != nil && !info.IsOwnedBy(expectedOwner) {
		return errors.Wrap(ErrInvalidOwner, info.String())
	}
	if expectedAddress != nil && !info.HasAddress(expectedAddress) {
		return errors.Wrap(ErrInvalidSeeds, info.String())
	}
	return nil
}
