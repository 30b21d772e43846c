package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	// ErrInvalidPublicKey indicates the candidate address landed on the
	// ed25519 curve, meaning a private key could exist for it.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrNoValidBump indicates no bump in [0, 255] produced an off-curve
	// address for the given seeds. Callers should treat this as fatal;
	// retrying with the same seeds cannot succeed.
	ErrNoValidBump = errors.New("unable to find a valid bump seed")
)

// CreateProgramAddress deterministically derives an address from a seed
// tuple and a program id.
//
// Program addresses must _not_ lie on the ed25519 curve, so that no
// private key can ever sign for them; authority is proven by presenting
// the seeds instead. If the hash of the inputs happens to be a valid
// curve point, ErrInvalidPublicKey is returned and the caller must vary
// the seeds (see FindProgramAddressAndBump).
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := sha256.New()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}

		if _, err := h.Write(s); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{program, []byte("ProgramDerivedAddress")} {
		if _, err := h.Write(v); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	hash := h.Sum(nil)
	var pub [32]byte
	copy(pub[:], hash)

	// Reject the candidate if it decompresses to a valid Edwards point.
	// The x/crypto ed25519 package keeps its group element type internal,
	// so the check relies on an open source alternative.
	var a edwards25519.ExtendedGroupElement
	if a.FromBytes(&pub) {
		return nil, ErrInvalidPublicKey
	}

	return pub[:], nil
}

// FindProgramAddressAndBump searches bump values from 255 down to 0 and
// returns the first off-curve address produced by seeds ++ [bump], along
// with the bump that produced it.
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	bumpSeed := []byte{math.MaxUint8}
	for i := 0; i <= math.MaxUint8; i++ {
		pub, err := CreateProgramAddress(program, append(seeds, bumpSeed)...)
		if err == nil {
			return pub, bumpSeed[0], nil
		}
		if err != ErrInvalidPublicKey {
			return nil, 0, err
		}

		bumpSeed[0]--
	}

	return nil, 0, ErrNoValidBump
}

// FindProgramAddress is FindProgramAddressAndBump without the bump.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}
