package runtime

import (
	"github.com/moviedao/review-program/pkg/solana"
)

// SignerSeeds is the seed tuple (bump included) a program presents to sign
// for one of its derived addresses during a cross-program invocation. It is
// a capability, not a key: the host re-derives the address from the seeds
// and the calling program's id, and grants signer status only on a match.
type SignerSeeds [][]byte

// Env is the execution environment the host hands a program for one
// instruction.
type Env interface {
	// Invoke executes another program's instruction as part of the current
	// one, inheriting its atomicity boundary. The callee's accounts are
	// resolved from the accounts of the current instruction; privileges
	// can only be narrowed, except for addresses proven by signers seeds.
	Invoke(instruction solana.Instruction, signers ...SignerSeeds) error

	// MinimumBalance returns the lamports an account of the given data
	// size must hold to be exempt from rent collection.
	MinimumBalance(dataLen int) uint64
}
