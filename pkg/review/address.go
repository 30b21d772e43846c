package review

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/moviedao/review-program/pkg/solana"
)

// Seed prefixes for every address the program derives. Review addresses
// are a pure function of (reviewer, title); counters and comments hang
// off the review address; the mint and its authority are singletons per
// program deployment.
var (
	reviewSeed         = []byte("review")
	counterSeed        = []byte("counter")
	commentCounterSeed = []byte("comment_counter")
	mintSeed           = []byte("token_mint")
	mintAuthoritySeed  = []byte("mint_auth")
)

// GetReviewAddress derives the account address holding the review a
// reviewer wrote under a given title. The title is part of the key, which
// is what makes it immutable after creation.
func GetReviewAddress(program, reviewer ed25519.PublicKey, title string) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, reviewSeed, reviewer, []byte(title))
}

// GetCounterAddress derives the program's single review counter account.
func GetCounterAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, counterSeed)
}

// GetCommentCounterAddress derives the comment counter for one review.
func GetCommentCounterAddress(program, reviewAddress ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, reviewAddress, commentCounterSeed)
}

// GetCommentAddress derives the address of the n-th comment on a review.
func GetCommentAddress(program, reviewAddress ed25519.PublicKey, count uint64) (ed25519.PublicKey, uint8, error) {
	var countSeed [8]byte
	binary.BigEndian.PutUint64(countSeed[:], count)
	return solana.FindProgramAddressAndBump(program, reviewAddress, countSeed[:])
}

// GetMintAddress derives the reward token mint.
func GetMintAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, mintSeed)
}

// GetMintAuthorityAddress derives the identity that authorizes reward
// minting. It holds no balance and stores no data; the program signs for
// it with seeds.
func GetMintAuthorityAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, mintAuthoritySeed)
}
