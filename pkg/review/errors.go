package review

import (
	"errors"

	"github.com/moviedao/review-program/pkg/solana"
)

// Internal failure sentinels, grouped by the stage that raises them. The
// dispatcher never retries any of them: each one is a logic or policy
// violation that would repeat identically without caller correction.
var (
	// decode
	ErrTruncatedInstruction = errors.New("instruction data truncated")
	ErrTruncatedState       = errors.New("account state truncated")
	ErrUnknownInstruction   = errors.New("unknown instruction")

	// account validation
	ErrMissingSignature = errors.New("missing required signature")
	ErrNotWritable      = errors.New("account is not writable")
	ErrInvalidOwner     = errors.New("invalid account owner")
	ErrInvalidSeeds     = errors.New("account does not match derived address")

	// lifecycle
	ErrAlreadyInitialized = errors.New("account already initialized")
	ErrNotInitialized     = errors.New("account not initialized")
	ErrNotEnoughAccounts  = errors.New("not enough account keys")
	ErrCounterOverflow    = errors.New("counter overflow")
)

// Custom program error codes surfaced through the host's Custom(u32)
// status. The first three match the numbering of the deployed original.
const (
	ErrorInvalidDataLength solana.CustomError = iota
	ErrorInvalidRating
	ErrorIncorrectAccount
	ErrorReviewerMismatch
	ErrorCapacityExceeded
)

// ExternalStatus maps any failure returned by the processor to the single
// instruction status the host reports for it. Every internal error has
// exactly one external representation.
func ExternalStatus(err error) solana.InstructionErrorKey {
	var custom solana.CustomError
	if errors.As(err, &custom) {
		return solana.InstructionErrorCustom
	}

	switch {
	case errors.Is(err, ErrTruncatedInstruction),
		errors.Is(err, ErrUnknownInstruction):
		return solana.InstructionErrorInvalidInstructionData
	case errors.Is(err, ErrTruncatedState):
		return solana.InstructionErrorInvalidAccountData
	case errors.Is(err, ErrMissingSignature):
		return solana.InstructionErrorMissingRequiredSignature
	case errors.Is(err, ErrNotWritable):
		return solana.InstructionErrorInvalidArgument
	case errors.Is(err, ErrInvalidOwner):
		return solana.InstructionErrorIncorrectProgramID
	case errors.Is(err, ErrInvalidSeeds),
		errors.Is(err, solana.ErrNoValidBump),
		errors.Is(err, solana.ErrMaxSeedLengthExceeded),
		errors.Is(err, solana.ErrTooManySeeds):
		return solana.InstructionErrorInvalidSeeds
	case errors.Is(err, ErrAlreadyInitialized):
		return solana.InstructionErrorAccountAlreadyInitialized
	case errors.Is(err, ErrNotInitialized):
		return solana.InstructionErrorUninitializedAccount
	case errors.Is(err, ErrNotEnoughAccounts):
		return solana.InstructionErrorNotEnoughAccountKeys
	case errors.Is(err, ErrCounterOverflow):
		return solana.InstructionErrorArithmeticOverflow
	default:
		return solana.InstructionErrorInvalidArgument
	}
}
