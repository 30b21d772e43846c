package review

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/moviedao/review-program/pkg/solana"
)

func TestExternalStatus(t *testing.T) {
	for _, tc := range []struct {
		err      error
		expected solana.InstructionErrorKey
	}{
		{ErrTruncatedInstruction, solana.InstructionErrorInvalidInstructionData},
		{ErrUnknownInstruction, solana.InstructionErrorInvalidInstructionData},
		{ErrTruncatedState, solana.InstructionErrorInvalidAccountData},
		{ErrMissingSignature, solana.InstructionErrorMissingRequiredSignature},
		{ErrNotWritable, solana.InstructionErrorInvalidArgument},
		{ErrInvalidOwner, solana.InstructionErrorIncorrectProgramID},
		{ErrInvalidSeeds, solana.InstructionErrorInvalidSeeds},
		{solana.ErrNoValidBump, solana.InstructionErrorInvalidSeeds},
		{ErrAlreadyInitialized, solana.InstructionErrorAccountAlreadyInitialized},
		{ErrNotInitialized, solana.InstructionErrorUninitializedAccount},
		{ErrNotEnoughAccounts, solana.InstructionErrorNotEnoughAccountKeys},
		{ErrCounterOverflow, solana.InstructionErrorArithmeticOverflow},
		{ErrorInvalidDataLength, solana.InstructionErrorCustom},
		{ErrorInvalidRating, solana.InstructionErrorCustom},
		{ErrorIncorrectAccount, solana.InstructionErrorCustom},
		{ErrorReviewerMismatch, solana.InstructionErrorCustom},
		{ErrorCapacityExceeded, solana.InstructionErrorCustom},
		{errors.New("unexpected"), solana.InstructionErrorInvalidArgument},
	} {
		assert.Equal(t, tc.expected, ExternalStatus(tc.err), "%v", tc.err)

		// Wrapping never changes the mapping.
		assert.Equal(t, tc.expected, ExternalStatus(errors.Wrap(tc.err, "context")), "%v", tc.err)
	}
}

func TestCustomErrorCodes(t *testing.T) {
	// The first three codes are wire-visible and fixed.
	assert.EqualValues(t, 0, ErrorInvalidDataLength)
	assert.EqualValues(t, 1, ErrorInvalidRating)
	assert.EqualValues(t, 2, ErrorIncorrectAccount)
	assert.EqualValues(t, 3, ErrorReviewerMismatch)
	assert.EqualValues(t, 4, ErrorCapacityExceeded)
}
