package solana

import (
	"fmt"
)

// InstructionErrorKey is the status an instruction failure surfaces to the
// host. The names follow the runtime's instruction error set so that
// failures observed here match what a validator would report.
type InstructionErrorKey string

const (
	InstructionErrorInvalidInstructionData    InstructionErrorKey = "InvalidInstructionData"
	InstructionErrorInvalidAccountData        InstructionErrorKey = "InvalidAccountData"
	InstructionErrorAccountDataTooSmall       InstructionErrorKey = "AccountDataTooSmall"
	InstructionErrorInsufficientFunds         InstructionErrorKey = "InsufficientFunds"
	InstructionErrorIncorrectProgramID        InstructionErrorKey = "IncorrectProgramId"
	InstructionErrorMissingRequiredSignature  InstructionErrorKey = "MissingRequiredSignature"
	InstructionErrorAccountAlreadyInitialized InstructionErrorKey = "AccountAlreadyInitialized"
	InstructionErrorUninitializedAccount      InstructionErrorKey = "UninitializedAccount"
	InstructionErrorNotEnoughAccountKeys      InstructionErrorKey = "NotEnoughAccountKeys"
	InstructionErrorMissingAccount            InstructionErrorKey = "MissingAccount"
	InstructionErrorInvalidSeeds              InstructionErrorKey = "InvalidSeeds"
	InstructionErrorInvalidArgument           InstructionErrorKey = "InvalidArgument"
	InstructionErrorArithmeticOverflow        InstructionErrorKey = "ArithmeticOverflow"
	InstructionErrorCustom                    InstructionErrorKey = "Custom"
)

// CustomError is the numerical error returned by a non-system program.
type CustomError uint32

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: %#x", uint32(c))
}

// InstructionError pairs the external status surfaced for a failed
// instruction with the failure that produced it. The cause stays on the
// unwrap chain for callers that need more than the status.
type InstructionError struct {
	Key InstructionErrorKey
	Err error
}

func NewInstructionError(key InstructionErrorKey, err error) *InstructionError {
	return &InstructionError{
		Key: key,
		Err: err,
	}
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction error: %s: %v", e.Key, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}
