// Package svm is a minimal in-memory host runtime: persistent keyed
// accounts, native system and token programs, and instruction execution
// with the same atomicity and privilege rules a validator enforces. It
// exists so programs built on pkg/runtime can be exercised end to end
// without a cluster.
package svm

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/moviedao/review-program/pkg/runtime"
	"github.com/moviedao/review-program/pkg/solana"
)

var (
	ErrProgramNotFound    = errors.New("program not found")
	ErrAccountNotFound    = errors.New("account not found in instruction context")
	ErrSignerPrivilege    = errors.New("signer privilege escalation")
	ErrWritePrivilege     = errors.New("writable privilege escalation")
	ErrCallDepth          = errors.New("call depth exceeded")
	ErrInvalidSignerSeeds = errors.New("invalid signer seeds")
)

const maxInvokeDepth = 4

// NativeProgram executes one instruction against the provided accounts.
// Accounts arrive in the order the instruction's metas listed them.
type NativeProgram func(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error

// Account is the persisted form of an account between transactions.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      ed25519.PublicKey
	Executable bool
}

// Host owns account storage and the program registry.
type Host struct {
	accounts map[string]*Account
	programs map[string]NativeProgram
}

// NewHost creates a host with the system and token programs installed.
func NewHost() *Host {
	h := &Host{
		accounts: make(map[string]*Account),
		programs: make(map[string]NativeProgram),
	}

	h.Register(systemProgramKey(), executeSystemProgram)
	h.Register(tokenProgramKey(), executeTokenProgram)

	return h
}

// Register installs a native program at the given address.
func (h *Host) Register(program ed25519.PublicKey, p NativeProgram) {
	h.programs[string(program)] = p
}

// SetAccount stores an account, replacing any prior state.
func (h *Host) SetAccount(key ed25519.PublicKey, account Account) {
	stored := account
	stored.Data = append([]byte(nil), account.Data...)
	if stored.Owner == nil {
		stored.Owner = systemProgramKey()
	}
	h.accounts[string(key)] = &stored
}

// Account returns a copy of the stored account state.
func (h *Host) Account(key ed25519.PublicKey) (Account, bool) {
	stored, ok := h.accounts[string(key)]
	if !ok {
		return Account{}, false
	}

	return Account{
		Lamports:   stored.Lamports,
		Data:       append([]byte(nil), stored.Data...),
		Owner:      stored.Owner,
		Executable: stored.Executable,
	}, true
}

// Execute runs a single instruction as its own transaction: all of its
// writes become visible together on success, and none persist on failure.
//
// Signature verification is out of scope; metas marked as signers are
// taken at their word, exactly as a program sees them post-verification.
func (h *Host) Execute(instruction solana.Instruction) error {
	program, ok := h.programs[string(instruction.Program)]
	if !ok {
		return errors.Wrap(ErrProgramNotFound, solanaKeyString(instruction.Program))
	}

	frame := newFrame(h, instruction.Program)
	accounts := make([]*runtime.AccountInfo, len(instruction.Accounts))
	for i, meta := range instruction.Accounts {
		accounts[i] = frame.load(meta)
	}

	if err := program(frame, instruction.Program, accounts, instruction.Data); err != nil {
		return err
	}

	frame.commit()
	return nil
}

func systemProgramKey() ed25519.PublicKey {
	key := make([]byte, ed25519.PublicKeySize)
	return key
}
