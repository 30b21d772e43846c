package svm

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/moviedao/review-program/pkg/runtime"
	"github.com/moviedao/review-program/pkg/solana"
)

// frame is the execution state of one transaction. Every instruction in
// the call chain, CPIs included, shares the same AccountInfo instances so
// that writes made by a callee are visible to its caller, mirroring how
// the runtime maps account data once per transaction.
type frame struct {
	host    *Host
	program ed25519.PublicKey
	loaded  map[string]*runtime.AccountInfo
	order   []string
	depth   int
}

func newFrame(host *Host, program ed25519.PublicKey) *frame {
	return &frame{
		host:    host,
		program: program,
		loaded:  make(map[string]*runtime.AccountInfo),
	}
}

// load materializes the account behind a meta, reusing the transaction's
// instance if the key was already loaded. Unknown keys yield fresh
// system-owned accounts, which is how brand new PDAs enter a transaction.
func (f *frame) load(meta solana.AccountMeta) *runtime.AccountInfo {
	if info, ok := f.loaded[string(meta.PublicKey)]; ok {
		info.IsSigner = info.IsSigner || meta.IsSigner
		info.IsWritable = info.IsWritable || meta.IsWritable
		return info
	}

	info := &runtime.AccountInfo{
		Key:        meta.PublicKey,
		Owner:      systemProgramKey(),
		IsSigner:   meta.IsSigner,
		IsWritable: meta.IsWritable,
	}

	if stored, ok := f.host.accounts[string(meta.PublicKey)]; ok {
		info.Lamports = stored.Lamports
		info.Data = append([]byte(nil), stored.Data...)
		info.Owner = stored.Owner
		info.Executable = stored.Executable
	}
	if _, ok := f.host.programs[string(meta.PublicKey)]; ok {
		info.Executable = true
	}

	f.loaded[string(meta.PublicKey)] = info
	f.order = append(f.order, string(meta.PublicKey))
	return info
}

// commit writes every loaded account back to storage.
func (f *frame) commit() {
	for _, key := range f.order {
		info := f.loaded[key]
		f.host.accounts[key] = &Account{
			Lamports:   info.Lamports,
			Data:       append([]byte(nil), info.Data...),
			Owner:      info.Owner,
			Executable: info.Executable,
		}
	}
}

// MinimumBalance implements runtime.Env.
func (f *frame) MinimumBalance(dataLen int) uint64 {
	return runtime.MinimumBalance(dataLen)
}

// Invoke implements runtime.Env: it executes a cross-program call on
// behalf of the currently running program.
//
// Privileges can only narrow across the boundary: the callee may see an
// account as a signer or writable only if the caller did — except for
// addresses the caller proves ownership of by presenting signer seeds
// that re-derive to them under the caller's program id.
func (f *frame) Invoke(instruction solana.Instruction, signers ...runtime.SignerSeeds) error {
	if f.depth+1 >= maxInvokeDepth {
		return ErrCallDepth
	}

	program, ok := f.host.programs[string(instruction.Program)]
	if !ok {
		return errors.Wrap(ErrProgramNotFound, solanaKeyString(instruction.Program))
	}

	pdaSigners, err := f.verifySignerSeeds(signers)
	if err != nil {
		return err
	}

	type override struct {
		info     *runtime.AccountInfo
		isSigner bool
		writable bool
	}

	accounts := make([]*runtime.AccountInfo, len(instruction.Accounts))
	overrides := make([]override, 0, len(instruction.Accounts))
	restore := func() {
		for _, o := range overrides {
			o.info.IsSigner = o.isSigner
			o.info.IsWritable = o.writable
		}
	}

	for i, meta := range instruction.Accounts {
		info, ok := f.loaded[string(meta.PublicKey)]
		if !ok {
			restore()
			return errors.Wrap(ErrAccountNotFound, base58.Encode(meta.PublicKey))
		}

		_, signedByPDA := pdaSigners[string(meta.PublicKey)]
		if meta.IsSigner && !info.IsSigner && !signedByPDA {
			restore()
			return errors.Wrap(ErrSignerPrivilege, base58.Encode(meta.PublicKey))
		}
		if meta.IsWritable && !info.IsWritable {
			restore()
			return errors.Wrap(ErrWritePrivilege, base58.Encode(meta.PublicKey))
		}

		overrides = append(overrides, override{info, info.IsSigner, info.IsWritable})
		info.IsSigner = meta.IsSigner || signedByPDA
		info.IsWritable = meta.IsWritable
		accounts[i] = info
	}

	callee := &frame{
		host:    f.host,
		program: instruction.Program,
		loaded:  f.loaded,
		depth:   f.depth + 1,
	}

	err = program(callee, instruction.Program, accounts, instruction.Data)
	restore()
	return err
}

func solanaKeyString(key ed25519.PublicKey) string {
	return base58.Encode(key)
}

// verifySignerSeeds re-derives an address for each seed tuple under the
// calling program's id. A tuple that fails to produce a valid program
// address is rejected outright.
func (f *frame) verifySignerSeeds(signers []runtime.SignerSeeds) (map[string]struct{}, error) {
	if len(signers) == 0 {
		return nil, nil
	}

	derived := make(map[string]struct{}, len(signers))
	for _, seeds := range signers {
		address, err := solana.CreateProgramAddress(f.program, seeds...)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidSignerSeeds, err.Error())
		}
		derived[string(address)] = struct{}{}
	}

	return derived, nil
}
