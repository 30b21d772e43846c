package svm

import (
	"crypto/ed25519"
	"math"

	"github.com/pkg/errors"

	"github.com/moviedao/review-program/pkg/runtime"
	"github.com/moviedao/review-program/pkg/solana"
	"github.com/moviedao/review-program/pkg/solana/token"
)

func tokenProgramKey() ed25519.PublicKey {
	return token.ProgramKey
}

// executeTokenProgram handles the token program instructions the host
// supports: InitializeMint2 and MintTo, the two the review program's
// reward path invokes.
func executeTokenProgram(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	metas := make([]solana.AccountMeta, len(accounts))
	for i, info := range accounts {
		metas[i] = solana.AccountMeta{
			PublicKey:  info.Key,
			IsSigner:   info.IsSigner,
			IsWritable: info.IsWritable,
		}
	}
	instruction := solana.NewInstruction(program, data, metas...)

	command, err := token.GetCommand(instruction)
	if err != nil {
		return err
	}

	switch command {
	case token.CommandInitializeMint2:
		return executeInitializeMint2(instruction, accounts)
	case token.CommandMintTo:
		return executeMintTo(instruction, accounts)
	default:
		return errors.Errorf("unsupported token command: %d", command)
	}
}

func executeInitializeMint2(instruction solana.Instruction, accounts []*runtime.AccountInfo) error {
	decompiled, err := token.DecompileInitializeMint2(instruction)
	if err != nil {
		return err
	}

	mintAccount := accounts[0]
	if !mintAccount.IsWritable {
		return errors.Wrap(ErrWritePrivilege, "mint")
	}
	if !mintAccount.IsOwnedBy(token.ProgramKey) {
		return errors.Wrap(token.ErrorOwnerMismatch, "mint not owned by token program")
	}
	if len(mintAccount.Data) != token.MintSize {
		return errors.Errorf("invalid mint data size: %d", len(mintAccount.Data))
	}

	var mint token.Mint
	if !mint.Unmarshal(mintAccount.Data) {
		return token.ErrorInvalidMint
	}
	if mint.IsInitialized {
		return token.ErrorAlreadyInUse
	}

	mint = token.Mint{
		MintAuthority:   decompiled.MintAuthority,
		Decimals:        decompiled.Decimals,
		IsInitialized:   true,
		FreezeAuthority: decompiled.FreezeAuthority,
	}
	copy(mintAccount.Data, mint.Marshal())

	return nil
}

func executeMintTo(instruction solana.Instruction, accounts []*runtime.AccountInfo) error {
	decompiled, err := token.DecompileMintTo(instruction)
	if err != nil {
		return err
	}

	mintAccount, destination, authority := accounts[0], accounts[1], accounts[2]

	if !mintAccount.IsWritable || !destination.IsWritable {
		return ErrWritePrivilege
	}
	if !authority.IsSigner {
		return errors.Wrap(ErrSignerPrivilege, "mint authority")
	}

	var mint token.Mint
	if !mint.Unmarshal(mintAccount.Data) {
		return token.ErrorInvalidMint
	}
	if !mint.IsInitialized {
		return errors.Wrap(token.ErrorUninitializedState, "mint")
	}
	if !authority.HasAddress(mint.MintAuthority) {
		return errors.Wrap(token.ErrorOwnerMismatch, "authority does not match mint authority")
	}

	var dest token.Account
	if !dest.Unmarshal(destination.Data) {
		return errors.New("destination is not a token account")
	}
	if dest.State == token.AccountStateUninitialized {
		return errors.Wrap(token.ErrorUninitializedState, "destination")
	}
	if !mintAccount.HasAddress(dest.Mint) {
		return token.ErrorMintMismatch
	}

	if dest.Amount > math.MaxUint64-decompiled.Amount {
		return errors.New("destination amount overflow")
	}
	if mint.Supply > math.MaxUint64-decompiled.Amount {
		return errors.New("mint supply overflow")
	}

	dest.Amount += decompiled.Amount
	mint.Supply += decompiled.Amount

	copy(destination.Data, dest.Marshal())
	copy(mintAccount.Data, mint.Marshal())

	return nil
}
