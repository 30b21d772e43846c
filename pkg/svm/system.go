package svm

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/moviedao/review-program/pkg/runtime"
	"github.com/moviedao/review-program/pkg/solana"
	"github.com/moviedao/review-program/pkg/solana/system"
)

var (
	ErrAccountInUse      = errors.New("account already in use")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// executeSystemProgram handles the system program instructions the host
// supports. Only CreateAccount is needed by the programs run here.
func executeSystemProgram(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	metas := make([]solana.AccountMeta, len(accounts))
	for i, info := range accounts {
		metas[i] = solana.AccountMeta{
			PublicKey:  info.Key,
			IsSigner:   info.IsSigner,
			IsWritable: info.IsWritable,
		}
	}

	decompiled, err := system.DecompileCreateAccount(solana.NewInstruction(program, data, metas...))
	if err != nil {
		return err
	}

	funder, account := accounts[0], accounts[1]

	if !funder.IsSigner {
		return errors.Wrap(ErrSignerPrivilege, "funder must sign")
	}
	if !account.IsSigner {
		return errors.Wrap(ErrSignerPrivilege, "new account must sign")
	}
	if !funder.IsWritable || !account.IsWritable {
		return ErrWritePrivilege
	}

	// A fresh account has no lamports, no data, and system ownership.
	if account.Lamports != 0 || len(account.Data) != 0 || !account.IsOwnedBy(systemProgramKey()) {
		return errors.Wrap(ErrAccountInUse, account.String())
	}

	if funder.Lamports < decompiled.Lamports {
		return ErrInsufficientFunds
	}

	funder.Lamports -= decompiled.Lamports
	account.Lamports = decompiled.Lamports
	account.Data = make([]byte, decompiled.Size)
	account.Owner = decompiled.Owner

	return nil
}
