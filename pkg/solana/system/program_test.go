package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviedao/review-program/pkg/solana"
	"github.com/moviedao/review-program/pkg/testutil"
)

func TestCreateAccount(t *testing.T) {
	keys := testutil.GenerateKeys(t, 3)
	funder, address, owner := keys[0], keys[1], keys[2]

	instruction := CreateAccount(funder, address, owner, 12345, 64)

	assert.EqualValues(t, ProgramKey[:], instruction.Program)
	require.Len(t, instruction.Accounts, 2)

	assert.EqualValues(t, funder, instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)

	assert.EqualValues(t, address, instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)

	decompiled, err := DecompileCreateAccount(instruction)
	require.NoError(t, err)
	assert.EqualValues(t, funder, decompiled.Funder)
	assert.EqualValues(t, address, decompiled.Address)
	assert.EqualValues(t, owner, decompiled.Owner)
	assert.EqualValues(t, 12345, decompiled.Lamports)
	assert.EqualValues(t, 64, decompiled.Size)
}

func TestDecompileCreateAccount_Invalid(t *testing.T) {
	keys := testutil.GenerateKeys(t, 3)
	instruction := CreateAccount(keys[0], keys[1], keys[2], 12345, 64)

	wrongProgram := instruction
	wrongProgram.Program = keys[2]
	_, err := DecompileCreateAccount(wrongProgram)
	assert.ErrorIs(t, err, solana.ErrIncorrectProgram)

	truncated := instruction
	truncated.Data = truncated.Data[:10]
	_, err = DecompileCreateAccount(truncated)
	assert.Error(t, err)

	missingAccounts := instruction
	missingAccounts.Accounts = missingAccounts.Accounts[:1]
	_, err = DecompileCreateAccount(missingAccounts)
	assert.Error(t, err)
}
