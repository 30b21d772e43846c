package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviedao/review-program/pkg/solana"
	"github.com/moviedao/review-program/pkg/testutil"
)

func TestGetCommand(t *testing.T) {
	mint := testutil.GenerateKey(t)
	authority := testutil.GenerateKey(t)

	command, err := GetCommand(MintTo(mint, testutil.GenerateKey(t), authority, 10))
	require.NoError(t, err)
	assert.Equal(t, CommandMintTo, command)

	command, err = GetCommand(InitializeMint2(mint, authority, nil, 9))
	require.NoError(t, err)
	assert.Equal(t, CommandInitializeMint2, command)

	_, err = GetCommand(solana.NewInstruction(ProgramKey, nil))
	assert.Error(t, err)

	_, err = GetCommand(solana.NewInstruction(testutil.GenerateKey(t), []byte{byte(CommandMintTo)}))
	assert.ErrorIs(t, err, solana.ErrIncorrectProgram)
}

func TestInitializeMint2(t *testing.T) {
	mint := testutil.GenerateKey(t)
	authority := testutil.GenerateKey(t)
	freeze := testutil.GenerateKey(t)

	instruction := InitializeMint2(mint, authority, nil, 9)
	require.Len(t, instruction.Accounts, 1)
	assert.EqualValues(t, mint, instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[0].IsSigner)

	decompiled, err := DecompileInitializeMint2(instruction)
	require.NoError(t, err)
	assert.EqualValues(t, mint, decompiled.Mint)
	assert.EqualValues(t, authority, decompiled.MintAuthority)
	assert.Nil(t, decompiled.FreezeAuthority)
	assert.EqualValues(t, 9, decompiled.Decimals)

	decompiled, err = DecompileInitializeMint2(InitializeMint2(mint, authority, freeze, 6))
	require.NoError(t, err)
	assert.EqualValues(t, freeze, decompiled.FreezeAuthority)
	assert.EqualValues(t, 6, decompiled.Decimals)
}

func TestMintTo(t *testing.T) {
	mint := testutil.GenerateKey(t)
	dest := testutil.GenerateKey(t)
	authority := testutil.GenerateKey(t)

	instruction := MintTo(mint, dest, authority, 1_000_000_000)

	require.Len(t, instruction.Accounts, 3)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.True(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)

	decompiled, err := DecompileMintTo(instruction)
	require.NoError(t, err)
	assert.EqualValues(t, mint, decompiled.Mint)
	assert.EqualValues(t, dest, decompiled.Destination)
	assert.EqualValues(t, authority, decompiled.Authority)
	assert.EqualValues(t, 1_000_000_000, decompiled.Amount)

	// Truncated data is rejected.
	instruction.Data = instruction.Data[:5]
	_, err = DecompileMintTo(instruction)
	assert.Error(t, err)
}

func TestGetAssociatedAccount(t *testing.T) {
	wallet := testutil.GenerateKey(t)
	mint := testutil.GenerateKey(t)

	address, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	assert.Len(t, address, ed25519.PublicKeySize)

	again, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	assert.EqualValues(t, address, again)

	other, err := GetAssociatedAccount(wallet, testutil.GenerateKey(t))
	require.NoError(t, err)
	assert.NotEqualValues(t, address, other)
}
