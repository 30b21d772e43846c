package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviedao/review-program/pkg/solana/system"
	"github.com/moviedao/review-program/pkg/solana/token"
	"github.com/moviedao/review-program/pkg/testutil"
)

func TestUnpackCommand(t *testing.T) {
	command, payload, err := UnpackCommand([]byte{byte(CommandAddComment), 0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, CommandAddComment, command)
	assert.Equal(t, []byte{0xde, 0xad}, payload)

	command, payload, err = UnpackCommand([]byte{byte(CommandInitializeMint)})
	require.NoError(t, err)
	assert.Equal(t, CommandInitializeMint, command)
	assert.Empty(t, payload)

	_, _, err = UnpackCommand(nil)
	assert.ErrorIs(t, err, ErrTruncatedInstruction)
}

func TestReviewArgs_RoundTrip(t *testing.T) {
	args := ReviewArgs{
		Title:       "Dune",
		Rating:      5,
		Description: "A faithful adaptation",
	}

	var decoded ReviewArgs
	require.NoError(t, decoded.Unmarshal(args.Marshal()))
	assert.Equal(t, args, decoded)

	data := args.Marshal()
	assert.ErrorIs(t, decoded.Unmarshal(data[:3]), ErrTruncatedInstruction)
	assert.ErrorIs(t, decoded.Unmarshal(data[:len(data)-1]), ErrTruncatedInstruction)
}

func TestCommentArgs_RoundTrip(t *testing.T) {
	args := CommentArgs{Comment: "Agreed"}

	var decoded CommentArgs
	require.NoError(t, decoded.Unmarshal(args.Marshal()))
	assert.Equal(t, args, decoded)

	assert.ErrorIs(t, decoded.Unmarshal(nil), ErrTruncatedInstruction)
}

func TestNewCreateReviewInstruction(t *testing.T) {
	program := testutil.GenerateKey(t)
	reviewer := testutil.GenerateKey(t)

	args := &ReviewArgs{
		Title:       "Dune",
		Rating:      5,
		Description: "A faithful adaptation",
	}
	instruction, err := NewCreateReviewInstruction(program, reviewer, args)
	require.NoError(t, err)

	assert.EqualValues(t, program, instruction.Program)
	assert.Equal(t, byte(CommandCreateReview), instruction.Data[0])

	var decoded ReviewArgs
	require.NoError(t, decoded.Unmarshal(instruction.Data[1:]))
	assert.Equal(t, *args, decoded)

	require.Len(t, instruction.Accounts, 9)

	// The reviewer signs and pays; every derived account the handlers
	// mutate is marked writable.
	assert.EqualValues(t, reviewer, instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)

	reviewAddress, _, err := GetReviewAddress(program, reviewer, args.Title)
	require.NoError(t, err)
	assert.EqualValues(t, reviewAddress, instruction.Accounts[1].PublicKey)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)

	counterAddress, _, err := GetCounterAddress(program)
	require.NoError(t, err)
	assert.EqualValues(t, counterAddress, instruction.Accounts[2].PublicKey)
	assert.True(t, instruction.Accounts[2].IsWritable)

	mintAddress, _, err := GetMintAddress(program)
	require.NoError(t, err)
	assert.EqualValues(t, mintAddress, instruction.Accounts[4].PublicKey)
	assert.True(t, instruction.Accounts[4].IsWritable)

	mintAuthority, _, err := GetMintAuthorityAddress(program)
	require.NoError(t, err)
	assert.EqualValues(t, mintAuthority, instruction.Accounts[5].PublicKey)
	assert.False(t, instruction.Accounts[5].IsWritable)

	tokenAccount, err := token.GetAssociatedAccount(reviewer, mintAddress)
	require.NoError(t, err)
	assert.EqualValues(t, tokenAccount, instruction.Accounts[6].PublicKey)
	assert.True(t, instruction.Accounts[6].IsWritable)

	assert.EqualValues(t, system.ProgramKey[:], instruction.Accounts[7].PublicKey)
	assert.EqualValues(t, token.ProgramKey, instruction.Accounts[8].PublicKey)
}

func TestNewUpdateReviewInstruction(t *testing.T) {
	program := testutil.GenerateKey(t)
	reviewer := testutil.GenerateKey(t)

	instruction, err := NewUpdateReviewInstruction(program, reviewer, &ReviewArgs{
		Title:       "Dune",
		Rating:      4,
		Description: "Still great",
	})
	require.NoError(t, err)

	assert.Equal(t, byte(CommandUpdateReview), instruction.Data[0])
	require.Len(t, instruction.Accounts, 2)

	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.False(t, instruction.Accounts[0].IsWritable)

	reviewAddress, _, err := GetReviewAddress(program, reviewer, "Dune")
	require.NoError(t, err)
	assert.EqualValues(t, reviewAddress, instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsWritable)
}

func TestNewAddCommentInstruction(t *testing.T) {
	program := testutil.GenerateKey(t)
	commenter := testutil.GenerateKey(t)
	reviewAddress := testutil.GenerateKey(t)

	instruction, err := NewAddCommentInstruction(program, commenter, reviewAddress, 2, &CommentArgs{
		Comment: "Agreed",
	})
	require.NoError(t, err)

	assert.Equal(t, byte(CommandAddComment), instruction.Data[0])
	require.Len(t, instruction.Accounts, 9)

	assert.EqualValues(t, commenter, instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)

	assert.EqualValues(t, reviewAddress, instruction.Accounts[1].PublicKey)
	assert.False(t, instruction.Accounts[1].IsWritable)

	commentAddress, _, err := GetCommentAddress(program, reviewAddress, 2)
	require.NoError(t, err)
	assert.EqualValues(t, commentAddress, instruction.Accounts[3].PublicKey)
	assert.True(t, instruction.Accounts[3].IsWritable)
}

func TestNewInitializeMintInstruction(t *testing.T) {
	program := testutil.GenerateKey(t)
	initializer := testutil.GenerateKey(t)

	instruction, err := NewInitializeMintInstruction(program, initializer)
	require.NoError(t, err)

	assert.Equal(t, []byte{byte(CommandInitializeMint)}, instruction.Data)
	require.Len(t, instruction.Accounts, 5)

	assert.EqualValues(t, initializer, instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)

	mintAddress, _, err := GetMintAddress(program)
	require.NoError(t, err)
	assert.EqualValues(t, mintAddress, instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsWritable)
}
