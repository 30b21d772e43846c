package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviedao/review-program/pkg/pointer"
	"github.com/moviedao/review-program/pkg/testutil"
)

func TestMintState(t *testing.T) {
	mint := Mint{
		MintAuthority: testutil.GenerateKey(t),
		Supply:        1_000_000_000,
		Decimals:      9,
		IsInitialized: true,
	}

	data := mint.Marshal()
	require.Len(t, data, MintSize)

	var decoded Mint
	require.True(t, decoded.Unmarshal(data))
	assert.Equal(t, mint, decoded)

	// With a freeze authority set, the option tag flips.
	mint.FreezeAuthority = testutil.GenerateKey(t)
	require.True(t, decoded.Unmarshal(mint.Marshal()))
	assert.EqualValues(t, mint.FreezeAuthority, decoded.FreezeAuthority)

	assert.False(t, decoded.Unmarshal(data[:MintSize-1]))
}

func TestAccountState(t *testing.T) {
	account := Account{
		Mint:   testutil.GenerateKey(t),
		Owner:  testutil.GenerateKey(t),
		Amount: 42,
		State:  AccountStateInitialized,
	}

	data := account.Marshal()
	require.Len(t, data, AccountSize)

	var decoded Account
	require.True(t, decoded.Unmarshal(data))
	assert.EqualValues(t, account.Mint, decoded.Mint)
	assert.EqualValues(t, account.Owner, decoded.Owner)
	assert.EqualValues(t, 42, decoded.Amount)
	assert.Equal(t, AccountStateInitialized, decoded.State)
	assert.Nil(t, decoded.Delegate)
	assert.Nil(t, decoded.IsNative)

	// Wrapped-native accounts carry their rent-exempt reserve.
	account.IsNative = pointer.Uint64(2_039_280)
	require.True(t, decoded.Unmarshal(account.Marshal()))
	require.NotNil(t, decoded.IsNative)
	assert.EqualValues(t, 2_039_280, *decoded.IsNative)

	account.IsNative = nil
	assert.False(t, decoded.Unmarshal(nil))
	assert.False(t, decoded.Unmarshal(data[:AccountSize-1]))
}
