package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moviedao/review-program/pkg/testutil"
)

func TestMinimumBalance(t *testing.T) {
	// Reference values from the rent sysvar's defaults.
	assert.EqualValues(t, 890_880, MinimumBalance(0))
	assert.EqualValues(t, 2_039_280, MinimumBalance(165))

	assert.Less(t, MinimumBalance(10), MinimumBalance(100))
}

func TestAccountInfo(t *testing.T) {
	owner := testutil.GenerateKey(t)
	key := testutil.GenerateKey(t)

	info := &AccountInfo{
		Key:   key,
		Owner: owner,
	}

	assert.True(t, info.IsOwnedBy(owner))
	assert.False(t, info.IsOwnedBy(key))
	assert.True(t, info.HasAddress(key))
	assert.False(t, info.HasAddress(owner))
	assert.NotEmpty(t, info.String())
}
