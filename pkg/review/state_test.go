package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviedao/review-program/pkg/testutil"
)

func TestReviewRecord_RoundTrip(t *testing.T) {
	record := ReviewRecord{
		IsInitialized: true,
		Reviewer:      testutil.GenerateKey(t),
		Rating:        3,
		Title:         "Blade Runner 2049",
		Description:   "Beautiful and patient",
	}

	data := record.Marshal()
	assert.Len(t, data, record.Size())
	assert.Len(t, data, ReviewRecordSize(record.Title, record.Description))

	var decoded ReviewRecord
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, record, decoded)
}

func TestReviewRecord_Truncated(t *testing.T) {
	record := ReviewRecord{
		IsInitialized: true,
		Reviewer:      testutil.GenerateKey(t),
		Rating:        3,
		Title:         "Blade Runner 2049",
		Description:   "Beautiful and patient",
	}
	data := record.Marshal()

	var decoded ReviewRecord
	assert.ErrorIs(t, decoded.Unmarshal(nil), ErrTruncatedState)
	assert.ErrorIs(t, decoded.Unmarshal(data[:len(data)-1]), ErrTruncatedState)
	assert.ErrorIs(t, decoded.Unmarshal(data[:10]), ErrTruncatedState)
}

func TestCounterRecord_RoundTrip(t *testing.T) {
	record := CounterRecord{
		IsInitialized: true,
		ReviewCount:   41,
	}

	data := record.Marshal()
	assert.Len(t, data, CounterRecordSize)

	var decoded CounterRecord
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, record, decoded)

	assert.ErrorIs(t, decoded.Unmarshal(data[:CounterRecordSize-1]), ErrTruncatedState)
}

func TestCommentRecord_RoundTrip(t *testing.T) {
	record := CommentRecord{
		IsInitialized: true,
		Review:        testutil.GenerateKey(t),
		Commenter:     testutil.GenerateKey(t),
		Count:         7,
		Comment:       "Hard disagree on the pacing",
	}

	data := record.Marshal()
	assert.Len(t, data, record.Size())
	assert.Len(t, data, CommentRecordSize(record.Comment))

	var decoded CommentRecord
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, record, decoded)

	assert.ErrorIs(t, decoded.Unmarshal(data[:40]), ErrTruncatedState)
}

func TestIsInitialized(t *testing.T) {
	assert.False(t, isInitialized(nil))
	assert.False(t, isInitialized([]byte{}))
	assert.False(t, isInitialized(make([]byte, 64)))
	assert.True(t, isInitialized([]byte{1}))

	record := CounterRecord{IsInitialized: true}
	assert.True(t, isInitialized(record.Marshal()))
}
