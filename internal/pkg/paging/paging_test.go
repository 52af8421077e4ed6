package paging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	cur := EncodeCursor(at, 42)

	gotAt, gotID, err := DecodeCursor(cur)
	require.NoError(t, err)
	assert.True(t, at.Equal(gotAt))
	assert.Equal(t, int64(42), gotID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	for _, cur := range []string{
		"",
		"not base64!!",
		"bm8gcGlwZQ",            // no separator
		"bm90LWEtdGltZXwxMjM",   // bad timestamp
		"MjAyNi0wMy0xNFQwOTwieA", // bad id
	} {
		_, _, err := DecodeCursor(cur)
		assert.ErrorIs(t, err, ErrInvalidCursor, "cursor %q", cur)
	}
}
