package accesscode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.Len(t, code, GeneratedLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
		}
		assert.False(t, seen[code], "duplicate code generated")
		seen[code] = true
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("ABC123XY"))
	assert.NoError(t, Validate("abcdef"))
	assert.ErrorIs(t, Validate("AB12"), ErrTooShort)
	assert.ErrorIs(t, Validate(""), ErrTooShort)
}
