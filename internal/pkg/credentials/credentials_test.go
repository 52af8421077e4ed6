package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		prefix string
		want   string
		ok     bool
	}{
		{"valid token", "sk_admin_abc123", "sk_admin_", "abc123", true},
		{"missing prefix", "abc123", "sk_admin_", "", false},
		{"prefix only", "sk_admin_", "sk_admin_", "", false},
		{"empty prefix", "sk_admin_abc123", "", "", false},
		{"empty raw", "", "sk_admin_", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBearer(tt.raw, tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupKey(t *testing.T) {
	a := LookupKey("pepper", "secret")
	b := LookupKey("pepper", "secret")
	c := LookupKey("pepper", "other")
	d := LookupKey("other-pepper", "secret")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Len(t, a, 64) // hex sha256
}

func TestHashAndVerify(t *testing.T) {
	phc, err := Hash("topsecret", "pepper")
	require.NoError(t, err)
	assert.Contains(t, phc, "$argon2id$")

	ok, err := Verify("topsecret", "pepper", phc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("wrong", "pepper", phc)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Verify("topsecret", "wrong-pepper", phc)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Verify("topsecret", "pepper", "$bcrypt$nope")
	assert.Error(t, err)
}

func TestHashRejectsEmptySecret(t *testing.T) {
	_, err := Hash("", "pepper")
	assert.Error(t, err)
}

func TestHashSaltsDiffer(t *testing.T) {
	a, err := Hash("s", "p")
	require.NoError(t, err)
	b, err := Hash("s", "p")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
