package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	j := NewJWT("test-secret", time.Hour)

	signed, err := j.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := j.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewJWT("secret-a", time.Hour).Generate(1)
	require.NoError(t, err)

	_, err = NewJWT("secret-b", time.Hour).Verify(signed)
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	j := NewJWT("test-secret", -time.Minute)

	signed, err := j.Generate(1)
	require.NoError(t, err)

	_, err = j.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	j := NewJWT("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := j.Verify(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

// TestVerifyRejectsUnsignedToken: alg=none must never pass, even with a
// structurally valid payload.
func TestVerifyRejectsUnsignedToken(t *testing.T) {
	j := NewJWT("test-secret", time.Hour)

	// header {"alg":"none","typ":"JWT"} + payload {"user_id":1}
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VyX2lkIjoxfQ."
	_, err := j.Verify(unsigned)
	assert.Error(t, err)
}
