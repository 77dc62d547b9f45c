package carrier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndRead(t *testing.T) {
	c, err := New("test-signing-key", 10*time.Minute)
	require.NoError(t, err)

	token, err := c.Issue("nonce-123")
	require.NoError(t, err)
	assert.NotContains(t, token, "nonce-123", "nonce must not appear in plaintext")

	nonce, err := c.Read(token)
	require.NoError(t, err)
	assert.Equal(t, "nonce-123", nonce)
}

func TestReadExpiredToken(t *testing.T) {
	now := time.Now()
	clock := now
	c, err := New("test-signing-key", 10*time.Minute, WithTimeFunc(func() time.Time { return clock }))
	require.NoError(t, err)

	token, err := c.Issue("nonce-123")
	require.NoError(t, err)

	clock = now.Add(11 * time.Minute)
	_, err = c.Read(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestReadTamperedToken(t *testing.T) {
	c, err := New("test-signing-key", 10*time.Minute)
	require.NoError(t, err)

	token, err := c.Issue("nonce-123")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("x", len(parts[2]))

	_, err = c.Read(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestReadWrongKey(t *testing.T) {
	issuer, err := New("key-one", 10*time.Minute)
	require.NoError(t, err)
	reader, err := New("key-two", 10*time.Minute)
	require.NoError(t, err)

	token, err := issuer.Issue("nonce-123")
	require.NoError(t, err)

	_, err = reader.Read(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestReadGarbage(t *testing.T) {
	c, err := New("test-signing-key", 10*time.Minute)
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := c.Read(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New("", time.Minute)
	assert.Error(t, err)

	_, err = New("key", 0)
	assert.Error(t, err)
}

func TestIssueEmptyNonce(t *testing.T) {
	c, err := New("test-signing-key", time.Minute)
	require.NoError(t, err)

	_, err = c.Issue("")
	assert.Error(t, err)
}
