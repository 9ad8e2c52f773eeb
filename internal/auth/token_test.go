package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, userID := range []string{"1", "user-42", "550e8400-e29b-41d4-a716-446655440000"} {
		token, err := tm.GenerateToken(userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	}
}

func TestTokenManager_RepeatedVerification(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	// Tokens carry no expiry, so verification stays valid across calls.
	for i := 0; i < 3; i++ {
		got, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", got)
	}
}

func TestTokenManager_RejectsInvalidTokens(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.ParseToken("garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1] + "x." + parts[2]
		_, err := tm.ParseToken(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other := NewTokenManager("rotated-secret")
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := tm.ParseToken("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMiddleware_Verify(t *testing.T) {
	tm := NewTokenManager("test-secret")
	mw := NewMiddleware(tm)

	token, err := tm.GenerateToken("user-7")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		wantOK bool
		wantID string
	}{
		{name: "valid bearer token", header: "Bearer " + token, wantOK: true, wantID: "user-7"},
		{name: "lowercase scheme", header: "bearer " + token, wantOK: true, wantID: "user-7"},
		{name: "missing header", header: "", wantOK: false},
		{name: "no scheme", header: token, wantOK: false},
		{name: "wrong scheme", header: "Basic " + token, wantOK: false},
		{name: "empty token", header: "Bearer ", wantOK: false},
		{name: "garbage token", header: "Bearer garbage", wantOK: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			userID, ok := mw.Verify(test.header)
			assert.Equal(t, test.wantOK, ok)
			if test.wantOK {
				assert.Equal(t, test.wantID, userID)
			}
		})
	}
}
