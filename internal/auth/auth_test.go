package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	return token
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signToken(t, jwt.MapClaims{
		"user_id": 42,
		"email":   "ada@example.com",
		"exp":     exp.Unix(),
	})

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, exp.Equal(claims.ExpiresAt.Time))
}

func TestParseClaims_Malformed(t *testing.T) {
	_, err := ParseClaims("opaque-session-token")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "expired",
			token: signToken(t, jwt.MapClaims{"user_id": 1, "exp": now.Add(-time.Minute).Unix()}),
			want:  true,
		},
		{
			name:  "valid",
			token: signToken(t, jwt.MapClaims{"user_id": 1, "exp": now.Add(time.Hour).Unix()}),
			want:  false,
		},
		{
			name:  "no exp",
			token: signToken(t, jwt.MapClaims{"user_id": 1}),
			want:  false,
		},
		{
			name:  "opaque",
			token: "abc",
			want:  false,
		},
		{
			name:  "empty",
			token: "",
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Expired(tc.token, now))
		})
	}
}
