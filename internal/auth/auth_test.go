package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("test-secret-key", "alice", time.Hour)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	token1, err1 := GenerateToken("test-secret", "alice", time.Hour)
	token2, err2 := GenerateToken("test-secret", "alice", time.Hour)
	require.NoError(t, err1)
	require.NoError(t, err2)

	claims1, err := ParseToken("test-secret", token1)
	require.NoError(t, err)
	claims2, err := ParseToken("test-secret", token2)
	require.NoError(t, err)

	assert.NotEmpty(t, claims1.ID)
	if claims1.ID == claims2.ID {
		t.Error("Expected unique token ids")
	}
	if token1 == token2 {
		t.Error("Expected different tokens")
	}
}

func TestParseToken(t *testing.T) {
	secret := "test-secret-key"

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateToken(secret, "alice", time.Hour)
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		assert.Equal(t, "alice", claims.Username)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("invalid signature", func(t *testing.T) {
		token, err := GenerateToken("wrong-secret", "alice", time.Hour)
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		c := Claims{
			Username: "alice",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "alice",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("other signing method", func(t *testing.T) {
		c := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = ParseToken(secret, token)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		c := Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = ParseToken(secret, token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
	})

	t.Run("malformed token", func(t *testing.T) {
		claims, err := ParseToken(secret, "not.a.valid.token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestVerifyPassword(t *testing.T) {
	password := "testpassword123"

	hash, err := HashPasswordCost(password, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)

	t.Run("correct password", func(t *testing.T) {
		assert.True(t, VerifyPassword(hash, password))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.False(t, VerifyPassword(hash, "wrongpassword"))
	})

	t.Run("different hash each time", func(t *testing.T) {
		hash2, err := HashPasswordCost(password, bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotEqual(t, hash, hash2)
		assert.True(t, VerifyPassword(hash2, password))
	})
}

func TestHashPasswordCost_OutOfRangeUsesDefault(t *testing.T) {
	hash, err := HashPasswordCost("pw", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerifyPassword_LongPasswords(t *testing.T) {
	long := strings.Repeat("p", 80)
	hash, err := HashPasswordCost(long, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, long))
	// Same first 72 bytes, different tail.
	assert.False(t, VerifyPassword(hash, strings.Repeat("p", 72)+"qqqqqqqq"))
}
