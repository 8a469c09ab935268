package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"log/slog"
	"testing"
	"time"

	"scrumboard/internal/domain"
	"scrumboard/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T) (*JWKSVerifier, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	kf := func(*jwt.Token) (any, error) { return &key.PublicKey, nil }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewKeyfuncVerifier(kf, logger), key
}

func sign(t *testing.T, key *ecdsa.PrivateKey, claims *models.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(sub string, exp time.Time) *models.Claims {
	return &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: sub + "@example.com",
		Name:  "Test User",
		Role:  "authenticated",
	}
}

func TestVerifyToken(t *testing.T) {
	verifier, key := newTestVerifier(t)
	later := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		token   func() string
		wantSub string
	}{
		{
			name:    "valid token",
			token:   func() string { return sign(t, key, claimsFor("user-1", later)) },
			wantSub: "user-1",
		},
		{
			name: "token without role is accepted",
			token: func() string {
				c := claimsFor("user-2", later)
				c.Role = ""
				return sign(t, key, c)
			},
			wantSub: "user-2",
		},
		{
			name:  "expired",
			token: func() string { return sign(t, key, claimsFor("user-1", time.Now().Add(-time.Hour))) },
		},
		{
			name: "no expiry",
			token: func() string {
				c := claimsFor("user-1", later)
				c.ExpiresAt = nil
				return sign(t, key, c)
			},
		},
		{
			name:  "missing subject",
			token: func() string { return sign(t, key, claimsFor("", later)) },
		},
		{
			name: "anonymous role",
			token: func() string {
				c := claimsFor("user-1", later)
				c.Role = "anon"
				return sign(t, key, c)
			},
		},
		{
			name: "HMAC algorithm is refused",
			token: func() string {
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor("user-1", later)).SignedString([]byte("secret"))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "signed by another key",
			token: func() string {
				other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
				require.NoError(t, err)
				return sign(t, other, claimsFor("user-1", later))
			},
		},
		{
			name:  "garbage",
			token: func() string { return "not.a.token" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.VerifyToken(tt.token())
			if tt.wantSub == "" {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, claims.GetUserID())
			assert.Equal(t, tt.wantSub+"@example.com", claims.Email)
		})
	}
}

func TestNewJWTVerifier_RequiresURL(t *testing.T) {
	_, err := NewJWTVerifier("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
