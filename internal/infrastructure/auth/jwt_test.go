package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-inc/folio/internal/shared/authorization"
	"github.com/folio-inc/folio/internal/shared/biztime"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	clock := biztime.NewFixedClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	svc := NewJWTService("test-secret", "folio", 60, clock)

	token, exp, err := svc.Generate("vw_reader", authorization.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 1, 13, 0, 0, 0, time.UTC), exp)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "vw_reader", claims.ViewerID())
	assert.Equal(t, authorization.RoleEditor, claims.Role)
}

func TestJWTService_Verify(t *testing.T) {
	clock := biztime.NewFixedClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	svc := NewJWTService("test-secret", "folio", 60, clock)
	token, _, err := svc.Generate("vw_reader", authorization.RoleViewer)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := NewJWTService("test-secret", "folio", 60,
			biztime.NewFixedClock(time.Date(2025, 9, 1, 13, 0, 1, 0, time.UTC)))
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", "folio", 60, clock)
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService("test-secret", "someone-else", 60, clock)
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "vw_reader", Issuer: "folio"},
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role downgraded", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			Role: "superuser",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "vw_reader",
				Issuer:    "folio",
				ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Minute)),
			},
		})
		raw, err := forged.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		claims, err := svc.Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, authorization.RoleViewer, claims.Role)
	})
}

func TestJWTService_GenerateRequiresViewer(t *testing.T) {
	svc := NewJWTService("test-secret", "", 60, nil)
	_, _, err := svc.Generate("", authorization.RoleViewer)
	assert.Error(t, err)
}
