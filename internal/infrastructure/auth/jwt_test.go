package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		Issuer: "rentalops-test",
	})
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestJWTService()
	org := uuid.New()

	token, err := svc.Issue(IssueInput{
		TenantID:    org,
		UserID:      uuid.New(),
		Username:    "finance",
		Permissions: []string{PermissionPayoutManage},
		TTL:         time.Hour,
	})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, org, claims.OrganizationID())
	assert.True(t, claims.HasPermission(PermissionPayoutManage))
	assert.False(t, claims.HasPermission(PermissionRevenueSettings))
}

func TestValidate_Errors(t *testing.T) {
	svc := newTestJWTService()
	org := uuid.New()

	t.Run("expired", func(t *testing.T) {
		token, err := svc.Issue(IssueInput{TenantID: org, TTL: time.Minute})
		require.NoError(t, err)
		svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		defer func() { svc.now = time.Now }()

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-32-characters", Issuer: "rentalops-test"})
		token, err := other.Issue(IssueInput{TenantID: org, TTL: time.Hour})
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "someone-else"})
		token, err := other.Issue(IssueInput{TenantID: org, TTL: time.Hour})
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing tenant", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "rentalops-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrMissingTenantID)
	})

	t.Run("tenant not a uuid", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "rentalops-test",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			TenantID: "acme",
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		claims := &Claims{TenantID: org.String()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
