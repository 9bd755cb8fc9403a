package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func mintHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newTestValidator(t *testing.T, cfg LocalConfig) *LocalValidator {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = testSecret
	}
	v, err := NewLocalValidator(cfg)
	require.NoError(t, err)
	return v
}

func TestLocalValidatorValidToken(t *testing.T) {
	v := newTestValidator(t, LocalConfig{})
	tok := mintHS256(t, testSecret, jwt.MapClaims{
		"sub":   "u1",
		"email": "u1@example.com",
		"roles": []string{"user"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	p, err := v.Validate(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, []string{"user"}, p.Roles)
}

func TestLocalValidatorExpired(t *testing.T) {
	v := newTestValidator(t, LocalConfig{})
	tok := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Validate(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestLocalValidatorLeeway(t *testing.T) {
	v := newTestValidator(t, LocalConfig{Leeway: 2 * time.Minute})
	tok := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := v.Validate(context.Background(), tok)
	assert.NoError(t, err, "expiry within the leeway window is tolerated")

	beyond := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-3 * time.Minute).Unix(),
	})
	_, err = v.Validate(context.Background(), beyond)
	assert.ErrorIs(t, err, ErrTokenExpired, "expiry beyond the leeway window is rejected")
}

func TestLocalValidatorNotYetValid(t *testing.T) {
	v := newTestValidator(t, LocalConfig{})
	tok := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"nbf": time.Now().Add(time.Hour).Unix(),
		"exp": time.Now().Add(2 * time.Hour).Unix(),
	})

	_, err := v.Validate(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestLocalValidatorMalformed(t *testing.T) {
	v := newTestValidator(t, LocalConfig{})
	_, err := v.Validate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestLocalValidatorWrongSecret(t *testing.T) {
	v := newTestValidator(t, LocalConfig{})
	tok := mintHS256(t, "some-other-secret", jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Validate(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLocalValidatorAlgorithmPinned(t *testing.T) {
	v := newTestValidator(t, LocalConfig{Algorithm: "HS256"})
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = v.Validate(context.Background(), tok)
	assert.Error(t, err, "tokens signed with a different algorithm are rejected")
}

func TestLocalValidatorIssuerAudience(t *testing.T) {
	v := newTestValidator(t, LocalConfig{Issuer: "auth.example.com", Audience: "tasks-api"})

	good := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": "auth.example.com",
		"aud": "tasks-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := v.Validate(context.Background(), good)
	assert.NoError(t, err)

	badIss := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": "evil.example.com",
		"aud": "tasks-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = v.Validate(context.Background(), badIss)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	badAud := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": "auth.example.com",
		"aud": "other-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = v.Validate(context.Background(), badAud)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLocalValidatorMaxAge(t *testing.T) {
	v := newTestValidator(t, LocalConfig{MaxAge: time.Hour})

	fresh := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iat": time.Now().Add(-30 * time.Minute).Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := v.Validate(context.Background(), fresh)
	assert.NoError(t, err)

	stale := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = v.Validate(context.Background(), stale)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestLocalValidatorSkipExpiry(t *testing.T) {
	v := newTestValidator(t, LocalConfig{SkipExpiry: true, Issuer: "auth.example.com"})

	expired := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": "auth.example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	p, err := v.Validate(context.Background(), expired)
	require.NoError(t, err, "expired tokens pass when expiry checking is disabled")
	assert.Equal(t, "u1", p.ID)

	// Issuer is still enforced even with expiry checking off.
	wrongIss := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": "evil.example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, err = v.Validate(context.Background(), wrongIss)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLocalValidatorSkipExpiryStillChecksNotBefore(t *testing.T) {
	v := newTestValidator(t, LocalConfig{SkipExpiry: true})

	tok := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"nbf": time.Now().Add(time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Validate(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenNotYetValid, "skip mode waives expiry only, not nbf")
}

func TestLocalValidatorMissingSubject(t *testing.T) {
	v := newTestValidator(t, LocalConfig{})
	tok := mintHS256(t, testSecret, jwt.MapClaims{
		"email": "x@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Validate(context.Background(), tok)
	assert.ErrorIs(t, err, ErrMissingSubject)
}
