package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validator turns a raw bearer token into a Principal, or reports why
// it could not.
type Validator interface {
	Validate(ctx context.Context, token string) (*Principal, error)
}

// LocalConfig configures self-contained token verification against a
// shared secret (HMAC) or a public key (RSA).
type LocalConfig struct {
	Secret       string
	PublicKeyPEM string
	Algorithm    string
	Issuer       string
	Audience     string
	Leeway       time.Duration
	// MaxAge rejects tokens issued longer ago than this, even if their
	// exp has not passed. Zero disables the check.
	MaxAge time.Duration
	// SkipExpiry disables expiration checking. Only permitted outside
	// production; config.Load refuses it otherwise.
	SkipExpiry bool
	ClaimKeys  ClaimKeys
}

// LocalValidator verifies tokens locally with golang-jwt.
type LocalValidator struct {
	cfg    LocalConfig
	key    any
	parser *jwt.Parser
}

func NewLocalValidator(cfg LocalConfig) (*LocalValidator, error) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = "HS256"
	}

	var key any
	switch {
	case strings.HasPrefix(cfg.Algorithm, "HS"):
		if cfg.Secret == "" {
			return nil, errors.New("auth: HMAC algorithm requires a secret")
		}
		key = []byte(cfg.Secret)
	case strings.HasPrefix(cfg.Algorithm, "RS"):
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse RSA public key: %w", err)
		}
		key = pub
	default:
		return nil, fmt.Errorf("auth: unsupported algorithm %q", cfg.Algorithm)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{cfg.Algorithm}),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.SkipExpiry {
		// Claims are then checked by hand in Validate, minus exp.
		opts = []jwt.ParserOption{
			jwt.WithValidMethods([]string{cfg.Algorithm}),
			jwt.WithoutClaimsValidation(),
		}
	} else {
		if cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Issuer))
		}
		if cfg.Audience != "" {
			opts = append(opts, jwt.WithAudience(cfg.Audience))
		}
	}

	return &LocalValidator{cfg: cfg, key: key, parser: jwt.NewParser(opts...)}, nil
}

func (v *LocalValidator) Validate(_ context.Context, token string) (*Principal, error) {
	claims := jwt.MapClaims{}
	tok, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, classifyJWTError(err)
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}

	if v.cfg.SkipExpiry {
		if err := v.checkIssuerAudience(claims); err != nil {
			return nil, err
		}
		// WithoutClaimsValidation also dropped the nbf check; skip
		// mode only waives expiry, so redo it here.
		nbf, err := claims.GetNotBefore()
		if err != nil {
			return nil, ErrTokenInvalid
		}
		if nbf != nil && time.Now().Add(v.cfg.Leeway).Before(nbf.Time) {
			return nil, ErrTokenNotYetValid
		}
	}

	if v.cfg.MaxAge > 0 {
		iat, err := claims.GetIssuedAt()
		if err != nil || iat == nil {
			return nil, ErrTokenInvalid
		}
		if time.Since(iat.Time) > v.cfg.MaxAge+v.cfg.Leeway {
			return nil, ErrTokenExpired
		}
	}

	return PrincipalFromClaims(map[string]any(claims), v.cfg.ClaimKeys)
}

// checkIssuerAudience redoes the iss/aud checks that get lost when the
// parser runs with claims validation disabled.
func (v *LocalValidator) checkIssuerAudience(claims jwt.MapClaims) error {
	if v.cfg.Issuer != "" {
		iss, err := claims.GetIssuer()
		if err != nil || iss != v.cfg.Issuer {
			return ErrTokenInvalid
		}
	}
	if v.cfg.Audience != "" {
		aud, err := claims.GetAudience()
		if err != nil {
			return ErrTokenInvalid
		}
		found := false
		for _, a := range aud {
			if a == v.cfg.Audience {
				found = true
				break
			}
		}
		if !found {
			return ErrTokenInvalid
		}
	}
	return nil
}

// classifyJWTError maps golang-jwt failures onto our sentinels so the
// middleware can log a precise reason while the caller sees a uniform 401.
func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}
