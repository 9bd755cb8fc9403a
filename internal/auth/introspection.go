package auth

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenCache stores positive introspection results for a short TTL so
// hot tokens do not hammer the auth service. Optional; a nil cache
// means every request introspects.
type TokenCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// IntrospectionConfig configures remote token validation.
type IntrospectionConfig struct {
	BaseURL string
	Path    string
	Timeout time.Duration
	// CacheTTL bounds how long a positive introspection result may be
	// reused. Only relevant when a cache is attached.
	CacheTTL  time.Duration
	ClaimKeys ClaimKeys
}

// IntrospectionValidator asks an external endpoint whether a token is
// active and who it belongs to. Every failure mode — network error,
// timeout, non-2xx, active=false — fails closed as an invalid token.
type IntrospectionValidator struct {
	cfg    IntrospectionConfig
	client *http.Client
	cache  TokenCache
	log    *zap.Logger
}

func NewIntrospectionValidator(cfg IntrospectionConfig, cache TokenCache, log *zap.Logger) *IntrospectionValidator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Path == "" {
		cfg.Path = "/oauth/introspect"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &IntrospectionValidator{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  cache,
		log:    log,
	}
}

// introspectionResponse covers only the fixed-name liveness fields of
// the response contract. Identity fields (subject, roles, tenant) go
// through the configurable claim mapper instead.
type introspectionResponse struct {
	Active   bool   `json:"active"`
	IsActive *bool  `json:"isActive"`
	Error    string `json:"error"`
}

func (v *IntrospectionValidator) Validate(ctx context.Context, token string) (*Principal, error) {
	key := cacheKey(token)
	if v.cache != nil {
		if raw, ok := v.cache.Get(ctx, key); ok {
			var p Principal
			if err := json.Unmarshal(raw, &p); err == nil && p.ID != "" {
				return &p, nil
			}
		}
	}

	body, err := v.introspect(ctx, token)
	if err != nil {
		v.log.Warn("introspection call failed, failing closed", zap.Error(err))
		return nil, ErrTokenInactive
	}

	var resp introspectionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		v.log.Warn("introspection response not decodable, failing closed", zap.Error(err))
		return nil, ErrTokenInactive
	}

	if !resp.Active {
		return nil, ErrTokenInactive
	}
	if resp.IsActive != nil && !*resp.IsActive {
		return nil, ErrUserInactive
	}

	// The full response payload is the claim set: the configured
	// claim keys apply here exactly as they do to locally decoded
	// tokens, and the raw payload stays on the principal for
	// downstream consumers that want issuer/expiry style fields.
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = map[string]any{}
	}

	p, err := PrincipalFromClaims(raw, v.cfg.ClaimKeys)
	if err != nil {
		// No subject under the configured key: the token does not
		// resolve to anyone, same as inactive.
		return nil, ErrTokenInactive
	}

	if v.cache != nil {
		if enc, err := json.Marshal(p); err == nil {
			v.cache.Set(ctx, key, enc, v.cfg.CacheTTL)
		}
	}

	return p, nil
}

func (v *IntrospectionValidator) introspect(ctx context.Context, token string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.Timeout)
	defer cancel()

	payload, _ := json.Marshal(map[string]string{"token": token})
	url := strings.TrimRight(v.cfg.BaseURL, "/") + v.cfg.Path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("introspection endpoint returned %d", res.StatusCode)
	}

	return io.ReadAll(io.LimitReader(res.Body, 1<<20))
}

// cacheKey hashes the token so raw credentials never land in redis.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "introspect:" + hex.EncodeToString(sum[:])
}
