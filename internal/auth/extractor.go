package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractorConfig controls which request locations are searched for a
// bearer token and under what names.
type ExtractorConfig struct {
	HeaderEnabled bool
	HeaderName    string
	QueryEnabled  bool
	QueryName     string
	CookieEnabled bool
	CookieName    string
}

// DefaultExtractorConfig looks at the Authorization header and a
// "token" cookie, matching the common browser + API client setup.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		HeaderEnabled: true,
		HeaderName:    "Authorization",
		QueryEnabled:  false,
		QueryName:     "access_token",
		CookieEnabled: true,
		CookieName:    "token",
	}
}

// Extractor pulls a raw bearer token out of an incoming request.
// Sources are tried in fixed priority order: header, query, cookie.
// The first enabled source that yields a token wins.
type Extractor struct {
	cfg ExtractorConfig
}

func NewExtractor(cfg ExtractorConfig) Extractor {
	return Extractor{cfg: cfg}
}

// Extract returns the token and true, or "" and false when no enabled
// source carries one. A header value without the "Bearer " prefix is
// used as-is: TrimPrefix leaves unprefixed values untouched, so raw
// tokens in the header still authenticate.
func (e Extractor) Extract(c *gin.Context) (string, bool) {
	if e.cfg.HeaderEnabled {
		if v := c.GetHeader(e.cfg.HeaderName); v != "" {
			v = strings.TrimSpace(strings.TrimPrefix(v, "Bearer "))
			if v != "" {
				return v, true
			}
		}
	}
	if e.cfg.QueryEnabled {
		if v := c.Query(e.cfg.QueryName); v != "" {
			return v, true
		}
	}
	if e.cfg.CookieEnabled {
		if v, err := c.Cookie(e.cfg.CookieName); err == nil && v != "" {
			return v, true
		}
	}
	return "", false
}
