package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestExtractorHeaderBearer(t *testing.T) {
	c := testContext(t, "/tasks")
	c.Request.Header.Set("Authorization", "Bearer abc123")

	tok, ok := NewExtractor(DefaultExtractorConfig()).Extract(c)
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)
}

func TestExtractorHeaderWithoutPrefix(t *testing.T) {
	// Raw header values without "Bearer " are used as-is.
	c := testContext(t, "/tasks")
	c.Request.Header.Set("Authorization", "abc123")

	tok, ok := NewExtractor(DefaultExtractorConfig()).Extract(c)
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)
}

func TestExtractorPriorityOrder(t *testing.T) {
	cfg := DefaultExtractorConfig()
	cfg.QueryEnabled = true

	c := testContext(t, "/tasks?access_token=from-query")
	c.Request.Header.Set("Authorization", "Bearer from-header")
	c.Request.Header.Set("Cookie", "token=from-cookie")

	tok, ok := NewExtractor(cfg).Extract(c)
	assert.True(t, ok)
	assert.Equal(t, "from-header", tok, "header wins over query and cookie")

	c.Request.Header.Del("Authorization")
	tok, ok = NewExtractor(cfg).Extract(c)
	assert.True(t, ok)
	assert.Equal(t, "from-query", tok, "query wins over cookie")
}

func TestExtractorCookieFallback(t *testing.T) {
	c := testContext(t, "/tasks")
	c.Request.Header.Set("Cookie", "token=from-cookie")

	tok, ok := NewExtractor(DefaultExtractorConfig()).Extract(c)
	assert.True(t, ok)
	assert.Equal(t, "from-cookie", tok)
}

func TestExtractorDisabledSources(t *testing.T) {
	cfg := DefaultExtractorConfig()
	cfg.CookieEnabled = false

	c := testContext(t, "/tasks")
	c.Request.Header.Set("Cookie", "token=from-cookie")

	_, ok := NewExtractor(cfg).Extract(c)
	assert.False(t, ok, "disabled sources must not be consulted")
}

func TestExtractorNoToken(t *testing.T) {
	c := testContext(t, "/tasks")
	_, ok := NewExtractor(DefaultExtractorConfig()).Extract(c)
	assert.False(t, ok)
}
