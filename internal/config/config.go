package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AuthStrategy selects how bearer tokens are validated.
type AuthStrategy string

const (
	StrategyLocal         AuthStrategy = "local"
	StrategyIntrospection AuthStrategy = "introspection"
)

type Config struct {
	DSN     string
	AppPort string
	AppEnv  string

	Strategy AuthStrategy

	// Local JWT verification
	JWTSecret    string
	JWTPublicKey string
	JWTAlg       string
	JWTIssuer    string
	JWTAudience  string
	JWTLeeway    time.Duration
	JWTMaxAge    time.Duration
	SkipExpiry   bool

	// Remote introspection
	IntrospectionURL     string
	IntrospectionPath    string
	IntrospectionTimeout time.Duration

	// Token sources, tried in order: header, query, cookie
	HeaderEnabled bool
	HeaderName    string
	QueryEnabled  bool
	QueryName     string
	CookieEnabled bool
	CookieName    string

	// Claim key names (token shapes vary between issuers)
	ClaimUserID      string
	ClaimRoles       string
	ClaimPermissions string
	ClaimTenantID    string

	AllowedIPs []string

	RedisAddr string
	SeedDemo  bool
}

func Load() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	} else {
		log.Println("✅ .env file loaded successfully!")
	}

	cfg := Config{
		DSN:     os.Getenv("MYSQL_DSN"),
		AppPort: getenv("APP_PORT", "8080"),
		AppEnv:  getenv("APP_ENV", "development"),

		Strategy: AuthStrategy(getenv("AUTH_STRATEGY", string(StrategyLocal))),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		JWTAlg:       getenv("JWT_ALG", "HS256"),
		JWTIssuer:    os.Getenv("JWT_ISSUER"),
		JWTAudience:  os.Getenv("JWT_AUDIENCE"),
		JWTLeeway:    time.Duration(getint("JWT_LEEWAY_SECONDS", 0)) * time.Second,
		JWTMaxAge:    time.Duration(getint("JWT_MAX_AGE_SECONDS", 0)) * time.Second,
		SkipExpiry:   getbool("JWT_SKIP_EXPIRY", false),

		IntrospectionURL:     os.Getenv("INTROSPECTION_URL"),
		IntrospectionPath:    getenv("INTROSPECTION_PATH", "/oauth/introspect"),
		IntrospectionTimeout: time.Duration(getint("INTROSPECTION_TIMEOUT_SECONDS", 5)) * time.Second,

		HeaderEnabled: getbool("TOKEN_HEADER_ENABLED", true),
		HeaderName:    getenv("TOKEN_HEADER_NAME", "Authorization"),
		QueryEnabled:  getbool("TOKEN_QUERY_ENABLED", false),
		QueryName:     getenv("TOKEN_QUERY_NAME", "access_token"),
		CookieEnabled: getbool("TOKEN_COOKIE_ENABLED", true),
		CookieName:    getenv("TOKEN_COOKIE_NAME", "token"),

		ClaimUserID:      getenv("CLAIM_USER_ID", "sub"),
		ClaimRoles:       getenv("CLAIM_ROLES", "roles"),
		ClaimPermissions: getenv("CLAIM_PERMISSIONS", "permissions"),
		ClaimTenantID:    getenv("CLAIM_TENANT_ID", "tenant_id"),

		AllowedIPs: getlist("ALLOWED_IPS"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		SeedDemo:  getbool("SEED_DEMO", false),
	}

	if cfg.DSN == "" {
		log.Fatal("❌ MYSQL_DSN not set in environment")
	}

	switch cfg.Strategy {
	case StrategyLocal:
		if cfg.JWTSecret == "" && cfg.JWTPublicKey == "" {
			if cfg.AppEnv == "production" {
				log.Fatal("❌ JWT_SECRET (or JWT_PUBLIC_KEY) must be set in production")
			}
			cfg.JWTSecret = "dev-secret-only"
		}
	case StrategyIntrospection:
		if cfg.IntrospectionURL == "" {
			log.Fatal("❌ INTROSPECTION_URL must be set when AUTH_STRATEGY=introspection")
		}
	default:
		log.Fatalf("❌ Unknown AUTH_STRATEGY %q (want local or introspection)", cfg.Strategy)
	}

	if cfg.SkipExpiry && cfg.AppEnv == "production" {
		log.Fatal("❌ JWT_SKIP_EXPIRY is not allowed in production")
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("❌ %s must be a boolean, got %q", key, v)
	}
	return b
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("❌ %s must be an integer, got %q", key, v)
	}
	return n
}

func getlist(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
