package main

import (
	"fmt"
	stdlog "log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskguard/internal/abac"
	"taskguard/internal/auth"
	"taskguard/internal/config"
	"taskguard/internal/db"
	httpserver "taskguard/internal/http"
	"taskguard/internal/logging"
	"taskguard/internal/models"
	"taskguard/internal/seed"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.AppEnv)
	if err != nil {
		stdlog.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer log.Sync()

	gdb := db.Connect(cfg.DSN)
	db.AutoMigrate(gdb,
		&models.Task{},
		&models.AuditLog{},
	)

	if cfg.SeedDemo {
		if err := seed.DemoTasks(gdb); err != nil {
			log.Sugar().Fatalf("❌ Seeding failed: %v", err)
		}
	}

	registry, err := abac.NewRegistry(abac.BuiltinPolicies(cfg.AllowedIPs)...)
	if err != nil {
		log.Sugar().Fatalf("❌ Policy registry bootstrap failed: %v", err)
	}
	evaluator := abac.NewEvaluator(registry, log)
	log.Sugar().Infof("✅ Policy registry ready: %v", registry.Names())

	validator, err := buildValidator(cfg, log)
	if err != nil {
		log.Sugar().Fatalf("❌ Validator setup failed: %v", err)
	}

	extractor := auth.NewExtractor(auth.ExtractorConfig{
		HeaderEnabled: cfg.HeaderEnabled,
		HeaderName:    cfg.HeaderName,
		QueryEnabled:  cfg.QueryEnabled,
		QueryName:     cfg.QueryName,
		CookieEnabled: cfg.CookieEnabled,
		CookieName:    cfg.CookieName,
	})

	r := httpserver.NewRouter(gdb, extractor, validator, evaluator, log)

	log.Sugar().Infof("🚀 Server listening on :%s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Sugar().Fatalf("❌ Server stopped: %v", err)
	}
}

func buildValidator(cfg config.Config, log *zap.Logger) (auth.Validator, error) {
	keys := auth.ClaimKeys{
		UserID:      cfg.ClaimUserID,
		Roles:       cfg.ClaimRoles,
		Permissions: cfg.ClaimPermissions,
		TenantID:    cfg.ClaimTenantID,
	}

	if cfg.Strategy == config.StrategyIntrospection {
		var cache auth.TokenCache
		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			cache = auth.NewRedisTokenCache(rdb)
			log.Sugar().Infof("✅ Introspection cache enabled (redis %s)", cfg.RedisAddr)
		}
		return auth.NewIntrospectionValidator(auth.IntrospectionConfig{
			BaseURL:   cfg.IntrospectionURL,
			Path:      cfg.IntrospectionPath,
			Timeout:   cfg.IntrospectionTimeout,
			ClaimKeys: keys,
		}, cache, log), nil
	}

	return auth.NewLocalValidator(auth.LocalConfig{
		Secret:       cfg.JWTSecret,
		PublicKeyPEM: cfg.JWTPublicKey,
		Algorithm:    cfg.JWTAlg,
		Issuer:       cfg.JWTIssuer,
		Audience:     cfg.JWTAudience,
		Leeway:       cfg.JWTLeeway,
		MaxAge:       cfg.JWTMaxAge,
		SkipExpiry:   cfg.SkipExpiry,
		ClaimKeys:    keys,
	})
}
