package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreBackend != BackendMemory || cfg.ActivityWorkers != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ImageGen.URL != "https://oi-server.onrender.com/chat/completions" {
		t.Errorf("imagegen url = %q", cfg.ImageGen.URL)
	}
	if cfg.ImageGen.Timeout != 0 {
		t.Errorf("imagegen timeout = %v, want 0", cfg.ImageGen.Timeout)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled by default")
	}
	if cfg.Redis.IdempotencyTTL != 24*time.Hour || cfg.Redis.CommandTimeout != 500*time.Millisecond {
		t.Errorf("redis timings = %v / %v", cfg.Redis.IdempotencyTTL, cfg.Redis.CommandTimeout)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":             "9000",
		"ENV":              "production",
		"STORE_BACKEND":    "mongo",
		"REDIS_ENABLED":    "true",
		"IMAGEGEN_TIMEOUT": "90s",
		"IDEMPOTENCY_TTL":  "1h",
		"CORS_ORIGINS":     "http://a.test, http://b.test ,",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" || cfg.StoreBackend != BackendMongo || !cfg.Redis.Enabled {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Redis.IdempotencyTTL != time.Hour {
		t.Errorf("idempotency ttl = %v", cfg.Redis.IdempotencyTTL)
	}
	if cfg.ImageGen.Timeout != 90*time.Second {
		t.Errorf("timeout = %v", cfg.ImageGen.Timeout)
	}
	if cfg.IsDevelopment() {
		t.Error("production should not be development")
	}
	origins := cfg.Origins()
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Errorf("origins = %v", origins)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_BACKEND": "postgres"}))
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
