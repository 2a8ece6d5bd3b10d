package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "8080" || cfg.Kiosk.SkuPrefix != "PREFIX" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Kiosk.RefreshInterval != 15*time.Second || cfg.Kiosk.APITimeout != 10*time.Second {
		t.Fatalf("unexpected durations: %+v", cfg.Kiosk)
	}
	if cfg.Mongo.URI != "" || cfg.Redis.Addr != "" {
		t.Fatalf("storage must be disabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("KIOSK_UI_TOKEN_SECRET", "s3cret")
	t.Setenv("KIOSK_SKU_PREFIX", "KZ.BED")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Kiosk.SkuPrefix != "KZ.BED" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_RequiresSecretInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("KIOSK_UI_TOKEN_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected missing secret to fail")
	}
}
