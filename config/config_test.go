package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HAWK_ALGORITHM", "HAWK_KEY_LIFESPAN", "USER_DIRECTORY", "CREDENTIAL_STORE", "OTEL_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Algorithm != "sha256" {
		t.Errorf("want algorithm sha256, got %s", cfg.Algorithm)
	}
	if cfg.KeyLifespan != time.Hour {
		t.Errorf("want lifespan 1h, got %s", cfg.KeyLifespan)
	}
	if cfg.UserDirectory != BackendMemory {
		t.Errorf("want user directory memory, got %s", cfg.UserDirectory)
	}
	if cfg.CredentialStore != BackendRedis {
		t.Errorf("want credential store redis, got %s", cfg.CredentialStore)
	}
	if cfg.OtelEnabled {
		t.Error("want otel disabled by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HAWK_ALGORITHM", "sha1")
	t.Setenv("HAWK_KEY_LIFESPAN", "3600s")
	t.Setenv("DEFAULT_USER_NAME", "alice")
	t.Setenv("LOGIN_RATE_BURST", "3")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()

	if cfg.Algorithm != "sha1" {
		t.Errorf("want algorithm sha1, got %s", cfg.Algorithm)
	}
	if cfg.KeyLifespan != time.Hour {
		t.Errorf("want lifespan 1h, got %s", cfg.KeyLifespan)
	}
	if cfg.DefaultUser.Username != "alice" {
		t.Errorf("want default user alice, got %s", cfg.DefaultUser.Username)
	}
	if cfg.LoginRateBurst != 3 {
		t.Errorf("want burst 3, got %d", cfg.LoginRateBurst)
	}
	if !cfg.OtelEnabled {
		t.Error("want otel enabled")
	}
}

func TestLoad_InvalidLifespanFallsBack(t *testing.T) {
	t.Setenv("HAWK_KEY_LIFESPAN", "-5m")

	if got := Load().KeyLifespan; got != time.Hour {
		t.Errorf("want fallback 1h, got %s", got)
	}
}
