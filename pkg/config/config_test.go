package config

import "testing"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STYLEHUB_APP_ENV", "dev")
	t.Setenv("STYLEHUB_APP_PORT", "8080")
	t.Setenv("STYLEHUB_STORE_BACKEND", "memory")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected dev environment")
	}
	if cfg.Store.Backend != StoreBackendMemory {
		t.Fatalf("unexpected backend %q", cfg.Store.Backend)
	}
	if !cfg.Seed.Auto {
		t.Fatal("expected auto seed by default")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STYLEHUB_STORE_BACKEND", "mongo")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadRedisBackendRequiresAddress(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STYLEHUB_STORE_BACKEND", "redis")
	t.Setenv("STYLEHUB_REDIS_URL", "")
	t.Setenv("STYLEHUB_REDIS_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when redis backend has no address")
	}

	t.Setenv("STYLEHUB_REDIS_ADDR", "localhost:6379")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Fatalf("unexpected redis address %q", cfg.Redis.Address)
	}
}

func TestLoadDBBackendRejectsUnknownDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STYLEHUB_STORE_BACKEND", "db")
	t.Setenv("STYLEHUB_DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
