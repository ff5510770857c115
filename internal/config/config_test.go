package config

import "testing"

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("FRONTEND_URL", "https://admin.example.vn")
	t.Setenv("APP_ENV", "development")

	var cfg Config
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432

	applyEnvOverrides(&cfg)

	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected DB host override, got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 6543 {
		t.Errorf("expected DB port 6543, got %d", cfg.Database.Port)
	}
	if cfg.JWT.Secret != "s3cret" {
		t.Errorf("expected JWT secret from environment, got %q", cfg.JWT.Secret)
	}
	if len(cfg.Server.CorsAllowedOrigins) != 1 || cfg.Server.CorsAllowedOrigins[0] != "https://admin.example.vn" {
		t.Errorf("unexpected CORS origins %v", cfg.Server.CorsAllowedOrigins)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development mode")
	}
}

func TestApplyEnvOverridesIgnoresBadPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	var cfg Config
	cfg.Database.Port = 5432
	applyEnvOverrides(&cfg)

	if cfg.Database.Port != 5432 {
		t.Errorf("expected port to stay 5432, got %d", cfg.Database.Port)
	}
}
