package config

import (
	"strings"
	"testing"
	"time"
)

func TestAuthConfigFinalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		cfg := AuthConfig{Secret: "file-secret"}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.TokenTTL != "24h" {
			t.Errorf("token_ttl = %q, want 24h", cfg.TokenTTL)
		}
		if cfg.TokenTTLDuration() != 24*time.Hour {
			t.Errorf("ttl duration = %s", cfg.TokenTTLDuration())
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv(EnvAuthSecret, "env-secret")
		t.Setenv(EnvAuthTokenTTL, "30m")

		cfg := AuthConfig{Secret: "file-secret", TokenTTL: "24h"}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.Secret != "env-secret" {
			t.Errorf("secret = %q, want env-secret", cfg.Secret)
		}
		if cfg.TokenTTLDuration() != 30*time.Minute {
			t.Errorf("ttl duration = %s", cfg.TokenTTLDuration())
		}
	})

	t.Run("missing secret fails", func(t *testing.T) {
		var cfg AuthConfig
		err := cfg.Finalize()
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "auth secret is required") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("invalid ttl fails", func(t *testing.T) {
		cfg := AuthConfig{Secret: "s", TokenTTL: "soon"}
		if err := cfg.Finalize(); err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestAuthConfigMerge(t *testing.T) {
	cfg := AuthConfig{Secret: "base", TokenTTL: "24h"}
	cfg.Merge(&AuthConfig{TokenTTL: "1h"})

	if cfg.Secret != "base" {
		t.Errorf("secret = %q, want base", cfg.Secret)
	}
	if cfg.TokenTTL != "1h" {
		t.Errorf("token_ttl = %q, want 1h", cfg.TokenTTL)
	}
}

func TestAPIConfigDefaults(t *testing.T) {
	var cfg APIConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.BasePath != "/api" {
		t.Errorf("base_path = %q, want /api", cfg.BasePath)
	}
	if cfg.MaxUploadSize != "10MB" {
		t.Errorf("max_upload_size = %q, want 10MB", cfg.MaxUploadSize)
	}
	if cfg.Pagination.DefaultPageSize != 10 || cfg.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination = %+v", cfg.Pagination)
	}
}

func TestMaxUploadSizeBytes(t *testing.T) {
	tests := []struct {
		name string
		size string
		want int64
	}{
		{"parsed value", "5MB", 5 * 1024 * 1024},
		{"bare bytes", "1024", 1024},
		{"invalid falls back", "huge", 10 * 1024 * 1024},
		{"empty falls back", "", 10 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := APIConfig{MaxUploadSize: tt.size}
			if got := cfg.MaxUploadSizeBytes(); got != tt.want {
				t.Errorf("MaxUploadSizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAPIConfigEnvOverrides(t *testing.T) {
	t.Setenv("PLACARD_API_BASE_PATH", "/v2")
	t.Setenv("PLACARD_API_MAX_UPLOAD_SIZE", "25MB")

	var cfg APIConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.BasePath != "/v2" {
		t.Errorf("base_path = %q, want /v2", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 25*1024*1024 {
		t.Errorf("max upload bytes = %d", cfg.MaxUploadSizeBytes())
	}
}
