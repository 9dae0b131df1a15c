package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("API_BASE_URL", "https://api.example.com/v1")
	os.Setenv("SESSION_SECRET", "test-secret-32-characters-long!!")
	t.Cleanup(os.Clearenv)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port: got %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Env: got %q, want %q", cfg.Server.Env, "development")
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout: got %v, want %v", cfg.API.Timeout, 10*time.Second)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("Session.TTL: got %v, want %v", cfg.Session.TTL, 12*time.Hour)
	}
	if cfg.Session.RememberTTL != 30*24*time.Hour {
		t.Errorf("Session.RememberTTL: got %v, want %v", cfg.Session.RememberTTL, 30*24*time.Hour)
	}
	if cfg.Session.CookieSameSite != "lax" {
		t.Errorf("CookieSameSite: got %q, want %q", cfg.Session.CookieSameSite, "lax")
	}
	if cfg.Session.CookieSecure {
		t.Error("CookieSecure: got true, want false in development")
	}
}

func TestLoad_TrimsBaseURLSlash(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("API_BASE_URL", "https://api.example.com/v1/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.API.BaseURL != "https://api.example.com/v1" {
		t.Errorf("BaseURL: got %q, want trailing slash removed", cfg.API.BaseURL)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	os.Setenv("SESSION_SECRET", "test-secret-32-characters-long!!")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil, want error for missing API_BASE_URL")
	}
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	os.Setenv("API_BASE_URL", "https://api.example.com/v1")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil, want error for missing SESSION_SECRET")
	}
}

func TestLoad_CustomDurations(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("API_TIMEOUT", "3s")
	os.Setenv("SESSION_TTL", "1h")
	os.Setenv("SESSION_REMEMBER_TTL", "168h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout: got %v, want %v", cfg.API.Timeout, 3*time.Second)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("Session.TTL: got %v, want %v", cfg.Session.TTL, time.Hour)
	}
	if cfg.Session.RememberTTL != 168*time.Hour {
		t.Errorf("Session.RememberTTL: got %v, want %v", cfg.Session.RememberTTL, 168*time.Hour)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("API_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout: got %v, want default %v", cfg.API.Timeout, 10*time.Second)
	}
}

func TestValidateSessionSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		env     string
		wantErr bool
	}{
		{"short secret in development", "tooshort", "development", true},
		{"16 chars in development", "exactly16chars!!", "development", false},
		{"16 chars in production", "exactly16chars!!", "production", true},
		{"32 chars in production", "this-secret-is-32-characters-ok!", "production", false},
		{"weak value", "changeme", "development", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSessionSecret(tt.secret, tt.env)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSessionSecret(%q, %q) = %v, wantErr %v", tt.secret, tt.env, err, tt.wantErr)
			}
		})
	}
}
