package internal

import (
	"strings"
	"testing"
)

// A syntactically valid bcrypt hash for validation-shape tests.
const testHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Admin.PasswordHash = testHash
	return cfg
}

func TestDefaultConfigRequiresAdminHash(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("config without admin hash should fail validation")
	}
}

func TestValidConfigPasses(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config should pass: %v", err)
	}
}

func TestAdminConfigRejectsPlaintext(t *testing.T) {
	cfg := AdminConfig{PasswordHash: "hunter2"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("plaintext password should fail validation")
	}
	if !strings.Contains(err.Error(), "bcrypt") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSchedulerEmbedBaseDefault(t *testing.T) {
	cfg := SchedulerConfig{}
	if got := cfg.EmbedBase(); got != DefaultSchedulerURL {
		t.Errorf("EmbedBase() = %q, want default", got)
	}
}

func TestSchedulerEmbedBaseStripsTrailingSlash(t *testing.T) {
	cfg := SchedulerConfig{URL: "  https://calendly.com/acme/eval/  "}
	if got := cfg.EmbedBase(); got != "https://calendly.com/acme/eval" {
		t.Errorf("EmbedBase() = %q", got)
	}
}

func TestSiteLiveReloadRequiresTemplatesDir(t *testing.T) {
	cfg := SiteConfig{LiveReload: true}
	if err := cfg.Validate(); err == nil {
		t.Fatal("live_reload without templates_dir should fail")
	}
	cfg.TemplatesDir = "./templates"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("live_reload with templates_dir should pass: %v", err)
	}
}

func TestHTTPConfigPortRange(t *testing.T) {
	cfg := HTTPConfig{Port: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 0 should fail validation")
	}
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 70000 should fail validation")
	}
	cfg.Port = 8080
	if err := cfg.Validate(); err != nil {
		t.Fatalf("port 8080 should pass: %v", err)
	}
	if cfg.Address() != ":8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}
