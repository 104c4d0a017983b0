package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr() != ":3000" {
		t.Fatalf("addr=%q", cfg.Addr())
	}
	if cfg.ImagePolicy != "upload" || cfg.IDStrategy != "max" {
		t.Fatalf("policy=%q strategy=%q", cfg.ImagePolicy, cfg.IDStrategy)
	}
	if cfg.MaxUploadBytes != 5<<20 || !cfg.SeedProducts || !cfg.MetricsEnabled {
		t.Fatalf("cfg=%+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("origins=%v", cfg.AllowedOrigins)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8085")
	t.Setenv("IMAGE_POLICY", "URI")
	t.Setenv("ID_STRATEGY", "length")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SEED_PRODUCTS", "false")
	t.Setenv("WRITE_LIMIT_PER_MIN", "30")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8085 || cfg.ImagePolicy != "uri" || cfg.IDStrategy != "length" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.SeedProducts || cfg.WriteLimitPerMin != 30 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if strings.Join(cfg.AllowedOrigins, "|") != "https://a.example|https://b.example" {
		t.Fatalf("origins=%v", cfg.AllowedOrigins)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string][2]string{
		"bad policy":       {"IMAGE_POLICY", "s3"},
		"bad strategy":     {"ID_STRATEGY", "random"},
		"port range":       {"PORT", "70000"},
		"zero upload size": {"MAX_UPLOAD_BYTES", "0"},
		"negative limit":   {"WRITE_LIMIT_PER_MIN", "-1"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(viper.New()); err == nil || !strings.Contains(err.Error(), kv[0]) {
				t.Fatalf("err=%v, want mention of %s", err, kv[0])
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}

	const key = "SUNCATALOG_DOTENV_PROBE"
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("%s=%q", key, got)
	}
}
