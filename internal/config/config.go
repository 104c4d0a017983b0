package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     int
	LogLevel string

	ImagePolicy    string
	UploadDir      string
	MaxUploadBytes int64
	PublicDir      string

	SeedProducts bool
	IDStrategy   string

	AllowedOrigins   []string
	WriteLimitPerMin int

	MetricsEnabled bool
	MetricsToken   string
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("IMAGE_POLICY", "upload")
	v.SetDefault("UPLOAD_DIR", "./images")
	v.SetDefault("MAX_UPLOAD_BYTES", 5<<20)
	v.SetDefault("PUBLIC_DIR", "./web")
	v.SetDefault("SEED_PRODUCTS", true)
	v.SetDefault("ID_STRATEGY", "max")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("WRITE_LIMIT_PER_MIN", 0)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_TOKEN", "")
}

// Load reads configuration from the environment (and anything already
// bound on v, such as command flags) and checks it.
func Load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		Port:             v.GetInt("PORT"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		ImagePolicy:      strings.ToLower(v.GetString("IMAGE_POLICY")),
		UploadDir:        v.GetString("UPLOAD_DIR"),
		MaxUploadBytes:   v.GetInt64("MAX_UPLOAD_BYTES"),
		PublicDir:        v.GetString("PUBLIC_DIR"),
		SeedProducts:     v.GetBool("SEED_PRODUCTS"),
		IDStrategy:       strings.ToLower(v.GetString("ID_STRATEGY")),
		AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		WriteLimitPerMin: v.GetInt("WRITE_LIMIT_PER_MIN"),
		MetricsEnabled:   v.GetBool("METRICS_ENABLED"),
		MetricsToken:     v.GetString("METRICS_TOKEN"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}

	switch c.ImagePolicy {
	case "upload", "uri":
	default:
		return fmt.Errorf("IMAGE_POLICY must be upload or uri, got %q", c.ImagePolicy)
	}

	switch c.IDStrategy {
	case "max", "length":
	default:
		return fmt.Errorf("ID_STRATEGY must be max or length, got %q", c.IDStrategy)
	}

	if c.ImagePolicy == "upload" && c.UploadDir == "" {
		return errors.New("UPLOAD_DIR is required when IMAGE_POLICY=upload")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.WriteLimitPerMin < 0 {
		return fmt.Errorf("WRITE_LIMIT_PER_MIN must not be negative, got %d", c.WriteLimitPerMin)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
