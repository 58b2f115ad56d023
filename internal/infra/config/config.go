package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Contact   ContactConfig   `yaml:"contact"`
	Gallery   GalleryConfig   `yaml:"gallery"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent reads.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CatalogConfig selects where branch content is loaded from.
type CatalogConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ContactConfig controls contact links and click tracking.
type ContactConfig struct {
	DefaultMessage string      `yaml:"defaultMessage"`
	EmailDomain    string      `yaml:"emailDomain"`
	TopChannels    int         `yaml:"topChannels"`
	Redis          RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection information for counter storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// GalleryConfig controls how gallery image paths become URLs.
type GalleryConfig struct {
	PublicBaseURL string   `yaml:"publicBaseUrl"`
	S3            S3Config `yaml:"s3"`
}

// S3Config points at an S3 compatible bucket used for presigned URLs.
type S3Config struct {
	Enabled    bool          `yaml:"enabled"`
	Endpoint   string        `yaml:"endpoint"`
	AccessKey  string        `yaml:"accessKey"`
	SecretKey  string        `yaml:"secretKey"`
	Bucket     string        `yaml:"bucket"`
	Region     string        `yaml:"region"`
	PresignTTL time.Duration `yaml:"presignTtl"`
}

// TelemetryConfig controls OpenTelemetry trace export.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	ServiceName  string  `yaml:"serviceName"`
	OTLPEndpoint string  `yaml:"otlpEndpoint"`
	SampleRatio  float64 `yaml:"sampleRatio"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("CATALOG_POSTGRES_DSN"); v != "" {
		cfg.Catalog.Postgres.DSN = v
	}
	if v := os.Getenv("CATALOG_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("CATALOG_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("CONTACT_DEFAULT_MESSAGE"); v != "" {
		cfg.Contact.DefaultMessage = v
	}
	if v := os.Getenv("CONTACT_EMAIL_DOMAIN"); v != "" {
		cfg.Contact.EmailDomain = v
	}
	if v := os.Getenv("CONTACT_TOP_CHANNELS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Contact.TopChannels = parsed
		}
	}
	if v := os.Getenv("CONTACT_REDIS_ENABLED"); v != "" {
		cfg.Contact.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("CONTACT_REDIS_ADDR"); v != "" {
		cfg.Contact.Redis.Addr = v
	}
	if v := os.Getenv("GALLERY_PUBLIC_BASE_URL"); v != "" {
		cfg.Gallery.PublicBaseURL = v
	}
	if v := os.Getenv("GALLERY_S3_ENABLED"); v != "" {
		cfg.Gallery.S3.Enabled = parseBool(v)
	}
	if v := os.Getenv("GALLERY_S3_ENDPOINT"); v != "" {
		cfg.Gallery.S3.Endpoint = v
	}
	if v := os.Getenv("GALLERY_S3_ACCESS_KEY"); v != "" {
		cfg.Gallery.S3.AccessKey = v
	}
	if v := os.Getenv("GALLERY_S3_SECRET_KEY"); v != "" {
		cfg.Gallery.S3.SecretKey = v
	}
	if v := os.Getenv("GALLERY_S3_BUCKET"); v != "" {
		cfg.Gallery.S3.Bucket = v
	}
	if v := os.Getenv("GALLERY_S3_REGION"); v != "" {
		cfg.Gallery.S3.Region = v
	}
	if v := os.Getenv("GALLERY_S3_PRESIGN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Gallery.S3.PresignTTL = parsed
		}
	}
	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		cfg.Telemetry.Enabled = parseBool(v)
	}
	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.Telemetry.ServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_SAMPLING_RATIO"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Telemetry.SampleRatio = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			CORSOrigins: []string{
				"http://localhost:3000",
				"https://funzone.lb",
			},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 100 * time.Millisecond,
				Exclude: []string{
					"/healthz",
				},
			},
		},
		Catalog: CatalogConfig{
			Postgres: PostgresConfig{
				DSN:      "",
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Contact: ContactConfig{
			DefaultMessage: "Hi! I'd like to ask about {branch}.",
			EmailDomain:    "funzone.lb",
			TopChannels:    10,
			Redis: RedisConfig{
				Enabled: false,
				Addr:    "",
				Prefix:  "contact",
			},
		},
		Gallery: GalleryConfig{
			PublicBaseURL: "",
			S3: S3Config{
				Region:     "auto",
				PresignTTL: 15 * time.Minute,
			},
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			ServiceName:  "funzone-site",
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.Catalog.Postgres.MaxConns < 0 || c.Catalog.Postgres.MinConns < 0 {
		return errors.New("catalog.postgres pool sizes cannot be negative")
	}
	if c.Contact.TopChannels < 0 {
		return errors.New("contact.topChannels cannot be negative")
	}
	if c.Contact.Redis.Enabled && strings.TrimSpace(c.Contact.Redis.Addr) == "" {
		return errors.New("contact.redis.addr cannot be empty when redis counters are enabled")
	}
	if c.Gallery.S3.Enabled {
		if strings.TrimSpace(c.Gallery.S3.Endpoint) == "" || strings.TrimSpace(c.Gallery.S3.Bucket) == "" {
			return errors.New("gallery.s3 endpoint and bucket are required when s3 is enabled")
		}
		if c.Gallery.S3.PresignTTL <= 0 {
			return errors.New("gallery.s3.presignTtl must be positive")
		}
	}
	if c.Telemetry.Enabled && strings.TrimSpace(c.Telemetry.OTLPEndpoint) == "" {
		return errors.New("telemetry.otlpEndpoint cannot be empty when telemetry is enabled")
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return errors.New("telemetry.sampleRatio must be between 0 and 1")
	}
	return nil
}
