// Package config loads service configuration in layers: built-in defaults, an
// optional YAML file named by FEDER_CONFIG, then FEDER_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	ConfigPathEnvVar = "FEDER_CONFIG"
	envPrefix        = "FEDER_"
)

type Config struct {
	Environment string          `koanf:"environment" validate:"oneof=development production test"`
	Server      ServerConfig    `koanf:"server"`
	Log         LogConfig       `koanf:"log"`
	Database    DatabaseConfig  `koanf:"database"`
	Redis       RedisConfig     `koanf:"redis"`
	Kafka       KafkaConfig     `koanf:"kafka"`
	Blob        BlobConfig      `koanf:"blob"`
	Webhook     WebhookConfig   `koanf:"webhook"`
	Auth        AuthConfig      `koanf:"auth"`
	Cases       CasesConfig     `koanf:"cases"`
	SMTP        SMTPConfig      `koanf:"smtp"`
	VirusScan   VirusScanConfig `koanf:"virusscan"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

// DatabaseConfig selects PostgreSQL when URL is set, in-memory stores otherwise.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL          string        `koanf:"url"`
	PoolSize     int           `koanf:"pool_size"`
	MinIdleConns int           `koanf:"min_idle_conns"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// KafkaConfig enables the outbox worker when Brokers is non-empty.
type KafkaConfig struct {
	Brokers           []string      `koanf:"brokers"`
	ClientID          string        `koanf:"client_id"`
	RecordsTopic      string        `koanf:"records_topic" validate:"required"`
	AlertsTopic       string        `koanf:"alerts_topic" validate:"required"`
	Partitions        int32         `koanf:"partitions" validate:"min=1"`
	ReplicationFactor int16         `koanf:"replication_factor" validate:"min=1"`
	PublishInterval   time.Duration `koanf:"publish_interval"`
	BatchSize         int           `koanf:"batch_size" validate:"min=1"`
}

type BlobConfig struct {
	Backend string       `koanf:"backend" validate:"oneof=fs s3"`
	FSRoot  string       `koanf:"fs_root"`
	S3      BlobS3Config `koanf:"s3"`
}

type BlobS3Config struct {
	Endpoint  string `koanf:"endpoint"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	UseSSL    bool   `koanf:"use_ssl"`
	Prefix    string `koanf:"prefix"`
}

type WebhookConfig struct {
	Secret       string        `koanf:"secret"`
	RateLimit    int           `koanf:"rate_limit" validate:"min=1"`
	RateWindow   time.Duration `koanf:"rate_window"`
	MaxBodyBytes int64         `koanf:"max_body_bytes" validate:"min=1024"`
	DedupTTL     time.Duration `koanf:"dedup_ttl"`
}

type AuthConfig struct {
	JWTSigningKey string        `koanf:"jwt_signing_key" validate:"required,min=16"`
	Issuer        string        `koanf:"issuer" validate:"required"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
}

type CasesConfig struct {
	EmailDomain string `koanf:"email_domain" validate:"required,fqdn"`
}

// SMTPConfig configures the relay for outgoing letters. An empty Addr stores
// letters without sending them.
type SMTPConfig struct {
	Addr       string `koanf:"addr"`
	Hostname   string `koanf:"hostname"`
	Username   string `koanf:"username"`
	Password   string `koanf:"password"`
	RequireTLS bool   `koanf:"require_tls"`
}

type VirusScanConfig struct {
	Engine           string        `koanf:"engine" validate:"oneof=noop"`
	Interval         time.Duration `koanf:"interval"`
	BatchSize        int           `koanf:"batch_size" validate:"min=1"`
	BreakerFailures  uint32        `koanf:"breaker_failures" validate:"min=1"`
	BreakerOpenDelay time.Duration `koanf:"breaker_open_delay"`
}

// IsProduction reports whether development conveniences must stay off.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func defaultConfig() Config {
	return Config{
		Environment: "development",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Database: DatabaseConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			ClientID:          "feder",
			RecordsTopic:      "feder.records",
			AlertsTopic:       "feder.alerts",
			Partitions:        3,
			ReplicationFactor: 1,
			PublishInterval:   time.Second,
			BatchSize:         100,
		},
		Blob: BlobConfig{Backend: "fs", FSRoot: "./data/blobs"},
		Webhook: WebhookConfig{
			RateLimit:    120,
			RateWindow:   time.Minute,
			MaxBodyBytes: 50 << 20,
			DedupTTL:     24 * time.Hour,
		},
		Auth: AuthConfig{
			JWTSigningKey: "dev-signing-key-change-me",
			Issuer:        "feder",
			TokenTTL:      12 * time.Hour,
		},
		Cases: CasesConfig{EmailDomain: "fedrowanie.localhost"},
		SMTP:  SMTPConfig{Hostname: "localhost"},
		VirusScan: VirusScanConfig{
			Engine:           "noop",
			Interval:         30 * time.Second,
			BatchSize:        50,
			BreakerFailures:  5,
			BreakerOpenDelay: time.Minute,
		},
	}
}

// Load builds the configuration from all layers and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := splitList(k, "kafka.brokers"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Blob.Backend == "s3" && c.Blob.S3.Bucket == "" {
		return fmt.Errorf("invalid config: blob.s3.bucket is required for the s3 backend")
	}
	if c.IsProduction() {
		if c.Webhook.Secret == "" {
			return fmt.Errorf("invalid config: webhook.secret is required in production")
		}
		if c.Auth.JWTSigningKey == defaultConfig().Auth.JWTSigningKey {
			return fmt.Errorf("invalid config: auth.jwt_signing_key must be set in production")
		}
	}
	return nil
}

// envTransform maps FEDER_DATABASE__URL to database.url. A double underscore
// separates levels so single underscores survive inside key names.
func envTransform(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

// splitList turns a comma separated env value into a slice.
func splitList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var items []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	if err := k.Set(path, items); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}
