package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Session  SessionConfig  `mapstructure:"session"`
	Media    MediaConfig    `mapstructure:"media"`
	Log      LogConfig      `mapstructure:"log"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug or release
	// TemplateGlob locates the HTML templates relative to the working dir.
	TemplateGlob string `mapstructure:"template_glob"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	// TTL bounds how long a rendered index page may be served stale.
	TTL time.Duration `mapstructure:"ttl"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

type MediaConfig struct {
	// Backend selects where uploaded images land: "local" or "minio".
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`

	MinioEndpoint  string `mapstructure:"minio_endpoint"`
	MinioAccessKey string `mapstructure:"minio_access_key"`
	MinioSecretKey string `mapstructure:"minio_secret_key"`
	MinioBucket    string `mapstructure:"minio_bucket"`
	MinioUseSSL    bool   `mapstructure:"minio_use_ssl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SentryConfig struct {
	// DSN enables error reporting; an empty DSN leaves the client disabled.
	DSN string `mapstructure:"dsn"`
}

// Load reads config.yaml from the working directory (if present) and applies
// INKWELL_* environment overrides, e.g. INKWELL_DATABASE_DSN.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INKWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.template_glob", "templates/*.html")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "inkwell.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.ttl", 20*time.Second)
	v.SetDefault("session.secret", "dev-only-secret")
	v.SetDefault("session.max_age", 7*24*time.Hour)
	v.SetDefault("media.backend", "local")
	v.SetDefault("media.dir", "media")
	v.SetDefault("media.minio_bucket", "inkwell")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
