// Package config loads service settings from defaults, an optional
// kidsflix.yaml, KIDSFLIX_* environment variables and command line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/yakychan/KidsFlix/internal/cache"
	"github.com/yakychan/KidsFlix/services/catalog"
	"github.com/yakychan/KidsFlix/services/cinemeta"
	"github.com/yakychan/KidsFlix/services/kids"
	"github.com/yakychan/KidsFlix/services/omdb"
	"github.com/yakychan/KidsFlix/services/poster"
	"github.com/yakychan/KidsFlix/services/tmdb"
)

const (
	EnvPrefix   = "KIDSFLIX"
	FileName    = "kidsflix"
	DefaultPort = 3000
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	TMDB     ProviderConfig `mapstructure:"tmdb"`
	OMDb     ProviderConfig `mapstructure:"omdb"`
	Cinemeta ProviderConfig `mapstructure:"cinemeta"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Poster   PosterConfig   `mapstructure:"poster"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	PublicBaseURL   string        `mapstructure:"public_base_url"` // empty: derived per request
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type CacheConfig struct {
	HighWater        int           `mapstructure:"high_water"`
	SweepInterval    time.Duration `mapstructure:"sweep_interval"`
	CertificationTTL time.Duration `mapstructure:"certification_ttl"`
	CatalogTTL       time.Duration `mapstructure:"catalog_ttl"`
}

type PosterConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerMinute int           `mapstructure:"rate_per_minute"` // 0 disables limiting
	Burst         int           `mapstructure:"burst"`
	AllowedHosts  []string      `mapstructure:"allowed_hosts"`
}

type FilterConfig struct {
	StrictNeutral bool `mapstructure:"strict_neutral"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// New returns a viper instance with every default registered and the
// environment bound. PORT and BASE_URL are honoured for container platforms.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.public_base_url", "")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	v.SetDefault("tmdb.timeout", tmdb.DefaultTimeout)
	v.SetDefault("tmdb.ttl", tmdb.DefaultTTL)
	v.SetDefault("omdb.base_url", omdb.DefaultBaseURL)
	v.SetDefault("omdb.timeout", omdb.DefaultTimeout)
	v.SetDefault("omdb.ttl", omdb.DefaultTTL)
	v.SetDefault("cinemeta.base_url", cinemeta.DefaultBaseURL)
	v.SetDefault("cinemeta.timeout", cinemeta.DefaultTimeout)
	v.SetDefault("cinemeta.ttl", cinemeta.DefaultTTL)

	v.SetDefault("cache.high_water", cache.DefaultHighWater)
	v.SetDefault("cache.sweep_interval", cache.DefaultSweepInterval)
	v.SetDefault("cache.certification_ttl", kids.DefaultCertificationTTL)
	v.SetDefault("cache.catalog_ttl", catalog.DefaultPageTTL)

	v.SetDefault("poster.timeout", poster.DefaultTimeout)
	v.SetDefault("poster.rate_per_minute", 120)
	v.SetDefault("poster.burst", 60)
	v.SetDefault("poster.allowed_hosts", poster.DefaultAllowedHosts)

	v.SetDefault("filter.strict_neutral", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)

	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.public_base_url", EnvPrefix+"_SERVER_PUBLIC_BASE_URL", "BASE_URL")
	_ = v.BindEnv("filter.strict_neutral", EnvPrefix+"_FILTER_STRICT_NEUTRAL", EnvPrefix+"_STRICT_NEUTRAL")
	return v
}

// Load reads configFile, or kidsflix.yaml from the working directory or
// /etc/kidsflix when configFile is empty, then decodes and validates. A
// missing default file is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/kidsflix")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Server.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Server.PublicBaseURL), "/")
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Server),
		validation.Field(&c.TMDB),
		validation.Field(&c.OMDb),
		validation.Field(&c.Cinemeta),
		validation.Field(&c.Cache),
		validation.Field(&c.Poster),
		validation.Field(&c.Log),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&s.PublicBaseURL, is.URL),
		validation.Field(&s.ShutdownTimeout, validation.Required, validation.Min(time.Second)),
	)
}

func (p ProviderConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BaseURL, validation.Required, is.URL),
		validation.Field(&p.Timeout, validation.Required, validation.Min(100*time.Millisecond)),
		validation.Field(&p.TTL, validation.Required, validation.Min(time.Second)),
	)
}

func (c CacheConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HighWater, validation.Required, validation.Min(1)),
		validation.Field(&c.SweepInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.CertificationTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.CatalogTTL, validation.Required, validation.Min(time.Second)),
	)
}

func (p PosterConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Timeout, validation.Required, validation.Min(100*time.Millisecond)),
		validation.Field(&p.RatePerMinute, validation.Min(0)),
		validation.Field(&p.Burst, validation.When(p.RatePerMinute > 0, validation.Required, validation.Min(1))),
		validation.Field(&p.AllowedHosts, validation.Each(is.Host)),
	)
}

func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.Required, validation.In("text", "json")),
		validation.Field(&l.MaxSizeMB, validation.When(l.File != "", validation.Required, validation.Min(1))),
	)
}
