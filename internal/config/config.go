package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
	Render RenderConfig `mapstructure:"render"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Site   SiteConfig   `mapstructure:"site"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RenderConfig struct {
	FontRegular  string `mapstructure:"font_regular"`
	FontBold     string `mapstructure:"font_bold"`
	StrictImages bool   `mapstructure:"strict_images"`
	CacheControl string `mapstructure:"cache_control"`
}

type FetchConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryMax     int           `mapstructure:"retry_max"`
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max"`
	MaxBytes     int64         `mapstructure:"max_bytes"`
	UserAgent    string        `mapstructure:"user_agent"`
	AllowPrivate bool          `mapstructure:"allow_private"`
}

type SiteConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

const DefaultCacheControl = "public, max-age=86400, s-maxage=86400, stale-while-revalidate=604800"

var cfg *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_header_bytes", 1<<20)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept"})
	v.SetDefault("cors.exposed_headers", []string{"Content-Length", "X-OG-Fallback", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 43200)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("render.font_regular", "")
	v.SetDefault("render.font_bold", "")
	v.SetDefault("render.strict_images", false)
	v.SetDefault("render.cache_control", DefaultCacheControl)

	v.SetDefault("fetch.timeout", 5*time.Second)
	v.SetDefault("fetch.retry_max", 2)
	v.SetDefault("fetch.retry_wait_max", 2*time.Second)
	v.SetDefault("fetch.max_bytes", 5<<20)
	v.SetDefault("fetch.user_agent", "ogstudio/1.0")
	v.SetDefault("fetch.allow_private", false)

	v.SetDefault("site.base_url", "http://localhost:8080")
}

// Load reads configPath if it exists and applies OGSTUDIO_* environment
// overrides on top of the defaults. An empty or missing path is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OGSTUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if c.Render.CacheControl == "" {
		c.Render.CacheControl = DefaultCacheControl
	}
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")

	cfg = c
	return cfg, nil
}

func Get() *Config {
	return cfg
}
