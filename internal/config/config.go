// Package config loads qrsheet settings from an optional YAML file, a .env
// file and QRSHEET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Renderer string `mapstructure:"renderer" validate:"oneof=styled plain"`

	Page     PageConfig     `mapstructure:"page"`
	Grid     GridConfig     `mapstructure:"grid"`
	Large    LargeConfig    `mapstructure:"large"`
	Preview  SizeConfig     `mapstructure:"preview"`
	Export   SizeConfig     `mapstructure:"export"`
	Session  SessionConfig  `mapstructure:"session"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// PageConfig is the PDF page format.
type PageConfig struct {
	Format      string `mapstructure:"format" validate:"oneof=A3 A4 A5 Letter Legal"`
	Orientation string `mapstructure:"orientation" validate:"oneof=P L"`
	Unit        string `mapstructure:"unit" validate:"oneof=mm pt cm in"`
}

// GridConfig holds the default grid sheet layout.
type GridConfig struct {
	Rows   int     `mapstructure:"rows" validate:"min=1,max=10"`
	Cols   int     `mapstructure:"cols" validate:"min=1,max=10"`
	Margin float64 `mapstructure:"margin" validate:"min=0"`
}

// LargeConfig holds the single-code sheet layout.
type LargeConfig struct {
	Margin float64 `mapstructure:"margin" validate:"min=0"`
}

// SizeConfig is a raster size in pixels.
type SizeConfig struct {
	Size int `mapstructure:"size" validate:"min=128,max=4096"`
}

// SessionConfig controls how long an idle editing session is kept.
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"min=1s"`
}

// UploadConfig limits logo uploads.
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes" validate:"min=1"`
}

// DefaultsConfig is the style a new session starts with.
type DefaultsConfig struct {
	URL           string `mapstructure:"url"`
	TopCaption    string `mapstructure:"top_caption"`
	BottomCaption string `mapstructure:"bottom_caption"`
	Dots          string `mapstructure:"dots" validate:"oneof=square dots rounded extra-rounded chain hstripe vstripe"`
	Corners       string `mapstructure:"corners" validate:"oneof=square dot extra-rounded"`
	BuiltinLogo   bool   `mapstructure:"builtin_logo"`
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("renderer", "styled")

	v.SetDefault("page.format", "A4")
	v.SetDefault("page.orientation", "P")
	v.SetDefault("page.unit", "mm")

	v.SetDefault("grid.rows", 4)
	v.SetDefault("grid.cols", 4)
	v.SetDefault("grid.margin", 10.0)
	v.SetDefault("large.margin", 20.0)

	v.SetDefault("preview.size", 300)
	v.SetDefault("export.size", 1024)

	v.SetDefault("session.ttl", 2*time.Hour)
	v.SetDefault("upload.max_bytes", 2<<20)

	v.SetDefault("defaults.url", "https://example.com")
	v.SetDefault("defaults.top_caption", "Scan me")
	v.SetDefault("defaults.bottom_caption", "")
	v.SetDefault("defaults.dots", "rounded")
	v.SetDefault("defaults.corners", "extra-rounded")
	v.SetDefault("defaults.builtin_logo", true)
}

// Load reads configuration. path names an optional YAML file; when empty,
// qrsheet.yaml is looked up in the working directory. Values from
// QRSHEET_* environment variables (and a .env file) override the file.
func Load(path string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QRSHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("qrsheet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// PORT is what most hosting platforms set.
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QRSHEET_PORT") == "" {
		v.Set("port", port)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
