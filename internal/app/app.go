package app

import (
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Addr     string         `mapstructure:"addr"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Session  SessionConfig  `mapstructure:"session"`
	News     NewsConfig     `mapstructure:"news"`
	Comments CommentsConfig `mapstructure:"comments"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type StorageConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
	UseMemory   bool   `mapstructure:"use_memory"`
}

type SessionConfig struct {
	Lifetime time.Duration `mapstructure:"lifetime"`
}

type NewsConfig struct {
	// PageSize caps the home page listing.
	PageSize int `mapstructure:"page_size"`
}

type CommentsConfig struct {
	// BadWords are rejected as case-insensitive substrings of comment text.
	BadWords []string `mapstructure:"bad_words"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetDefaults registers fallback values on the given viper instance; call
// before unmarshalling.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("storage.database_url", "postgres://localhost:5432/newsboard?sslmode=disable")
	v.SetDefault("storage.use_memory", false)
	v.SetDefault("session.lifetime", 24*time.Hour)
	v.SetDefault("news.page_size", 10)
	v.SetDefault("comments.bad_words", []string{"scoundrel", "villain"})
	v.SetDefault("metrics.enabled", true)
}

// Default returns the built-in configuration, used by tests and as the base
// for local runs without a config file.
func Default() Config {
	return Config{
		Addr:     ":8080",
		Storage:  StorageConfig{UseMemory: true},
		Session:  SessionConfig{Lifetime: 24 * time.Hour},
		News:     NewsConfig{PageSize: 10},
		Comments: CommentsConfig{BadWords: []string{"scoundrel", "villain"}},
		Metrics:  MetricsConfig{Enabled: true},
	}
}
