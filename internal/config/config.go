// Package config loads pathfinder settings from a YAML file, PATHFINDER_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/pathfinder/internal/submission"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// PATHFINDER_GENERATION_URL for generation.url.
const EnvPrefix = "PATHFINDER"

// Config holds all file/env configurable settings. LLM provider keys are
// read by internal/llm directly from the environment.
type Config struct {
	User       UserConfig       `mapstructure:"user"`
	Generation GenerationConfig `mapstructure:"generation"`
	Profile    ProfileConfig    `mapstructure:"profile"`
	Server     ServerConfig     `mapstructure:"server"`
	DB         string           `mapstructure:"db"`
	Log        LogConfig        `mapstructure:"log"`
	Quiz       QuizConfig       `mapstructure:"quiz"`
}

// UserConfig identifies the student using the TUI.
type UserConfig struct {
	Email string `mapstructure:"email"`
}

// GenerationConfig points at the report generation service. An empty URL
// means reports are generated in-process with the configured LLM provider.
type GenerationConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProfileConfig points at the profile service. An empty URL means
// profiles are written to the local database.
type ProfileConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures `pathfinder serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// QuizConfig selects the quiz definition.
type QuizConfig struct {
	// Path to a custom quiz YAML file. Empty uses the built-in quiz.
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("user.email", "")
	v.SetDefault("generation.url", "")
	v.SetDefault("generation.timeout", 90*time.Second)
	v.SetDefault("profile.url", "")
	v.SetDefault("profile.timeout", 15*time.Second)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("db", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("quiz.path", "")
}

// Load reads configuration. When path is empty, pathfinder.yaml is looked
// up in the working directory and the user config dir; a missing file is
// not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pathfinder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := userConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks URLs and timeouts.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"generation.url": c.Generation.URL,
		"profile.url":    c.Profile.URL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
		}
	}
	if c.Generation.Timeout < 0 {
		return fmt.Errorf("generation.timeout must not be negative")
	}
	if c.Profile.Timeout < 0 {
		return fmt.Errorf("profile.timeout must not be negative")
	}
	return nil
}

// Submission returns the submission timeouts.
func (c *Config) Submission() submission.Config {
	return submission.Config{
		RequestTimeout: c.Generation.Timeout,
		SyncTimeout:    c.Profile.Timeout,
	}
}

func userConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "pathfinder"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pathfinder"), nil
}
