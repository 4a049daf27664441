package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	toml "github.com/pelletier/go-toml/v2"

	myweblog "github.com/faluke/go-myweblog"
)

// Config carries everything the binaries need to build a MyWebLog client.
// The library itself takes explicit options; this layer exists for cmd/boka
// and cmd/mwl.
type Config struct {
	Username  string        `env:"MYWEBLOG_USERNAME"`
	Password  string        `env:"MYWEBLOG_PASSWORD"`
	AppSecret string        `env:"MYWEBLOG_APP_SECRET"`
	AppToken  string        `env:"MYWEBLOG_APPTOKEN"`
	BaseURL   string        `env:"MYWEBLOG_BASE_URL"`
	Language  string        `env:"MYWEBLOG_LANGUAGE"`
	Timeout   time.Duration `env:"MYWEBLOG_TIMEOUT"`

	// PollSeconds is the booking manager's refresh cadence.
	PollSeconds int `env:"BOKA_POLL_SECONDS"`
}

const defaultConfigPath = "~/.config/boka/config.toml"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the TOML config file, then applies environment overrides on
// top. A missing file is not an error; the environment alone can carry a
// full configuration.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	raw, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Fall through to the environment.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var file struct {
			Username    string `toml:"username"`
			Password    string `toml:"password"`
			AppSecret   string `toml:"app_secret"`
			AppToken    string `toml:"app_token"`
			BaseURL     string `toml:"base_url"`
			Language    string `toml:"language"`
			Timeout     string `toml:"timeout"`
			PollSeconds int    `toml:"poll_seconds"`
		}
		if err := toml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.Username = file.Username
		cfg.Password = file.Password
		cfg.AppSecret = file.AppSecret
		cfg.AppToken = file.AppToken
		cfg.BaseURL = file.BaseURL
		cfg.Language = file.Language
		cfg.PollSeconds = file.PollSeconds
		if strings.TrimSpace(file.Timeout) != "" {
			d, err := time.ParseDuration(strings.TrimSpace(file.Timeout))
			if err != nil {
				return Config{}, fmt.Errorf("parse config: timeout: %w", err)
			}
			cfg.Timeout = d
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.AppSecret = strings.TrimSpace(cfg.AppSecret)
	cfg.AppToken = strings.TrimSpace(cfg.AppToken)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Language = strings.TrimSpace(cfg.Language)
	return cfg, nil
}

// Validate reports whether the config can authenticate: credentials plus
// either an app secret or a pre-obtained token.
func (c Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is not set (MYWEBLOG_USERNAME)")
	}
	if c.Password == "" {
		return fmt.Errorf("password is not set (MYWEBLOG_PASSWORD)")
	}
	if c.AppSecret == "" && c.AppToken == "" {
		return fmt.Errorf("neither app secret nor app token is set (MYWEBLOG_APP_SECRET / MYWEBLOG_APPTOKEN)")
	}
	return nil
}

// ClientOptions translates the config into client options.
func (c Config) ClientOptions() []myweblog.Option {
	var opts []myweblog.Option
	if c.BaseURL != "" {
		opts = append(opts, myweblog.WithBaseURL(c.BaseURL))
	}
	if c.AppSecret != "" {
		opts = append(opts, myweblog.WithAppSecret(c.AppSecret))
	}
	if c.AppToken != "" {
		opts = append(opts, myweblog.WithAppToken(c.AppToken))
	}
	if c.Language != "" {
		opts = append(opts, myweblog.WithLanguage(c.Language))
	}
	if c.Timeout > 0 {
		opts = append(opts, myweblog.WithTimeout(c.Timeout))
	}
	return opts
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
