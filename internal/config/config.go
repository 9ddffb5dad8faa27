// Package config loads application settings from environment variables
// and an optional config file, and builds the shared logger.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds every tunable the application reads at startup.
type Config struct {
	// DataDir is the local store directory. Defaults to ~/.kanjou.
	DataDir string `mapstructure:"data_dir"`

	// RemoteURL selects the remote store: a libsql:// URL or a local
	// SQLite file path. Empty leaves the remote unset unless LocalMode
	// is also false, in which case the default embedded file is used.
	RemoteURL string `mapstructure:"remote_url"`

	// AuthToken authenticates libsql:// connections.
	AuthToken string `mapstructure:"auth_token"`

	// LocalMode disables the remote tier entirely.
	LocalMode bool `mapstructure:"local_mode"`

	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string `mapstructure:"log_file"`

	// DashboardPort is the websocket dashboard listen port.
	DashboardPort int `mapstructure:"dashboard_port"`

	// AnthropicAPIKey enables the counselor memo drafting feature.
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	// AnthropicModel is the model used for memo drafting.
	AnthropicModel string `mapstructure:"anthropic_model"`
}

// Load reads configuration from KANJOU_* environment variables and an
// optional kanjou.yaml in dir (or the data dir when dir is empty).
// A missing config file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("data_dir", filepath.Join(home, ".kanjou"))
	v.SetDefault("remote_url", "")
	v.SetDefault("auth_token", "")
	v.SetDefault("local_mode", false)
	v.SetDefault("log_file", "")
	v.SetDefault("dashboard_port", 8080)
	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("anthropic_model", "claude-sonnet-4-5")

	v.SetEnvPrefix("KANJOU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("kanjou")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	} else {
		v.AddConfigPath(v.GetString("data_dir"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// RemoteDSN returns the remote connection string, or "" when the app
// should run without a remote tier. The auth token is appended as a
// query parameter for libsql:// URLs.
func (c *Config) RemoteDSN() string {
	if c.LocalMode {
		return ""
	}
	url := c.RemoteURL
	if url == "" {
		url = filepath.Join(c.DataDir, "remote.db")
	}
	if strings.HasPrefix(url, "libsql://") && c.AuthToken != "" {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url = url + sep + "authToken=" + c.AuthToken
	}
	return url
}

// Logger builds the application logger. With LogFile set, output goes to
// a size-rotated file; otherwise stderr.
func (c *Config) Logger(prefix string) *log.Logger {
	if c.LogFile == "" {
		return log.New(os.Stderr, prefix, log.LstdFlags)
	}
	return log.New(&lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}, prefix, log.LstdFlags)
}
