// Package config loads taskdeck settings from taskdeck.yaml, TASKDECK_*
// environment variables and flag overrides, in that precedence order
// (lowest to highest).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	// Addr is the serve listen address, e.g. ":3001".
	Addr string

	// Dir is the data directory; empty means discover or create
	// .taskdeck relative to the working directory.
	Dir string

	// Server is a remote taskdeck base URL; when set, the TUI and CLI
	// talk HTTP instead of opening Dir.
	Server string

	// UserID selects whose app state (sorts, sequences, bookmarks) the
	// board loads.
	UserID string

	LogLevel string
}

func defaults(v *viper.Viper) {
	v.SetDefault("addr", ":3001")
	v.SetDefault("dir", "")
	v.SetDefault("server", "")
	v.SetDefault("user", "user-1")
	v.SetDefault("log_level", "info")
}

// Load reads taskdeck.yaml from the given path (or the working directory
// and $HOME/.config/taskdeck when empty) plus the environment.
func Load(file string) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("taskdeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "taskdeck"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Explicit getters rather than Unmarshal so AutomaticEnv values are
	// picked up for keys that only exist as defaults.
	return &Config{
		Addr:     v.GetString("addr"),
		Dir:      v.GetString("dir"),
		Server:   v.GetString("server"),
		UserID:   v.GetString("user"),
		LogLevel: v.GetString("log_level"),
	}, nil
}

// Remote reports whether the board should use the HTTP backend.
func (c *Config) Remote() bool { return c.Server != "" }

// Logger builds the process logger at the configured level.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
