// Package config loads countrycat settings from defaults, a YAML file,
// COUNTRYCAT_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"countrycat/internal/source"
)

const (
	// EnvPrefix is stripped from environment variables before mapping them to keys.
	EnvPrefix = "COUNTRYCAT_"
	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = "countrycat.yaml"
	// DefaultLogFileName is placed under the user cache directory.
	DefaultLogFileName = "countrycat.log"
)

// LogConfig controls where and how logs are written.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text, json or pretty
	File   string `koanf:"file"`
}

// Config holds all countrycat settings.
type Config struct {
	Endpoint string    `koanf:"endpoint"`
	Log      LogConfig `koanf:"log"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

// DefaultLogFile returns the log path used when log.file is unset.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return DefaultLogFileName
	}
	return filepath.Join(dir, "countrycat", DefaultLogFileName)
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"endpoint":   source.DefaultEndpoint,
		"log.level":  "info",
		"log.format": "text",
		"log.file":   DefaultLogFile(),
	}
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags the user explicitly set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := cfgFile
	if used == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			used = DefaultConfigFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// COUNTRYCAT_LOG_LEVEL -> log.level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.FileUsed = used
	return &cfg, nil
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"endpoint":   "endpoint",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

// RegisterFlags adds the config-backed flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("endpoint", "", "country list URL (default "+source.DefaultEndpoint+")")
	fs.String("log-level", "", "log level (debug|info|warn|error)")
	fs.String("log-format", "", "log format (text|json|pretty)")
	fs.String("log-file", "", "log file path (default under the user cache dir)")
}
