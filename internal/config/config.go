// Package config loads the CLI configuration from daycraft.yaml, .env and
// DAYCRAFT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. DAYCRAFT_DATA_DIR.
const EnvPrefix = "DAYCRAFT"

// Config holds all configuration of the CLI.
type Config struct {
	DataDir  string      `mapstructure:"data_dir" yaml:"data_dir"`
	Adapter  string      `mapstructure:"adapter" yaml:"adapter" validate:"oneof=fs badger memory"`
	ReadOnly bool        `mapstructure:"read_only" yaml:"read_only"`
	Log      LogConfig   `mapstructure:"log" yaml:"log"`
	Auth     AuthConfig  `mapstructure:"auth" yaml:"auth"`
	Watch    WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// AuthConfig holds the delays of the mock authenticator.
type AuthConfig struct {
	LoginDelay    time.Duration `mapstructure:"login_delay" yaml:"login_delay" validate:"gte=0"`
	ProviderDelay time.Duration `mapstructure:"provider_delay" yaml:"provider_delay" validate:"gte=0"`
}

// WatchConfig holds change watching configuration.
type WatchConfig struct {
	Buffer int `mapstructure:"buffer" yaml:"buffer" validate:"gte=0"`
}

// Options locate the configuration sources. Zero values use the defaults.
type Options struct {
	File    string   // explicit config file; skips the search
	Dirs    []string // directories searched for daycraft.yaml
	EnvFile string   // dotenv file, default ".env"
}

// Load reads configuration. Missing files are not an error; an explicit File
// that cannot be read is.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env file if it exists
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("daycraft")
		v.SetConfigType("yaml")
		for _, dir := range searchDirs(opts.Dirs) {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no source sets anything.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".")
	v.SetDefault("adapter", "fs")
	v.SetDefault("read_only", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("auth.login_delay", "500ms")
	v.SetDefault("auth.provider_delay", "800ms")

	v.SetDefault("watch.buffer", 100)
}

func searchDirs(dirs []string) []string {
	if len(dirs) > 0 {
		return dirs
	}
	out := []string{"."}
	if xdg, err := os.UserConfigDir(); err == nil {
		out = append(out, filepath.Join(xdg, "daycraft"))
	}
	return out
}
