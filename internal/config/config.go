package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys
const (
	KeyEngineBinary      = "engine.binary"
	KeyEngineAutoInstall = "engine.auto_install"
	KeyDefaultDir        = "download.default_dir"
	KeyLanguage          = "ui.language"
	KeyLogLevel          = "logging.level"
	KeyLogFormat         = "logging.format"
	KeyLogOutput         = "logging.output_path"
)

// Flag names bound onto config keys when present
const (
	FlagLogLevel = "log-level"
	FlagYTDLP    = "ytdlp"
)

// Default values
const (
	DefaultLanguage    = "system"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultLogOutput   = "stderr"
	DefaultConfigName  = "config"
	DefaultConfigDir   = "$HOME/.ytdownloader"
	EnvPrefix          = "YTDOWNLOADER"
	DefaultAutoInstall = false
)

// Supported option values
var (
	Languages  = []string{"system", "en", "ru", "pt"}
	LogFormats = []string{"console", "json"}
	LogLevels  = []string{"debug", "info", "warn", "error"}
)

// Config represents the application configuration. It is read-only: nothing
// the user does in the UI is written back.
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"`
	Download DownloadConfig `mapstructure:"download"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// EngineConfig controls how the yt-dlp executable is located
type EngineConfig struct {
	Binary      string `mapstructure:"binary"`       // empty: PATH / go-ytdlp cache
	AutoInstall bool   `mapstructure:"auto_install"` // download yt-dlp when missing
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	DefaultDir string `mapstructure:"default_dir"` // prefills the destination field
}

// UIConfig contains presentation settings
type UIConfig struct {
	Language string `mapstructure:"language"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			AutoInstall: DefaultAutoInstall,
		},
		UI: UIConfig{
			Language: DefaultLanguage,
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			OutputPath: DefaultLogOutput,
		},
	}
}

// Load reads configuration from configPath (or the default search path),
// the environment (YTDOWNLOADER_*), and the given flags, in increasing
// precedence. A missing config file is not an error.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	config := Default()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, config)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(expandPath(DefaultConfigDir))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Download.DefaultDir = expandPath(config.Download.DefaultDir)
	config.Engine.Binary = expandPath(config.Engine.Binary)
	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults registers every key so env variables are picked up on Unmarshal
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault(KeyEngineBinary, c.Engine.Binary)
	v.SetDefault(KeyEngineAutoInstall, c.Engine.AutoInstall)
	v.SetDefault(KeyDefaultDir, c.Download.DefaultDir)
	v.SetDefault(KeyLanguage, c.UI.Language)
	v.SetDefault(KeyLogLevel, c.Logging.Level)
	v.SetDefault(KeyLogFormat, c.Logging.Format)
	v.SetDefault(KeyLogOutput, c.Logging.OutputPath)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		FlagLogLevel: KeyLogLevel,
		FlagYTDLP:    KeyEngineBinary,
	}
	for flag, key := range bindings {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Validate checks option values
func Validate(c *Config) error {
	if !contains(Languages, c.UI.Language) {
		return fmt.Errorf("unsupported language %q", c.UI.Language)
	}
	if !contains(LogLevels, c.Logging.Level) {
		return fmt.Errorf("unsupported log level %q", c.Logging.Level)
	}
	if !contains(LogFormats, c.Logging.Format) {
		return fmt.Errorf("unsupported log format %q", c.Logging.Format)
	}
	if c.Logging.OutputPath == "" {
		return fmt.Errorf("logging output path not configured")
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}
	path = os.ExpandEnv(path)

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
