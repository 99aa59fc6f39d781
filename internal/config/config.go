package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/indexingco/indexingco-cli/internal/api"
)

const (
	DefaultRefreshInterval = 5
	DefaultTheme           = "dark"
	DefaultLogLevel        = "info"

	envPrefix = "INDEXINGCO"

	// LegacyAPIKeyEnv is accepted in addition to INDEXINGCO_API_KEY.
	LegacyAPIKeyEnv = "API_KEY_INDEXINGCO"
)

// Themes and LogLevels list accepted values in display order.
var (
	Themes    = []string{"dark", "light", "mono"}
	LogLevels = []string{"info", "debug"}
)

var ErrMissingAPIKey = errors.New("missing API key: set api_key in the config file, INDEXINGCO_API_KEY, or pass --api-key")

type Config struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	RefreshInterval int           `mapstructure:"refresh_interval"`
	Theme           string        `mapstructure:"theme"`
	LogLevel        string        `mapstructure:"log_level"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		BaseURL:         api.DefaultBaseURL,
		RefreshInterval: DefaultRefreshInterval,
		Theme:           DefaultTheme,
		LogLevel:        DefaultLogLevel,
		Timeout:         api.DefaultTimeout,
	}
}

// Binder attaches extra sources to the viper instance before decoding,
// typically cobra flags through v.BindPFlag.
type Binder func(v *viper.Viper) error

func Load(path string, binders ...Binder) (*Config, error) {
	cfg, _, err := LoadWithViper(path, binders...)
	return cfg, err
}

// LoadWithViper reads defaults, the optional config file at path, the
// environment and the binders, in increasing precedence. A missing file is
// not an error.
func LoadWithViper(path string, binders ...Binder) (*Config, *viper.Viper, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("refresh_interval", def.RefreshInterval)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("timeout", def.Timeout)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if err := v.BindEnv("api_key", envPrefix+"_API_KEY", LegacyAPIKeyEnv); err != nil {
		return nil, nil, fmt.Errorf("failed to bind api key environment: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !isNotExist(err) {
				return nil, nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for _, bind := range binders {
		if err := bind(v); err != nil {
			return nil, nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return &cfg, v, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Config) normalize() {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.BaseURL == "" {
		c.BaseURL = api.DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = api.DefaultTimeout
	}
}

// WatchConfig re-decodes the file on every change and hands the result to
// onConfigChange. Invalid edits are logged and skipped.
func WatchConfig(v *viper.Viper, logger *slog.Logger, onConfigChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		var newConfig Config
		if err := v.Unmarshal(&newConfig); err != nil {
			logger.Warn("config reload failed", "file", e.Name, "error", err)
			return
		}
		newConfig.normalize()
		if err := newConfig.validateSettings(); err != nil {
			logger.Warn("config reload rejected", "file", e.Name, "error", err)
			return
		}
		logger.Info("config reloaded", "file", e.Name, "op", e.Op.String())
		onConfigChange(&newConfig)
	})
	v.WatchConfig()
}

const yamlHeader = `# indexingco configuration
#
# Keys:
# - api_key: key sent as X-API-KEY (INDEXINGCO_API_KEY overrides it)
# - base_url: API root, default https://app.indexing.co/dw
# - refresh_interval: dashboard refresh interval in seconds (>= 1)
# - theme: dark, light or mono
# - log_level: info or debug
# - timeout: HTTP timeout, e.g. 30s
#
# Run 'indexingco --help' for more information

`

// Save writes the config as TOML when path ends in .toml, YAML otherwise.
func (c *Config) Save(path string) error {
	var content []byte

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err := c.MarshalTOML()
		if err != nil {
			return err
		}
		content = data
	default:
		data, err := c.MarshalYAML()
		if err != nil {
			return err
		}
		content = append([]byte(yamlHeader), data...)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	// the file holds the API key
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) MarshalYAML() ([]byte, error) {
	data, err := yaml.Marshal(c.fileView())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (c *Config) MarshalTOML() ([]byte, error) {
	data, err := toml.Marshal(c.fileView())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// fileConfig is the on-disk form; durations are written as strings.
type fileConfig struct {
	APIKey          string `yaml:"api_key,omitempty" toml:"api_key,omitempty"`
	BaseURL         string `yaml:"base_url" toml:"base_url"`
	RefreshInterval int    `yaml:"refresh_interval" toml:"refresh_interval"`
	Theme           string `yaml:"theme" toml:"theme"`
	LogLevel        string `yaml:"log_level" toml:"log_level"`
	Timeout         string `yaml:"timeout" toml:"timeout"`
}

func (c *Config) fileView() fileConfig {
	return fileConfig{
		APIKey:          c.APIKey,
		BaseURL:         c.BaseURL,
		RefreshInterval: c.RefreshInterval,
		Theme:           c.Theme,
		LogLevel:        c.LogLevel,
		Timeout:         c.Timeout.String(),
	}
}

// Masked returns a copy safe to print.
func (c *Config) Masked() *Config {
	out := *c
	out.APIKey = MaskAPIKey(c.APIKey)
	return &out
}

// Validate checks everything the CLI needs, including the API key.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return c.validateSettings()
}

func (c *Config) validateSettings() error {
	if c.RefreshInterval < 1 {
		return fmt.Errorf("refresh_interval must be >= 1, got %d", c.RefreshInterval)
	}
	if _, err := ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// ParseTheme accepts dark, light or mono, case-insensitively.
func ParseTheme(value string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, name := range Themes {
		if normalized == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("unsupported theme '%s'. Use dark, light, or mono", value)
}

// ParseLogLevel accepts info or debug, case-insensitively.
func ParseLogLevel(value string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, level := range LogLevels {
		if normalized == level {
			return level, nil
		}
	}
	return "", fmt.Errorf("unsupported log level '%s'. Use info or debug", value)
}

// ParseRefreshInterval floors the interval at 1; zero or negative input
// yields the default.
func ParseRefreshInterval(n int) int {
	if n <= 0 {
		return DefaultRefreshInterval
	}
	return max(1, n)
}

// MaskAPIKey renders a key for display: "<missing>" when empty, all
// asterisks up to 6 characters, otherwise the first 4 and last 2.
func MaskAPIKey(key string) string {
	if key == "" {
		return "<missing>"
	}
	runes := []rune(key)
	if len(runes) <= 6 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:4]) + "…" + string(runes[len(runes)-2:])
}
