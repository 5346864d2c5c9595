// Package config provides Viper-based configuration loading for the wordgrid server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GameConfig holds the parameters of every new game.
type GameConfig struct {
	// Side is the grid side length: 4, 5 or 6.
	Side int `mapstructure:"side"`
	// Vowels is the number of anchored vowels. Zero derives 2*Side-3.
	Vowels int `mapstructure:"vowels"`
	// MaxDuplicates is the soft cap on repeats of one letter: 2 or 3.
	MaxDuplicates int `mapstructure:"max_duplicates"`
	// MinWordLength is the shortest word accepted.
	MinWordLength int `mapstructure:"min_word_length"`
	// AllowRudeWords disables the blocklist check.
	AllowRudeWords bool `mapstructure:"allow_rude_words"`
	// DefaultSeed seeds new games started without a seed. Empty means a
	// timestamp is used.
	DefaultSeed string `mapstructure:"default_seed"`
}

// VowelCount returns Vowels, or 2*Side-3 when Vowels is zero.
//
// Postcondition: Returns a positive count for any valid Side.
func (g GameConfig) VowelCount() int {
	if g.Vowels == 0 {
		return 2*g.Side - 3
	}
	return g.Vowels
}

// DictionaryConfig locates the word lists. Each location is a file path or
// an http(s) URL; an empty location is skipped.
type DictionaryConfig struct {
	// Standard is the main dictionary.
	Standard string `mapstructure:"standard"`
	// Custom holds additions merged into the dictionary.
	Custom string `mapstructure:"custom"`
	// Blocklist holds words that are never accepted.
	Blocklist string `mapstructure:"blocklist"`
	// FetchTimeout bounds each HTTP request.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// FetchAttempts is the number of tries per HTTP source.
	FetchAttempts uint `mapstructure:"fetch_attempts"`
	// FetchDelay is the base backoff delay between HTTP tries.
	FetchDelay time.Duration `mapstructure:"fetch_delay"`
}

// TelnetConfig holds Telnet acceptor settings.
type TelnetConfig struct {
	// Enabled toggles the Telnet frontend.
	Enabled bool `mapstructure:"enabled"`
	// Host is the bind address for the Telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the Telnet listener. Zero picks a free port.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-read timeout for Telnet connections.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-write timeout for Telnet connections.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// HTTPConfig holds JSON API settings.
type HTTPConfig struct {
	// Enabled toggles the HTTP frontend.
	Enabled bool `mapstructure:"enabled"`
	// Host is the bind address.
	Host string `mapstructure:"host"`
	// Port is the TCP port.
	Port int `mapstructure:"port"`
	// RequestTimeout bounds each request handler.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Addr returns the "host:port" listen address.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Telnet     TelnetConfig     `mapstructure:"telnet"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDictionary(c.Dictionary); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTelnet(c.Telnet); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateHTTP(c.HTTP); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.Side < 4 || g.Side > 6 {
		errs = append(errs, fmt.Sprintf("game.side must be one of [4, 5, 6], got %d", g.Side))
	}
	if g.Vowels < 0 || g.Vowels > g.Side*g.Side {
		errs = append(errs, fmt.Sprintf("game.vowels must be 0 (derived) or 1-%d, got %d", g.Side*g.Side, g.Vowels))
	}
	if g.MaxDuplicates < 2 || g.MaxDuplicates > 3 {
		errs = append(errs, fmt.Sprintf("game.max_duplicates must be 2 or 3, got %d", g.MaxDuplicates))
	}
	if g.MinWordLength < 1 {
		errs = append(errs, fmt.Sprintf("game.min_word_length must be >= 1, got %d", g.MinWordLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDictionary(d DictionaryConfig) error {
	var errs []string
	if d.Standard == "" && d.Custom == "" {
		errs = append(errs, "dictionary.standard and dictionary.custom must not both be empty")
	}
	if d.FetchTimeout < 0 {
		errs = append(errs, "dictionary.fetch_timeout must not be negative")
	}
	if d.FetchDelay < 0 {
		errs = append(errs, "dictionary.fetch_delay must not be negative")
	}
	if d.FetchAttempts < 1 {
		errs = append(errs, fmt.Sprintf("dictionary.fetch_attempts must be >= 1, got %d", d.FetchAttempts))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTelnet(t TelnetConfig) error {
	var errs []string
	if t.Port < 0 || t.Port > 65535 {
		errs = append(errs, fmt.Sprintf("telnet.port must be 0-65535, got %d", t.Port))
	}
	if t.ReadTimeout < 0 {
		errs = append(errs, "telnet.read_timeout must not be negative")
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, "telnet.write_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateHTTP(h HTTPConfig) error {
	var errs []string
	if h.Port < 0 || h.Port > 65535 {
		errs = append(errs, fmt.Sprintf("http.port must be 0-65535, got %d", h.Port))
	}
	if h.RequestTimeout < 0 {
		errs = append(errs, "http.request_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Precondition: path must be empty or a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and WORDGRID_ environment
// overrides applied.
//
// Postcondition: Returns a non-nil Viper instance.
func NewViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with WORDGRID_ prefix
	v.SetEnvPrefix("WORDGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.side", 4)
	v.SetDefault("game.vowels", 0)
	v.SetDefault("game.max_duplicates", 2)
	v.SetDefault("game.min_word_length", 3)
	v.SetDefault("game.allow_rude_words", false)
	v.SetDefault("game.default_seed", "")

	v.SetDefault("dictionary.standard", "content/dictionary.txt")
	v.SetDefault("dictionary.custom", "content/custom_words.txt")
	v.SetDefault("dictionary.blocklist", "content/blocklist.txt")
	v.SetDefault("dictionary.fetch_timeout", "10s")
	v.SetDefault("dictionary.fetch_attempts", 3)
	v.SetDefault("dictionary.fetch_delay", "200ms")

	v.SetDefault("telnet.enabled", true)
	v.SetDefault("telnet.host", "0.0.0.0")
	v.SetDefault("telnet.port", 4000)
	v.SetDefault("telnet.read_timeout", "10m")
	v.SetDefault("telnet.write_timeout", "30s")

	v.SetDefault("http.enabled", true)
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.request_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
