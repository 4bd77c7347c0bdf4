package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tabdash/internal/utils"
)

// Global configuration structure.
type Global struct {
	Addr          string `mapstructure:"addr" yaml:"addr"`
	SessionSecret string `mapstructure:"session_secret" yaml:"session_secret"`
	SessionTTLMin int    `mapstructure:"session_ttl_min" yaml:"session_ttl_min"`
	// 0 disables the upload limit
	MaxUploadMB int `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	PreviewRows   int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	HistogramBins int    `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	CSVDelimiter  string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"addr", "session_secret", "session_ttl_min", "max_upload_mb",
	"preview_rows", "histogram_bins", "csv_delimiter", "log_level", "log_format",
}

// Dir returns ~/.tabdash.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tabdash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tabdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABDASH")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8501")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl_min", 60)
	v.SetDefault("max_upload_mb", 0)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("histogram_bins", 30)
	v.SetDefault("csv_delimiter", ",")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config path must exist; the default location is optional.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set parses val and assigns it to key.
func (c *Global) Set(key, val string) error {
	switch key {
	case "addr":
		c.Addr = val
	case "session_secret":
		c.SessionSecret = val
	case "session_ttl_min":
		return setInt(&c.SessionTTLMin, key, val, 0)
	case "max_upload_mb":
		return setInt(&c.MaxUploadMB, key, val, 0)
	case "preview_rows":
		return setInt(&c.PreviewRows, key, val, 1)
	case "histogram_bins":
		return setInt(&c.HistogramBins, key, val, 1)
	case "csv_delimiter":
		if _, err := ParseDelimiter(val); err != nil {
			return err
		}
		c.CSVDelimiter = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the display value of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "addr":
		return c.Addr, nil
	case "session_secret":
		return c.SessionSecret, nil
	case "session_ttl_min":
		return strconv.Itoa(c.SessionTTLMin), nil
	case "max_upload_mb":
		return strconv.Itoa(c.MaxUploadMB), nil
	case "preview_rows":
		return strconv.Itoa(c.PreviewRows), nil
	case "histogram_bins":
		return strconv.Itoa(c.HistogramBins), nil
	case "csv_delimiter":
		return c.CSVDelimiter, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Global) Delimiter() (rune, error) {
	return ParseDelimiter(c.CSVDelimiter)
}

// ParseDelimiter accepts a single character or the names "tab", "comma",
// "semicolon" and "pipe". Empty means comma.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "comma":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid csv_delimiter: %q (use a single character)", s)
	}
	return r, nil
}

func setInt(dst *int, key, val string, min int) error {
	i, err := strconv.Atoi(val)
	if err != nil || i < min {
		return fmt.Errorf("invalid int for %s: %v", key, val)
	}
	*dst = i
	return nil
}
