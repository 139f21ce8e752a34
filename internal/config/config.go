// Package config loads and stores CLI configuration. Settings come from, in
// increasing precedence: defaults, config.json in the XDG config dir,
// SQLCONSOLE_* environment variables, and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "sqlconsole/cli/internal/errors"
	"sqlconsole/cli/internal/xdg"
)

// EnvPrefix prefixes environment overrides, e.g. SQLCONSOLE_ENDPOINT.
const EnvPrefix = "SQLCONSOLE"

// FileName is the config file name inside the config dir.
const FileName = "config.json"

// DefaultMaxBody is the largest response body accepted, in bytes.
const DefaultMaxBody int64 = 16 << 20

// DefaultEndpoint is the SQL endpoint the console talks to out of the box.
const DefaultEndpoint = "https://comp4537-lab5-iota.vercel.app/api/v1/sql/"

const (
	KeyEndpoint    = "endpoint"
	KeyTimeout     = "timeout"
	KeyLogLevel    = "log_level"
	KeyLanguage    = "language"
	KeyOutput      = "output"
	KeySampleQuery = "sample_query"
	KeyLangDir     = "lang_dir"
	KeyMaxBody     = "max_body"
)

// Keys lists every settable key in display order.
var Keys = []string{KeyEndpoint, KeyTimeout, KeyLogLevel, KeyLanguage, KeyOutput, KeySampleQuery, KeyLangDir, KeyMaxBody}

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config holds CLI settings. Nothing in it is secret.
type Config struct {
	Endpoint    string        `mapstructure:"endpoint"`
	Timeout     time.Duration `mapstructure:"timeout"`
	LogLevel    string        `mapstructure:"log_level"`
	Language    string        `mapstructure:"language"`
	Output      string        `mapstructure:"output"`
	SampleQuery string        `mapstructure:"sample_query"`
	LangDir     string        `mapstructure:"lang_dir"`
	MaxBody     int64         `mapstructure:"max_body"`
}

// Field is one key/value pair as shown by `config show`.
type Field struct {
	Key   string
	Value string
}

// Fields returns the settings in Keys order.
func (c Config) Fields() []Field {
	return []Field{
		{Key: KeyEndpoint, Value: c.Endpoint},
		{Key: KeyTimeout, Value: c.Timeout.String()},
		{Key: KeyLogLevel, Value: c.LogLevel},
		{Key: KeyLanguage, Value: c.Language},
		{Key: KeyOutput, Value: c.Output},
		{Key: KeySampleQuery, Value: c.SampleQuery},
		{Key: KeyLangDir, Value: c.LangDir},
		{Key: KeyMaxBody, Value: strconv.FormatInt(c.MaxBody, 10)},
	}
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.New(apperrors.Config, fmt.Sprintf("endpoint %q is not an http(s) URL", c.Endpoint))
	}
	if c.Timeout <= 0 {
		return apperrors.New(apperrors.Config, fmt.Sprintf("timeout must be positive, got %s", c.Timeout))
	}
	if c.MaxBody <= 0 {
		return apperrors.New(apperrors.Config, fmt.Sprintf("max_body must be a positive byte count, got %d", c.MaxBody))
	}
	if c.Output != OutputTable && c.Output != OutputJSON {
		return apperrors.New(apperrors.Config, fmt.Sprintf("output must be %q or %q, got %q", OutputTable, OutputJSON, c.Output))
	}
	return nil
}

// Path returns the config file path: override when set, otherwise
// config.json in the XDG config dir.
func Path(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := xdg.ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// FlagBindings maps config keys to the persistent flags that override them.
var FlagBindings = map[string]string{
	KeyEndpoint: "endpoint",
	KeyLogLevel: "log-level",
	KeyLanguage: "lang",
	KeyOutput:   "output",
}

// Load reads the configuration. A missing file yields the defaults. flags may
// be nil; when set, changed flags named in FlagBindings take precedence.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	p, err := Path(path)
	if err != nil {
		return Config{}, err
	}

	v := newViper(p)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readIfPresent(v); err != nil {
		return Config{}, err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, apperrors.Wrap(apperrors.Config, "unmarshal config", err)
	}
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))

	return c, nil
}

// Set stores value under key in the config file at path, keeping the other
// stored settings. Environment and flags play no part.
func Set(path, key, value string) error {
	if !slices.Contains(Keys, key) {
		return apperrors.New(apperrors.Config, fmt.Sprintf("unknown key %q (known: %s)", key, strings.Join(Keys, ", ")))
	}

	p, err := Path(path)
	if err != nil {
		return err
	}

	v := newViper(p)
	if err := readIfPresent(v); err != nil {
		return err
	}

	switch key {
	case KeyTimeout:
		if _, err := time.ParseDuration(value); err != nil {
			return apperrors.Wrap(apperrors.Config, fmt.Sprintf("invalid timeout %q", value), err)
		}
		v.Set(key, value)
	case KeyMaxBody:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return apperrors.Wrap(apperrors.Config, fmt.Sprintf("invalid max_body %q", value), err)
		}
		v.Set(key, n)
	default:
		v.Set(key, value)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return apperrors.Wrap(apperrors.Config, "unmarshal config", err)
	}
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if err := c.Validate(); err != nil {
		return err
	}

	if err := ensureDir(path, p); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	if err := v.WriteConfigAs(p); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(p, 0o600)
}

func newViper(path string) *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyEndpoint, DefaultEndpoint)
	v.SetDefault(KeyTimeout, "30s")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLanguage, "en")
	v.SetDefault(KeyOutput, OutputTable)
	v.SetDefault(KeySampleQuery, "")
	v.SetDefault(KeyLangDir, "")
	v.SetDefault(KeyMaxBody, DefaultMaxBody)

	v.SetConfigType("json")
	v.SetConfigFile(path)
	return v
}

// ensureDir creates the directory holding p. The default location goes
// through xdg so it gets the private config dir.
func ensureDir(override, p string) error {
	if override == "" {
		_, err := xdg.ConfigDir()
		return err
	}
	return os.MkdirAll(filepath.Dir(p), 0o700)
}

func readIfPresent(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return apperrors.Wrap(apperrors.Config, "read config", err)
}
