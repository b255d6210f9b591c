package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the config file relative to
	// the working directory.
	DefaultConfigPath = ".fightsongs/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "FIGHTSONGS"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from path, applies defaults, merges
// environment variables, and validates the result.
//
// An empty path means DefaultConfigPath, and a missing default file is not
// an error: built-in defaults plus environment overrides are used. A path
// given explicitly must exist.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := NewConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, &LoadError{
				Path:    path,
				Message: "config file not found",
				Err:     err,
			}
		}
	} else {
		l.v.SetConfigFile(path)

		if err := l.v.ReadInConfig(); err != nil {
			return nil, &LoadError{
				Path:    path,
				Message: "failed to read config file",
				Err:     err,
			}
		}

		// Decode onto the defaults so keys absent from the file keep them.
		if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
			return nil, &LoadError{
				Path:    path,
				Message: "failed to parse config file",
				Err:     err,
			}
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "invalid environment override",
			Err:     err,
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .fightsongs/config.yaml in the
// specified directory. The file must exist.
func (l *Loader) LoadConfigFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultConfigPath)
	return l.LoadConfig(path)
}

// envOverride binds one environment variable to a config field.
type envOverride struct {
	key   string
	apply func(cfg *Config, v string) error
}

var envOverrides = []envOverride{
	{"DATA_PATH", func(c *Config, v string) error { c.Data.Path = v; return nil }},
	{"DATA_WATCH", func(c *Config, v string) error { c.Data.Watch = parseBool(v); return nil }},
	{"DATA_DEBOUNCE", func(c *Config, v string) error { return setDuration(&c.Data.Debounce, v) }},
	{"DASHBOARD_TOP_K", func(c *Config, v string) error { return setInt(&c.Dashboard.TopK, v) }},
	{"DASHBOARD_DEFAULT_CONFERENCES", func(c *Config, v string) error { return setInt(&c.Dashboard.DefaultConferences, v) }},
	{"DASHBOARD_MIN_RADAR_DIMENSIONS", func(c *Config, v string) error { return setInt(&c.Dashboard.MinRadarDimensions, v) }},
	{"DASHBOARD_DECADE_MIN", func(c *Config, v string) error { return setInt(&c.Dashboard.DecadeMin, v) }},
	{"DASHBOARD_DECADE_MAX", func(c *Config, v string) error { return setInt(&c.Dashboard.DecadeMax, v) }},
	{"DASHBOARD_DECADE_STEP", func(c *Config, v string) error { return setInt(&c.Dashboard.DecadeStep, v) }},
	{"DASHBOARD_VARIANT", func(c *Config, v string) error { c.Dashboard.Variant = Variant(strings.ToLower(v)); return nil }},
	{"SERVER_ADDR", func(c *Config, v string) error { c.Server.Addr = v; return nil }},
	{"SERVER_READ_TIMEOUT", func(c *Config, v string) error { return setDuration(&c.Server.ReadTimeout, v) }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"LOG_DIR", func(c *Config, v string) error { c.Log.Dir = v; return nil }},
	{"LOG_JSON", func(c *Config, v string) error { c.Log.JSON = parseBool(v); return nil }},
	{"LOG_MAX_FILES", func(c *Config, v string) error { return setInt(&c.Log.MaxFiles, v) }},
	{"LOG_MAX_AGE", func(c *Config, v string) error { return setDuration(&c.Log.MaxAge, v) }},
}

// applyEnvOverrides applies FIGHTSONGS_* environment variables to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	for _, o := range envOverrides {
		name := EnvPrefix + "_" + o.key
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if err := o.apply(cfg, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, v string) error {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// parseBool parses a string as a boolean value.
// Returns true for "true", "1", "yes" (case-insensitive).
// Returns false for anything else.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
// It composes the standard mapstructure hooks with our custom ones.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToVariantHookFunc(),
	)
}

// stringToVariantHookFunc lower-cases variant names while decoding.
func stringToVariantHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		if to == reflect.TypeOf(Variant("")) {
			return Variant(strings.ToLower(strings.TrimSpace(data.(string)))), nil
		}
		return data, nil
	}
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
// If path is empty, it uses DefaultConfigPath.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}

// LoadFromDir is a convenience function that loads configuration from a directory.
func LoadFromDir(dir string) (*Config, error) {
	return NewLoader().LoadConfigFromDir(dir)
}
