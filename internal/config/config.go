// Package config provides configuration data structures for fightsongs.
package config

import (
	"fmt"
	"time"

	"github.com/wexinc/fightsongs/internal/logging"
)

// Config represents the complete fightsongs configuration loaded from
// .fightsongs/config.yaml.
type Config struct {
	Data      DataConfig      `yaml:"data"      json:"data"      mapstructure:"data"`
	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard" mapstructure:"dashboard"`
	Server    ServerConfig    `yaml:"server"    json:"server"    mapstructure:"server"`
	Log       LogConfig       `yaml:"log"       json:"log"       mapstructure:"log"`
}

// DataConfig configures the source CSV.
type DataConfig struct {
	// Path is the fight-songs CSV (default: fight-songs.csv).
	Path string `yaml:"path" json:"path" mapstructure:"path"`
	// Watch reloads the dataset when the file changes (default: true).
	Watch bool `yaml:"watch" json:"watch" mapstructure:"watch"`
	// Debounce is how long file changes must settle before a reload (default: 500ms).
	Debounce time.Duration `yaml:"debounce" json:"debounce" mapstructure:"debounce"`
}

// Variant is the authorship chart shown first.
type Variant string

const (
	// VariantStudent compares student-written and other songs.
	VariantStudent Variant = "student"
	// VariantContest compares contest-selected and other songs.
	VariantContest Variant = "contest"
)

// DashboardConfig configures views and selection defaults.
type DashboardConfig struct {
	// TopK is the number of conferences offered (default: 5).
	TopK int `yaml:"top_k" json:"top_k" mapstructure:"top_k"`
	// DefaultConferences is how many of the top conferences start selected (default: 2).
	DefaultConferences int `yaml:"default_conferences" json:"default_conferences" mapstructure:"default_conferences"`
	// MinRadarDimensions is the fewest dimensions a radar chart accepts (default: 3).
	MinRadarDimensions int `yaml:"min_radar_dimensions" json:"min_radar_dimensions" mapstructure:"min_radar_dimensions"`
	// DecadeMin, DecadeMax and DecadeStep bound the minimum-decade slider
	// (default: 1890, 1960, 10).
	DecadeMin  int `yaml:"decade_min" json:"decade_min" mapstructure:"decade_min"`
	DecadeMax  int `yaml:"decade_max" json:"decade_max" mapstructure:"decade_max"`
	DecadeStep int `yaml:"decade_step" json:"decade_step" mapstructure:"decade_step"`
	// Variant is the initial authorship chart (default: student).
	Variant Variant `yaml:"variant" json:"variant" mapstructure:"variant"`
}

// ServerConfig configures the read-only JSON server.
type ServerConfig struct {
	// Addr is the listen address (default: 127.0.0.1:8538).
	Addr string `yaml:"addr" json:"addr" mapstructure:"addr"`
	// ReadTimeout bounds reading a request including headers (default: 10s).
	ReadTimeout time.Duration `yaml:"read_timeout" json:"read_timeout" mapstructure:"read_timeout"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	// Level is debug, info, warn or error (default: info).
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	// Dir is where log files are written (default: .fightsongs/logs).
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`
	// JSON switches to JSON records (default: false).
	JSON bool `yaml:"json" json:"json" mapstructure:"json"`
	// MaxFiles is how many log files to keep (default: 10).
	MaxFiles int `yaml:"max_files" json:"max_files" mapstructure:"max_files"`
	// MaxAge removes log files older than this (default: 168h).
	MaxAge time.Duration `yaml:"max_age" json:"max_age" mapstructure:"max_age"`
}

// Default values.
const (
	DefaultDataPath           = "fight-songs.csv"
	DefaultDebounce           = 500 * time.Millisecond
	DefaultTopK               = 5
	DefaultConferences        = 2
	DefaultMinRadarDimensions = 3
	DefaultDecadeMin          = 1890
	DefaultDecadeMax          = 1960
	DefaultDecadeStep         = 10
	DefaultServerAddr         = "127.0.0.1:8538"
	DefaultReadTimeout        = 10 * time.Second
	DefaultLogLevel           = "info"
	DefaultLogDir             = ".fightsongs/logs"
	DefaultMaxLogFiles        = 10
	DefaultMaxLogAge          = 7 * 24 * time.Hour
)

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:     DefaultDataPath,
			Watch:    true,
			Debounce: DefaultDebounce,
		},
		Dashboard: DashboardConfig{
			TopK:               DefaultTopK,
			DefaultConferences: DefaultConferences,
			MinRadarDimensions: DefaultMinRadarDimensions,
			DecadeMin:          DefaultDecadeMin,
			DecadeMax:          DefaultDecadeMax,
			DecadeStep:         DefaultDecadeStep,
			Variant:            VariantStudent,
		},
		Server: ServerConfig{
			Addr:        DefaultServerAddr,
			ReadTimeout: DefaultReadTimeout,
		},
		Log: LogConfig{
			Level:    DefaultLogLevel,
			Dir:      DefaultLogDir,
			JSON:     false,
			MaxFiles: DefaultMaxLogFiles,
			MaxAge:   DefaultMaxLogAge,
		},
	}
}

// ApplyDefaults applies default values to any unset fields.
// This is used after loading config from file to fill in missing values.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.Data.Path == "" {
		c.Data.Path = defaults.Data.Path
	}
	if c.Data.Debounce == 0 {
		c.Data.Debounce = defaults.Data.Debounce
	}
	// Note: Watch defaults to true but an explicit false can't be told apart
	// from unset here. The loader handles this by decoding onto NewConfig.

	d := &c.Dashboard
	if d.TopK == 0 {
		d.TopK = defaults.Dashboard.TopK
	}
	if d.DefaultConferences == 0 {
		d.DefaultConferences = defaults.Dashboard.DefaultConferences
	}
	if d.MinRadarDimensions == 0 {
		d.MinRadarDimensions = defaults.Dashboard.MinRadarDimensions
	}
	if d.DecadeMin == 0 {
		d.DecadeMin = defaults.Dashboard.DecadeMin
	}
	if d.DecadeMax == 0 {
		d.DecadeMax = defaults.Dashboard.DecadeMax
	}
	if d.DecadeStep == 0 {
		d.DecadeStep = defaults.Dashboard.DecadeStep
	}
	if d.Variant == "" {
		d.Variant = defaults.Dashboard.Variant
	}

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Dir == "" {
		c.Log.Dir = defaults.Log.Dir
	}
	if c.Log.MaxFiles == 0 {
		c.Log.MaxFiles = defaults.Log.MaxFiles
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = defaults.Log.MaxAge
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Data.Debounce < 0 {
		errs = append(errs, &ValidationError{Field: "data.debounce", Message: "must be non-negative"})
	}

	d := c.Dashboard
	if d.TopK < 1 {
		errs = append(errs, &ValidationError{Field: "dashboard.top_k", Message: "must be at least 1"})
	}
	if d.DefaultConferences < 0 {
		errs = append(errs, &ValidationError{Field: "dashboard.default_conferences", Message: "must be non-negative"})
	}
	if d.TopK >= 1 && d.DefaultConferences > d.TopK {
		errs = append(errs, &ValidationError{
			Field:   "dashboard.default_conferences",
			Message: "should not exceed dashboard.top_k",
		})
	}
	if d.MinRadarDimensions < 3 {
		errs = append(errs, &ValidationError{Field: "dashboard.min_radar_dimensions", Message: "must be at least 3"})
	}
	if d.DecadeStep <= 0 || d.DecadeStep%10 != 0 {
		errs = append(errs, &ValidationError{Field: "dashboard.decade_step", Message: "must be a positive multiple of 10"})
	}
	if d.DecadeMin%10 != 0 {
		errs = append(errs, &ValidationError{Field: "dashboard.decade_min", Message: "must be a decade (multiple of 10)"})
	}
	if d.DecadeMax < d.DecadeMin {
		errs = append(errs, &ValidationError{
			Field:   "dashboard.decade_max",
			Message: fmt.Sprintf("must not be before dashboard.decade_min (%d)", d.DecadeMin),
		})
	}
	if d.Variant != "" {
		switch d.Variant {
		case VariantStudent, VariantContest:
			// valid
		default:
			errs = append(errs, &ValidationError{
				Field:   "dashboard.variant",
				Message: "must be 'student' or 'contest'",
			})
		}
	}

	if c.Server.ReadTimeout < 0 {
		errs = append(errs, &ValidationError{Field: "server.read_timeout", Message: "must be non-negative"})
	}

	if c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, &ValidationError{
				Field:   "log.level",
				Message: "must be 'debug', 'info', 'warn', or 'error'",
			})
		}
	}
	if c.Log.MaxFiles < 0 {
		errs = append(errs, &ValidationError{Field: "log.max_files", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoggingConfig converts the log section into a logging.Config.
func (c *Config) LoggingConfig(verbose bool) *logging.Config {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	if verbose {
		level = logging.LevelDebug
	}
	return &logging.Config{
		Level:       level,
		LogDir:      c.Log.Dir,
		MaxLogFiles: c.Log.MaxFiles,
		MaxLogAge:   c.Log.MaxAge,
		JSONFormat:  c.Log.JSON,
	}
}
