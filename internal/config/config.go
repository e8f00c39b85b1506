// Package config loads settings for the calc command: evaluation limits,
// REPL presentation, and logging.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration of the calc command.
type Config struct {
	Eval    EvalConfig    `yaml:"eval"`
	REPL    REPLConfig    `yaml:"repl"`
	Logging LoggingConfig `yaml:"logging"`
}

// EvalConfig controls the evaluator.
type EvalConfig struct {
	MaxDepth        int  `yaml:"max_depth" env:"CALC_MAX_DEPTH"`
	LeftAssociative bool `yaml:"left_associative" env:"CALC_LEFT_ASSOC"`
}

// REPLConfig controls the interactive loop.
type REPLConfig struct {
	Prompt string `yaml:"prompt" env:"CALC_PROMPT"`
	// Format is a fmt verb applied to each result.
	Format string `yaml:"format" env:"CALC_FORMAT"`
	Color  bool   `yaml:"color" env:"CALC_COLOR"`
}

// LoggingConfig controls the diagnostic log. Results are never logged to
// stdout; the log goes to stderr, a rotated file, or both.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"CALC_LOG_LEVEL"`
	Format     string `yaml:"format" env:"CALC_LOG_FORMAT"`
	Output     string `yaml:"output" env:"CALC_LOG_OUTPUT"`
	FilePath   string `yaml:"file_path" env:"CALC_LOG_FILE"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Eval: EvalConfig{
			MaxDepth:        10000,
			LeftAssociative: false,
		},
		REPL: REPLConfig{
			Prompt: ">>> ",
			// Sixteen significant digits, DBL_DECIMAL_DIG-1.
			Format: "%.16g",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			Output:     "stderr",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Loader handles configuration loading from multiple sources.
type Loader struct {
	configPath string
	lookupEnv  func(string) (string, bool)
}

// NewLoader creates a new configuration loader reading the process
// environment.
func NewLoader() *Loader {
	return &Loader{lookupEnv: os.LookupEnv}
}

// WithConfigPath sets the path to the YAML configuration file.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnv replaces the environment lookup, mostly for tests.
func (l *Loader) WithEnv(lookup func(string) (string, bool)) *Loader {
	l.lookupEnv = lookup
	return l
}

// Load loads configuration with precedence defaults < YAML file <
// environment, then validates it. A config path that does not exist is not
// an error.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()
	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("loading config from file: %w", err)
		}
	}
	if err := l.applyEnv(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return ParseInto(cfg, data)
}

// applyEnv walks struct fields and sets those whose env tag names a set
// variable.
func (l *Loader) applyEnv(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		ft := t.Field(i)
		if field.Kind() == reflect.Struct {
			if err := l.applyEnv(field); err != nil {
				return err
			}
			continue
		}
		name := ft.Tag.Get("env")
		if name == "" {
			continue
		}
		val, ok := l.lookupEnv(name)
		if !ok || val == "" {
			continue
		}
		if err := setField(field, val); err != nil {
			return fmt.Errorf("setting %s from %s: %w", ft.Name, name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(int64(i))
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}

// ParseInto decodes YAML over cfg, keeping values the document omits.
func ParseInto(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// Serialize serializes the configuration to YAML bytes.
func (c *Config) Serialize() ([]byte, error) {
	return yaml.Marshal(c)
}

// LoadFromFile loads configuration from a YAML file path and the
// environment.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}
