package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validator validates configuration values.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{Field: field, Message: message})
}

// Validate validates the entire configuration. The error, if any, is a
// ValidationErrors listing every problem.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = nil

	if cfg.Eval.MaxDepth < 0 {
		v.addError("eval.max_depth", "must not be negative (0 disables the limit)")
	}

	if cfg.REPL.Format == "" {
		v.addError("repl.format", "must not be empty")
	} else if !strings.Contains(cfg.REPL.Format, "%") {
		v.addError("repl.format", fmt.Sprintf("%q has no formatting verb", cfg.REPL.Format))
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		v.addError("logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		v.addError("logging.format", fmt.Sprintf("unknown format %q", cfg.Logging.Format))
	}
	switch cfg.Logging.Output {
	case "stderr", "none":
	case "file", "both":
		if cfg.Logging.FilePath == "" {
			v.addError("logging.file_path", "required when output is "+cfg.Logging.Output)
		}
	default:
		v.addError("logging.output", fmt.Sprintf("unknown output %q", cfg.Logging.Output))
	}

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}
