package types

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds the resolved settings for a single vibe invocation.
type Config struct {
	DBPath          string `json:"db_path" yaml:"db_path"`
	ProjectsDir     string `json:"projects_dir" yaml:"projects_dir"`
	TemplatesDir    string `json:"templates_dir,omitempty" yaml:"templates_dir,omitempty"`
	DefaultTemplate string `json:"default_template" yaml:"default_template"`
	LogLevel        string `json:"log_level" yaml:"log_level"`
}

// Log levels accepted in Config.LogLevel.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// DefaultTemplateName is used when neither a flag nor config selects one.
const DefaultTemplateName = "default"

// Config validation errors.
var (
	ErrDBPathEmpty     = errors.New("database path must not be empty")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if err := validation.Validate(c.DBPath, validation.Required); err != nil {
		return ErrDBPathEmpty
	}
	levels := validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)
	if err := validation.Validate(c.LogLevel, levels); err != nil {
		return fmt.Errorf("%w %q", ErrLogLevelUnknown, c.LogLevel)
	}
	return nil
}
