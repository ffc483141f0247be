package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the leveled logger shared by every vibe component. An
// empty level defaults to warn.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: lvl == log.DebugLevel,
		Prefix:          "vibe",
	}), nil
}
