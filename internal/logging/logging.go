package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const DefaultLevel = "info"

// New builds the process logger. Every service receives a child of it.
func New(w io.Writer, level string) (*log.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           parsed,
		Prefix:          "asnap",
		ReportTimestamp: true,
	})

	return logger, nil
}

// Discard returns a logger that drops everything, for tests and nil defaults.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard keeps services nil-safe.
func OrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
