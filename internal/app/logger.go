package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"goports/internal/config"
)

// NewLogger builds the logger described by cfg. Output goes to cfg.LogFile
// when set, otherwise to fallback. The returned close function releases the
// log file, if one was opened.
func NewLogger(cfg config.Config, fallback io.Writer) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	out := fallback
	closeFn := func() error { return nil }
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "goports",
	})
	return logger, closeFn, nil
}
