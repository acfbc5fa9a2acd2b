// Package logging configures the application log file. The TUI owns the
// terminal while running, so all logs go to a file instead of stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Setup opens (or creates) the log file at path and points the default
// logger at it with the given level. The caller is responsible for
// closing the returned file on shutdown.
func Setup(path string, level string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	log.SetOutput(f)
	log.SetReportTimestamp(true)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	return f, nil
}
