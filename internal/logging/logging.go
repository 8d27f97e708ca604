// Package logging configures the shared logrus logger. The terminal belongs to
// the TUI, so log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	base      = newBase()
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	file      *os.File
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l
}

// NewLogger returns the entry for component, creating it on first use.
// Entries share one logger, so Setup applies to entries created before it.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}
	logger := base.WithField("component", component)
	loggers[component] = logger
	return logger
}

// Setup points the shared logger at path (created with parent directories)
// and sets its level. An empty path discards output. Unparseable levels fall
// back to info.
func Setup(path, level string) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	closeFile()
	if strings.TrimSpace(path) == "" {
		base.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		base.SetOutput(io.Discard)
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		base.SetOutput(io.Discard)
		return fmt.Errorf("open log file: %w", err)
	}
	file = f
	base.SetOutput(f)
	return nil
}

// Close releases the log file, if any.
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	closeFile()
	base.SetOutput(io.Discard)
}

// Level reports the current level of the shared logger.
func Level() logrus.Level {
	return base.GetLevel()
}

func closeFile() {
	if file != nil {
		_ = file.Close()
		file = nil
	}
}
