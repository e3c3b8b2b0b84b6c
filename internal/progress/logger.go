package progress

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// ErrorLogName is the name of the per-run error log kept in the target directory.
const ErrorLogName = "errors.log"

// ErrorLogger appends one JSON line per failed file.
type ErrorLogger struct {
	mu      sync.Mutex
	logFile string
	count   int
	file    *os.File
	log     zerolog.Logger
}

// NewErrorLogger creates a new error logger. An empty logFile counts errors
// without writing them anywhere.
func NewErrorLogger(logFile string) (*ErrorLogger, error) {
	logger := &ErrorLogger{
		logFile: logFile,
		log:     zerolog.Nop(),
	}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, fmt.Errorf("could not create log directory: %w", err)
		}

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		logger.file = file
		logger.log = zerolog.New(file).With().Timestamp().Logger()
	}

	return logger, nil
}

// Log logs an error for a file.
func (l *ErrorLogger) Log(filePath string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	l.log.Error().Str("file", filePath).Err(err).Msg("redaction failed")
}

// Summary returns a summary of logged errors.
func (l *ErrorLogger) Summary() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == 0 {
		return "No errors"
	}
	if l.logFile == "" {
		return fmt.Sprintf("%d errors", l.count)
	}
	return fmt.Sprintf("%d errors logged to %s", l.count, l.logFile)
}

// ErrorCount returns the number of logged errors.
func (l *ErrorLogger) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Close closes the log file.
func (l *ErrorLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
