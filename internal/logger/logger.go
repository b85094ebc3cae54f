// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a new configured logger instance writing to stdout
func NewLogger(logLevel, environment string) *logrus.Logger {
	return newLogger(os.Stdout, logLevel, environment)
}

func newLogger(out io.Writer, logLevel, environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	// Parse and set log level
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Use JSON formatter for structured logging in production
	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// RequestFields are the per-request values logged once a response is written.
type RequestFields struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
}

// RequestLogger returns the entry for a finished HTTP request
func RequestLogger(log logrus.FieldLogger, f RequestFields) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"component":   "http",
		"request_id":  f.RequestID,
		"method":      f.Method,
		"path":        f.Path,
		"status":      f.Status,
		"duration_ms": f.Duration.Milliseconds(),
	})
}

// LogRequest logs a finished request at a level chosen from its status code
func LogRequest(log logrus.FieldLogger, f RequestFields) {
	entry := RequestLogger(log, f)
	switch {
	case f.Status >= 500:
		entry.Error("Request failed")
	case f.Status >= 400:
		entry.Warn("Request rejected")
	default:
		entry.Info("Request completed")
	}
}
