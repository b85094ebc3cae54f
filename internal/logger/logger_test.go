package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	buf.Reset()
	log = newLogger(buf, "loud", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level 'loud'")
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "info", "production")
	require.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log.WithField("year", 2023).Info("hello")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, float64(2023), entry["year"])
}

func TestLogRequestLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
		msg    string
	}{
		{status: http.StatusOK, level: "info", msg: "Request completed"},
		{status: http.StatusNotFound, level: "warning", msg: "Request rejected"},
		{status: http.StatusInternalServerError, level: "error", msg: "Request failed"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			log, buf := setupTestLogger()

			LogRequest(log, RequestFields{
				RequestID: "req-1",
				Method:    http.MethodGet,
				Path:      "/api/v1/benchmarks",
				Status:    tt.status,
				Duration:  15 * time.Millisecond,
			})

			entry := parseLogOutput(buf)
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.msg, entry["msg"])
			assert.Equal(t, "http", entry["component"])
			assert.Equal(t, "req-1", entry["request_id"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, float64(15), entry["duration_ms"])
		})
	}
}

func TestAuditLoggerBenchmarksSubmitted(t *testing.T) {
	log, buf := setupTestLogger()
	audit := NewAuditLogger(log)

	audit.LogBenchmarksSubmitted("req-2", 2, []int{1000, 1002})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "audit", entry["component"])
	assert.Equal(t, float64(2), entry["count"])
	assert.Equal(t, []interface{}{float64(1000), float64(1002)}, entry["ids"])
}

func TestAuditLoggerSummariesGenerated(t *testing.T) {
	log, buf := setupTestLogger()
	audit := NewAuditLogger(log)

	audit.LogSummariesGenerated(2023, 50, 4, "schedule")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "Summaries generated", entry["msg"])
	assert.Equal(t, float64(2023), entry["year"])
	assert.Equal(t, "schedule", entry["trigger"])
}

func TestAuditLoggerAuthFailure(t *testing.T) {
	log, buf := setupTestLogger()
	NewAuditLogger(log).LogAuthFailure("req-3", "/api/v1/benchmarks", "missing token")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "missing token", entry["reason"])
}
