package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger records every accepted write to the leaderboard data.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger logrus.FieldLogger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogBenchmarksSubmitted logs an accepted benchmark batch.
func (al *AuditLogger) LogBenchmarksSubmitted(requestID string, count int, ids []int) {
	al.WithFields(logrus.Fields{
		"request_id": requestID,
		"count":      count,
		"ids":        ids,
	}).Info("Benchmarks submitted")
}

// LogParticipantsRegistered logs an accepted participant batch.
func (al *AuditLogger) LogParticipantsRegistered(requestID string, count int) {
	al.WithFields(logrus.Fields{
		"request_id": requestID,
		"count":      count,
	}).Info("Participants registered")
}

// LogSummariesGenerated logs a summary generation run.
func (al *AuditLogger) LogSummariesGenerated(year, benchmarks, summaries int, trigger string) {
	al.WithFields(logrus.Fields{
		"year":       year,
		"benchmarks": benchmarks,
		"summaries":  summaries,
		"trigger":    trigger,
	}).Info("Summaries generated")
}

// LogAuthFailure logs a rejected write attempt.
func (al *AuditLogger) LogAuthFailure(requestID, path, reason string) {
	al.WithFields(logrus.Fields{
		"request_id": requestID,
		"path":       path,
		"reason":     reason,
	}).Warn("Authentication failed")
}
