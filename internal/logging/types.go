// Package logging provides the application and decision loggers used
// across a mining run, grounded on the teacher's pkg/logging: a
// structured, key=value app logger backed by a size-rotating file
// writer, plus a narrower decision logger for evaluator verdicts.
package logging

import (
	"fmt"
	"time"
)

// LogLevel is the severity of a log message.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelPanic LogLevel = "panic"
)

// App is the global application logger, set by Initialize.
var App *AppLogger

// Decisions is the global decision logger, set by Initialize.
var Decisions DecisionLogger

// Initialize sets up App and Decisions. An appLogPath of "" logs to
// stdout; a decisionLogPath of "" discards decisions. maxSize/verifyInterval configure App's rotating writer;
// pass 0 for maxSize to disable rotation.
func Initialize(appLogPath, decisionLogPath string, level LogLevel, maxSize int64, verifyInterval time.Duration) error {
	if level == "" {
		level = LogLevelInfo
	}

	dec, err := NewDecisionLogger(decisionLogPath)
	if err != nil {
		return fmt.Errorf("logging: decision logger: %w", err)
	}
	Decisions = dec

	app, err := NewAppLogger(appLogPath, level, maxSize, verifyInterval)
	if err != nil {
		return fmt.Errorf("logging: app logger: %w", err)
	}
	App = app

	return nil
}
