package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// AppLogger is a leveled, key=value structured logger.
type AppLogger struct {
	level  LogLevel
	logger *log.Logger
	writer *RotatingWriter // nil when logging to stdout
}

// NewAppLogger creates a logger writing to logPath (or stdout when
// empty), rotating at maxSize bytes (0 disables rotation).
func NewAppLogger(logPath string, level LogLevel, maxSize int64, verifyInterval time.Duration) (*AppLogger, error) {
	var writer io.Writer = os.Stdout
	var rotating *RotatingWriter

	if logPath != "" {
		rw, err := NewRotatingWriter(logPath, maxSize, verifyInterval)
		if err != nil {
			return nil, fmt.Errorf("creating rotating writer: %w", err)
		}
		writer = rw
		rotating = rw
	}

	return &AppLogger{
		level:  level,
		logger: log.New(writer, "", 0),
		writer: rotating,
	}, nil
}

var levelOrder = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
	LogLevelPanic: 4,
}

func (l *AppLogger) shouldLog(level LogLevel) bool {
	return levelOrder[level] >= levelOrder[l.level]
}

func (l *AppLogger) log(level LogLevel, message string, keyvals ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	var kv []string
	for i := 0; i+1 < len(keyvals); i += 2 {
		kv = append(kv, fmt.Sprintf("%s=%s", toString(keyvals[i]), formatValue(keyvals[i+1])))
	}

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s: %s %s", timestamp, level, message, strings.Join(kv, " "))
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.Join(strings.Fields(s), " ")
}

// formatValue renders v for logfmt, quoting when it contains a space,
// '=', or '"'.
func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, " =\"") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return fmt.Sprintf("%q", s)
	}
	return s
}

func (l *AppLogger) Debug(message string, keyvals ...interface{}) { l.log(LogLevelDebug, message, keyvals...) }
func (l *AppLogger) Info(message string, keyvals ...interface{})  { l.log(LogLevelInfo, message, keyvals...) }
func (l *AppLogger) Warn(message string, keyvals ...interface{})  { l.log(LogLevelWarn, message, keyvals...) }
func (l *AppLogger) Error(message string, keyvals ...interface{}) { l.log(LogLevelError, message, keyvals...) }
func (l *AppLogger) Panic(message string, keyvals ...interface{}) { l.log(LogLevelPanic, message, keyvals...) }

// IsDebug reports whether this logger is at debug level.
func (l *AppLogger) IsDebug() bool { return l.level == LogLevelDebug }

// Close stops the background rotation goroutine and closes the file.
func (l *AppLogger) Close() error {
	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}
