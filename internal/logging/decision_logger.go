package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// DecisionLogger records one logfmt line per evaluator decision, kept
// separate from AppLogger because it's written at a high rate during
// evaluation and operators typically want to grep it independently of
// application diagnostics.
type DecisionLogger interface {
	LogDecision(operation, path, verdict string, details ...interface{})
}

type decisionLogger struct {
	logger *log.Logger
}

// NewDecisionLogger creates a decision logger writing to path, or
// discarding output when path is empty.
func NewDecisionLogger(path string) (DecisionLogger, error) {
	var writer io.Writer = io.Discard
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening decision log file: %w", err)
		}
		writer = f
	}
	return &decisionLogger{logger: log.New(writer, "", 0)}, nil
}

func (l *decisionLogger) LogDecision(operation, path, verdict string, details ...interface{}) {
	parts := []string{
		fmt.Sprintf("op=%s", formatValue(operation)),
		fmt.Sprintf("path=%s", formatValue(path)),
		fmt.Sprintf("verdict=%s", formatValue(verdict)),
	}
	for i := 0; i+1 < len(details); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%s", details[i], formatValue(details[i+1])))
	}
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}
