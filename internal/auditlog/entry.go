// Package auditlog parses Linux audit-log text (the format Medusa's AVC
// messages are recorded in) into Entry values ready for
// trie.Trie.LoadLog, tracking the exec-domain each pid carries as the log
// is read in order.
package auditlog

import (
	"io"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
)

// Entry is one (path, permission) access attributed to a pid/uid pair at
// a point in the log, carrying enough context to build a trie.LogEntry.
type Entry struct {
	Proctitle  string
	Path       string
	Permission access.Permission
	UID        int
	PID        int
	PPID       int
	Operation  string
	Domain     domain.Domain
}

// Parser turns raw audit-log text into Entry values.
type Parser interface {
	Parse(r io.Reader) ([]Entry, error)
}
