// Package evaluator compares a mined trie against a reference policy
// and tallies the confusion matrix described in
// original_source/mpm/tree.py's test_accesses: for every reference
// (path, read, write) triple, read and write are each scored separately
// as a hit (both grant), correct denial (both deny), underpermission
// (reference grants, mined denies), or overpermission (mined grants,
// reference denies).
package evaluator

import (
	"strings"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/Programator2/medusa-policy-mining/internal/logging"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
)

// Case is one reference-policy entry: the permissions a human (or an
// existing hand-written policy) expects to be granted at Path.
type Case struct {
	Path  string
	Read  bool
	Write bool
}

// Decision is one read-or-write judgment made while evaluating a single
// Case, logged through logging.Decisions as evaluation proceeds.
type Decision struct {
	Path      string
	Operation string // "READ" or "WRITE"
	Granted   bool   // whether the mined trie granted this permission
}

// Confusion tallies the four outcome buckets across every (case,
// operation) judgment, plus the rendered tree the judgments were made
// against, ready for Export.
type Confusion struct {
	Hits             []Decision
	CorrectDenials   []Decision
	Underpermissions []Decision
	Overpermissions  []Decision
	TreeDump         string
}

// Evaluate judges every case against t, counting an access as granted
// when any Access at (or reached via a regex/recursive ancestor of) the
// case's path, belonging to one of domains, carries the needed
// permission bit.
func Evaluate(t *trie.Trie, domains []domain.Domain, cases []Case) (*Confusion, error) {
	c := &Confusion{}
	for _, cs := range cases {
		granted := grantedPermission(t, domains, cs.Path)

		classify(c, cs.Path, "READ", cs.Read, granted.Has(access.Read))
		classify(c, cs.Path, "WRITE", cs.Write, granted.Has(access.Write))
	}

	var buf strings.Builder
	t.Show(&buf)
	c.TreeDump = buf.String()

	return c, nil
}

func grantedPermission(t *trie.Trie, domains []domain.Domain, path string) access.Permission {
	id, ok := t.Find(path)
	if !ok {
		return 0
	}
	return t.Node(id).Accesses.HasDomain(domains)
}

func classify(c *Confusion, path, operation string, expected, granted bool) {
	d := Decision{Path: path, Operation: operation, Granted: granted}
	if logging.Decisions != nil {
		logging.Decisions.LogDecision(operation, path, verdictOf(expected, granted))
	}

	switch {
	case expected && granted:
		c.Hits = append(c.Hits, d)
	case !expected && !granted:
		c.CorrectDenials = append(c.CorrectDenials, d)
	case expected && !granted:
		c.Underpermissions = append(c.Underpermissions, d)
	default: // !expected && granted
		c.Overpermissions = append(c.Overpermissions, d)
	}
}

func verdictOf(expected, granted bool) string {
	switch {
	case expected && granted:
		return "hit"
	case !expected && !granted:
		return "correct_denial"
	case expected && !granted:
		return "underpermission"
	default:
		return "overpermission"
	}
}
