// Package fhs implements the FHS rule loader and applier (C10): a small
// static ruleset describing well-known Filesystem Hierarchy Standard
// paths (and their expected permissions) that should be granted to every
// domain regardless of what was actually observed in the audit log.
package fhs

import "github.com/Programator2/medusa-policy-mining/internal/access"

// Rule is one FHS entry: a path (possibly a regex when Regex is set),
// the permission it grants, whether it applies to the whole subtree
// (Recursive), and whether Path should be compiled as a regex component
// rather than inserted as a literal path.
type Rule struct {
	Path       string
	Permission access.Permission
	Recursive  bool
	Regex      bool
}

// Source provides a ruleset, either from a file or from memory.
type Source interface {
	Load() ([]Rule, error)
}
