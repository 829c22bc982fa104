// Package policyemit renders a mined trie to a simplified rule-line
// policy format: one line per access on each accessed or generalized
// node, of the form `domain PERM|PERM "/path"`, or `domain PERM|PERM
// /regex/` for a regex node. This is a deliberately simplified
// stand-in for the original's Constable-language templates
// (original_source/mpm/policy.py) — full Constable syntax is out of
// scope (no live enforcement), but every generalized rule the core
// produces still gets a line here.
package policyemit

import (
	"fmt"
	"io"
	"sort"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/Programator2/medusa-policy-mining/internal/generalize"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
)

// Emit writes one rule line for every Access and every still-ungeneralized
// Generalized entry on the nodes of t (PromoteGeneralized should
// normally be run first so everything lands in Accesses), restricted to
// the supplied domains (an empty list applies no restriction), sorted by
// path, then rendered domain.
//
// When generalizeProc is set, /proc/<pid>/... paths are rewritten to
// /proc/[0-9]+/... on the rendered line only, the Go analogue of the
// original's generalize_proc call inside its emission loop
// (mpm/policy.py). The mined trie itself is left holding literal
// per-pid nodes, since generalize_proc "should be used on final paths"
// rather than during trie construction.
func Emit(w io.Writer, t *trie.Trie, domains []domain.Domain, generalizeProc bool) error {
	type rule struct {
		path   string
		domain string
		perm   access.Permission
		regex  bool
	}

	var rules []rule
	for _, id := range t.AllNodes() {
		n := t.Node(id)
		path := t.Path(id)
		if generalizeProc {
			path = generalize.Proc(path)
		}
		for _, set := range [...]access.Set{n.Accesses, n.Generalized} {
			for _, a := range set {
				if !inDomains(a.Domain, domains) {
					continue
				}
				rules = append(rules, rule{
					path:   path,
					domain: a.Domain.String(),
					perm:   a.Permissions,
					regex:  n.IsRegexp,
				})
			}
		}
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].path != rules[j].path {
			return rules[i].path < rules[j].path
		}
		return rules[i].domain < rules[j].domain
	})

	for _, r := range rules {
		quote := `"`
		if r.regex {
			quote = "/"
		}
		if _, err := fmt.Fprintf(w, "%s %s %s%s%s\n", r.domain, r.perm.String(), quote, r.path, quote); err != nil {
			return fmt.Errorf("policyemit: %w", err)
		}
	}
	return nil
}

func inDomains(d domain.Domain, domains []domain.Domain) bool {
	if len(domains) == 0 {
		return true
	}
	for _, want := range domains {
		if d.Key() == want.Key() {
			return true
		}
	}
	return false
}
