package fhs

import (
	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
)

// Apply injects rules into t: for every rule, for every domain, it emits
// an Access at the rule's path carrying the rule's permissions. A regex
// rule's destination node is inserted via InsertGeneralization (so
// individual path components carrying regex metacharacters are tagged
// IsRegexp); a recursive rule additionally marks the destination node
// IsRecursive so lookups short-circuit into it from any descendant.
func Apply(t *trie.Trie, rules []Rule, domains []domain.Domain) {
	for _, r := range rules {
		var node trie.NodeID
		if r.Regex {
			node = t.InsertGeneralization(r.Path)
		} else {
			node = t.Insert(r.Path)
		}
		n := t.Node(node)
		if r.Recursive {
			n.IsRecursive = true
		}
		for _, d := range domains {
			n.Accesses.Add(access.New(r.Permission, d.Current().UID, d, ""))
		}
	}
}
