package trie

import "github.com/Programator2/medusa-policy-mining/internal/access"

// PromoteGeneralized walks every node in the trie and, for each node
// whose Generalized set is non-empty, creates (or reuses) a ".*" regex
// child, moves the generalized accesses onto it, and clears the source
// node's Generalized set. It is idempotent: a node with no generalized
// accesses left is untouched on a second call. Returns the NodeIDs of
// every ".*" node touched.
func (t *Trie) PromoteGeneralized() []NodeID {
	var touched []NodeID
	for _, id := range t.AllNodes() {
		n := t.node(id)
		if len(n.Generalized) == 0 {
			continue
		}
		child := t.child(id, ".*")
		cn := t.node(child)
		cn.IsRegexp = true
		cn.Accesses.AddAll(n.Generalized)
		n.Generalized = access.NewSet()
		touched = append(touched, child)
	}
	return touched
}
