package generalize

import (
	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/fsdb"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
)

// childCountFunc returns the denominator threshold lifts a node's
// children against: either the trie's own branching factor (C5) or an
// external filesystem's branching factor (C5').
type childCountFunc func(t *trie.Trie, node trie.NodeID) (int, error)

// Threshold runs the log-evidence threshold generalizer (C5): a
// post-order DFS that, for each node, counts how many of its children
// agree on a given (uid, domain, permission) triple (via their own
// concrete or already-generalized accesses) and, when the fraction meets
// threshold, lifts that triple into the node's Generalized set.
func Threshold(t *trie.Trie, threshold float64) error {
	return walk(t, trie.Root, threshold, func(t *trie.Trie, node trie.NodeID) (int, error) {
		return t.NumChildren(node), nil
	})
}

// ThresholdFS is the C5' variant: the denominator is the filesystem
// snapshot's actual child count for the node's path, rather than the
// number of children the log happened to observe.
func ThresholdFS(t *trie.Trie, db fsdb.DB, threshold float64) error {
	return walk(t, trie.Root, threshold, func(t *trie.Trie, node trie.NodeID) (int, error) {
		return db.GetNumChildren(t.Path(node))
	})
}

func walk(t *trie.Trie, node trie.NodeID, threshold float64, count childCountFunc) error {
	children := t.Children(node)
	for _, c := range children {
		if err := walk(t, c, threshold, count); err != nil {
			return err
		}
	}

	if len(children) == 0 {
		return nil
	}

	denom, err := count(t, node)
	if err != nil {
		return err
	}
	if denom == 0 {
		return nil
	}

	// Each single-bit permission is counted independently (spec §4.5,
	// original's tree.py: "for permission in access.permissions: ...") so
	// that e.g. three children split between READ-only and READ|WRITE
	// still accumulate a common READ count.
	type triple struct {
		uid  int
		dom  string
		perm access.Permission
	}
	counts := make(map[triple]int)
	examples := make(map[triple]access.Access)

	for _, c := range children {
		seen := make(map[triple]bool)
		cn := t.Node(c)
		for _, a := range allAccesses(cn) {
			for _, bit := range a.Permissions.Bits() {
				k := triple{uid: a.UID, dom: a.Domain.Key(), perm: bit}
				if seen[k] {
					continue
				}
				seen[k] = true
				counts[k]++
				examples[k] = access.New(bit, a.UID, a.Domain, a.Comm)
			}
		}
	}

	n := t.Node(node)
	for k, c := range counts {
		if float64(c)/float64(denom) >= threshold {
			n.Generalized.Add(examples[k])
		}
	}
	return nil
}

func allAccesses(n *trie.Node) []access.Access {
	out := make([]access.Access, 0, len(n.Accesses)+len(n.Generalized))
	for _, a := range n.Accesses {
		out = append(out, a)
	}
	for _, a := range n.Generalized {
		out = append(out, a)
	}
	return out
}
