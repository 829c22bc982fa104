package generalize

import (
	"github.com/Programator2/medusa-policy-mining/internal/fsdb"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
)

// Nonexistent lifts accesses on paths the filesystem snapshot no longer
// has (deleted, or never existed outside the log) onto their parent's
// Generalized set — the Go analogue of the original's
// generalize_nonexistent.
func Nonexistent(t *trie.Trie, db fsdb.DB) error {
	for path, node := range t.AccessedPaths() {
		exists, err := db.SearchPath(path)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		parent, ok := t.Parent(node)
		if !ok {
			continue
		}
		t.Node(parent).Generalized.AddAll(t.Node(node).Accesses)
	}
	return nil
}
