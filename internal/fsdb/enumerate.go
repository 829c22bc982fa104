package fsdb

import (
	"fmt"
	"regexp"

	"github.com/Programator2/medusa-policy-mining/internal/trie"
)

// EnumeratePaths expands node (and, recursively, its descendants) against
// db, resolving literal tags via GetSpecificChild and regex tags by
// filtering GetChildrenRowidsAndNames through a full-match regexp — the
// Go analogue of the original's node_to_db_paths. parentInode is the
// InodeID node's tag should be resolved under (the DB root inode when
// node is the trie root).
func EnumeratePaths(db DB, t *trie.Trie, node trie.NodeID, parentInode InodeID) ([]InodeID, error) {
	n := t.Node(node)

	var roots []InodeID
	switch {
	case node == trie.Root:
		roots = []InodeID{parentInode}
	case n.IsRegexp:
		re, err := regexp.Compile("^" + n.Tag + "$")
		if err != nil {
			return nil, fmt.Errorf("fsdb: compiling regex tag %q: %w", n.Tag, err)
		}
		entries, err := db.GetChildrenRowidsAndNames(parentInode)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if re.MatchString(e.Name) {
				roots = append(roots, e.ID)
			}
		}
	default:
		id, ok, err := db.GetSpecificChild(parentInode, n.Tag)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		roots = []InodeID{id}
	}

	out := append([]InodeID(nil), roots...)
	for _, child := range t.Children(node) {
		for _, root := range roots {
			ids, err := EnumeratePaths(db, t, child, root)
			if err != nil {
				return nil, err
			}
			out = append(out, ids...)
		}
	}
	return out, nil
}
