package generalize

import (
	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/Programator2/medusa-policy-mining/internal/fsdb"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
)

// ByOwner lifts per-access evidence into a node's OWN Generalized set
// based on filesystem ownership of the node itself (OwnDir) or of all of
// its children (OwnFiles, ReadFiles, WriteFiles), trying each enabled
// strategy in the fixed order OwnDir -> OwnFiles -> ReadFiles ->
// WriteFiles and applying only the first whose predicate holds for a
// given access, the Go analogue of the original's generalize_by_owner
// (mpm/tree.py).
func ByOwner(t *trie.Trie, db fsdb.DB, strategies OwnerStrategy) error {
	for _, node := range t.AllNodes() {
		if node == trie.Root {
			continue
		}
		path := t.Path(node)

		ino, found, err := db.PathInode(path)
		if err != nil {
			return err
		}
		if !found {
			continue
		}

		n := t.Node(node)
		for _, a := range n.Accesses {
			lifted, err := liftByOwner(db, strategies, path, ino, a)
			if err != nil {
				return err
			}
			if lifted != nil {
				n.Generalized.Add(*lifted)
			}
		}
	}
	return nil
}

// liftByOwner tries each ENABLED strategy in fixed order and applies the
// first whose predicate holds for a; when an enabled strategy's
// predicate fails, the next enabled strategy is tried.
//
// OwnDir checks the node's own path. OwnFiles, ReadFiles and WriteFiles
// enumerate the node's children via GetChildrenInodes and require all of
// them (and at least one) to satisfy the predicate, matching the
// original's all_if_any over db.get_children_inodes(path).
func liftByOwner(db fsdb.DB, strategies OwnerStrategy, path string, ino fsdb.InodeID, a access.Access) (*access.Access, error) {
	if strategies.Has(OwnDir) {
		isDir, err := db.IsDirectory(path)
		if err != nil {
			return nil, err
		}
		if isDir {
			owner, err := db.GetOwner(path)
			if err != nil {
				return nil, err
			}
			if owner == a.UID {
				return &a, nil
			}
		}
	}

	if strategies.Has(OwnFiles) {
		ok, err := allChildrenSatisfy(db, path, func(child fsdb.InodeID) (bool, error) {
			owner, err := db.GetOwnerByInode(child)
			if err != nil {
				return false, err
			}
			return owner == a.UID, nil
		})
		if err != nil {
			return nil, err
		}
		if ok {
			return &a, nil
		}
	}

	if strategies.Has(ReadFiles) {
		if a.Permissions.Has(access.Read) {
			ok, err := allChildrenSatisfy(db, path, func(child fsdb.InodeID) (bool, error) {
				return db.CanRead(child, a.UID)
			})
			if err != nil {
				return nil, err
			}
			if ok {
				lifted := access.New(access.Read, a.UID, a.Domain, a.Comm)
				return &lifted, nil
			}
		}
	}

	if strategies.Has(WriteFiles) {
		if a.Permissions.Has(access.Write) {
			ok, err := allChildrenSatisfy(db, path, func(child fsdb.InodeID) (bool, error) {
				return db.CanWrite(child, a.UID)
			})
			if err != nil {
				return nil, err
			}
			if ok {
				lifted := access.New(access.Write, a.UID, a.Domain, a.Comm)
				return &lifted, nil
			}
		}
	}

	return nil, nil
}

// allChildrenSatisfy reports whether path has at least one child and
// pred holds for every one of them, the Go analogue of the original's
// all_if_any helper (an empty iterable is never considered satisfied).
func allChildrenSatisfy(db fsdb.DB, path string, pred func(fsdb.InodeID) (bool, error)) (bool, error) {
	children, err := db.GetChildrenInodes(path)
	if err != nil {
		return false, err
	}
	if len(children) == 0 {
		return false, nil
	}
	for _, c := range children {
		ok, err := pred(c)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ByOwnerDirectory is the directory-scan variant: for every directory
// owned by one of uids or gids, insert (or reuse) the directory's node
// and add a Read|Write access with uid 0 for each domain to its
// Generalized set, which PromoteGeneralized later moves into a ".*" regex
// child; the Go analogue of the original's
// generalize_by_owner_directory.
func ByOwnerDirectory(t *trie.Trie, db fsdb.DB, uids, gids []int, domains []domain.Domain) error {
	dirs, err := db.GetDirectoriesByID(uids, gids)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		node := t.Insert(dir)
		n := t.Node(node)
		for _, d := range domains {
			n.Generalized.Add(access.New(access.Read.Union(access.Write), 0, d, ""))
		}
	}
	return nil
}
