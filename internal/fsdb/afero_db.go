package fsdb

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// OwnerLookup resolves the uid/gid that own a path. On a real afero.OsFs
// this is backed by the Unix stat_t; on afero.MemMapFs (used in tests, and
// anywhere a real filesystem snapshot isn't available) there is no
// meaningful owner in the stat info, so callers supply their own table.
type OwnerLookup func(path string, info os.FileInfo) (uid, gid int)

type entry struct {
	id       InodeID
	path     string
	isDir    bool
	mode     os.FileMode
	uid, gid int
	children []string // child names, in walk order
	parent   string
}

// AferoDB implements DB over an afero.Fs, walking it once at construction
// to assign every path a stable synthetic InodeID.
type AferoDB struct {
	mu      sync.RWMutex
	fs      afero.Fs
	root    string
	byPath  map[string]*entry
	byInode map[InodeID]*entry
}

// New walks fs starting at root and builds an AferoDB snapshot. owner may
// be nil, in which case every entry is reported as owned by uid/gid 0.
func New(fs afero.Fs, root string, owner OwnerLookup) (*AferoDB, error) {
	if owner == nil {
		owner = func(string, os.FileInfo) (int, int) { return 0, 0 }
	}

	db := &AferoDB{
		fs:      fs,
		root:    root,
		byPath:  make(map[string]*entry),
		byInode: make(map[InodeID]*entry),
	}

	var nextID InodeID = 1
	err := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		norm := normalize(root, p)
		uid, gid := owner(norm, info)
		e := &entry{
			id:    nextID,
			path:  norm,
			isDir: info.IsDir(),
			mode:  info.Mode(),
			uid:   uid,
			gid:   gid,
		}
		nextID++
		db.byPath[norm] = e
		db.byInode[e.id] = e
		if parent := parentOf(norm); parent != "" || norm != "/" {
			if pe, ok := db.byPath[parent]; ok {
				pe.children = append(pe.children, path.Base(norm))
				e.parent = parent
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking filesystem snapshot: %w", err)
	}
	return db, nil
}

func normalize(root, p string) string {
	rel := strings.TrimPrefix(p, root)
	if rel == "" {
		return "/"
	}
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return path.Clean(rel)
}

func parentOf(p string) string {
	if p == "/" {
		return ""
	}
	parent := path.Dir(p)
	return parent
}

func (db *AferoDB) lookup(p string) (*entry, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	e, ok := db.byPath[path.Clean(p)]
	return e, ok
}

func (db *AferoDB) SearchPath(p string) (bool, error) {
	_, ok := db.lookup(p)
	return ok, nil
}

func (db *AferoDB) IsDirectory(p string) (bool, error) {
	e, ok := db.lookup(p)
	if !ok {
		return false, nil
	}
	return e.isDir, nil
}

func (db *AferoDB) GetOwner(p string) (int, error) {
	e, ok := db.lookup(p)
	if !ok {
		return 0, fmt.Errorf("fsdb: path not found: %s", p)
	}
	return e.uid, nil
}

func (db *AferoDB) GetOwnerByInode(ino InodeID) (int, error) {
	db.mu.RLock()
	e, ok := db.byInode[ino]
	db.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("fsdb: unknown inode: %d", ino)
	}
	return e.uid, nil
}

func (db *AferoDB) GetChildrenInodes(p string) ([]InodeID, error) {
	e, ok := db.lookup(p)
	if !ok {
		return nil, fmt.Errorf("fsdb: path not found: %s", p)
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]InodeID, 0, len(e.children))
	for _, name := range e.children {
		if child, ok := db.byPath[joinPath(e.path, name)]; ok {
			out = append(out, child.id)
		}
	}
	return out, nil
}

func (db *AferoDB) CanRead(ino InodeID, uid int) (bool, error) {
	db.mu.RLock()
	e, ok := db.byInode[ino]
	db.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("fsdb: unknown inode: %d", ino)
	}
	if e.uid == uid {
		return e.mode&0400 != 0, nil
	}
	return e.mode&0044 != 0, nil
}

func (db *AferoDB) CanWrite(ino InodeID, uid int) (bool, error) {
	db.mu.RLock()
	e, ok := db.byInode[ino]
	db.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("fsdb: unknown inode: %d", ino)
	}
	if e.uid == uid {
		return e.mode&0200 != 0, nil
	}
	return e.mode&0022 != 0, nil
}

func (db *AferoDB) GetNumChildren(p string) (int, error) {
	e, ok := db.lookup(p)
	if !ok {
		return 0, fmt.Errorf("fsdb: path not found: %s", p)
	}
	return len(e.children), nil
}

func (db *AferoDB) GetDirectoriesByID(uids, gids []int) ([]string, error) {
	uidSet := toSet(uids)
	gidSet := toSet(gids)

	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []string
	for p, e := range db.byPath {
		if !e.isDir {
			continue
		}
		if uidSet[e.uid] || gidSet[e.gid] {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (db *AferoDB) GetSpecificChild(parent InodeID, name string) (InodeID, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	pe, ok := db.byInode[parent]
	if !ok {
		return 0, false, fmt.Errorf("fsdb: unknown inode: %d", parent)
	}
	child, ok := db.byPath[joinPath(pe.path, name)]
	if !ok {
		return 0, false, nil
	}
	return child.id, true, nil
}

func (db *AferoDB) GetChildrenRowidsAndNames(parent InodeID) ([]ChildEntry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	pe, ok := db.byInode[parent]
	if !ok {
		return nil, fmt.Errorf("fsdb: unknown inode: %d", parent)
	}
	out := make([]ChildEntry, 0, len(pe.children))
	for _, name := range pe.children {
		if child, ok := db.byPath[joinPath(pe.path, name)]; ok {
			out = append(out, ChildEntry{ID: child.id, Name: name})
		}
	}
	return out, nil
}

func (db *AferoDB) PathInode(p string) (InodeID, bool, error) {
	e, ok := db.lookup(p)
	if !ok {
		return 0, false, nil
	}
	return e.id, true, nil
}

func joinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

func toSet(vals []int) map[int]bool {
	out := make(map[int]bool, len(vals))
	for _, v := range vals {
		out[v] = true
	}
	return out
}
