// Package trie implements the filesystem access trie (C3), its
// regex-aware lookup (C4), merge (C9), and generalized-to-regex
// promotion (C11). Nodes live in an arena (Trie.nodes) and refer to each
// other by NodeID rather than by pointer, so cloning and merging never
// have to worry about aliasing.
package trie

import (
	"regexp"
	"strings"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
)

// NodeID indexes into a Trie's node arena. The zero NodeID is always the
// root.
type NodeID int

const Root NodeID = 0

// Node is one path component in the trie.
type Node struct {
	Tag         string
	Parent      NodeID
	hasParent   bool
	Children    map[string]NodeID
	order       []string // insertion order of Children keys, for deterministic regex tie-breaks (I2)
	Accesses    access.Set
	Generalized access.Set
	IsRegexp    bool
	IsRecursive bool
}

func newNode(tag string) *Node {
	return &Node{
		Tag:         tag,
		Children:    make(map[string]NodeID),
		Accesses:    access.NewSet(),
		Generalized: access.NewSet(),
	}
}

// Trie is a path trie over '/'-separated components.
type Trie struct {
	nodes []*Node
}

// New returns an empty trie containing only the root node.
func New() *Trie {
	return &Trie{nodes: []*Node{newNode("/")}}
}

func (t *Trie) node(id NodeID) *Node {
	return t.nodes[id]
}

// Node exposes the node data for id. Callers must not hold onto pointers
// across calls that might reallocate the arena (Insert, Clone, Merge).
func (t *Trie) Node(id NodeID) *Node {
	return t.node(id)
}

func splitPath(path string) []string {
	path = strings.TrimSuffix(path, "/")
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Insert walks path component by component from the root, creating nodes
// as needed, and returns the NodeID of the final component. A trailing
// slash is ignored.
func (t *Trie) Insert(path string) NodeID {
	cur := Root
	for _, part := range splitPath(path) {
		cur = t.child(cur, part)
	}
	return cur
}

func (t *Trie) child(parent NodeID, tag string) NodeID {
	p := t.node(parent)
	if id, ok := p.Children[tag]; ok {
		return id
	}
	n := newNode(tag)
	n.Parent = parent
	n.hasParent = true
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	p.Children[tag] = id
	p.order = append(p.order, tag)
	return id
}

// Path reconstructs the full slash-separated path of id by walking up to
// the root.
func (t *Trie) Path(id NodeID) string {
	var parts []string
	for n := t.node(id); n.hasParent; n = t.node(n.Parent) {
		parts = append(parts, n.Tag)
	}
	// reverse
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

// Parent returns the parent of id and whether id has one (the root does
// not).
func (t *Trie) Parent(id NodeID) (NodeID, bool) {
	n := t.node(id)
	return n.Parent, n.hasParent
}

// Children returns the child NodeIDs of id in insertion order.
func (t *Trie) Children(id NodeID) []NodeID {
	n := t.node(id)
	out := make([]NodeID, 0, len(n.order))
	for _, tag := range n.order {
		out = append(out, n.Children[tag])
	}
	return out
}

// NumChildren returns the number of direct children of id.
func (t *Trie) NumChildren(id NodeID) int {
	return len(t.node(id).Children)
}

// AllNodes returns every NodeID in the trie, in arena order (root first).
func (t *Trie) AllNodes() []NodeID {
	out := make([]NodeID, len(t.nodes))
	for i := range t.nodes {
		out[i] = NodeID(i)
	}
	return out
}

// LoadLog inserts every entry's path and merges its permissions into the
// final node's Accesses, stripping the audit-log " (deleted)" suffix the
// kernel appends for unlinked-but-open files.
func (t *Trie) LoadLog(entries []LogEntry) {
	for _, e := range entries {
		p := strings.TrimSuffix(e.Path, " (deleted)")
		id := t.Insert(p)
		t.node(id).Accesses.Add(access.New(e.Permission, e.UID, e.Domain, e.Comm))
	}
}

// LogEntry is the minimal shape LoadLog needs from an audit entry,
// satisfied by auditlog.Entry.
type LogEntry struct {
	Path       string
	Permission access.Permission
	UID        int
	Domain     domain.Domain
	Comm       string
}

// AccessedPaths returns every path in the trie whose node carries at
// least one concrete access, mapped to its NodeID.
func (t *Trie) AccessedPaths() map[string]NodeID {
	out := make(map[string]NodeID)
	for _, id := range t.AllNodes() {
		if len(t.node(id).Accesses) > 0 {
			out[t.Path(id)] = id
		}
	}
	return out
}

// regexMetaRE matches path components from add_path_generalization candidates:
// a component containing regex metacharacters not already escaped.
var regexMetaRE = regexp.MustCompile(`[^\\][.\[\]()+*?{}|^$]`)

// InsertGeneralization inserts pattern (a path whose components may
// individually contain regex metacharacters) and marks each owning node
// IsRegexp when that specific component looks like a regex rather than a
// literal path component. Returns the NodeID of the final component.
func (t *Trie) InsertGeneralization(pattern string) NodeID {
	cur := Root
	for _, part := range splitPath(pattern) {
		cur = t.child(cur, part)
		if looksLikeRegex(part) {
			t.node(cur).IsRegexp = true
		}
	}
	return cur
}

func looksLikeRegex(component string) bool {
	return regexMetaRE.MatchString(component)
}
