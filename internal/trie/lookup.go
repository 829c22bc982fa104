package trie

import (
	"regexp"
	"sync"
)

var (
	regexCacheMu sync.RWMutex
	regexCache   = map[string]*regexp.Regexp{}
)

func compile(pattern string) (*regexp.Regexp, error) {
	regexCacheMu.RLock()
	re, ok := regexCache[pattern]
	regexCacheMu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return nil, err
	}

	regexCacheMu.Lock()
	regexCache[pattern] = re
	regexCacheMu.Unlock()
	return re, nil
}

// Find resolves path against the trie using the four-step algorithm:
// walk components; if the current node is recursive, short-circuit and
// resolve to it for the remainder of the path (I5); otherwise prefer an
// exact literal child; if none exists, try each regex sibling (in
// insertion order — first match wins, I2). Returns the deepest matching
// NodeID and true, or the zero NodeID and false if no match exists at
// all.
func (t *Trie) Find(path string) (NodeID, bool) {
	cur := Root
	parts := splitPath(path)

	for i := 0; i < len(parts); i++ {
		part := parts[i]
		n := t.node(cur)

		if n.IsRecursive {
			return cur, true
		}

		if id, ok := n.Children[part]; ok {
			cur = id
			continue
		}

		if matched, ok := t.matchRegexChild(cur, part); ok {
			cur = matched
			continue
		}

		return 0, false
	}

	return cur, true
}

// matchRegexChild tries every regex child of parent, in insertion order,
// against part and returns the first match.
func (t *Trie) matchRegexChild(parent NodeID, part string) (NodeID, bool) {
	p := t.node(parent)
	for _, tag := range p.order {
		id := p.Children[tag]
		child := t.node(id)
		if !child.IsRegexp {
			continue
		}
		re, err := compile(tag)
		if err != nil {
			continue
		}
		if re.MatchString(part) {
			return id, true
		}
	}
	return 0, false
}
