package trie

// Clone returns a deep, fully independent copy of t: the node arena, the
// access sets, and the child maps are all copied so that mutating the
// clone never touches t.
func (t *Trie) Clone() *Trie {
	out := &Trie{nodes: make([]*Node, len(t.nodes))}
	for i, n := range t.nodes {
		out.nodes[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n *Node) *Node {
	c := &Node{
		Tag:         n.Tag,
		Parent:      n.Parent,
		hasParent:   n.hasParent,
		Children:    make(map[string]NodeID, len(n.Children)),
		order:       append([]string(nil), n.order...),
		Accesses:    n.Accesses.Clone(),
		Generalized: n.Generalized.Clone(),
		IsRegexp:    n.IsRegexp,
		IsRecursive: n.IsRecursive,
	}
	for k, v := range n.Children {
		c.Children[k] = v
	}
	return c
}
