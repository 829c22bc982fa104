package trie

import (
	"fmt"
	"io"
)

// Show renders the trie as an ASCII tree to w, one line per node, using
// box-drawing prefixes the way the original's show()/print_backend() did.
// Nodes carrying accesses or a generalized set are annotated inline.
func (t *Trie) Show(w io.Writer) {
	t.showNode(w, Root, "", true)
}

func (t *Trie) showNode(w io.Writer, id NodeID, prefix string, isLast bool) {
	n := t.node(id)

	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if id == Root {
		connector = ""
	}

	label := n.Tag
	if n.IsRegexp {
		label += " [regex]"
	}
	if n.IsRecursive {
		label += " [recursive]"
	}
	if len(n.Accesses) > 0 {
		label += fmt.Sprintf(" (%d accesses)", len(n.Accesses))
	}
	if len(n.Generalized) > 0 {
		label += fmt.Sprintf(" (%d generalized)", len(n.Generalized))
	}

	fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label)

	childPrefix := prefix
	if id != Root {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	children := t.Children(id)
	for i, childID := range children {
		t.showNode(w, childID, childPrefix, i == len(children)-1)
	}
}
