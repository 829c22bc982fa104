package trie

import "errors"

// ErrRegexpMismatch is returned by Merge when two tries disagree about
// whether a coinciding node is a regex node — an invariant violation that
// aborts the merge rather than silently picking one side.
var ErrRegexpMismatch = errors.New("trie: coinciding nodes disagree on is_regexp")

// Merge combines one or more tries into a fresh trie. Coinciding tags
// (same path, same position in the tree) have their accesses and
// generalized sets unioned via access.Set.Add; a coinciding node whose
// is_regexp flags disagree across inputs is an invariant violation and
// Merge returns ErrRegexpMismatch. A subtree present in only one input is
// deep-copied wholesale into the result.
func Merge(tries ...*Trie) (*Trie, error) {
	out := New()
	for _, src := range tries {
		if src == nil {
			continue
		}
		if err := mergeInto(out, Root, src, Root); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func mergeInto(dst *Trie, dstID NodeID, src *Trie, srcID NodeID) error {
	dstN := dst.node(dstID)
	srcN := src.node(srcID)

	if dstN.IsRegexp != srcN.IsRegexp {
		return ErrRegexpMismatch
	}
	dstN.IsRecursive = dstN.IsRecursive || srcN.IsRecursive
	dstN.Accesses.AddAll(srcN.Accesses)
	dstN.Generalized.AddAll(srcN.Generalized)

	for _, tag := range srcN.order {
		srcChild := srcN.Children[tag]
		if dstChild, ok := dstN.Children[tag]; ok {
			if err := mergeInto(dst, dstChild, src, srcChild); err != nil {
				return err
			}
			continue
		}
		copySubtree(dst, dstID, tag, src, srcChild)
	}
	return nil
}

// copySubtree deep-copies the subtree rooted at src (srcID) into dst as a
// new child named tag under dstParent.
func copySubtree(dst *Trie, dstParent NodeID, tag string, src *Trie, srcID NodeID) {
	srcN := src.node(srcID)

	id := dst.child(dstParent, tag)
	n := dst.node(id)
	n.Accesses = srcN.Accesses.Clone()
	n.Generalized = srcN.Generalized.Clone()
	n.IsRegexp = srcN.IsRegexp
	n.IsRecursive = srcN.IsRecursive

	for _, childTag := range srcN.order {
		copySubtree(dst, id, childTag, src, srcN.Children[childTag])
	}
}
