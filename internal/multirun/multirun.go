// Package multirun implements the multi-run generalizer (C8): given
// several tries built from independent log traces of the same service,
// it finds paths unique to a single run and synthesizes a regex node
// that also matches the other runs' structurally similar paths, using
// diff-based regex synthesis (github.com/pmezard/go-difflib) and a
// string-similarity clustering pass.
package multirun

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/Programator2/medusa-policy-mining/internal/generalize"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
)

// similarityThreshold is the minimum go-difflib ratio for two paths in
// the same depth bucket to land in the same cluster.
const similarityThreshold = 0.425

// ErrSynthesisFailed is returned when neither the diff-derived candidate
// nor the prefix/postfix fallback can produce a regex matching every
// member of a cluster.
var ErrSynthesisFailed = errors.New("multirun: could not synthesize a regex matching every cluster member")

// pathHit records which tree and node a unique path came from, so its
// accesses can be gathered into the synthesized regex node without
// deleting them from their source trie.
type pathHit struct {
	tree *trie.Trie
	node trie.NodeID
	path string
}

// Generalize merges trees and, for paths present in an odd number of the
// inputs (the symmetric difference across all runs — the XOR the
// original computed as well as a plain uniqueness count, but only ever
// acted on), additionally inserts a synthesized regex node generalizing
// structurally similar paths across the cluster. This is the Go analogue
// of the original's generalize_mupltiple_runs.
func Generalize(strategy generalize.MultipleRunsStrategy, trees ...*trie.Trie) (*trie.Trie, error) {
	merged, err := trie.Merge(trees...)
	if err != nil {
		return nil, err
	}

	hits := uniquePathHits(trees)
	buckets := groupByDepth(hits)

	for _, depth := range sortedDepths(buckets) {
		clusters := cluster(buckets[depth])
		for _, c := range clusters {
			if err := applyCluster(merged, strategy, c); err != nil {
				return nil, err
			}
		}
	}

	return merged, nil
}

// uniquePathHits returns, for every path that appears in an odd number of
// trees, one pathHit per tree that contains it.
func uniquePathHits(trees []*trie.Trie) []pathHit {
	count := make(map[string]int)
	for _, t := range trees {
		for p := range t.AccessedPaths() {
			count[p]++
		}
	}

	var hits []pathHit
	for _, t := range trees {
		for p, n := range t.AccessedPaths() {
			if count[p]%2 == 1 {
				hits = append(hits, pathHit{tree: t, node: n, path: p})
			}
		}
	}
	return hits
}

func pathDepth(p string) int {
	return strings.Count(strings.Trim(p, "/"), "/") + 1
}

func groupByDepth(hits []pathHit) map[int][]pathHit {
	out := make(map[int][]pathHit)
	for _, h := range hits {
		d := pathDepth(h.path)
		out[d] = append(out[d], h)
	}
	return out
}

func sortedDepths(buckets map[int][]pathHit) []int {
	out := make([]int, 0, len(buckets))
	for d := range buckets {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// cluster groups hits within one depth bucket by pairwise similarity:
// a hit joins the first existing cluster whose representative (its first
// member) is similar enough; otherwise it starts a new cluster. Hits are
// processed in a stable, deterministic order (sorted by path).
func cluster(hits []pathHit) [][]pathHit {
	sort.Slice(hits, func(i, j int) bool { return hits[i].path < hits[j].path })

	var clusters [][]pathHit
	for _, h := range hits {
		placed := false
		for i, c := range clusters {
			if similarity(c[0].path, h.path) >= similarityThreshold {
				clusters[i] = append(clusters[i], h)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []pathHit{h})
		}
	}
	return clusters
}

func applyCluster(dst *trie.Trie, strategy generalize.MultipleRunsStrategy, c []pathHit) error {
	if len(c) == 1 {
		return applySingleton(dst, strategy, c[0])
	}

	paths := make([]string, len(c))
	for i, h := range c {
		paths[i] = h.path
	}

	leader := paths[0]
	candidate := ""
	for _, other := range paths[1:] {
		if c := regexFromDiff(leader, other); matchesAll(c, paths) {
			candidate = c
			break
		}
	}
	if candidate == "" {
		candidate = PrefixPostfixRegexp(paths)
	}
	if !matchesAll(candidate, paths) {
		return ErrSynthesisFailed
	}

	node := dst.InsertGeneralization(candidate)
	n := dst.Node(node)
	for _, h := range c {
		n.Accesses.AddAll(h.tree.Node(h.node).Accesses)
	}
	return nil
}

func applySingleton(dst *trie.Trie, strategy generalize.MultipleRunsStrategy, h pathHit) error {
	switch strategy {
	case generalize.NumericalGeneralization:
		pattern := NumericRegex(h.path)
		node := dst.InsertGeneralization(pattern)
		dst.Node(node).Accesses.AddAll(h.tree.Node(h.node).Accesses)
	case generalize.FullGeneralization:
		dir := parentDir(h.path)
		pattern := dir + "/.*"
		node := dst.InsertGeneralization(pattern)
		dst.Node(node).Accesses.AddAll(h.tree.Node(h.node).Accesses)
	case generalize.NoAction:
		// leave the concrete path as merged; nothing further to do.
	}
	return nil
}

func parentDir(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return ""
	}
	return p[:idx]
}

func baseName(p string) string {
	idx := strings.LastIndex(p, "/")
	return p[idx+1:]
}

func matchesAll(pattern string, paths []string) bool {
	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return false
	}
	for _, p := range paths {
		if !re.MatchString(p) {
			return false
		}
	}
	return true
}
