package multirun

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

func splitChars(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// similarity reports the go-difflib ratio between a and b, the Go
// analogue of Python's difflib.SequenceMatcher(None, a, b).ratio(), used
// to cluster paths within a depth bucket at similarityThreshold.
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitChars(a), splitChars(b))
	return m.Ratio()
}

// regexFromDiff builds a regex matching both control and other by
// escaping runs the two strings agree on and collapsing every
// disagreeing run into a single non-greedy ".*?", using go-difflib's
// opcodes in place of the original's diff_match_patch opcodes.
func regexFromDiff(control, other string) string {
	a := splitChars(control)
	m := difflib.NewMatcher(a, splitChars(other))

	var b strings.Builder
	gapOpen := false
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			for _, r := range a[op.I1:op.I2] {
				b.WriteString(escapeRune([]rune(r)[0]))
			}
			gapOpen = false
			continue
		}
		if !gapOpen {
			b.WriteString(".*?")
			gapOpen = true
		}
	}
	return b.String()
}

// PrefixPostfixRegexp is the fallback regex synthesizer for a cluster
// whose members don't all full-match the diff-derived candidate: it
// builds <escaped common prefix>.*?<escaped common inner substring>.*?
// <escaped common suffix> from the literal structure shared by every
// member, the Go analogue of the original's prefix_postfix_regexp.
func PrefixPostfixRegexp(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	if len(paths) == 1 {
		return escapeAll(paths[0])
	}

	prefix := commonPrefix(paths)
	suffix := commonSuffix(trimPrefixAll(paths, prefix))

	middles := make([]string, len(paths))
	for i, p := range paths {
		rest := strings.TrimPrefix(p, prefix)
		rest = strings.TrimSuffix(rest, suffix)
		middles[i] = rest
	}
	inner := commonSubstring(middles)

	var b strings.Builder
	b.WriteString(escapeAll(prefix))
	if inner != "" {
		b.WriteString(".*?")
		b.WriteString(escapeAll(inner))
	}
	b.WriteString(".*?")
	b.WriteString(escapeAll(suffix))
	return b.String()
}

func escapeAll(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(escapeRune(r))
	}
	return b.String()
}

func commonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	prefix := strs[0]
	for _, s := range strs[1:] {
		i := 0
		for i < len(prefix) && i < len(s) && prefix[i] == s[i] {
			i++
		}
		prefix = prefix[:i]
	}
	return prefix
}

func commonSuffix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	suffix := strs[0]
	for _, s := range strs[1:] {
		i := 0
		for i < len(suffix) && i < len(s) &&
			suffix[len(suffix)-1-i] == s[len(s)-1-i] {
			i++
		}
		suffix = suffix[len(suffix)-i:]
	}
	return suffix
}

func trimPrefixAll(strs []string, prefix string) []string {
	out := make([]string, len(strs))
	for i, s := range strs {
		out[i] = strings.TrimPrefix(s, prefix)
	}
	return out
}

// commonSubstring returns the longest substring common to every string in
// strs, using the first string's substrings as candidates (longest
// first).
func commonSubstring(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	base := strs[0]
	for length := len(base); length > 0; length-- {
		for start := 0; start+length <= len(base); start++ {
			candidate := base[start : start+length]
			if candidate == "" {
				continue
			}
			if allContain(strs, candidate) {
				return candidate
			}
		}
	}
	return ""
}

func allContain(strs []string, sub string) bool {
	for _, s := range strs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
