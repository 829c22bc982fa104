package generalize

import "regexp"

var procPidRE = regexp.MustCompile(`^/proc/[0-9]+/`)

// Proc rewrites a /proc/<pid>/... path into the regex pattern
// /proc/[0-9]+/..., so that every pid under /proc renders as the same
// pattern; it works on path strings and leaves the trie's per-pid nodes
// as they are. Any other path, including
// /proc itself with no trailing component, is returned unchanged. Gated
// by Config.GeneralizeProc at the call site.
func Proc(path string) string {
	if procPidRE.MatchString(path) {
		return procPidRE.ReplaceAllString(path, `/proc/[0-9]+/`)
	}
	return path
}
