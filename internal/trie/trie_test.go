package trie

import (
	"testing"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertCreatesAndReusesNodes(t *testing.T) {
	tr := New()
	a := tr.Insert("/usr/bin/vim")
	b := tr.Insert("/usr/bin/vim")
	assert.Equal(t, a, b)
	assert.Equal(t, "/usr/bin/vim", tr.Path(a))
}

func TestInsertTrailingSlashIgnored(t *testing.T) {
	tr := New()
	a := tr.Insert("/usr/bin/")
	b := tr.Insert("/usr/bin")
	assert.Equal(t, a, b)
}

func TestLoadLogMergesByUIDAndDomain(t *testing.T) {
	tr := New()
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr.LoadLog([]LogEntry{
		{Path: "/etc/passwd", Permission: access.Read, UID: 1000, Domain: d},
		{Path: "/etc/passwd", Permission: access.Write, UID: 1000, Domain: d},
		{Path: "/etc/passwd (deleted)", Permission: access.Read, UID: 1001, Domain: d},
	})

	id, ok := tr.Find("/etc/passwd")
	require.True(t, ok)
	n := tr.Node(id)
	require.Len(t, n.Accesses, 2)
}

func TestAccessedPaths(t *testing.T) {
	tr := New()
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr.LoadLog([]LogEntry{{Path: "/a/b", Permission: access.Read, UID: 1, Domain: d}})
	tr.Insert("/a/c") // no accesses

	paths := tr.AccessedPaths()
	assert.Len(t, paths, 1)
	_, ok := paths["/a/b"]
	assert.True(t, ok)
}

func TestCloneIndependence(t *testing.T) {
	tr := New()
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr.LoadLog([]LogEntry{{Path: "/a/b", Permission: access.Read, UID: 1, Domain: d}})

	clone := tr.Clone()
	clone.LoadLog([]LogEntry{{Path: "/a/b", Permission: access.Write, UID: 2, Domain: d}})

	id, _ := tr.Find("/a/b")
	assert.Len(t, tr.Node(id).Accesses, 1)

	cloneID, _ := clone.Find("/a/b")
	assert.Len(t, clone.Node(cloneID).Accesses, 2)
}
