package generalize

import (
	"testing"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdLiftsWhenAllChildrenAgree(t *testing.T) {
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr := trie.New()
	tr.LoadLog([]trie.LogEntry{
		{Path: "/etc/a", Permission: access.Read, UID: 1000, Domain: d},
		{Path: "/etc/b", Permission: access.Read, UID: 1000, Domain: d},
	})

	require.NoError(t, Threshold(tr, 1.0))

	etc, ok := tr.Find("/etc")
	require.True(t, ok)
	assert.Len(t, tr.Node(etc).Generalized, 1)
}

func TestThresholdDoesNotLiftWhenChildrenDisagree(t *testing.T) {
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr := trie.New()
	tr.LoadLog([]trie.LogEntry{
		{Path: "/etc/a", Permission: access.Read, UID: 1000, Domain: d},
		{Path: "/etc/b", Permission: access.Read, UID: 1001, Domain: d},
	})

	require.NoError(t, Threshold(tr, 1.0))

	etc, ok := tr.Find("/etc")
	require.True(t, ok)
	assert.Len(t, tr.Node(etc).Generalized, 0)
}

func TestThresholdCountsEachPermissionBitIndependently(t *testing.T) {
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr := trie.New()
	tr.LoadLog([]trie.LogEntry{
		{Path: "/etc/a", Permission: access.Read, UID: 1000, Domain: d},
		{Path: "/etc/b", Permission: access.Read.Union(access.Write), UID: 1000, Domain: d},
	})

	require.NoError(t, Threshold(tr, 1.0))

	etc, ok := tr.Find("/etc")
	require.True(t, ok)
	generalized := tr.Node(etc).Generalized
	require.Len(t, generalized, 1)
	for _, a := range generalized {
		assert.Equal(t, access.Read, a.Permissions)
	}
}

func TestThresholdBelowOneLiftsOnPartialAgreement(t *testing.T) {
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr := trie.New()
	tr.LoadLog([]trie.LogEntry{
		{Path: "/etc/a", Permission: access.Read, UID: 1000, Domain: d},
		{Path: "/etc/b", Permission: access.Read, UID: 1000, Domain: d},
		{Path: "/etc/c", Permission: access.Read, UID: 1001, Domain: d},
	})

	require.NoError(t, Threshold(tr, 0.5))

	etc, ok := tr.Find("/etc")
	require.True(t, ok)
	assert.Len(t, tr.Node(etc).Generalized, 1)
}
