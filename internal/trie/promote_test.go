package trie

import (
	"bytes"
	"testing"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteGeneralizedCreatesRegexChild(t *testing.T) {
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr := New()
	dir := tr.Insert("/home/alice")
	tr.Node(dir).Generalized.Add(access.New(access.Read, 1000, d, ""))

	touched := tr.PromoteGeneralized()
	require.Len(t, touched, 1)

	child, ok := tr.Find("/home/alice/anything")
	require.True(t, ok)
	assert.Equal(t, touched[0], child)
	assert.Len(t, tr.Node(dir).Generalized, 0)
}

func TestPromoteGeneralizedIdempotent(t *testing.T) {
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	tr := New()
	dir := tr.Insert("/home/alice")
	tr.Node(dir).Generalized.Add(access.New(access.Read, 1000, d, ""))

	tr.PromoteGeneralized()
	touched := tr.PromoteGeneralized()
	assert.Len(t, touched, 0)
}

func TestShowRendersTree(t *testing.T) {
	tr := New()
	tr.Insert("/usr/bin")

	var buf bytes.Buffer
	tr.Show(&buf)
	assert.Contains(t, buf.String(), "usr")
	assert.Contains(t, buf.String(), "bin")
}
