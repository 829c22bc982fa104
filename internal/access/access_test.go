package access

import (
	"testing"

	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionHasAndUnion(t *testing.T) {
	p := Read.Union(Write)
	assert.True(t, p.Has(Read))
	assert.True(t, p.Has(Write))
	assert.False(t, p.Has(See))
}

func TestPermissionString(t *testing.T) {
	assert.Equal(t, "NONE", Permission(0).String())
	assert.Equal(t, "READ", Read.String())
	assert.Equal(t, "READ|WRITE", Read.Union(Write).String())
	assert.Equal(t, "READ|WRITE|SEE", Read.Union(Write).Union(See).String())
}

func TestPermissionShort(t *testing.T) {
	assert.Equal(t, "", Permission(0).Short())
	assert.Equal(t, "rs", Read.Union(See).Short())
	assert.Equal(t, "rws", Read.Union(Write).Union(See).Short())
}

func TestSetAddMergesByUIDAndDomain(t *testing.T) {
	s := NewSet()
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	s.Add(New(Read, 1000, d, "vim"))
	s.Add(New(Write, 1000, d, ""))

	require.Len(t, s, 1)
	for _, a := range s {
		assert.Equal(t, Read.Union(Write), a.Permissions)
		assert.Equal(t, "vim", a.Comm)
	}
}

func TestSetAddKeepsDistinctUIDsSeparate(t *testing.T) {
	s := NewSet()
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	s.Add(New(Read, 1000, d, ""))
	s.Add(New(Read, 1001, d, ""))
	assert.Len(t, s, 2)
}

func TestSetCloneIndependence(t *testing.T) {
	s := NewSet()
	d := domain.Domain{{Binary: "sshd", UID: 0}}
	s.Add(New(Read, 1000, d, ""))

	clone := s.Clone()
	clone.Add(New(Write, 1000, d, ""))

	for _, a := range s {
		assert.Equal(t, Read, a.Permissions)
	}
	for _, a := range clone {
		assert.Equal(t, Read.Union(Write), a.Permissions)
	}
}
