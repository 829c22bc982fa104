package fsdb

import (
	"testing"

	"github.com/Programator2/medusa-policy-mining/internal/trie"
	"github.com/stretchr/testify/require"
)

func TestEnumeratePathsLiteral(t *testing.T) {
	db := newTestDB(t)
	tr := trie.New()
	tr.Insert("/home/alice")

	rootIno, ok, err := db.PathInode("/")
	require.NoError(t, err)
	require.True(t, ok)

	ids, err := EnumeratePaths(db, tr, trie.Root, rootIno)
	require.NoError(t, err)
	require.NotEmpty(t, ids)
}

func TestEnumeratePathsRegex(t *testing.T) {
	db := newTestDB(t)
	tr := trie.New()
	tr.InsertGeneralization("/home/a.*")

	rootIno, _, err := db.PathInode("/")
	require.NoError(t, err)

	ids, err := EnumeratePaths(db, tr, trie.Root, rootIno)
	require.NoError(t, err)
	require.NotEmpty(t, ids)
}
