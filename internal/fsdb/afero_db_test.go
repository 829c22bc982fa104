package fsdb

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *AferoDB {
	t.Helper()
	memfs := afero.NewMemMapFs()
	require.NoError(t, memfs.MkdirAll("/home/alice", 0755))
	require.NoError(t, afero.WriteFile(memfs, "/home/alice/.bashrc", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(memfs, "/etc/passwd", []byte("x"), 0600))

	owners := map[string]int{"/home/alice": 1000, "/home/alice/.bashrc": 1000}
	owner := func(p string, info os.FileInfo) (int, int) {
		return owners[p], 0
	}

	db, err := New(memfs, "/", owner)
	require.NoError(t, err)
	return db
}

func TestSearchPathAndIsDirectory(t *testing.T) {
	db := newTestDB(t)

	ok, err := db.SearchPath("/home/alice")
	require.NoError(t, err)
	require.True(t, ok)

	isDir, err := db.IsDirectory("/home/alice")
	require.NoError(t, err)
	require.True(t, isDir)

	isDir, err = db.IsDirectory("/home/alice/.bashrc")
	require.NoError(t, err)
	require.False(t, isDir)

	ok, err = db.SearchPath("/nope")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetOwnerAndChildren(t *testing.T) {
	db := newTestDB(t)

	uid, err := db.GetOwner("/home/alice")
	require.NoError(t, err)
	require.Equal(t, 1000, uid)

	n, err := db.GetNumChildren("/home/alice")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestGetDirectoriesByID(t *testing.T) {
	db := newTestDB(t)

	dirs, err := db.GetDirectoriesByID([]int{1000}, nil)
	require.NoError(t, err)
	require.Contains(t, dirs, "/home/alice")
}

func TestGetSpecificChildAndRowidsAndNames(t *testing.T) {
	db := newTestDB(t)

	rootIno, ok, err := db.PathInode("/home")
	require.NoError(t, err)
	require.True(t, ok)

	id, ok, err := db.GetSpecificChild(rootIno, "alice")
	require.NoError(t, err)
	require.True(t, ok)

	entries, err := db.GetChildrenRowidsAndNames(rootIno)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, id, entries[0].ID)
	require.Equal(t, "alice", entries[0].Name)
}
