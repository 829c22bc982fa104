package fsdb

import (
	"os"
	"syscall"
)

// OSOwnerLookup is an OwnerLookup backed by the real Unix stat_t, for use
// with afero.NewOsFs() snapshot roots. info.Sys() returns a
// *syscall.Stat_t on every afero OS-backed file; if that assertion fails
// (a non-Unix afero.Fs), the path is reported as owned by uid/gid 0.
func OSOwnerLookup(_ string, info os.FileInfo) (uid, gid int) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0
	}
	return int(st.Uid), int(st.Gid)
}
