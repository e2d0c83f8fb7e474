//go:build !linux

package blockstore

import "os"

// syncFile falls back to fsync; fdatasync is Linux-only here.
func syncFile(f *os.File, _ SyncMode) error {
	return f.Sync()
}
