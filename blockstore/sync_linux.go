//go:build linux

package blockstore

import (
	"os"

	"golang.org/x/sys/unix"
)

func syncFile(f *os.File, mode SyncMode) error {
	if mode != SyncData {
		return f.Sync()
	}
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var serr error
	if err := rc.Control(func(fd uintptr) {
		serr = unix.Fdatasync(int(fd))
	}); err != nil {
		return err
	}
	if serr != nil {
		return &os.PathError{Op: "fdatasync", Path: f.Name(), Err: serr}
	}
	return nil
}
