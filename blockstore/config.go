package blockstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultBlockSize is one filesystem page.
const DefaultBlockSize = 4096

// SyncMode selects the durability flush issued after every Put.
type SyncMode int

const (
	// SyncFull flushes data and metadata (fsync).
	SyncFull SyncMode = iota
	// SyncData flushes data only (fdatasync where available, fsync elsewhere).
	SyncData
)

func (m SyncMode) String() string {
	switch m {
	case SyncFull:
		return "full"
	case SyncData:
		return "data"
	default:
		return fmt.Sprintf("SyncMode(%d)", int(m))
	}
}

// ParseSyncMode parses "full" or "data".
func ParseSyncMode(s string) (SyncMode, error) {
	switch s {
	case "full", "":
		return SyncFull, nil
	case "data":
		return SyncData, nil
	}
	return 0, fmt.Errorf("unknown sync mode %q", s)
}

// Config holds store parameters.
type Config struct {
	BlockSize int         // bytes per slot, must be > 0
	Path      string      // backing file, created or truncated on open
	Label     string      // display name, defaults to the file's base name
	Sync      SyncMode    // flush issued after every Put, default SyncFull
	Perm      os.FileMode // permission for a newly created file, default 0644
}

// DefaultConfig returns the default configuration. Path must still be set.
func DefaultConfig() *Config {
	return &Config{
		BlockSize: DefaultBlockSize,
		Sync:      SyncFull,
		Perm:      0644,
	}
}

// Validate reports whether c can open a store.
func (c *Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, c.BlockSize)
	}
	if c.Path == "" {
		return ErrInvalidPath
	}
	if c.Sync != SyncFull && c.Sync != SyncData {
		return fmt.Errorf("unknown sync mode %d", int(c.Sync))
	}
	return nil
}

// OrDefault returns DefaultConfig if c is nil, otherwise fills unset optional fields.
// BlockSize and Path are left as given so Validate can reject them.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.Perm == 0 {
		c.Perm = 0644
	}
	if c.Label == "" && c.Path != "" {
		c.Label = filepath.Base(c.Path)
	}
	return c
}
