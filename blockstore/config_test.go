package blockstore

import (
	"errors"
	"testing"
)

func TestParseSyncMode(t *testing.T) {
	for in, want := range map[string]SyncMode{"": SyncFull, "full": SyncFull, "data": SyncData} {
		got, err := ParseSyncMode(in)
		if err != nil || got != want {
			t.Errorf("ParseSyncMode(%q): got %v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseSyncMode("none"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if SyncData.String() != "data" || SyncFull.String() != "full" {
		t.Errorf("String: %s %s", SyncFull, SyncData)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if !errors.Is(cfg.Validate(), ErrInvalidPath) {
		t.Error("default config without path should be invalid")
	}
	cfg.Path = "x.bin"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	cfg.Sync = SyncMode(9)
	if err := cfg.Validate(); err == nil {
		t.Error("unknown sync mode should be invalid")
	}
}

func TestConfig_OrDefault(t *testing.T) {
	var nilCfg *Config
	if c := nilCfg.OrDefault(); c.BlockSize != DefaultBlockSize || c.Perm != 0644 {
		t.Errorf("nil OrDefault: %+v", c)
	}
	c := (&Config{BlockSize: -1, Path: "/tmp/dir/f.bin"}).OrDefault()
	if c.BlockSize != -1 {
		t.Error("OrDefault must not repair an invalid block size")
	}
	if c.Label != "f.bin" || c.Perm != 0644 {
		t.Errorf("OrDefault: label=%q perm=%o", c.Label, c.Perm)
	}
}
