package blockstore

import (
	"path/filepath"
	"testing"
)

type benchRecord struct {
	ID      int    `json:"id"`
	Payload string `json:"payload"`
}

func benchStore(b *testing.B, mode SyncMode) *Store[benchRecord] {
	b.Helper()
	cfg := DefaultConfig()
	cfg.BlockSize = 256
	cfg.Path = filepath.Join(b.TempDir(), "bench.bin")
	cfg.Sync = mode
	s, err := OpenConfig[benchRecord](cfg)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { s.Close() })
	return s
}

func benchmarkPut(b *testing.B, mode SyncMode) {
	s := benchStore(b, mode)
	r := benchRecord{Payload: "0123456789abcdef0123456789abcdef"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.ID = i
		if err := s.Put(int64(i%1024), r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPut_SyncFull(b *testing.B) { benchmarkPut(b, SyncFull) }

func BenchmarkPut_SyncData(b *testing.B) { benchmarkPut(b, SyncData) }

func BenchmarkGet(b *testing.B) {
	s := benchStore(b, SyncData)
	for i := 0; i < 1024; i++ {
		if err := s.Put(int64(i), benchRecord{ID: i, Payload: "x"}); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := s.Get(int64(i % 1024)); err != nil {
			b.Fatal(err)
		}
	}
}
