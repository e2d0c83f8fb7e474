// Package blockstore provides a fixed-slot random-access record store backed by a single file.
//
// Quick start:
//
//	s, err := blockstore.Open[map[string]int](64, "/tmp/records.bin", "records")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	err = s.Put(0, map[string]int{"n": 42})
//	v, ok, err := s.Get(0)
//
// Close deletes the backing file. Use NewSerial when callers need per-index ordering.
package blockstore
