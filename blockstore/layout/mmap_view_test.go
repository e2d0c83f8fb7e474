package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSlots(t *testing.T, blockSize int, payloads ...string) string {
	t.Helper()
	var data []byte
	for _, p := range payloads {
		slot, err := Pad([]byte(p), blockSize)
		if err != nil {
			t.Fatal(err)
		}
		data = append(data, slot...)
	}
	path := filepath.Join(t.TempDir(), "slots.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMmapSlotView(t *testing.T) {
	path := writeSlots(t, 32, `{"value":1}`, "", `{"value":"x"}`)
	v, err := OpenMmap(path, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	if v.NumSlots() != 3 {
		t.Fatalf("NumSlots: got %d want 3", v.NumSlots())
	}
	if got := string(Strip(v.Slot(0))); got != `{"value":1}` {
		t.Errorf("slot 0: got %q", got)
	}
	if got := Strip(v.Slot(1)); len(got) != 0 {
		t.Errorf("slot 1 should be empty, got %q", got)
	}
	if got := string(Strip(v.Slot(2))); got != `{"value":"x"}` {
		t.Errorf("slot 2: got %q", got)
	}
	if v.Slot(3) != nil {
		t.Error("slot past end should be nil")
	}
	if v.Slot(-1) != nil {
		t.Error("negative slot should be nil")
	}
	if len(v.Bytes()) != 96 {
		t.Errorf("Bytes len: got %d want 96", len(v.Bytes()))
	}
}

func TestMmapSlotView_PartialTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tail.bin")
	if err := os.WriteFile(path, make([]byte, 40), 0644); err != nil {
		t.Fatal(err)
	}
	v, err := OpenMmap(path, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()
	if v.NumSlots() != 1 {
		t.Errorf("NumSlots: got %d want 1", v.NumSlots())
	}
	if v.Slot(1) != nil {
		t.Error("partial trailing slot should not be addressable")
	}
}

func TestMmapSlotView_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	v, err := OpenMmap(path, 32)
	if err != nil {
		t.Fatal(err)
	}
	if v.NumSlots() != 0 || v.Slot(0) != nil || v.Bytes() != nil {
		t.Error("empty file should expose no slots")
	}
	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if err := v.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestOpenMmap_InvalidBlockSize(t *testing.T) {
	path := writeSlots(t, 8, "a")
	if _, err := OpenMmap(path, 0); err == nil {
		t.Error("expected error for zero block size")
	}
}
