package slp

import (
	"errors"
	"testing"
)

func appendManifestEntry(b []byte, code byte, size uint16) []byte {
	return append(b, code, byte(size>>8), byte(size))
}

func buildEventTable(entries map[byte]uint16) []byte {
	var manifest []byte
	// deterministic order: mandatory events first, in canonical order,
	// then any extras.
	order := []byte{EvGameStart, EvPreFrame, EvPostFrame, EvGameEnd}
	seen := map[byte]bool{}
	for _, code := range order {
		if size, ok := entries[code]; ok {
			manifest = appendManifestEntry(manifest, code, size)
			seen[code] = true
		}
	}
	for code, size := range entries {
		if !seen[code] {
			manifest = appendManifestEntry(manifest, code, size)
		}
	}

	sizeByte := byte(len(manifest) + 1)
	out := []byte{EvPayloads, sizeByte}
	out = append(out, manifest...)
	return out
}

func fullMandatoryTable() map[byte]uint16 {
	return map[byte]uint16{
		EvGameStart: 419,
		EvPreFrame:  64,
		EvPostFrame: 52,
		EvGameEnd:   3,
	}
}

func TestDecodeEventTable_OK(t *testing.T) {
	data := buildEventTable(fullMandatoryTable())
	table, consumed, err := decodeEventTable(data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumed != len(data) {
		t.Errorf("consumed = %d, want %d", consumed, len(data))
	}
	if table[EvPreFrame] != 64 {
		t.Errorf("PRE_FRAME size = %d, want 64", table[EvPreFrame])
	}
	if table[EvPayloads] != uint16(len(data)-1) {
		t.Errorf("EV_PAYLOADS size = %d, want %d", table[EvPayloads], len(data)-1)
	}
}

func TestDecodeEventTable_NotFirst(t *testing.T) {
	data := []byte{EvGameStart, 0x00}
	if _, _, err := decodeEventTable(data, 0); !errors.Is(err, ErrBadEventTable) {
		t.Fatalf("expected ErrBadEventTable, got %v", err)
	}
}

func TestDecodeEventTable_Redeclared(t *testing.T) {
	entries := fullMandatoryTable()
	base := buildEventTable(entries)
	// manually append a duplicate PRE_FRAME entry and fix the size byte
	dup := appendManifestEntry(append([]byte{}, base[2:]...), EvPreFrame, 99)
	out := []byte{EvPayloads, byte(len(dup) + 1)}
	out = append(out, dup...)

	if _, _, err := decodeEventTable(out, 0); !errors.Is(err, ErrBadEventTable) {
		t.Fatalf("expected ErrBadEventTable, got %v", err)
	}
}

func TestDecodeEventTable_MissingMandatory(t *testing.T) {
	entries := fullMandatoryTable()
	delete(entries, EvGameEnd)
	data := buildEventTable(entries)
	if _, _, err := decodeEventTable(data, 0); !errors.Is(err, ErrBadEventTable) {
		t.Fatalf("expected ErrBadEventTable, got %v", err)
	}
}
