package slp

import (
	"errors"
	"testing"
)

func putBE2U(buf []byte, idx int, v uint16) {
	buf[idx] = byte(v >> 8)
	buf[idx+1] = byte(v)
}

func putBE4U(buf []byte, idx int, v uint32) {
	buf[idx] = byte(v >> 24)
	buf[idx+1] = byte(v >> 16)
	buf[idx+2] = byte(v >> 8)
	buf[idx+3] = byte(v)
}

func putBE4S(buf []byte, idx int, v int32) {
	putBE4U(buf, idx, uint32(v))
}

// buildGameStartPayload returns the 419-byte GAME_START payload (everything
// after the event code byte) for a single active human player in port 0,
// version major.minor.rev, stage Final Destination.
func buildGameStartPayload(major, minor, rev byte) []byte {
	payload := make([]byte, 419)
	off := func(absolute int) int { return absolute - 1 }

	payload[off(0x1)] = major
	payload[off(0x2)] = minor
	payload[off(0x3)] = rev

	payload[off(0xD)] = 0 // teams off

	putBE2U(payload, off(0x13), 32) // stage: Final Destination

	// port 0: human, char id 2, 4 stocks
	i0 := 0x65
	payload[off(i0)] = 0x02   // ext char id
	payload[off(i0+1)] = 0x00 // PlayerHuman
	payload[off(i0+2)] = 4    // stocks
	payload[off(i0+3)] = 0    // color
	payload[off(i0+9)] = 0    // team

	// ports 1-3: none
	for p := 1; p < 4; p++ {
		i := 0x65 + 0x24*p
		payload[off(i+1)] = 3 // PlayerNone
	}

	putBE4U(payload, off(0x13D), 0xC0FFEE) // seed

	return payload
}

func buildPreFramePayload(fnum int32, port, follower byte, action uint16) []byte {
	payload := make([]byte, 64)
	off := func(absolute int) int { return absolute - 1 }

	putBE4S(payload, off(0x1), fnum)
	payload[off(0x5)] = port
	payload[off(0x6)] = follower
	putBE4U(payload, off(0x7), 0)      // seed
	putBE2U(payload, off(0xB), action) // action pre
	putBE4U(payload, off(0xD), 0)      // posX
	putBE4U(payload, off(0x11), 0)     // posY
	putBE4U(payload, off(0x15), 0)     // facing
	putBE4U(payload, off(0x19), 0)     // joyX
	putBE4U(payload, off(0x1D), 0)     // joyY
	putBE4U(payload, off(0x21), 0)     // cX
	putBE4U(payload, off(0x25), 0)     // cY
	putBE4U(payload, off(0x29), 0)     // trigger
	putBE4U(payload, off(0x31), 0)     // buttons
	putBE4U(payload, off(0x33), 0)     // physL
	putBE4U(payload, off(0x37), 0)     // physR

	return payload
}

func buildPostFramePayload(fnum int32, port, follower byte, charID byte, action uint16) []byte {
	payload := make([]byte, 52)
	off := func(absolute int) int { return absolute - 1 }

	putBE4S(payload, off(0x1), fnum)
	payload[off(0x5)] = port
	payload[off(0x6)] = follower
	payload[off(0x7)] = charID
	putBE2U(payload, off(0x8), action)
	putBE4U(payload, off(0xA), 0)  // posX
	putBE4U(payload, off(0xE), 0)  // posY
	putBE4U(payload, off(0x12), 0) // facing
	putBE4U(payload, off(0x16), 0) // percent
	putBE4U(payload, off(0x1A), 0) // shield
	payload[off(0x1E)] = 0xFF      // hitWith (no move)
	payload[off(0x1F)] = 0         // combo
	payload[off(0x20)] = 0xFF      // hurtBy
	payload[off(0x21)] = 4         // stocks
	putBE4U(payload, off(0x22), 0) // actionFC

	return payload
}

// buildMinimalReplay assembles a full header + event table + one frame
// (PRE_FRAME/POST_FRAME for port 0 only) + GAME_END + a one-byte metadata
// block, entirely from spec-shaped pieces.
func buildMinimalReplay(major, minor byte) []byte {
	gameStart := buildGameStartPayload(major, minor, 0)
	preFrame := buildPreFramePayload(LoadFrame, 0, 0, 0)
	postFrame := buildPostFramePayload(LoadFrame, 0, 0, 0x02, 0)

	entries := map[byte]uint16{
		EvGameStart: uint16(len(gameStart)),
		EvPreFrame:  uint16(len(preFrame)),
		EvPostFrame: uint16(len(postFrame)),
		EvGameEnd:   3,
	}
	table := buildEventTable(entries)

	var raw []byte
	raw = append(raw, table...)
	raw = append(raw, EvGameStart)
	raw = append(raw, gameStart...)
	raw = append(raw, EvPreFrame)
	raw = append(raw, preFrame...)
	raw = append(raw, EvPostFrame)
	raw = append(raw, postFrame...)
	raw = append(raw, EvGameEnd, 1, 0, 0) // payload: endType=1, 2 pad bytes

	metadata := []byte{markerObjEnd}
	raw = append(raw, metadata...)

	full := buildHeader(uint32(len(raw) - len(metadata)))
	full = append(full, raw...)
	return full
}

func TestDecode_OneFrame(t *testing.T) {
	data := buildMinimalReplay(1, 0)

	replay, err := Decode(data, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if replay.FrameCount != 1 {
		t.Errorf("FrameCount = %d, want 1", replay.FrameCount)
	}
	if !replay.ActivePlayer(0) {
		t.Errorf("expected port 0 active")
	}
	if replay.ActivePlayer(1) {
		t.Errorf("expected port 1 inactive")
	}
	if !replay.Player[0].Frame[0].PrePresent || !replay.Player[0].Frame[0].PostPresent {
		t.Errorf("expected frame 0 to have both pre and post present")
	}
	if replay.Stage != 32 {
		t.Errorf("Stage = %d, want 32", replay.Stage)
	}
	if !replay.HasEnd {
		t.Errorf("expected HasEnd true")
	}
}

func TestDecode_EmptyRaw(t *testing.T) {
	data := buildHeader(0)
	if _, err := Decode(data, nil); !errors.Is(err, ErrEmptyRaw) {
		t.Fatalf("expected ErrEmptyRaw, got %v", err)
	}
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	data := buildMinimalReplay(0, 0)
	if _, err := Decode(data, nil); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecode_RedeclaredEvent(t *testing.T) {
	gameStart := buildGameStartPayload(1, 0, 0)
	preFrame := buildPreFramePayload(LoadFrame, 0, 0, 0)

	entries := map[byte]uint16{
		EvGameStart: uint16(len(gameStart)),
		EvPreFrame:  uint16(len(preFrame)),
		EvPostFrame: 52,
		EvGameEnd:   3,
	}
	base := buildEventTable(entries)
	dup := appendManifestEntry(append([]byte{}, base[2:]...), EvPreFrame, 99)
	table := append([]byte{EvPayloads, byte(len(dup) + 1)}, dup...)

	full := buildHeader(uint32(len(table)))
	full = append(full, table...)

	if _, err := Decode(full, nil); !errors.Is(err, ErrBadEventTable) {
		t.Fatalf("expected ErrBadEventTable, got %v", err)
	}
}
