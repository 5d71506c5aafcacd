package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimlah42/slippc/slp"
)

func TestToReplayJSON(t *testing.T) {
	r := &slp.Replay{
		VersionMajor: 3,
		Stage:        32,
		GameStartRaw: []byte{0x01, 0x02, 0x03},
	}
	r.Player[0].Type = slp.PlayerHuman
	r.Player[0].Active = true
	r.Player[0].ExtCharID = 0x02

	out := toReplayJSON(r)

	assert.Equal(t, byte(3), out.VersionMajor)
	assert.Equal(t, "AQID", out.GameStartRaw)
	if assert.Len(t, out.Players, 1) {
		assert.Equal(t, 0, out.Players[0].Port)
		assert.Equal(t, byte(0x02), out.Players[0].ExtCharID)
	}
}

func TestPickLevel(t *testing.T) {
	assert.Equal(t, "debug", pickLevel("debug", "warn"))
	assert.Equal(t, "warn", pickLevel("info", "warn"))
	assert.Equal(t, "info", pickLevel("info", ""))
}
