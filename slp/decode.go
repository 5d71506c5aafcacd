package slp

import (
	"fmt"
)

// Decode runs the full C2-C5 pipeline over a complete replay file
// already read into memory: header, event table, event stream, then
// the trailing metadata block. logger may be NopLogger. timerMinutes
// overrides the compiled-in TimerMinutes (used to size each player's
// frame array); at most the first value is used, callers get
// TimerMinutes when none is given.
func Decode(data []byte, logger Logger, timerMinutes ...int) (*Replay, error) {
	if logger == nil {
		logger = NopLogger
	}

	tm := TimerMinutes
	if len(timerMinutes) > 0 && timerMinutes[0] > 0 {
		tm = timerMinutes[0]
	}

	lengthRawStart, cursor, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}
	logger.Debugf("header ok, raw payload length %d bytes", lengthRawStart)

	table, tableBytes, err := decodeEventTable(data, cursor)
	if err != nil {
		return nil, err
	}
	cursor += tableBytes
	remaining := int(lengthRawStart) - tableBytes
	logger.Debugf("event table ok, %d bytes, event stream at offset %d", tableBytes, cursor)

	replay := &Replay{
		ParserVersion:       ParserVersion,
		TimerMinutes:        tm,
		FirstFrame:          FirstPlayableFrame,
		PlayableFrameOffset: PlayableFrameOffset,
	}

	warned := make(map[byte]bool)

	for remaining > 0 {
		code, err := readU8(data, cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: reading event code: %v", ErrTruncated, err)
		}

		size, known := table[code]
		if !known {
			if !warned[code] {
				logger.Warnf("unknown event code 0x%02X encountered, no declared size, skipping 1 byte", code)
				warned[code] = true
			}
			cursor++
			remaining--
			continue
		}

		shift := int(size) + 1
		if shift > remaining {
			return nil, fmt.Errorf("%w: event 0x%02X declares %d bytes but only %d remain", ErrTruncated, code, shift, remaining)
		}
		logger.Debugf("event 0x%02X at offset %d, payload %d bytes", code, cursor, size)

		switch code {
		case EvGameStart:
			if err := decodeGameStart(data, cursor, replay); err != nil {
				return nil, err
			}
			logger.Debugf("GAME_START decoded: v%d.%d.%d", replay.VersionMajor, replay.VersionMinor, replay.VersionRev)
		case EvPreFrame:
			if err := decodePreFrame(data, cursor, replay); err != nil {
				return nil, err
			}
		case EvPostFrame:
			if err := decodePostFrame(data, cursor, replay); err != nil {
				return nil, err
			}
		case EvGameEnd:
			decodeGameEnd(data, cursor, replay)
			logger.Debugf("GAME_END decoded: type=%d", replay.EndType)
		default:
			if !warned[code] {
				logger.Warnf("event code 0x%02X has no dedicated decoder, treating as opaque", code)
				warned[code] = true
			}
		}

		cursor += shift
		remaining -= shift
	}

	if !replay.sawGameStart {
		return nil, fmt.Errorf("%w: no GAME_START event seen", ErrBadEventTable)
	}

	logger.Debugf("metadata at offset %d", cursor)
	metadata, err := decodeMetadata(data, cursor, replay)
	if err != nil {
		return nil, err
	}
	replay.Metadata = metadata

	return replay, nil
}

func maxFrameCount(timerMinutes int) int {
	const fps = 60
	const safetyBuffer = 60
	return -LoadFrame + timerMinutes*60*fps + safetyBuffer
}

func decodeGameStart(data []byte, base int, replay *Replay) error {
	if replay.sawGameStart {
		return ErrDuplicateStart
	}

	major, err := readU8(data, base+0x1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	minor, err := readU8(data, base+0x2)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	rev, err := readU8(data, base+0x3)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if major == 0 {
		return ErrUnsupportedVersion
	}

	replay.VersionMajor = major
	replay.VersionMinor = minor
	replay.VersionRev = rev
	replay.sawGameStart = true

	tagsGated := major >= 2 || minor >= 3

	for p := 0; p < 4; p++ {
		i := 0x65 + 0x24*p
		m := 0x141 + 0x8*p
		k := 0x161 + 0x10*p

		extChar, err := readU8(data, base+i)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		ptype, err := readU8(data, base+i+0x1)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		stocks, err := readU8(data, base+i+0x2)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		color, err := readU8(data, base+i+0x3)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		team, err := readU8(data, base+i+0x9)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		dashBack, err := readBE4U(data, base+m)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		shieldDrop, err := readBE4U(data, base+m+0x4)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}

		pl := &replay.Player[p]
		pl.ExtCharID = extChar
		pl.Type = PlayerType(ptype)
		pl.StartStocks = stocks
		pl.Color = color
		pl.TeamID = team
		pl.DashBack = dashBack
		pl.ShieldDrop = shieldDrop

		if tagsGated {
			tag, err := decodeCSSTag(data, base+k)
			if err != nil {
				return err
			}
			pl.CSSTag = tag
		}

		pl.Frame = make([]Frame, maxFrameCount(replay.TimerMinutes))
		pl.Active = PlayerType(ptype) != PlayerNone
		if pl.Active {
			replay.Player[p+4].Frame = make([]Frame, maxFrameCount(replay.TimerMinutes))
		}
	}

	teams, err := readU8(data, base+0xD)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	replay.Teams = teams != 0

	stage, err := readBE2U(data, base+0x13)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	replay.Stage = stage

	seed, err := readBE4U(data, base+0x13D)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	replay.Seed = seed

	if major >= 2 || minor >= 5 {
		pal, err := readU8(data, base+0x1A1)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		replay.PAL = pal != 0
	}
	if major >= 2 {
		frozen, err := readU8(data, base+0x1A2)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		replay.Frozen = frozen != 0
	}

	if err := requireLen(data, base+0x5, 312); err == nil {
		raw := make([]byte, 312)
		copy(raw, data[base+0x5:base+0x5+312])
		replay.GameStartRaw = raw
	}

	return nil
}

// decodeCSSTag reads the 16-byte Shift-JIS-ish CSS tag as 8 big-endian
// halfwords, matching original_source's off-by-one workaround.
func decodeCSSTag(data []byte, offset int) (string, error) {
	var b []rune
	for n := 0; n < 16; n += 2 {
		v, err := readBE2U(data, offset+n)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		if v == 0 {
			break
		}
		b = append(b, rune(v)+1)
	}
	return string(b), nil
}

func playerIndex(portByte, followerByte byte) int {
	return int(portByte) + 4*int(followerByte)
}

func decodePreFrame(data []byte, base int, replay *Replay) error {
	fnum, err := readBE4S(data, base+0x1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	port, err := readU8(data, base+0x5)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	follower, err := readU8(data, base+0x6)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	p := playerIndex(port, follower)
	f := int(fnum) - LoadFrame
	if p < 0 || p >= 8 || f < 0 {
		return fmt.Errorf("%w: pre-frame index out of range (p=%d f=%d)", ErrTruncated, p, f)
	}

	pl := &replay.Player[p]
	pl.ensureFrame(f)
	fr := &pl.Frame[f]

	fr.FrameNum = fnum
	fr.Alive = true

	seed, err := readBE4U(data, base+0x7)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	action, err := readBE2U(data, base+0xB)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	posX, err := readBE4F(data, base+0xD)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	posY, err := readBE4F(data, base+0x11)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	facing, err := readBE4F(data, base+0x15)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	joyX, err := readBE4F(data, base+0x19)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	joyY, err := readBE4F(data, base+0x1D)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	cX, err := readBE4F(data, base+0x21)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	cY, err := readBE4F(data, base+0x25)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	trigger, err := readBE4F(data, base+0x29)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	buttons, err := readBE4U(data, base+0x31)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	physL, err := readBE4F(data, base+0x33)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	physR, err := readBE4F(data, base+0x37)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	fr.Seed = seed
	fr.ActionPre = ActionState(action)
	fr.PosXPre = posX
	fr.PosYPre = posY
	fr.FacingPre = facing
	fr.JoyX = joyX
	fr.JoyY = joyY
	fr.CX = cX
	fr.CY = cY
	fr.Trigger = trigger
	fr.Buttons = buttons
	fr.PhysL = physL
	fr.PhysR = physR

	if replay.VersionMinor >= 2 {
		ucfX, err := readU8(data, base+0x3B)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		fr.UCFX = ucfX

		if replay.VersionMinor >= 4 {
			percent, err := readBE4F(data, base+0x3C)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			fr.PercentPre = percent
		}
	}

	fr.PrePresent = true
	replay.LastFrame = fnum
	replay.FrameCount = fnum - LoadFrame + 1

	return nil
}

func decodePostFrame(data []byte, base int, replay *Replay) error {
	fnum, err := readBE4S(data, base+0x1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	port, err := readU8(data, base+0x5)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	follower, err := readU8(data, base+0x6)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	p := playerIndex(port, follower)
	f := int(fnum) - LoadFrame
	if p < 0 || p >= 8 || f < 0 {
		return fmt.Errorf("%w: post-frame index out of range (p=%d f=%d)", ErrTruncated, p, f)
	}

	pl := &replay.Player[p]
	pl.ensureFrame(f)
	fr := &pl.Frame[f]

	charID, err := readU8(data, base+0x7)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	action, err := readBE2U(data, base+0x8)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	posX, err := readBE4F(data, base+0xA)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	posY, err := readBE4F(data, base+0xE)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	facing, err := readBE4F(data, base+0x12)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	percent, err := readBE4F(data, base+0x16)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	shield, err := readBE4F(data, base+0x1A)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	hitWith, err := readU8(data, base+0x1E)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	combo, err := readU8(data, base+0x1F)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	hurtBy, err := readU8(data, base+0x20)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	stocks, err := readU8(data, base+0x21)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	actionFC, err := readBE4F(data, base+0x22)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	fr.CharIDPost = charID
	fr.ActionPost = ActionState(action)
	fr.PosXPost = posX
	fr.PosYPost = posY
	fr.FacingPost = facing
	fr.PercentPost = percent
	fr.Shield = shield
	fr.HitWith = hitWith
	fr.Combo = combo
	fr.HurtBy = hurtBy
	fr.Stocks = stocks
	fr.ActionFrameCounter = actionFC

	if replay.VersionMajor >= 2 {
		flags1, err := readU8(data, base+0x26)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		flags2, err := readU8(data, base+0x27)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		flags3, err := readU8(data, base+0x28)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		flags4, err := readU8(data, base+0x29)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		flags5, err := readU8(data, base+0x2A)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		hitstun, err := readBE4U(data, base+0x2B)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		airborne, err := readU8(data, base+0x2F)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		groundID, err := readBE2U(data, base+0x30)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		jumps, err := readU8(data, base+0x32)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		lCancel, err := readU8(data, base+0x33)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}

		fr.Flags1 = flags1
		fr.Flags2 = flags2
		fr.Flags3 = flags3
		fr.Flags4 = flags4
		fr.Flags5 = flags5
		fr.Hitstun = hitstun
		fr.Airborne = airborne != 0
		fr.GroundID = groundID
		fr.JumpsUsed = jumps
		fr.LCancel = LCancelState(lCancel)
	}

	fr.PostPresent = true

	return nil
}

func decodeGameEnd(data []byte, base int, replay *Replay) {
	endType, err := readU8(data, base+0x1)
	if err == nil {
		replay.EndType = EndType(endType)
		replay.HasEnd = true
	}
	if replay.VersionMajor >= 2 {
		if lras, err := readU8(data, base+0x2); err == nil {
			replay.LRAS = int8(lras)
		}
	}
}
