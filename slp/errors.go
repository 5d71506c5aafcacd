package slp

import "errors"

// Decode error kinds. All decode failures are fatal for the replay being
// parsed; callers get one of these wrapped with context via fmt.Errorf.
var (
	ErrBadMagic           = errors.New("slp: container header magic mismatch")
	ErrEmptyRaw           = errors.New("slp: raw payload length is zero")
	ErrBadEventTable      = errors.New("slp: malformed event payload table")
	ErrTruncated          = errors.New("slp: byte stream truncated")
	ErrDuplicateStart     = errors.New("slp: duplicate GAME_START event")
	ErrUnsupportedVersion = errors.New("slp: unsupported replay version")
	ErrBadMetadata        = errors.New("slp: malformed metadata block")
)
