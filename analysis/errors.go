package analysis

import "errors"

// ErrNot1v1 is returned when a replay does not have exactly two
// human-controlled ports, the only shape the analyzer understands.
var ErrNot1v1 = errors.New("analysis: replay is not a 1v1 human match")
