package slp

import "fmt"

// FrameAsTimer renders the HUD countdown string for a given internal
// frame number, assuming the fixed TimerMinutes match length. This is
// a pretty-printing convenience carried over from original_source's
// frameAsTimer; it is one-way (elapsed -> remaining) and is not part
// of the analytical output (spec.md §9).
func FrameAsTimer(frameNum int32) string {
	elapsed := int(frameNum) - FirstPlayableFrame
	if elapsed < 0 {
		elapsed = 0
	}
	mins := elapsed / 3600
	secs := elapsed/60 - mins*60
	frames := elapsed - 60*secs - 3600*mins

	lmins := TimerMinutes - mins
	if secs > 0 || frames > 0 {
		lmins--
	}
	lsecs := 60 - secs
	if frames > 0 {
		lsecs--
	}
	lframes := 0
	if frames > 0 {
		lframes = 60 - frames
	}

	var frameStr string
	if lframes < 6 {
		frameStr = fmt.Sprintf("0%d", int(100*float64(lframes)/60.0))
	} else {
		frameStr = fmt.Sprintf("%d", int(100*float64(lframes)/60.0))
	}

	return fmt.Sprintf("0%d:%02d:%s", lmins, lsecs, frameStr)
}
