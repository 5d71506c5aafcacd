package analysis

import "github.com/jimlah42/slippc/slp"

// computeAirtime sums frames where the airborne bit is set (C10).
func computeAirtime(r *slp.Replay, pa *PlayerAnalysis, port int) {
	frames := r.Player[port].Frame
	n := int(r.FrameCount)
	if n > len(frames) {
		n = len(frames)
	}
	for f := 0; f < n; f++ {
		if frames[f].Airborne {
			pa.Counters.AirFrames++
		}
	}
}

// countLCancels tallies every frame reporting a resolved l_cancel
// attempt. Unlike the rising-edge counters below, the event is
// already single-frame in the wire format, so no edge detection is
// needed.
func countLCancels(r *slp.Replay, pa *PlayerAnalysis, port int) {
	frames := r.Player[port].Frame
	n := int(r.FrameCount)
	if n > len(frames) {
		n = len(frames)
	}
	for f := 0; f < n; f++ {
		switch frames[f].LCancel {
		case slp.LCancelSuccess:
			pa.Counters.LCancelSuccess++
		case slp.LCancelFailure:
			pa.Counters.LCancelFailure++
		}
	}
}

// countTechs increments on the first frame of each contiguous run in
// a tech state, splitting by sub-range.
func countTechs(r *slp.Replay, pa *PlayerAnalysis, port int) {
	frames := r.Player[port].Frame
	n := int(r.FrameCount)
	if n > len(frames) {
		n = len(frames)
	}
	inTech := false
	for f := 0; f < n; f++ {
		action := frames[f].ActionPre
		if !action.InTechState() {
			inTech = false
			continue
		}
		if inTech {
			continue
		}
		inTech = true

		switch {
		case action.InMissedTechState():
			pa.Counters.TechMissed++
		case action == slp.ActionPassiveWall || action == slp.ActionPassiveWallJump:
			pa.Counters.TechWall++
		case action == slp.ActionPassiveCeil:
			pa.Counters.TechCeiling++
		case action == slp.ActionPassiveStandF || action == slp.ActionPassiveStandB:
			if action == slp.ActionPassiveStandF {
				pa.Counters.TechForward++
			} else {
				pa.Counters.TechBackward++
			}
		default:
			pa.Counters.TechInPlace++
		}
	}
}

// countLedgegrabs increments on the first frame of each ledge-hang
// episode.
func countLedgegrabs(r *slp.Replay, pa *PlayerAnalysis, port int) {
	frames := r.Player[port].Frame
	n := int(r.FrameCount)
	if n > len(frames) {
		n = len(frames)
	}
	onLedge := false
	for f := 0; f < n; f++ {
		if frames[f].ActionPre.IsOnLedge() {
			if !onLedge {
				pa.Counters.LedgeGrabs++
			}
			onLedge = true
		} else {
			onLedge = false
		}
	}
}

// countDodges increments once per dodge episode, split forward/back/spot.
func countDodges(r *slp.Replay, pa *PlayerAnalysis, port int) {
	frames := r.Player[port].Frame
	n := int(r.FrameCount)
	if n > len(frames) {
		n = len(frames)
	}
	dodging := false
	for f := 0; f < n; f++ {
		action := frames[f].ActionPre
		if !action.IsDodging() {
			dodging = false
			continue
		}
		if dodging {
			continue
		}
		dodging = true

		switch action {
		case slp.ActionEscapeF:
			pa.Counters.DodgesForward++
		case slp.ActionEscapeB:
			pa.Counters.DodgesBackward++
		case slp.ActionEscape:
			pa.Counters.DodgesSpot++
		}
	}
}

// countDashdances matches (Dash, Turn, Dash) in the previous three
// pre-frame actions (Fizzi's heuristic, carried from analyzer.h).
func countDashdances(r *slp.Replay, pa *PlayerAnalysis, port int) {
	frames := r.Player[port].Frame
	n := int(r.FrameCount)
	if n > len(frames) {
		n = len(frames)
	}
	for f := 2; f < n; f++ {
		if frames[f].ActionPre.IsDash() &&
			frames[f-1].ActionPre.IsTurn() &&
			frames[f-2].ActionPre.IsDash() {
			pa.Counters.Dashdances++
		}
	}
}

// countAirdodgesAndWavelands classifies each LandingFallSpecial entry
// by its predecessor action: an airdodge or an aerial-jump/fall state
// makes it a waveland, anything else a plain airdodge landing.
func countAirdodgesAndWavelands(r *slp.Replay, pa *PlayerAnalysis, port int) {
	frames := r.Player[port].Frame
	n := int(r.FrameCount)
	if n > len(frames) {
		n = len(frames)
	}
	landing := false
	for f := 1; f < n; f++ {
		if !frames[f].ActionPre.IsLandingFallSpecial() {
			landing = false
			continue
		}
		if landing {
			continue
		}
		landing = true

		if frames[f-1].ActionPre.IsWavelandPredecessor() {
			pa.Counters.Wavelands++
		} else {
			pa.Counters.Airdodges++
		}
	}
}
