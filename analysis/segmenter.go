package analysis

import (
	"math"

	"github.com/jimlah42/slippc/slp"
)

// analyzeInteractions builds the per-player interaction timeline
// (C8). Each player's timeline is produced independently from that
// player's point of view; roles (offensive/defensive, punishing/
// sharking vs. edgeguarding/recovering) mirror between the two
// timelines for a given frame, but the tag itself is not shared state.
func analyzeInteractions(r *slp.Replay, a *Analysis, p0, p1 int, th Thresholds) {
	n := int(r.FrameCount)

	selfSinceHitstun := [2]int{math.MaxInt32, math.MaxInt32}
	oppSinceHitstun := [2]int{math.MaxInt32, math.MaxInt32}

	ports := [2]int{p0, p1}
	opps := [2]int{p1, p0}

	current := [2]Dynamic{Neutral, Neutral}
	segStart := [2]int32{0, 0}

	for f := 0; f < n; f++ {
		for i := 0; i < 2; i++ {
			self := frameOf(r, ports[i], f)
			opp := frameOf(r, opps[i], f)
			if self == nil || opp == nil {
				continue
			}

			if self.InHitstun() {
				selfSinceHitstun[i] = 0
			} else if selfSinceHitstun[i] < math.MaxInt32 {
				selfSinceHitstun[i]++
			}
			if opp.InHitstun() {
				oppSinceHitstun[i] = 0
			} else if oppSinceHitstun[i] < math.MaxInt32 {
				oppSinceHitstun[i]++
			}

			tag := classifyDynamic(r.Stage, self, opp, selfSinceHitstun[i], oppSinceHitstun[i], th)

			if f == 0 {
				current[i] = tag
				segStart[i] = self.FrameNum
				continue
			}
			if tag != current[i] {
				a.Players[i].Timeline = append(a.Players[i].Timeline, Segment{
					StartFrame: segStart[i],
					EndFrame:   self.FrameNum - 1,
					Tag:        current[i],
				})
				current[i] = tag
				segStart[i] = self.FrameNum
			}
		}
	}

	for i := 0; i < 2; i++ {
		if n == 0 {
			continue
		}
		last := frameOf(r, ports[i], n-1)
		if last == nil {
			continue
		}
		a.Players[i].Timeline = append(a.Players[i].Timeline, Segment{
			StartFrame: segStart[i],
			EndFrame:   last.FrameNum,
			Tag:        current[i],
		})
	}
}

func frameOf(r *slp.Replay, port, f int) *slp.Frame {
	frames := r.Player[port].Frame
	if f < 0 || f >= len(frames) {
		return nil
	}
	fr := &frames[f]
	if !fr.PrePresent || !fr.PostPresent {
		return nil
	}
	return fr
}

func isOffStage(stage uint16, f *slp.Frame) bool {
	ledge := slp.StageLedge(stage)
	return f.PosXPre > ledge || f.PosXPre < -ledge || f.PosYPre < 0
}

func isAttacking(f *slp.Frame) bool {
	// A nonzero action-frame-counter while not in hitstun or shielding
	// is the closest wire-level proxy for "mid-attack" without a full
	// per-move active-frame table; the action id itself is not checked.
	// hit_with on the *following* frame is what punish attribution
	// actually keys off of.
	return f.ActionFrameCounter > 0 && !f.InHitstun() && !f.IsShielding()
}

func playerDistance(self, opp *slp.Frame) float32 {
	xd := self.PosXPre - opp.PosXPre
	yd := self.PosYPre - opp.PosYPre
	return float32(math.Sqrt(float64(xd*xd + yd*yd)))
}

// classifyDynamic assigns the interaction tag for self's perspective
// on one frame, given how many frames it has been since self and opp
// last exited hitstun. Rules are checked in the order analyzer.h's
// prose implies; the first match wins.
func classifyDynamic(stage uint16, self, opp *slp.Frame, selfSinceHitstun, oppSinceHitstun int, th Thresholds) Dynamic {
	if self.ActionPre.IsDodging() || self.ActionPre.IsAirdodging() ||
		self.ActionPre.IsGrabbed() || self.ActionPre.IsThrown() {
		return Escaping
	}
	if self.ActionPre.InMissedTechState() {
		return Grounding
	}
	if self.ActionPre.InTechState() {
		return Teching
	}

	selfOff := isOffStage(stage, self)
	oppOff := isOffStage(stage, opp)
	selfAirborne := self.Airborne
	oppAirborne := opp.Airborne

	if selfAirborne && selfOff && !self.InHitlag() {
		return Recovering
	}
	if oppAirborne && oppOff && (isAttacking(self) || selfSinceHitstun < th.SharkFrames) {
		return Edgeguarding
	}

	if self.InHitstun() && opp.InHitstun() {
		return Trading
	}

	if !self.InHitstun() && oppSinceHitstun <= th.SharkFrames {
		return Punishing
	}
	if isAttacking(self) && oppSinceHitstun > th.SharkFrames && oppAirborne {
		return Sharking
	}

	if opp.IsShielding() || opp.ActionPre.IsInShieldstun() {
		return Pressuring
	}
	if self.IsShielding() || self.ActionPre.IsInShieldstun() {
		return Defensive
	}

	if oppSinceHitstun <= th.PokeFrames && selfSinceHitstun <= th.PokeFrames &&
		(oppSinceHitstun == 0 || selfSinceHitstun == 0) {
		return Poking
	}

	if isAttacking(self) {
		return Offensive
	}

	if !selfAirborne && !oppAirborne {
		if float64(playerDistance(self, opp)) < th.FootsieDistance {
			return Footsies
		}
		return Positioning
	}

	return Neutral
}
