package analysis

import "github.com/jimlah42/slippc/slp"

// analyzePunishes attributes hits to their attacker and coalesces
// them into punish records (C9): each player's Punishes are the runs
// they landed on their opponent.
func analyzePunishes(r *slp.Replay, a *Analysis, p0, p1 int, th Thresholds) {
	for i := range a.Players {
		opp := opponentOf(p0, p1, a.Players[i].Port)
		a.Players[i].Punishes = punishesAgainst(r, opp, th)
	}
}

// punishesAgainst walks defenderPort's frames and coalesces hits into
// maximal runs, per spec.md §4.9.
func punishesAgainst(r *slp.Replay, defenderPort int, th Thresholds) []Punish {
	frames := r.Player[defenderPort].Frame
	n := int(r.FrameCount)
	if n > len(frames) {
		n = len(frames)
	}

	var punishes []Punish
	var cur *Punish
	var seenMoveIDs map[byte]bool
	framesSinceHit := 0

	flush := func(endF int) {
		if cur == nil {
			return
		}
		last := &frames[endF]
		cur.EndFrame = last.FrameNum
		cur.EndPercent = last.PercentPost
		if last.IsDead() {
			cur.EndedBy = EndedByKill
			cur.Death = deathDirection(last.ActionPost)
		} else if endF == n-1 {
			cur.EndedBy = EndedByTimeout
		} else if last.ActionPre.IsDodging() || last.ActionPre.IsAirdodging() || last.ActionPre.IsGrabbed() {
			cur.EndedBy = EndedByEscape
		} else if cur.EndPercent < cur.StartPercent {
			cur.EndedBy = EndedByReset
		} else {
			cur.EndedBy = EndedByCounter
		}
		punishes = append(punishes, *cur)
		cur = nil
		seenMoveIDs = nil
	}

	for f := 1; f < n; f++ {
		fr := &frames[f]
		prev := &frames[f-1]

		hit := fr.HitWith != 0 || (fr.PercentPost > prev.PercentPost && fr.InHitstun())

		if hit {
			if cur == nil {
				cur = &Punish{
					StartFrame:   fr.FrameNum,
					StartPercent: prev.PercentPost,
				}
				seenMoveIDs = make(map[byte]bool)
			}
			cur.Hits++
			if fr.HitWith != 0 && !seenMoveIDs[fr.HitWith] {
				seenMoveIDs[fr.HitWith] = true
				cur.MoveIDs = append(cur.MoveIDs, fr.HitWith)
			}
			framesSinceHit = 0
		} else if cur != nil {
			framesSinceHit++
			stillInHitstun := fr.InHitstun()
			if !stillInHitstun && framesSinceHit > th.SharkFrames {
				flush(f - 1)
			}
		}
	}
	if cur != nil {
		flush(n - 1)
	}

	return punishes
}

// deathDirection mirrors analyzer.h's inline deathDirection helper.
func deathDirection(action slp.ActionState) DeathDirection {
	switch action {
	case slp.ActionDeadDown:
		return DirDown
	case slp.ActionDeadLeft:
		return DirLeft
	case slp.ActionDeadRight:
		return DirRight
	}
	if action < slp.ActionSleep {
		return DirUp
	}
	return DirNone
}
