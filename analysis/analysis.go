// Package analysis implements the gameplay-analysis stage (C7-C10):
// given a decoded replay, it classifies moment-to-moment interaction
// dynamics, attributes hits to punishes, and tallies per-player
// mechanical counters.
package analysis

import (
	"github.com/jimlah42/slippc/slp"
)

// Analyze runs the fixed sub-analysis pipeline over a decoded replay
// and returns the resulting Analysis. It requires exactly one 1v1
// pair of human ports; anything else is ErrNot1v1. The passed Replay
// is never modified. An optional Thresholds overrides
// DefaultThresholds(); at most the first value is used.
func Analyze(r *slp.Replay, thresholds ...Thresholds) (*Analysis, error) {
	th := DefaultThresholds()
	if len(thresholds) > 0 {
		th = thresholds[0]
	}

	p0, p1, err := get1v1Ports(r)
	if err != nil {
		return nil, ErrNot1v1
	}

	a := &Analysis{
		ParserVersion:   r.ParserVersion,
		AnalyzerVersion: AnalyzerVersion,
		Stage:           r.Stage,
	}
	a.Players[0].Port = p0
	a.Players[1].Port = p1
	a.Players[0].CharacterID = r.Player[p0].ExtCharID
	a.Players[1].CharacterID = r.Player[p1].ExtCharID

	ports := [2]int{p0, p1}
	for i, p := range ports {
		computeAirtime(r, &a.Players[i], p)
		countLCancels(r, &a.Players[i], p)
		countTechs(r, &a.Players[i], p)
		countLedgegrabs(r, &a.Players[i], p)
		countDodges(r, &a.Players[i], p)
		countDashdances(r, &a.Players[i], p)
		countAirdodgesAndWavelands(r, &a.Players[i], p)
	}

	analyzeInteractions(r, a, p0, p1, th)
	analyzePunishes(r, a, p0, p1, th)

	return a, nil
}

// get1v1Ports finds the exactly-two human-controlled ports the
// analyzer requires (spec.md §4.7 step 1). Follower slots (4-7) are
// never eligible; they belong to a paired leader.
func get1v1Ports(r *slp.Replay) (int, int, error) {
	var humans []int
	for p := 0; p < 4; p++ {
		if r.Player[p].Type == slp.PlayerHuman && r.ActivePlayer(p) {
			humans = append(humans, p)
		}
	}
	if len(humans) != 2 {
		return 0, 0, ErrNot1v1
	}
	return humans[0], humans[1], nil
}

func opponentOf(p0, p1, self int) int {
	if self == p0 {
		return p1
	}
	return p0
}
