package slp

// ActionState is the 16-bit opaque animation/state id read from
// action_pre / action_post. The named ranges below are the exact
// inclusive bounds analyzer.h checks against; changing a bound
// silently breaks segmentation (spec.md §9), so these are explicit
// enumerations rather than derived values.
type ActionState uint16

const (
	ActionDeadDown ActionState = iota
	ActionDeadLeft
	ActionDeadRight
	ActionDeadDownN
	ActionDeadLeftN
	ActionDeadRightN
	ActionDeadUp
	ActionDeadUpStar
	ActionDeadUpStarIce
	ActionDeadUpFall
	ActionDeadUpFallHitCamera
	ActionDeadUpFallHitCameraFlat
	ActionDeadUpFallIce
	ActionDeadUpFallHitCameraIce
	ActionSleep
	ActionRebirth
	ActionRebirthWait
	ActionWait
	ActionWalkSlow
	ActionWalkMiddle
	ActionWalkFast
	ActionTurn
	ActionTurnRun
	ActionDash
	ActionRun
	ActionRunDirect
	ActionRunBrake
	ActionKneeBend
	ActionJumpF
	ActionJumpB
	ActionJumpAerialF
	ActionJumpAerialB
	ActionFall
	ActionFallF
	ActionFallB
	ActionFallAerial
	ActionFallAerialF
	ActionFallAerialB
	ActionFallSpecial
	ActionFallSpecialF
	ActionFallSpecialB
	ActionDamageFall
	ActionSquat
	ActionSquatWait
	ActionSquatRv
	ActionLanding
	ActionLandingFallSpecial
)

// Damaged / hitstun states, DamageHi1..DamageFlyRoll inclusive.
const (
	ActionDamageHi1 ActionState = 0x4B + iota
	ActionDamageHi2
	ActionDamageHi3
	ActionDamageN1
	ActionDamageN2
	ActionDamageN3
	ActionDamageLw1
	ActionDamageLw2
	ActionDamageLw3
	ActionDamageAir1
	ActionDamageAir2
	ActionDamageAir3
	ActionDamageFlyHi
	ActionDamageFlyN
	ActionDamageFlyLw
	ActionDamageFlyTop
	ActionDamageFlyRoll
)

// Shield family, placed below the tech states so ranges never overlap.
const (
	ActionGuardOn ActionState = 0xB0 + iota
	ActionGuard
	ActionGuardOff
	ActionGuardReflect
	ActionGuardCounter
	ActionGuardSetOff
)

// Missed-tech / floor-tech / wall-and-ceiling-tech states.
// DownBoundU..DownSpotD is the missed-tech range (Grounding dynamic).
// DownBoundU..PassiveStandB is the floor-tech range, excluding wall
// and ceiling techs. DownBoundU..PassiveCeil includes wall/ceiling.
const (
	ActionDownBoundU ActionState = 0xB7 + iota
	ActionDownWaitD
	ActionDownWaitU
	ActionDownDamageD
	ActionDownDamageU
	ActionDownStandD
	ActionDownStandU
	ActionDownAttackD
	ActionDownAttackU
	ActionDownForwardD
	ActionDownForwardU
	ActionDownBackD
	ActionDownBackU
	ActionDownSpotD
	ActionPassive
	ActionPassiveStandF
	ActionPassiveStandB
	ActionPassiveWall
	ActionPassiveWallJump
	ActionPassiveCeil
)

// Grab and throw states.
const (
	ActionCapturePulledHi ActionState = 0xCB + iota
	ActionCapturePulledHiN
	ActionCaptureWaitHi
	ActionCaptureDamageHi
	ActionCapturePulledLw
	ActionCapturePulledLwN
	ActionCaptureWaitLw
	ActionCaptureDamageLw
	ActionCaptureCut
	ActionCaptureJump
	ActionCaptureNeck
	ActionCaptureFoot
	ActionThrownF
	ActionThrownB
	ActionThrownHi
	ActionThrownLw
	ActionThrownLwWomen
)

// Dodge / escape states. EscapeF..Escape covers forward/backward/spot
// dodge; EscapeAir is the airdodge, checked separately.
const (
	ActionEscapeF ActionState = 0xE4 + iota
	ActionEscapeB
	ActionEscape
	ActionEscapeAir
)

const (
	ActionCliffCatch ActionState = 0xFB + iota
	ActionCliffWait
	ActionCliffClimbSlow
	ActionCliffClimbQuick
	ActionCliffAttackSlow
	ActionCliffAttackQuick
	ActionCliffEscapeSlow
	ActionCliffEscapeQuick
)

// InDamagedRange reports whether the action id lies in
// DamageHi1..DamageFlyRoll; Frame.InHitstun combines it with the
// flags_4 bit and the tumble check. Exported so the analysis package
// can classify interactions without duplicating the range tables.
func (a ActionState) InDamagedRange() bool {
	return a >= ActionDamageHi1 && a <= ActionDamageFlyRoll
}

func (a ActionState) InTumble() bool {
	return a == ActionDamageFall
}

func (a ActionState) InMissedTechState() bool {
	return a >= ActionDownBoundU && a <= ActionDownSpotD
}

func (a ActionState) InFloorTechState() bool {
	return a >= ActionDownBoundU && a <= ActionPassiveStandB
}

func (a ActionState) InTechState() bool {
	return a >= ActionDownBoundU && a <= ActionPassiveCeil
}

func (a ActionState) IsDodging() bool {
	return a >= ActionEscapeF && a <= ActionEscape
}

func (a ActionState) IsAirdodging() bool {
	return a == ActionEscapeAir
}

func (a ActionState) IsSpotdodging() bool {
	return a == ActionEscape
}

func (a ActionState) IsGrabbed() bool {
	return a >= ActionCapturePulledHi && a <= ActionCaptureFoot
}

func (a ActionState) IsThrown() bool {
	return a >= ActionThrownF && a <= ActionThrownLwWomen
}

func (a ActionState) IsInShieldstun() bool {
	return a == ActionGuardSetOff
}

func (a ActionState) IsOnLedge() bool {
	return a == ActionCliffWait
}

func (a ActionState) IsWavelandPredecessor() bool {
	return a == ActionEscapeAir || (a >= ActionKneeBend && a <= ActionFallAerialB)
}

func (a ActionState) IsDead() bool {
	return a < ActionSleep
}

func (a ActionState) IsJumpsquat() bool {
	return a == ActionKneeBend
}

func (a ActionState) IsDash() bool {
	return a == ActionDash
}

func (a ActionState) IsTurn() bool {
	return a == ActionTurn
}

func (a ActionState) IsLandingFallSpecial() bool {
	return a == ActionLandingFallSpecial
}

// stageLedgeX gives the ledge x-offset for a given stage id, matching
// analyzer.h's Stage::ledge[] table. Unknown stages fall back to
// Final Destination's geometry rather than zero, since a zero bound
// would make every position "off-stage".
var stageLedgeX = map[uint16]float32{
	2:  63.0,  // Fountain of Dreams
	3:  85.5,  // Pokemon Stadium
	8:  58.0,  // Yoshi's Story
	28: 77.0,  // Dream Land N64
	31: 68.4,  // Battlefield
	32: 85.6,  // Final Destination
}

func stageLedge(stage uint16) float32 {
	if v, ok := stageLedgeX[stage]; ok {
		return v
	}
	return stageLedgeX[32]
}

// StageLedge exposes the ledge x-offset lookup to other packages
// (the analyzer's off-stage test).
func StageLedge(stage uint16) float32 {
	return stageLedge(stage)
}
