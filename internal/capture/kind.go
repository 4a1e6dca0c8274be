package capture

// Kind tags the capture variant of an Entity and selects its restore strategy.
type Kind int

const (
	KindStatic Kind = iota
	KindDynamic
	KindPlayer
	KindWeapon
	KindGrenade
	KindCrate
	KindTrigger
	KindTimerTrigger
	KindDestroyTargetsTrigger
	KindOnDestroyedTrigger
	KindChangeBodyTypeTrigger
	KindWeldJoint
	KindTargetObjectJoint
	KindDistanceJoint
	KindElevatorJoint
	KindRailJoint
)

var kindNames = map[Kind]string{
	KindStatic:                "static",
	KindDynamic:               "dynamic",
	KindPlayer:                "player",
	KindWeapon:                "weapon",
	KindGrenade:               "grenade",
	KindCrate:                 "crate",
	KindTrigger:               "trigger",
	KindTimerTrigger:          "timer-trigger",
	KindDestroyTargetsTrigger: "destroy-targets-trigger",
	KindOnDestroyedTrigger:    "on-destroyed-trigger",
	KindChangeBodyTypeTrigger: "change-body-type-trigger",
	KindWeldJoint:             "weld-joint",
	KindTargetObjectJoint:     "target-object-joint",
	KindDistanceJoint:         "distance-joint",
	KindElevatorJoint:         "elevator-joint",
	KindRailJoint:             "rail-joint",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// IsTrigger reports whether the kind is a trigger or one of its sub-kinds.
func (k Kind) IsTrigger() bool {
	return k >= KindTrigger && k <= KindChangeBodyTypeTrigger
}

// IsJoint reports whether the kind is one of the joint kinds.
func (k Kind) IsJoint() bool {
	return k >= KindWeldJoint && k <= KindRailJoint
}

// RestoreRank orders relational entities within a restore pass. Lower ranks
// restore first: plain triggers and most joints, then target-object joints,
// then destroy-targets triggers.
func (k Kind) RestoreRank() int {
	switch k {
	case KindTargetObjectJoint:
		return 1
	case KindDestroyTargetsTrigger:
		return 2
	default:
		return 0
	}
}
