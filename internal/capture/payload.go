package capture

import (
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

// Payload is the kind-specific part of an Entity. The set of payloads is
// closed; static scenery and generic dynamic bodies carry none.
type Payload interface {
	isPayload()
}

type PlayerPayload struct {
	Dead         bool
	OwnerID      int
	Team         int
	Loadout      host.Loadout
	Effects      []host.Effect
	Boosts       host.Boosts
	CorpseHealth float64
}

type WeaponPayload struct {
	WeaponKind   string
	Ammo         int
	Durability   float64
	DespawnTimer time.Duration
	BreakOnDrop  bool
	Missile      bool
	Powerups     []host.Powerup
}

type GrenadePayload struct {
	DudChance     float64
	FuseRemaining time.Duration
	Powerups      []host.Powerup
}

type CratePayload struct {
	Contents []string
	Category string
	// Special crates are never rewritten on restore.
	Special bool
}

// TriggerPayload covers the trigger family. Only the parameter block that
// matches the entity's Kind is set.
type TriggerPayload struct {
	Enabled bool
	Targets []host.ID

	Timer       *TimerParams
	Destroy     *DestroyParams
	OnDestroyed *OnDestroyedParams
	BodyType    *host.BodyType
}

type TimerParams struct {
	Interval time.Duration
	Repeat   int
	Running  bool
}

type DestroyParams struct {
	TriggerCount int
	Delay        time.Duration
}

type OnDestroyedParams struct {
	DestroyedCount int
}

// JointPayload covers the joint family. Which references are meaningful
// depends on the entity's Kind.
type JointPayload struct {
	Welded       []host.ID
	TargetObject host.ID
	TargetJoint  host.ID
	PathJoint    host.ID
	RailJoint    host.ID
	Motor        host.Motor
	Length       float64
	// ArrivalIn is the time left until the elevator reached its next node,
	// measured from CapturedAt.
	ArrivalIn time.Duration
}

func (*PlayerPayload) isPayload()  {}
func (*WeaponPayload) isPayload()  {}
func (*GrenadePayload) isPayload() {}
func (*CratePayload) isPayload()   {}
func (*TriggerPayload) isPayload() {}
func (*JointPayload) isPayload()   {}
