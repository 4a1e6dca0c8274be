package host

import (
	"fmt"
	"time"
)

// ID is the transient integer identity the host assigns to a live object.
// Identities are not reused while the object lives but a re-created object
// always receives a fresh one.
type ID int

// NoID is never assigned to a live object.
const NoID ID = 0

func (id ID) String() string {
	return fmt.Sprintf("#%d", int(id))
}

// Vec2 is a point or vector in world space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BodyType is the physics classification of an object.
type BodyType int

const (
	BodyStatic BodyType = iota
	BodyKinematic
	BodyDynamic
)

func (b BodyType) String() string {
	switch b {
	case BodyStatic:
		return "static"
	case BodyKinematic:
		return "kinematic"
	case BodyDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("body(%d)", int(b))
	}
}

// Transform places a newly created object.
type Transform struct {
	Position  Vec2    `json:"position"`
	Angle     float64 `json:"angle"`
	Direction int     `json:"direction"`
}

// Motor drives a joint.
type Motor struct {
	Enabled  bool
	Speed    float64
	MaxForce float64
}

// Boosts holds the remaining time of a player's timed boosts.
type Boosts struct {
	Speed    time.Duration
	Strength time.Duration
	Energy   float64
}

// PlayerSpec describes a player to be created.
type PlayerSpec struct {
	Name      string
	OwnerID   int
	Team      int
	Transform Transform
}

// ProjectileSpec describes a projectile to be spawned.
type ProjectileSpec struct {
	TypeName       string
	Position       Vec2
	Velocity       Vec2
	Direction      Vec2
	BounceCount    int
	PowerupFlags   uint32
	DamageModifier float64
	Powerups       []Powerup
}

// FireSpec describes a fire node to be spawned.
type FireSpec struct {
	TypeName string
	Position Vec2
	Velocity Vec2
}
