package host

// Powerup is an opaque modifier attached to a weapon, grenade or projectile.
// Its semantics belong to the powerup subsystem.
type Powerup interface {
	Name() string
	Clone() Powerup
	Equal(Powerup) bool
}

// Effect is an opaque status effect active on a player.
type Effect interface {
	Name() string
	Clone() Effect
	Equal(Effect) bool
	// ForceFinish ends the effect immediately, running its teardown.
	ForceFinish()
}

// Loadout is a player's weapon inventory as owned by the weapons subsystem.
type Loadout interface {
	Clone() Loadout
	Equal(Loadout) bool
}

// ClonePowerups deep-copies a powerup list. A nil list stays nil.
func ClonePowerups(pp []Powerup) []Powerup {
	if pp == nil {
		return nil
	}
	out := make([]Powerup, len(pp))
	for i, p := range pp {
		out[i] = p.Clone()
	}
	return out
}

// EqualPowerups reports whether both lists hold equal powerups in the same order.
func EqualPowerups(a, b []Powerup) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// EqualIDs reports whether both lists hold the same identities in the same order.
func EqualIDs(a, b []ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
