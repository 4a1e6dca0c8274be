// Package ephemeral captures short-lived objects that nothing else refers to:
// projectiles and fire nodes. They are never remapped.
package ephemeral

import (
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

// Projectile is a captured projectile.
type Projectile struct {
	ID             host.ID
	TypeName       string
	Position       host.Vec2
	Velocity       host.Vec2
	Direction      host.Vec2
	BounceCount    int
	PowerupFlags   uint32
	DamageModifier float64
	Powerups       []host.Powerup
}

// CaptureProjectiles reads every live projectile.
func CaptureProjectiles(w host.World) []Projectile {
	live := w.Projectiles()
	out := make([]Projectile, 0, len(live))
	for _, p := range live {
		if p.IsRemoved() {
			continue
		}
		out = append(out, Projectile{
			ID:             p.ID(),
			TypeName:       p.TypeName(),
			Position:       p.Position(),
			Velocity:       p.Velocity(),
			Direction:      p.Direction(),
			BounceCount:    p.BounceCount(),
			PowerupFlags:   p.PowerupFlags(),
			DamageModifier: p.DamageModifier(),
			Powerups:       host.ClonePowerups(p.Powerups()),
		})
	}
	return out
}

// Restore re-spawns the projectile if it is gone, otherwise patches the
// fields that changed.
func (s Projectile) Restore(w host.World) host.Projectile {
	p := w.ProjectileByID(s.ID)
	if p == nil || p.IsRemoved() {
		return w.SpawnProjectile(host.ProjectileSpec{
			TypeName:       s.TypeName,
			Position:       s.Position,
			Velocity:       s.Velocity,
			Direction:      s.Direction,
			BounceCount:    s.BounceCount,
			PowerupFlags:   s.PowerupFlags,
			DamageModifier: s.DamageModifier,
			Powerups:       host.ClonePowerups(s.Powerups),
		})
	}

	if p.Position() != s.Position {
		p.SetPosition(s.Position)
	}
	if p.Velocity() != s.Velocity {
		p.SetVelocity(s.Velocity)
	}
	if p.Direction() != s.Direction {
		p.SetDirection(s.Direction)
	}
	if p.BounceCount() != s.BounceCount {
		p.SetBounceCount(s.BounceCount)
	}
	if p.PowerupFlags() != s.PowerupFlags {
		p.SetPowerupFlags(s.PowerupFlags)
	}
	if p.DamageModifier() != s.DamageModifier {
		p.SetDamageModifier(s.DamageModifier)
	}
	if !host.EqualPowerups(p.Powerups(), s.Powerups) {
		p.SetPowerups(host.ClonePowerups(s.Powerups))
	}
	return p
}

// Fire is a captured fire node.
type Fire struct {
	ID       host.ID
	TypeName string
	Position host.Vec2
	Velocity host.Vec2
}

// CaptureFires reads every live fire node.
func CaptureFires(w host.World) []Fire {
	live := w.FireNodes()
	out := make([]Fire, 0, len(live))
	for _, f := range live {
		out = append(out, Fire{
			ID:       f.ID(),
			TypeName: f.TypeName(),
			Position: f.Position(),
			Velocity: f.Velocity(),
		})
	}
	return out
}

// ResetFires ends every live fire node and spawns the captured ones. The host
// cannot remove fire selectively.
func ResetFires(w host.World, fires []Fire) {
	w.ClearFire()
	for _, f := range fires {
		w.SpawnFire(host.FireSpec{
			TypeName: f.TypeName,
			Position: f.Position,
			Velocity: f.Velocity,
		})
	}
}

// PruneProjectiles removes every live projectile not present in keep and
// returns how many were removed.
func PruneProjectiles(w host.World, keep []Projectile) int {
	ids := make(map[host.ID]struct{}, len(keep))
	for _, p := range keep {
		ids[p.ID] = struct{}{}
	}
	n := 0
	for _, p := range w.Projectiles() {
		if p.IsRemoved() {
			continue
		}
		if _, ok := ids[p.ID()]; !ok {
			p.Remove()
			n++
		}
	}
	return n
}
