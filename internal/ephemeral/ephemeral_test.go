package ephemeral

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/sandbox"
)

func bullet(x float64) host.ProjectileSpec {
	return host.ProjectileSpec{
		TypeName:       "Bullet",
		Position:       host.Vec2{X: x},
		Velocity:       host.Vec2{X: 100},
		Direction:      host.Vec2{X: 1},
		BounceCount:    1,
		PowerupFlags:   4,
		DamageModifier: 1.5,
		Powerups:       []host.Powerup{&sandbox.Powerup{Kind: "explosive", Level: 2}},
	}
}

func TestCaptureProjectiles(t *testing.T) {
	w := sandbox.NewWorld()
	a := w.SpawnProjectile(bullet(0))
	b := w.SpawnProjectile(bullet(5))
	b.Remove()

	got := CaptureProjectiles(w)

	testutil.AssertEqual(t, "count", len(got), 1)
	testutil.AssertEqual(t, "id", got[0].ID, a.ID())
	testutil.AssertEqual(t, "bounces", got[0].BounceCount, 1)
	testutil.AssertEqual(t, "powerups", len(got[0].Powerups), 1)
}

func TestProjectile_Restore(t *testing.T) {
	tests := map[string]struct {
		change    func(w *sandbox.World, p host.Projectile)
		expNew    bool
		expWrites int
	}{
		"unchanged": {
			change: func(*sandbox.World, host.Projectile) {},
		},
		"moved": {
			change: func(w *sandbox.World, _ host.Projectile) {
				w.Advance(sandbox.DefaultStep)
			},
			expWrites: 1,
		},
		"bounced and stripped": {
			change: func(_ *sandbox.World, p host.Projectile) {
				p.SetBounceCount(3)
				p.SetPowerups(nil)
			},
			expWrites: 2,
		},
		"removed": {
			change: func(_ *sandbox.World, p host.Projectile) {
				p.Remove()
			},
			expNew: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := sandbox.NewWorld()
			p := w.SpawnProjectile(bullet(0))
			captured := CaptureProjectiles(w)[0]

			tt.change(w, p)
			w.ResetWrites()

			got := captured.Restore(w)

			testutil.AssertEqual(t, "new", got.ID() != p.ID(), tt.expNew)
			if !tt.expNew {
				testutil.AssertEqual(t, "writes", w.Writes(), tt.expWrites)
			}
			testutil.AssertEqual(t, "position", got.Position(), captured.Position)
			testutil.AssertEqual(t, "bounces", got.BounceCount(), captured.BounceCount)
			testutil.AssertEqual(t, "powerups", host.EqualPowerups(got.Powerups(), captured.Powerups), true)
		})
	}
}

func TestPruneProjectiles(t *testing.T) {
	w := sandbox.NewWorld()
	kept := w.SpawnProjectile(bullet(0))
	keep := CaptureProjectiles(w)
	w.SpawnProjectile(bullet(1))
	w.SpawnProjectile(bullet(2))

	testutil.AssertEqual(t, "pruned", PruneProjectiles(w, keep), 2)

	live := w.Projectiles()
	testutil.AssertEqual(t, "live", len(live), 1)
	testutil.AssertEqual(t, "kept", live[0].ID(), kept.ID())
	testutil.AssertEqual(t, "idempotent", PruneProjectiles(w, keep), 0)
}

func TestFires(t *testing.T) {
	w := sandbox.NewWorld()
	w.SpawnFire(host.FireSpec{TypeName: "Fire", Position: host.Vec2{X: 1}})
	w.SpawnFire(host.FireSpec{TypeName: "Fire", Position: host.Vec2{X: 2}})
	captured := CaptureFires(w)

	w.ClearFire()
	w.SpawnFire(host.FireSpec{TypeName: "Fire", Position: host.Vec2{X: 9}})

	ResetFires(w, captured)

	live := w.FireNodes()
	testutil.AssertEqual(t, "count", len(live), 2)
	testutil.AssertEqual(t, "first", live[0].Position(), host.Vec2{X: 1})
	testutil.AssertEqual(t, "second", live[1].Position(), host.Vec2{X: 2})
}
