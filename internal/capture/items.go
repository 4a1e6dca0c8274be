package capture

import (
	"slices"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

// AmmoOverridePowerup is the name of the one-shot powerup that sets a weapon's
// ammo when it is next picked up.
const AmmoOverridePowerup = "ammo-override"

// AmmoOverride is injected into a weapon whose ammo cannot be written directly.
type AmmoOverride struct {
	Ammo int
}

func (a *AmmoOverride) Name() string { return AmmoOverridePowerup }

func (a *AmmoOverride) Clone() host.Powerup {
	c := *a
	return &c
}

func (a *AmmoOverride) Equal(o host.Powerup) bool {
	other, ok := o.(*AmmoOverride)
	return ok && other.Ammo == a.Ammo
}

func captureWeapon(_ *Registry, obj host.Object, _ time.Duration) Payload {
	w := obj.(host.WeaponItem)
	return &WeaponPayload{
		WeaponKind:   w.WeaponKind(),
		Ammo:         w.Ammo(),
		Durability:   w.Durability(),
		DespawnTimer: w.DespawnTimer(),
		BreakOnDrop:  w.BreakOnDrop(),
		Missile:      w.IsMissile(),
		Powerups:     withoutAmmoOverride(host.ClonePowerups(w.Powerups())),
	}
}

func restoreWeapon(p *WeaponPayload, w host.WeaponItem) {
	patch(w.DespawnTimer(), p.DespawnTimer, w.SetDespawnTimer)
	patch(w.BreakOnDrop(), p.BreakOnDrop, w.SetBreakOnDrop)
	patch(w.IsMissile(), p.Missile, w.SetMissile)
	patch(w.Durability(), p.Durability, w.SetDurability)

	want := host.ClonePowerups(p.Powerups)
	if w.Ammo() != p.Ammo {
		want = append(want, &AmmoOverride{Ammo: p.Ammo})
	}
	if !host.EqualPowerups(w.Powerups(), want) {
		w.SetPowerups(want)
	}
}

// withoutAmmoOverride drops pending overrides so a capture records the ammo
// the weapon reports, not a restore still waiting to apply.
func withoutAmmoOverride(pp []host.Powerup) []host.Powerup {
	return slices.DeleteFunc(pp, func(p host.Powerup) bool {
		return p.Name() == AmmoOverridePowerup
	})
}

func captureGrenade(_ *Registry, obj host.Object, _ time.Duration) Payload {
	g := obj.(host.Grenade)
	return &GrenadePayload{
		DudChance:     g.DudChance(),
		FuseRemaining: g.FuseRemaining(),
		Powerups:      host.ClonePowerups(g.Powerups()),
	}
}

func restoreGrenade(p *GrenadePayload, g host.Grenade) {
	patch(g.DudChance(), p.DudChance, g.SetDudChance)
	patch(g.FuseRemaining(), p.FuseRemaining, g.SetFuseRemaining)
	if !host.EqualPowerups(g.Powerups(), p.Powerups) {
		g.SetPowerups(host.ClonePowerups(p.Powerups))
	}
}

func captureCrate(_ *Registry, obj host.Object, _ time.Duration) Payload {
	c := obj.(host.Crate)
	return &CratePayload{
		Contents: slices.Clone(c.Contents()),
		Category: c.Category(),
		Special:  c.IsSpecial(),
	}
}

func restoreCrate(p *CratePayload, c host.Crate) {
	if p.Special {
		return
	}
	if !slices.Equal(c.Contents(), p.Contents) {
		c.SetContents(slices.Clone(p.Contents))
	}
	patch(c.Category(), p.Category, c.SetCategory)
}
