package capture

import (
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

func capturePlayer(r *Registry, obj host.Object, _ time.Duration) Payload {
	pl := obj.(host.Player)

	var effects []host.Effect
	for _, e := range pl.Effects() {
		if r.isExcluded(e) {
			continue
		}
		effects = append(effects, e.Clone())
	}

	var loadout host.Loadout
	if l := pl.Loadout(); l != nil {
		loadout = l.Clone()
	}

	return &PlayerPayload{
		Dead:         pl.IsDead(),
		OwnerID:      pl.OwnerID(),
		Team:         pl.Team(),
		Loadout:      loadout,
		Effects:      effects,
		Boosts:       pl.Boosts(),
		CorpseHealth: pl.CorpseHealth(),
	}
}

func restorePlayer(c *Context, p *PlayerPayload, pl host.Player) {
	if p.Loadout != nil {
		if cur := pl.Loadout(); cur == nil || !cur.Equal(p.Loadout) {
			pl.SetLoadout(p.Loadout.Clone())
		}
	}

	// Excluded effects stay untouched on the live player; the rewind that is
	// running right now may depend on one of them.
	var current []host.Effect
	for _, e := range pl.Effects() {
		if !c.isExcluded(e) {
			current = append(current, e)
		}
	}
	if !equalEffects(current, p.Effects) {
		for _, e := range current {
			e.ForceFinish()
		}
		for _, e := range p.Effects {
			pl.ApplyEffect(e.Clone())
		}
	}

	patch(pl.Boosts(), p.Boosts, pl.SetBoosts)
	patch(pl.CorpseHealth(), p.CorpseHealth, pl.SetCorpseHealth)

	if p.Dead && !pl.IsDead() {
		pl.Kill()
	}
}

func equalEffects(a, b []host.Effect) bool {
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
