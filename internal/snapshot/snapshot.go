package snapshot

import (
	"slices"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/capture"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/ephemeral"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

// Snapshot is a complete, immutable capture of the world. Accessors return
// copies of the underlying slices.
type Snapshot struct {
	id         uint64
	elapsed    time.Duration
	capturedAt time.Time

	static     []capture.Entity
	dynamic    []capture.Entity
	additional []capture.Entity

	fires       []ephemeral.Fire
	projectiles []ephemeral.Projectile

	magic       Blob
	entities    Blob
	spawnChance Blob

	dynamicIDs    map[host.ID]struct{}
	projectileIDs map[host.ID]struct{}
}

func (s *Snapshot) ID() uint64 { return s.id }

// Elapsed is the simulation clock when the capture began.
func (s *Snapshot) Elapsed() time.Duration { return s.elapsed }

// CapturedAt is the wall clock when the capture began.
func (s *Snapshot) CapturedAt() time.Time { return s.capturedAt }

func (s *Snapshot) Static() []capture.Entity     { return slices.Clone(s.static) }
func (s *Snapshot) Dynamic() []capture.Entity    { return slices.Clone(s.dynamic) }
func (s *Snapshot) Additional() []capture.Entity { return slices.Clone(s.additional) }

func (s *Snapshot) Fires() []ephemeral.Fire             { return slices.Clone(s.fires) }
func (s *Snapshot) Projectiles() []ephemeral.Projectile { return slices.Clone(s.projectiles) }

func (s *Snapshot) Magic() Blob       { return s.magic }
func (s *Snapshot) Entities() Blob    { return s.entities }
func (s *Snapshot) SpawnChance() Blob { return s.spawnChance }

// EntityCount is the number of captured static, additional and dynamic entities.
func (s *Snapshot) EntityCount() int {
	return len(s.static) + len(s.additional) + len(s.dynamic)
}

// HasDynamic reports whether id was a live dynamic object at capture time.
func (s *Snapshot) HasDynamic(id host.ID) bool {
	_, ok := s.dynamicIDs[id]
	return ok
}

// HasProjectile reports whether id was a live projectile at capture time.
func (s *Snapshot) HasProjectile(id host.ID) bool {
	_, ok := s.projectileIDs[id]
	return ok
}

func (s *Snapshot) index() {
	s.dynamicIDs = make(map[host.ID]struct{}, len(s.dynamic))
	for _, e := range s.dynamic {
		s.dynamicIDs[e.OldID] = struct{}{}
	}
	s.projectileIDs = make(map[host.ID]struct{}, len(s.projectiles))
	for _, p := range s.projectiles {
		s.projectileIDs[p.ID] = struct{}{}
	}
}
