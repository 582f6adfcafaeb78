package systems

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/skyflight/pkg/components"
	"github.com/decker502/skyflight/pkg/ecs"
)

// ParticleSystem advances every emitter's particle buffer once per frame.
//
// Particles are owned by the buffer of the emitter that launched them. After
// launch they no longer reference the plane, so the system only needs the
// EmitterComponent to tick and enumerate them.
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{
		EntityManager: em,
	}
}

// Update expires and moves the particles of all emitters.
// dt is the delta time in seconds since the last frame.
func (ps *ParticleSystem) Update(dt float64) {
	for _, emitter := range ps.emitters() {
		emitter.Buffer.Tick(float32(dt))
	}
}

// Renderables yields one transform per live particle, emitter by emitter,
// oldest particle first. The sequence is rebuilt on every call.
func (ps *ParticleSystem) Renderables() iter.Seq[mgl32.Mat4] {
	return func(yield func(mgl32.Mat4) bool) {
		for _, emitter := range ps.emitters() {
			for m := range emitter.Buffer.Renderables(emitter.Scale) {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// LiveCount returns the number of live particles across all emitters.
func (ps *ParticleSystem) LiveCount() int {
	n := 0
	for _, emitter := range ps.emitters() {
		n += emitter.Buffer.Len()
	}
	return n
}

// TotalLaunched returns how many particles have been spawned since the scene started.
func (ps *ParticleSystem) TotalLaunched() int {
	n := 0
	for _, emitter := range ps.emitters() {
		n += emitter.TotalLaunched
	}
	return n
}

// Reset drops every live particle.
func (ps *ParticleSystem) Reset() {
	for _, emitter := range ps.emitters() {
		emitter.Buffer.Reset()
	}
}

func (ps *ParticleSystem) emitters() []*components.EmitterComponent {
	ids := ecs.GetEntitiesWith1[*components.EmitterComponent](ps.EntityManager)
	result := make([]*components.EmitterComponent, 0, len(ids))
	for _, id := range ids {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id)
		if !ok || emitter.Buffer == nil {
			continue
		}
		result = append(result, emitter)
	}
	return result
}
