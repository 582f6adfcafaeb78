package entities

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/skyflight/pkg/components"
	"github.com/decker502/skyflight/pkg/config"
	"github.com/decker502/skyflight/pkg/ecs"
)

// TestNewPlaneEntity 测试飞机实体创建
func TestNewPlaneEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultFlightConfig()

	id, err := NewPlaneEntity(em, cfg)
	require.NoError(t, err)
	require.NotZero(t, id)

	flight, ok := ecs.GetComponent[*components.FlightComponent](em, id)
	require.True(t, ok, "FlightComponent should be attached")
	assert.Equal(t, cfg.Flight.SpawnYaw, flight.Yaw)
	assert.Equal(t, cfg.Flight.Speed, flight.Speed)
	assert.True(t, math.IsInf(flight.LastShootTime, -1), "first shot must never be gated")
	assert.InDelta(t, 1, flight.Front.Len(), 1e-5)
	assert.InDelta(t, 1, flight.Up.Len(), 1e-5)
	assert.Equal(t, flight.Position, flight.Model.Col(3).Vec3())

	emitter, ok := ecs.GetComponent[*components.EmitterComponent](em, id)
	require.True(t, ok, "EmitterComponent should be attached")
	require.NotNil(t, emitter.Buffer)
	assert.Equal(t, cfg.Particle.Life, emitter.Buffer.Config().Life)
	assert.Equal(t, cfg.Particle.Speed, emitter.Buffer.Config().Speed)
	assert.Equal(t, cfg.Flight.ShootCooldown, emitter.Cooldown)
	assert.Equal(t, cfg.Flight.MuzzleOffset, emitter.MuzzleOffset)
	assert.Equal(t, mgl32.Vec3{0.4, 0.04, 0.04}, emitter.Scale)
	assert.Zero(t, emitter.Buffer.Len())

	_, ok = ecs.GetComponent[*components.MeshComponent](em, id)
	assert.True(t, ok, "MeshComponent should be attached")
}

// TestNewPlaneEntity_InvalidArgs 测试参数校验
func TestNewPlaneEntity_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		em   *ecs.EntityManager
		cfg  *config.FlightConfig
	}{
		{"nil entity manager", nil, config.DefaultFlightConfig()},
		{"nil config", ecs.NewEntityManager(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewPlaneEntity(tt.em, tt.cfg)
			assert.Error(t, err)
			assert.Zero(t, id)
		})
	}
}

// TestMeshes_WellFormed 网格下标有效且没有退化三角形
func TestMeshes_WellFormed(t *testing.T) {
	tests := []struct {
		name string
		mesh *components.MeshComponent
	}{
		{"plane", NewPlaneMesh()},
		{"projectile", NewProjectileMesh()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotEmpty(t, tt.mesh.Indices)
			require.Zero(t, len(tt.mesh.Indices)%3, "indices must form whole triangles")

			for i := 0; i < len(tt.mesh.Indices); i += 3 {
				var tri [3]mgl32.Vec3
				for k := 0; k < 3; k++ {
					idx := int(tt.mesh.Indices[i+k])
					require.Less(t, idx, len(tt.mesh.Vertices), "triangle %d index out of range", i/3)
					tri[k] = tt.mesh.Vertices[idx]
				}
				area := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Len() / 2
				assert.Greater(t, area, float32(1e-4), "triangle %d is degenerate", i/3)
			}
		})
	}
}

// TestPlaneMesh_NoseAlongX 机头位于 +X 方向最远处，与 front = R·X 对齐
func TestPlaneMesh_NoseAlongX(t *testing.T) {
	mesh := NewPlaneMesh()

	maxX := float32(math.Inf(-1))
	var nose mgl32.Vec3
	for _, v := range mesh.Vertices {
		if v.X() > maxX {
			maxX = v.X()
			nose = v
		}
	}
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, nose)
}

// TestNewSkyEntity 测试天空实体创建
func TestNewSkyEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultFlightConfig().Sky

	id, err := NewSkyEntity(em, cfg)
	require.NoError(t, err)

	sky, ok := ecs.GetComponent[*components.SkyComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, cfg.StartTime, sky.TimeOfDay)
	assert.Equal(t, cfg.CycleSeconds, sky.CycleSeconds)
	assert.Equal(t, cfg.GroundSpacing, sky.GroundSpacing)

	_, err = NewSkyEntity(nil, cfg)
	assert.Error(t, err)
}
