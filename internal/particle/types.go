// Package particle provides the short-lived projectile particles fired by the
// plane.
//
// Particles are plain values kept in spawn order inside a Buffer. They carry
// the plane's model matrix from the moment they were fired, travel along a
// fixed direction and are dropped from the front of the buffer once their
// remaining life runs out.
package particle

import "github.com/go-gl/mathgl/mgl32"

// Particle is a single emitted projectile.
type Particle struct {
	// Direction 飞行方向（单位向量，发射时的 front）
	Direction mgl32.Vec3

	// Position 当前世界坐标
	Position mgl32.Vec3

	// SpawnTransform 发射时飞机的模型矩阵（渲染时平移列会被替换为 Position）
	SpawnTransform mgl32.Mat4

	// RemainingLife 剩余寿命（秒），每帧严格递减
	RemainingLife float32
}

// Config holds the values shared by every particle of a buffer.
type Config struct {
	Life  float32 // Initial lifetime in seconds
	Speed float32 // Travel speed in world units per second
}

// Spawner is the hook an emitter uses to register a new particle.
type Spawner interface {
	Spawn(direction, position mgl32.Vec3, transform mgl32.Mat4)
}

var _ Spawner = (*Buffer)(nil)
