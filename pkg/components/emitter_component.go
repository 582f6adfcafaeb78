package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/skyflight/internal/particle"
)

// EmitterComponent 粒子发射器
//
// 挂在飞机实体上。Buffer 独占该发射器发出的所有粒子，
// 发射后粒子与飞机不再有任何关联。
type EmitterComponent struct {
	Buffer *particle.Buffer

	// MuzzleOffset 发射点沿 Up 和 Front 的偏移距离
	MuzzleOffset float32

	// Cooldown 两次射击之间的最小间隔（秒）
	Cooldown float64

	// Scale 粒子渲染时的按轴缩放（模型空间，X 为飞行方向）
	Scale mgl32.Vec3

	// TotalLaunched 本次会话累计发射的粒子数
	TotalLaunched int
}
