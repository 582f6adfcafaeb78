package components

import "github.com/go-gl/mathgl/mgl32"

// FlightComponent 飞机的飞行状态
//
// Yaw/Pitch/Roll 为角度（度）。Pitch 和 Roll 限制在 [-AngleLimit, AngleLimit]，
// Yaw 不做限制（由三角函数周期性自然回绕）。
// Front/Up/Model 是由角度推导出的缓存值，任何角度变化后都必须立即重新计算。
type FlightComponent struct {
	// Position 世界坐标，每帧沿 Front 积分
	Position mgl32.Vec3

	// 欧拉角（度）
	Yaw   float32
	Pitch float32
	Roll  float32

	// 推导出的正交基（单位向量）
	Front mgl32.Vec3
	Up    mgl32.Vec3

	// Model 当前模型矩阵（旋转 + 平移）
	Model mgl32.Mat4

	// Speed 每帧沿 Front 前进的距离（不乘 dt）
	Speed float32

	// LastShootTime 上一次成功射击的时间戳（秒），初始为 -Inf
	LastShootTime float64

	// 出生点，用于 Reset
	SpawnPosition mgl32.Vec3
	SpawnYaw      float32
}
