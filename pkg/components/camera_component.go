package components

import "github.com/go-gl/mathgl/mgl32"

// CameraComponent 追尾镜头状态
//
// Position/Front/Up 每帧由飞机的朝向和位置重新推导，不做独立积分。
// Yaw/Pitch 是叠加在飞机航向上的自由视角偏移（度）。
type CameraComponent struct {
	// 推导出的镜头位置和基向量
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3

	// Yaw 自由视角的水平偏移（度），叠加在飞机 Yaw 上
	Yaw float32
	// Pitch 自由视角的俯仰偏移（度），限制在 [-89, 89]
	Pitch float32

	// Zoom 镜头到锚点的距离，限制在 [ZoomMin, ZoomMax]
	Zoom    float32
	ZoomMin float32
	ZoomMax float32

	// MovementSpeed 键盘微调自由视角的速度（度/秒）
	MovementSpeed float32
	// MouseSensitivity 鼠标每像素对应的角度
	MouseSensitivity float32

	// 透视投影参数
	Fov  float32 // 垂直视角（度）
	Near float32
	Far  float32

	// AnchorHeight 锚点相对飞机位置的世界坐标高度偏移
	AnchorHeight float32
}
