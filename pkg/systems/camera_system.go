package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/skyflight/internal/orientation"
	"github.com/decker502/skyflight/pkg/components"
	"github.com/decker502/skyflight/pkg/config"
	"github.com/decker502/skyflight/pkg/ecs"
)

// cameraPitchLimit 自由视角俯仰限幅（度）
const cameraPitchLimit = 89

// CameraSystem 追尾镜头
//
// 镜头不做独立积分：每帧根据飞机航向 + 自由视角偏移重新计算基向量，
// 再从锚点沿 -front 后退 zoom 得到位置。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
}

// NewCameraSystem 创建镜头系统，同时创建镜头实体。
func NewCameraSystem(em *ecs.EntityManager, cfg config.CameraSection) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Front:            orientation.UnitX,
		Up:               orientation.UnitY,
		Yaw:              cfg.YawOffset,
		Pitch:            orientation.ClampAngle(cfg.PitchOffset, cameraPitchLimit),
		Zoom:             mgl32.Clamp(cfg.Zoom, cfg.ZoomMin, cfg.ZoomMax),
		ZoomMin:          cfg.ZoomMin,
		ZoomMax:          cfg.ZoomMax,
		MovementSpeed:    cfg.MovementSpeed,
		MouseSensitivity: cfg.MouseSensitivity,
		Fov:              cfg.Fov,
		Near:             cfg.Near,
		Far:              cfg.Far,
		AnchorHeight:     cfg.AnchorHeight,
	})

	return cs
}

// CameraEntity 返回镜头实体ID
func (cs *CameraSystem) CameraEntity() ecs.EntityID {
	return cs.cameraEntity
}

// State 返回镜头组件，实体不存在时返回 nil
func (cs *CameraSystem) State() *components.CameraComponent {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return nil
	}
	return cam
}

// UpdateBasis 用飞机航向加自由视角偏移重新计算镜头基向量（roll 恒为 0）
func (cs *CameraSystem) UpdateBasis(planeYaw float32) {
	cam := cs.State()
	if cam == nil {
		return
	}
	cam.Front, cam.Up = orientation.Basis(planeYaw+cam.Yaw, cam.Pitch, 0)
}

// UpdatePosition position = anchor - front*zoom，无平滑
func (cs *CameraSystem) UpdatePosition(anchor mgl32.Vec3) {
	cam := cs.State()
	if cam == nil {
		return
	}
	cam.Position = anchor.Sub(cam.Front.Mul(cam.Zoom))
}

// Update 每帧跟随飞机：先更新基向量，再以飞机上方 AnchorHeight 处为锚点放置镜头
func (cs *CameraSystem) Update(plane *components.FlightComponent) {
	cam := cs.State()
	if cam == nil || plane == nil {
		return
	}
	cs.UpdateBasis(plane.Yaw)
	cs.UpdatePosition(cs.Anchor(plane))
}

// Anchor 返回飞机对应的镜头锚点
func (cs *CameraSystem) Anchor(plane *components.FlightComponent) mgl32.Vec3 {
	cam := cs.State()
	if cam == nil {
		return plane.Position
	}
	return plane.Position.Add(orientation.UnitY.Mul(cam.AnchorHeight))
}

// ApplyFreeLookDelta 键盘微调自由视角，两个分量都乘以 MovementSpeed*dt
func (cs *CameraSystem) ApplyFreeLookDelta(yawDelta, pitchDelta, dt float32) {
	cam := cs.State()
	if cam == nil {
		return
	}
	scale := cam.MovementSpeed * dt
	cam.Yaw += yawDelta * scale
	cam.Pitch = orientation.ClampAngle(cam.Pitch+pitchDelta*scale, cameraPitchLimit)
}

// ApplyMouseDelta 鼠标拖动视角，光标位移乘以固定灵敏度。
// 屏幕 y 轴向下，向上拖动为抬头。
func (cs *CameraSystem) ApplyMouseDelta(dx, dy float32) {
	cam := cs.State()
	if cam == nil {
		return
	}
	cam.Yaw += dx * cam.MouseSensitivity
	cam.Pitch = orientation.ClampAngle(cam.Pitch-dy*cam.MouseSensitivity, cameraPitchLimit)
}

// SetMouseSensitivity 更新鼠标灵敏度（来自用户设置）
func (cs *CameraSystem) SetMouseSensitivity(sensitivity float32) {
	if cam := cs.State(); cam != nil {
		cam.MouseSensitivity = sensitivity
	}
}

// ApplyZoomDelta zoom -= scroll，限制在 [ZoomMin, ZoomMax]
func (cs *CameraSystem) ApplyZoomDelta(scroll float32) {
	cam := cs.State()
	if cam == nil {
		return
	}
	cam.Zoom = mgl32.Clamp(cam.Zoom-scroll, cam.ZoomMin, cam.ZoomMax)
}

// ViewMatrix lookAt(position, position+front, up)
func (cs *CameraSystem) ViewMatrix() mgl32.Mat4 {
	cam := cs.State()
	if cam == nil {
		return mgl32.Ident4()
	}
	return mgl32.LookAtV(cam.Position, cam.Position.Add(cam.Front), cam.Up)
}

// ProjectionMatrix 透视投影
func (cs *CameraSystem) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	cam := cs.State()
	if cam == nil {
		return mgl32.Ident4()
	}
	return mgl32.Perspective(mgl32.DegToRad(cam.Fov), aspect, cam.Near, cam.Far)
}
