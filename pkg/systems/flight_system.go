package systems

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/skyflight/internal/orientation"
	"github.com/decker502/skyflight/pkg/components"
	"github.com/decker502/skyflight/pkg/config"
	"github.com/decker502/skyflight/pkg/ecs"
	"github.com/decker502/skyflight/pkg/game"
)

// FlightSystem 飞行状态机
//
// 把离散的操纵输入转换为持续变化的姿态：
//   - ApplyControlInput 每次调用按固定步长改变 pitch/roll（不乘 dt）
//   - Update 每帧执行一次：自动回正 → 重新计算基向量 → 沿 front 前进
//   - Shoot 受冷却时间限制，冷却中的射击直接忽略（不排队）
//
// 除“可射击/冷却中”外没有其他离散状态。
type FlightSystem struct {
	entityManager *ecs.EntityManager
	config        config.FlightSection
	planeEntity   ecs.EntityID
	lastUpdate    float64
}

// NewFlightSystem 创建飞行系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 飞行参数
//   - planeEntity: 飞机实体（需要 FlightComponent，射击还需要 EmitterComponent）
func NewFlightSystem(em *ecs.EntityManager, cfg config.FlightSection, planeEntity ecs.EntityID) *FlightSystem {
	return &FlightSystem{
		entityManager: em,
		config:        cfg,
		planeEntity:   planeEntity,
	}
}

// PlaneEntity 返回飞机实体ID
func (s *FlightSystem) PlaneEntity() ecs.EntityID {
	return s.planeEntity
}

// State 返回飞机的飞行组件，实体不存在时返回 nil
func (s *FlightSystem) State() *components.FlightComponent {
	flight, ok := ecs.GetComponent[*components.FlightComponent](s.entityManager, s.planeEntity)
	if !ok {
		return nil
	}
	return flight
}

// ApplyControlInput 应用一次操纵输入
//
// 上/下改变 pitch（上为抬头），左/右改变 roll（左为正，向左压坡度）。
// 每次调用后立即限幅并重新计算基向量。
func (s *FlightSystem) ApplyControlInput(dir game.ControlDirection) {
	flight := s.State()
	if flight == nil {
		return
	}

	switch dir {
	case game.ControlUpward:
		flight.Pitch += s.config.PitchStep
	case game.ControlDownward:
		flight.Pitch -= s.config.PitchStep
	case game.ControlLeft:
		flight.Roll += s.config.RollStep
	case game.ControlRight:
		flight.Roll -= s.config.RollStep
	default:
		return
	}

	flight.Pitch = orientation.ClampAngle(flight.Pitch, s.config.AngleLimit)
	flight.Roll = orientation.ClampAngle(flight.Roll, s.config.AngleLimit)
	RecomputeFlightBasis(flight)
}

// Update 每帧调用一次，顺序不可调换：
//  1. 自动回正：pitch 按比例衰减；roll 衰减的部分同时计入 yaw（协调转弯）
//  2. 根据新角度重新计算 front/up
//  3. position += front * speed（按帧积分，不乘 dt）
func (s *FlightSystem) Update(now float64) {
	s.lastUpdate = now

	flight := s.State()
	if flight == nil {
		return
	}

	divisor := s.config.CenteringDivisor
	flight.Pitch -= flight.Pitch / divisor
	if flight.Roll != 0 {
		delta := flight.Roll / divisor
		flight.Roll -= delta
		flight.Yaw -= delta
	}

	flight.Front, flight.Up = orientation.Basis(flight.Yaw, flight.Pitch, flight.Roll)
	flight.Position = flight.Position.Add(flight.Front.Mul(flight.Speed))
	flight.Model = orientation.ModelMatrix(flight.Yaw, flight.Pitch, flight.Roll, flight.Position)
}

// Shoot 尝试射击
//
// 距上次成功射击不超过冷却时间时静默忽略。
// 成功时在 position + up*offset + front*offset 处生成一个粒子，
// 方向为 front，变换矩阵为当前模型矩阵。
//
// 返回:
//   - bool: 是否发射了粒子
func (s *FlightSystem) Shoot(now float64) bool {
	flight := s.State()
	if flight == nil {
		return false
	}

	emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, s.planeEntity)
	if !ok || emitter.Buffer == nil {
		return false
	}

	if now-flight.LastShootTime <= emitter.Cooldown {
		return false
	}

	muzzle := flight.Position.
		Add(flight.Up.Mul(emitter.MuzzleOffset)).
		Add(flight.Front.Mul(emitter.MuzzleOffset))
	emitter.Buffer.Spawn(flight.Front, muzzle, flight.Model)
	emitter.TotalLaunched++
	flight.LastShootTime = now

	return true
}

// CooldownRemaining 返回距离下一次可射击的剩余时间（秒），以最近一次 Update 的时间为准
func (s *FlightSystem) CooldownRemaining() float64 {
	flight := s.State()
	if flight == nil {
		return 0
	}
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, s.planeEntity)
	if !ok {
		return 0
	}
	return math.Max(0, flight.LastShootTime+emitter.Cooldown-s.lastUpdate)
}

// Reset 让飞机回到出生点，姿态归零，冷却清空
func (s *FlightSystem) Reset() {
	flight := s.State()
	if flight == nil {
		return
	}

	flight.Position = flight.SpawnPosition
	flight.Yaw = flight.SpawnYaw
	flight.Pitch = 0
	flight.Roll = 0
	flight.LastShootTime = math.Inf(-1)
	RecomputeFlightBasis(flight)

	log.Printf("[FlightSystem] 飞机已重置到出生点 %v (yaw=%.1f)", flight.SpawnPosition, flight.SpawnYaw)
}

// ModelMatrix 返回飞机当前的模型矩阵
func (s *FlightSystem) ModelMatrix() mgl32.Mat4 {
	flight := s.State()
	if flight == nil {
		return mgl32.Ident4()
	}
	return flight.Model
}

// NormalMatrix 返回模型矩阵的逆转置（用于变换法线）
func (s *FlightSystem) NormalMatrix() mgl32.Mat3 {
	return orientation.NormalMatrix(s.ModelMatrix())
}

// RecomputeFlightBasis 根据当前角度和位置刷新 Front/Up/Model 缓存
func RecomputeFlightBasis(flight *components.FlightComponent) {
	flight.Front, flight.Up = orientation.Basis(flight.Yaw, flight.Pitch, flight.Roll)
	flight.Model = orientation.ModelMatrix(flight.Yaw, flight.Pitch, flight.Roll, flight.Position)
}
