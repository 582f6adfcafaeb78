package entities

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/skyflight/internal/orientation"
	"github.com/decker502/skyflight/internal/particle"
	"github.com/decker502/skyflight/pkg/components"
	"github.com/decker502/skyflight/pkg/config"
	"github.com/decker502/skyflight/pkg/ecs"
)

// 飞机和子弹的默认颜色
var (
	PlaneColor      = color.RGBA{R: 200, G: 205, B: 215, A: 255}
	ProjectileColor = color.RGBA{R: 255, G: 210, B: 90, A: 255}
)

// NewPlaneEntity 创建飞机实体
// 飞机由 FlightComponent（飞行状态）、EmitterComponent（子弹发射器）
// 和 MeshComponent（可渲染网格）组成，整个会话只创建一次。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 场景配置（使用 flight 和 particle 两节）
//
// 返回:
//   - ecs.EntityID: 创建的飞机实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewPlaneEntity(em *ecs.EntityManager, cfg *config.FlightConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("flight config cannot be nil")
	}

	spawn := mgl32.Vec3(cfg.Flight.SpawnPosition)
	flight := &components.FlightComponent{
		Position:      spawn,
		Yaw:           cfg.Flight.SpawnYaw,
		Speed:         cfg.Flight.Speed,
		LastShootTime: math.Inf(-1),
		SpawnPosition: spawn,
		SpawnYaw:      cfg.Flight.SpawnYaw,
	}
	flight.Front, flight.Up = orientation.Basis(flight.Yaw, flight.Pitch, flight.Roll)
	flight.Model = orientation.ModelMatrix(flight.Yaw, flight.Pitch, flight.Roll, flight.Position)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, flight)
	ecs.AddComponent(em, id, &components.EmitterComponent{
		Buffer: particle.NewBuffer(particle.Config{
			Life:  cfg.Particle.Life,
			Speed: cfg.Particle.Speed,
		}),
		MuzzleOffset: cfg.Flight.MuzzleOffset,
		Cooldown:     cfg.Flight.ShootCooldown,
		Scale:        mgl32.Vec3(cfg.Particle.Scale),
	})
	ecs.AddComponent(em, id, NewPlaneMesh())

	log.Printf("[PlaneFactory] 创建飞机实体 %d: position=%v yaw=%.1f speed=%.2f",
		id, spawn, flight.Yaw, flight.Speed)

	return id, nil
}

// NewPlaneMesh 生成程序化的飞机网格
// 模型坐标系：机头朝 +X，机背朝 +Y，右翼朝 +Z
func NewPlaneMesh() *components.MeshComponent {
	vertices := []mgl32.Vec3{
		// 机身：菱形截面，前后各收成一个尖
		{3, 0, 0},       // 0 机头
		{0.5, 0.45, 0},  // 1 机背
		{0.5, 0, 0.45},  // 2 右侧
		{0.5, -0.35, 0}, // 3 机腹
		{0.5, 0, -0.45}, // 4 左侧
		{-3, 0.1, 0},    // 5 机尾
		// 右翼
		{1, 0, 0.3},    // 6
		{-0.8, 0, 0.3}, // 7
		{-1.6, 0, 4.5}, // 8
		{-0.8, 0, 4.5}, // 9
		// 左翼
		{1, 0, -0.3},    // 10
		{-0.8, 0, -0.3}, // 11
		{-1.6, 0, -4.5}, // 12
		{-0.8, 0, -4.5}, // 13
		// 垂直尾翼
		{-2, 0.1, 0},   // 14
		{-3, 0.1, 0},   // 15
		{-3.2, 1.4, 0}, // 16
		// 水平尾翼
		{-2.2, 0.1, 0},    // 17
		{-3.1, 0.1, -1.4}, // 18
		{-3.1, 0.1, 1.4},  // 19
	}

	indices := []uint16{
		// 机头
		0, 1, 2,
		0, 2, 3,
		0, 3, 4,
		0, 4, 1,
		// 机尾
		5, 2, 1,
		5, 3, 2,
		5, 4, 3,
		5, 1, 4,
		// 机翼
		6, 7, 8,
		6, 8, 9,
		10, 12, 11,
		10, 13, 12,
		// 尾翼
		14, 15, 16,
		17, 18, 19,
	}

	return &components.MeshComponent{
		Vertices: vertices,
		Indices:  indices,
		Color:    PlaneColor,
	}
}

// NewProjectileMesh 生成子弹网格：单位八面体，拉长由粒子缩放决定
func NewProjectileMesh() *components.MeshComponent {
	vertices := []mgl32.Vec3{
		{1, 0, 0},  // 0 +X
		{-1, 0, 0}, // 1 -X
		{0, 1, 0},  // 2 +Y
		{0, -1, 0}, // 3 -Y
		{0, 0, 1},  // 4 +Z
		{0, 0, -1}, // 5 -Z
	}

	indices := []uint16{
		2, 4, 0,
		2, 0, 5,
		2, 5, 1,
		2, 1, 4,
		3, 0, 4,
		3, 5, 0,
		3, 1, 5,
		3, 4, 1,
	}

	return &components.MeshComponent{
		Vertices: vertices,
		Indices:  indices,
		Color:    ProjectileColor,
	}
}
