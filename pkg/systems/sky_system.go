package systems

import (
	"image/color"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/skyflight/pkg/components"
	"github.com/decker502/skyflight/pkg/ecs"
	"github.com/decker502/skyflight/pkg/utils"
)

// 日照过渡区间：太阳高度（正弦值）从 -0.15 到 0.25 之间由夜转昼
const (
	duskElevation = -0.15
	dayElevation  = 0.25
)

// SkySystem 昼夜循环
//
// TimeOfDay 取值 [0, 1)：0 为午夜，0.25 日出，0.5 正午，0.75 日落。
// 太阳在 XY 平面内绕 Z 轴转动，月亮始终在太阳的对侧。
type SkySystem struct {
	entityManager *ecs.EntityManager
}

// NewSkySystem 创建天空系统
func NewSkySystem(em *ecs.EntityManager) *SkySystem {
	return &SkySystem{entityManager: em}
}

// Update 推进所有天空实体的时刻并刷新日照强度
func (s *SkySystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.SkyComponent](s.entityManager) {
		sky, ok := ecs.GetComponent[*components.SkyComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if sky.CycleSeconds > 0 {
			sky.TimeOfDay = wrapUnit(sky.TimeOfDay + dt/sky.CycleSeconds)
		}
		sky.Daylight = Daylight(sky.TimeOfDay)
	}
}

// Sky 返回第一个天空组件，没有时返回 nil
func (s *SkySystem) Sky() *components.SkyComponent {
	ids := ecs.GetEntitiesWith1[*components.SkyComponent](s.entityManager)
	if len(ids) == 0 {
		return nil
	}
	sky, _ := ecs.GetComponent[*components.SkyComponent](s.entityManager, ids[0])
	return sky
}

// SunElevation 太阳高度角的正弦值：午夜 -1，正午 1
func SunElevation(timeOfDay float64) float64 {
	return -math.Cos(2 * math.Pi * timeOfDay)
}

// Daylight 日照强度 [0, 1]
func Daylight(timeOfDay float64) float64 {
	return utils.Smoothstep(duskElevation, dayElevation, SunElevation(timeOfDay))
}

// SunDirection 指向太阳的单位向量（世界坐标）
func SunDirection(timeOfDay float64) mgl32.Vec3 {
	angle := float32(2 * math.Pi * timeOfDay)
	return mgl32.Vec3{math32.Sin(angle), -math32.Cos(angle), 0}
}

// ZenithColor 当前天顶颜色
func ZenithColor(sky *components.SkyComponent) color.RGBA {
	return utils.LerpColor(sky.NightZenith, sky.DayZenith, utils.EaseInOutCubic(sky.Daylight))
}

// HorizonColor 当前地平线颜色
func HorizonColor(sky *components.SkyComponent) color.RGBA {
	return utils.LerpColor(sky.NightHorizon, sky.DayHorizon, utils.EaseInOutCubic(sky.Daylight))
}

func wrapUnit(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		return 0
	}
	return v
}
