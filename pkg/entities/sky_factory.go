package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/skyflight/pkg/components"
	"github.com/decker502/skyflight/pkg/config"
	"github.com/decker502/skyflight/pkg/ecs"
)

// NewSkyEntity 创建天空实体（昼夜循环 + 地面网格参数）
func NewSkyEntity(em *ecs.EntityManager, cfg config.SkySection) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.SkyComponent{
		CycleSeconds:  cfg.CycleSeconds,
		TimeOfDay:     cfg.StartTime,
		DayZenith:     color.RGBA{R: 70, G: 130, B: 220, A: 255},
		DayHorizon:    color.RGBA{R: 190, G: 220, B: 245, A: 255},
		NightZenith:   color.RGBA{R: 5, G: 8, B: 25, A: 255},
		NightHorizon:  color.RGBA{R: 30, G: 35, B: 70, A: 255},
		GroundLevel:   cfg.GroundLevel,
		GroundSpacing: cfg.GroundSpacing,
	})
	return id, nil
}
