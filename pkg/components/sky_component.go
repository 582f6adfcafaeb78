package components

import "image/color"

// SkyComponent 昼夜循环的天空状态
type SkyComponent struct {
	// CycleSeconds 完整一天的时长（秒），0 表示时间静止
	CycleSeconds float64

	// TimeOfDay 当前时刻，取值 [0, 1)：0 为午夜，0.5 为正午
	TimeOfDay float64

	// Daylight 日照强度 [0, 1]，由 SkySystem 根据 TimeOfDay 计算
	Daylight float64

	// 天顶和地平线颜色（白天/夜晚）
	DayZenith     color.RGBA
	DayHorizon    color.RGBA
	NightZenith   color.RGBA
	NightHorizon  color.RGBA
	GroundLevel   float32 // 地面网格所在高度
	GroundSpacing float32 // 地面网格间距
}
