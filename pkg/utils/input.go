// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput 基于 ebiten 的输入源
// 同时支持键盘鼠标和触摸，触摸优先：
//   - 单指拖动 = 自由视角
//   - 双指按住 = 射击
type EbitenInput struct{}

// IsKeyPressed 按键是否按住
func (EbitenInput) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// IsKeyJustPressed 按键是否本帧刚按下
func (EbitenInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// IsShootPressed 空格、鼠标左键或双指触摸
func (EbitenInput) IsShootPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) >= 2 {
		return true
	}
	return ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// CursorPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func (EbitenInput) CursorPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsLookButtonPressed 鼠标右键或单指触摸
func (EbitenInput) IsLookButtonPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) == 1 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
}

// Wheel 本帧滚轮偏移
func (EbitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}
