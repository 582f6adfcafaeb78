package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/skyflight/pkg/game"
)

// InputSource 输入设备抽象
//
// 生产环境由 utils.EbitenInput 实现，测试中可以用脚本化的假输入替代。
type InputSource interface {
	// IsKeyPressed 按键当前是否按住
	IsKeyPressed(key ebiten.Key) bool
	// IsKeyJustPressed 按键是否在本帧刚按下
	IsKeyJustPressed(key ebiten.Key) bool
	// IsShootPressed 射击键（空格或鼠标左键）是否按住
	IsShootPressed() bool
	// CursorPosition 光标（或第一个触点）的屏幕坐标
	CursorPosition() (int, int)
	// IsLookButtonPressed 自由视角拖动键（鼠标右键或触摸）是否按住
	IsLookButtonPressed() bool
	// Wheel 本帧滚轮偏移
	Wheel() (float64, float64)
}

// 飞行操纵按键映射
var controlKeys = []struct {
	key ebiten.Key
	dir game.ControlDirection
}{
	{ebiten.KeyArrowUp, game.ControlUpward},
	{ebiten.KeyArrowDown, game.ControlDownward},
	{ebiten.KeyArrowLeft, game.ControlLeft},
	{ebiten.KeyArrowRight, game.ControlRight},
}

// 单次触发的开关按键映射
var toggleKeys = []struct {
	key  ebiten.Key
	kind game.CommandKind
}{
	{ebiten.KeyEscape, game.CommandTogglePause},
	{ebiten.KeyP, game.CommandTogglePause},
	{ebiten.KeyR, game.CommandResetFlight},
	{ebiten.KeyH, game.CommandToggleHUD},
	{ebiten.KeyF11, game.CommandToggleFullscreen},
}

// InputSystem 轮询输入设备并把结果转换为命令
//
// 本系统不修改任何场景状态，只向 CommandBuffer 写入命令，
// 由场景在同一帧内统一消费。
type InputSystem struct {
	source   InputSource
	commands *game.CommandBuffer

	// 鼠标拖动视角：上一帧的光标位置
	looking                  bool
	lastCursorX, lastCursorY int
}

// NewInputSystem 创建输入系统
func NewInputSystem(source InputSource, commands *game.CommandBuffer) *InputSystem {
	return &InputSystem{
		source:   source,
		commands: commands,
	}
}

// Update 轮询一次输入
// 参数:
//   - now: 当前游戏时间（秒），写入射击命令
func (s *InputSystem) Update(now float64) {
	if s.source == nil {
		return
	}

	for _, k := range toggleKeys {
		if s.source.IsKeyJustPressed(k.key) {
			s.commands.Push(game.Command{Kind: k.kind, Time: now})
		}
	}

	// 按住期间每帧一次，不乘 dt
	for _, k := range controlKeys {
		if s.source.IsKeyPressed(k.key) {
			s.commands.Push(game.Command{Kind: game.CommandControl, Direction: k.dir, Time: now})
		}
	}

	if s.source.IsShootPressed() {
		s.commands.Push(game.Command{Kind: game.CommandShoot, Time: now})
	}

	s.pollCameraNudge(now)
	s.pollMouseLook(now)

	if _, wy := s.source.Wheel(); wy != 0 {
		s.commands.Push(game.Command{Kind: game.CommandZoom, Y: float32(wy), Time: now})
	}
}

// pollCameraNudge J/L 调整水平偏移，I/K 调整俯仰偏移
func (s *InputSystem) pollCameraNudge(now float64) {
	var yaw, pitch float32
	if s.source.IsKeyPressed(ebiten.KeyJ) {
		yaw--
	}
	if s.source.IsKeyPressed(ebiten.KeyL) {
		yaw++
	}
	if s.source.IsKeyPressed(ebiten.KeyI) {
		pitch++
	}
	if s.source.IsKeyPressed(ebiten.KeyK) {
		pitch--
	}
	if yaw != 0 || pitch != 0 {
		s.commands.Push(game.Command{Kind: game.CommandCameraNudge, X: yaw, Y: pitch, Time: now})
	}
}

// pollMouseLook 拖动期间把光标位移转换为视角命令；按下的第一帧只记录起点
func (s *InputSystem) pollMouseLook(now float64) {
	if !s.source.IsLookButtonPressed() {
		s.looking = false
		return
	}

	x, y := s.source.CursorPosition()
	if !s.looking {
		s.looking = true
		s.lastCursorX, s.lastCursorY = x, y
		return
	}

	dx, dy := x-s.lastCursorX, y-s.lastCursorY
	s.lastCursorX, s.lastCursorY = x, y
	if dx != 0 || dy != 0 {
		s.commands.Push(game.Command{Kind: game.CommandMouseLook, X: float32(dx), Y: float32(dy), Time: now})
	}
}
