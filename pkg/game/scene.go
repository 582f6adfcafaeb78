package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level screen of the application.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by the elapsed time in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景在程序退出前需要收尾时实现
//
// 实现此接口的场景会在窗口关闭时被调用 OnExit()，
// 用于保存用户设置等。
type Closer interface {
	OnExit()
}
