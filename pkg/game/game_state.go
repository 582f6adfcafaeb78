package game

// GameState 会话级状态
// 由 App 创建后显式传给场景，不使用全局单例
type GameState struct {
	// Clock 累计游戏时间（秒），暂停期间不增加
	Clock float64

	// Paused 是否暂停
	Paused bool

	// Frame 已模拟的帧数
	Frame uint64

	settingsManager *SettingsManager
	audioManager    *AudioManager
}

// NewGameState 创建会话状态
// sm 为 nil 时使用内存中的默认设置
func NewGameState(sm *SettingsManager) *GameState {
	if sm == nil {
		sm, _ = NewSettingsManager(nil)
	}
	return &GameState{
		settingsManager: sm,
	}
}

// Advance 推进游戏时钟，返回推进后的时间戳
func (gs *GameState) Advance(dt float64) float64 {
	if gs.Paused {
		return gs.Clock
	}
	gs.Clock += dt
	gs.Frame++
	return gs.Clock
}

// TogglePause 切换暂停状态，返回切换后的状态
func (gs *GameState) TogglePause() bool {
	gs.Paused = !gs.Paused
	return gs.Paused
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// SetAudioManager 设置音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器，可能为 nil
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}
