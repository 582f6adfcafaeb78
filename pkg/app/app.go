// Package app 提供飞行场景应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/skyflight/pkg/config"
	"github.com/decker502/skyflight/pkg/embedded"
	"github.com/decker502/skyflight/pkg/game"
	"github.com/decker502/skyflight/pkg/scenes"
	"github.com/decker502/skyflight/pkg/utils"
)

// AppName 用户数据目录名（gdata）
const AppName = "skyflight"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空则使用嵌入的 data/flight.yaml
	ConfigPath string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	flightConfig             *config.FlightConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	flightConfig, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	// 用户设置（gdata 不可用时降级为内存设置）
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	} else if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] Storage path: %s", path)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settingsManager, _ := game.NewSettingsManager(gdataManager)

	gameState := game.NewGameState(settingsManager)

	// 初始化音频上下文和 AudioManager
	audioContext := audio.NewContext(game.SampleRate)
	gameState.SetAudioManager(game.NewAudioManager(audioContext, settingsManager))
	log.Printf("[App] AudioManager initialized")

	a := &App{
		flightConfig: flightConfig,
		verbose:      cfg.Verbose,
	}

	// 创建场景管理器，R 键之外的整场景重建也走工厂函数
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() game.Scene {
		scene, err := scenes.NewFlightScene(flightConfig, gameState, utils.EbitenInput{})
		if err != nil {
			log.Printf("[App] 错误: 无法创建飞行场景: %v", err)
			return nil
		}
		scene.SetFullscreenHandler(a.setFullscreen)
		return scene
	})
	if !sceneManager.Restart() {
		return nil, fmt.Errorf("飞行场景创建失败")
	}
	a.sceneManager = sceneManager

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return a, nil
}

// LoadConfig 加载场景配置
//
// path 非空时从文件加载，任何错误都返回给调用方；
// path 为空时读取嵌入的 data/flight.yaml，失败则记录警告并使用默认配置。
func LoadConfig(path string) (*config.FlightConfig, error) {
	if path != "" {
		cfg, err := config.LoadFlightConfig(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] 加载配置文件: %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(config.FlightConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: 无法读取嵌入配置 %s: %v (using defaults)", config.FlightConfigPath, err)
		return config.DefaultFlightConfig(), nil
	}
	cfg, err := config.ParseFlightConfig(data)
	if err != nil {
		log.Printf("[Config] Warning: 嵌入配置无效: %v (using defaults)", err)
		return config.DefaultFlightConfig(), nil
	}
	log.Printf("[Config] 加载嵌入配置: %s", config.FlightConfigPath)
	return cfg, nil
}

// setFullscreen 切换全屏
func (a *App) setFullscreen(on bool) {
	if on {
		ebiten.SetFullscreen(true)
		return
	}

	// 退出全屏
	ebiten.SetFullscreen(false)
	if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
	// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
	a.pendingWindowSizeReset = true
	a.windowSizeResetCountdown = 3
	log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w := a.flightConfig.Window
			ebiten.SetWindowSize(w.Width, w.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w.Width, w.Height)
			a.pendingWindowSizeReset = false
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.flightConfig.Window.Width, a.flightConfig.Window.Height
}

// FlightConfig 返回当前场景配置（main 用它设置窗口）
func (a *App) FlightConfig() *config.FlightConfig {
	return a.flightConfig
}

// GetSceneManager 返回场景管理器
// 用于在程序关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
