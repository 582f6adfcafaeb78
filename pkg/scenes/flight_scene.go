package scenes

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/skyflight/pkg/config"
	"github.com/decker502/skyflight/pkg/ecs"
	"github.com/decker502/skyflight/pkg/entities"
	"github.com/decker502/skyflight/pkg/game"
	"github.com/decker502/skyflight/pkg/systems"
	"github.com/decker502/skyflight/pkg/utils"
)

const controlsHelp = "Arrows: pitch/roll  Space/LMB: shoot  RMB drag, J/L/I/K: look  Wheel: zoom\n" +
	"Esc/P: pause  R: reset  H: HUD  F11: fullscreen"

const touchHelp = "Drag: look  Two fingers: shoot"

// FlightScene 可飞行的 3D 场景
//
// 每帧固定顺序：
//  1. InputSystem 轮询输入 → CommandBuffer
//  2. 消费命令（操纵、射击、视角、开关）
//  3. FlightSystem 回正 + 积分
//  4. CameraSystem 跟随飞机
//  5. ParticleSystem 推进子弹
//  6. SkySystem 推进昼夜
//
// 所有状态由场景显式持有，不使用全局单例。
type FlightScene struct {
	config    *config.FlightConfig
	gameState *game.GameState
	commands  *game.CommandBuffer

	entityManager *ecs.EntityManager
	planeEntity   ecs.EntityID

	inputSystem    *systems.InputSystem
	flightSystem   *systems.FlightSystem
	cameraSystem   *systems.CameraSystem
	particleSystem *systems.ParticleSystem
	skySystem      *systems.SkySystem
	renderSystem   *systems.RenderSystem

	// fullscreenHandler 由 App 设置，负责真正切换窗口模式
	fullscreenHandler func(bool)

	// frameDelta 当前帧的时间步长，供命令处理使用
	frameDelta float64
}

// NewFlightScene 创建飞行场景
//
// 参数:
//   - cfg: 场景配置
//   - gs: 会话状态（时钟、暂停、设置、音频）
//   - input: 输入源，nil 表示无输入（命令行工具）
func NewFlightScene(cfg *config.FlightConfig, gs *game.GameState, input systems.InputSource) (*FlightScene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("flight config cannot be nil")
	}
	if gs == nil {
		gs = game.NewGameState(nil)
	}

	em := ecs.NewEntityManager()
	plane, err := entities.NewPlaneEntity(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create plane: %w", err)
	}
	if _, err := entities.NewSkyEntity(em, cfg.Sky); err != nil {
		return nil, fmt.Errorf("failed to create sky: %w", err)
	}

	commands := game.NewCommandBuffer()
	s := &FlightScene{
		config:         cfg,
		gameState:      gs,
		commands:       commands,
		entityManager:  em,
		planeEntity:    plane,
		inputSystem:    systems.NewInputSystem(input, commands),
		flightSystem:   systems.NewFlightSystem(em, cfg.Flight, plane),
		cameraSystem:   systems.NewCameraSystem(em, cfg.Camera),
		particleSystem: systems.NewParticleSystem(em),
		skySystem:      systems.NewSkySystem(em),
		renderSystem:   systems.NewRenderSystem(em),
	}

	settings := gs.GetSettingsManager().GetSettings()
	s.cameraSystem.SetMouseSensitivity(float32(settings.MouseSensitivity))

	// 第一帧之前就把镜头放到飞机后方
	s.cameraSystem.Update(s.flightSystem.State())
	s.skySystem.Update(0)

	log.Printf("[FlightScene] 场景已创建: plane=%d camera=%d", plane, s.cameraSystem.CameraEntity())
	return s, nil
}

// SetFullscreenHandler 设置全屏切换回调
func (s *FlightScene) SetFullscreenHandler(handler func(bool)) {
	s.fullscreenHandler = handler
}

// Commands 返回命令队列（测试和命令行工具可以直接注入命令）
func (s *FlightScene) Commands() *game.CommandBuffer {
	return s.commands
}

// Flight 返回飞行系统
func (s *FlightScene) Flight() *systems.FlightSystem {
	return s.flightSystem
}

// Camera 返回镜头系统
func (s *FlightScene) Camera() *systems.CameraSystem {
	return s.cameraSystem
}

// Particles 返回粒子系统
func (s *FlightScene) Particles() *systems.ParticleSystem {
	return s.particleSystem
}

// Sky 返回天空系统
func (s *FlightScene) Sky() *systems.SkySystem {
	return s.skySystem
}

// Update 推进一帧
func (s *FlightScene) Update(deltaTime float64) {
	s.frameDelta = deltaTime

	s.inputSystem.Update(s.gameState.Clock)
	s.commands.Drain(s.applyCommand)

	if !s.gameState.Paused {
		now := s.gameState.Advance(deltaTime)
		s.flightSystem.Update(now)
	}

	// 暂停时仍然允许自由视角
	s.cameraSystem.Update(s.flightSystem.State())

	if !s.gameState.Paused {
		s.particleSystem.Update(deltaTime)
		s.skySystem.Update(deltaTime)
	}
}

// applyCommand 处理一条输入命令
func (s *FlightScene) applyCommand(cmd game.Command) {
	paused := s.gameState.Paused

	switch cmd.Kind {
	case game.CommandControl:
		if !paused {
			s.flightSystem.ApplyControlInput(cmd.Direction)
		}

	case game.CommandShoot:
		if paused {
			return
		}
		if s.flightSystem.Shoot(cmd.Time) {
			if am := s.gameState.GetAudioManager(); am != nil {
				am.PlayShot()
			}
		}

	case game.CommandCameraNudge:
		s.cameraSystem.ApplyFreeLookDelta(cmd.X, cmd.Y, float32(s.frameDelta))

	case game.CommandZoom:
		s.cameraSystem.ApplyZoomDelta(cmd.Y)

	case game.CommandMouseLook:
		s.cameraSystem.ApplyMouseDelta(cmd.X, cmd.Y)

	case game.CommandTogglePause:
		if s.gameState.TogglePause() {
			log.Printf("[FlightScene] 已暂停 (t=%.2f)", s.gameState.Clock)
		} else {
			log.Printf("[FlightScene] 继续 (t=%.2f)", s.gameState.Clock)
		}

	case game.CommandResetFlight:
		s.flightSystem.Reset()
		s.particleSystem.Reset()

	case game.CommandToggleHUD:
		sm := s.gameState.GetSettingsManager()
		sm.SetShowHUD(!sm.GetSettings().ShowHUD)
		s.saveSettings()

	case game.CommandToggleFullscreen:
		sm := s.gameState.GetSettingsManager()
		fullscreen := !sm.GetSettings().Fullscreen
		sm.SetFullscreen(fullscreen)
		s.saveSettings()
		if s.fullscreenHandler != nil {
			s.fullscreenHandler(fullscreen)
		}

	default:
		log.Printf("[FlightScene] Warning: unhandled command %v", cmd.Kind)
	}
}

// Draw 渲染一帧
func (s *FlightScene) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	aspect := s.config.Window.AspectRatio()
	if bounds.Dy() > 0 {
		aspect = float32(bounds.Dx()) / float32(bounds.Dy())
	}

	cam := s.cameraSystem.State()
	s.renderSystem.Draw(screen, systems.RenderFrame{
		View:           s.cameraSystem.ViewMatrix(),
		Projection:     s.cameraSystem.ProjectionMatrix(aspect),
		CameraPosition: cam.Position,
		Particles:      s.particleSystem.Renderables(),
		Sky:            s.skySystem.Sky(),
	})

	if s.gameState.GetSettingsManager().GetSettings().ShowHUD {
		ebitenutil.DebugPrint(screen, s.HUDText())
	}
}

// HUDText 调试信息文本
func (s *FlightScene) HUDText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "TPS: %.1f  FPS: %.1f\n", ebiten.ActualTPS(), ebiten.ActualFPS())
	if flight := s.flightSystem.State(); flight != nil {
		fmt.Fprintf(&b, "Position: (%.1f, %.1f, %.1f)\n", flight.Position.X(), flight.Position.Y(), flight.Position.Z())
		fmt.Fprintf(&b, "Yaw: %.1f  Pitch: %.1f  Roll: %.1f\n", flight.Yaw, flight.Pitch, flight.Roll)
	}
	if cam := s.cameraSystem.State(); cam != nil {
		fmt.Fprintf(&b, "Zoom: %.1f  Look: (%.1f, %.1f)\n", cam.Zoom, cam.Yaw, cam.Pitch)
	}
	fmt.Fprintf(&b, "Particles: %d  Cooldown: %.2fs\n", s.particleSystem.LiveCount(), s.flightSystem.CooldownRemaining())
	if sky := s.skySystem.Sky(); sky != nil {
		fmt.Fprintf(&b, "Time of day: %.2f  Daylight: %.2f\n", sky.TimeOfDay, sky.Daylight)
	}
	fmt.Fprintf(&b, "Triangles: %d\n", s.renderSystem.TriangleCount())
	if s.gameState.Paused {
		b.WriteString("PAUSED\n")
	}
	if utils.IsMobile() {
		b.WriteString(touchHelp)
	} else {
		b.WriteString(controlsHelp)
	}

	return b.String()
}

// OnExit 程序退出前保存设置
func (s *FlightScene) OnExit() {
	s.saveSettings()
}

func (s *FlightScene) saveSettings() {
	if err := s.gameState.GetSettingsManager().Save(); err != nil {
		log.Printf("[FlightScene] Warning: Failed to save settings: %v", err)
	}
}
