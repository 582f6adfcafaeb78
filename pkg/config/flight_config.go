package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FlightConfigPath 内置飞行配置路径（embed.FS 中）
const FlightConfigPath = "data/flight.yaml"

// FlightConfig 场景配置
//
// 包含飞机、追尾镜头、粒子、天空和窗口的全部可调参数。
// 配置文件位置: data/flight.yaml
type FlightConfig struct {
	Flight   FlightSection   `yaml:"flight"`
	Camera   CameraSection   `yaml:"camera"`
	Particle ParticleSection `yaml:"particle"`
	Sky      SkySection      `yaml:"sky"`
	Window   WindowSection   `yaml:"window"`
}

// FlightSection 飞行模型参数
type FlightSection struct {
	// Speed 每帧沿机头方向前进的距离（不乘 dt）
	Speed float32 `yaml:"speed"`

	// PitchStep 每次上/下输入改变的俯仰角（度）
	PitchStep float32 `yaml:"pitchStep"`

	// RollStep 每次左/右输入改变的滚转角（度）
	RollStep float32 `yaml:"rollStep"`

	// AngleLimit 俯仰和滚转的限幅（度），必须小于 90 以避免 front 与 up 退化
	AngleLimit float32 `yaml:"angleLimit"`

	// CenteringDivisor 自动回正系数：每帧 pitch -= pitch/divisor
	CenteringDivisor float32 `yaml:"centeringDivisor"`

	// ShootCooldown 射击冷却（秒）
	ShootCooldown float64 `yaml:"shootCooldown"`

	// MuzzleOffset 子弹发射点沿 up 和 front 的偏移
	MuzzleOffset float32 `yaml:"muzzleOffset"`

	// 出生点
	SpawnPosition [3]float32 `yaml:"spawnPosition"`
	SpawnYaw      float32    `yaml:"spawnYaw"`
}

// CameraSection 追尾镜头参数
type CameraSection struct {
	Zoom             float32 `yaml:"zoom"`
	ZoomMin          float32 `yaml:"zoomMin"`
	ZoomMax          float32 `yaml:"zoomMax"`
	MovementSpeed    float32 `yaml:"movementSpeed"`
	MouseSensitivity float32 `yaml:"mouseSensitivity"`
	Fov              float32 `yaml:"fov"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	AnchorHeight     float32 `yaml:"anchorHeight"`
	YawOffset        float32 `yaml:"yawOffset"`
	PitchOffset      float32 `yaml:"pitchOffset"`
}

// ParticleSection 子弹粒子参数
type ParticleSection struct {
	Life  float32    `yaml:"life"`  // 寿命（秒）
	Speed float32    `yaml:"speed"` // 飞行速度（单位/秒）
	Scale [3]float32 `yaml:"scale"` // 渲染缩放 (x, y, z)，x 沿飞行方向
}

// SkySection 昼夜循环参数
type SkySection struct {
	CycleSeconds  float64 `yaml:"cycleSeconds"`
	StartTime     float64 `yaml:"startTime"` // [0,1)，0.5 为正午
	GroundLevel   float32 `yaml:"groundLevel"`
	GroundSpacing float32 `yaml:"groundSpacing"`
}

// WindowSection 窗口参数
type WindowSection struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultFlightConfig 返回默认配置
func DefaultFlightConfig() *FlightConfig {
	return &FlightConfig{
		Flight: FlightSection{
			Speed:            0.5,
			PitchStep:        0.2,
			RollStep:         0.4,
			AngleLimit:       89,
			CenteringDivisor: 200,
			ShootCooldown:    0.1,
			MuzzleOffset:     1,
			SpawnPosition:    [3]float32{0, 0, 0},
			SpawnYaw:         70,
		},
		Camera: CameraSection{
			Zoom:             12,
			ZoomMin:          1,
			ZoomMax:          45,
			MovementSpeed:    45,
			MouseSensitivity: 0.1,
			Fov:              45,
			Near:             0.1,
			Far:              1000,
			AnchorHeight:     2,
			YawOffset:        0,
			PitchOffset:      -10,
		},
		Particle: ParticleSection{
			Life:  2,
			Speed: 80,
			Scale: [3]float32{0.4, 0.04, 0.04},
		},
		Sky: SkySection{
			CycleSeconds:  120,
			StartTime:     0.35,
			GroundLevel:   -30,
			GroundSpacing: 20,
		},
		Window: WindowSection{
			Width:  1024,
			Height: 768,
			Title:  "Skyflight",
		},
	}
}

// LoadFlightConfig 从文件加载飞行配置
//
// 参数:
//   - path: 配置文件路径（如 "data/flight.yaml"）
//
// 返回:
//   - *FlightConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadFlightConfig(path string) (*FlightConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flight config: %w", err)
	}
	return ParseFlightConfig(data)
}

// ParseFlightConfig 解析 YAML 配置
//
// 文件中未出现的字段保留默认值，解析后会执行 Validate。
func ParseFlightConfig(data []byte) (*FlightConfig, error) {
	cfg := DefaultFlightConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flight config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flight config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查项：
//   - 角度限幅在 (0, 90) 内，防止 front 与 up 平行
//   - 回正系数 > 0，冷却 >= 0
//   - ZoomMin <= Zoom <= ZoomMax，且 ZoomMin > 0
//   - 投影参数：0 < Fov < 180，0 < Near < Far
//   - 粒子寿命 > 0，速度和缩放 >= 0
//   - 天空时刻在 [0, 1)，周期 >= 0
//   - 窗口尺寸 > 0
func (c *FlightConfig) Validate() error {
	f := c.Flight
	if f.AngleLimit <= 0 || f.AngleLimit >= 90 {
		return fmt.Errorf("flight.angleLimit must be in (0, 90), got %.2f", f.AngleLimit)
	}
	if f.CenteringDivisor <= 0 {
		return fmt.Errorf("flight.centeringDivisor must be positive, got %.2f", f.CenteringDivisor)
	}
	if f.ShootCooldown < 0 {
		return fmt.Errorf("flight.shootCooldown must not be negative, got %.3f", f.ShootCooldown)
	}
	if f.PitchStep < 0 || f.RollStep < 0 {
		return fmt.Errorf("flight steps must not be negative: pitch=%.2f roll=%.2f", f.PitchStep, f.RollStep)
	}

	cam := c.Camera
	if cam.ZoomMin <= 0 || cam.ZoomMin > cam.ZoomMax {
		return fmt.Errorf("camera zoom range invalid: min(%.1f) max(%.1f)", cam.ZoomMin, cam.ZoomMax)
	}
	if cam.Zoom < cam.ZoomMin || cam.Zoom > cam.ZoomMax {
		return fmt.Errorf("camera.zoom %.1f outside [%.1f, %.1f]", cam.Zoom, cam.ZoomMin, cam.ZoomMax)
	}
	if cam.Fov <= 0 || cam.Fov >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %.1f", cam.Fov)
	}
	if cam.Near <= 0 || cam.Near >= cam.Far {
		return fmt.Errorf("camera clip planes invalid: near(%.3f) far(%.1f)", cam.Near, cam.Far)
	}
	if cam.PitchOffset < -f.AngleLimit || cam.PitchOffset > f.AngleLimit {
		return fmt.Errorf("camera.pitchOffset %.1f outside [-%.1f, %.1f]", cam.PitchOffset, f.AngleLimit, f.AngleLimit)
	}

	p := c.Particle
	if p.Life <= 0 {
		return fmt.Errorf("particle.life must be positive, got %.2f", p.Life)
	}
	if p.Speed < 0 {
		return fmt.Errorf("particle.speed must not be negative, got %.2f", p.Speed)
	}
	for i, v := range p.Scale {
		if v < 0 {
			return fmt.Errorf("particle.scale[%d] must not be negative, got %.2f", i, v)
		}
	}

	s := c.Sky
	if s.CycleSeconds < 0 {
		return fmt.Errorf("sky.cycleSeconds must not be negative, got %.1f", s.CycleSeconds)
	}
	if s.StartTime < 0 || s.StartTime >= 1 {
		return fmt.Errorf("sky.startTime must be in [0, 1), got %.2f", s.StartTime)
	}
	if s.GroundSpacing <= 0 {
		return fmt.Errorf("sky.groundSpacing must be positive, got %.1f", s.GroundSpacing)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size invalid: %dx%d", c.Window.Width, c.Window.Height)
	}

	return nil
}

// AspectRatio 返回窗口宽高比
func (w WindowSection) AspectRatio() float32 {
	return float32(w.Width) / float32(w.Height)
}
