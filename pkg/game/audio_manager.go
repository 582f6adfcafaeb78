package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频采样率
const SampleRate = 48000

// 射击音效参数
const (
	shotDuration  = 0.08  // 秒
	shotStartFreq = 1400.0 // Hz
	shotEndFreq   = 300.0  // Hz
	shotAmplitude = 0.35
)

// AudioManager 音频管理器
// 职责：
//   - 播放射击音效（运行时合成，不依赖音频资源文件）
//   - 从 SettingsManager 读取音效开关和音量
//
// audioContext 为 nil 时所有播放调用静默返回（无声模式，用于测试和命令行工具）。
type AudioManager struct {
	settingsManager *SettingsManager
	shotPlayer      *audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（无声模式）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		settingsManager: sm,
	}
	if ctx != nil {
		am.shotPlayer = ctx.NewPlayerFromBytes(SynthesizeShot(ctx.SampleRate()))
		log.Printf("[AudioManager] Shot sound synthesized (%d Hz)", ctx.SampleRate())
	}
	return am
}

// PlayShot 播放射击音效
//
// 返回：
//   - bool: 是否实际播放
func (am *AudioManager) PlayShot() bool {
	if am.shotPlayer == nil {
		return false
	}

	volume := 1.0
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		volume = settings.SoundVolume
	}

	am.shotPlayer.SetVolume(volume)
	if err := am.shotPlayer.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind shot sound: %v", err)
	}
	am.shotPlayer.Play()
	return true
}

// SynthesizeShot 生成射击音效的 PCM 数据
//
// 格式为 ebiten 默认的 16 位有符号小端、双声道。
// 音色为从 shotStartFreq 扫到 shotEndFreq 的方波，指数衰减。
func SynthesizeShot(sampleRate int) []byte {
	n := int(float64(sampleRate) * shotDuration)
	buf := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := shotStartFreq + (shotEndFreq-shotStartFreq)*t
		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)

		v := shotAmplitude * math.Exp(-5*t)
		if phase >= 0.5 {
			v = -v
		}
		sample := uint16(int16(v * math.MaxInt16))

		binary.LittleEndian.PutUint16(buf[i*4:], sample)
		binary.LittleEndian.PutUint16(buf[i*4+2:], sample)
	}
	return buf
}
