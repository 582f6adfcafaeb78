package game

import (
	"encoding/binary"
	"testing"
)

// TestSynthesizeShot_Format 验证合成音效的长度和声道
func TestSynthesizeShot_Format(t *testing.T) {
	data := SynthesizeShot(SampleRate)

	wantSamples := int(float64(SampleRate) * shotDuration)
	if len(data) != wantSamples*4 {
		t.Fatalf("expected %d bytes, got %d", wantSamples*4, len(data))
	}

	// 左右声道相同
	for i := 0; i < len(data); i += 4 {
		l := binary.LittleEndian.Uint16(data[i:])
		r := binary.LittleEndian.Uint16(data[i+2:])
		if l != r {
			t.Fatalf("sample %d: left %d != right %d", i/4, l, r)
		}
	}
}

// TestSynthesizeShot_Decays 音效应当衰减：结尾振幅小于开头
func TestSynthesizeShot_Decays(t *testing.T) {
	data := SynthesizeShot(SampleRate)

	peak := func(from, to int) int {
		max := 0
		for i := from; i < to; i++ {
			v := int(int16(binary.LittleEndian.Uint16(data[i*4:])))
			if v < 0 {
				v = -v
			}
			if v > max {
				max = v
			}
		}
		return max
	}

	n := len(data) / 4
	head := peak(0, n/10)
	tail := peak(n-n/10, n)
	if head == 0 {
		t.Fatal("shot sound should not be silent")
	}
	if tail >= head {
		t.Errorf("expected decay, head peak %d tail peak %d", head, tail)
	}
}

// TestAudioManager_Silent 无音频上下文时播放静默返回
func TestAudioManager_Silent(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if am.PlayShot() {
		t.Error("PlayShot without audio context should return false")
	}
}
