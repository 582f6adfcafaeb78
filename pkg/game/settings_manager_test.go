package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}

	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}

	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}

	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}

	if !settings.ShowHUD {
		t.Error("ShowHUD: got false, want true")
	}

	if settings.MouseSensitivity != 0.1 {
		t.Errorf("MouseSensitivity: got %v, want 0.1", settings.MouseSensitivity)
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	gdataManager := openTestGdata(t, "test_skyflight_settings")

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil after initialization")
	}

	if settings.SoundVolume != 0.8 {
		t.Errorf("Initial SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	// 降级模式下 Save 不报错
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_skyflight_settings_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetSoundVolume(0.6)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetShowHUD(false)
	sm1.SetMouseSensitivity(0.25)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()

	if settings.SoundVolume != 0.6 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.6", settings.SoundVolume)
	}
	if settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if settings.ShowHUD {
		t.Error("Loaded ShowHUD: got true, want false")
	}
	if settings.MouseSensitivity != 0.25 {
		t.Errorf("Loaded MouseSensitivity: got %v, want 0.25", settings.MouseSensitivity)
	}
}

// TestSettingsLoadPartial 旧存档缺失的字段使用默认值
func TestSettingsLoadPartial(t *testing.T) {
	gdataManager := openTestGdata(t, "test_skyflight_settings_partial")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: true\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	settings := sm.GetSettings()

	if !settings.Fullscreen {
		t.Error("Fullscreen should be loaded as true")
	}
	if settings.MouseSensitivity != 0.1 {
		t.Errorf("missing MouseSensitivity should default to 0.1, got %v", settings.MouseSensitivity)
	}
	if !settings.ShowHUD {
		t.Error("missing ShowHUD should default to true")
	}
}

// TestSetSoundVolumeClamp 测试 SetSoundVolume 范围校验
func TestSetSoundVolumeClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},  // 正常值
		{0.0, 0.0},  // 下限
		{1.0, 1.0},  // 上限
		{-0.5, 0.0}, // 低于下限
		{1.5, 1.0},  // 高于上限
	}

	for _, tt := range tests {
		sm.SetSoundVolume(tt.input)
		if sm.GetSettings().SoundVolume != tt.expected {
			t.Errorf("SetSoundVolume(%v): got %v, want %v",
				tt.input, sm.GetSettings().SoundVolume, tt.expected)
		}
	}
}

// TestSetMouseSensitivityClamp 测试鼠标灵敏度范围校验
func TestSetMouseSensitivityClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.2, 0.2},
		{0, MinMouseSensitivity},
		{-1, MinMouseSensitivity},
		{5, MaxMouseSensitivity},
	}

	for _, tt := range tests {
		sm.SetMouseSensitivity(tt.input)
		if got := sm.GetSettings().MouseSensitivity; got != tt.expected {
			t.Errorf("SetMouseSensitivity(%v): got %v, want %v", tt.input, got, tt.expected)
		}
	}
}
