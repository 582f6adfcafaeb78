//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 桌面端默认不是移动模式，环境变量可强制打开
func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv(MobileEmulateEnv, "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv(MobileEmulateEnv, "1")
	if !IsMobile() {
		t.Errorf("IsMobile() should return true when %s=1", MobileEmulateEnv)
	}
}
