//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设为 "1" 时桌面端按移动端处理（显示触摸操作提示）
const MobileEmulateEnv = "SKYFLIGHT_MOBILE_EMULATE"

// IsMobile 桌面端编译时返回 false，除非设置了 MobileEmulateEnv
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
