//go:build !mobile

// Package mobile 的桌面端占位
//
// 不带 -tags mobile 构建时只编译本文件，保证 ./... 能正常构建和测试。
package mobile

// Dummy 与 mobile.go 中的同名函数保持一致，供 ebitenmobile 识别包
func Dummy() {}
