//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建：
//
//	ebitenmobile bind -target android -tags mobile ./mobile    # Android
//	ebitenmobile bind -target ios -tags mobile ./mobile        # iOS (仅 macOS)
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/skyflight/pkg/app"
	"github.com/decker502/skyflight/pkg/embedded"
)

func init() {
	// 初始化嵌入配置，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 移动端只使用内置配置
	cfg := app.Config{
		Verbose: true, // Enable verbose logging for debugging
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
