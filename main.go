package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/skyflight/pkg/app"
	"github.com/decker502/skyflight/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "场景配置文件路径（默认使用内置 data/flight.yaml）")
)

func main() {
	flag.Parse()

	// 初始化嵌入配置，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	window := gameApp.FlightConfig().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the game loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}

	// 窗口关闭后保存设置
	gameApp.GetSceneManager().Exit()
}
