// Package main 无窗口运行飞行场景，打印飞机轨迹和镜头状态
//
// Usage:
//
//	go run ./cmd/verify_flight [flags]
//
// Flags:
//
//	--frames <n>      模拟帧数（默认 180）
//	--every <n>       每 n 帧打印一次状态（默认 30）
//	--control <dir>   每帧施加的操纵：up/down/left/right，空表示不操纵
//	--shoot           每帧尝试射击（受冷却限制）
//	--config <path>   场景配置文件（默认使用内置默认值）
//	--verbose         显示详细日志
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/skyflight/pkg/config"
	"github.com/decker502/skyflight/pkg/game"
	"github.com/decker502/skyflight/pkg/scenes"
)

const frameDelta = 1.0 / 60.0

var (
	frames     = flag.Int("frames", 180, "模拟帧数")
	every      = flag.Int("every", 30, "每 n 帧打印一次状态")
	control    = flag.String("control", "", "每帧施加的操纵 (up/down/left/right)")
	shoot      = flag.Bool("shoot", false, "每帧尝试射击")
	configPath = flag.String("config", "", "场景配置文件路径")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

var directions = map[string]game.ControlDirection{
	"up":    game.ControlUpward,
	"down":  game.ControlDownward,
	"left":  game.ControlLeft,
	"right": game.ControlRight,
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultFlightConfig()
	if *configPath != "" {
		loaded, err := config.LoadFlightConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	dir, steer := directions[*control]
	if *control != "" && !steer {
		fmt.Fprintf(os.Stderr, "未知操纵方向: %q\n", *control)
		os.Exit(2)
	}
	if *every <= 0 {
		*every = 1
	}

	gs := game.NewGameState(nil)
	scene, err := scenes.NewFlightScene(cfg, gs, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建场景失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%6s %8s %9s %9s %9s %8s %8s %8s %5s %7s\n",
		"frame", "t", "x", "y", "z", "yaw", "pitch", "roll", "live", "zoom")
	printRow(scene, gs)

	for i := 0; i < *frames; i++ {
		if steer {
			scene.Commands().Push(game.Command{Kind: game.CommandControl, Direction: dir})
		}
		if *shoot {
			scene.Commands().Push(game.Command{Kind: game.CommandShoot, Time: gs.Clock})
		}
		scene.Update(frameDelta)

		if (i+1)%*every == 0 || i+1 == *frames {
			printRow(scene, gs)
		}
	}

	flight := scene.Flight().State()
	fmt.Printf("\nfront=(%.3f, %.3f, %.3f) up=(%.3f, %.3f, %.3f) launched=%d\n",
		flight.Front.X(), flight.Front.Y(), flight.Front.Z(),
		flight.Up.X(), flight.Up.Y(), flight.Up.Z(),
		scene.Particles().TotalLaunched())
}

func printRow(scene *scenes.FlightScene, gs *game.GameState) {
	flight := scene.Flight().State()
	cam := scene.Camera().State()
	fmt.Printf("%6d %8.3f %9.3f %9.3f %9.3f %8.3f %8.3f %8.3f %5d %7.2f\n",
		gs.Frame, gs.Clock,
		flight.Position.X(), flight.Position.Y(), flight.Position.Z(),
		flight.Yaw, flight.Pitch, flight.Roll,
		scene.Particles().LiveCount(), cam.Zoom)
}
