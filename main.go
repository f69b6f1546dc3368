package main

import (
	"flag"
	"log"
	"time"

	"github.com/gonewx/survivor/pkg/app"
	"github.com/gonewx/survivor/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志")
	seed := flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	noSave := flag.Bool("no-save", false, "不读写本地进度")
	flag.Parse()

	embedded.Init(dataFS)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	appName := "survivor"
	if *noSave {
		appName = ""
	}

	game, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		Seed:     *seed,
		DataDir:  "data",
		AppName:  appName,
		ShowHelp: true,
	})
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Survivor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
