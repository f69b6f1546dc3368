// survivor_tty 在终端里运行一局（雷达视图 + 提示音）
//
// 用法：
//
//	go run ./cmd/survivor_tty [-seed N] [-scale 2] [-mute] [-verbose]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/survivor/pkg/game"
	"github.com/gonewx/survivor/pkg/tty"
	"github.com/quasilyte/gdata/v2"
)

const frameInterval = 16 * time.Millisecond

func main() {
	dataDir := flag.String("data", "data", "数据目录")
	seed := flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	scale := flag.Float64("scale", 2, "每世界单位的列数")
	mute := flag.Bool("mute", false, "关闭提示音")
	verbose := flag.Bool("verbose", false, "把日志写到 survivor_tty.log")
	flag.Parse()

	if err := run(*dataDir, *seed, *scale, *mute, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "survivor_tty: %v\n", err)
		os.Exit(1)
	}
}

func run(dataDir string, seed int64, scale float64, mute, verbose bool) error {
	// 终端占用标准输出，日志只能写文件
	if verbose {
		f, err := os.Create("survivor_tty.log")
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	data, err := game.LoadData(dataDir)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store, err := gdata.Open(gdata.Config{AppName: "survivor"})
	if err != nil {
		log.Printf("[TTY] Warning: Failed to open storage: %v", err)
		store = nil
	}
	settings := game.NewSettingsManager(store)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	w, h := screen.Size()
	r := game.NewRun(game.Options{
		Data:       data,
		Seed:       seed,
		Store:      store,
		ViewWidth:  float64(w) / scale,
		ViewHeight: float64(h) / (scale / 2),
		Verbose:    verbose,
	})

	radar := tty.NewRadar(screen, scale)
	radar.SetShowDamage(settings.Settings().ShowDamageNumbers)
	radar.Attach(r.Bus())
	defer radar.Detach()

	if !mute && settings.EffectiveVolume() > 0 {
		if err := tty.InitSpeaker(); err != nil {
			log.Printf("[TTY] Warning: audio disabled: %v", err)
		} else {
			blipper := tty.NewBlipper(settings.EffectiveVolume(), nil)
			blipper.Attach(r.Bus())
			defer blipper.Detach()
		}
	}

	controls := tty.NewControls()
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go tty.PumpEvents(screen, events, done)

	r.Start()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch controls.HandleKey(ev) {
				case tty.ActionQuit:
					return nil
				case tty.ActionPause:
					r.TogglePause()
				case tty.ActionRestart:
					if r.State() == game.StateGameOver {
						r.Start()
					}
				case tty.ActionChoose:
					r.ChooseAbility(controls.Choice())
				}
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			controls.Advance(dt)
			r.SetMoveIntent(controls.Intent())
			r.Update(dt)
			radar.Advance(dt)
			radar.Draw(r)
		}
	}
}
