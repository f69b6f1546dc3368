// verify_balance 无窗口模拟一局并打印平衡遥测
//
// 玩家绕圈移动，升级时总是选择第一个候选。
// 用法：
//
//	go run ./cmd/verify_balance [-data data] [-seed 1] [-seconds 300] [-verbose]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/gonewx/survivor/pkg/event"
	"github.com/gonewx/survivor/pkg/game"
	"github.com/gonewx/survivor/pkg/utils"
)

const (
	tickRate       = 60
	reportInterval = 10.0 // 秒
	circlePeriod   = 8.0  // 绕圈周期（秒）
)

var (
	dataDir = flag.String("data", "data", "数据目录")
	seed    = flag.Int64("seed", 1, "随机种子")
	seconds = flag.Float64("seconds", 300, "最长模拟秒数")
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	data, err := game.LoadData(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify_balance: %v\n", err)
		os.Exit(1)
	}

	r := game.NewRun(game.Options{
		Data:       data,
		Seed:       *seed,
		ViewWidth:  30,
		ViewHeight: 20,
		Verbose:    *verbose,
	})

	var clock float64
	bus := r.Bus()
	bus.Subscribe(event.TypeWaveStarted, func(e event.Event) {
		if w, ok := e.Data.(event.WaveStarted); ok {
			fmt.Printf("[%6.1fs] wave %d: %d enemies\n", clock, w.Index, w.Count)
		}
	})
	bus.Subscribe(event.TypeDifficultyScaled, func(e event.Event) {
		if d, ok := e.Data.(event.DifficultyScaled); ok {
			fmt.Printf("[%6.1fs] difficulty step %d: x%.2f\n", clock, d.Step, d.Multiplier)
		}
	})
	bus.Subscribe(event.TypeAbilityAcquired, func(e event.Event) {
		if a, ok := e.Data.(event.AbilityAcquired); ok {
			fmt.Printf("[%6.1fs] acquired %s\n", clock, a.Name)
		}
	})

	r.Start()
	dt := 1.0 / tickRate
	nextReport := reportInterval

	for clock < *seconds && r.State() != game.StateGameOver {
		if len(r.Choices()) > 0 {
			r.ChooseAbility(0)
		}
		angle := 2 * math.Pi * clock / circlePeriod
		r.SetMoveIntent(utils.Vec2{X: math.Cos(angle), Y: math.Sin(angle)})
		r.Update(dt)
		clock += dt

		if clock >= nextReport {
			report(r, clock)
			nextReport += reportInterval
		}
	}

	fmt.Println("---")
	report(r, clock)
	fmt.Printf("final score %d, kills %d, level %d, state %s\n",
		r.Score().Current(), r.Kills(), r.Experience().Level(), r.State())
}

func report(r *game.Run, clock float64) {
	m := r.Abilities().Snapshot()
	p := r.Player()
	fmt.Printf("[%6.1fs] hp %.0f/%.0f lv %d kills %d wave %d diff x%.2f | dmg x%.2f spd x%.2f cd x%.2f pierce x%.2f crit x%.2f/%.2f move x%.2f orbit +%d\n",
		clock, p.Health.Current, p.Health.Max, r.Experience().Level(), r.Kills(),
		r.Director().WaveIndex(), r.Clock().Multiplier(),
		m.Damage, m.ProjectileSpeed, m.Cooldown, m.Pierce, m.CritChance, m.CritDamage, m.MoveSpeed, m.ExtraOrbiters)
}
