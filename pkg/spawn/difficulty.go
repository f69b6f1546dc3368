package spawn

import (
	"log"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/event"
)

// DifficultyClock 时间驱动的难度缩放
//
// 每经过 StepInterval 秒游戏时间，难度阶 +1，难度乘数 += StepIncrement。
// 与波次/生成数量无关；只应在 Gameplay 状态下推进。
type DifficultyClock struct {
	cfg        config.DifficultyConfig
	bus        *event.Bus
	elapsed    float64
	next       float64
	step       int
	multiplier float64

	// OnScaled 难度变化回调 (step, multiplier)，可为 nil
	OnScaled func(step int, multiplier float64)
}

// NewDifficultyClock 创建难度时钟，bus 可为 nil
func NewDifficultyClock(cfg config.DifficultyConfig, bus *event.Bus) *DifficultyClock {
	c := &DifficultyClock{cfg: cfg, bus: bus}
	c.Reset()
	return c
}

// Tick 推进游戏时间，返回本次提升的阶数
// 单次 dt 跨越多个间隔时逐阶补齐，每阶各发一次事件
func (c *DifficultyClock) Tick(dt float64) int {
	if dt <= 0 || c.cfg.StepInterval <= 0 {
		return 0
	}
	c.elapsed += dt

	advanced := 0
	for c.elapsed >= c.next {
		c.step++
		c.multiplier += c.cfg.StepIncrement
		c.next += c.cfg.StepInterval
		advanced++

		log.Printf("[DifficultyClock] Difficulty step %d (multiplier %.2f) at %.1fs", c.step, c.multiplier, c.elapsed)
		if c.OnScaled != nil {
			c.OnScaled(c.step, c.multiplier)
		}
		c.bus.Publish(event.TypeDifficultyScaled, event.DifficultyScaled{Step: c.step, Multiplier: c.multiplier})
	}
	return advanced
}

// Reset 回到第 0 阶（仅在新的一局时调用）
func (c *DifficultyClock) Reset() {
	c.elapsed = 0
	c.step = 0
	c.multiplier = 1
	c.next = c.cfg.StepInterval
}

// Step 当前难度阶
func (c *DifficultyClock) Step() int { return c.step }

// Multiplier 当前难度乘数（≥1）
func (c *DifficultyClock) Multiplier() float64 { return c.multiplier }

// Elapsed 已计入的游戏时间
func (c *DifficultyClock) Elapsed() float64 { return c.elapsed }
