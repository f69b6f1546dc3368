package game

import "github.com/gonewx/survivor/pkg/config"

// Experience 玩家经验与等级
//
// 升级所需经验随等级线性增长：max(1, base + (level-1)·growth)。
// 一次获得的经验可连续跨越多级，每一级各回调一次 OnLevelUp。
type Experience struct {
	cfg    config.ExperienceConfig
	level  int
	xp     int
	toNext int

	// OnLevelUp 每升一级回调一次，参数为新等级
	OnLevelUp func(level int)
}

// NewExperience 创建经验状态
func NewExperience(cfg config.ExperienceConfig) *Experience {
	e := &Experience{cfg: cfg}
	e.Reset()
	return e
}

// Reset 回到初始等级（新的一局）
func (e *Experience) Reset() {
	e.level = e.cfg.StartingLevel
	if e.level < 1 {
		e.level = 1
	}
	e.xp = 0
	e.toNext = e.requiredFor(e.level)
}

func (e *Experience) requiredFor(level int) int {
	n := e.cfg.BaseXPToLevel + (level-1)*e.cfg.XPGrowthPerLevel
	if n < 1 {
		return 1
	}
	return n
}

// Add 增加经验，返回本次提升的等级数；amount ≤ 0 为空操作
func (e *Experience) Add(amount int) int {
	if amount <= 0 {
		return 0
	}
	e.xp += amount

	gained := 0
	for e.xp >= e.toNext {
		e.xp -= e.toNext
		e.level++
		e.toNext = e.requiredFor(e.level)
		gained++
		if e.OnLevelUp != nil {
			e.OnLevelUp(e.level)
		}
	}
	return gained
}

// Level 当前等级（满足 modifier.LevelSource）
func (e *Experience) Level() int { return e.level }

// XP 当前等级内已积累的经验
func (e *Experience) XP() int { return e.xp }

// ToNext 升到下一级所需经验
func (e *Experience) ToNext() int { return e.toNext }

// Progress 当前等级进度 0~1
func (e *Experience) Progress() float64 {
	return float64(e.xp) / float64(e.toNext)
}
