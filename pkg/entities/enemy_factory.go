package entities

import (
	"math"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// EnemyConfigurer 把难度乘数落到敌人实例的具体数值上
//
// 数值公式（mult 为难度乘数）：
//   - 速度 = max(0.1, baseSpeed × mult × SpeedMultiplier)
//   - 接触伤害 = baseDamage × mult
//   - 血量 = max(1, baseHp × mult × lerp(EarlyHPMultiplier, 1, invLerp(1, FullHPDifficultyAt, mult)))
//
// 实现 spawn.EnemyConfigurer。
type EnemyConfigurer struct {
	cfg config.EnemyTuning
}

// NewEnemyConfigurer 创建敌人数值配置器
func NewEnemyConfigurer(cfg config.EnemyTuning) *EnemyConfigurer {
	return &EnemyConfigurer{cfg: cfg}
}

// Configure 写入血量/速度/伤害
func (c *EnemyConfigurer) Configure(a *pool.Actor, def config.EnemyDefinition, mult float64) {
	if a == nil {
		return
	}
	if mult < 1 {
		mult = 1
	}

	a.Enemy.Clear()
	a.Enemy.TypeID = def.ID
	a.Enemy.Speed = math.Max(0.1, def.BaseSpeed*mult*c.speedScale())
	a.Enemy.ContactDamage = def.BaseDamage * mult
	a.Enemy.Radius = def.Radius
	a.Enemy.XPGemKey = def.XPGemKey
	a.Enemy.DifficultyMultiplier = mult
	a.Health.Reset(c.HP(def.BaseHP, mult))
	a.Transform.Velocity = utils.Vec2{}
}

// HP 指定难度下的血量
// 前期血量打折，难度乘数达到 FullHPDifficultyAt 时恢复满额；
// FullHPDifficultyAt <= 1 时插值区间退化，折扣始终生效
func (c *EnemyConfigurer) HP(baseHP, mult float64) float64 {
	t := utils.InverseLerp(1, c.cfg.FullHPDifficultyAt, mult)
	return math.Max(1, baseHP*mult*utils.Lerp(c.cfg.EarlyHPMultiplier, 1, t))
}

func (c *EnemyConfigurer) speedScale() float64 {
	if c.cfg.SpeedMultiplier <= 0 {
		return 1
	}
	return c.cfg.SpeedMultiplier
}
