package game

import (
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/modifier"
)

// Owner 已拥有技能查询（modifier.Accumulator 满足）
type Owner interface {
	Owns(name string) bool
}

// ChoiceRand 升级候选的随机数来源（*rand.Rand 满足）
type ChoiceRand interface {
	Float64() float64
	Intn(n int) int
}

// LevelUpGenerator 升级候选生成
//
// 候选来自技能库中尚未拥有的技能。
// 以 DebuffOnlyRollChance 的概率只从名称含减益词的技能中抽取（数量足够时），
// 否则从全部未拥有技能中无放回抽取 PickCount 个。
type LevelUpGenerator struct {
	cfg       config.LevelUpConfig
	abilities []*config.AbilityDescriptor
	rng       ChoiceRand
}

// NewLevelUpGenerator 创建升级候选生成器
func NewLevelUpGenerator(cfg config.LevelUpConfig, abilities []*config.AbilityDescriptor, rng ChoiceRand) *LevelUpGenerator {
	return &LevelUpGenerator{cfg: cfg, abilities: abilities, rng: rng}
}

// Generate 生成一组候选，可能少于 PickCount（技能库耗尽时为空）
func (g *LevelUpGenerator) Generate(owned Owner) []*config.AbilityDescriptor {
	var pool, debuffs []*config.AbilityDescriptor
	for _, ab := range g.abilities {
		if ab == nil || (owned != nil && owned.Owns(ab.Name)) {
			continue
		}
		pool = append(pool, ab)
		if modifier.MatchesAny(ab.Name, g.cfg.DebuffTokens) {
			debuffs = append(debuffs, ab)
		}
	}

	count := g.cfg.PickCount
	if count < 0 {
		count = 0
	}
	if count > len(pool) {
		count = len(pool)
	}
	if count == 0 {
		return nil
	}

	if len(debuffs) >= count && g.rng.Float64() < g.cfg.DebuffOnlyRollChance {
		g.shuffle(debuffs)
		return debuffs[:count]
	}
	g.shuffle(pool)
	return pool[:count]
}

func (g *LevelUpGenerator) shuffle(list []*config.AbilityDescriptor) {
	for i := len(list) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		list[i], list[j] = list[j], list[i]
	}
}
