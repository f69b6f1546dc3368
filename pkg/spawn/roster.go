package spawn

import "github.com/gonewx/survivor/pkg/config"

// RandSource 随机数来源（*rand.Rand 满足该接口）
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// Roster 敌人名册
type Roster struct {
	enemies []config.EnemyDefinition
}

// NewRoster 创建敌人名册
func NewRoster(defs []config.EnemyDefinition) *Roster {
	return &Roster{enemies: append([]config.EnemyDefinition(nil), defs...)}
}

// Len 敌人类型数
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.enemies)
}

// All 全部敌人定义
func (r *Roster) All() []config.EnemyDefinition {
	if r == nil {
		return nil
	}
	return r.enemies
}

// Candidates 当前难度阶可出现的敌人（step >= minDifficultyStep）
func (r *Roster) Candidates(step int) []config.EnemyDefinition {
	if r == nil {
		return nil
	}
	result := make([]config.EnemyDefinition, 0, len(r.enemies))
	for _, e := range r.enemies {
		if step >= e.MinDifficultyStep {
			result = append(result, e)
		}
	}
	return result
}

// CandidatesOrAll 过滤结果为空时回退到完整名册，名册非空时结果必然非空
func (r *Roster) CandidatesOrAll(step int) []config.EnemyDefinition {
	if c := r.Candidates(step); len(c) > 0 {
		return c
	}
	return r.All()
}

// PickWeighted 按权重随机选择
//
// 累计权重扫描，权重下限为 1（0 或负数按 1 处理）。
// 随机数越界时确定性地回退到第一个元素；列表为空返回 false。
func PickWeighted(list []config.EnemyDefinition, rng RandSource) (config.EnemyDefinition, bool) {
	if len(list) == 0 {
		return config.EnemyDefinition{}, false
	}

	total := 0
	for _, e := range list {
		total += weightOf(e)
	}

	roll := rng.Intn(total)
	sum := 0
	for _, e := range list {
		sum += weightOf(e)
		if roll < sum {
			return e, true
		}
	}
	return list[0], true
}

func weightOf(e config.EnemyDefinition) int {
	if e.Weight < 1 {
		return 1
	}
	return e.Weight
}
