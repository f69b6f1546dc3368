package components

import "github.com/gonewx/survivor/pkg/utils"

// ProjectileComponent 子弹的运行时数值
// 由 combat.Resolver.ArmProjectile 从技能与当前乘数快照写入
type ProjectileComponent struct {
	Ability        string     // 发射该子弹的技能名
	Damage         float64    // 单次命中伤害（已乘伤害乘数之前的基础值）
	CritChance     float64    // 基础暴击率 0~1
	CritMultiplier float64    // 基础暴击倍率 ≥1
	Speed          float64    // 飞行速度
	Direction      utils.Vec2 // 飞行方向（单位向量）
	PierceLeft     int        // 剩余可命中次数，归零即回收
	Radius         float64    // 命中半径
	Lifetime       LifetimeComponent

	hits []uint64 // 已命中的目标ID，同一子弹不重复命中同一目标
}

// Clear 清空为初始状态（池回收时调用）
func (p *ProjectileComponent) Clear() {
	hits := p.hits[:0]
	*p = ProjectileComponent{hits: hits}
}

// HasHit 是否已命中过该目标
func (p *ProjectileComponent) HasHit(id uint64) bool {
	for _, h := range p.hits {
		if h == id {
			return true
		}
	}
	return false
}

// MarkHit 记录命中目标
func (p *ProjectileComponent) MarkHit(id uint64) {
	p.hits = append(p.hits, id)
}
