package pool

import (
	"github.com/gonewx/survivor/pkg/components"
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/utils"
)

// Actor 池化对象（子弹/敌人/拾取物的标签联合）
//
// 存储归 Pool 独占；Acquire 到 Release 之间借给玩法代码使用一次。
// 每次 Acquire 都会重置全部运行时状态，玩法代码不得依赖上一次的状态。
type Actor struct {
	ID     uint64           // 全局唯一ID，跨重置递增
	Spawn  uint64           // 本次借出的序号，每次 Acquire 递增，从 1 开始
	Key    string           // 所属对象池键
	Kind   config.ActorKind // 种类标签
	Active bool             // 是否处于借出状态

	Transform  components.TransformComponent
	Health     components.HealthComponent
	Projectile components.ProjectileComponent // Kind == KindProjectile
	Enemy      components.EnemyComponent      // Kind == KindEnemy
	Pickup     components.PickupComponent     // Kind == KindPickup

	owner      *Pool
	generation uint64
	lent       bool
}

// Position 世界坐标
func (a *Actor) Position() utils.Vec2 {
	return a.Transform.Position
}

// TargetID 作为伤害目标的标识
func (a *Actor) TargetID() uint64 {
	return a.ID
}

// IsDead 是否已死亡（未借出的对象视为死亡）
func (a *Actor) IsDead() bool {
	return !a.lent || a.Health.IsDead()
}

// TakeDamage 扣除生命值；死亡后为空操作
func (a *Actor) TakeDamage(amount float64) (float64, bool) {
	if !a.lent {
		return 0, false
	}
	return a.Health.TakeDamage(amount)
}

// Generation 创建该对象时对象池的代数
func (a *Actor) Generation() uint64 {
	return a.generation
}

// IsLent 是否借出中
func (a *Actor) IsLent() bool {
	return a.lent
}

// reset 重置为刚出池的状态
func (a *Actor) reset(pos utils.Vec2, rot float64) {
	a.Transform.Reset(pos, rot)
	a.Health = components.HealthComponent{}
	a.Projectile.Clear()
	a.Enemy.Clear()
	a.Pickup.Clear()
}
