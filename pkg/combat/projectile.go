package combat

import (
	"math"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

const minFactor = 0.1

// ArmProjectile 按技能与当前乘数快照武装子弹
//
// 速度、穿透、存活时间在发射时确定；伤害与暴击在命中时实时读取乘数。
// 穿透 = max(1, round(基础穿透 × 穿透乘数))，四舍六入五成双。
func (r *Resolver) ArmProjectile(a *pool.Actor, ability *config.AbilityDescriptor, dir utils.Vec2) {
	if a == nil || ability == nil {
		return
	}
	snap := r.snapshot()
	tuning := math.Max(minFactor, r.cfg.ProjectileSpeedTuning)

	if dir.LenSq() < 0.001 {
		dir = utils.Vec2{X: 1}
	}
	dir = dir.Normalize()

	p := &a.Projectile
	p.Ability = ability.Name
	p.Damage = math.Max(0, ability.Damage)
	p.CritChance = utils.Clamp01(ability.CritChance)
	p.CritMultiplier = math.Max(1, ability.CritMultiplier)
	p.Speed = math.Max(minFactor, ability.ProjectileSpeed*math.Max(minFactor, snap.ProjectileSpeed)*tuning)
	p.Direction = dir
	p.PierceLeft = max(1, int(math.RoundToEven(float64(ability.PierceCount)*math.Max(minFactor, snap.Pierce))))
	p.Radius = r.cfg.ProjectileRadius
	p.Lifetime.Arm(math.Max(minFactor, ability.ProjectileLifetime*math.Max(minFactor, snap.ProjectileLifetime)))

	a.Transform.Rotation = dir.Angle()
	a.Transform.Velocity = dir.Scale(p.Speed)
}

// AdvanceProjectile 子弹飞行一步，超时则回收
//
// 返回：
//   - bool: 子弹是否已不在场上（本次回收或此前已回收）
func (r *Resolver) AdvanceProjectile(a *pool.Actor, dt float64) bool {
	if a == nil || !a.IsLent() {
		return true
	}
	if dt < 0 {
		dt = 0
	}
	a.Transform.Position = a.Transform.Position.Add(a.Projectile.Direction.Scale(a.Projectile.Speed * dt))
	if a.Projectile.Lifetime.Advance(dt) {
		r.release(a)
		return true
	}
	return false
}
