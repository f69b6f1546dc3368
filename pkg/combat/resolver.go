package combat

import (
	"math"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/event"
	"github.com/gonewx/survivor/pkg/modifier"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// Target 可受伤目标（pool.Actor 与玩家均满足）
type Target interface {
	TargetID() uint64
	IsDead() bool
	TakeDamage(amount float64) (float64, bool)
	Position() utils.Vec2
}

// ModifierSource 实时乘数来源（modifier.Accumulator 满足）
type ModifierSource interface {
	Snapshot() modifier.State
}

// Releaser 对象归还（pool.Pool 满足）
type Releaser interface {
	Release(a *pool.Actor)
}

// RandSource 暴击随机数来源
type RandSource interface {
	Float64() float64
}

// ContactKey 接触伤害冷却键：防守方 + 攻击方 + 攻击方槽位
//
// 池化对象使用 pool.Actor.Spawn（每次借出唯一），玩家使用 entities.PlayerTargetID。
// 回收后重新借出的实例不会继承上一次的冷却。
type ContactKey struct {
	Defender uint64
	Attacker uint64
	Slot     int
}

// Resolver 战斗结算
//
// 职责：
//   - 子弹命中：实时读取乘数快照，逐次独立掷暴击，递减穿透并在归零时回收
//   - 接触伤害：按 (防守方, 攻击方, 槽位) 限频，计时每次 Tick 推进并清理
//   - 子弹武装与飞行：按快照写入速度/穿透/存活时间，超时回收
//   - 伤害遥测：每次结算发布 DamageDealt
//
// 已死亡目标的伤害为空操作。
type Resolver struct {
	cfg      config.CombatConfig
	mods     ModifierSource
	releaser Releaser
	rng      RandSource
	bus      *event.Bus
	contacts map[ContactKey]float64

	hits  int
	crits int

	// OnKill 目标因本次伤害死亡时回调；接触伤害的 attacker 为 nil
	OnKill func(defender Target, attacker *pool.Actor)
}

// NewResolver 创建战斗结算器
//
// 参数：
//   - cfg: 战斗配置
//   - mods: 实时乘数来源，nil 时使用中性乘数
//   - releaser: 子弹回收目标
//   - rng: 暴击随机数来源
//   - bus: 事件总线，可为 nil
//
// 返回：
//   - *Resolver: 战斗结算器
func NewResolver(cfg config.CombatConfig, mods ModifierSource, releaser Releaser, rng RandSource, bus *event.Bus) *Resolver {
	return &Resolver{
		cfg:      cfg,
		mods:     mods,
		releaser: releaser,
		rng:      rng,
		bus:      bus,
		contacts: make(map[ContactKey]float64),
	}
}

func (r *Resolver) snapshot() modifier.State {
	if r.mods == nil {
		return modifier.NeutralState()
	}
	return r.mods.Snapshot()
}

// ApplyHit 结算一次离散命中
//
// 参数：
//   - attacker: 攻击方子弹，可为 nil（无穿透记账）
//   - defender: 目标
//   - baseDamage: 基础伤害（乘以实时伤害乘数）
//
// 返回：
//   - float64: 实际结算的伤害；目标已死亡或子弹已退役时为 0
func (r *Resolver) ApplyHit(attacker *pool.Actor, defender Target, baseDamage float64) float64 {
	if defender == nil || defender.IsDead() {
		return 0
	}

	baseCrit, baseCritMul := r.cfg.BaseCritChance, r.cfg.BaseCritMultiplier
	projectile := attacker != nil && attacker.Kind == config.KindProjectile
	if projectile {
		if !attacker.IsLent() || attacker.Projectile.PierceLeft <= 0 {
			return 0
		}
		if attacker.Projectile.HasHit(defender.TargetID()) {
			return 0
		}
		baseCrit, baseCritMul = attacker.Projectile.CritChance, attacker.Projectile.CritMultiplier
	}

	snap := r.snapshot()
	damage := math.Max(0, baseDamage*math.Max(minFactor, snap.Damage))
	critChance := utils.Clamp01(baseCrit * math.Max(0, snap.CritChance))
	crit := r.rng != nil && r.rng.Float64() < critChance
	if crit {
		damage *= math.Max(1, baseCritMul*math.Max(minFactor, snap.CritDamage))
	}

	applied, died := defender.TakeDamage(damage)
	r.hits++
	if crit {
		r.crits++
	}
	r.emit(defender, applied, crit)
	if died && r.OnKill != nil {
		r.OnKill(defender, attacker)
	}

	if projectile {
		attacker.Projectile.MarkHit(defender.TargetID())
		attacker.Projectile.PierceLeft--
		if attacker.Projectile.PierceLeft <= 0 {
			r.release(attacker)
		}
	}
	return applied
}

// ApplyContact 结算一次接触伤害
//
// 同一 key 在 interval（不小于 MinContactInterval）内只结算一次。
//
// 返回：
//   - float64: 实际结算的伤害；冷却中或目标已死亡时为 0
func (r *Resolver) ApplyContact(key ContactKey, defender Target, damage, interval float64) float64 {
	if defender == nil || defender.IsDead() {
		return 0
	}
	if t, ok := r.contacts[key]; ok && t > 0 {
		return 0
	}

	applied, died := defender.TakeDamage(damage)
	r.contacts[key] = math.Max(r.cfg.MinContactInterval, interval)
	r.emit(defender, applied, false)
	if died && r.OnKill != nil {
		r.OnKill(defender, nil)
	}
	return applied
}

// ContactReady 该 key 当前是否可以结算接触伤害
func (r *Resolver) ContactReady(key ContactKey) bool {
	t, ok := r.contacts[key]
	return !ok || t <= 0
}

// Tick 推进接触冷却并清理到期项
func (r *Resolver) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	for k, t := range r.contacts {
		t -= dt
		if t <= 0 {
			delete(r.contacts, k)
		} else {
			r.contacts[k] = t
		}
	}
}

// Reset 清空冷却与统计（新的一局）
func (r *Resolver) Reset() {
	r.contacts = make(map[ContactKey]float64)
	r.hits = 0
	r.crits = 0
}

// ContactCount 当前存活的接触冷却数
func (r *Resolver) ContactCount() int { return len(r.contacts) }

// Hits 本局结算的命中数
func (r *Resolver) Hits() int { return r.hits }

// Crits 本局的暴击数
func (r *Resolver) Crits() int { return r.crits }

func (r *Resolver) emit(defender Target, amount float64, crit bool) {
	if amount <= 0 {
		return
	}
	r.bus.Publish(event.TypeDamageDealt, event.DamageDealt{
		Position: defender.Position(),
		Amount:   amount,
		Crit:     crit,
	})
}

func (r *Resolver) release(a *pool.Actor) {
	if r.releaser != nil {
		r.releaser.Release(a)
	}
}
