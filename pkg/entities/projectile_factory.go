package entities

import (
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// ActorSource 池化实例来源（pool.Pool 满足）
type ActorSource interface {
	Acquire(key string, pos utils.Vec2, rot float64) *pool.Actor
}

// ProjectileArmer 子弹武装步骤（combat.Resolver 满足）
type ProjectileArmer interface {
	ArmProjectile(a *pool.Actor, ability *config.AbilityDescriptor, dir utils.Vec2)
}

// NewProjectile 从技能对应的对象池中取出子弹并武装
//
// 参数：
//   - src: 对象池
//   - armer: 按当前乘数写入速度/穿透/存活时间
//   - ability: 发射子弹的技能
//   - origin: 发射位置
//   - dir: 飞行方向
//
// 返回：
//   - *pool.Actor: 子弹实例；技能无子弹或对象池耗尽时返回 nil
func NewProjectile(src ActorSource, armer ProjectileArmer, ability *config.AbilityDescriptor, origin, dir utils.Vec2) *pool.Actor {
	if src == nil || ability == nil || ability.ProjectileKey == "" {
		return nil
	}
	a := src.Acquire(ability.ProjectileKey, origin, dir.Angle())
	if a == nil {
		return nil
	}
	if armer != nil {
		armer.ArmProjectile(a, ability, dir)
	}
	return a
}
