package systems

import (
	"github.com/gonewx/survivor/pkg/combat"
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/pool"
)

// LifetimeSystem 推进子弹飞行与存活时间，过期即归还对象池
type LifetimeSystem struct {
	actors   *pool.Pool
	resolver *combat.Resolver
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(actors *pool.Pool, resolver *combat.Resolver) *LifetimeSystem {
	return &LifetimeSystem{
		actors:   actors,
		resolver: resolver,
	}
}

// Update 更新所有在场子弹，返回本帧过期回收的数量
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	s.actors.ForEachActive(config.KindProjectile, func(a *pool.Actor) {
		if s.resolver.AdvanceProjectile(a, deltaTime) {
			expired++
		}
	})
	return expired
}
