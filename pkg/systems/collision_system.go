package systems

import (
	"math"

	"github.com/gonewx/survivor/pkg/combat"
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/entities"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// minBodyContactInterval 敌人身体接触伤害的最小间隔（秒）
const minBodyContactInterval = 0.1

// CollisionSystem 圆形重叠检测
//
// 职责：
//   - 子弹 vs 敌人：离散命中，交给 Resolver.ApplyHit（穿透与回收在其中处理）
//   - 敌人身体 vs 玩家：接触伤害，按 (玩家, 敌人) 限频
//
// 濒死敌人既不被命中也不造成接触伤害。
type CollisionSystem struct {
	actors   *pool.Pool
	resolver *combat.Resolver
	player   *entities.Player
	enemy    config.EnemyTuning
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(actors *pool.Pool, resolver *combat.Resolver, player *entities.Player, enemy config.EnemyTuning) *CollisionSystem {
	return &CollisionSystem{
		actors:   actors,
		resolver: resolver,
		player:   player,
		enemy:    enemy,
	}
}

// Update 结算本帧的全部重叠
func (s *CollisionSystem) Update() {
	s.projectilesVsEnemies()
	s.enemiesVsPlayer()
}

func (s *CollisionSystem) projectilesVsEnemies() {
	s.actors.ForEachActive(config.KindProjectile, func(p *pool.Actor) {
		s.actors.ForEachActive(config.KindEnemy, func(e *pool.Actor) {
			if !p.IsLent() || e.Enemy.Dying || e.IsDead() {
				return
			}
			if !overlaps(p.Position(), p.Projectile.Radius, e.Position(), e.Enemy.Radius) {
				return
			}
			s.resolver.ApplyHit(p, e, p.Projectile.Damage)
		})
	})
}

func (s *CollisionSystem) enemiesVsPlayer() {
	if s.player == nil || s.player.IsDead() {
		return
	}
	interval := math.Max(minBodyContactInterval, s.enemy.ContactInterval)
	s.actors.ForEachActive(config.KindEnemy, func(e *pool.Actor) {
		if e.Enemy.Dying || e.IsDead() || e.Enemy.ContactDamage <= 0 {
			return
		}
		if !overlaps(e.Position(), e.Enemy.Radius, s.player.Position(), s.player.Radius()) {
			return
		}
		key := combat.ContactKey{Defender: entities.PlayerTargetID, Attacker: e.Spawn}
		s.resolver.ApplyContact(key, s.player, e.Enemy.ContactDamage, interval)
	})
}

func overlaps(a utils.Vec2, ra float64, b utils.Vec2, rb float64) bool {
	r := ra + rb
	return utils.DistSq(a, b) <= r*r
}
