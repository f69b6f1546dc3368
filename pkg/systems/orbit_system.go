package systems

import (
	"math"

	"github.com/gonewx/survivor/pkg/combat"
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/entities"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/spawn"
	"github.com/gonewx/survivor/pkg/utils"
)

// OrbitSystem 环绕剑
//
// 职责：
//   - 以 OrbitSpeed（度/秒）绕玩家旋转，开局解锁 1 把，最多 MaxOrbiters 把
//   - 每把剑与敌人重叠时造成固定接触伤害，按 (敌人, 剑槽) 限频
//   - 作为 modifier.OrbitModifiers 接收额外剑的解锁
//
// 剑槽位置固定均分圆周，解锁只决定哪些槽位参与结算。
type OrbitSystem struct {
	cfg      config.WeaponConfig
	actors   *pool.Pool
	resolver *combat.Resolver
	player   spawn.PlayerLocator

	angle    float64 // 度
	unlocked int
}

// NewOrbitSystem 创建环绕剑系统
func NewOrbitSystem(cfg config.WeaponConfig, actors *pool.Pool, resolver *combat.Resolver, player spawn.PlayerLocator) *OrbitSystem {
	s := &OrbitSystem{
		cfg:      cfg,
		actors:   actors,
		resolver: resolver,
		player:   player,
	}
	s.Reset()
	return s
}

// Reset 回到开局状态（1 把剑）
func (s *OrbitSystem) Reset() {
	s.angle = 0
	s.unlocked = min(1, max(0, s.cfg.MaxOrbiters))
}

// AddExtraOrbiter 实现 modifier.OrbitModifiers；已满时为空操作
func (s *OrbitSystem) AddExtraOrbiter() {
	if s.unlocked < s.cfg.MaxOrbiters {
		s.unlocked++
	}
}

// Unlocked 已解锁的剑数
func (s *OrbitSystem) Unlocked() int {
	return s.unlocked
}

// Active 是否有剑参与结算
func (s *OrbitSystem) Active() bool {
	return s.cfg.OrbitEnabled && s.unlocked > 0
}

// Angle 当前旋转角（度，[0, 360)）
func (s *OrbitSystem) Angle() float64 {
	return s.angle
}

// Update 旋转并结算接触伤害
func (s *OrbitSystem) Update(dt float64) {
	if !s.Active() || s.player == nil {
		return
	}
	if dt > 0 {
		s.angle = math.Mod(s.angle+s.cfg.OrbitSpeed*dt, 360)
	}

	for slot := 0; slot < s.unlocked; slot++ {
		center := s.OrbiterPosition(slot)
		s.actors.ForEachActive(config.KindEnemy, func(a *pool.Actor) {
			if a.Enemy.Dying || a.IsDead() {
				return
			}
			reach := s.cfg.OrbitHitRadius + a.Enemy.Radius
			if utils.DistSq(center, a.Position()) > reach*reach {
				return
			}
			key := combat.ContactKey{Defender: a.Spawn, Attacker: entities.PlayerTargetID, Slot: slot}
			s.resolver.ApplyContact(key, a, s.cfg.OrbitDamage, s.cfg.OrbitInterval)
		})
	}
}

// OrbiterPosition 第 slot 把剑的世界坐标
func (s *OrbitSystem) OrbiterPosition(slot int) utils.Vec2 {
	n := max(1, s.cfg.MaxOrbiters)
	deg := s.angle + float64(slot)*360/float64(n)
	center := utils.Vec2{}
	if s.player != nil {
		center = s.player.Position()
	}
	return center.Add(utils.FromAngle(deg * math.Pi / 180).Scale(s.cfg.OrbitRadius))
}
