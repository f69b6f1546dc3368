package systems

import (
	"math"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/spawn"
	"github.com/gonewx/survivor/pkg/utils"
)

// EnemyMovementSystem 敌人追击
//
// 职责：
//   - 与玩家保持 DesiredDistance ± DistanceTolerance 的距离带
//   - 带外时朝向（或背离）玩家加速，带内以 Deceleration 刹停
//   - 濒死敌人原地停下等待回收
type EnemyMovementSystem struct {
	actors *pool.Pool
	player spawn.PlayerLocator
	cfg    config.EnemyTuning
}

// NewEnemyMovementSystem 创建敌人移动系统
func NewEnemyMovementSystem(actors *pool.Pool, player spawn.PlayerLocator, cfg config.EnemyTuning) *EnemyMovementSystem {
	return &EnemyMovementSystem{
		actors: actors,
		player: player,
		cfg:    cfg,
	}
}

// Update 固定步长更新
func (s *EnemyMovementSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.actors.ForEachActive(config.KindEnemy, func(a *pool.Actor) {
		if a.Enemy.Dying {
			a.Transform.Velocity = utils.Vec2{}
			return
		}
		desired := s.DesiredVelocity(a)
		rate := s.cfg.Acceleration
		if desired.LenSq() <= 0.0001 {
			rate = s.cfg.Deceleration
		}
		a.Transform.Velocity = utils.MoveTowards(a.Transform.Velocity, desired, rate*dt)
		a.Transform.Position = a.Transform.Position.Add(a.Transform.Velocity.Scale(dt))
	})
}

// DesiredVelocity 该敌人本帧的目标速度
func (s *EnemyMovementSystem) DesiredVelocity(a *pool.Actor) utils.Vec2 {
	if s.player == nil {
		return utils.Vec2{}
	}
	toTarget := s.player.Position().Sub(a.Position())
	if toTarget.LenSq() <= 0.01 {
		return utils.Vec2{}
	}

	dist := toTarget.Len()
	minDist := math.Max(0.1, s.cfg.DesiredDistance-s.cfg.DistanceTolerance)
	maxDist := s.cfg.DesiredDistance + s.cfg.DistanceTolerance
	switch {
	case dist > maxDist:
		return toTarget.Normalize().Scale(a.Enemy.Speed)
	case dist < minDist:
		return toTarget.Normalize().Scale(-a.Enemy.Speed)
	default:
		return utils.Vec2{}
	}
}
