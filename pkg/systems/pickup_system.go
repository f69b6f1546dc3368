package systems

import (
	"math"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/entities"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// PickupSystem 经验宝石吸附与拾取
//
// 职责：
//   - 进入吸附半径的宝石被吸向玩家，速度按加速度增长到上限
//   - 进入拾取半径的宝石被收集并归还对象池
type PickupSystem struct {
	actors *pool.Pool
	player *entities.Player
	pcfg   config.PlayerConfig
	cfg    config.PickupConfig

	collected int

	// OnCollect 收集到经验时回调
	OnCollect func(value int)
}

// NewPickupSystem 创建拾取系统
func NewPickupSystem(actors *pool.Pool, player *entities.Player, pcfg config.PlayerConfig, cfg config.PickupConfig) *PickupSystem {
	return &PickupSystem{
		actors: actors,
		player: player,
		pcfg:   pcfg,
		cfg:    cfg,
	}
}

// Update 吸附并拾取
func (s *PickupSystem) Update(dt float64) {
	if s.player == nil || s.player.IsDead() {
		return
	}
	target := s.player.Position()
	pickupR := math.Max(0.05, s.pcfg.PickupRadius)
	magnetR := math.Max(pickupR, s.pcfg.MagnetRadius)

	s.actors.ForEachActive(config.KindPickup, func(g *pool.Actor) {
		d := utils.DistSq(g.Position(), target)
		if d <= pickupR*pickupR {
			s.collect(g)
			return
		}
		if !g.Pickup.Magnetized && d <= magnetR*magnetR {
			g.Pickup.Magnetized = true
			g.Pickup.MagnetSpeed = s.cfg.MagnetStartSpeed
		}
		if g.Pickup.Magnetized && dt > 0 {
			g.Pickup.MagnetSpeed = math.Min(s.cfg.MaxMagnetSpeed, g.Pickup.MagnetSpeed+s.cfg.MagnetAcceleration*dt)
			g.Transform.Position = utils.MoveTowards(g.Position(), target, g.Pickup.MagnetSpeed*dt)
			if utils.DistSq(g.Position(), target) <= pickupR*pickupR {
				s.collect(g)
			}
		}
	})
}

func (s *PickupSystem) collect(g *pool.Actor) {
	value := max(0, g.Pickup.Value)
	s.actors.Release(g)
	s.collected += value
	if value > 0 && s.OnCollect != nil {
		s.OnCollect(value)
	}
}

// Collected 本局收集的经验总量
func (s *PickupSystem) Collected() int {
	return s.collected
}

// Reset 清零统计（新的一局）
func (s *PickupSystem) Reset() {
	s.collected = 0
}
