package entities

import (
	"math"

	"github.com/gonewx/survivor/pkg/components"
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/utils"
)

// PlayerTargetID 玩家作为伤害目标的标识
// 对象池 ID 从 1 开始，0 不会与任何池内实例冲突
const PlayerTargetID uint64 = 0

// Player 玩家角色
//
// 同时满足 combat.Target（受伤）、spawn.PlayerLocator（定位）
// 与 modifier.PlayerModifiers（移速乘数）。
type Player struct {
	Transform components.TransformComponent
	Health    components.HealthComponent

	cfg      config.PlayerConfig
	speedMul float64
	intent   utils.Vec2
	facing   utils.Vec2
}

// NewPlayer 创建位于原点的玩家
func NewPlayer(cfg config.PlayerConfig) *Player {
	p := &Player{cfg: cfg}
	p.Reset()
	return p
}

// Reset 回到原点、满血、移速乘数归一
func (p *Player) Reset() {
	p.Transform.Reset(utils.Vec2{}, 0)
	p.Health = components.NewHealth(p.cfg.MaxHP)
	p.speedMul = 1
	p.intent = utils.Vec2{}
	p.facing = utils.Vec2{X: 1}
}

// Position 世界坐标
func (p *Player) Position() utils.Vec2 {
	return p.Transform.Position
}

// TargetID 实现 combat.Target
func (p *Player) TargetID() uint64 {
	return PlayerTargetID
}

// IsDead 是否死亡
func (p *Player) IsDead() bool {
	return p.Health.IsDead()
}

// TakeDamage 扣血；死亡后为空操作
func (p *Player) TakeDamage(amount float64) (float64, bool) {
	return p.Health.TakeDamage(amount)
}

// MultiplyMoveSpeed 实现 modifier.PlayerModifiers
func (p *Player) MultiplyMoveSpeed(f float64) {
	p.speedMul *= math.Max(0.1, f)
}

// SpeedMultiplier 当前移速乘数
func (p *Player) SpeedMultiplier() float64 {
	return p.speedMul
}

// MoveSpeed 当前最大移速（单位/秒）
func (p *Player) MoveSpeed() float64 {
	return p.cfg.MoveSpeed * p.speedMul
}

// Radius 碰撞半径
func (p *Player) Radius() float64 {
	return p.cfg.Radius
}

// SetIntent 设置移动意图（长度超过 1 时归一化）
func (p *Player) SetIntent(dir utils.Vec2) {
	if dir.LenSq() > 1 {
		dir = dir.Normalize()
	}
	p.intent = dir
}

// Intent 当前移动意图
func (p *Player) Intent() utils.Vec2 {
	return p.intent
}

// Facing 水平朝向（(1,0) 或 (-1,0)），单发子弹沿此方向射出
func (p *Player) Facing() utils.Vec2 {
	return p.facing
}

// Step 按意图加速或减速并移动
// 有意图时以 Acceleration 逼近目标速度，无意图时以 Deceleration 刹停。
func (p *Player) Step(dt float64) {
	if dt <= 0 || p.IsDead() {
		return
	}
	target := p.intent.Scale(p.MoveSpeed())
	rate := p.cfg.Acceleration
	if p.intent.LenSq() < 1e-6 {
		rate = p.cfg.Deceleration
	}
	p.Transform.Velocity = utils.MoveTowards(p.Transform.Velocity, target, rate*dt)
	p.Transform.Position = p.Transform.Position.Add(p.Transform.Velocity.Scale(dt))

	if vx := p.Transform.Velocity.X; math.Abs(vx) > 0.05 {
		p.facing = utils.Vec2{X: math.Copysign(1, vx)}
	}
}
