package spawn

import (
	"math"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/utils"
)

// CameraBounds 相机可视范围（世界坐标）
type CameraBounds interface {
	ViewBounds() (min, max utils.Vec2, ok bool)
}

// PlayerLocator 玩家位置
type PlayerLocator interface {
	Position() utils.Vec2
}

// Placer 生成位置选择
//
// 优先在相机可视范围外（加边距）采样，且距玩家不小于最小距离；
// 多次尝试失败或没有相机/玩家时，回退到玩家周围的环形区域。
// 回退路径不依赖相机。
type Placer struct {
	cfg    config.PlacementConfig
	camera CameraBounds
	player PlayerLocator
}

// NewPlacer 创建位置选择器，camera 与 player 均可为 nil
func NewPlacer(cfg config.PlacementConfig, camera CameraBounds, player PlayerLocator) *Placer {
	return &Placer{cfg: cfg, camera: camera, player: player}
}

// SetCamera 设置相机
func (p *Placer) SetCamera(c CameraBounds) {
	p.camera = c
}

// SetPlayer 设置玩家
func (p *Placer) SetPlayer(pl PlayerLocator) {
	p.player = pl
}

// Position 选择一个生成位置
func (p *Placer) Position(rng RandSource) utils.Vec2 {
	if p.player == nil || p.camera == nil {
		return p.Fallback(rng)
	}
	min, max, ok := p.camera.ViewBounds()
	if !ok {
		return p.Fallback(rng)
	}
	min, max = orderBounds(min, max)

	left := min.X - p.cfg.OffscreenMargin
	right := max.X + p.cfg.OffscreenMargin
	bottom := min.Y - p.cfg.OffscreenMargin
	top := max.Y + p.cfg.OffscreenMargin

	playerPos := p.player.Position()
	minDistSq := p.cfg.MinDistanceFromPlayer * p.cfg.MinDistanceFromPlayer

	for attempt := 0; attempt < p.cfg.MaxAttempts; attempt++ {
		var candidate utils.Vec2
		switch rng.Intn(4) {
		case 0:
			candidate = utils.Vec2{X: left, Y: randRange(rng, bottom, top)}
		case 1:
			candidate = utils.Vec2{X: right, Y: randRange(rng, bottom, top)}
		case 2:
			candidate = utils.Vec2{X: randRange(rng, left, right), Y: bottom}
		default:
			candidate = utils.Vec2{X: randRange(rng, left, right), Y: top}
		}

		if utils.DistSq(candidate, playerPos) >= minDistSq && outsideRect(candidate, min, max) {
			return candidate
		}
	}

	return p.Fallback(rng)
}

// Fallback 玩家周围 [FallbackMinRadius, FallbackMaxRadius] 环形区域内的随机点
func (p *Placer) Fallback(rng RandSource) utils.Vec2 {
	var center utils.Vec2
	if p.player != nil {
		center = p.player.Position()
	}
	radius := randRange(rng, p.cfg.FallbackMinRadius, p.cfg.FallbackMaxRadius)
	angle := rng.Float64() * 2 * math.Pi
	return center.Add(utils.FromAngle(angle).Scale(radius))
}

func randRange(rng RandSource, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func orderBounds(a, b utils.Vec2) (utils.Vec2, utils.Vec2) {
	return utils.Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		utils.Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

func outsideRect(pt, min, max utils.Vec2) bool {
	return pt.X <= min.X || pt.X >= max.X || pt.Y <= min.Y || pt.Y >= max.Y
}
