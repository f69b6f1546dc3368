package components

import "github.com/gonewx/survivor/pkg/utils"

// TransformComponent 世界空间位置、朝向与速度
type TransformComponent struct {
	Position utils.Vec2 // 世界坐标
	Rotation float64    // 朝向（弧度）
	Velocity utils.Vec2 // 当前速度（世界单位/秒）
}

// Reset 放置到新位置并清空速度
func (t *TransformComponent) Reset(pos utils.Vec2, rot float64) {
	t.Position = pos
	t.Rotation = rot
	t.Velocity = utils.Vec2{}
}

// Forward 朝向对应的单位向量
func (t *TransformComponent) Forward() utils.Vec2 {
	return utils.FromAngle(t.Rotation)
}
