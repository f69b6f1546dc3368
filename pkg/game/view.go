package game

import "github.com/gonewx/survivor/pkg/utils"

// View 跟随玩家的可视范围（世界坐标）
// 满足 spawn.CameraBounds；尺寸为 0 时视为没有相机
type View struct {
	Center     utils.Vec2
	HalfWidth  float64
	HalfHeight float64
}

// NewView 创建给定世界尺寸的可视范围
func NewView(width, height float64) *View {
	return &View{HalfWidth: width / 2, HalfHeight: height / 2}
}

// Follow 把中心移到 pos
func (v *View) Follow(pos utils.Vec2) {
	v.Center = pos
}

// ViewBounds 返回可视范围的两个角
func (v *View) ViewBounds() (min, max utils.Vec2, ok bool) {
	if v == nil || v.HalfWidth <= 0 || v.HalfHeight <= 0 {
		return utils.Vec2{}, utils.Vec2{}, false
	}
	half := utils.Vec2{X: v.HalfWidth, Y: v.HalfHeight}
	return v.Center.Sub(half), v.Center.Add(half), true
}

// Contains 点是否在可视范围内
func (v *View) Contains(p utils.Vec2) bool {
	min, max, ok := v.ViewBounds()
	if !ok {
		return false
	}
	return p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y
}
