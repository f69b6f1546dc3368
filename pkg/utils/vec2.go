package utils

import "math"

// Vec2 二维世界坐标/向量（世界单位，Y 轴向上）
type Vec2 struct {
	X, Y float64
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub 向量相减
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale 数乘
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// LenSq 长度平方
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len 长度
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// Normalize 返回单位向量；零向量原样返回
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle 返回向量方向（弧度）
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// FromAngle 由弧度构造单位向量
func FromAngle(rad float64) Vec2 { return Vec2{math.Cos(rad), math.Sin(rad)} }

// DistSq 两点距离平方
func DistSq(a, b Vec2) float64 { return a.Sub(b).LenSq() }

// MoveTowards 从 current 向 target 移动不超过 maxDelta 的距离
func MoveTowards(current, target Vec2, maxDelta float64) Vec2 {
	d := target.Sub(current)
	dist := d.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(d.Scale(maxDelta / dist))
}
