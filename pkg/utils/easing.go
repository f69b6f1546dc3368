package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制时间缩放过渡的曲线，使暂停/恢复不会出现"定帧"的生硬感。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。

// EasingFunc 缓动函数签名
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EasingByName 根据配置名称返回缓动函数
// 未知名称回退为线性缓动
func EasingByName(name string) EasingFunc {
	switch name {
	case "outCubic":
		return EaseOutCubic
	case "inOutCubic":
		return EaseInOutCubic
	default:
		return EaseLinear
	}
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b（t 不做截断）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp 反向插值，返回 v 在 [a, b] 中的比例，结果截断到 [0, 1]
// a == b 时返回 0
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// Clamp 将 v 限制在 [lo, hi] 区间
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 区间
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
