package game

import (
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/utils"
)

// TimeScale 全局时间缩放
//
// 暂停/恢复不直接跳变，而是在 StopDuration / ResumeDuration 内
// 按缓动曲线过渡到目标值。过渡中再次请求同一目标不会重启过渡；
// 请求不同目标时从当前值出发重新过渡。
// 过渡本身按未缩放时间推进。
type TimeScale struct {
	cfg  config.TimeScaleConfig
	ease utils.EasingFunc

	value    float64
	start    float64
	target   float64
	elapsed  float64
	duration float64
	ramping  bool
}

// NewTimeScale 创建时间缩放，初始为 1
func NewTimeScale(cfg config.TimeScaleConfig) *TimeScale {
	return &TimeScale{
		cfg:    cfg,
		ease:   utils.EasingByName(cfg.Easing),
		value:  1,
		target: 1,
	}
}

// Retarget 设置新的目标缩放值
//
// 参数：
//   - target: 目标值，截断到 [0, 1]
//   - immediate: 是否立即生效（不过渡）
func (ts *TimeScale) Retarget(target float64, immediate bool) {
	target = utils.Clamp01(target)
	if !immediate && target == ts.target && (ts.ramping || ts.value == target) {
		return
	}

	duration := ts.cfg.ResumeDuration
	if target < ts.value {
		duration = ts.cfg.StopDuration
	}

	ts.target = target
	if immediate || duration <= 0.001 {
		ts.value = target
		ts.ramping = false
		return
	}
	ts.start = ts.value
	ts.elapsed = 0
	ts.duration = duration
	ts.ramping = true
}

// ApplyState 按状态设置目标：冻结状态趋向 PausedScale，其余趋向 1
func (ts *TimeScale) ApplyState(s State, immediate bool) {
	if s.Frozen() {
		ts.Retarget(ts.cfg.PausedScale, immediate)
		return
	}
	ts.Retarget(1, immediate)
}

// Advance 按未缩放时间推进过渡
func (ts *TimeScale) Advance(unscaledDt float64) {
	if !ts.ramping || unscaledDt <= 0 {
		return
	}
	ts.elapsed += unscaledDt
	if ts.elapsed >= ts.duration {
		ts.value = ts.target
		ts.ramping = false
		return
	}
	t := utils.Clamp01(ts.elapsed / ts.duration)
	ts.value = utils.Lerp(ts.start, ts.target, ts.ease(t))
}

// Scale 把未缩放时间换算为游戏时间
func (ts *TimeScale) Scale(dt float64) float64 {
	return dt * ts.value
}

// Value 当前缩放值
func (ts *TimeScale) Value() float64 { return ts.value }

// Target 目标缩放值
func (ts *TimeScale) Target() float64 { return ts.target }

// Ramping 是否处于过渡中
func (ts *TimeScale) Ramping() bool { return ts.ramping }
