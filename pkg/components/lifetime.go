package components

// LifetimeComponent 管理限时对象的生命周期
// 用于子弹等超时即回收的对象
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}

// Arm 重新开始计时
func (l *LifetimeComponent) Arm(maxLifetime float64) {
	l.MaxLifetime = maxLifetime
	l.CurrentLifetime = 0
	l.IsExpired = false
}

// Advance 推进计时，返回本次是否刚好过期
// 负的 dt 按 0 处理
func (l *LifetimeComponent) Advance(dt float64) bool {
	if l.IsExpired {
		return false
	}
	if dt > 0 {
		l.CurrentLifetime += dt
	}
	if l.CurrentLifetime >= l.MaxLifetime {
		l.IsExpired = true
		return true
	}
	return false
}

// Remaining 剩余时间，不小于 0
func (l *LifetimeComponent) Remaining() float64 {
	r := l.MaxLifetime - l.CurrentLifetime
	if r < 0 {
		return 0
	}
	return r
}
