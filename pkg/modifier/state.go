package modifier

// State 战斗乘数状态
//
// 所有乘数初始为 1.0，只通过乘法组合，不做替换。
// 读取方只拿到值拷贝（见 Accumulator.Snapshot）。
type State struct {
	Damage             float64 // 伤害乘数
	ProjectileSpeed    float64 // 子弹速度乘数
	ProjectileLifetime float64 // 子弹存活时间乘数
	CritChance         float64 // 暴击率乘数
	CritDamage         float64 // 暴击伤害乘数
	Pierce             float64 // 穿透乘数
	Cooldown           float64 // 冷却乘数
	MoveSpeed          float64 // 玩家移速乘数
	ExtraOrbiters      int     // 额外解锁的环绕剑数量
}

// NeutralState 返回中性状态（全部乘数为 1）
func NeutralState() State {
	return State{
		Damage:             1,
		ProjectileSpeed:    1,
		ProjectileLifetime: 1,
		CritChance:         1,
		CritDamage:         1,
		Pierce:             1,
		Cooldown:           1,
		MoveSpeed:          1,
	}
}

// LevelSource 玩家等级来源，按需轮询
type LevelSource interface {
	Level() int
}

// LevelFunc 函数形式的等级来源
type LevelFunc func() int

// Level 实现 LevelSource
func (f LevelFunc) Level() int { return f() }

// WeaponModifiers 武器侧的窄设置接口
type WeaponModifiers interface {
	MultiplyDamage(f float64)
	MultiplySpeed(f float64)
	MultiplyLifetime(f float64)
	MultiplyCritChance(f float64)
	MultiplyCritDamage(f float64)
	MultiplyPierce(f float64)
	MultiplyCooldown(f float64)
}

// PlayerModifiers 玩家侧的窄设置接口
type PlayerModifiers interface {
	MultiplyMoveSpeed(f float64)
}

// OrbitModifiers 环绕剑的窄设置接口
type OrbitModifiers interface {
	AddExtraOrbiter()
}

// Targets 标签规则效果可作用的全部设置接口
type Targets interface {
	WeaponModifiers
	PlayerModifiers
	OrbitModifiers
}
