package modifier

import "github.com/gonewx/survivor/pkg/utils"

// Band 闭区间夹取带
type Band struct {
	Min, Max float64
}

// Clamp 将 v 夹取到区间内
func (b Band) Clamp(v float64) float64 {
	return utils.Clamp(v, b.Min, b.Max)
}

// Contains 判断 v 是否在区间内（含端点）
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// 各属性的夹取带。手调的平衡常量，各属性互不相同，不要统一。
var (
	DamageBaseBand    = Band{0.8, 1.25}
	DamageLevelBand   = Band{1, 1.35}
	CooldownBaseBand  = Band{0.85, 1.2}
	CooldownLevelBand = Band{1, 1.35}
	CooldownBand      = Band{0.75, 1.2}
	StatLevelBand     = Band{1, 1.2}
	SpeedBand         = Band{0.95, 1.2}
	LifetimeBand      = Band{0.85, 1.35}
	CritChanceBand    = Band{0.8, 1.5}
	CritDamageBand    = Band{0.9, 1.5}
	PierceBand        = Band{1, 2}
	MoveSpeedBand     = Band{0.97, 1.03}
	CooldownApplyBand = Band{0.85, 1.2}
)

const (
	pierceSoftness         = 0.35 // 每点额外穿透折算的乘数
	minAppliedFactor       = 0.1  // 写入状态时的乘数下限
	baseProjectileSpeed    = 10.0 // 速度归一化基准
	baseProjectileLifetime = 3.0  // 存活时间归一化基准
)
