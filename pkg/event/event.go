package event

import "github.com/gonewx/survivor/pkg/utils"

// Type 事件类型
// 使用字符串以便外部协作者无需改动本包即可定义新事件
type Type string

const (
	TypeDamageDealt      Type = "damage_dealt"      // 每次结算伤害
	TypeEnemyKilled      Type = "enemy_killed"      // 敌人死亡
	TypeDifficultyScaled Type = "difficulty_scaled" // 难度阶提升
	TypeWaveStarted      Type = "wave_started"      // 新一波开始
	TypeStateChanged     Type = "state_changed"     // 游戏状态切换
	TypeLevelUp          Type = "level_up"          // 玩家升级
	TypeAbilityAcquired  Type = "ability_acquired"  // 获得技能
	TypeRunReset         Type = "run_reset"         // 开始新的一局
)

// Event 事件
type Event struct {
	Type Type
	Data interface{}
}

// DamageDealt 伤害遥测（浮动伤害数字）
type DamageDealt struct {
	Position utils.Vec2
	Amount   float64
	Crit     bool
}

// EnemyKilled 敌人死亡
type EnemyKilled struct {
	ActorID  uint64
	Key      string
	Position utils.Vec2
}

// DifficultyScaled 难度变化 (step, multiplier)
type DifficultyScaled struct {
	Step       int
	Multiplier float64
}

// WaveStarted 新一波
type WaveStarted struct {
	Index int
	Count int
}

// StateChanged 状态切换，使用状态名以避免依赖 game 包
type StateChanged struct {
	From string
	To   string
}

// LevelUp 玩家升级
type LevelUp struct {
	Level int
}

// AbilityAcquired 获得技能
type AbilityAcquired struct {
	Name string
}
