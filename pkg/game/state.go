package game

// State 一局游戏的全局状态
type State int

const (
	StateMenu     State = iota // 菜单
	StateGameplay              // 进行中
	StatePause                 // 暂停
	StateGameOver              // 玩家死亡
	StateLevelUp               // 升级选择
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StateGameplay:
		return "Gameplay"
	case StatePause:
		return "Pause"
	case StateGameOver:
		return "GameOver"
	case StateLevelUp:
		return "LevelUp"
	default:
		return "Unknown"
	}
}

// Frozen 该状态下全局时间缩放是否趋向暂停值
func (s State) Frozen() bool {
	return s == StatePause || s == StateGameOver || s == StateLevelUp
}
