package components

// EnemyComponent 敌人的运行时数值
// 具体数值由外部配置步骤（entities.EnemyConfigurer）按难度乘数写入
type EnemyComponent struct {
	TypeID               string  // 敌人类型ID
	Speed                float64 // 移动速度
	ContactDamage        float64 // 接触伤害
	Radius               float64 // 碰撞半径
	XPGemKey             string  // 死亡掉落的经验宝石池键
	DifficultyMultiplier float64 // 生成时的难度乘数
	Dying                bool    // 已死亡，等待延迟回收
}

// Clear 清空为初始状态
func (e *EnemyComponent) Clear() {
	*e = EnemyComponent{}
}
