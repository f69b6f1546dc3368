package components

// PickupComponent 可拾取物（经验宝石）
type PickupComponent struct {
	Value       int     // 经验值
	Magnetized  bool    // 已被玩家吸附
	MagnetSpeed float64 // 当前吸附速度
}

// Clear 清空为初始状态
func (p *PickupComponent) Clear() {
	*p = PickupComponent{}
}
