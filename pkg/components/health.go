package components

// HealthComponent 存储可受伤对象的生命值
// 用于玩家与敌人；死亡是终态，死亡后的伤害不再生效
type HealthComponent struct {
	Current float64 // 当前生命值
	Max     float64 // 最大生命值
}

// NewHealth 创建满血的生命值组件
func NewHealth(max float64) HealthComponent {
	if max < 1 {
		max = 1
	}
	return HealthComponent{Current: max, Max: max}
}

// IsDead 是否已死亡
func (h *HealthComponent) IsDead() bool {
	return h.Current <= 0
}

// TakeDamage 扣除生命值
//
// 返回：
//   - applied: 实际结算的伤害（已死亡或伤害非正时为 0）
//   - died: 本次伤害是否导致死亡
func (h *HealthComponent) TakeDamage(amount float64) (applied float64, died bool) {
	if h.IsDead() || amount <= 0 {
		return 0, false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		return amount, true
	}
	return amount, false
}

// Heal 回复生命值，不超过上限；死亡后无效
func (h *HealthComponent) Heal(amount float64) {
	if h.IsDead() || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Refill 回满生命值（升级时的满血回复）
func (h *HealthComponent) Refill() {
	h.Current = h.Max
}

// Reset 以新的上限复活并回满
func (h *HealthComponent) Reset(max float64) {
	*h = NewHealth(max)
}

// Fraction 当前生命比例 0~1
func (h *HealthComponent) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}
