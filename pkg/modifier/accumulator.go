package modifier

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/utils"
)

// Slot 已拥有技能槽（技能 + 剩余冷却秒数）
type Slot struct {
	Ability  *config.AbilityDescriptor
	Cooldown float64
}

// Accumulator 战斗乘数累加器
//
// 职责：
//   - 持有已拥有技能及其冷却计时（两者按索引一一对应）
//   - 获得技能时计算七项乘数并以乘法组合进 State
//   - 通过窄设置接口把乘数转发给武器/玩家/环绕剑
//   - 执行数据驱动的标签规则表
//
// State 只在 Acquire 中被修改，读取方通过 Snapshot 获得值拷贝。
type Accumulator struct {
	progression    config.ProgressionConfig
	baseCritChance float64
	baseCritMul    float64
	level          LevelSource
	rules          *RuleTable

	abilities []*config.AbilityDescriptor
	timers    []float64
	state     State

	weapons []WeaponModifiers
	players []PlayerModifiers
	orbits  []OrbitModifiers
}

// NewAccumulator 创建乘数累加器
//
// 参数：
//   - cfg: 平衡配置（使用 Progression 与 Combat 段）
//   - level: 玩家等级来源，nil 时按 1 级处理
//   - rules: 标签规则表，nil 时由 cfg.TagRules 编译
//
// 返回：
//   - *Accumulator: 累加器实例
func NewAccumulator(cfg config.Balance, level LevelSource, rules *RuleTable) *Accumulator {
	if rules == nil {
		compiled, err := CompileRules(cfg.TagRules)
		if err != nil {
			log.Printf("[ModifierAccumulator] Warning: Failed to compile tag rules: %v (no tag rules active)", err)
			compiled = &RuleTable{}
		}
		rules = compiled
	}

	a := &Accumulator{
		progression:    cfg.Progression,
		baseCritChance: cfg.Combat.BaseCritChance,
		baseCritMul:    cfg.Combat.BaseCritMultiplier,
		level:          level,
		rules:          rules,
		state:          NeutralState(),
	}
	if a.baseCritChance <= 0 {
		a.baseCritChance = 0.1
	}
	if a.baseCritMul <= 0 {
		a.baseCritMul = 2
	}
	return a
}

// AttachWeapon 注册武器侧协作者
func (a *Accumulator) AttachWeapon(w WeaponModifiers) {
	if w != nil {
		a.weapons = append(a.weapons, w)
	}
}

// AttachPlayer 注册玩家侧协作者
func (a *Accumulator) AttachPlayer(p PlayerModifiers) {
	if p != nil {
		a.players = append(a.players, p)
	}
}

// AttachOrbit 注册环绕剑协作者
func (a *Accumulator) AttachOrbit(o OrbitModifiers) {
	if o != nil {
		a.orbits = append(a.orbits, o)
	}
}

// Rules 返回规则表，可在运行期追加规则
func (a *Accumulator) Rules() *RuleTable {
	return a.rules
}

// Acquire 获得技能
//
// nil 或已拥有的技能为空操作。
// 先组合七项乘数与移速，再按顺序执行标签规则。
func (a *Accumulator) Acquire(ability *config.AbilityDescriptor) {
	if ability == nil {
		return
	}
	if a.owns(ability) {
		return
	}

	a.abilities = append(a.abilities, ability)
	a.timers = append(a.timers, 0)
	a.checkPairing()

	t := fanout{a}
	a.applyPercentEffects(ability, t)
	a.rules.Apply(ability, t)
}

func (a *Accumulator) applyPercentEffects(ability *config.AbilityDescriptor, t fanout) {
	speedMul := a.SpeedMultiplierFor(ability)

	t.MultiplyDamage(a.DamageMultiplierFor(ability))
	t.MultiplySpeed(speedMul)
	t.MultiplyLifetime(a.LifetimeMultiplierFor(ability))
	t.MultiplyCritChance(a.CritChanceMultiplierFor(ability))
	t.MultiplyCritDamage(a.CritDamageMultiplierFor(ability))
	t.MultiplyPierce(a.PierceMultiplierFor(ability))
	t.MultiplyMoveSpeed(a.moveSpeedFromSpeed(speedMul))
	t.MultiplyCooldown(a.CooldownMultiplierFor(ability))
}

// Snapshot 返回当前乘数状态的拷贝
func (a *Accumulator) Snapshot() State {
	return a.state
}

// Level 当前玩家等级（至少为 1）
func (a *Accumulator) Level() int {
	if a.level == nil {
		return 1
	}
	if l := a.level.Level(); l > 1 {
		return l
	}
	return 1
}

// CurrentLuck 返回给定等级的幸运值，随等级单调递增并夹取到 [0,1]
func (a *Accumulator) CurrentLuck(level int) float64 {
	if level < 1 {
		level = 1
	}
	return utils.Clamp01(a.progression.BaseLuck + float64(level-1)*a.progression.LuckPerLevel)
}

// GrowthPercent 当前等级下该技能稀有度的成长率
func (a *Accumulator) GrowthPercent(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 0
	}
	lo, hi := a.progression.Band(ability.Rarity).Ordered()
	return utils.Lerp(lo, hi, a.CurrentLuck(a.Level()))
}

// LevelScale 等级缩放乘数 1 + growth·(level-1)·dampening
func (a *Accumulator) LevelScale(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	steps := float64(a.Level() - 1)
	return 1 + a.GrowthPercent(ability)*steps*a.progression.LevelDampening
}

// DamageMultiplierFor 伤害乘数
func (a *Accumulator) DamageMultiplierFor(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	return DamageBaseBand.Clamp(ability.Damage) * DamageLevelBand.Clamp(a.LevelScale(ability))
}

// CooldownMultiplierFor 冷却乘数（等级越高冷却越短）
func (a *Accumulator) CooldownMultiplierFor(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	base := CooldownBaseBand.Clamp(ability.Cooldown)
	return CooldownBand.Clamp(base / CooldownLevelBand.Clamp(a.LevelScale(ability)))
}

// SpeedMultiplierFor 子弹速度乘数
func (a *Accumulator) SpeedMultiplierFor(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	normalized := ability.ProjectileSpeed / baseProjectileSpeed
	soft := 1 + (normalized-1)*a.progression.ProjectileSpeedImpact
	return SpeedBand.Clamp(soft * StatLevelBand.Clamp(a.LevelScale(ability)))
}

// LifetimeMultiplierFor 子弹存活时间乘数
func (a *Accumulator) LifetimeMultiplierFor(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	normalized := ability.ProjectileLifetime / baseProjectileLifetime
	return LifetimeBand.Clamp(normalized * StatLevelBand.Clamp(a.LevelScale(ability)))
}

// CritChanceMultiplierFor 暴击率乘数
func (a *Accumulator) CritChanceMultiplierFor(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	normalized := ability.CritChance / a.baseCritChance
	return CritChanceBand.Clamp(normalized * StatLevelBand.Clamp(a.LevelScale(ability)))
}

// CritDamageMultiplierFor 暴击伤害乘数
func (a *Accumulator) CritDamageMultiplierFor(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	normalized := ability.CritMultiplier / a.baseCritMul
	return CritDamageBand.Clamp(normalized * StatLevelBand.Clamp(a.LevelScale(ability)))
}

// PierceMultiplierFor 穿透乘数
func (a *Accumulator) PierceMultiplierFor(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	normalized := math.Max(1, float64(ability.PierceCount))
	soft := 1 + (normalized-1)*pierceSoftness
	return PierceBand.Clamp(soft * StatLevelBand.Clamp(a.LevelScale(ability)))
}

// MoveSpeedMultiplierFor 由子弹速度乘数传导出的玩家移速乘数
func (a *Accumulator) MoveSpeedMultiplierFor(ability *config.AbilityDescriptor) float64 {
	if ability == nil {
		return 1
	}
	return a.moveSpeedFromSpeed(a.SpeedMultiplierFor(ability))
}

func (a *Accumulator) moveSpeedFromSpeed(speedMul float64) float64 {
	return MoveSpeedBand.Clamp(1 + (speedMul-1)*a.progression.PlayerSpeedImpact)
}

// Unlearn 移除技能槽（同时移除其冷却计时）
// 已组合进 State 的乘数保持不变
func (a *Accumulator) Unlearn(ability *config.AbilityDescriptor) bool {
	idx := a.indexOf(ability)
	if idx < 0 {
		return false
	}
	a.abilities = append(a.abilities[:idx], a.abilities[idx+1:]...)
	a.timers = append(a.timers[:idx], a.timers[idx+1:]...)
	a.checkPairing()
	return true
}

// Slots 返回技能槽拷贝
func (a *Accumulator) Slots() []Slot {
	slots := make([]Slot, len(a.abilities))
	for i, ab := range a.abilities {
		slots[i] = Slot{Ability: ab, Cooldown: a.timers[i]}
	}
	return slots
}

// Abilities 返回已拥有技能列表拷贝（按获得顺序）
func (a *Accumulator) Abilities() []*config.AbilityDescriptor {
	return append([]*config.AbilityDescriptor(nil), a.abilities...)
}

// Count 已拥有技能数
func (a *Accumulator) Count() int {
	return len(a.abilities)
}

// Owns 是否已拥有同名技能
func (a *Accumulator) Owns(name string) bool {
	for _, ab := range a.abilities {
		if ab.Name == name {
			return true
		}
	}
	return false
}

// IsReady 技能槽是否冷却完毕；越界返回 false
func (a *Accumulator) IsReady(i int) bool {
	if i < 0 || i >= len(a.timers) {
		return false
	}
	return a.timers[i] <= 0
}

// TryConsumeCooldown 若技能槽就绪则进入冷却并返回 true
func (a *Accumulator) TryConsumeCooldown(i int) bool {
	if i < 0 || i >= len(a.abilities) || !a.IsReady(i) {
		return false
	}
	a.timers[i] = math.Max(0, a.progression.BaseCooldownSeconds*a.state.Cooldown)
	return true
}

// Tick 推进所有冷却计时，计时不会小于 0
func (a *Accumulator) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	for i, t := range a.timers {
		if t > 0 {
			a.timers[i] = math.Max(0, t-dt)
		}
	}
}

// HasNameToken 是否拥有名称包含 token 的技能（大小写不敏感）
func (a *Accumulator) HasNameToken(token string) bool {
	for _, ab := range a.abilities {
		if MatchesAny(ab.Name, []string{token}) {
			return true
		}
	}
	return false
}

// Reset 清空技能与乘数（新的一局）
func (a *Accumulator) Reset() {
	a.abilities = nil
	a.timers = nil
	a.state = NeutralState()
}

func (a *Accumulator) owns(ability *config.AbilityDescriptor) bool {
	return a.indexOf(ability) >= 0
}

func (a *Accumulator) indexOf(ability *config.AbilityDescriptor) int {
	if ability == nil {
		return -1
	}
	for i, ab := range a.abilities {
		if ab == ability || ab.Name == ability.Name {
			return i
		}
	}
	return -1
}

// checkPairing 技能与冷却计时数量必须一致
func (a *Accumulator) checkPairing() {
	if len(a.abilities) == len(a.timers) {
		return
	}
	invariantViolation(fmt.Sprintf("%d abilities vs %d cooldown timers", len(a.abilities), len(a.timers)))
	n := min(len(a.abilities), len(a.timers))
	a.abilities = a.abilities[:n]
	a.timers = a.timers[:n]
}

// fanout 把乘数写入 State 并转发给所有协作者
type fanout struct {
	a *Accumulator
}

func (f fanout) MultiplyDamage(m float64) {
	f.a.state.Damage *= math.Max(minAppliedFactor, m)
	for _, w := range f.a.weapons {
		w.MultiplyDamage(m)
	}
}

func (f fanout) MultiplySpeed(m float64) {
	f.a.state.ProjectileSpeed *= math.Max(minAppliedFactor, m)
	for _, w := range f.a.weapons {
		w.MultiplySpeed(m)
	}
}

func (f fanout) MultiplyLifetime(m float64) {
	f.a.state.ProjectileLifetime *= math.Max(minAppliedFactor, m)
	for _, w := range f.a.weapons {
		w.MultiplyLifetime(m)
	}
}

func (f fanout) MultiplyCritChance(m float64) {
	f.a.state.CritChance *= math.Max(0, m)
	for _, w := range f.a.weapons {
		w.MultiplyCritChance(m)
	}
}

func (f fanout) MultiplyCritDamage(m float64) {
	f.a.state.CritDamage *= math.Max(minAppliedFactor, m)
	for _, w := range f.a.weapons {
		w.MultiplyCritDamage(m)
	}
}

func (f fanout) MultiplyPierce(m float64) {
	f.a.state.Pierce *= math.Max(minAppliedFactor, m)
	for _, w := range f.a.weapons {
		w.MultiplyPierce(m)
	}
}

func (f fanout) MultiplyCooldown(m float64) {
	f.a.state.Cooldown *= CooldownApplyBand.Clamp(m)
	for _, w := range f.a.weapons {
		w.MultiplyCooldown(m)
	}
}

func (f fanout) MultiplyMoveSpeed(m float64) {
	f.a.state.MoveSpeed *= math.Max(minAppliedFactor, m)
	for _, p := range f.a.players {
		p.MultiplyMoveSpeed(m)
	}
}

func (f fanout) AddExtraOrbiter() {
	f.a.state.ExtraOrbiters++
	for _, o := range f.a.orbits {
		o.AddExtraOrbiter()
	}
}
