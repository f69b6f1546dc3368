package systems

import (
	"log"
	"math"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/entities"
	"github.com/gonewx/survivor/pkg/modifier"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// WeaponSystem 子弹武器
//
// 职责：
//   - 拥有任一子弹类技能（名称含 ProjectileTokens 中的词）后解锁射击
//   - 每个冷却就绪且带子弹池键的技能槽发射一轮
//   - 多重射击：子弹类技能不止一个时，按非普通稀有度数量升级为 4/6/8 发
//   - 作为 modifier.WeaponModifiers 接收乘数，维护武器侧的乘数镜像
//
// 子弹的速度/穿透/存活时间由 ProjectileArmer 在发射时按实时乘数写入。
type WeaponSystem struct {
	cfg       config.WeaponConfig
	abilities *modifier.Accumulator
	actors    *pool.Pool
	armer     entities.ProjectileArmer
	player    *entities.Player

	stats modifier.State
	shots int

	verbose bool
}

// NewWeaponSystem 创建子弹武器系统
//
// 参数：
//   - cfg: 武器配置
//   - abilities: 技能槽与冷却来源
//   - actors: 对象池
//   - armer: 子弹武装步骤（通常为 combat.Resolver）
//   - player: 发射者
//
// 返回：
//   - *WeaponSystem: 武器系统实例
func NewWeaponSystem(cfg config.WeaponConfig, abilities *modifier.Accumulator, actors *pool.Pool,
	armer entities.ProjectileArmer, player *entities.Player) *WeaponSystem {
	return &WeaponSystem{
		cfg:       cfg,
		abilities: abilities,
		actors:    actors,
		armer:     armer,
		player:    player,
		stats:     modifier.NeutralState(),
	}
}

// SetVerbose 设置详细日志
func (s *WeaponSystem) SetVerbose(v bool) {
	s.verbose = v
}

// Update 发射所有就绪的技能槽
func (s *WeaponSystem) Update() {
	if s.player == nil || s.player.IsDead() || !s.Unlocked() {
		return
	}

	origin := s.player.Position()
	target, hasTarget := s.NearestEnemy(origin, s.cfg.SearchRadius)

	for i, slot := range s.abilities.Slots() {
		if slot.Ability == nil || slot.Ability.ProjectileKey == "" {
			continue
		}
		if !s.abilities.IsReady(i) || !s.abilities.TryConsumeCooldown(i) {
			continue
		}
		s.fire(slot.Ability, origin, target, hasTarget)
	}
}

func (s *WeaponSystem) fire(ability *config.AbilityDescriptor, origin, target utils.Vec2, hasTarget bool) {
	count := ProjectileCount(s.ProjectileSkillCount(), s.MultiShotLevel())
	facing := s.player.Facing()

	if count <= 1 {
		s.launch(ability, origin, facing)
		return
	}

	var toTarget *utils.Vec2
	if hasTarget {
		d := target.Sub(origin)
		toTarget = &d
	}
	for _, dir := range MultiShotDirections(count, facing, toTarget) {
		s.launch(ability, origin, dir)
	}
	if s.verbose {
		log.Printf("[WeaponSystem] %s fired %d projectiles", ability.Name, count)
	}
}

func (s *WeaponSystem) launch(ability *config.AbilityDescriptor, origin, dir utils.Vec2) {
	if entities.NewProjectile(s.actors, s.armer, ability, origin, dir) != nil {
		s.shots++
	}
}

// Unlocked 是否已拥有子弹类技能
func (s *WeaponSystem) Unlocked() bool {
	for _, token := range s.cfg.ProjectileTokens {
		if s.abilities.HasNameToken(token) {
			return true
		}
	}
	return false
}

// ProjectileSkillCount 已拥有的子弹类技能数
func (s *WeaponSystem) ProjectileSkillCount() int {
	n := 0
	for _, a := range s.abilities.Abilities() {
		if s.isProjectileAbility(a) {
			n++
		}
	}
	return n
}

// MultiShotLevel 多重射击等级：非普通稀有度的子弹类技能数，截断到 [0, MaxMultiShotLevel]
func (s *WeaponSystem) MultiShotLevel() int {
	level := 0
	for _, a := range s.abilities.Abilities() {
		if s.isProjectileAbility(a) && a.Rarity != config.RarityCommon {
			level++
		}
	}
	return min(level, max(0, s.cfg.MaxMultiShotLevel))
}

func (s *WeaponSystem) isProjectileAbility(a *config.AbilityDescriptor) bool {
	return a != nil && a.ProjectileKey != "" && modifier.MatchesAny(a.Name, s.cfg.ProjectileTokens)
}

// ProjectileCount 每轮发射的子弹数
// 子弹类技能不超过一个时为单发；否则多重射击等级 1/2/3 对应 4/6/8 发
func ProjectileCount(projectileSkills, multiShotLevel int) int {
	if projectileSkills <= 1 {
		return 1
	}
	switch max(0, min(multiShotLevel, 3)) {
	case 1:
		return 4
	case 2:
		return 6
	case 3:
		return 8
	default:
		return 1
	}
}

// MultiShotDirections 多重射击的方向
//
// 4 发固定为右、左、上、下；其余从指向目标的方向（无目标时为朝向）起均分 360°。
func MultiShotDirections(count int, facing utils.Vec2, toTarget *utils.Vec2) []utils.Vec2 {
	if count == 4 {
		return []utils.Vec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	}

	base := facing
	if toTarget != nil && toTarget.LenSq() > 0.001 {
		base = toTarget.Normalize()
	}
	start := base.Angle()
	step := 2 * math.Pi / float64(max(1, count))

	dirs := make([]utils.Vec2, count)
	for i := range dirs {
		dirs[i] = utils.FromAngle(start + step*float64(i))
	}
	return dirs
}

// NearestEnemy 搜索半径内最近的存活敌人位置
func (s *WeaponSystem) NearestEnemy(origin utils.Vec2, radius float64) (utils.Vec2, bool) {
	best, found := utils.Vec2{}, false
	bestSq := radius * radius
	s.actors.ForEachActive(config.KindEnemy, func(a *pool.Actor) {
		if a.Enemy.Dying || a.IsDead() {
			return
		}
		if d := utils.DistSq(origin, a.Position()); d <= bestSq {
			bestSq = d
			best = a.Position()
			found = true
		}
	})
	return best, found
}

// Shots 本局发射的子弹数
func (s *WeaponSystem) Shots() int {
	return s.shots
}

// Stats 武器侧乘数镜像
func (s *WeaponSystem) Stats() modifier.State {
	return s.stats
}

// Reset 清空镜像与统计（新的一局）
func (s *WeaponSystem) Reset() {
	s.stats = modifier.NeutralState()
	s.shots = 0
}

// MultiplyDamage 实现 modifier.WeaponModifiers
func (s *WeaponSystem) MultiplyDamage(f float64) { s.stats.Damage *= math.Max(0.1, f) }

// MultiplySpeed 实现 modifier.WeaponModifiers
func (s *WeaponSystem) MultiplySpeed(f float64) { s.stats.ProjectileSpeed *= math.Max(0.1, f) }

// MultiplyLifetime 实现 modifier.WeaponModifiers
func (s *WeaponSystem) MultiplyLifetime(f float64) { s.stats.ProjectileLifetime *= math.Max(0.1, f) }

// MultiplyCritChance 实现 modifier.WeaponModifiers
func (s *WeaponSystem) MultiplyCritChance(f float64) { s.stats.CritChance *= math.Max(0, f) }

// MultiplyCritDamage 实现 modifier.WeaponModifiers
func (s *WeaponSystem) MultiplyCritDamage(f float64) { s.stats.CritDamage *= math.Max(0.1, f) }

// MultiplyPierce 实现 modifier.WeaponModifiers
func (s *WeaponSystem) MultiplyPierce(f float64) { s.stats.Pierce *= math.Max(0.1, f) }

// MultiplyCooldown 实现 modifier.WeaponModifiers
func (s *WeaponSystem) MultiplyCooldown(f float64) {
	s.stats.Cooldown *= modifier.CooldownApplyBand.Clamp(f)
}
