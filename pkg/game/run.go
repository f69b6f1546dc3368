package game

import (
	"log"
	"math/rand"

	"github.com/gonewx/survivor/pkg/combat"
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/entities"
	"github.com/gonewx/survivor/pkg/event"
	"github.com/gonewx/survivor/pkg/modifier"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/spawn"
	"github.com/gonewx/survivor/pkg/systems"
	"github.com/gonewx/survivor/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// Options 创建一局所需的参数
type Options struct {
	Data       *Data
	Seed       int64
	Store      *gdata.Manager // 元进度存储，可为 nil
	ViewWidth  float64       // 可视范围宽度（世界单位），0 表示无相机
	ViewHeight float64
	Verbose    bool
}

// Run 一局游戏的组合根
//
// 职责：
//   - 构建并持有对象池、乘数累加器、生成导演、战斗结算与各系统
//   - 驱动固定步长与逐帧两类更新，时间按全局时间缩放换算
//   - 管理游戏状态、经验升级、计分与元进度结算
//   - Reset 在重建之前取消全部延迟任务与进行中的生成
//
// 所有方法只能在同一个协程中调用。
type Run struct {
	data *Data
	cfg  config.Balance
	rng  *rand.Rand
	bus  *event.Bus

	actors      *pool.Pool
	abilities   *modifier.Accumulator
	resolver    *combat.Resolver
	clock       *spawn.DifficultyClock
	director    *spawn.Director
	player      *entities.Player
	view        *View
	weapon      *systems.WeaponSystem
	orbit       *systems.OrbitSystem
	movement    *systems.EnemyMovementSystem
	collision   *systems.CollisionSystem
	pickup      *systems.PickupSystem
	lifetime    *systems.LifetimeSystem
	experience  *Experience
	levelUp     *LevelUpGenerator
	score       *Score
	progress    *ProgressStore
	timeScale   *TimeScale
	scheduler   *Scheduler

	state         State
	fixedAcc      float64
	choices       []*config.AbilityDescriptor
	pendingLevels int
	kills         int
	verbose       bool
}

// NewRun 构建一局（处于 Menu 状态，调用 Start 开始）
func NewRun(opts Options) *Run {
	data := opts.Data
	if data == nil {
		data = &Data{
			Balance:   config.DefaultBalance(),
			Abilities: &config.AbilitySet{},
			Roster:    &config.EnemyRoster{},
			Pools:     &config.PoolsConfig{},
		}
	}
	cfg := data.Balance

	r := &Run{
		data:      data,
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		bus:       event.NewBus(),
		actors:    pool.New(),
		player:    entities.NewPlayer(cfg.Player),
		view:      NewView(opts.ViewWidth, opts.ViewHeight),
		score:     NewScore(cfg.Score),
		progress:  NewProgressStore(opts.Store),
		timeScale: NewTimeScale(cfg.TimeScale),
		scheduler: NewScheduler(),
		verbose:   opts.Verbose,
	}
	r.actors.Prewarm(data.Pools.Pools)

	r.experience = NewExperience(cfg.Experience)
	r.experience.OnLevelUp = r.onLevelUp
	r.abilities = modifier.NewAccumulator(cfg, r.experience, nil)
	r.levelUp = NewLevelUpGenerator(cfg.LevelUp, data.Abilities.Abilities, r.rng)

	r.resolver = combat.NewResolver(cfg.Combat, r.abilities, r.actors, r.rng, r.bus)
	r.resolver.OnKill = r.onKill

	r.clock = spawn.NewDifficultyClock(cfg.Difficulty, r.bus)
	placer := spawn.NewPlacer(cfg.Placement, r.view, r.player)
	r.director = spawn.NewDirector(cfg.Wave, spawn.NewRoster(data.Roster.Enemies), r.actors,
		entities.NewEnemyConfigurer(cfg.Enemy), placer, r.clock, r.rng, r.bus)
	r.director.SetSpawnGate(func() bool { return !r.player.IsDead() })
	r.director.SetVerbose(opts.Verbose)

	r.weapon = systems.NewWeaponSystem(cfg.Weapon, r.abilities, r.actors, r.resolver, r.player)
	r.weapon.SetVerbose(opts.Verbose)
	r.orbit = systems.NewOrbitSystem(cfg.Weapon, r.actors, r.resolver, r.player)
	r.movement = systems.NewEnemyMovementSystem(r.actors, r.player, cfg.Enemy)
	r.collision = systems.NewCollisionSystem(r.actors, r.resolver, r.player, cfg.Enemy)
	r.pickup = systems.NewPickupSystem(r.actors, r.player, cfg.Player, cfg.Pickup)
	r.pickup.OnCollect = func(value int) { r.experience.Add(value) }
	r.lifetime = systems.NewLifetimeSystem(r.actors, r.resolver)

	r.abilities.AttachWeapon(r.weapon)
	r.abilities.AttachPlayer(r.player)
	r.abilities.AttachOrbit(r.orbit)

	r.state = StateMenu
	return r
}

// Start 开始新的一局：重置、授予初始技能并进入 Gameplay
func (r *Run) Start() {
	r.Reset()
	for _, name := range r.cfg.Player.StartingAbilities {
		ab := r.data.Abilities.Find(name)
		if ab == nil {
			log.Printf("[Run] Warning: Starting ability %q not found in ability library", name)
			continue
		}
		r.acquire(ab)
	}
	r.director.Start()
	r.SetState(StateGameplay)
	log.Printf("[Run] Run started with %d abilities", r.abilities.Count())
}

// Reset 取消一切进行中的工作并回到 Menu
//
// 顺序：延迟任务 → 生成导演（含难度）→ 对象池 → 接触计时 → 技能与乘数 → 玩家与各系统。
func (r *Run) Reset() {
	r.scheduler.CancelAll()
	r.director.Reset()
	r.actors.Reset()
	r.resolver.Reset()
	r.abilities.Reset()
	r.player.Reset()
	r.weapon.Reset()
	r.orbit.Reset()
	r.pickup.Reset()
	r.experience.Reset()
	r.score.Reset()

	r.fixedAcc = 0
	r.choices = nil
	r.pendingLevels = 0
	r.kills = 0
	r.view.Follow(r.player.Position())

	r.state = StateMenu
	r.timeScale.Retarget(1, true)
	r.bus.Publish(event.TypeRunReset, nil)
}

// SetState 切换游戏状态；相同状态为空操作
func (r *Run) SetState(s State) {
	if s == r.state {
		return
	}
	from := r.state
	r.state = s
	r.timeScale.ApplyState(s, false)
	if r.verbose {
		log.Printf("[Run] State %s -> %s", from, s)
	}
	r.bus.Publish(event.TypeStateChanged, event.StateChanged{From: from.String(), To: s.String()})
}

// TogglePause 在 Gameplay 与 Pause 之间切换
func (r *Run) TogglePause() {
	switch r.state {
	case StateGameplay:
		r.SetState(StatePause)
	case StatePause:
		r.SetState(StateGameplay)
	}
}

// Update 推进一帧
//
// 参数：
//   - unscaledDt: 真实经过的秒数；时间缩放过渡与延迟任务按它推进，
//     其余玩法按缩放后的时间推进
func (r *Run) Update(unscaledDt float64) {
	if unscaledDt <= 0 {
		return
	}
	r.timeScale.Advance(unscaledDt)
	r.scheduler.Advance(unscaledDt)

	dt := r.timeScale.Scale(unscaledDt)
	if dt <= 0 {
		return
	}

	step := r.cfg.TimeScale.FixedStep
	if step <= 0 {
		r.fixedUpdate(dt)
		r.frameUpdate(dt)
		return
	}
	r.fixedAcc += dt
	steps := 0
	for r.fixedAcc >= step {
		if r.cfg.TimeScale.MaxFixedSteps > 0 && steps >= r.cfg.TimeScale.MaxFixedSteps {
			// 落后过多时丢弃积压，避免死亡螺旋
			r.fixedAcc = 0
			break
		}
		r.fixedUpdate(step)
		r.fixedAcc -= step
		steps++
	}

	r.frameUpdate(dt)
}

// fixedUpdate 固定步长：移动、子弹飞行、碰撞与拾取
func (r *Run) fixedUpdate(dt float64) {
	r.player.Step(dt)
	r.view.Follow(r.player.Position())
	r.movement.Update(dt)
	r.lifetime.Update(dt)
	r.orbit.Update(dt)
	r.collision.Update()
	r.pickup.Update(dt)
}

// frameUpdate 逐帧：冷却、发射、接触计时；节奏与计分只在 Gameplay 下推进
func (r *Run) frameUpdate(dt float64) {
	r.abilities.Tick(dt)
	r.resolver.Tick(dt)
	if r.state != StateGameplay {
		return
	}
	r.weapon.Update()
	r.clock.Tick(dt)
	r.director.Tick(dt)
	r.score.Tick(dt)
}

func (r *Run) acquire(ab *config.AbilityDescriptor) {
	if r.abilities.Owns(ab.Name) {
		return
	}
	r.abilities.Acquire(ab)
	r.bus.Publish(event.TypeAbilityAcquired, event.AbilityAcquired{Name: ab.Name})
}

// onKill 结算死亡：敌人进入延迟回收并掉落经验，玩家死亡结束本局
func (r *Run) onKill(defender combat.Target, attacker *pool.Actor) {
	if a, ok := defender.(*pool.Actor); ok {
		if a.Kind == config.KindEnemy {
			r.killEnemy(a)
		}
		return
	}
	if defender.TargetID() == entities.PlayerTargetID {
		r.finish()
	}
}

func (r *Run) killEnemy(a *pool.Actor) {
	if a.Enemy.Dying {
		return
	}
	a.Enemy.Dying = true
	a.Transform.Velocity = utils.Vec2{}
	r.kills++

	pos := a.Position()
	if a.Enemy.XPGemKey != "" {
		entities.NewXPGem(r.actors, a.Enemy.XPGemKey, pos, r.cfg.Pickup.GemValue)
	}
	r.score.AddKill()
	r.bus.Publish(event.TypeEnemyKilled, event.EnemyKilled{ActorID: a.ID, Key: a.Key, Position: pos})

	// 只回收本次借出；实例被提前回收并再次借出后 Spawn 会变化
	spawned := a.Spawn
	r.scheduler.After(r.cfg.Enemy.DespawnDelay, func() {
		if a.IsLent() && a.Spawn == spawned {
			r.actors.Release(a)
		}
	})
}

// finish 玩家死亡：冻结得分、写入元进度并进入 GameOver
func (r *Run) finish() {
	if r.score.Finished() {
		return
	}
	final := r.score.Finish()
	gold := r.score.Gold()
	best := r.progress.SubmitScore(final, gold)
	log.Printf("[Run] Player died: score %d, gold +%d, kills %d, best=%v", final, gold, r.kills, best)
	r.choices = nil
	r.pendingLevels = 0
	r.SetState(StateGameOver)
}

func (r *Run) onLevelUp(level int) {
	r.player.Health.Heal(r.player.Health.Max)
	r.bus.Publish(event.TypeLevelUp, event.LevelUp{Level: level})
	if r.player.IsDead() {
		return
	}

	r.pendingLevels++
	if r.choices == nil {
		r.offerChoices()
	}
}

// offerChoices 生成候选；技能库耗尽时直接消耗掉待选等级
func (r *Run) offerChoices() {
	for r.pendingLevels > 0 {
		r.choices = r.levelUp.Generate(r.abilities)
		if len(r.choices) > 0 {
			// 暂停中（含停止过渡期间）升级同样进入 LevelUp，候选不会在恢复后遗留
			if r.cfg.Experience.PauseOnLevelUp && (r.state == StateGameplay || r.state == StatePause) {
				r.SetState(StateLevelUp)
			}
			return
		}
		r.choices = nil
		r.pendingLevels--
	}
}

// ChooseAbility 从当前候选中选择一个技能
//
// 返回：
//   - bool: 索引越界或没有候选时为 false
func (r *Run) ChooseAbility(index int) bool {
	if index < 0 || index >= len(r.choices) {
		return false
	}
	r.acquire(r.choices[index])
	r.choices = nil
	r.pendingLevels--
	r.offerChoices()
	if r.choices == nil && r.state == StateLevelUp {
		r.SetState(StateGameplay)
	}
	return true
}

// Choices 当前升级候选（拷贝）
func (r *Run) Choices() []*config.AbilityDescriptor {
	return append([]*config.AbilityDescriptor(nil), r.choices...)
}

// SetMoveIntent 设置玩家移动意图；Gameplay 以外的状态清空意图
func (r *Run) SetMoveIntent(dir utils.Vec2) {
	if r.state != StateGameplay {
		r.player.SetIntent(utils.Vec2{})
		return
	}
	r.player.SetIntent(dir)
}

// State 当前游戏状态
func (r *Run) State() State { return r.state }

// Bus 事件总线（前端订阅伤害数字、升级等遥测）
func (r *Run) Bus() *event.Bus { return r.bus }

// Actors 对象池（只读遍历使用）
func (r *Run) Actors() *pool.Pool { return r.actors }

// Player 玩家
func (r *Run) Player() *entities.Player { return r.player }

// View 可视范围
func (r *Run) View() *View { return r.view }

// Abilities 乘数累加器
func (r *Run) Abilities() *modifier.Accumulator { return r.abilities }

// Director 生成导演
func (r *Run) Director() *spawn.Director { return r.director }

// Clock 难度时钟
func (r *Run) Clock() *spawn.DifficultyClock { return r.clock }

// Resolver 战斗结算
func (r *Run) Resolver() *combat.Resolver { return r.resolver }

// Weapon 子弹武器系统
func (r *Run) Weapon() *systems.WeaponSystem { return r.weapon }

// Orbit 环绕剑系统
func (r *Run) Orbit() *systems.OrbitSystem { return r.orbit }

// Experience 经验与等级
func (r *Run) Experience() *Experience { return r.experience }

// Score 本局得分
func (r *Run) Score() *Score { return r.score }

// Progress 元进度
func (r *Run) Progress() *ProgressStore { return r.progress }

// TimeScale 全局时间缩放
func (r *Run) TimeScale() *TimeScale { return r.timeScale }

// Scheduler 延迟任务调度器
func (r *Run) Scheduler() *Scheduler { return r.scheduler }

// Kills 本局击杀数
func (r *Run) Kills() int { return r.kills }
