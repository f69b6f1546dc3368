package spawn

import (
	"log"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/event"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// State 生成导演状态
type State int

const (
	StateIdle         State = iota // 未开始
	StateSpawningWave              // 本波逐个生成中
	StateIntermission              // 波次间隔
)

// String 状态名
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSpawningWave:
		return "SpawningWave"
	case StateIntermission:
		return "Intermission"
	default:
		return "Unknown"
	}
}

// ActorSource 对象来源（pool.Pool 满足该接口）
type ActorSource interface {
	Acquire(key string, pos utils.Vec2, rot float64) *pool.Actor
}

// EnemyConfigurer 外部的敌人数值配置步骤
// 导演只申请通用实例并交给它难度乘数，不自行写入血量/速度/伤害
type EnemyConfigurer interface {
	Configure(a *pool.Actor, def config.EnemyDefinition, difficultyMultiplier float64)
}

// EnemyCount 第 wave 波的敌人数量 max(1, base + wave·growth)
func EnemyCount(cfg config.WaveConfig, wave int) int {
	n := cfg.BaseEnemies + wave*cfg.GrowthPerWave
	if n < 1 {
		return 1
	}
	return n
}

// Director 波次生成导演
//
// 职责：
//   - 状态机 Idle → SpawningWave → Intermission → SpawningWave …，无终态
//   - 按 spawnInterval 逐个生成本波敌人，按 waveInterval 等待下一波
//   - 选择生成什么（难度阶过滤 + 权重）、在哪（Placer）、多少（EnemyCount）
//
// 等待以剩余计时器表示，由 Tick 推进，可被 Reset 立即取消。
// 玩家死亡不会让状态机终止：生成闸门关闭后继续空转。
type Director struct {
	cfg        config.WaveConfig
	roster     *Roster
	source     ActorSource
	configurer EnemyConfigurer
	placer     *Placer
	clock      *DifficultyClock
	rng        RandSource
	bus        *event.Bus
	gate       func() bool
	warn       *utils.WarnOnce

	state     State
	waveIndex int
	remaining int
	timer     float64
	spawned   int

	// OnSpawn 每次成功生成后回调，可为 nil
	OnSpawn func(a *pool.Actor, def config.EnemyDefinition)

	verbose bool
}

// NewDirector 创建生成导演
//
// 参数：
//   - cfg: 波次配置
//   - roster: 敌人名册
//   - source: 对象来源
//   - configurer: 敌人数值配置步骤，可为 nil
//   - placer: 位置选择器，nil 时只使用环形回退
//   - clock: 难度时钟，nil 时按第 0 阶、乘数 1 处理
//   - rng: 随机数来源
//   - bus: 事件总线，可为 nil
//
// 返回：
//   - *Director: 处于 Idle 状态的导演
func NewDirector(cfg config.WaveConfig, roster *Roster, source ActorSource, configurer EnemyConfigurer,
	placer *Placer, clock *DifficultyClock, rng RandSource, bus *event.Bus) *Director {
	if placer == nil {
		placer = NewPlacer(config.DefaultBalance().Placement, nil, nil)
	}
	return &Director{
		cfg:        cfg,
		roster:     roster,
		source:     source,
		configurer: configurer,
		placer:     placer,
		clock:      clock,
		rng:        rng,
		bus:        bus,
		warn:       utils.NewWarnOnce("SpawnDirector"),
		state:      StateIdle,
	}
}

// SetVerbose 设置详细日志
func (d *Director) SetVerbose(v bool) {
	d.verbose = v
}

// SetSpawnGate 设置生成闸门；返回 false 时跳过生成但节奏照常推进
func (d *Director) SetSpawnGate(gate func() bool) {
	d.gate = gate
}

// Start 从 Idle 进入第一波；非 Idle 状态下为空操作
func (d *Director) Start() {
	if d.state != StateIdle {
		return
	}
	d.beginWave()
}

func (d *Director) beginWave() {
	d.state = StateSpawningWave
	d.remaining = EnemyCount(d.cfg, d.waveIndex)
	log.Printf("[SpawnDirector] Wave %d started: %d enemies", d.waveIndex, d.remaining)
	d.bus.Publish(event.TypeWaveStarted, event.WaveStarted{Index: d.waveIndex, Count: d.remaining})
}

// Tick 推进导演
//
// 剩余计时可为负，用于跨帧补齐；dt < 0 按 0 处理。
func (d *Director) Tick(dt float64) {
	if d.state == StateIdle {
		return
	}
	if dt > 0 {
		d.timer -= dt
	}

	for d.timer <= 0 {
		switch d.state {
		case StateSpawningWave:
			if d.remaining > 0 {
				d.Spawn()
				d.remaining--
				if d.cfg.SpawnInterval > 0 {
					d.timer += d.cfg.SpawnInterval
				}
				continue
			}
			d.waveIndex++
			d.state = StateIntermission
			if d.cfg.Interval <= 0 {
				// 无间隔时下一波从下一次 Tick 开始
				d.timer = 0
				d.beginWave()
				return
			}
			d.timer += d.cfg.Interval

		case StateIntermission:
			d.beginWave()

		default:
			return
		}
	}
}

// Spawn 立即生成一个敌人
//
// 返回：
//   - *pool.Actor: 生成的实例；闸门关闭、名册为空或对象池耗尽时返回 nil
func (d *Director) Spawn() *pool.Actor {
	if d.gate != nil && !d.gate() {
		return nil
	}
	if d.roster.Len() == 0 {
		d.warn.Warn("empty-roster", "Enemy roster is empty, nothing to spawn")
		return nil
	}

	step, multiplier := 0, 1.0
	if d.clock != nil {
		step, multiplier = d.clock.Step(), d.clock.Multiplier()
	}

	def, ok := PickWeighted(d.roster.CandidatesOrAll(step), d.rng)
	if !ok {
		return nil
	}
	if d.source == nil {
		d.warn.Warn("no-source", "No actor source configured, cannot spawn %q", def.ID)
		return nil
	}

	pos := d.placer.Position(d.rng)
	a := d.source.Acquire(def.PoolKey, pos, 0)
	if a == nil {
		return nil
	}
	if d.configurer != nil {
		d.configurer.Configure(a, def, multiplier)
	}
	d.spawned++

	if d.verbose {
		log.Printf("[SpawnDirector] Spawned %s (actor %d) at (%.1f, %.1f), difficulty x%.2f",
			def.ID, a.ID, pos.X, pos.Y, multiplier)
	}
	if d.OnSpawn != nil {
		d.OnSpawn(a, def)
	}
	return a
}

// Reset 取消进行中的波次并回到 Idle（新的一局）
// 同时重置难度时钟
func (d *Director) Reset() {
	d.state = StateIdle
	d.waveIndex = 0
	d.remaining = 0
	d.timer = 0
	d.spawned = 0
	d.warn.Reset()
	if d.clock != nil {
		d.clock.Reset()
	}
}

// State 当前状态
func (d *Director) State() State { return d.state }

// WaveIndex 当前波次索引（单调递增）
func (d *Director) WaveIndex() int { return d.waveIndex }

// Remaining 本波尚未生成的数量
func (d *Director) Remaining() int { return d.remaining }

// Spawned 本局成功生成的总数
func (d *Director) Spawned() int { return d.spawned }

// EnemyCount 第 wave 波的敌人数量
func (d *Director) EnemyCount(wave int) int {
	return EnemyCount(d.cfg, wave)
}
