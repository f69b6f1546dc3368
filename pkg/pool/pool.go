package pool

import (
	"log"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/utils"
)

// entry 单个键的对象池
type entry struct {
	def       config.PoolDefinition
	available []*Actor // FIFO 可用队列
	all       []*Actor // 本代创建的全部实例
}

// Pool 按键管理的对象池
//
// 职责：
//   - 预热：按定义构建 N 个未激活实例
//   - 借出/归还：实例在任意时刻只处于 {可用队列, 借出} 之一
//   - 耗尽策略：不可扩容返回 nil 并每键只警告一次；可扩容则新建实例
//   - 重置：销毁全部实例，代数 +1，从定义重建；旧代句柄一律拒绝
//
// 单线程使用，不加锁。
type Pool struct {
	entries    map[string]*entry
	order      []string
	defs       []config.PoolDefinition
	generation uint64
	nextID     uint64
	nextSpawn  uint64
	warn       *utils.WarnOnce
}

// New 创建空对象池
func New() *Pool {
	return &Pool{
		entries: make(map[string]*entry),
		warn:    utils.NewWarnOnce("ActorPool"),
	}
}

// Prewarm 按定义预热
//
// 重复的键会被忽略并警告一次；定义会被记录以供 Reset 重建。
func (p *Pool) Prewarm(defs []config.PoolDefinition) {
	for _, def := range defs {
		if def.Key == "" {
			p.warn.Warn("empty-key", "Pool definition without key ignored")
			continue
		}
		if _, exists := p.entries[def.Key]; exists {
			p.warn.Warn("duplicate:"+def.Key, "Duplicate pool definition for key %q ignored", def.Key)
			continue
		}
		p.defs = append(p.defs, def)
		p.build(def)
	}
}

func (p *Pool) build(def config.PoolDefinition) {
	size := def.Size
	if size < 0 {
		size = 0
	}
	e := &entry{
		def:       def,
		available: make([]*Actor, 0, size),
		all:       make([]*Actor, 0, size),
	}
	for i := 0; i < size; i++ {
		a := p.newActor(e)
		e.available = append(e.available, a)
	}
	p.entries[def.Key] = e
	p.order = append(p.order, def.Key)
}

func (p *Pool) newActor(e *entry) *Actor {
	p.nextID++
	a := &Actor{
		ID:         p.nextID,
		Key:        e.def.Key,
		Kind:       e.def.Kind,
		owner:      p,
		generation: p.generation,
	}
	e.all = append(e.all, a)
	return a
}

// Acquire 借出一个实例并放置到指定位置
//
// 参数：
//   - key: 对象池键
//   - pos: 世界坐标
//   - rot: 朝向（弧度）
//
// 返回：
//   - *Actor: 已重置并激活的实例；未知键或不可扩容池耗尽时返回 nil
func (p *Pool) Acquire(key string, pos utils.Vec2, rot float64) *Actor {
	e, ok := p.entries[key]
	if !ok {
		p.warn.Warn("unknown:"+key, "No pool registered for key %q", key)
		return nil
	}

	var a *Actor
	if len(e.available) > 0 {
		a = e.available[0]
		e.available[0] = nil
		e.available = e.available[1:]
	} else if e.def.Expandable {
		a = p.newActor(e)
	} else {
		p.warn.Warn("exhausted:"+key, "Pool exhausted for key %q. Consider increasing pool size.", key)
		return nil
	}

	a.reset(pos, rot)
	p.nextSpawn++
	a.Spawn = p.nextSpawn
	a.lent = true
	a.Active = true
	return a
}

// Release 归还实例
//
// nil、其他对象池或旧代的实例、未知键、已在可用队列中的实例
// 均为空操作（后几种警告一次），绝不重复入队。
func (p *Pool) Release(a *Actor) {
	if a == nil {
		return
	}
	if a.owner != p || a.generation != p.generation {
		p.warn.Warn("stale", "Released actor %d does not belong to the current pool generation; ignoring", a.ID)
		return
	}
	e, ok := p.entries[a.Key]
	if !ok {
		p.warn.Warn("unknown-release:"+a.Key, "Released actor has unknown pool key %q", a.Key)
		return
	}
	if !a.lent {
		p.warn.Warn("double:"+a.Key, "Actor %d (%s) released while already available; ignoring", a.ID, a.Key)
		return
	}

	a.lent = false
	a.Active = false
	e.available = append(e.available, a)
}

// Reset 销毁全部实例并从定义重建（新的一局/场景切换）
// 重置前借出的句柄全部失效
func (p *Pool) Reset() {
	for _, key := range p.order {
		for _, a := range p.entries[key].all {
			a.lent = false
			a.Active = false
		}
	}

	p.generation++
	p.entries = make(map[string]*entry)
	p.order = nil
	p.warn.Reset()
	for _, def := range p.defs {
		p.build(def)
	}
	log.Printf("[ActorPool] Rebuilt %d pools (generation %d)", len(p.order), p.generation)
}

// Generation 当前代数
func (p *Pool) Generation() uint64 {
	return p.generation
}

// Has 是否注册了该键
func (p *Pool) Has(key string) bool {
	_, ok := p.entries[key]
	return ok
}

// Keys 已注册的键（按预热顺序）
func (p *Pool) Keys() []string {
	return append([]string(nil), p.order...)
}

// Available 可用实例数
func (p *Pool) Available(key string) int {
	if e, ok := p.entries[key]; ok {
		return len(e.available)
	}
	return 0
}

// Lent 借出实例数
func (p *Pool) Lent(key string) int {
	e, ok := p.entries[key]
	if !ok {
		return 0
	}
	n := 0
	for _, a := range e.all {
		if a.lent {
			n++
		}
	}
	return n
}

// Total 预热与扩容创建的实例总数
func (p *Pool) Total(key string) int {
	if e, ok := p.entries[key]; ok {
		return len(e.all)
	}
	return 0
}

// ForEachActive 遍历某种类的借出实例
//
// 回调中可以 Release 当前实例或 Acquire 新实例；
// 本次遍历中扩容新建的实例不会被访问。
func (p *Pool) ForEachActive(kind config.ActorKind, fn func(a *Actor)) {
	for _, key := range append([]string(nil), p.order...) {
		e := p.entries[key]
		if e == nil || e.def.Kind != kind {
			continue
		}
		all := e.all[:len(e.all):len(e.all)]
		for _, a := range all {
			if a.lent {
				fn(a)
			}
		}
	}
}

// CountActive 某种类的借出实例数
func (p *Pool) CountActive(kind config.ActorKind) int {
	n := 0
	p.ForEachActive(kind, func(*Actor) { n++ })
	return n
}
