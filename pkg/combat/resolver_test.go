package combat

import (
	"bytes"
	"log"
	"math"
	"os"
	"testing"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/event"
	"github.com/gonewx/survivor/pkg/modifier"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

type stubMods struct{ state modifier.State }

func (m *stubMods) Snapshot() modifier.State { return m.state }

type stubRand struct{ v float64 }

func (r *stubRand) Float64() float64 { return r.v }

type fixture struct {
	pool     *pool.Pool
	mods     *stubMods
	rng      *stubRand
	bus      *event.Bus
	resolver *Resolver
	dealt    []event.DamageDealt
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	f := &fixture{
		pool: pool.New(),
		mods: &stubMods{state: modifier.NeutralState()},
		rng:  &stubRand{v: 0.99},
		bus:  event.NewBus(),
	}
	f.pool.Prewarm([]config.PoolDefinition{
		{Key: "arrow", Kind: config.KindProjectile, Size: 4, Expandable: true},
		{Key: "bat", Kind: config.KindEnemy, Size: 4, Expandable: true},
	})
	f.bus.Subscribe(event.TypeDamageDealt, func(e event.Event) {
		f.dealt = append(f.dealt, e.Data.(event.DamageDealt))
	})
	f.resolver = NewResolver(config.DefaultBalance().Combat, f.mods, f.pool, f.rng, f.bus)
	return f
}

func (f *fixture) enemy(hp float64, pos utils.Vec2) *pool.Actor {
	a := f.pool.Acquire("bat", pos, 0)
	a.Health.Reset(hp)
	return a
}

func (f *fixture) arrow(ability *config.AbilityDescriptor) *pool.Actor {
	a := f.pool.Acquire("arrow", utils.Vec2{}, 0)
	f.resolver.ArmProjectile(a, ability, utils.Vec2{X: 1})
	return a
}

func TestApplyHitUsesLiveMultipliers(t *testing.T) {
	f := newFixture(t)
	ab := config.NewAbility("Archer skill", config.RarityCommon)
	ab.PierceCount = 5
	proj := f.arrow(ab)

	e1 := f.enemy(100, utils.Vec2{X: 2})
	if got := f.resolver.ApplyHit(proj, e1, 4); got != 4 {
		t.Errorf("Expected 4 damage at neutral multipliers, got %v", got)
	}

	// 乘数在命中时实时读取，不在发射时缓存
	f.mods.state.Damage = 1.5
	e2 := f.enemy(100, utils.Vec2{X: 3})
	if got := f.resolver.ApplyHit(proj, e2, 4); math.Abs(got-6) > 1e-9 {
		t.Errorf("Expected 6 damage after multiplier change, got %v", got)
	}

	if len(f.dealt) != 2 || f.dealt[1].Position != (utils.Vec2{X: 3}) {
		t.Errorf("Expected telemetry per hit with defender position, got %+v", f.dealt)
	}
}

func TestApplyHitCrit(t *testing.T) {
	f := newFixture(t)
	ab := config.NewAbility("Archer skill", config.RarityCommon) // critChance 0.1, critMultiplier 2
	ab.PierceCount = 10
	proj := f.arrow(ab)

	t.Run("掷点低于暴击率", func(t *testing.T) {
		f.rng.v = 0.05
		f.mods.state.CritDamage = 1.25
		got := f.resolver.ApplyHit(proj, f.enemy(100, utils.Vec2{}), 2)
		if math.Abs(got-5) > 1e-9 {
			t.Errorf("Expected crit damage 2*2*1.25 = 5, got %v", got)
		}
		if !f.dealt[len(f.dealt)-1].Crit {
			t.Error("Telemetry should flag the crit")
		}
	})

	t.Run("掷点高于暴击率", func(t *testing.T) {
		f.rng.v = 0.2
		if got := f.resolver.ApplyHit(proj, f.enemy(100, utils.Vec2{}), 2); got != 2 {
			t.Errorf("Expected non-crit damage 2, got %v", got)
		}
	})

	t.Run("暴击率乘数为零时不暴击", func(t *testing.T) {
		f.rng.v = 0
		f.mods.state.CritChance = 0
		if got := f.resolver.ApplyHit(proj, f.enemy(100, utils.Vec2{}), 2); got != 2 {
			t.Errorf("Expected no crit with zero chance, got %v", got)
		}
	})

	if f.resolver.Crits() != 1 || f.resolver.Hits() != 3 {
		t.Errorf("Expected 3 hits / 1 crit, got %d / %d", f.resolver.Hits(), f.resolver.Crits())
	}
}

func TestPierceRetiresProjectile(t *testing.T) {
	f := newFixture(t)
	ab := config.NewAbility("Archer skill", config.RarityCommon)
	ab.PierceCount = 2
	proj := f.arrow(ab)
	if proj.Projectile.PierceLeft != 2 {
		t.Fatalf("Expected pierce 2, got %d", proj.Projectile.PierceLeft)
	}

	e1 := f.enemy(10, utils.Vec2{})
	e2 := f.enemy(10, utils.Vec2{})
	e3 := f.enemy(10, utils.Vec2{})

	f.resolver.ApplyHit(proj, e1, 1)
	if got := f.resolver.ApplyHit(proj, e1, 1); got != 0 {
		t.Errorf("Same projectile must not hit the same target twice, got %v", got)
	}
	f.resolver.ApplyHit(proj, e2, 1)

	if proj.IsLent() {
		t.Error("Projectile should be released when pierce reaches zero")
	}
	if got := f.resolver.ApplyHit(proj, e3, 1); got != 0 {
		t.Errorf("Retired projectile must not deal damage, got %v", got)
	}
	if f.pool.Available("arrow") != 4 {
		t.Errorf("Expected projectile back in pool, got %d available", f.pool.Available("arrow"))
	}
}

func TestApplyHitDeadDefender(t *testing.T) {
	f := newFixture(t)
	kills := 0
	f.resolver.OnKill = func(Target, *pool.Actor) { kills++ }

	e := f.enemy(3, utils.Vec2{})
	if got := f.resolver.ApplyHit(nil, e, 5); got != 5 {
		t.Errorf("Expected 5 applied, got %v", got)
	}
	if got := f.resolver.ApplyHit(nil, e, 5); got != 0 {
		t.Errorf("Damage after death must be a no-op, got %v", got)
	}
	if got := f.resolver.ApplyHit(nil, nil, 5); got != 0 {
		t.Errorf("nil defender must be a no-op, got %v", got)
	}
	if kills != 1 {
		t.Errorf("Expected exactly one kill callback, got %d", kills)
	}
}

func TestContactCooldown(t *testing.T) {
	f := newFixture(t)
	e := f.enemy(100, utils.Vec2{})
	key := ContactKey{Defender: e.Spawn, Attacker: 0, Slot: 2}

	first := f.resolver.ApplyContact(key, e, 2, 0.2)
	second := f.resolver.ApplyContact(key, e, 2, 0.2)
	if first != 2 || second != 0 {
		t.Errorf("Expected (2, 0) within interval, got (%v, %v)", first, second)
	}

	// 不同槽位是不同的键
	other := ContactKey{Defender: e.Spawn, Attacker: 0, Slot: 3}
	if got := f.resolver.ApplyContact(other, e, 2, 0.2); got != 2 {
		t.Errorf("Different slot should not share cooldown, got %v", got)
	}

	f.resolver.Tick(0.125)
	if got := f.resolver.ApplyContact(key, e, 2, 0.2); got != 0 {
		t.Errorf("Still within interval, got %v", got)
	}
	f.resolver.Tick(0.125)
	if got := f.resolver.ApplyContact(key, e, 2, 0.2); got != 2 {
		t.Errorf("Expected damage again after interval, got %v", got)
	}
	if e.Health.Current != 94 {
		t.Errorf("Expected 94 hp after three applied contacts, got %v", e.Health.Current)
	}
}

func TestContactTimersPruned(t *testing.T) {
	f := newFixture(t)
	e := f.enemy(1000, utils.Vec2{})

	for slot := 0; slot < 50; slot++ {
		f.resolver.ApplyContact(ContactKey{Defender: e.Spawn, Slot: slot}, e, 1, 0.01)
	}
	// 间隔不小于 MinContactInterval
	if f.resolver.ContactReady(ContactKey{Defender: e.Spawn, Slot: 0}) {
		t.Error("Contact should be cooling down")
	}
	f.resolver.Tick(0.04)
	if f.resolver.ContactCount() != 50 {
		t.Errorf("Interval should floor at 0.05, got %d live timers", f.resolver.ContactCount())
	}
	f.resolver.Tick(0.02)
	if f.resolver.ContactCount() != 0 {
		t.Errorf("Expired timers must be pruned, got %d", f.resolver.ContactCount())
	}
}

func TestArmProjectile(t *testing.T) {
	f := newFixture(t)
	ab := config.NewAbility("Archer skill", config.RarityCommon)

	tests := []struct {
		name       string
		pierce     int
		pierceMul  float64
		wantPierce int
	}{
		{"基础穿透", 1, 1, 1},
		{"向下取整", 1, 1.35, 1},
		{"四舍五入", 2, 1.35, 3},
		{"下限为1", 0, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab.PierceCount = tt.pierce
			f.mods.state.Pierce = tt.pierceMul
			a := f.arrow(ab)
			if a.Projectile.PierceLeft != tt.wantPierce {
				t.Errorf("Expected pierce %d, got %d", tt.wantPierce, a.Projectile.PierceLeft)
			}
		})
	}

	f.mods.state = modifier.NeutralState()
	f.mods.state.ProjectileSpeed = 1.2
	f.mods.state.ProjectileLifetime = 0.5
	a := f.pool.Acquire("arrow", utils.Vec2{}, 0)
	f.resolver.ArmProjectile(a, ab, utils.Vec2{})
	if math.Abs(a.Projectile.Speed-12) > 1e-9 {
		t.Errorf("Expected speed 12, got %v", a.Projectile.Speed)
	}
	if a.Projectile.Direction != (utils.Vec2{X: 1}) {
		t.Errorf("Zero direction should fall back to +X, got %+v", a.Projectile.Direction)
	}
	if math.Abs(a.Projectile.Lifetime.MaxLifetime-1.5) > 1e-9 {
		t.Errorf("Expected lifetime 1.5, got %v", a.Projectile.Lifetime.MaxLifetime)
	}
}

func TestAdvanceProjectile(t *testing.T) {
	f := newFixture(t)
	ab := config.NewAbility("Archer skill", config.RarityCommon) // speed 10, lifetime 3
	a := f.arrow(ab)

	if f.resolver.AdvanceProjectile(a, 0.5) {
		t.Fatal("Projectile should still be flying")
	}
	if math.Abs(a.Position().X-5) > 1e-9 {
		t.Errorf("Expected x=5 after 0.5s, got %v", a.Position().X)
	}
	if !f.resolver.AdvanceProjectile(a, 2.5) {
		t.Error("Projectile should expire after its lifetime")
	}
	if a.IsLent() {
		t.Error("Expired projectile should be released")
	}
	if !f.resolver.AdvanceProjectile(a, 1) {
		t.Error("Released projectile should report gone")
	}
}

func TestResolverReset(t *testing.T) {
	f := newFixture(t)
	e := f.enemy(10, utils.Vec2{})
	f.resolver.ApplyContact(ContactKey{Defender: e.Spawn}, e, 1, 1)
	f.resolver.Reset()
	if f.resolver.ContactCount() != 0 || f.resolver.Hits() != 0 {
		t.Error("Reset should clear timers and stats")
	}
}

func TestContactCooldownNotInheritedByRecycledActor(t *testing.T) {
	f := newFixture(t)
	f.pool.Prewarm([]config.PoolDefinition{{Key: "ogre", Kind: config.KindEnemy, Size: 1}})
	player := f.enemy(100, utils.Vec2{})

	a := f.pool.Acquire("ogre", utils.Vec2{}, 0)
	a.Health.Reset(10)
	if got := f.resolver.ApplyContact(ContactKey{Defender: player.Spawn, Attacker: a.Spawn}, player, 3, 1); got != 3 {
		t.Fatalf("Expected first contact to apply 3, got %v", got)
	}
	f.pool.Release(a)

	b := f.pool.Acquire("ogre", utils.Vec2{}, 0)
	if b != a {
		t.Fatal("Expected the recycled instance")
	}
	b.Health.Reset(10)
	// 新借出的敌人第一次接触立即生效
	if got := f.resolver.ApplyContact(ContactKey{Defender: player.Spawn, Attacker: b.Spawn}, player, 3, 1); got != 3 {
		t.Errorf("Expected fresh spawn to deal 3 on first contact, got %v", got)
	}
	if player.Health.Current != 94 {
		t.Errorf("Expected 94 hp, got %v", player.Health.Current)
	}
}
