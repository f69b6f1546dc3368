package systems

import (
	"testing"

	"github.com/gonewx/survivor/pkg/utils"
)

func TestCollisionSystem_ProjectileHitsEnemy(t *testing.T) {
	w := newWorld(t)
	w.player.Transform.Position = utils.Vec2{X: -50}
	sys := NewCollisionSystem(w.actors, w.resolver, w.player, w.balance.Enemy)

	e := w.enemy(utils.Vec2{X: 0.5}, 10, 0)
	p := w.actors.Acquire("arrow", utils.Vec2{}, 0)
	w.resolver.ArmProjectile(p, archer("arrow"), utils.Vec2{X: 1})

	sys.Update()
	if e.Health.Current != 9 {
		t.Errorf("Expected 1 damage from projectile, got hp %v", e.Health.Current)
	}
	if p.IsLent() {
		t.Error("Projectile with pierce 1 should be retired after one hit")
	}

	sys.Update()
	if e.Health.Current != 9 {
		t.Errorf("Retired projectile must not hit again, got hp %v", e.Health.Current)
	}
}

func TestCollisionSystem_SkipsDyingEnemy(t *testing.T) {
	w := newWorld(t)
	sys := NewCollisionSystem(w.actors, w.resolver, w.player, w.balance.Enemy)

	e := w.enemy(utils.Vec2{X: 0.5}, 10, 3)
	e.Enemy.Dying = true
	p := w.actors.Acquire("arrow", utils.Vec2{X: 0.5}, 0)
	w.resolver.ArmProjectile(p, archer("arrow"), utils.Vec2{X: 1})

	sys.Update()
	if e.Health.Current != 10 || !p.IsLent() {
		t.Error("Dying enemy should not be hit")
	}
	if w.player.Health.Current != w.balance.Player.MaxHP {
		t.Error("Dying enemy should not deal contact damage")
	}
}

func TestCollisionSystem_EnemyContactCooldown(t *testing.T) {
	w := newWorld(t)
	sys := NewCollisionSystem(w.actors, w.resolver, w.player, w.balance.Enemy)
	w.enemy(utils.Vec2{X: 0.3}, 10, 3)

	sys.Update()
	sys.Update()
	if w.player.Health.Current != 17 {
		t.Fatalf("Expected one contact hit within interval, got hp %v", w.player.Health.Current)
	}

	w.resolver.Tick(0.5)
	sys.Update()
	if w.player.Health.Current != 17 {
		t.Errorf("Contact interval 0.7 not yet elapsed, got hp %v", w.player.Health.Current)
	}

	w.resolver.Tick(0.2)
	sys.Update()
	if w.player.Health.Current != 14 {
		t.Errorf("Expected second contact hit after interval, got hp %v", w.player.Health.Current)
	}
}
