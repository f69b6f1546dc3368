package systems

import (
	"math"
	"testing"

	"github.com/gonewx/survivor/pkg/utils"
)

func TestOrbitSystem_ContactDamage(t *testing.T) {
	w := newWorld(t)
	sys := NewOrbitSystem(w.balance.Weapon, w.actors, w.resolver, w.player)

	if sys.Unlocked() != 1 {
		t.Fatalf("Expected 1 orbiter at start, got %d", sys.Unlocked())
	}

	// 第 0 把剑在角度 0，半径 1.4
	e := w.enemy(utils.Vec2{X: 1.4}, 10, 0)

	sys.Update(0)
	if e.Health.Current != 8 {
		t.Fatalf("Expected flat orbit damage 2, got hp %v", e.Health.Current)
	}
	sys.Update(0)
	if e.Health.Current != 8 {
		t.Errorf("Same orbiter must not re-hit within interval, got hp %v", e.Health.Current)
	}

	w.resolver.Tick(0.2)
	sys.Update(0)
	if e.Health.Current != 6 {
		t.Errorf("Expected a second hit after the interval, got hp %v", e.Health.Current)
	}

	// 远处的敌人不受影响
	far := w.enemy(utils.Vec2{X: 5}, 10, 0)
	sys.Update(0)
	if far.Health.Current != 10 {
		t.Errorf("Enemy out of reach should not be hit, got hp %v", far.Health.Current)
	}
}

func TestOrbitSystem_ExtraOrbiters(t *testing.T) {
	w := newWorld(t)
	sys := NewOrbitSystem(w.balance.Weapon, w.actors, w.resolver, w.player)

	for i := 0; i < 10; i++ {
		sys.AddExtraOrbiter()
	}
	if sys.Unlocked() != 8 {
		t.Errorf("Orbiters should cap at 8, got %d", sys.Unlocked())
	}

	// 8 把剑均分圆周
	p := sys.OrbiterPosition(2)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-1.4) > 1e-9 {
		t.Errorf("Expected orbiter 2 at (0, 1.4), got %+v", p)
	}

	sys.Reset()
	if sys.Unlocked() != 1 || sys.Angle() != 0 {
		t.Errorf("Reset should restore one orbiter at angle 0, got %d / %v", sys.Unlocked(), sys.Angle())
	}
}

func TestOrbitSystem_Rotation(t *testing.T) {
	w := newWorld(t)
	sys := NewOrbitSystem(w.balance.Weapon, w.actors, w.resolver, w.player)

	sys.Update(2.5) // 180°/s × 2.5 = 450°
	if math.Abs(sys.Angle()-90) > 1e-9 {
		t.Errorf("Expected angle to wrap to 90, got %v", sys.Angle())
	}
}
