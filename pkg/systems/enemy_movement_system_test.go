package systems

import (
	"math"
	"testing"

	"github.com/gonewx/survivor/pkg/utils"
)

func TestEnemyMovementSystem_DistanceBand(t *testing.T) {
	w := newWorld(t)
	sys := NewEnemyMovementSystem(w.actors, w.player, w.balance.Enemy)

	tests := []struct {
		name string
		pos  utils.Vec2
		want utils.Vec2
	}{
		{"远离时追击", utils.Vec2{X: 5}, utils.Vec2{X: -2}},
		{"过近时后退", utils.Vec2{X: 1}, utils.Vec2{X: 2}},
		{"距离带内停留", utils.Vec2{X: 1.6}, utils.Vec2{}},
		{"重合时停留", utils.Vec2{X: 0.05}, utils.Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := w.enemy(tt.pos, 10, 0)
			defer w.actors.Release(a)
			got := sys.DesiredVelocity(a)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Expected desired velocity %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestEnemyMovementSystem_Acceleration(t *testing.T) {
	w := newWorld(t)
	sys := NewEnemyMovementSystem(w.actors, w.player, w.balance.Enemy)

	a := w.enemy(utils.Vec2{X: 5}, 10, 0)
	sys.Update(0.1)
	// 加速度 18：0.1 秒内速度变化 1.8
	if math.Abs(a.Transform.Velocity.X+1.8) > 1e-9 {
		t.Errorf("Expected velocity -1.8, got %v", a.Transform.Velocity.X)
	}
	if math.Abs(a.Position().X-4.82) > 1e-9 {
		t.Errorf("Expected x=4.82, got %v", a.Position().X)
	}

	a.Enemy.Dying = true
	sys.Update(0.1)
	if a.Transform.Velocity != (utils.Vec2{}) {
		t.Errorf("Dying enemy should stop, got %+v", a.Transform.Velocity)
	}
}
