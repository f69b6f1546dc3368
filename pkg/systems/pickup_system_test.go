package systems

import (
	"testing"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/entities"
	"github.com/gonewx/survivor/pkg/utils"
)

func TestPickupSystem_CollectAndMagnet(t *testing.T) {
	w := newWorld(t)
	sys := NewPickupSystem(w.actors, w.player, w.balance.Player, w.balance.Pickup)

	var got []int
	sys.OnCollect = func(v int) { got = append(got, v) }

	near := entities.NewXPGem(w.actors, "gem", utils.Vec2{X: 1}, 2)
	mid := entities.NewXPGem(w.actors, "gem", utils.Vec2{X: 4}, 1)
	far := entities.NewXPGem(w.actors, "gem", utils.Vec2{X: 10}, 1)

	sys.Update(0.1)
	if near.IsLent() || len(got) != 1 || got[0] != 2 {
		t.Fatalf("Gem within pickup radius should be collected at once, got %v", got)
	}
	if !mid.Pickup.Magnetized {
		t.Fatal("Gem within magnet radius should be magnetized")
	}
	// 起始速度 2.5 + 加速度 20 × 0.1
	if mid.Position().X < 3.54 || mid.Position().X > 3.56 {
		t.Errorf("Expected magnetized gem at x≈3.55, got %v", mid.Position().X)
	}

	for i := 0; i < 20 && mid.IsLent(); i++ {
		sys.Update(0.1)
	}
	if mid.IsLent() {
		t.Error("Magnetized gem should eventually be collected")
	}
	if far.Pickup.Magnetized || far.Position() != (utils.Vec2{X: 10}) {
		t.Error("Gem outside magnet radius should stay put")
	}
	if sys.Collected() != 3 {
		t.Errorf("Expected 3 xp collected, got %d", sys.Collected())
	}
	if w.actors.CountActive(config.KindPickup) != 1 {
		t.Errorf("Expected only the far gem active, got %d", w.actors.CountActive(config.KindPickup))
	}
}

func TestPickupSystem_DeadPlayer(t *testing.T) {
	w := newWorld(t)
	sys := NewPickupSystem(w.actors, w.player, w.balance.Player, w.balance.Pickup)
	entities.NewXPGem(w.actors, "gem", utils.Vec2{}, 1)

	w.player.TakeDamage(1000)
	sys.Update(0.1)
	if sys.Collected() != 0 {
		t.Error("Dead player should not collect gems")
	}
}
