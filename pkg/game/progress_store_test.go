package game

import "testing"

func TestProgressStoreGold(t *testing.T) {
	ps := NewProgressStore(nil)

	ps.AddGold(10)
	ps.AddGold(-5)
	if ps.Gold() != 10 {
		t.Fatalf("Expected 10 gold, got %d", ps.Gold())
	}

	tests := []struct {
		name   string
		amount int
		ok     bool
		after  int
	}{
		{"非正金额视为成功", 0, true, 10},
		{"余额不足", 11, false, 10},
		{"正常花费", 4, true, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ps.SpendGold(tt.amount); got != tt.ok {
				t.Errorf("SpendGold(%d) = %v, want %v", tt.amount, got, tt.ok)
			}
			if ps.Gold() != tt.after {
				t.Errorf("Expected %d gold, got %d", tt.after, ps.Gold())
			}
		})
	}
}

func TestProgressStoreUpgrades(t *testing.T) {
	ps := NewProgressStore(nil)
	ps.AddGold(10)

	if ps.PurchaseUpgrade("", 1) {
		t.Error("Empty upgrade id should be rejected")
	}
	if !ps.PurchaseUpgrade("magnet", 6) {
		t.Fatal("Expected purchase to succeed")
	}
	if ps.PurchaseUpgrade("magnet", 1) {
		t.Error("Owned upgrade should not be purchased again")
	}
	if ps.PurchaseUpgrade("armor", 5) {
		t.Error("Purchase with insufficient gold should fail")
	}
	if !ps.HasUpgrade("magnet") || ps.HasUpgrade("armor") || ps.Gold() != 4 {
		t.Errorf("Unexpected progress: %+v", ps.Progress())
	}
}

func TestProgressStoreSubmitScore(t *testing.T) {
	ps := NewProgressStore(nil)

	if !ps.SubmitScore(50, 5) {
		t.Error("First score should be a new best")
	}
	if ps.SubmitScore(30, 3) {
		t.Error("Lower score should not be a new best")
	}
	p := ps.Progress()
	if p.BestScore != 50 || p.RunsPlayed != 2 || p.Gold != 8 {
		t.Errorf("Unexpected progress after two runs: %+v", p)
	}
}

func TestProgressStorePersistence(t *testing.T) {
	m := openTestStore(t, "test_survivor_progress")

	ps := NewProgressStore(m)
	ps.AddGold(25)
	ps.PurchaseUpgrade("magnet", 5)
	ps.SubmitScore(42, 0)

	reloaded := NewProgressStore(m)
	p := reloaded.Progress()
	if p.Gold != 20 || p.BestScore != 42 || p.RunsPlayed != 1 {
		t.Errorf("Progress not persisted: %+v", p)
	}
	if !reloaded.HasUpgrade("magnet") {
		t.Error("Purchased upgrade not persisted")
	}

	reloaded.Wipe()
	wiped := NewProgressStore(m)
	if p := wiped.Progress(); p.Gold != 0 || p.BestScore != 0 || len(p.PurchasedUpgrades) != 0 {
		t.Errorf("Expected empty progress after wipe, got %+v", p)
	}
}
