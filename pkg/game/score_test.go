package game

import (
	"testing"

	"github.com/gonewx/survivor/pkg/config"
)

func TestScore(t *testing.T) {
	cfg := config.ScoreConfig{UseSurvivalTime: true, KillBonus: 2, GoldPerScore: 0.1}

	t.Run("存活时间向下取整加奖励", func(t *testing.T) {
		s := NewScore(cfg)
		s.Tick(12.9)
		s.Add(5)
		s.AddKill()
		if s.Current() != 19 {
			t.Errorf("Expected 12 + 5 + 2 = 19, got %d", s.Current())
		}
		if s.Gold() != 1 {
			t.Errorf("Expected floor(19 * 0.1) = 1 gold, got %d", s.Gold())
		}
	})

	t.Run("非正奖励忽略", func(t *testing.T) {
		s := NewScore(cfg)
		s.Add(0)
		s.Add(-10)
		if s.Current() != 0 {
			t.Errorf("Expected 0, got %d", s.Current())
		}
	})

	t.Run("结束后冻结", func(t *testing.T) {
		s := NewScore(cfg)
		s.Tick(3)
		if final := s.Finish(); final != 3 {
			t.Errorf("Expected final score 3, got %d", final)
		}
		s.Tick(10)
		s.Add(10)
		if s.Current() != 3 {
			t.Errorf("Expected frozen score 3, got %d", s.Current())
		}
	})

	t.Run("不计存活时间", func(t *testing.T) {
		s := NewScore(config.ScoreConfig{})
		s.Tick(100)
		if s.Current() != 0 {
			t.Errorf("Expected survival time ignored, got %d", s.Current())
		}
	})

	t.Run("重置", func(t *testing.T) {
		s := NewScore(cfg)
		s.Tick(5)
		s.Finish()
		s.Reset()
		if s.Finished() || s.Current() != 0 {
			t.Errorf("Expected fresh score after reset, got finished=%v current=%d", s.Finished(), s.Current())
		}
	})
}
