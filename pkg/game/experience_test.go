package game

import (
	"testing"

	"github.com/gonewx/survivor/pkg/config"
)

func TestExperience(t *testing.T) {
	cfg := config.ExperienceConfig{StartingLevel: 1, BaseXPToLevel: 10, XPGrowthPerLevel: 5}

	t.Run("连续升级", func(t *testing.T) {
		e := NewExperience(cfg)
		var levels []int
		e.OnLevelUp = func(l int) { levels = append(levels, l) }

		if gained := e.Add(27); gained != 2 {
			t.Fatalf("Expected 2 levels gained, got %d", gained)
		}
		if e.Level() != 3 || e.XP() != 2 || e.ToNext() != 20 {
			t.Errorf("Expected level 3 with 2/20 xp, got level %d %d/%d", e.Level(), e.XP(), e.ToNext())
		}
		if len(levels) != 2 || levels[0] != 2 || levels[1] != 3 {
			t.Errorf("Expected callbacks for levels [2 3], got %v", levels)
		}
	})

	t.Run("非正经验忽略", func(t *testing.T) {
		e := NewExperience(cfg)
		e.Add(0)
		e.Add(-5)
		if e.XP() != 0 || e.Level() != 1 {
			t.Errorf("Expected no change, got level %d xp %d", e.Level(), e.XP())
		}
	})

	t.Run("所需经验至少为1", func(t *testing.T) {
		e := NewExperience(config.ExperienceConfig{StartingLevel: 0, BaseXPToLevel: 0, XPGrowthPerLevel: -3})
		if e.Level() != 1 || e.ToNext() != 1 {
			t.Errorf("Expected level 1 needing 1 xp, got level %d toNext %d", e.Level(), e.ToNext())
		}
		if gained := e.Add(3); gained != 3 {
			t.Errorf("Expected 3 levels from 3 xp, got %d", gained)
		}
	})

	t.Run("重置", func(t *testing.T) {
		e := NewExperience(config.ExperienceConfig{StartingLevel: 4, BaseXPToLevel: 10, XPGrowthPerLevel: 5})
		e.Add(100)
		e.Reset()
		if e.Level() != 4 || e.XP() != 0 || e.ToNext() != 25 {
			t.Errorf("Expected level 4 with 0/25 xp after reset, got %d %d/%d", e.Level(), e.XP(), e.ToNext())
		}
	})
}
