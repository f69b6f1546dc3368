package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/gonewx/survivor/pkg/config"
)

// fixedRoll 固定掷骰结果，洗牌仍使用真实随机源
type fixedRoll struct {
	*rand.Rand
	roll float64
}

func (f fixedRoll) Float64() float64 { return f.roll }

// keepOrder 洗牌时不交换任何元素
type keepOrder struct {
	roll float64
}

func (k keepOrder) Float64() float64 { return k.roll }
func (k keepOrder) Intn(n int) int   { return n - 1 }

type ownedSet map[string]bool

func (o ownedSet) Owns(name string) bool { return o[name] }

func testLibrary() []*config.AbilityDescriptor {
	names := []string{"Archer skill", "Crossbowman skill", "Swordsman skill",
		"Debuff skill I", "Debuff skill II", "Debuff skill III"}
	lib := make([]*config.AbilityDescriptor, len(names))
	for i, n := range names {
		lib[i] = config.NewAbility(n, config.RarityCommon)
	}
	return lib
}

func newTestGenerator(roll float64, pick int) *LevelUpGenerator {
	cfg := config.LevelUpConfig{PickCount: pick, DebuffOnlyRollChance: 0.05, DebuffTokens: []string{"Debuff skill"}}
	return NewLevelUpGenerator(cfg, testLibrary(), fixedRoll{Rand: rand.New(rand.NewSource(7)), roll: roll})
}

func TestLevelUpGenerator(t *testing.T) {
	t.Run("不包含已拥有且不重复", func(t *testing.T) {
		g := newTestGenerator(0.9, 3)
		owned := ownedSet{"Archer skill": true}
		for i := 0; i < 20; i++ {
			choices := g.Generate(owned)
			if len(choices) != 3 {
				t.Fatalf("Expected 3 choices, got %d", len(choices))
			}
			seen := map[string]bool{}
			for _, c := range choices {
				if owned[c.Name] {
					t.Errorf("Owned ability %q offered", c.Name)
				}
				if seen[c.Name] {
					t.Errorf("Duplicate choice %q", c.Name)
				}
				seen[c.Name] = true
			}
		}
	})

	t.Run("命中减益掷骰只给减益", func(t *testing.T) {
		g := newTestGenerator(0.01, 3)
		for _, c := range g.Generate(ownedSet{}) {
			if !strings.Contains(c.Name, "Debuff skill") {
				t.Errorf("Expected debuff-only choices, got %q", c.Name)
			}
		}
	})

	t.Run("减益不足时回退到全部候选", func(t *testing.T) {
		g := newTestGenerator(0.01, 3)
		choices := g.Generate(ownedSet{"Debuff skill I": true})
		if len(choices) != 3 {
			t.Fatalf("Expected 3 choices, got %d", len(choices))
		}
	})

	t.Run("掷骰恰好等于概率不触发", func(t *testing.T) {
		cfg := config.LevelUpConfig{PickCount: 3, DebuffOnlyRollChance: 0.05, DebuffTokens: []string{"Debuff skill"}}
		g := NewLevelUpGenerator(cfg, testLibrary(), keepOrder{roll: 0.05})
		choices := g.Generate(ownedSet{})
		if len(choices) != 3 || choices[0].Name != "Archer skill" {
			t.Errorf("Expected unshuffled full pool starting with Archer skill, got %v", choices)
		}
	})

	t.Run("候选不足时返回全部剩余", func(t *testing.T) {
		g := newTestGenerator(0.9, 3)
		owned := ownedSet{"Archer skill": true, "Crossbowman skill": true, "Swordsman skill": true, "Debuff skill I": true}
		if choices := g.Generate(owned); len(choices) != 2 {
			t.Errorf("Expected 2 remaining choices, got %d", len(choices))
		}
	})

	t.Run("技能库耗尽", func(t *testing.T) {
		g := newTestGenerator(0.9, 3)
		owned := ownedSet{}
		for _, ab := range testLibrary() {
			owned[ab.Name] = true
		}
		if choices := g.Generate(owned); len(choices) != 0 {
			t.Errorf("Expected no choices, got %d", len(choices))
		}
	})
}
