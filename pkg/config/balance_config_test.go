package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBalance(t *testing.T) {
	b := DefaultBalance()

	if b.Progression.BaseLuck != 0.35 {
		t.Errorf("BaseLuck: got %v, want 0.35", b.Progression.BaseLuck)
	}
	if b.Wave.BaseEnemies != 5 || b.Wave.GrowthPerWave != 2 {
		t.Errorf("Wave defaults: got base=%d growth=%d, want 5/2", b.Wave.BaseEnemies, b.Wave.GrowthPerWave)
	}
	if b.Difficulty.StepInterval != 30 || b.Difficulty.StepIncrement != 0.1 {
		t.Errorf("Difficulty defaults: got %+v", b.Difficulty)
	}
	if len(b.TagRules) != 3 {
		t.Errorf("Expected 3 default tag rules, got %d", len(b.TagRules))
	}

	// 成长区间必须按稀有度递增
	prev := 0.0
	for _, r := range []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary} {
		lo, hi := b.Progression.Band(r).Ordered()
		if lo < prev || hi < lo {
			t.Errorf("Growth band for %v not ordered: [%v, %v] after %v", r, lo, hi, prev)
		}
		prev = lo
	}
}

func TestGrowthBandOrdered(t *testing.T) {
	lo, hi := GrowthBand{Min: 0.11, Max: 0.08}.Ordered()
	if lo != 0.08 || hi != 0.11 {
		t.Errorf("Expected swapped band (0.08, 0.11), got (%v, %v)", lo, hi)
	}
}

func TestParseBalanceOverlay(t *testing.T) {
	content := `
wave:
  baseEnemies: 7
tagRules:
  - name: haste
    tokens: [Haste]
    moveSpeed: 1.05
`
	b, err := ParseBalance([]byte(content))
	if err != nil {
		t.Fatalf("ParseBalance failed: %v", err)
	}

	if b.Wave.BaseEnemies != 7 {
		t.Errorf("Expected overridden baseEnemies 7, got %d", b.Wave.BaseEnemies)
	}
	// 未写出的字段保留默认值
	if b.Wave.GrowthPerWave != 2 {
		t.Errorf("Expected default growthPerWave 2, got %d", b.Wave.GrowthPerWave)
	}
	if b.Progression.Legendary.Max != 0.15 {
		t.Errorf("Expected default legendary max 0.15, got %v", b.Progression.Legendary.Max)
	}
	// 列表整体替换
	if len(b.TagRules) != 1 || b.TagRules[0].Name != "haste" {
		t.Errorf("Expected tag rules replaced by file, got %+v", b.TagRules)
	}
}

func TestParseBalanceValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"幸运值越界", "progression: {baseLuck: 1.5}"},
		{"波次数量为负", "wave: {baseEnemies: -1}"},
		{"回退半径颠倒", "placement: {fallbackMinRadius: 20, fallbackMaxRadius: 10}"},
		{"难度间隔为零", "difficulty: {stepInterval: 0}"},
		{"固定步长为零", "timeScale: {fixedStep: 0}"},
		{"标签规则无词", "tagRules: [{name: empty}]"},
		{"标签规则稀有度未知", "tagRules: [{name: x, tokens: [a], rarity: mythic}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBalance([]byte(tt.content)); err == nil {
				t.Errorf("Expected validation error for %q", tt.content)
			}
		})
	}
}

func TestLoadBundledData(t *testing.T) {
	// 仓库自带的 data/ 目录必须始终可解析
	root := filepath.Join("..", "..", "data")

	if _, err := os.Stat(root); err != nil {
		t.Skipf("data directory not available: %v", err)
	}

	if _, err := LoadBalance(filepath.Join(root, "balance.yaml")); err != nil {
		t.Errorf("LoadBalance failed: %v", err)
	}
	abilities, err := LoadAbilities(filepath.Join(root, "abilities.yaml"))
	if err != nil {
		t.Fatalf("LoadAbilities failed: %v", err)
	}
	roster, err := LoadEnemyRoster(filepath.Join(root, "enemies.yaml"))
	if err != nil {
		t.Fatalf("LoadEnemyRoster failed: %v", err)
	}
	pools, err := LoadPools(filepath.Join(root, "pools.yaml"))
	if err != nil {
		t.Fatalf("LoadPools failed: %v", err)
	}

	// 所有引用的池键必须有对应的池定义
	keys := make(map[string]bool)
	for _, p := range pools.Pools {
		keys[p.Key] = true
	}
	for _, a := range abilities.Abilities {
		if a.ProjectileKey != "" && !keys[a.ProjectileKey] {
			t.Errorf("ability %s references unknown pool %q", a.Name, a.ProjectileKey)
		}
	}
	for _, e := range roster.Enemies {
		if !keys[e.PoolKey] {
			t.Errorf("enemy %s references unknown pool %q", e.ID, e.PoolKey)
		}
		if e.XPGemKey != "" && !keys[e.XPGemKey] {
			t.Errorf("enemy %s references unknown gem pool %q", e.ID, e.XPGemKey)
		}
	}
}
