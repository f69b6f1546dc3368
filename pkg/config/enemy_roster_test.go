package config

import "testing"

func TestParseEnemyRoster(t *testing.T) {
	content := `
enemies:
  - id: bat
    baseHp: 6
    baseSpeed: 3
    weight: 0
  - id: ogre
    poolKey: ogre_pool
    baseHp: 40
    minDifficultyStep: 3
    radius: 0.7
`
	roster, err := ParseEnemyRoster([]byte(content))
	if err != nil {
		t.Fatalf("ParseEnemyRoster failed: %v", err)
	}
	if len(roster.Enemies) != 2 {
		t.Fatalf("Expected 2 enemies, got %d", len(roster.Enemies))
	}

	bat := roster.Enemies[0]
	if bat.PoolKey != "bat" {
		t.Errorf("poolKey should default to id, got %q", bat.PoolKey)
	}
	if bat.Radius != 0.45 {
		t.Errorf("radius should default to 0.45, got %v", bat.Radius)
	}

	ogre := roster.Enemies[1]
	if ogre.PoolKey != "ogre_pool" || ogre.MinDifficultyStep != 3 || ogre.Radius != 0.7 {
		t.Errorf("ogre parsed incorrectly: %+v", ogre)
	}
}

func TestParseEnemyRosterValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"空名册", "enemies: []"},
		{"ID为空", "enemies: [{id: ''}]"},
		{"ID重复", "enemies: [{id: a}, {id: a}]"},
		{"血量为负", "enemies: [{id: a, baseHp: -1}]"},
		{"难度阶为负", "enemies: [{id: a, minDifficultyStep: -2}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEnemyRoster([]byte(tt.content)); err == nil {
				t.Errorf("Expected validation error for %q", tt.content)
			}
		})
	}
}

func TestParsePools(t *testing.T) {
	content := `
pools:
  - {key: arrow, kind: projectile, size: 4, expandable: true}
  - {key: bat, kind: Enemy, size: 2}
`
	cfg, err := ParsePools([]byte(content))
	if err != nil {
		t.Fatalf("ParsePools failed: %v", err)
	}
	if len(cfg.Pools) != 2 {
		t.Fatalf("Expected 2 pools, got %d", len(cfg.Pools))
	}
	if cfg.Pools[0].Kind != KindProjectile || !cfg.Pools[0].Expandable {
		t.Errorf("arrow pool parsed incorrectly: %+v", cfg.Pools[0])
	}
	if cfg.Pools[1].Kind != KindEnemy || cfg.Pools[1].Expandable {
		t.Errorf("bat pool parsed incorrectly: %+v", cfg.Pools[1])
	}

	if _, err := ParsePools([]byte("pools: [{key: x, kind: boss}]")); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if _, err := ParsePools([]byte("pools: [{key: '', kind: enemy}]")); err == nil {
		t.Error("Expected error for empty key")
	}
	if _, err := ParsePools([]byte("pools: [{key: x, kind: enemy, size: -1}]")); err == nil {
		t.Error("Expected error for negative size")
	}
}
