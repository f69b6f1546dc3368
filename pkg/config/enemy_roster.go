package config

import (
	"fmt"
	"strings"

	"github.com/gonewx/survivor/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// EnemyDefinition 单个敌人类型的配置
type EnemyDefinition struct {
	ID                string  `yaml:"id"`                // 敌人类型ID
	PoolKey           string  `yaml:"poolKey"`           // 对象池键
	BaseHP            float64 `yaml:"baseHp"`            // 基础血量
	BaseSpeed         float64 `yaml:"baseSpeed"`         // 基础移动速度
	BaseDamage        float64 `yaml:"baseDamage"`        // 基础接触伤害
	Weight            int     `yaml:"weight"`            // 权重，≤0 按 1 处理
	MinDifficultyStep int     `yaml:"minDifficultyStep"` // 最早出现的难度阶
	XPGemKey          string  `yaml:"xpGemKey"`          // 死亡掉落的经验宝石池键，为空不掉落
	Radius            float64 `yaml:"radius"`            // 碰撞半径
}

// EnemyRoster 敌人名册配置文件结构
type EnemyRoster struct {
	Enemies []EnemyDefinition `yaml:"enemies"`
}

// LoadEnemyRoster 从 YAML 文件加载敌人名册
func LoadEnemyRoster(filePath string) (*EnemyRoster, error) {
	data, err := embedded.Load(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy roster file %s: %w", filePath, err)
	}

	roster, err := ParseEnemyRoster(data)
	if err != nil {
		return nil, fmt.Errorf("invalid enemy roster in %s: %w", filePath, err)
	}
	return roster, nil
}

// ParseEnemyRoster 解析敌人名册 YAML
func ParseEnemyRoster(data []byte) (*EnemyRoster, error) {
	var roster EnemyRoster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse enemy roster YAML: %w", err)
	}

	for i := range roster.Enemies {
		e := &roster.Enemies[i]
		if e.PoolKey == "" {
			e.PoolKey = e.ID
		}
		if e.Radius <= 0 {
			e.Radius = 0.45
		}
	}

	if err := validateEnemyRoster(&roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

// validateEnemyRoster 验证敌人名册
func validateEnemyRoster(roster *EnemyRoster) error {
	if len(roster.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}

	seen := make(map[string]bool, len(roster.Enemies))
	for _, e := range roster.Enemies {
		if strings.TrimSpace(e.ID) == "" {
			return fmt.Errorf("enemy id cannot be empty")
		}
		if seen[e.ID] {
			return fmt.Errorf("enemy %s: duplicate id", e.ID)
		}
		seen[e.ID] = true

		if e.BaseHP < 0 {
			return fmt.Errorf("enemy %s: baseHp cannot be negative, got %v", e.ID, e.BaseHP)
		}
		if e.BaseSpeed < 0 {
			return fmt.Errorf("enemy %s: baseSpeed cannot be negative, got %v", e.ID, e.BaseSpeed)
		}
		if e.MinDifficultyStep < 0 {
			return fmt.Errorf("enemy %s: minDifficultyStep cannot be negative, got %d", e.ID, e.MinDifficultyStep)
		}
	}
	return nil
}
