package config

import (
	"fmt"
	"strings"

	"github.com/gonewx/survivor/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Rarity 技能稀有度
// 决定等级成长区间：Common < Rare < Epic < Legendary
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "common",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
}

// String 返回稀有度的配置名称
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rarity(%d)", int(r))
}

// ParseRarity 解析稀有度名称（大小写不敏感）
func ParseRarity(name string) (Rarity, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for r, n := range rarityNames {
		if n == lower {
			return r, nil
		}
	}
	return RarityCommon, fmt.Errorf("unknown rarity %q", name)
}

// UnmarshalYAML 支持以字符串形式书写稀有度
func (r *Rarity) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseRarity(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML 以字符串形式输出稀有度
func (r Rarity) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// AbilityDescriptor 技能描述（只读的编辑期数据）
//
// 运行期绝不修改；所有成长都体现在 modifier.State 中。
type AbilityDescriptor struct {
	Name               string  `yaml:"name"`               // 技能名称，标签规则按子串匹配
	Rarity             Rarity  `yaml:"rarity"`             // 稀有度
	Damage             float64 `yaml:"damage"`             // 基础伤害
	Cooldown           float64 `yaml:"cooldown"`           // 冷却系数
	ProjectileSpeed    float64 `yaml:"projectileSpeed"`    // 子弹速度（世界单位/秒）
	PierceCount        int     `yaml:"pierceCount"`        // 穿透次数
	ProjectileLifetime float64 `yaml:"projectileLifetime"` // 子弹存活时间（秒）
	CritChance         float64 `yaml:"critChance"`         // 暴击率 0~1
	CritMultiplier     float64 `yaml:"critMultiplier"`     // 暴击倍率 ≥1
	ProjectileKey      string  `yaml:"projectileKey"`      // 发射的子弹对象池键，为空表示不发射
}

// NewAbility 以默认数值创建技能描述
func NewAbility(name string, rarity Rarity) *AbilityDescriptor {
	return &AbilityDescriptor{
		Name:               name,
		Rarity:             rarity,
		Damage:             1,
		Cooldown:           1,
		ProjectileSpeed:    10,
		PierceCount:        1,
		ProjectileLifetime: 3,
		CritChance:         0.1,
		CritMultiplier:     2,
	}
}

// AbilitySet 技能库配置文件结构
type AbilitySet struct {
	Abilities []*AbilityDescriptor `yaml:"abilities"`
}

// Find 按名称查找技能（精确匹配）
func (s *AbilitySet) Find(name string) *AbilityDescriptor {
	if s == nil {
		return nil
	}
	for _, a := range s.Abilities {
		if a != nil && a.Name == name {
			return a
		}
	}
	return nil
}

// abilityDefaults 用于 YAML 解析的中间结构，缺省字段取默认值
type abilityDefaults AbilityDescriptor

// UnmarshalYAML 先填充默认值再覆盖
func (a *AbilityDescriptor) UnmarshalYAML(value *yaml.Node) error {
	tmp := abilityDefaults(*NewAbility("", RarityCommon))
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*a = AbilityDescriptor(tmp)
	return nil
}

// LoadAbilities 从 YAML 文件加载技能库
//
// 参数：
//   - filePath: 配置文件路径（"data/" 开头时优先读取嵌入数据）
//
// 返回：
//   - *AbilitySet: 解析后的技能库
//   - error: 读取、解析或校验失败
func LoadAbilities(filePath string) (*AbilitySet, error) {
	data, err := embedded.Load(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read abilities file %s: %w", filePath, err)
	}

	set, err := ParseAbilities(data)
	if err != nil {
		return nil, fmt.Errorf("invalid abilities in %s: %w", filePath, err)
	}
	return set, nil
}

// ParseAbilities 解析技能库 YAML
func ParseAbilities(data []byte) (*AbilitySet, error) {
	var set AbilitySet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse abilities YAML: %w", err)
	}

	if err := validateAbilities(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// validateAbilities 验证技能库的完整性和合法性
func validateAbilities(set *AbilitySet) error {
	if len(set.Abilities) == 0 {
		return fmt.Errorf("at least one ability is required")
	}

	seen := make(map[string]bool, len(set.Abilities))
	for i, a := range set.Abilities {
		if a == nil {
			return fmt.Errorf("ability #%d is empty", i)
		}
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("ability #%d: name cannot be empty", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("ability %s: duplicate name", a.Name)
		}
		seen[a.Name] = true

		if a.CritChance < 0 || a.CritChance > 1 {
			return fmt.Errorf("ability %s: critChance must be within [0,1], got %v", a.Name, a.CritChance)
		}
		if a.CritMultiplier < 1 {
			return fmt.Errorf("ability %s: critMultiplier must be >= 1, got %v", a.Name, a.CritMultiplier)
		}
		if a.PierceCount < 0 {
			return fmt.Errorf("ability %s: pierceCount cannot be negative, got %d", a.Name, a.PierceCount)
		}
	}
	return nil
}
