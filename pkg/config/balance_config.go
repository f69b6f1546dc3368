package config

import (
	"fmt"

	"github.com/gonewx/survivor/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// GrowthBand 某个稀有度的等级成长区间
type GrowthBand struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Ordered 返回 (min, max)，书写颠倒时自动交换
func (b GrowthBand) Ordered() (float64, float64) {
	if b.Min > b.Max {
		return b.Max, b.Min
	}
	return b.Min, b.Max
}

// ProgressionConfig 技能成长与幸运值配置
type ProgressionConfig struct {
	BaseLuck              float64    `yaml:"baseLuck"`              // 1 级幸运值
	LuckPerLevel          float64    `yaml:"luckPerLevel"`          // 每级增加的幸运值
	LevelDampening        float64    `yaml:"levelDampening"`        // 等级缩放阻尼，保持后期乘数次线性
	Common                GrowthBand `yaml:"common"`                // 普通成长区间
	Rare                  GrowthBand `yaml:"rare"`                  // 稀有成长区间
	Epic                  GrowthBand `yaml:"epic"`                  // 史诗成长区间
	Legendary             GrowthBand `yaml:"legendary"`             // 传说成长区间
	ProjectileSpeedImpact float64    `yaml:"projectileSpeedImpact"` // 子弹速度对乘数的影响系数
	PlayerSpeedImpact     float64    `yaml:"playerSpeedImpact"`     // 子弹速度乘数传导到移速的系数
	BaseCooldownSeconds   float64    `yaml:"baseCooldownSeconds"`   // 冷却乘数为 1 时的冷却秒数
}

// Band 返回稀有度对应的成长区间
func (p ProgressionConfig) Band(r Rarity) GrowthBand {
	switch r {
	case RarityRare:
		return p.Rare
	case RarityEpic:
		return p.Epic
	case RarityLegendary:
		return p.Legendary
	default:
		return p.Common
	}
}

// TagRuleConfig 标签规则（数据驱动的技能附加效果）
//
// 技能名包含任意 Tokens（大小写不敏感子串）即命中。
// 乘数字段为 0 表示不修改；Final 命中后停止匹配后续规则。
type TagRuleConfig struct {
	Name          string   `yaml:"name"`
	Tokens        []string `yaml:"tokens"`
	Rarity        string   `yaml:"rarity"` // 可选，限定稀有度
	Damage        float64  `yaml:"damage"`
	MoveSpeed     float64  `yaml:"moveSpeed"`
	Cooldown      float64  `yaml:"cooldown"`
	ExtraOrbiters int      `yaml:"extraOrbiters"`
	Final         bool     `yaml:"final"`
}

// WaveConfig 波次节奏
type WaveConfig struct {
	Interval      float64 `yaml:"interval"`      // 波次间隔（秒）
	BaseEnemies   int     `yaml:"baseEnemies"`   // 第 0 波敌人数量
	GrowthPerWave int     `yaml:"growthPerWave"` // 每波增加数量
	SpawnInterval float64 `yaml:"spawnInterval"` // 同一波内相邻生成间隔（秒）
}

// PlacementConfig 生成位置
type PlacementConfig struct {
	OffscreenMargin       float64 `yaml:"offscreenMargin"`
	MinDistanceFromPlayer float64 `yaml:"minDistanceFromPlayer"`
	FallbackMinRadius     float64 `yaml:"fallbackMinRadius"`
	FallbackMaxRadius     float64 `yaml:"fallbackMaxRadius"`
	MaxAttempts           int     `yaml:"maxAttempts"`
}

// DifficultyConfig 时间驱动的难度缩放
type DifficultyConfig struct {
	StepInterval  float64 `yaml:"stepInterval"`  // 每隔多少秒提升一阶
	StepIncrement float64 `yaml:"stepIncrement"` // 每阶增加的难度乘数
}

// TimeScaleConfig 全局时间缩放过渡
type TimeScaleConfig struct {
	PausedScale    float64 `yaml:"pausedScale"`
	StopDuration   float64 `yaml:"stopDuration"`
	ResumeDuration float64 `yaml:"resumeDuration"`
	Easing         string  `yaml:"easing"`
	FixedStep      float64 `yaml:"fixedStep"` // 固定逻辑步长（秒，未缩放）
	MaxFixedSteps  int     `yaml:"maxFixedSteps"`
}

// CombatConfig 战斗结算
type CombatConfig struct {
	BaseCritChance        float64 `yaml:"baseCritChance"`
	BaseCritMultiplier    float64 `yaml:"baseCritMultiplier"`
	ProjectileSpeedTuning float64 `yaml:"projectileSpeedTuning"`
	ProjectileRadius      float64 `yaml:"projectileRadius"`
	MinContactInterval    float64 `yaml:"minContactInterval"`
}

// WeaponConfig 武器（子弹与环绕剑）
type WeaponConfig struct {
	ProjectileTokens  []string `yaml:"projectileTokens"`
	SwordTokens       []string `yaml:"swordTokens"`
	MaxMultiShotLevel int      `yaml:"maxMultiShotLevel"`
	SearchRadius      float64  `yaml:"searchRadius"`
	OrbitEnabled      bool     `yaml:"orbitEnabled"`
	OrbitDamage       float64  `yaml:"orbitDamage"`
	OrbitInterval     float64  `yaml:"orbitInterval"`
	OrbitSpeed        float64  `yaml:"orbitSpeed"` // 度/秒
	OrbitRadius       float64  `yaml:"orbitRadius"`
	OrbitHitRadius    float64  `yaml:"orbitHitRadius"`
	MaxOrbiters       int      `yaml:"maxOrbiters"`
}

// EnemyTuning 敌人行为
type EnemyTuning struct {
	SpeedMultiplier    float64 `yaml:"speedMultiplier"`
	EarlyHPMultiplier  float64 `yaml:"earlyHpMultiplier"`
	FullHPDifficultyAt float64 `yaml:"fullHpDifficultyAt"`
	DesiredDistance    float64 `yaml:"desiredDistance"`
	DistanceTolerance  float64 `yaml:"distanceTolerance"`
	Acceleration       float64 `yaml:"acceleration"`
	Deceleration       float64 `yaml:"deceleration"`
	ContactInterval    float64 `yaml:"contactInterval"`
	DespawnDelay       float64 `yaml:"despawnDelay"`
}

// PlayerConfig 玩家
type PlayerConfig struct {
	MoveSpeed         float64  `yaml:"moveSpeed"`
	Acceleration      float64  `yaml:"acceleration"`
	Deceleration      float64  `yaml:"deceleration"`
	MaxHP             float64  `yaml:"maxHp"`
	Radius            float64  `yaml:"radius"`
	PickupRadius      float64  `yaml:"pickupRadius"`
	MagnetRadius      float64  `yaml:"magnetRadius"`
	StartingAbilities []string `yaml:"startingAbilities"`
}

// PickupConfig 经验宝石
type PickupConfig struct {
	GemValue           int     `yaml:"gemValue"`
	MagnetStartSpeed   float64 `yaml:"magnetStartSpeed"`
	MagnetAcceleration float64 `yaml:"magnetAcceleration"`
	MaxMagnetSpeed     float64 `yaml:"maxMagnetSpeed"`
}

// ExperienceConfig 经验与升级
type ExperienceConfig struct {
	StartingLevel    int  `yaml:"startingLevel"`
	BaseXPToLevel    int  `yaml:"baseXpToLevel"`
	XPGrowthPerLevel int  `yaml:"xpGrowthPerLevel"`
	PauseOnLevelUp   bool `yaml:"pauseOnLevelUp"`
}

// LevelUpConfig 升级选项生成
type LevelUpConfig struct {
	PickCount            int      `yaml:"pickCount"`
	DebuffOnlyRollChance float64  `yaml:"debuffOnlyRollChance"`
	DebuffTokens         []string `yaml:"debuffTokens"`
}

// ScoreConfig 得分
type ScoreConfig struct {
	UseSurvivalTime bool    `yaml:"useSurvivalTime"`
	KillBonus       int     `yaml:"killBonus"`
	GoldPerScore    float64 `yaml:"goldPerScore"`
}

// Balance 全部平衡性配置
type Balance struct {
	Progression ProgressionConfig `yaml:"progression"`
	TagRules    []TagRuleConfig   `yaml:"tagRules"`
	Wave        WaveConfig        `yaml:"wave"`
	Placement   PlacementConfig   `yaml:"placement"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	TimeScale   TimeScaleConfig   `yaml:"timeScale"`
	Combat      CombatConfig      `yaml:"combat"`
	Weapon      WeaponConfig      `yaml:"weapon"`
	Enemy       EnemyTuning       `yaml:"enemy"`
	Player      PlayerConfig      `yaml:"player"`
	Pickup      PickupConfig      `yaml:"pickup"`
	Experience  ExperienceConfig  `yaml:"experience"`
	LevelUp     LevelUpConfig     `yaml:"levelUp"`
	Score       ScoreConfig       `yaml:"score"`
}

// DefaultBalance 返回手调的平衡常量
// 无配置文件时核心也能以此运行
func DefaultBalance() Balance {
	return Balance{
		Progression: ProgressionConfig{
			BaseLuck:              0.35,
			LuckPerLevel:          0.005,
			LevelDampening:        0.1,
			Common:                GrowthBand{Min: 0.05, Max: 0.08},
			Rare:                  GrowthBand{Min: 0.08, Max: 0.11},
			Epic:                  GrowthBand{Min: 0.11, Max: 0.13},
			Legendary:             GrowthBand{Min: 0.13, Max: 0.15},
			ProjectileSpeedImpact: 0.15,
			PlayerSpeedImpact:     0.08,
			BaseCooldownSeconds:   1,
		},
		TagRules: []TagRuleConfig{
			{Name: "sword-mastery", Tokens: []string{"Swordsman", "Berserker", "Paladin"}, Rarity: "legendary", ExtraOrbiters: 1},
			{Name: "demon", Tokens: []string{"Demon skill"}, Damage: 1.1, MoveSpeed: 0.98, Final: true},
			{Name: "debuff", Tokens: []string{"Debuff skill"}, Damage: 0.95, MoveSpeed: 0.98, Cooldown: 1.05, Final: true},
		},
		Wave: WaveConfig{
			Interval:      10,
			BaseEnemies:   5,
			GrowthPerWave: 2,
			SpawnInterval: 0.3,
		},
		Placement: PlacementConfig{
			OffscreenMargin:       2,
			MinDistanceFromPlayer: 6,
			FallbackMinRadius:     10,
			FallbackMaxRadius:     14,
			MaxAttempts:           12,
		},
		Difficulty: DifficultyConfig{
			StepInterval:  30,
			StepIncrement: 0.1,
		},
		TimeScale: TimeScaleConfig{
			PausedScale:    0,
			StopDuration:   0.12,
			ResumeDuration: 0.1,
			Easing:         "linear",
			FixedStep:      0.02,
			MaxFixedSteps:  8,
		},
		Combat: CombatConfig{
			BaseCritChance:        0.1,
			BaseCritMultiplier:    2,
			ProjectileSpeedTuning: 1,
			ProjectileRadius:      0.2,
			MinContactInterval:    0.05,
		},
		Weapon: WeaponConfig{
			ProjectileTokens:  []string{"Crossbowman", "Archer", "Aeromancer", "Cryomancer", "Druid", "Pyromancer", "Warlock"},
			SwordTokens:       []string{"Swordsman", "Berserker", "Paladin"},
			MaxMultiShotLevel: 3,
			SearchRadius:      8,
			OrbitEnabled:      true,
			OrbitDamage:       2,
			OrbitInterval:     0.2,
			OrbitSpeed:        180,
			OrbitRadius:       1.4,
			OrbitHitRadius:    0.5,
			MaxOrbiters:       8,
		},
		Enemy: EnemyTuning{
			SpeedMultiplier:    0.7,
			EarlyHPMultiplier:  0.45,
			FullHPDifficultyAt: 3,
			DesiredDistance:    1.6,
			DistanceTolerance:  0.2,
			Acceleration:       18,
			Deceleration:       26,
			ContactInterval:    0.7,
			DespawnDelay:       0.15,
		},
		Player: PlayerConfig{
			MoveSpeed:         3.5,
			Acceleration:      24,
			Deceleration:      32,
			MaxHP:             20,
			Radius:            0.4,
			PickupRadius:      1.5,
			MagnetRadius:      5.5,
			StartingAbilities: []string{"Archer skill"},
		},
		Pickup: PickupConfig{
			GemValue:           1,
			MagnetStartSpeed:   2.5,
			MagnetAcceleration: 20,
			MaxMagnetSpeed:     12,
		},
		Experience: ExperienceConfig{
			StartingLevel:    1,
			BaseXPToLevel:    10,
			XPGrowthPerLevel: 5,
			PauseOnLevelUp:   true,
		},
		LevelUp: LevelUpConfig{
			PickCount:            3,
			DebuffOnlyRollChance: 0.05,
			DebuffTokens:         []string{"Debuff skill"},
		},
		Score: ScoreConfig{
			UseSurvivalTime: true,
			KillBonus:       0,
			GoldPerScore:    0.1,
		},
	}
}

// LoadBalance 从 YAML 文件加载平衡配置
// 文件中未出现的字段保留默认值
func LoadBalance(filePath string) (*Balance, error) {
	data, err := embedded.Load(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance file %s: %w", filePath, err)
	}

	balance, err := ParseBalance(data)
	if err != nil {
		return nil, fmt.Errorf("invalid balance in %s: %w", filePath, err)
	}
	return balance, nil
}

// ParseBalance 在默认值之上叠加解析 YAML
func ParseBalance(data []byte) (*Balance, error) {
	balance := DefaultBalance()
	if err := yaml.Unmarshal(data, &balance); err != nil {
		return nil, fmt.Errorf("failed to parse balance YAML: %w", err)
	}

	if err := validateBalance(&balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// validateBalance 验证平衡配置
func validateBalance(b *Balance) error {
	if b.Progression.BaseLuck < 0 || b.Progression.BaseLuck > 1 {
		return fmt.Errorf("progression.baseLuck must be within [0,1], got %v", b.Progression.BaseLuck)
	}
	if b.Progression.LuckPerLevel < 0 {
		return fmt.Errorf("progression.luckPerLevel cannot be negative, got %v", b.Progression.LuckPerLevel)
	}
	if b.Wave.BaseEnemies < 0 || b.Wave.GrowthPerWave < 0 {
		return fmt.Errorf("wave counts cannot be negative (base=%d, growth=%d)", b.Wave.BaseEnemies, b.Wave.GrowthPerWave)
	}
	if b.Wave.Interval < 0 || b.Wave.SpawnInterval < 0 {
		return fmt.Errorf("wave intervals cannot be negative (interval=%v, spawnInterval=%v)", b.Wave.Interval, b.Wave.SpawnInterval)
	}
	if b.Placement.FallbackMinRadius > b.Placement.FallbackMaxRadius {
		return fmt.Errorf("placement.fallbackMinRadius (%v) exceeds fallbackMaxRadius (%v)",
			b.Placement.FallbackMinRadius, b.Placement.FallbackMaxRadius)
	}
	if b.Difficulty.StepInterval <= 0 {
		return fmt.Errorf("difficulty.stepInterval must be > 0, got %v", b.Difficulty.StepInterval)
	}
	if b.Difficulty.StepIncrement < 0 {
		return fmt.Errorf("difficulty.stepIncrement cannot be negative, got %v", b.Difficulty.StepIncrement)
	}
	if b.TimeScale.FixedStep <= 0 {
		return fmt.Errorf("timeScale.fixedStep must be > 0, got %v", b.TimeScale.FixedStep)
	}
	for i, rule := range b.TagRules {
		if len(rule.Tokens) == 0 {
			return fmt.Errorf("tagRules[%d] (%s): at least one token is required", i, rule.Name)
		}
		if rule.Rarity != "" {
			if _, err := ParseRarity(rule.Rarity); err != nil {
				return fmt.Errorf("tagRules[%d] (%s): %w", i, rule.Name, err)
			}
		}
	}
	return nil
}
