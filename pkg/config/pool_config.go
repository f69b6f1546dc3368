package config

import (
	"fmt"
	"strings"

	"github.com/gonewx/survivor/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ActorKind 池化对象的种类（标签联合的标签）
type ActorKind int

const (
	KindProjectile ActorKind = iota
	KindEnemy
	KindPickup
)

var actorKindNames = map[ActorKind]string{
	KindProjectile: "projectile",
	KindEnemy:      "enemy",
	KindPickup:     "pickup",
}

// String 返回种类的配置名称
func (k ActorKind) String() string {
	if name, ok := actorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// UnmarshalYAML 支持以字符串形式书写种类
func (k *ActorKind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for kind, n := range actorKindNames {
		if n == lower {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown actor kind %q", name)
}

// PoolDefinition 单个对象池的定义
type PoolDefinition struct {
	Key        string    `yaml:"key"`        // 对象池键（预制体键）
	Kind       ActorKind `yaml:"kind"`       // 对象种类
	Size       int       `yaml:"size"`       // 预热数量
	Expandable bool      `yaml:"expandable"` // 耗尽时是否允许扩容
}

// PoolsConfig 对象池配置文件结构
type PoolsConfig struct {
	Pools []PoolDefinition `yaml:"pools"`
}

// LoadPools 从 YAML 文件加载对象池定义
func LoadPools(filePath string) (*PoolsConfig, error) {
	data, err := embedded.Load(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pools file %s: %w", filePath, err)
	}

	cfg, err := ParsePools(data)
	if err != nil {
		return nil, fmt.Errorf("invalid pools in %s: %w", filePath, err)
	}
	return cfg, nil
}

// ParsePools 解析对象池 YAML
func ParsePools(data []byte) (*PoolsConfig, error) {
	var cfg PoolsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pools YAML: %w", err)
	}

	if err := validatePools(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validatePools 验证对象池定义
func validatePools(cfg *PoolsConfig) error {
	if len(cfg.Pools) == 0 {
		return fmt.Errorf("at least one pool is required")
	}
	for i, p := range cfg.Pools {
		if strings.TrimSpace(p.Key) == "" {
			return fmt.Errorf("pool #%d: key cannot be empty", i)
		}
		if p.Size < 0 {
			return fmt.Errorf("pool %s: size cannot be negative, got %d", p.Key, p.Size)
		}
	}
	return nil
}
