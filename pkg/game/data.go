package game

import (
	"fmt"
	"path/filepath"

	"github.com/gonewx/survivor/pkg/config"
)

// Data 一局所需的全部创作数据
type Data struct {
	Balance   config.Balance
	Abilities *config.AbilitySet
	Roster    *config.EnemyRoster
	Pools     *config.PoolsConfig
}

// LoadData 从目录加载 balance/abilities/enemies/pools 四个文件
// 路径经 embedded.Load 解析，已初始化嵌入数据时优先读取嵌入文件
func LoadData(dir string) (*Data, error) {
	balance, err := config.LoadBalance(filepath.Join(dir, "balance.yaml"))
	if err != nil {
		return nil, err
	}
	abilities, err := config.LoadAbilities(filepath.Join(dir, "abilities.yaml"))
	if err != nil {
		return nil, err
	}
	roster, err := config.LoadEnemyRoster(filepath.Join(dir, "enemies.yaml"))
	if err != nil {
		return nil, err
	}
	pools, err := config.LoadPools(filepath.Join(dir, "pools.yaml"))
	if err != nil {
		return nil, err
	}

	d := &Data{Balance: *balance, Abilities: abilities, Roster: roster, Pools: pools}
	if err := d.validateReferences(); err != nil {
		return nil, fmt.Errorf("invalid data in %s: %w", dir, err)
	}
	return d, nil
}

// validateReferences 检查技能与敌人引用的池键都已定义
func (d *Data) validateReferences() error {
	keys := make(map[string]config.ActorKind, len(d.Pools.Pools))
	for _, p := range d.Pools.Pools {
		keys[p.Key] = p.Kind
	}
	for _, a := range d.Abilities.Abilities {
		if a.ProjectileKey == "" {
			continue
		}
		if kind, ok := keys[a.ProjectileKey]; !ok || kind != config.KindProjectile {
			return fmt.Errorf("ability %q references unknown projectile pool %q", a.Name, a.ProjectileKey)
		}
	}
	for _, e := range d.Roster.Enemies {
		if kind, ok := keys[e.PoolKey]; !ok || kind != config.KindEnemy {
			return fmt.Errorf("enemy %q references unknown enemy pool %q", e.ID, e.PoolKey)
		}
		if e.XPGemKey == "" {
			continue
		}
		if kind, ok := keys[e.XPGemKey]; !ok || kind != config.KindPickup {
			return fmt.Errorf("enemy %q references unknown pickup pool %q", e.ID, e.XPGemKey)
		}
	}
	return nil
}
