package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MetaProgress 跨局的元进度
type MetaProgress struct {
	Gold              int      `yaml:"gold"`              // 金币
	PurchasedUpgrades []string `yaml:"purchasedUpgrades"` // 已购买的永久升级ID
	BestScore         int      `yaml:"bestScore"`         // 历史最高分
	RunsPlayed        int      `yaml:"runsPlayed"`        // 已结束的局数
}

// ProgressStore 元进度存储
// 每次修改立即持久化；gdataManager 为 nil 时只在内存中保存
type ProgressStore struct {
	gdataManager *gdata.Manager
	progress     MetaProgress
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "meta"
)

// NewProgressStore 创建元进度存储并加载已保存的数据
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *ProgressStore: 存储实例（加载失败时使用空进度）
func NewProgressStore(gdataManager *gdata.Manager) *ProgressStore {
	ps := &ProgressStore{gdataManager: gdataManager}
	if err := ps.Load(); err != nil {
		log.Printf("[ProgressStore] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return ps
}

// Load 从 gdata 加载元进度，不存在时为空进度
func (ps *ProgressStore) Load() error {
	ps.progress = MetaProgress{}
	if ps.gdataManager == nil {
		return nil
	}
	if !ps.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	data, err := ps.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var loaded MetaProgress
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	if loaded.Gold < 0 {
		loaded.Gold = 0
	}
	ps.progress = loaded
	return nil
}

// Save 持久化元进度；降级模式下为空操作
func (ps *ProgressStore) Save() error {
	if ps.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&ps.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := ps.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (ps *ProgressStore) persist() {
	if err := ps.Save(); err != nil {
		log.Printf("[ProgressStore] Warning: %v", err)
	}
}

// Progress 返回元进度拷贝
func (ps *ProgressStore) Progress() MetaProgress {
	p := ps.progress
	p.PurchasedUpgrades = append([]string(nil), ps.progress.PurchasedUpgrades...)
	return p
}

// Gold 当前金币
func (ps *ProgressStore) Gold() int { return ps.progress.Gold }

// BestScore 历史最高分
func (ps *ProgressStore) BestScore() int { return ps.progress.BestScore }

// AddGold 增加金币；amount ≤ 0 为空操作
func (ps *ProgressStore) AddGold(amount int) {
	if amount <= 0 {
		return
	}
	ps.progress.Gold += amount
	ps.persist()
}

// SpendGold 花费金币
// amount ≤ 0 视为成功且不修改；余额不足返回 false
func (ps *ProgressStore) SpendGold(amount int) bool {
	if amount <= 0 {
		return true
	}
	if ps.progress.Gold < amount {
		return false
	}
	ps.progress.Gold -= amount
	ps.persist()
	return true
}

// HasUpgrade 是否已购买
func (ps *ProgressStore) HasUpgrade(id string) bool {
	for _, u := range ps.progress.PurchasedUpgrades {
		if u == id {
			return true
		}
	}
	return false
}

// PurchaseUpgrade 购买永久升级
// ID 为空、已购买或金币不足时返回 false
func (ps *ProgressStore) PurchaseUpgrade(id string, cost int) bool {
	if id == "" || ps.HasUpgrade(id) {
		return false
	}
	if !ps.SpendGold(cost) {
		return false
	}
	ps.progress.PurchasedUpgrades = append(ps.progress.PurchasedUpgrades, id)
	ps.persist()
	return true
}

// SubmitScore 记录一局结束：局数 +1，刷新最高分，发放金币
//
// 返回：
//   - bool: 是否刷新了最高分
func (ps *ProgressStore) SubmitScore(score, gold int) bool {
	ps.progress.RunsPlayed++
	best := score > ps.progress.BestScore
	if best {
		ps.progress.BestScore = score
	}
	if gold > 0 {
		ps.progress.Gold += gold
	}
	ps.persist()
	if best {
		log.Printf("[ProgressStore] New best score: %d", score)
	}
	return best
}

// Wipe 清空全部元进度
func (ps *ProgressStore) Wipe() {
	ps.progress = MetaProgress{}
	ps.persist()
}
