package entities

import (
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// NewXPGem 在敌人死亡位置掉落经验宝石
//
// 返回：
//   - *pool.Actor: 宝石实例；key 为空或对象池耗尽时返回 nil
func NewXPGem(src ActorSource, key string, pos utils.Vec2, value int) *pool.Actor {
	if src == nil || key == "" {
		return nil
	}
	a := src.Acquire(key, pos, 0)
	if a == nil {
		return nil
	}
	if value < 1 {
		value = 1
	}
	a.Pickup.Clear()
	a.Pickup.Value = value
	return a
}
