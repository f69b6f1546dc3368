package game

import (
	"math"

	"github.com/gonewx/survivor/pkg/config"
)

// Score 一局的得分
//
// 得分 = floor(存活秒数) + 奖励分，不小于 0。
// 结束（Finish）后得分冻结。
type Score struct {
	cfg      config.ScoreConfig
	survival float64
	bonus    int
	finished bool
}

// NewScore 创建计分
func NewScore(cfg config.ScoreConfig) *Score {
	return &Score{cfg: cfg}
}

// Tick 累计存活时间（仅在 Gameplay 状态下调用）
func (s *Score) Tick(dt float64) {
	if s.finished || dt <= 0 || !s.cfg.UseSurvivalTime {
		return
	}
	s.survival += dt
}

// Add 增加奖励分；value ≤ 0 或已结束时为空操作
func (s *Score) Add(value int) {
	if s.finished || value <= 0 {
		return
	}
	s.bonus += value
}

// AddKill 按击杀奖励加分
func (s *Score) AddKill() {
	s.Add(s.cfg.KillBonus)
}

// Current 当前得分
func (s *Score) Current() int {
	v := int(math.Floor(s.survival)) + s.bonus
	if v < 0 {
		return 0
	}
	return v
}

// Survival 存活秒数
func (s *Score) Survival() float64 { return s.survival }

// Finish 冻结得分并返回最终值
func (s *Score) Finish() int {
	s.finished = true
	return s.Current()
}

// Finished 是否已结束
func (s *Score) Finished() bool { return s.finished }

// Gold 按得分折算的金币
func (s *Score) Gold() int {
	if s.cfg.GoldPerScore <= 0 {
		return 0
	}
	return int(math.Floor(float64(s.Current()) * s.cfg.GoldPerScore))
}

// Reset 清零（新的一局）
func (s *Score) Reset() {
	s.survival = 0
	s.bonus = 0
	s.finished = false
}
