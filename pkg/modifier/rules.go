package modifier

import (
	"fmt"
	"strings"

	"github.com/gonewx/survivor/pkg/config"
)

// Effect 标签规则命中后的效果
type Effect func(t Targets)

// Rule 一条标签规则
//
// 技能名包含任意一个 Token（大小写不敏感子串）即命中；
// RequireRarity 非 nil 时还需稀有度一致。
type Rule struct {
	Name          string
	Tokens        []string
	RequireRarity *config.Rarity
	Final         bool // 命中后停止匹配后续规则
	Effect        Effect
}

// Matches 判断规则是否命中该技能
func (r Rule) Matches(ability *config.AbilityDescriptor) bool {
	if ability == nil || strings.TrimSpace(ability.Name) == "" {
		return false
	}
	if r.RequireRarity != nil && ability.Rarity != *r.RequireRarity {
		return false
	}
	return MatchesAny(ability.Name, r.Tokens)
}

// RuleTable 有序的标签规则表
type RuleTable struct {
	rules []Rule
}

// NewRuleTable 以给定顺序创建规则表
func NewRuleTable(rules ...Rule) *RuleTable {
	t := &RuleTable{}
	for _, r := range rules {
		t.Add(r)
	}
	return t
}

// Add 追加规则，无 Token 的规则被忽略
func (t *RuleTable) Add(r Rule) {
	if len(r.Tokens) == 0 {
		return
	}
	t.rules = append(t.rules, r)
}

// Len 规则数
func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Apply 按顺序对技能执行命中的规则，返回命中的规则名
func (t *RuleTable) Apply(ability *config.AbilityDescriptor, targets Targets) []string {
	if t == nil || ability == nil {
		return nil
	}
	var matched []string
	for _, r := range t.rules {
		if !r.Matches(ability) {
			continue
		}
		matched = append(matched, r.Name)
		if r.Effect != nil && targets != nil {
			r.Effect(targets)
		}
		if r.Final {
			break
		}
	}
	return matched
}

// CompileRules 将配置中的标签规则编译为规则表
func CompileRules(cfgs []config.TagRuleConfig) (*RuleTable, error) {
	t := &RuleTable{}
	for i, c := range cfgs {
		rule := Rule{
			Name:   c.Name,
			Tokens: append([]string(nil), c.Tokens...),
			Final:  c.Final,
			Effect: compileEffect(c),
		}
		if c.Rarity != "" {
			r, err := config.ParseRarity(c.Rarity)
			if err != nil {
				return nil, fmt.Errorf("tag rule #%d (%s): %w", i, c.Name, err)
			}
			rule.RequireRarity = &r
		}
		t.Add(rule)
	}
	return t, nil
}

// compileEffect 乘数为 0 表示不修改该项
func compileEffect(c config.TagRuleConfig) Effect {
	damage, move, cooldown, orbiters := c.Damage, c.MoveSpeed, c.Cooldown, c.ExtraOrbiters
	return func(t Targets) {
		if damage != 0 {
			t.MultiplyDamage(damage)
		}
		if move != 0 {
			t.MultiplyMoveSpeed(move)
		}
		if cooldown != 0 {
			t.MultiplyCooldown(cooldown)
		}
		for i := 0; i < orbiters; i++ {
			t.AddExtraOrbiter()
		}
	}
}

// ContainsFold 大小写不敏感的子串判断
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// MatchesAny s 是否包含任意一个非空 token（大小写不敏感）
func MatchesAny(s string, tokens []string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		if ContainsFold(s, tok) {
			return true
		}
	}
	return false
}
