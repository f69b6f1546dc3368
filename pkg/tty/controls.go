package tty

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/survivor/pkg/utils"
)

// Action 键盘动作
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionPause
	ActionRestart
	ActionChoose
	ActionQuit
)

// holdTime 终端没有按键抬起事件，方向键按下后保持的秒数
const holdTime = 0.18

// Controls 把按键转换为移动意图与动作
type Controls struct {
	dir    utils.Vec2
	ttl    float64
	choice int
}

// NewControls 创建按键控制
func NewControls() *Controls {
	return &Controls{}
}

// HandleKey 处理一个按键事件
func (c *Controls) HandleKey(ev *tcell.EventKey) Action {
	return c.Handle(ev.Key(), ev.Rune())
}

// Handle 按键码与字符
func (c *Controls) Handle(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		return c.press(utils.Vec2{Y: 1})
	case tcell.KeyDown:
		return c.press(utils.Vec2{Y: -1})
	case tcell.KeyLeft:
		return c.press(utils.Vec2{X: -1})
	case tcell.KeyRight:
		return c.press(utils.Vec2{X: 1})
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch r {
	case 'w', 'W':
		return c.press(utils.Vec2{Y: 1})
	case 's', 'S':
		return c.press(utils.Vec2{Y: -1})
	case 'a', 'A':
		return c.press(utils.Vec2{X: -1})
	case 'd', 'D':
		return c.press(utils.Vec2{X: 1})
	case 'p', 'P', ' ':
		return ActionPause
	case 'r', 'R':
		return ActionRestart
	case 'q', 'Q':
		return ActionQuit
	default:
		if r >= '1' && r <= '9' {
			c.choice = int(r - '1')
			return ActionChoose
		}
	}
	return ActionNone
}

func (c *Controls) press(dir utils.Vec2) Action {
	c.dir = dir
	c.ttl = holdTime
	return ActionMove
}

// Advance 推进按键保持时间
func (c *Controls) Advance(dt float64) {
	if c.ttl <= 0 {
		return
	}
	c.ttl -= dt
	if c.ttl <= 0 {
		c.dir = utils.Vec2{}
	}
}

// Intent 当前移动意图
func (c *Controls) Intent() utils.Vec2 {
	return c.dir
}

// Choice 最近一次选择的候选索引（从 0 开始）
func (c *Controls) Choice() int {
	return c.choice
}
