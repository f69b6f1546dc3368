// Package tty 终端雷达视图
//
// 以玩家为中心把一局的世界坐标映射到字符网格，
// 只用于调试与无窗口环境，不是正式渲染器。
package tty

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/event"
	"github.com/gonewx/survivor/pkg/game"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

const (
	hudRows       = 2
	popupLifetime = 0.6 // 伤害数字停留秒数
	maxPopups     = 32
)

var (
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleEnemy      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDying      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleGem        = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleOrbiter    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleDamage     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleCrit       = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleChoice     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

type popup struct {
	pos  utils.Vec2
	text string
	crit bool
	ttl  float64
}

// Radar 终端雷达
type Radar struct {
	screen     tcell.Screen
	cellsPerX  float64 // 每世界单位的列数
	cellsPerY  float64 // 每世界单位的行数
	showDamage bool
	popups     []popup
	sub        *event.Subscription
}

// NewRadar 创建雷达
//
// 参数：
//   - screen: 已初始化的 tcell 屏幕
//   - cellsPerUnit: 每世界单位占用的列数；行数取其一半（字符约为 1:2）
func NewRadar(screen tcell.Screen, cellsPerUnit float64) *Radar {
	if cellsPerUnit <= 0 {
		cellsPerUnit = 2
	}
	return &Radar{
		screen:     screen,
		cellsPerX:  cellsPerUnit,
		cellsPerY:  cellsPerUnit / 2,
		showDamage: true,
	}
}

// SetShowDamage 设置是否显示伤害数字
func (r *Radar) SetShowDamage(show bool) {
	r.showDamage = show
}

// Attach 订阅伤害遥测；重复调用会先取消旧订阅
func (r *Radar) Attach(bus *event.Bus) {
	r.Detach()
	r.sub = bus.Subscribe(event.TypeDamageDealt, func(e event.Event) {
		d, ok := e.Data.(event.DamageDealt)
		if !ok || !r.showDamage {
			return
		}
		if len(r.popups) >= maxPopups {
			r.popups = r.popups[1:]
		}
		r.popups = append(r.popups, popup{
			pos:  d.Position,
			text: fmt.Sprintf("%.0f", math.Ceil(d.Amount)),
			crit: d.Crit,
			ttl:  popupLifetime,
		})
	})
}

// Detach 取消订阅
func (r *Radar) Detach() {
	if r.sub != nil {
		r.sub.Unsubscribe()
		r.sub = nil
	}
}

// Popups 当前显示的伤害数字数量
func (r *Radar) Popups() int {
	return len(r.popups)
}

// Advance 推进伤害数字的停留时间（未缩放时间）
func (r *Radar) Advance(dt float64) {
	kept := r.popups[:0]
	for _, p := range r.popups {
		p.ttl -= dt
		if p.ttl > 0 {
			kept = append(kept, p)
		}
	}
	r.popups = kept
}

// Cell 世界坐标对应的字符位置（y 轴向上）
func (r *Radar) Cell(center, world utils.Vec2) (x, y int, ok bool) {
	w, h := r.screen.Size()
	fieldH := h - hudRows
	if w <= 0 || fieldH <= 0 {
		return 0, 0, false
	}
	d := world.Sub(center)
	x = w/2 + int(math.Round(d.X*r.cellsPerX))
	y = hudRows + fieldH/2 - int(math.Round(d.Y*r.cellsPerY))
	ok = x >= 0 && x < w && y >= hudRows && y < h
	return x, y, ok
}

// Draw 绘制一帧
func (r *Radar) Draw(run *game.Run) {
	r.screen.Clear()
	center := run.Player().Position()

	run.Actors().ForEachActive(config.KindPickup, func(a *pool.Actor) {
		r.put(center, a.Position(), '+', styleGem)
	})
	run.Actors().ForEachActive(config.KindEnemy, func(a *pool.Actor) {
		ch, style := 'e', styleEnemy
		if a.Enemy.Radius >= 0.6 {
			ch = 'E'
		}
		if a.Enemy.Dying {
			ch, style = 'x', styleDying
		}
		r.put(center, a.Position(), ch, style)
	})
	run.Actors().ForEachActive(config.KindProjectile, func(a *pool.Actor) {
		r.put(center, a.Position(), '*', styleProjectile)
	})

	orbit := run.Orbit()
	if orbit.Active() {
		for slot := 0; slot < orbit.Unlocked(); slot++ {
			r.put(center, orbit.OrbiterPosition(slot), 'o', styleOrbiter)
		}
	}
	r.put(center, center, '@', stylePlayer)

	for _, p := range r.popups {
		style := styleDamage
		if p.crit {
			style = styleCrit
		}
		if x, y, ok := r.Cell(center, p.pos); ok {
			r.text(x, y-1, p.text, style)
		}
	}

	r.drawHUD(run)
	r.screen.Show()
}

func (r *Radar) put(center, world utils.Vec2, ch rune, style tcell.Style) {
	if x, y, ok := r.Cell(center, world); ok {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

func (r *Radar) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Radar) drawHUD(run *game.Run) {
	p := run.Player()
	xp := run.Experience()
	line := fmt.Sprintf("Lv %d (%d/%d)  HP %.0f/%.0f  Wave %d  Diff x%.2f  Score %d  Kills %d  %s",
		xp.Level(), xp.XP(), xp.ToNext(), p.Health.Current, p.Health.Max,
		run.Director().WaveIndex(), run.Clock().Multiplier(), run.Score().Current(), run.Kills(), run.State())
	r.text(0, 0, line, styleHUD)

	choices := run.Choices()
	if len(choices) == 0 {
		m := run.Abilities().Snapshot()
		stats := fmt.Sprintf("DMG x%.2f  SPD x%.2f  CD x%.2f  PIERCE x%.2f  CRIT x%.2f",
			m.Damage, m.ProjectileSpeed, m.Cooldown, m.Pierce, m.CritChance)
		r.text(0, 1, stats, styleHUD)
		return
	}
	x := 0
	for i, c := range choices {
		label := fmt.Sprintf(" %d:%s(%s) ", i+1, c.Name, c.Rarity)
		r.text(x, 1, label, styleChoice)
		x += len([]rune(label)) + 1
	}
}
