// Package app 提供窗口前端的 ebiten 包装器
//
// 把一局 game.Run 挂到 ebiten 的 60 TPS 循环上，并用矢量图形绘制调试视图。
// 调用 NewApp 前必须先调用 embedded.Init() 初始化嵌入数据。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/game"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"
)

const (
	// WindowWidth 逻辑屏幕宽度
	WindowWidth = 960
	// WindowHeight 逻辑屏幕高度
	WindowHeight = 640
	// pixelsPerUnit 每世界单位的像素数
	pixelsPerUnit = 32
)

var (
	colorBackground = color.RGBA{R: 24, G: 28, B: 36, A: 255}
	colorPlayer     = color.RGBA{R: 90, G: 200, B: 250, A: 255}
	colorEnemy      = color.RGBA{R: 220, G: 70, B: 70, A: 255}
	colorDying      = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	colorProjectile = color.RGBA{R: 250, G: 220, B: 90, A: 255}
	colorGem        = color.RGBA{R: 90, G: 220, B: 120, A: 255}
	colorOrbiter    = color.RGBA{R: 210, G: 210, B: 230, A: 255}
)

// Config 应用启动配置
type Config struct {
	Verbose  bool   // 详细日志
	Seed     int64  // 随机种子
	DataDir  string // 数据目录（嵌入路径）
	AppName  string // gdata 存储名，为空时不持久化
	ShowHelp bool   // 显示按键说明
}

// App 实现 ebiten.Game
type App struct {
	run      *game.Run
	settings *game.SettingsManager
	verbose  bool
	showHelp bool
}

// NewApp 加载数据并创建一局
func NewApp(cfg Config) (*App, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	data, err := game.LoadData(dataDir)
	if err != nil {
		return nil, fmt.Errorf("数据加载失败: %w", err)
	}

	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	var store *gdata.Manager
	if cfg.AppName != "" {
		store, err = gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			log.Printf("[App] Warning: Failed to open storage: %v (progress will not be saved)", err)
			store = nil
		}
	}

	settings := game.NewSettingsManager(store)
	run := game.NewRun(game.Options{
		Data:       data,
		Seed:       cfg.Seed,
		Store:      store,
		ViewWidth:  float64(WindowWidth) / pixelsPerUnit,
		ViewHeight: float64(WindowHeight) / pixelsPerUnit,
		Verbose:    cfg.Verbose,
	})
	run.Start()
	log.Printf("[App] Run started (seed %d)", cfg.Seed)

	if settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		run:      run,
		settings: settings,
		verbose:  cfg.Verbose,
		showHelp: cfg.ShowHelp,
	}, nil
}

// Update 更新游戏逻辑，每个 tick 调用一次
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		full := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(full)
		a.settings.SetFullscreen(full)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showHelp = !a.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.run.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && a.run.State() == game.StateGameOver {
		a.run.Start()
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(key) {
			a.run.ChooseAbility(i)
		}
	}

	a.run.SetMoveIntent(moveIntent())
	a.run.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func moveIntent() utils.Vec2 {
	var dir utils.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	return dir
}

// ScreenPosition 世界坐标到屏幕像素（以玩家为中心，y 轴向上）
func ScreenPosition(center, world utils.Vec2) (float32, float32) {
	d := world.Sub(center)
	return float32(WindowWidth/2 + d.X*pixelsPerUnit), float32(WindowHeight/2 - d.Y*pixelsPerUnit)
}

// Draw 绘制调试视图
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	center := a.run.Player().Position()

	circle := func(pos utils.Vec2, radius float64, clr color.Color) {
		x, y := ScreenPosition(center, pos)
		vector.DrawFilledCircle(screen, x, y, float32(radius*pixelsPerUnit), clr, true)
	}

	actors := a.run.Actors()
	actors.ForEachActive(config.KindPickup, func(g *pool.Actor) {
		circle(g.Position(), 0.15, colorGem)
	})
	actors.ForEachActive(config.KindEnemy, func(e *pool.Actor) {
		clr := colorEnemy
		if e.Enemy.Dying {
			clr = colorDying
		}
		circle(e.Position(), e.Enemy.Radius, clr)
	})
	actors.ForEachActive(config.KindProjectile, func(p *pool.Actor) {
		circle(p.Position(), 0.12, colorProjectile)
	})

	if orbit := a.run.Orbit(); orbit.Active() {
		for slot := 0; slot < orbit.Unlocked(); slot++ {
			circle(orbit.OrbiterPosition(slot), 0.2, colorOrbiter)
		}
	}
	circle(center, a.run.Player().Radius(), colorPlayer)

	a.drawHUD(screen)
}

func (a *App) drawHUD(screen *ebiten.Image) {
	r := a.run
	p := r.Player()
	xp := r.Experience()
	hud := fmt.Sprintf("Lv %d (%d/%d)  HP %.0f/%.0f  Wave %d  Difficulty x%.2f  Score %d  Best %d  [%s]",
		xp.Level(), xp.XP(), xp.ToNext(), p.Health.Current, p.Health.Max,
		r.Director().WaveIndex(), r.Clock().Multiplier(), r.Score().Current(), r.Progress().BestScore(), r.State())
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)

	for i, c := range r.Choices() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[%d] %s (%s)", i+1, c.Name, c.Rarity), 8, 40+i*18)
	}
	if r.State() == game.StateGameOver {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("GAME OVER  score %d  gold %d  -  press R", r.Score().Current(), r.Progress().Gold()),
			WindowWidth/2-140, WindowHeight/2)
	}
	if a.showHelp {
		ebitenutil.DebugPrintAt(screen, "WASD move  P pause  1-3 choose  F11 fullscreen", 8, WindowHeight-24)
	}
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Run 当前一局（用于退出时的清理）
func (a *App) Run() *game.Run {
	return a.run
}

// IsVerbose 是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
