package app

import (
	"path/filepath"
	"testing"

	"github.com/gonewx/survivor/pkg/game"
	"github.com/gonewx/survivor/pkg/utils"
)

func TestScreenPosition(t *testing.T) {
	center := utils.Vec2{X: 10, Y: 5}

	tests := []struct {
		name  string
		world utils.Vec2
		x, y  float32
	}{
		{"中心", center, WindowWidth / 2, WindowHeight / 2},
		{"右侧一格", utils.Vec2{X: 11, Y: 5}, WindowWidth/2 + pixelsPerUnit, WindowHeight / 2},
		{"上方一格（y 轴向上）", utils.Vec2{X: 10, Y: 6}, WindowWidth / 2, WindowHeight/2 - pixelsPerUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ScreenPosition(center, tt.world)
			if x != tt.x || y != tt.y {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tt.x, tt.y, x, y)
			}
		})
	}
}

func TestNewApp(t *testing.T) {
	t.Run("加载仓库数据", func(t *testing.T) {
		a, err := NewApp(Config{Verbose: true, Seed: 7, DataDir: filepath.Join("..", "..", "data")})
		if err != nil {
			t.Fatalf("NewApp failed: %v", err)
		}
		if a.Run().State() != game.StateGameplay {
			t.Errorf("Expected run in gameplay, got %v", a.Run().State())
		}
		if !a.IsVerbose() {
			t.Error("Expected verbose app")
		}
		if w, h := a.Layout(1, 1); w != WindowWidth || h != WindowHeight {
			t.Errorf("Expected layout %dx%d, got %dx%d", WindowWidth, WindowHeight, w, h)
		}
	})

	t.Run("数据目录不存在", func(t *testing.T) {
		if _, err := NewApp(Config{Verbose: true, DataDir: t.TempDir()}); err == nil {
			t.Error("Expected error for missing data")
		}
	})
}
