package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStore 在临时 HOME 下打开 gdata 存储
func openTestStore(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", s.SoundVolume)
	}
	if !s.SoundEnabled || !s.ShowDamageNumbers {
		t.Errorf("Expected sound and damage numbers enabled: %+v", s)
	}
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

func TestSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(0.3)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if sm.Settings().SoundVolume != 0.3 {
		t.Errorf("SoundVolume: got %v, want 0.3", sm.Settings().SoundVolume)
	}
}

func TestSettingsManagerPersistence(t *testing.T) {
	m := openTestStore(t, "test_survivor_settings")

	sm := NewSettingsManager(m)
	sm.SetSoundVolume(0.25)
	sm.SetShowDamageNumbers(false)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(m)
	s := reloaded.Settings()
	if s.SoundVolume != 0.25 || s.ShowDamageNumbers || !s.Fullscreen {
		t.Errorf("Settings not persisted: %+v", s)
	}
}

func TestSettingsVolume(t *testing.T) {
	tests := []struct {
		name    string
		volume  float64
		enabled bool
		want    float64
	}{
		{"正常音量", 0.5, true, 0.5},
		{"超过上限", 1.5, true, 1},
		{"低于下限", -0.2, true, 0},
		{"音效关闭", 0.9, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSettingsManager(nil)
			sm.SetSoundVolume(tt.volume)
			sm.SetSoundEnabled(tt.enabled)
			if got := sm.EffectiveVolume(); got != tt.want {
				t.Errorf("EffectiveVolume() = %v, want %v", got, tt.want)
			}
		})
	}
}
