package tty

import (
	"math"
	"sync"
	"time"

	"github.com/gonewx/survivor/pkg/event"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SampleRate 提示音采样率
const SampleRate = beep.SampleRate(44100)

// tone 带线性淡出的正弦波
type tone struct {
	freq     float64
	phase    float64
	position int
	samples  int
}

// Tone 生成一段正弦提示音，末尾线性淡出以避免爆音
func Tone(freq float64, d time.Duration) beep.Streamer {
	return &tone{freq: freq, samples: SampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.samples {
			return i, i > 0
		}
		fade := 1 - float64(t.position)/float64(t.samples)
		v := math.Sin(2*math.Pi*t.phase) * fade
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(SampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Blipper 根据遥测事件播放短提示音
//
// 暴击、升级与受伤各有一个音高。音量 0 时不播放。
// 实际输出交给 sink；默认的 sink 是 speaker.Play，需要先调用 InitSpeaker。
type Blipper struct {
	mu     sync.Mutex
	volume float64
	sink   func(beep.Streamer)
	subs   []*event.Subscription
	played int
}

// NewBlipper 创建提示音播放器，sink 为 nil 时使用 speaker.Play
func NewBlipper(volume float64, sink func(beep.Streamer)) *Blipper {
	if sink == nil {
		sink = func(s beep.Streamer) { speaker.Play(s) }
	}
	return &Blipper{volume: volume, sink: sink}
}

// InitSpeaker 初始化音频输出（100ms 缓冲）
func InitSpeaker() error {
	return speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond))
}

// SetVolume 设置音量 0~1
func (b *Blipper) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = math.Max(0, math.Min(1, v))
}

// Attach 订阅暴击、升级与状态事件
func (b *Blipper) Attach(bus *event.Bus) {
	b.Detach()
	b.subs = append(b.subs,
		bus.Subscribe(event.TypeDamageDealt, func(e event.Event) {
			if d, ok := e.Data.(event.DamageDealt); ok && d.Crit {
				b.Play(1320, 40*time.Millisecond)
			}
		}),
		bus.Subscribe(event.TypeLevelUp, func(event.Event) {
			b.Play(660, 90*time.Millisecond)
			b.Play(990, 140*time.Millisecond)
		}),
		bus.Subscribe(event.TypeStateChanged, func(e event.Event) {
			if s, ok := e.Data.(event.StateChanged); ok && s.To == "GameOver" {
				b.Play(110, 400*time.Millisecond)
			}
		}),
	)
}

// Detach 取消全部订阅
func (b *Blipper) Detach() {
	for _, s := range b.subs {
		s.Unsubscribe()
	}
	b.subs = nil
}

// Play 播放一个提示音
func (b *Blipper) Play(freq float64, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.volume <= 0 || freq <= 0 || d <= 0 {
		return
	}
	b.played++
	b.sink(&effects.Volume{
		Streamer: Tone(freq, d),
		Base:     2,
		Volume:   math.Log2(b.volume),
	})
}

// Played 已播放的提示音数量
func (b *Blipper) Played() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.played
}
