package tty

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// endlessSource 永远有事件可读
type endlessSource struct{}

func (endlessSource) PollEvent() tcell.Event { return tcell.NewEventInterrupt(nil) }

type closedSource struct{}

func (closedSource) PollEvent() tcell.Event { return nil }

func waitReturn(t *testing.T, finished <-chan struct{}) {
	t.Helper()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("PumpEvents did not return")
	}
}

func TestPumpEvents(t *testing.T) {
	t.Run("消费方退出后不阻塞", func(t *testing.T) {
		out := make(chan tcell.Event, 2)
		done := make(chan struct{})
		finished := make(chan struct{})
		go func() {
			PumpEvents(endlessSource{}, out, done)
			close(finished)
		}()

		<-out
		close(done)
		waitReturn(t, finished)
	})

	t.Run("屏幕关闭后返回", func(t *testing.T) {
		finished := make(chan struct{})
		go func() {
			PumpEvents(closedSource{}, make(chan tcell.Event), make(chan struct{}))
			close(finished)
		}()
		waitReturn(t, finished)
	})
}
