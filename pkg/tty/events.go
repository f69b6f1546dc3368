package tty

import "github.com/gdamore/tcell/v2"

// EventSource 事件来源（tcell.Screen 满足）
type EventSource interface {
	PollEvent() tcell.Event
}

// PumpEvents 把事件转发到 out，直到 PollEvent 返回 nil 或 done 关闭
// 在独立协程中运行；done 关闭后不会阻塞在发送上
func PumpEvents(src EventSource, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}
