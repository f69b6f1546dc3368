package event

// Handler 事件处理函数
type Handler func(Event)

type handlerEntry struct {
	id      uint64
	handler Handler
}

// Bus 同步事件总线
//
// 单线程使用：Publish 在调用方的 tick 内同步分发。
// 订阅返回 Subscription，持有者在销毁时显式 Unsubscribe。
// nil *Bus 上的 Publish 为空操作。
type Bus struct {
	handlers map[Type][]handlerEntry
	nextID   uint64
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]handlerEntry),
	}
}

// Subscription 一次订阅的句柄
type Subscription struct {
	bus *Bus
	typ Type
	id  uint64
}

// Subscribe 订阅事件
//
// 参数：
//   - t: 事件类型
//   - h: 处理函数，nil 时返回 nil
//
// 返回：
//   - *Subscription: 订阅句柄
func (b *Bus) Subscribe(t Type, h Handler) *Subscription {
	if b == nil || h == nil {
		return nil
	}
	b.nextID++
	b.handlers[t] = append(b.handlers[t], handlerEntry{id: b.nextID, handler: h})
	return &Subscription{bus: b, typ: t, id: b.nextID}
}

// Unsubscribe 取消订阅，重复调用无副作用
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	entries := s.bus.handlers[s.typ]
	for i, e := range entries {
		if e.id == s.id {
			// 新建切片，正在进行的分发持有的快照不受影响
			next := make([]handlerEntry, 0, len(entries)-1)
			next = append(next, entries[:i]...)
			next = append(next, entries[i+1:]...)
			if len(next) == 0 {
				delete(s.bus.handlers, s.typ)
			} else {
				s.bus.handlers[s.typ] = next
			}
			break
		}
	}
	s.bus = nil
}

// Publish 分发事件
// 分发期间新增或取消的订阅从下一次 Publish 起生效
func (b *Bus) Publish(t Type, data interface{}) {
	if b == nil {
		return
	}
	entries := b.handlers[t]
	if len(entries) == 0 {
		return
	}
	ev := Event{Type: t, Data: data}
	for _, e := range entries[:len(entries):len(entries)] {
		e.handler(ev)
	}
}

// HandlerCount 某类型当前订阅数
func (b *Bus) HandlerCount(t Type) int {
	if b == nil {
		return 0
	}
	return len(b.handlers[t])
}

// Clear 移除全部订阅
func (b *Bus) Clear() {
	if b == nil {
		return
	}
	b.handlers = make(map[Type][]handlerEntry)
}
