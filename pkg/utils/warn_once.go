package utils

import (
	"fmt"
	"log"
)

// WarnOnce 每个 (条件, 键) 只输出一次的警告日志
//
// 输出格式与其他系统一致："[Tag] Warning: ..."
type WarnOnce struct {
	tag  string
	seen map[string]struct{}
}

// NewWarnOnce 创建带组件标签的一次性警告器
func NewWarnOnce(tag string) *WarnOnce {
	return &WarnOnce{tag: tag, seen: make(map[string]struct{})}
}

// Warn 若 key 尚未警告过则输出并返回 true
func (w *WarnOnce) Warn(key string, format string, args ...interface{}) bool {
	if _, ok := w.seen[key]; ok {
		return false
	}
	w.seen[key] = struct{}{}
	log.Printf("[%s] Warning: %s", w.tag, fmt.Sprintf(format, args...))
	return true
}

// Seen 是否已对 key 警告过
func (w *WarnOnce) Seen(key string) bool {
	_, ok := w.seen[key]
	return ok
}

// Reset 清空记录（新的一局）
func (w *WarnOnce) Reset() {
	w.seen = make(map[string]struct{})
}
