//go:build !debug

package modifier

import (
	"log"
	"sync"
)

var invariantOnce sync.Once

// invariantViolation 发布构建下只记录一次，由调用方修复配对
func invariantViolation(msg string) {
	invariantOnce.Do(func() {
		log.Printf("[ModifierAccumulator] ERROR: invariant violated: %s (repairing by truncation)", msg)
	})
}
