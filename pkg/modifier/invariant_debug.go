//go:build debug

package modifier

// invariantViolation 调试构建下立即崩溃
func invariantViolation(msg string) {
	panic("[ModifierAccumulator] invariant violated: " + msg)
}
