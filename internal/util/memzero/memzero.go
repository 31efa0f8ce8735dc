// Package memzero clears sensitive byte slices after use.
package memzero

// Zero overwrites b in place at a known point instead of waiting for the
// collector. The loop is lowered to a memclr by the compiler.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
