package frost

import (
	"io"
)

// SecureCompare performs constant-time comparison of byte slices.
func SecureCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var result byte
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}

	return result == 0
}

// ZeroizeBytes securely clears a byte slice.
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// RandomScalar draws a uniformly distributed non-zero scalar from rand.
// A 64-byte sample is reduced through the wide path so the modular bias
// of a single 32-byte draw never appears.
func RandomScalar(c Curve, rand io.Reader) ([ScalarSize]byte, error) {
	for {
		var wide [WideSize]byte
		if _, err := io.ReadFull(rand, wide[:]); err != nil {
			return [ScalarSize]byte{}, ErrRandomSource.WithCause(err)
		}
		s := c.ScalarReduceWide(wide)
		ZeroizeBytes(wide[:])
		if !c.ScalarIsZero(s) {
			return s, nil
		}
	}
}
