package frost

import "testing"

func TestVersion(t *testing.T) {
	major, minor, patch := Version()
	if major != 1 || minor != 0 || patch != 0 {
		t.Fatalf("unexpected version %d.%d.%d", major, minor, patch)
	}
}
