//go:build !android

package utils

import "testing"

func TestOpenStorage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m, err := OpenStorage("invasion_test_storage")
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	if m == nil {
		t.Fatal("OpenStorage returned nil manager")
	}
}
