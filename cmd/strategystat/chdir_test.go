package main

import (
	"os"
	"testing"
)

// chdirForTest stands in for testing.T.Chdir (Go 1.24+): it changes the
// working directory to dir and restores the previous one on cleanup.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
