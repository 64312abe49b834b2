package test

import (
	"os"
	"strconv"
	"testing"
)

// SlowTest skips the calling test unless SLOW is set. Used for the contention tests
// that hammer an expectation from many goroutines.
func SlowTest(t *testing.T) {
	t.Helper()
	if os.Getenv("SLOW") == "" {
		t.Skip("skipping slow tests: set SLOW environment variable to run")
	}
}

// Goroutines returns how many goroutines the contention tests should start.
// Defaults to 64, override with STRESS_GOROUTINES.
func Goroutines() int {
	if n, err := strconv.Atoi(os.Getenv("STRESS_GOROUTINES")); err == nil && n > 0 {
		return n
	}
	return 64
}
