// Package testutil holds shared numeric assertion helpers for the
// package tests. Every expectation in this module is a scalar with a
// closed-form reference value, so tolerance asserts replace the golden
// files used elsewhere.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// InDelta fails the test when got is not within tol of want.
func InDelta(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if !scalar.EqualWithinAbs(got, want, tol) {
		t.Fatalf("%s = %.10g, want %.10g (tol %g, diff %g)",
			name, got, want, tol, math.Abs(got-want))
	}
}

// NoError fails the test on an unexpected error.
func NoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// IsNaN fails the test when v is a real number.
func IsNaN(t *testing.T, name string, v float64) {
	t.Helper()
	if !math.IsNaN(v) {
		t.Fatalf("%s = %g, want NaN", name, v)
	}
}
