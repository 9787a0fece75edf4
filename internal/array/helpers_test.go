package array

import "testing"

// Test helpers shared across the package tests.

func mustRaw(t *testing.T) func(*Raw, error) *Raw {
	t.Helper()
	return func(r *Raw, err error) *Raw {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return r
	}
}

// floatsOf flattens any numeric array into float64 values, row-major.
func floatsOf(t *testing.T, r *Raw) []float64 {
	t.Helper()
	c, err := Cast(r, Float64)
	if err != nil {
		t.Fatalf("Cast to float64: %v", err)
	}
	defer c.Release()
	return append([]float64(nil), dataOf[float64](c)...)
}

// intsOf flattens any integer-convertible array into int64 values.
func intsOf(t *testing.T, r *Raw) []int64 {
	t.Helper()
	c, err := Cast(r, Int64)
	if err != nil {
		t.Fatalf("Cast to int64: %v", err)
	}
	defer c.Release()
	return append([]int64(nil), dataOf[int64](c)...)
}

func boolsOf(t *testing.T, r *Raw) []bool {
	t.Helper()
	c, err := Cast(r, Bool)
	if err != nil {
		t.Fatalf("Cast to bool: %v", err)
	}
	defer c.Release()
	return append([]bool(nil), dataOf[bool](c)...)
}

func wantShape(t *testing.T, r *Raw, shape Shape) {
	t.Helper()
	if !r.Shape().Equal(shape) {
		t.Fatalf("shape = %v, want %v", r.Shape(), shape)
	}
}

func wantFloats(t *testing.T, r *Raw, want []float64) {
	t.Helper()
	got := floatsOf(t, r)
	if len(got) != len(want) {
		t.Fatalf("got %d elements %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d = %v, want %v (full: %v vs %v)", i, got[i], want[i], got, want)
		}
	}
}

func wantInts(t *testing.T, r *Raw, want []int64) {
	t.Helper()
	got := intsOf(t, r)
	if len(got) != len(want) {
		t.Fatalf("got %d elements %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d = %d, want %d (full: %v vs %v)", i, got[i], want[i], got, want)
		}
	}
}
