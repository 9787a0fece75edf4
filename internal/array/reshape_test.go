package array

import (
	"errors"
	"testing"
)

func TestReshapeView(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4, 5, 6}, nil))
	defer a.Release()

	m := mustRaw(t)(Reshape(a, Shape{2, 3}))
	defer m.Release()
	wantShape(t, m, Shape{2, 3})

	// Contiguous reshape is a view: writes flow both ways.
	if err := m.SetAny(int64(-1), 1, 0); err != nil {
		t.Fatal(err)
	}
	wantInts(t, a, []int64{1, 2, 3, -1, 5, 6})

	// Round trip is a view of the original geometry.
	back := mustRaw(t)(Reshape(m, Shape{6}))
	defer back.Release()
	wantInts(t, back, []int64{1, 2, 3, -1, 5, 6})
	if back.Strides()[0] != 8 {
		t.Errorf("round-trip strides = %v, want dense", back.Strides())
	}

	var se *ShapeError
	_, err := Reshape(a, Shape{4, 2})
	if !errors.As(err, &se) {
		t.Errorf("bad element count: want ShapeError, got %v", err)
	}
}

func TestReshapeInferred(t *testing.T) {
	a := mustRaw(t)(Arange(Int64, 0, 12, 1))
	defer a.Release()
	m := mustRaw(t)(Reshape(a, Shape{3, -1}))
	defer m.Release()
	wantShape(t, m, Shape{3, 4})

	if _, err := Reshape(a, Shape{-1, -1}); err == nil {
		t.Error("two inferred dimensions should fail")
	}
	if _, err := Reshape(a, Shape{5, -1}); err == nil {
		t.Error("non-dividing inference should fail")
	}
}

func TestReshapeOfTransposeCopies(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4, 5, 6}, Shape{2, 3}))
	defer a.Release()
	at := mustRaw(t)(Transpose(a))
	defer at.Release()
	wantShape(t, at, Shape{3, 2})
	wantInts(t, at, []int64{1, 4, 2, 5, 3, 6})

	// The transposed walk cannot be expressed by reshaped strides, so
	// this materializes: writes must not reach the original.
	flat := mustRaw(t)(Reshape(at, Shape{6}))
	defer flat.Release()
	wantInts(t, flat, []int64{1, 4, 2, 5, 3, 6})
	if err := flat.SetAny(int64(0), 0); err != nil {
		t.Fatal(err)
	}
	wantInts(t, a, []int64{1, 2, 3, 4, 5, 6})
}

func TestTransposeIsView(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4, 5, 6}, Shape{2, 3}))
	defer a.Release()
	at := mustRaw(t)(Transpose(a))
	defer at.Release()
	if err := at.SetAny(int64(9), 2, 1); err != nil {
		t.Fatal(err)
	}
	wantInts(t, a, []int64{1, 2, 3, 4, 5, 9})

	if _, err := Transpose(a, 0, 0); err == nil {
		t.Error("repeated axis should fail")
	}
	if _, err := Transpose(a, 0); err == nil {
		t.Error("short permutation should fail")
	}
}

func TestSwapAxes(t *testing.T) {
	a := mustRaw(t)(Arange(Int64, 0, 24, 1))
	defer a.Release()
	m := mustRaw(t)(Reshape(a, Shape{2, 3, 4}))
	defer m.Release()
	s := mustRaw(t)(SwapAxes(m, 0, 2))
	defer s.Release()
	wantShape(t, s, Shape{4, 3, 2})
	v, _ := s.GetAny(3, 1, 0)
	if v.(int64) != 7 { // m[0,1,3]
		t.Errorf("s[3,1,0] = %v, want 7", v)
	}
}

func TestExpandSqueeze(t *testing.T) {
	a := mustRaw(t)(FromSlice([]float64{1, 2, 3}, nil))
	defer a.Release()

	col := mustRaw(t)(ExpandDims(a, 1))
	defer col.Release()
	wantShape(t, col, Shape{3, 1})

	lead := mustRaw(t)(ExpandDims(a, -2))
	defer lead.Release()
	wantShape(t, lead, Shape{1, 3})

	back := mustRaw(t)(Squeeze(col))
	defer back.Release()
	wantShape(t, back, Shape{3})

	if _, err := Squeeze(col, 0); err == nil {
		t.Error("squeezing a non-unit axis should fail")
	}
}

func TestBroadcastTo(t *testing.T) {
	col := mustRaw(t)(FromSlice([]int64{0, 1, 2}, Shape{3, 1}))
	defer col.Release()
	grid := mustRaw(t)(BroadcastTo(col, Shape{3, 4}))
	defer grid.Release()
	wantShape(t, grid, Shape{3, 4})
	wantInts(t, grid, []int64{0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2})
	if grid.Strides()[1] != 0 {
		t.Errorf("repeated axis stride = %d, want 0", grid.Strides()[1])
	}

	var be *BroadcastError
	_, err := BroadcastTo(col, Shape{4, 4})
	if !errors.As(err, &be) {
		t.Errorf("want BroadcastError, got %v", err)
	}
}

func TestRavelAndFlatten(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4}, Shape{2, 2}))
	defer a.Release()

	r := mustRaw(t)(Ravel(a))
	defer r.Release()
	if err := r.SetAny(int64(9), 0); err != nil {
		t.Fatal(err)
	}
	v, _ := a.GetAny(0, 0)
	if v.(int64) != 9 {
		t.Error("Ravel of a contiguous array should alias it")
	}

	f := mustRaw(t)(Flatten(a))
	defer f.Release()
	if err := f.SetAny(int64(0), 0); err != nil {
		t.Fatal(err)
	}
	v, _ = a.GetAny(0, 0)
	if v.(int64) != 9 {
		t.Error("Flatten must copy")
	}
}
