package array

import (
	"errors"
	"testing"
)

func TestGetSetNegativeIndex(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{10, 20, 30, 40}, nil))
	defer a.Release()
	v, err := a.GetAny(-1)
	if err != nil || v.(int64) != 40 {
		t.Errorf("a[-1] = %v (%v), want 40", v, err)
	}
	if err := a.SetAny(int64(99), -2); err != nil {
		t.Fatalf("Set a[-2]: %v", err)
	}
	wantInts(t, a, []int64{10, 20, 99, 40})

	var ie *IndexError
	_, err = a.GetAny(4)
	if !errors.As(err, &ie) {
		t.Errorf("a[4]: want IndexError, got %v", err)
	}
	_, err = a.GetAny(-5)
	if !errors.As(err, &ie) {
		t.Errorf("a[-5]: want IndexError, got %v", err)
	}
}

func TestSliceIsView(t *testing.T) {
	x := mustRaw(t)(FromSlice([]int64{0, 1, 2, 3, 4, 5}, nil))
	defer x.Release()
	v := mustRaw(t)(Slice(x, R(2, 5)))
	defer v.Release()
	wantInts(t, v, []int64{2, 3, 4})

	// Mutating the view must be visible in the parent: shared buffer.
	if err := v.SetAny(int64(-7), 0); err != nil {
		t.Fatal(err)
	}
	wantInts(t, x, []int64{0, 1, -7, 3, 4, 5})

	// An explicit copy severs the aliasing.
	c := mustRaw(t)(v.Copy())
	defer c.Release()
	if err := c.SetAny(int64(100), 0); err != nil {
		t.Fatal(err)
	}
	wantInts(t, x, []int64{0, 1, -7, 3, 4, 5})
}

func TestSliceSteps(t *testing.T) {
	x := mustRaw(t)(FromSlice([]int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, nil))
	defer x.Release()
	tests := []struct {
		name string
		rg   Rng
		want []int64
	}{
		{"all", All(), []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"range", R(1, 4), []int64{1, 2, 3}},
		{"stepped", Rs(1, 8, 3), []int64{1, 4, 7}},
		{"reverse", Stepped(-1), []int64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}},
		{"revRange", Rs(8, 2, -2), []int64{8, 6, 4}},
		{"negStart", From(-3), []int64{7, 8, 9}},
		{"upTo", UpTo(-7), []int64{0, 1, 2}},
		{"clamped", R(5, 100), []int64{5, 6, 7, 8, 9}},
		{"empty", R(4, 4), []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustRaw(t)(Slice(x, tt.rg))
			defer v.Release()
			wantInts(t, v, tt.want)
		})
	}

	if _, err := Slice(x, Stepped(0)); err == nil {
		t.Error("zero step should fail")
	}
}

func TestSel(t *testing.T) {
	m := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4, 5, 6}, Shape{2, 3}))
	defer m.Release()

	row := mustRaw(t)(Sel(m, 0, 1))
	defer row.Release()
	wantShape(t, row, Shape{3})
	wantInts(t, row, []int64{4, 5, 6})

	col := mustRaw(t)(Sel(m, 1, -1))
	defer col.Release()
	wantShape(t, col, Shape{2})
	wantInts(t, col, []int64{3, 6})

	// Writes through the rank-reduced view land in the parent.
	if err := col.SetAny(int64(0), 0); err != nil {
		t.Fatal(err)
	}
	wantInts(t, m, []int64{1, 2, 0, 4, 5, 6})
}

func TestMixedIndexing(t *testing.T) {
	// shape [2 3 4], pick [1, 0:2, ::2] -> shape [2 2]
	data := make([]int64, 24)
	for i := range data {
		data[i] = int64(i)
	}
	x := mustRaw(t)(FromSlice(data, Shape{2, 3, 4}))
	defer x.Release()

	first := mustRaw(t)(Sel(x, 0, 1))
	defer first.Release()
	v := mustRaw(t)(Slice(first, R(0, 2), Stepped(2)))
	defer v.Release()
	wantShape(t, v, Shape{2, 2})
	wantInts(t, v, []int64{12, 14, 16, 18})
}

func TestAssignBroadcast(t *testing.T) {
	x := mustRaw(t)(Zeros(Float64, Shape{2, 3}))
	defer x.Release()
	row := mustRaw(t)(FromSlice([]float64{1, 2, 3}, nil))
	defer row.Release()

	if err := Assign(x, row); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	wantFloats(t, x, []float64{1, 2, 3, 1, 2, 3})

	// Source larger than destination must not silently spill.
	big := mustRaw(t)(Zeros(Float64, Shape{4, 3}))
	defer big.Release()
	if err := Assign(row, big); err == nil {
		t.Error("assigning a larger source should fail")
	}
}

func TestAssignOverlapping(t *testing.T) {
	x := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4, 5}, nil))
	defer x.Release()
	left := mustRaw(t)(Slice(x, R(0, 4)))
	defer left.Release()
	right := mustRaw(t)(Slice(x, R(1, 5)))
	defer right.Release()

	// Overlapping shift: dst and src share the buffer, so src must be
	// materialized before any write.
	if err := Assign(left, right); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	wantInts(t, x, []int64{2, 3, 4, 5, 5})
}
