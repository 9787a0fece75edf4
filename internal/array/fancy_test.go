package array

import (
	"errors"
	"testing"
)

func TestTake(t *testing.T) {
	x := mustRaw(t)(FromSlice([]int64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}, nil))
	defer x.Release()

	t.Run("vector", func(t *testing.T) {
		ix := mustRaw(t)(FromSlice([]int64{1, 1, 3, 8, 5}, nil))
		defer ix.Release()
		v := mustRaw(t)(Take(x, ix))
		defer v.Release()
		wantInts(t, v, []int64{10, 10, 30, 80, 50})
	})

	t.Run("shaped", func(t *testing.T) {
		// Result takes the index array's shape.
		ix := mustRaw(t)(FromSlice([]int64{3, 7, 4, 5}, Shape{2, 2}))
		defer ix.Release()
		v := mustRaw(t)(Take(x, ix))
		defer v.Release()
		wantShape(t, v, Shape{2, 2})
		wantInts(t, v, []int64{30, 70, 40, 50})
	})

	t.Run("negative", func(t *testing.T) {
		ix := mustRaw(t)(FromSlice([]int64{-1, -10}, nil))
		defer ix.Release()
		v := mustRaw(t)(Take(x, ix))
		defer v.Release()
		wantInts(t, v, []int64{90, 0})
	})

	t.Run("copies", func(t *testing.T) {
		ix := mustRaw(t)(FromSlice([]int64{0}, nil))
		defer ix.Release()
		v := mustRaw(t)(Take(x, ix))
		defer v.Release()
		if err := v.SetAny(int64(-1), 0); err != nil {
			t.Fatal(err)
		}
		got, _ := x.GetAny(0)
		if got.(int64) != 0 {
			t.Error("Take result must not alias the source")
		}
	})

	t.Run("outOfRange", func(t *testing.T) {
		ix := mustRaw(t)(FromSlice([]int64{10}, nil))
		defer ix.Release()
		var ie *IndexError
		if _, err := Take(x, ix); !errors.As(err, &ie) {
			t.Errorf("want IndexError, got %v", err)
		}
	})
}

func TestTakeRows(t *testing.T) {
	// Axis-0 gather from a matrix keeps the trailing dimensions.
	m := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4, 5, 6}, Shape{3, 2}))
	defer m.Release()
	ix := mustRaw(t)(FromSlice([]int64{2, 0}, nil))
	defer ix.Release()

	v := mustRaw(t)(Take(m, ix))
	defer v.Release()
	wantShape(t, v, Shape{2, 2})
	wantInts(t, v, []int64{5, 6, 1, 2})
}

func TestTakeAt(t *testing.T) {
	m := mustRaw(t)(FromSlice([]int64{0, 1, 2, 3, 4, 5}, Shape{2, 3}))
	defer m.Release()

	t.Run("pairs", func(t *testing.T) {
		r := mustRaw(t)(FromSlice([]int64{0, 1, 1}, nil))
		defer r.Release()
		c := mustRaw(t)(FromSlice([]int64{2, 0, 2}, nil))
		defer c.Release()
		v := mustRaw(t)(TakeAt(m, r, c))
		defer v.Release()
		wantInts(t, v, []int64{2, 3, 5})
	})

	t.Run("broadcastIndices", func(t *testing.T) {
		// Row index (2,1) against column index (3,) pairs every row with
		// every column.
		r := mustRaw(t)(FromSlice([]int64{0, 1}, Shape{2, 1}))
		defer r.Release()
		c := mustRaw(t)(FromSlice([]int64{0, 1, 2}, nil))
		defer c.Release()
		v := mustRaw(t)(TakeAt(m, r, c))
		defer v.Release()
		wantShape(t, v, Shape{2, 3})
		wantInts(t, v, []int64{0, 1, 2, 3, 4, 5})
	})

	t.Run("rankMismatch", func(t *testing.T) {
		r := mustRaw(t)(FromSlice([]int64{0}, nil))
		defer r.Release()
		if _, err := TakeAt(m, r); err == nil {
			t.Error("one index array for rank 2 should fail")
		}
	})
}

func TestPut(t *testing.T) {
	t.Run("vector", func(t *testing.T) {
		x := mustRaw(t)(Zeros(Int64, Shape{5}))
		defer x.Release()
		ix := mustRaw(t)(FromSlice([]int64{0, 2, -1}, nil))
		defer ix.Release()
		src := mustRaw(t)(FromSlice([]int64{7, 8, 9}, nil))
		defer src.Release()
		if err := Put(x, ix, src); err != nil {
			t.Fatal(err)
		}
		wantInts(t, x, []int64{7, 0, 8, 0, 9})
	})

	t.Run("scalarSource", func(t *testing.T) {
		x := mustRaw(t)(Zeros(Int64, Shape{4}))
		defer x.Release()
		ix := mustRaw(t)(FromSlice([]int64{1, 3}, nil))
		defer ix.Release()
		src := mustRaw(t)(FromAny(int64(5)))
		defer src.Release()
		if err := Put(x, ix, src); err != nil {
			t.Fatal(err)
		}
		wantInts(t, x, []int64{0, 5, 0, 5})
	})

	t.Run("rows", func(t *testing.T) {
		x := mustRaw(t)(Zeros(Int64, Shape{3, 2}))
		defer x.Release()
		ix := mustRaw(t)(FromSlice([]int64{2, 0}, nil))
		defer ix.Release()
		src := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4}, Shape{2, 2}))
		defer src.Release()
		if err := Put(x, ix, src); err != nil {
			t.Fatal(err)
		}
		wantInts(t, x, []int64{3, 4, 0, 0, 1, 2})
	})

	t.Run("duplicatesLastWins", func(t *testing.T) {
		x := mustRaw(t)(Zeros(Int64, Shape{3}))
		defer x.Release()
		ix := mustRaw(t)(FromSlice([]int64{1, 1}, nil))
		defer ix.Release()
		src := mustRaw(t)(FromSlice([]int64{5, 6}, nil))
		defer src.Release()
		if err := Put(x, ix, src); err != nil {
			t.Fatal(err)
		}
		wantInts(t, x, []int64{0, 6, 0})
	})

	t.Run("atomicOnBadIndex", func(t *testing.T) {
		x := mustRaw(t)(Zeros(Int64, Shape{3}))
		defer x.Release()
		ix := mustRaw(t)(FromSlice([]int64{0, 9}, nil))
		defer ix.Release()
		src := mustRaw(t)(FromSlice([]int64{1, 2}, nil))
		defer src.Release()
		var ie *IndexError
		if err := Put(x, ix, src); !errors.As(err, &ie) {
			t.Fatalf("want IndexError, got %v", err)
		}
		wantInts(t, x, []int64{0, 0, 0})
	})

	t.Run("casts", func(t *testing.T) {
		x := mustRaw(t)(Zeros(Float64, Shape{2}))
		defer x.Release()
		ix := mustRaw(t)(FromSlice([]int64{1}, nil))
		defer ix.Release()
		src := mustRaw(t)(FromAny(int64(3)))
		defer src.Release()
		if err := Put(x, ix, src); err != nil {
			t.Fatal(err)
		}
		wantFloats(t, x, []float64{0, 3})
	})
}

func TestPutAt(t *testing.T) {
	x := mustRaw(t)(Zeros(Int64, Shape{2, 3}))
	defer x.Release()
	r := mustRaw(t)(FromSlice([]int64{0, 1, 1}, nil))
	defer r.Release()
	c := mustRaw(t)(FromSlice([]int64{2, 0, 2}, nil))
	defer c.Release()
	src := mustRaw(t)(FromSlice([]int64{7, 8, 9}, nil))
	defer src.Release()

	if err := PutAt(x, []*Raw{r, c}, src); err != nil {
		t.Fatal(err)
	}
	wantInts(t, x, []int64{0, 0, 7, 8, 0, 9})

	// One bad coordinate leaves the array untouched.
	bad := mustRaw(t)(FromSlice([]int64{0, 5, 1}, nil))
	defer bad.Release()
	var ie *IndexError
	if err := PutAt(x, []*Raw{r, bad}, src); !errors.As(err, &ie) {
		t.Fatalf("want IndexError, got %v", err)
	}
	wantInts(t, x, []int64{0, 0, 7, 8, 0, 9})
}

func TestFancyRoundTrip(t *testing.T) {
	// Gathering then scattering through the same indices restores the
	// gathered elements.
	x := mustRaw(t)(FromSlice([]int64{9, 8, 7, 6, 5}, nil))
	defer x.Release()
	ix := mustRaw(t)(FromSlice([]int64{4, 2, 0}, nil))
	defer ix.Release()

	v := mustRaw(t)(Take(x, ix))
	defer v.Release()
	wantInts(t, v, []int64{5, 7, 9})

	y := mustRaw(t)(Zeros(Int64, Shape{5}))
	defer y.Release()
	if err := Put(y, ix, v); err != nil {
		t.Fatal(err)
	}
	wantInts(t, y, []int64{9, 0, 7, 0, 5})
}
