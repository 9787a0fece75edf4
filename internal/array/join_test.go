package array

import (
	"errors"
	"testing"
)

func TestConcat(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4, 5, 6}, Shape{2, 3}))
	defer a.Release()

	t.Run("axis0", func(t *testing.T) {
		c := mustRaw(t)(Concat(0, a, a))
		defer c.Release()
		wantShape(t, c, Shape{4, 3})
		wantInts(t, c, []int64{1, 2, 3, 4, 5, 6, 1, 2, 3, 4, 5, 6})
	})

	t.Run("axis1", func(t *testing.T) {
		c := mustRaw(t)(Concat(1, a, a))
		defer c.Release()
		wantShape(t, c, Shape{2, 6})
		wantInts(t, c, []int64{1, 2, 3, 1, 2, 3, 4, 5, 6, 4, 5, 6})
	})

	t.Run("promotes", func(t *testing.T) {
		f := mustRaw(t)(FromSlice([]float64{0.5, 1.5, 2.5}, Shape{1, 3}))
		defer f.Release()
		c := mustRaw(t)(Concat(0, a, f))
		defer c.Release()
		if !c.DType().Equal(Float64) {
			t.Errorf("dtype = %s, want float64", c.DType())
		}
		wantFloats(t, c, []float64{1, 2, 3, 4, 5, 6, 0.5, 1.5, 2.5})
	})

	t.Run("mismatch", func(t *testing.T) {
		b := mustRaw(t)(Zeros(Int64, Shape{2, 4}))
		defer b.Release()
		var se *ShapeError
		_, err := Concat(0, a, b)
		if !errors.As(err, &se) {
			t.Errorf("want ShapeError, got %v", err)
		}
	})

	t.Run("copies", func(t *testing.T) {
		c := mustRaw(t)(Concat(0, a, a))
		defer c.Release()
		if err := c.SetAny(int64(0), 0, 0); err != nil {
			t.Fatal(err)
		}
		v, _ := a.GetAny(0, 0)
		if v.(int64) != 1 {
			t.Error("concat result must not alias its inputs")
		}
	})
}

func TestStack(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{1, 2, 3}, nil))
	defer a.Release()
	b := mustRaw(t)(FromSlice([]int64{4, 5, 6}, nil))
	defer b.Release()

	s := mustRaw(t)(Stack(0, a, b))
	defer s.Release()
	wantShape(t, s, Shape{2, 3})
	wantInts(t, s, []int64{1, 2, 3, 4, 5, 6})

	s1 := mustRaw(t)(Stack(1, a, b))
	defer s1.Release()
	wantShape(t, s1, Shape{3, 2})
	wantInts(t, s1, []int64{1, 4, 2, 5, 3, 6})
}

func TestVStackHStack(t *testing.T) {
	v1 := mustRaw(t)(FromSlice([]int64{1, 2, 3}, nil))
	defer v1.Release()
	v2 := mustRaw(t)(FromSlice([]int64{4, 5, 6}, nil))
	defer v2.Release()

	vs := mustRaw(t)(VStack(v1, v2))
	defer vs.Release()
	wantShape(t, vs, Shape{2, 3})
	wantInts(t, vs, []int64{1, 2, 3, 4, 5, 6})

	hs := mustRaw(t)(HStack(v1, v2))
	defer hs.Release()
	wantShape(t, hs, Shape{6})
	wantInts(t, hs, []int64{1, 2, 3, 4, 5, 6})

	m := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4}, Shape{2, 2}))
	defer m.Release()
	hm := mustRaw(t)(HStack(m, m))
	defer hm.Release()
	wantShape(t, hm, Shape{2, 4})
	wantInts(t, hm, []int64{1, 2, 1, 2, 3, 4, 3, 4})
}

func TestSplitViews(t *testing.T) {
	a := mustRaw(t)(Arange(Int64, 0, 6, 1))
	defer a.Release()

	parts, err := Split(a, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		for _, p := range parts {
			p.Release()
		}
	}()
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}
	wantInts(t, parts[1], []int64{2, 3})

	// Split returns views: mutating a part mutates the source.
	if err := parts[1].SetAny(int64(-1), 0); err != nil {
		t.Fatal(err)
	}
	wantInts(t, a, []int64{0, 1, -1, 3, 4, 5})

	if _, err := Split(a, 0, 4); err == nil {
		t.Error("uneven split should fail")
	}
}

func TestSplitAtConcatInverse(t *testing.T) {
	a := mustRaw(t)(Arange(Int64, 0, 10, 1))
	defer a.Release()

	tests := []struct {
		name   string
		points []int
		sizes  []int
	}{
		{"middle", []int{3, 7}, []int{3, 4, 3}},
		{"repeated", []int{4, 4}, []int{4, 0, 6}},
		{"edges", []int{0, 10}, []int{0, 10, 0}},
		{"none", nil, []int{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := SplitAt(a, 0, tt.points...)
			if err != nil {
				t.Fatal(err)
			}
			defer func() {
				for _, p := range parts {
					p.Release()
				}
			}()
			for i, p := range parts {
				if p.Shape()[0] != tt.sizes[i] {
					t.Errorf("part %d size = %d, want %d", i, p.Shape()[0], tt.sizes[i])
				}
			}
			back := mustRaw(t)(Concat(0, parts...))
			defer back.Release()
			wantInts(t, back, intsOf(t, a))
		})
	}

	var se *ShapeError
	_, err := SplitAt(a, 0, 11)
	if !errors.As(err, &se) {
		t.Errorf("out-of-range point: want ShapeError, got %v", err)
	}
	_, err = SplitAt(a, 0, 5, 3)
	if !errors.As(err, &se) {
		t.Errorf("decreasing points: want ShapeError, got %v", err)
	}
}
