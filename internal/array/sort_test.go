package array

import (
	"errors"
	"sort"
	"testing"
)

func TestSortInPlace(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{2, 1, 4, 3, 5}, nil))
	defer a.Release()
	if err := Sort(a, 0); err != nil {
		t.Fatal(err)
	}
	wantInts(t, a, []int64{1, 2, 3, 4, 5})
}

func TestSortedLeavesInput(t *testing.T) {
	a := mustRaw(t)(FromSlice([]float64{3, 1, 2}, nil))
	defer a.Release()
	s := mustRaw(t)(Sorted(a, 0))
	defer s.Release()
	wantFloats(t, s, []float64{1, 2, 3})
	wantFloats(t, a, []float64{3, 1, 2})
}

func TestSortAxes(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{
		3, 1, 2,
		6, 5, 4,
	}, Shape{2, 3}))
	defer a.Release()

	rows := mustRaw(t)(Sorted(a, 1))
	defer rows.Release()
	wantInts(t, rows, []int64{1, 2, 3, 4, 5, 6})

	b := mustRaw(t)(FromSlice([]int64{
		6, 1,
		3, 5,
	}, Shape{2, 2}))
	defer b.Release()
	cols := mustRaw(t)(Sorted(b, 0))
	defer cols.Release()
	wantInts(t, cols, []int64{3, 1, 6, 5})
}

func TestSortStridedView(t *testing.T) {
	// Sorting a slice view must only reorder the viewed elements.
	x := mustRaw(t)(FromSlice([]int64{9, 0, 7, 0, 5, 0}, nil))
	defer x.Release()
	v := mustRaw(t)(Slice(x, Stepped(2)))
	defer v.Release()
	if err := Sort(v, 0); err != nil {
		t.Fatal(err)
	}
	wantInts(t, x, []int64{5, 0, 7, 0, 9, 0})
}

func TestSortStrings(t *testing.T) {
	a := mustRaw(t)(FromStrings([]string{"pear", "apple", "fig"}, 0))
	defer a.Release()
	if err := Sort(a, 0); err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"apple", "fig", "pear"} {
		v, _ := a.GetAny(i)
		if v.(string) != want {
			t.Errorf("a[%d] = %q, want %q", i, v, want)
		}
	}
}

func TestSortComplexRejected(t *testing.T) {
	a := mustRaw(t)(FromSlice([]complex128{2, 1}, nil))
	defer a.Release()
	var de *DTypeError
	if err := Sort(a, 0); !errors.As(err, &de) {
		t.Errorf("want DTypeError, got %v", err)
	}
	if _, err := Argsort(a, 0); !errors.As(err, &de) {
		t.Errorf("argsort: want DTypeError, got %v", err)
	}
}

func TestArgsort(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{2, 1, 4, 3, 5}, nil))
	defer a.Release()

	ix := mustRaw(t)(Argsort(a, 0))
	defer ix.Release()
	if !ix.DType().Equal(Int64) {
		t.Fatalf("dtype = %s, want int64", ix.DType())
	}
	wantInts(t, ix, []int64{1, 0, 3, 2, 4})

	// Gathering through the argsort order reproduces the sorted array.
	g := mustRaw(t)(Take(a, ix))
	defer g.Release()
	s := mustRaw(t)(Sorted(a, 0))
	defer s.Release()
	wantInts(t, g, intsOf(t, s))
}

func TestArgsortStable(t *testing.T) {
	// Equal keys keep their original relative order.
	a := mustRaw(t)(FromSlice([]int64{1, 0, 1, 0}, nil))
	defer a.Release()
	ix := mustRaw(t)(Argsort(a, 0))
	defer ix.Release()
	wantInts(t, ix, []int64{1, 3, 0, 2})
}

func TestArgsortAxis(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{
		3, 1, 2,
		4, 6, 5,
	}, Shape{2, 3}))
	defer a.Release()
	ix := mustRaw(t)(Argsort(a, 1))
	defer ix.Release()
	wantShape(t, ix, Shape{2, 3})
	wantInts(t, ix, []int64{1, 2, 0, 0, 2, 1})
}

func TestPartition(t *testing.T) {
	vals := []int64{9, 4, 7, 1, 8, 3, 6, 2, 5, 0}

	for _, k := range []int{0, 1, 4, 9, 10} {
		a := mustRaw(t)(FromSlice(append([]int64(nil), vals...), nil))
		if err := Partition(a, k, 0); err != nil {
			a.Release()
			t.Fatalf("k=%d: %v", k, err)
		}
		got := intsOf(t, a)

		// Same multiset.
		sorted := append([]int64(nil), got...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		for i := range sorted {
			if sorted[i] != int64(i) {
				t.Fatalf("k=%d: multiset changed: %v", k, got)
			}
		}
		// The k smallest values sit in the first k slots; neither side is
		// internally ordered.
		for i := 0; i < k; i++ {
			if got[i] >= int64(k) {
				t.Errorf("k=%d: got[%d]=%d belongs in the upper part: %v", k, i, got[i], got)
			}
		}
		a.Release()
	}

	a := mustRaw(t)(FromSlice(vals, nil))
	defer a.Release()
	var ie *IndexError
	if err := Partition(a, 11, 0); !errors.As(err, &ie) {
		t.Errorf("k out of range: want IndexError, got %v", err)
	}
	if err := Partition(a, -1, 0); !errors.As(err, &ie) {
		t.Errorf("negative k: want IndexError, got %v", err)
	}
}

func TestArgpartition(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{5, 1, 4, 2, 3}, nil))
	defer a.Release()

	k := 2
	ix := mustRaw(t)(Argpartition(a, k, 0))
	defer ix.Release()

	// Indices form a permutation, and gathering through them yields a
	// partitioned arrangement.
	seen := make([]bool, 5)
	for _, v := range intsOf(t, ix) {
		if v < 0 || v >= 5 || seen[v] {
			t.Fatalf("not a permutation: %v", intsOf(t, ix))
		}
		seen[v] = true
	}
	g := mustRaw(t)(Take(a, ix))
	defer g.Release()
	got := intsOf(t, g)
	if got[k] != 3 {
		t.Errorf("element at k = %d, want 3", got[k])
	}
	for i := 0; i < k; i++ {
		if got[i] > got[k] {
			t.Errorf("got[%d]=%d exceeds pivot", i, got[i])
		}
	}
	for i := k + 1; i < len(got); i++ {
		if got[i] < got[k] {
			t.Errorf("got[%d]=%d below pivot", i, got[i])
		}
	}
}

func TestPartitionAxis(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{
		9, 1, 5, 3,
		2, 8, 4, 6,
	}, Shape{2, 4}))
	defer a.Release()

	if err := Partition(a, 1, 1); err != nil {
		t.Fatal(err)
	}
	got := intsOf(t, a)
	for r := 0; r < 2; r++ {
		lane := got[r*4 : r*4+4]
		for i := 0; i < 1; i++ {
			if lane[i] > lane[1] {
				t.Errorf("row %d: %v not partitioned at 1", r, lane)
			}
		}
		for i := 2; i < 4; i++ {
			if lane[i] < lane[1] {
				t.Errorf("row %d: %v not partitioned at 1", r, lane)
			}
		}
	}
}
