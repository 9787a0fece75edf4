package array

import (
	"errors"
	"testing"
)

func pointType(t *testing.T) DataType {
	t.Helper()
	dt, err := StructOf(
		Field{Name: "x", Type: Float64},
		Field{Name: "y", Type: Float64},
		Field{Name: "id", Type: Int32},
	)
	if err != nil {
		t.Fatal(err)
	}
	return dt
}

func TestFieldView(t *testing.T) {
	dt := pointType(t)
	pts := mustRaw(t)(Zeros(dt, Shape{3}))
	defer pts.Release()

	xs := mustRaw(t)(FieldView(pts, "x"))
	defer xs.Release()
	wantShape(t, xs, Shape{3})
	if !xs.DType().Equal(Float64) {
		t.Fatalf("field dtype = %s, want float64", xs.DType())
	}

	// Strides still walk whole records.
	if xs.Strides()[0] != dt.Size() {
		t.Errorf("field stride = %d, want record size %d", xs.Strides()[0], dt.Size())
	}

	// Writes through the view land in the records.
	src := mustRaw(t)(FromSlice([]float64{1, 2, 3}, nil))
	defer src.Release()
	if err := Assign(xs, src); err != nil {
		t.Fatal(err)
	}
	ys := mustRaw(t)(FieldView(pts, "y"))
	defer ys.Release()
	wantFloats(t, ys, []float64{0, 0, 0})
	wantFloats(t, xs, []float64{1, 2, 3})

	ids := mustRaw(t)(FieldView(pts, "id"))
	defer ids.Release()
	if !ids.DType().Equal(Int32) {
		t.Errorf("id dtype = %s, want int32", ids.DType())
	}
}

func TestFieldViewErrors(t *testing.T) {
	dt := pointType(t)
	pts := mustRaw(t)(Zeros(dt, Shape{2}))
	defer pts.Release()

	var de *DTypeError
	if _, err := FieldView(pts, "z"); !errors.As(err, &de) {
		t.Errorf("unknown field: want DTypeError, got %v", err)
	}

	plain := mustRaw(t)(Zeros(Float64, Shape{2}))
	defer plain.Release()
	if _, err := FieldView(plain, "x"); !errors.As(err, &de) {
		t.Errorf("non-record array: want DTypeError, got %v", err)
	}
}

func TestFieldNames(t *testing.T) {
	dt := pointType(t)
	pts := mustRaw(t)(Zeros(dt, Shape{1}))
	defer pts.Release()

	names := FieldNames(pts)
	want := []string{"x", "y", "id"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, names[i], want[i])
		}
	}

	plain := mustRaw(t)(Zeros(Int64, Shape{1}))
	defer plain.Release()
	if FieldNames(plain) != nil {
		t.Error("non-record dtype should report no fields")
	}
}

func TestFieldViewComputes(t *testing.T) {
	// Field views feed straight into arithmetic: distance from origin
	// over a record array of points.
	dt, err := StructOf(
		Field{Name: "x", Type: Float64},
		Field{Name: "y", Type: Float64},
	)
	if err != nil {
		t.Fatal(err)
	}
	pts := mustRaw(t)(Zeros(dt, Shape{2}))
	defer pts.Release()

	xs := mustRaw(t)(FieldView(pts, "x"))
	defer xs.Release()
	ys := mustRaw(t)(FieldView(pts, "y"))
	defer ys.Release()
	xv := mustRaw(t)(FromSlice([]float64{3, 5}, nil))
	defer xv.Release()
	yv := mustRaw(t)(FromSlice([]float64{4, 12}, nil))
	defer yv.Release()
	if err := Assign(xs, xv); err != nil {
		t.Fatal(err)
	}
	if err := Assign(ys, yv); err != nil {
		t.Fatal(err)
	}

	xx := mustRaw(t)(Mul(xs, xs))
	defer xx.Release()
	yy := mustRaw(t)(Mul(ys, ys))
	defer yy.Release()
	ss := mustRaw(t)(Add(xx, yy))
	defer ss.Release()
	d := mustRaw(t)(Sqrt(ss))
	defer d.Release()
	wantFloats(t, d, []float64{5, 13})
}
