package array

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMatMulFloat(t *testing.T) {
	a := mustRaw(t)(FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}))
	defer a.Release()
	b := mustRaw(t)(FromSlice([]float64{7, 8, 9, 10, 11, 12}, Shape{3, 2}))
	defer b.Release()

	c := mustRaw(t)(MatMul(a, b))
	defer c.Release()
	wantShape(t, c, Shape{2, 2})
	wantFloats(t, c, []float64{58, 64, 139, 154})
}

func TestMatMulInt(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{1, 0, 0, 1}, Shape{2, 2}))
	defer a.Release()
	b := mustRaw(t)(FromSlice([]int64{5, 6, 7, 8}, Shape{2, 2}))
	defer b.Release()

	c := mustRaw(t)(MatMul(a, b))
	defer c.Release()
	if !c.DType().Equal(Int64) {
		t.Fatalf("dtype = %s, want int64", c.DType())
	}
	wantInts(t, c, []int64{5, 6, 7, 8})
}

func TestMatMulStridedOperand(t *testing.T) {
	// A transposed view multiplies without being materialized first.
	a := mustRaw(t)(FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2}))
	defer a.Release()
	at := mustRaw(t)(Transpose(a))
	defer at.Release()
	b := mustRaw(t)(FromSlice([]float64{1, 0, 0, 1}, Shape{2, 2}))
	defer b.Release()

	c := mustRaw(t)(MatMul(at, b))
	defer c.Release()
	wantFloats(t, c, []float64{1, 3, 2, 4})
}

func TestMatMulErrors(t *testing.T) {
	a := mustRaw(t)(FromSlice([]float64{1, 2, 3}, nil))
	defer a.Release()
	m := mustRaw(t)(Zeros(Float64, Shape{2, 3}))
	defer m.Release()

	var se *ShapeError
	if _, err := MatMul(a, m); !errors.As(err, &se) {
		t.Errorf("1-D operand: want ShapeError, got %v", err)
	}
	if _, err := MatMul(m, m); !errors.As(err, &se) {
		t.Errorf("inner mismatch: want ShapeError, got %v", err)
	}
}

func TestMatMulPromotes(t *testing.T) {
	i := mustRaw(t)(FromSlice([]int64{1, 2, 3, 4}, Shape{2, 2}))
	defer i.Release()
	f := mustRaw(t)(FromSlice([]float64{1, 0, 0, 1}, Shape{2, 2}))
	defer f.Release()

	c := mustRaw(t)(MatMul(i, f))
	defer c.Release()
	if !c.DType().Equal(Float64) {
		t.Fatalf("dtype = %s, want float64", c.DType())
	}
	wantFloats(t, c, []float64{1, 2, 3, 4})
}

func TestMatrixAdapter(t *testing.T) {
	a := mustRaw(t)(FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}))
	defer a.Release()

	m, err := Matrix(a)
	if err != nil {
		t.Fatal(err)
	}
	r, c := m.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("Dims = %d, %d, want 2, 3", r, c)
	}
	if m.At(1, 2) != 6 {
		t.Errorf("At(1,2) = %v, want 6", m.At(1, 2))
	}

	// The adapter shares the buffer: later writes show through.
	if err := a.SetAny(float64(-1), 0, 0); err != nil {
		t.Fatal(err)
	}
	if m.At(0, 0) != -1 {
		t.Errorf("At(0,0) = %v after write, want -1", m.At(0, 0))
	}

	// Integer arrays read as floats.
	i := mustRaw(t)(FromSlice([]int32{7, 8, 9, 10}, Shape{2, 2}))
	defer i.Release()
	im, err := Matrix(i)
	if err != nil {
		t.Fatal(err)
	}
	if im.At(1, 0) != 9 {
		t.Errorf("int At(1,0) = %v, want 9", im.At(1, 0))
	}

	v := mustRaw(t)(FromSlice([]float64{1, 2}, nil))
	defer v.Release()
	if _, err := Matrix(v); err == nil {
		t.Error("1-D array should not view as a matrix")
	}
	z := mustRaw(t)(Zeros(Complex128, Shape{2, 2}))
	defer z.Release()
	if _, err := Matrix(z); err == nil {
		t.Error("complex array should not view as a real matrix")
	}
}

func TestFromMatrix(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	a := mustRaw(t)(FromMatrix(d))
	defer a.Release()
	wantShape(t, a, Shape{2, 2})
	wantFloats(t, a, []float64{1, 2, 3, 4})

	// Transposed gonum views copy element by element.
	at := mustRaw(t)(FromMatrix(d.T()))
	defer at.Release()
	wantFloats(t, at, []float64{1, 3, 2, 4})
}
