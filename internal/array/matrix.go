package array

import "gonum.org/v1/gonum/mat"

// matrixView adapts a 2-D numeric Raw to gonum's mat.Matrix so arrays
// plug into gonum solvers and renderers without copying. Reads go
// through the float64 lane; the adapter is read-only.
type matrixView struct {
	r *Raw
}

// Matrix exposes a 2-D real-valued array as a gonum mat.Matrix. The
// adapter shares the array's buffer; it does not copy.
func Matrix(r *Raw) (mat.Matrix, error) {
	if len(r.shape) != 2 {
		return nil, shapeErrorf("Matrix", "need a 2-D array, got shape %v", r.shape)
	}
	if !r.dtype.IsNumeric() || r.dtype.IsComplex() {
		return nil, dtypeErrorf("Matrix", "cannot view %s as a real matrix", r.dtype)
	}
	return &matrixView{r: r}, nil
}

func (m *matrixView) Dims() (rows, cols int) {
	return m.r.shape[0], m.r.shape[1]
}

func (m *matrixView) At(i, j int) float64 {
	if i < 0 || i >= m.r.shape[0] || j < 0 || j >= m.r.shape[1] {
		panic("matrix index out of range")
	}
	off := m.r.off + i*m.r.strides[0] + j*m.r.strides[1]
	return loadFloat(m.r.dtype, m.r.buf.data, off)
}

func (m *matrixView) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// FromMatrix copies a gonum matrix into a fresh float64 array.
func FromMatrix(m mat.Matrix) (*Raw, error) {
	rows, cols := m.Dims()
	out, err := NewRawUninit(Float64, Shape{rows, cols})
	if err != nil {
		return nil, err
	}
	data := dataOf[float64](out)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = m.At(i, j)
		}
	}
	return out, nil
}
