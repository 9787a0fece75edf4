package array

import (
	"gonum.org/v1/gonum/mat"

	"github.com/numgo-dev/numgo/internal/parallel"
)

// MatMul multiplies two 2-D arrays. Operand dtypes promote to a common
// kind; the inner dimensions must agree. Float64 operands route through
// gonum's mat.Dense, everything else runs a cache-friendly loop over
// dense copies.
//
// Example:
//
//	c, _ := array.MatMul(a, b) // shape [a.Shape()[0], b.Shape()[1]]
func MatMul(a, b *Raw) (*Raw, error) {
	if len(a.shape) != 2 || len(b.shape) != 2 {
		return nil, shapeErrorf("MatMul", "need 2-D operands, got shapes %v and %v", a.shape, b.shape)
	}
	if a.shape[1] != b.shape[0] {
		return nil, shapeErrorf("MatMul", "inner dimensions disagree: %v and %v", a.shape, b.shape)
	}
	dt, err := PromoteTypes(a.dtype, b.dtype)
	if err != nil {
		return nil, err
	}
	if !dt.IsNumeric() {
		return nil, dtypeErrorf("MatMul", "not defined for %s", dt)
	}
	if dt.kind == KindBool {
		dt = Int64
	}
	ac, err := Cast(a, dt)
	if err != nil {
		return nil, err
	}
	defer ac.Release()
	bc, err := Cast(b, dt)
	if err != nil {
		return nil, err
	}
	defer bc.Release()
	if dt.kind == KindFloat64 {
		return matmulGonum(ac, bc)
	}
	out, err := NewRaw(dt, Shape{ac.shape[0], bc.shape[1]})
	if err != nil {
		return nil, err
	}
	switch dt.kind {
	case KindInt8:
		matmulLoop[int8](out, ac, bc)
	case KindInt16:
		matmulLoop[int16](out, ac, bc)
	case KindInt32:
		matmulLoop[int32](out, ac, bc)
	case KindInt64:
		matmulLoop[int64](out, ac, bc)
	case KindUint8:
		matmulLoop[uint8](out, ac, bc)
	case KindUint16:
		matmulLoop[uint16](out, ac, bc)
	case KindUint32:
		matmulLoop[uint32](out, ac, bc)
	case KindUint64:
		matmulLoop[uint64](out, ac, bc)
	case KindFloat32:
		matmulLoop[float32](out, ac, bc)
	case KindComplex64:
		matmulLoop[complex64](out, ac, bc)
	case KindComplex128:
		matmulLoop[complex128](out, ac, bc)
	}
	return out, nil
}

func matmulGonum(a, b *Raw) (*Raw, error) {
	am, err := Matrix(a)
	if err != nil {
		return nil, err
	}
	bm, err := Matrix(b)
	if err != nil {
		return nil, err
	}
	var c mat.Dense
	c.Mul(am, bm)
	return FromMatrix(&c)
}

// matmulLoop runs an i-k-j product over dense row-major operands, so
// the inner loop streams both b and out rows. Output rows split across
// goroutines for large results.
func matmulLoop[T signedInt | unsignedInt | ~float32 | anyComplex](out, a, b *Raw) {
	m, k, n := a.shape[0], a.shape[1], b.shape[1]
	av := dataOf[T](a)
	bv := dataOf[T](b)
	ov := dataOf[T](out)
	cfg := kernelCfg
	cfg.MinSpan = max(1, cfg.MinSpan/max(1, k*n))
	parallel.For(m, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			arow := av[i*k : (i+1)*k]
			orow := ov[i*n : (i+1)*n]
			for p, x := range arow {
				if x == 0 {
					continue
				}
				brow := bv[p*n : (p+1)*n]
				for j, y := range brow {
					orow[j] += x * y
				}
			}
		}
	})
}
