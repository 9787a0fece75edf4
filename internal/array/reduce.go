package array

import (
	"unsafe"

	"gonum.org/v1/gonum/floats"
)

// reducePlan resolves the dtype a reduction computes in. Only the
// associative operations reduce; Add and Mul over bool count in int64,
// everything else keeps the operand dtype.
func reducePlan(op BinOp, dt DataType) (DataType, error) {
	switch op {
	case OpAnd, OpOr, OpXor:
		if dt.kind != KindBool {
			return DataType{}, dtypeErrorf(op.String(), "requires bool operand, got %s", dt)
		}
		return Bool, nil
	case OpAdd, OpMul:
		if dt.kind == KindBool {
			return Int64, nil
		}
		if !dt.IsNumeric() {
			return DataType{}, dtypeErrorf(op.String(), "cannot reduce %s", dt)
		}
		return dt, nil
	case OpMin, OpMax:
		if !dt.IsNumeric() || dt.IsComplex() {
			return DataType{}, dtypeErrorf(op.String(), "cannot reduce %s", dt)
		}
		return dt, nil
	default:
		return DataType{}, dtypeErrorf(op.String(), "is not an associative reduction")
	}
}

// reduceIdentity returns the value an empty reduction yields, when the
// operation has one. Min and Max do not.
func reduceIdentity(op BinOp) (any, bool) {
	switch op {
	case OpAdd, OpXor:
		return 0, true
	case OpMul:
		return 1, true
	case OpAnd:
		return true, true
	case OpOr:
		return false, true
	default:
		return nil, false
	}
}

// axisRemoved returns the shape (or strides) with one dimension cut out.
func axisRemoved[S ~[]int](s S, ax int) S {
	out := make(S, 0, len(s)-1)
	out = append(out, s[:ax]...)
	return append(out, s[ax+1:]...)
}

// reduceLanes folds f left-to-right along the axis of x, one result per
// lane, seeding from the lane's first element. Lanes must be non-empty.
func reduceLanes[T any](out, x *Raw, axis int, f func(T, T) T) {
	n := x.shape[axis]
	st := x.strides[axis]
	outer := axisRemoved(x.shape, axis)
	it := newNditer(outer, []int{out.off, x.off}, []Strides{out.strides, axisRemoved(x.strides, axis)})
	for ; !it.done(); it.advance() {
		off := it.offs[1]
		acc := load[T](x.buf.data, off)
		for i := 1; i < n; i++ {
			off += st
			acc = f(acc, load[T](x.buf.data, off))
		}
		store(out.buf.data, it.offs[0], acc)
	}
}

// reduceFloat64Dense handles dense float64 lanes through gonum, which
// vectorizes the common Sum/Min/Max case.
func reduceFloat64Dense(out, x *Raw, axis int, op BinOp) bool {
	if x.dtype.kind != KindFloat64 || x.strides[axis] != x.dtype.size || x.shape[axis] == 0 {
		return false
	}
	var fold func([]float64) float64
	switch op {
	case OpAdd:
		fold = floats.Sum
	case OpMin:
		fold = floats.Min
	case OpMax:
		fold = floats.Max
	default:
		return false
	}
	n := x.shape[axis]
	outer := axisRemoved(x.shape, axis)
	it := newNditer(outer, []int{out.off, x.off}, []Strides{out.strides, axisRemoved(x.strides, axis)})
	for ; !it.done(); it.advance() {
		lane := unsafe.Slice((*float64)(unsafe.Pointer(&x.buf.data[it.offs[1]])), n)
		store(out.buf.data, it.offs[0], fold(lane))
	}
	return true
}

func reduceKernel(out, x *Raw, axis int, op BinOp) error {
	if reduceFloat64Dense(out, x, axis, op) {
		return nil
	}
	switch x.dtype.kind {
	case KindBool:
		switch op {
		case OpAnd:
			reduceLanes(out, x, axis, func(a, b bool) bool { return a && b })
		case OpOr:
			reduceLanes(out, x, axis, func(a, b bool) bool { return a || b })
		case OpXor:
			reduceLanes(out, x, axis, func(a, b bool) bool { return a != b })
		default:
			return dtypeErrorf(op.String(), "cannot reduce bool")
		}
		return nil
	case KindInt8:
		return reduceReal[int8](out, x, axis, op)
	case KindInt16:
		return reduceReal[int16](out, x, axis, op)
	case KindInt32:
		return reduceReal[int32](out, x, axis, op)
	case KindInt64:
		return reduceReal[int64](out, x, axis, op)
	case KindUint8:
		return reduceReal[uint8](out, x, axis, op)
	case KindUint16:
		return reduceReal[uint16](out, x, axis, op)
	case KindUint32:
		return reduceReal[uint32](out, x, axis, op)
	case KindUint64:
		return reduceReal[uint64](out, x, axis, op)
	case KindFloat32:
		return reduceReal[float32](out, x, axis, op)
	case KindFloat64:
		return reduceReal[float64](out, x, axis, op)
	case KindComplex64:
		return reduceCplx[complex64](out, x, axis, op)
	case KindComplex128:
		return reduceCplx[complex128](out, x, axis, op)
	default:
		return dtypeErrorf(op.String(), "cannot reduce %s", x.dtype)
	}
}

func reduceReal[T realOrdered](out, x *Raw, axis int, op BinOp) error {
	switch op {
	case OpAdd:
		reduceLanes(out, x, axis, func(a, b T) T { return a + b })
	case OpMul:
		reduceLanes(out, x, axis, func(a, b T) T { return a * b })
	case OpMin:
		reduceLanes(out, x, axis, func(a, b T) T {
			if b < a {
				return b
			}
			return a
		})
	case OpMax:
		reduceLanes(out, x, axis, func(a, b T) T {
			if b > a {
				return b
			}
			return a
		})
	default:
		return dtypeErrorf(op.String(), "cannot reduce %s", x.dtype)
	}
	return nil
}

func reduceCplx[C anyComplex](out, x *Raw, axis int, op BinOp) error {
	switch op {
	case OpAdd:
		reduceLanes(out, x, axis, func(a, b C) C { return a + b })
	case OpMul:
		reduceLanes(out, x, axis, func(a, b C) C { return a * b })
	default:
		return dtypeErrorf(op.String(), "cannot reduce %s", x.dtype)
	}
	return nil
}

// ReduceAxis folds an associative operation along one axis, producing an
// array one dimension smaller (or the same rank with a unit axis when
// keepdims is set). Lanes fold left-to-right from their first element;
// an empty axis yields the operation's identity, and errors for Min and
// Max, which have none.
//
// Example:
//
//	rowSums, _ := array.ReduceAxis(array.OpAdd, a, 1, false)
func ReduceAxis(op BinOp, x *Raw, axis int, keepdims bool) (*Raw, error) {
	ax, err := normAxis(op.String(), axis, len(x.shape))
	if err != nil {
		return nil, err
	}
	compute, err := reducePlan(op, x.dtype)
	if err != nil {
		return nil, err
	}
	if x.shape[ax] == 0 {
		id, ok := reduceIdentity(op)
		if !ok {
			return nil, shapeErrorf(op.String(), "zero-size axis %d has no identity to reduce to", ax)
		}
		out, err := NewRawUninit(compute, axisRemoved(x.shape, ax))
		if err != nil {
			return nil, err
		}
		if err := fillRaw(out, id); err != nil {
			out.Release()
			return nil, err
		}
		return reduceKeepdims(out, ax, keepdims)
	}
	xc := x
	if !x.dtype.Equal(compute) {
		c, err := Cast(x, compute)
		if err != nil {
			return nil, err
		}
		defer c.Release()
		xc = c
	}
	out, err := NewRawUninit(compute, axisRemoved(xc.shape, ax))
	if err != nil {
		return nil, err
	}
	if err := reduceKernel(out, xc, ax, op); err != nil {
		out.Release()
		return nil, err
	}
	return reduceKeepdims(out, ax, keepdims)
}

// reduceKeepdims reinserts the reduced axis as a unit dimension when
// requested. The reshape is always a pure view on the dense result.
func reduceKeepdims(out *Raw, ax int, keepdims bool) (*Raw, error) {
	if !keepdims {
		return out, nil
	}
	kept, err := ExpandDims(out, ax)
	out.Release()
	return kept, err
}

// Reduce folds an associative operation over every element in row-major
// order, producing a rank-0 array.
func Reduce(op BinOp, x *Raw) (*Raw, error) {
	flat, err := Ravel(x)
	if err != nil {
		return nil, err
	}
	defer flat.Release()
	return ReduceAxis(op, flat, 0, false)
}

// Accumulate folds like ReduceAxis but keeps every partial result, so
// the output has the same shape as the input.
//
// Example:
//
//	running, _ := array.Accumulate(array.OpAdd, a, 0)
func Accumulate(op BinOp, x *Raw, axis int) (*Raw, error) {
	ax, err := normAxis(op.String(), axis, len(x.shape))
	if err != nil {
		return nil, err
	}
	compute, err := reducePlan(op, x.dtype)
	if err != nil {
		return nil, err
	}
	xc := x.Clone()
	if !x.dtype.Equal(compute) {
		c, err := Cast(x, compute)
		if err != nil {
			return nil, err
		}
		xc.Release()
		xc = c
	}
	defer xc.Release()
	out, err := NewRawUninit(compute, xc.shape)
	if err != nil {
		return nil, err
	}
	if out.NumElements() == 0 {
		return out, nil
	}
	// Seed the first slot of every lane, then fold the running value
	// forward: out[i] = op(out[i-1], x[i]) along the axis.
	first, _ := Sel(xc, ax, 0)
	outFirst, _ := Sel(out, ax, 0)
	err = castInto(outFirst, first)
	first.Release()
	outFirst.Release()
	if err != nil {
		out.Release()
		return nil, err
	}
	n := xc.shape[ax]
	for i := 1; i < n; i++ {
		prev, _ := Sel(out, ax, i-1)
		cur, _ := Sel(xc, ax, i)
		dst, _ := Sel(out, ax, i)
		err := ApplyInto(dst, op, prev, cur)
		prev.Release()
		cur.Release()
		dst.Release()
		if err != nil {
			out.Release()
			return nil, err
		}
	}
	return out, nil
}

// Outer evaluates op over every pair drawn from two 1-D arrays: entry
// [i, j] of the m×n result is op(a[i], b[j]).
func Outer(op BinOp, a, b *Raw) (*Raw, error) {
	if len(a.shape) != 1 || len(b.shape) != 1 {
		return nil, shapeErrorf(op.String(), "outer product needs 1-D operands, got ranks %d and %d", len(a.shape), len(b.shape))
	}
	col, err := Reshape(a, Shape{a.shape[0], 1})
	if err != nil {
		return nil, err
	}
	defer col.Release()
	return Apply(op, col, b)
}

// Named reductions over the whole array (rank-0 result) and per axis.

func Sum(x *Raw) (*Raw, error)  { return Reduce(OpAdd, x) }
func Prod(x *Raw) (*Raw, error) { return Reduce(OpMul, x) }
func Min(x *Raw) (*Raw, error)  { return Reduce(OpMin, x) }
func Max(x *Raw) (*Raw, error)  { return Reduce(OpMax, x) }

func SumAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return ReduceAxis(OpAdd, x, axis, keepdims)
}

func ProdAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return ReduceAxis(OpMul, x, axis, keepdims)
}

func MinAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return ReduceAxis(OpMin, x, axis, keepdims)
}

func MaxAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return ReduceAxis(OpMax, x, axis, keepdims)
}

// Mean averages every element. Integer and bool input averages in
// float64; float and complex input keeps its dtype.
func Mean(x *Raw) (*Raw, error) {
	s, err := Sum(x)
	if err != nil {
		return nil, err
	}
	defer s.Release()
	return ApplyScalar(OpDiv, s, float64(x.NumElements()))
}

// MeanAxis averages along one axis.
func MeanAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	ax, err := normAxis("Mean", axis, len(x.shape))
	if err != nil {
		return nil, err
	}
	s, err := SumAxis(x, ax, keepdims)
	if err != nil {
		return nil, err
	}
	defer s.Release()
	return ApplyScalar(OpDiv, s, float64(x.shape[ax]))
}

// Var computes the population variance (dividing by N) of every
// element, always in floating point.
func Var(x *Raw) (*Raw, error) {
	flat, err := Ravel(x)
	if err != nil {
		return nil, err
	}
	defer flat.Release()
	return VarAxis(flat, 0, false)
}

// VarAxis computes the population variance along one axis as the mean
// of squared deviations from the lane mean.
func VarAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	m, err := MeanAxis(x, axis, true)
	if err != nil {
		return nil, err
	}
	defer m.Release()
	d, err := Sub(x, m)
	if err != nil {
		return nil, err
	}
	defer d.Release()
	sq, err := Mul(d, d)
	if err != nil {
		return nil, err
	}
	defer sq.Release()
	return MeanAxis(sq, axis, keepdims)
}

// Std is the square root of Var.
func Std(x *Raw) (*Raw, error) {
	v, err := Var(x)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	return Sqrt(v)
}

// StdAxis is the square root of VarAxis.
func StdAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	v, err := VarAxis(x, axis, keepdims)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	return Sqrt(v)
}

// AnyTrue reports whether any element of a bool array is true. An
// empty array yields false.
func AnyTrue(x *Raw) (bool, error) {
	r, err := Reduce(OpOr, x)
	if err != nil {
		return false, err
	}
	defer r.Release()
	v, err := r.ItemAny()
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// AllTrue reports whether every element of a bool array is true. An
// empty array yields true.
func AllTrue(x *Raw) (bool, error) {
	r, err := Reduce(OpAnd, x)
	if err != nil {
		return false, err
	}
	defer r.Release()
	v, err := r.ItemAny()
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// AnyAxis reduces with logical OR along one axis.
func AnyAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return ReduceAxis(OpOr, x, axis, keepdims)
}

// AllAxis reduces with logical AND along one axis.
func AllAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return ReduceAxis(OpAnd, x, axis, keepdims)
}

// CumSum keeps the running sum along one axis.
func CumSum(x *Raw, axis int) (*Raw, error) {
	return Accumulate(OpAdd, x, axis)
}

// CumProd keeps the running product along one axis.
func CumProd(x *Raw, axis int) (*Raw, error) {
	return Accumulate(OpMul, x, axis)
}

// argLanes scans each lane for the extreme element's position, writing
// int64 positions into out. pick reports whether candidate b beats the
// current best a.
func argLanes[T realOrdered](out, x *Raw, axis int, pick func(a, b T) bool) {
	n := x.shape[axis]
	st := x.strides[axis]
	outer := axisRemoved(x.shape, axis)
	it := newNditer(outer, []int{out.off, x.off}, []Strides{out.strides, axisRemoved(x.strides, axis)})
	for ; !it.done(); it.advance() {
		off := it.offs[1]
		best := load[T](x.buf.data, off)
		bestAt := 0
		for i := 1; i < n; i++ {
			off += st
			if v := load[T](x.buf.data, off); pick(best, v) {
				best, bestAt = v, i
			}
		}
		store(out.buf.data, it.offs[0], int64(bestAt))
	}
}

func argReduceAxis(op string, x *Raw, axis int, keepdims, wantMax bool) (*Raw, error) {
	ax, err := normAxis(op, axis, len(x.shape))
	if err != nil {
		return nil, err
	}
	if x.shape[ax] == 0 {
		return nil, shapeErrorf(op, "zero-size axis %d has no extreme element", ax)
	}
	xc := x.Clone()
	if x.dtype.kind == KindBool {
		c, err := Cast(x, Uint8)
		if err != nil {
			return nil, err
		}
		xc.Release()
		xc = c
	}
	defer xc.Release()
	if !xc.dtype.IsNumeric() || xc.dtype.IsComplex() {
		return nil, dtypeErrorf(op, "ordering is not defined for %s", x.dtype)
	}
	out, err := NewRawUninit(Int64, axisRemoved(xc.shape, ax))
	if err != nil {
		return nil, err
	}
	dispatch := func(pickLess bool) {
		switch xc.dtype.kind {
		case KindInt8:
			argPick[int8](out, xc, ax, pickLess)
		case KindInt16:
			argPick[int16](out, xc, ax, pickLess)
		case KindInt32:
			argPick[int32](out, xc, ax, pickLess)
		case KindInt64:
			argPick[int64](out, xc, ax, pickLess)
		case KindUint8:
			argPick[uint8](out, xc, ax, pickLess)
		case KindUint16:
			argPick[uint16](out, xc, ax, pickLess)
		case KindUint32:
			argPick[uint32](out, xc, ax, pickLess)
		case KindUint64:
			argPick[uint64](out, xc, ax, pickLess)
		case KindFloat32:
			argPick[float32](out, xc, ax, pickLess)
		case KindFloat64:
			argPick[float64](out, xc, ax, pickLess)
		}
	}
	dispatch(!wantMax)
	return reduceKeepdims(out, ax, keepdims)
}

func argPick[T realOrdered](out, x *Raw, axis int, pickLess bool) {
	if pickLess {
		argLanes(out, x, axis, func(a, b T) bool { return b < a })
		return
	}
	argLanes(out, x, axis, func(a, b T) bool { return b > a })
}

// ArgMax returns the row-major position of the largest element. Ties
// resolve to the earliest position.
func ArgMax(x *Raw) (int, error) {
	return argItem("ArgMax", x, true)
}

// ArgMin returns the row-major position of the smallest element. Ties
// resolve to the earliest position.
func ArgMin(x *Raw) (int, error) {
	return argItem("ArgMin", x, false)
}

func argItem(op string, x *Raw, wantMax bool) (int, error) {
	flat, err := Ravel(x)
	if err != nil {
		return 0, err
	}
	defer flat.Release()
	r, err := argReduceAxis(op, flat, 0, false, wantMax)
	if err != nil {
		return 0, err
	}
	defer r.Release()
	v, err := r.ItemAny()
	if err != nil {
		return 0, err
	}
	return int(v.(int64)), nil
}

// ArgMaxAxis returns per-lane positions of the largest element along
// one axis, as int64.
func ArgMaxAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return argReduceAxis("ArgMax", x, axis, keepdims, true)
}

// ArgMinAxis returns per-lane positions of the smallest element along
// one axis, as int64.
func ArgMinAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return argReduceAxis("ArgMin", x, axis, keepdims, false)
}
