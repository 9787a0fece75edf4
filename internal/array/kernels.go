package array

import (
	"bytes"
	"math"
	"math/cmplx"
	"unsafe"

	"github.com/chewxy/math32"

	"github.com/numgo-dev/numgo/internal/parallel"
)

// kernelCfg controls goroutine splitting for dense loops. Strided and
// broadcast paths always run serially; either way an operation returns
// only after every element is written.
var kernelCfg = parallel.DefaultConfig()

// SetParallelism caps the goroutines dense kernels may use. Values of
// one or less force strictly serial execution.
func SetParallelism(n int) {
	if n <= 1 {
		kernelCfg = parallel.Serial()
		return
	}
	cfg := parallel.DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = n
	kernelCfg = cfg
}

// Element type groups for the generic kernels.
type (
	signedInt interface {
		~int8 | ~int16 | ~int32 | ~int64
	}
	unsignedInt interface {
		~uint8 | ~uint16 | ~uint32 | ~uint64
	}
	anyInt interface {
		signedInt | unsignedInt
	}
	anyFloat interface {
		~float32 | ~float64
	}
	anyComplex interface {
		~complex64 | ~complex128
	}
	realOrdered interface {
		anyInt | anyFloat
	}
)

// binLoop applies f elementwise over two operands whose strides are
// already aligned to out's shape (see broadcastViewRaw). Fully dense
// triples run chunked across goroutines; anything strided or broadcast
// walks a coordinate odometer on the caller.
func binLoop[T, R any](out, a, b *Raw, f func(T, T) R) {
	n := out.NumElements()
	if n == 0 {
		return
	}
	if out.IsContiguous() &&
		isContiguous(out.shape, a.strides, a.dtype.size) &&
		isContiguous(out.shape, b.strides, b.dtype.size) {
		av := unsafe.Slice((*T)(unsafe.Pointer(&a.buf.data[a.off])), n)
		bv := unsafe.Slice((*T)(unsafe.Pointer(&b.buf.data[b.off])), n)
		ov := unsafe.Slice((*R)(unsafe.Pointer(&out.buf.data[out.off])), n)
		parallel.For(n, kernelCfg, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				ov[i] = f(av[i], bv[i])
			}
		})
		return
	}
	sh := out.shape
	rank := len(sh)
	ab, bb, ob := a.buf.data, b.buf.data, out.buf.data
	as, bs, os := a.strides, b.strides, out.strides
	ao, bo, oo := a.off, b.off, out.off
	coords := make([]int, rank)
	for i := 0; i < n; i++ {
		store(ob, oo, f(load[T](ab, ao), load[T](bb, bo)))
		for d := rank - 1; d >= 0; d-- {
			coords[d]++
			ao += as[d]
			bo += bs[d]
			oo += os[d]
			if coords[d] < sh[d] {
				break
			}
			coords[d] = 0
			ao -= sh[d] * as[d]
			bo -= sh[d] * bs[d]
			oo -= sh[d] * os[d]
		}
	}
}

// unLoop is binLoop's one-operand sibling.
func unLoop[T, R any](out, x *Raw, f func(T) R) {
	n := out.NumElements()
	if n == 0 {
		return
	}
	if out.IsContiguous() && isContiguous(out.shape, x.strides, x.dtype.size) {
		xv := unsafe.Slice((*T)(unsafe.Pointer(&x.buf.data[x.off])), n)
		ov := unsafe.Slice((*R)(unsafe.Pointer(&out.buf.data[out.off])), n)
		parallel.For(n, kernelCfg, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				ov[i] = f(xv[i])
			}
		})
		return
	}
	sh := out.shape
	rank := len(sh)
	xb, ob := x.buf.data, out.buf.data
	xs, os := x.strides, out.strides
	xo, oo := x.off, out.off
	coords := make([]int, rank)
	for i := 0; i < n; i++ {
		store(ob, oo, f(load[T](xb, xo)))
		for d := rank - 1; d >= 0; d-- {
			coords[d]++
			xo += xs[d]
			oo += os[d]
			if coords[d] < sh[d] {
				break
			}
			coords[d] = 0
			xo -= sh[d] * xs[d]
			oo -= sh[d] * os[d]
		}
	}
}

// Floor division and floored modulus follow the Python convention: the
// quotient rounds toward negative infinity and the remainder takes the
// divisor's sign. Division by integer zero yields zero.

func floorDivInt[T signedInt](x, y T) T {
	if y == 0 {
		return 0
	}
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

func floorModInt[T signedInt](x, y T) T {
	if y == 0 {
		return 0
	}
	m := x % y
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func floorModFloat64(x, y float64) float64 {
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func floorModFloat32(x, y float32) float32 {
	m := math32.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

// powInt raises by squaring. Negative exponents are rejected before the
// kernel runs; the guard here only keeps the loop total.
func powInt[T anyInt](x, y T) T {
	if y < 0 {
		return 0
	}
	r := T(1)
	base := x
	for e := uint64(y); e > 0; e >>= 1 {
		if e&1 == 1 {
			r *= base
		}
		base *= base
	}
	return r
}

func arithKernel(out, a, b *Raw, op BinOp) error {
	switch out.dtype.kind {
	case KindInt8:
		return intArith[int8](out, a, b, op)
	case KindInt16:
		return intArith[int16](out, a, b, op)
	case KindInt32:
		return intArith[int32](out, a, b, op)
	case KindInt64:
		return intArith[int64](out, a, b, op)
	case KindUint8:
		return uintArith[uint8](out, a, b, op)
	case KindUint16:
		return uintArith[uint16](out, a, b, op)
	case KindUint32:
		return uintArith[uint32](out, a, b, op)
	case KindUint64:
		return uintArith[uint64](out, a, b, op)
	case KindFloat32:
		return float32Arith(out, a, b, op)
	case KindFloat64:
		return float64Arith(out, a, b, op)
	case KindComplex64:
		return complexArith[complex64](out, a, b, op)
	case KindComplex128:
		return complexArith[complex128](out, a, b, op)
	default:
		return dtypeErrorf(op.String(), "arithmetic is not defined for %s", out.dtype)
	}
}

func intArith[T signedInt](out, a, b *Raw, op BinOp) error {
	switch op {
	case OpAdd:
		binLoop(out, a, b, func(x, y T) T { return x + y })
	case OpSub:
		binLoop(out, a, b, func(x, y T) T { return x - y })
	case OpMul:
		binLoop(out, a, b, func(x, y T) T { return x * y })
	case OpFloorDiv:
		binLoop(out, a, b, floorDivInt[T])
	case OpMod:
		binLoop(out, a, b, floorModInt[T])
	case OpPow:
		binLoop(out, a, b, powInt[T])
	case OpMin:
		binLoop(out, a, b, func(x, y T) T {
			if y < x {
				return y
			}
			return x
		})
	case OpMax:
		binLoop(out, a, b, func(x, y T) T {
			if y > x {
				return y
			}
			return x
		})
	default:
		return dtypeErrorf(op.String(), "not defined for %s", out.dtype)
	}
	return nil
}

func uintArith[T unsignedInt](out, a, b *Raw, op BinOp) error {
	switch op {
	case OpAdd:
		binLoop(out, a, b, func(x, y T) T { return x + y })
	case OpSub:
		binLoop(out, a, b, func(x, y T) T { return x - y })
	case OpMul:
		binLoop(out, a, b, func(x, y T) T { return x * y })
	case OpFloorDiv:
		binLoop(out, a, b, func(x, y T) T {
			if y == 0 {
				return 0
			}
			return x / y
		})
	case OpMod:
		binLoop(out, a, b, func(x, y T) T {
			if y == 0 {
				return 0
			}
			return x % y
		})
	case OpPow:
		binLoop(out, a, b, powInt[T])
	case OpMin:
		binLoop(out, a, b, func(x, y T) T {
			if y < x {
				return y
			}
			return x
		})
	case OpMax:
		binLoop(out, a, b, func(x, y T) T {
			if y > x {
				return y
			}
			return x
		})
	default:
		return dtypeErrorf(op.String(), "not defined for %s", out.dtype)
	}
	return nil
}

func float64Arith(out, a, b *Raw, op BinOp) error {
	switch op {
	case OpAdd:
		binLoop(out, a, b, func(x, y float64) float64 { return x + y })
	case OpSub:
		binLoop(out, a, b, func(x, y float64) float64 { return x - y })
	case OpMul:
		binLoop(out, a, b, func(x, y float64) float64 { return x * y })
	case OpDiv:
		binLoop(out, a, b, func(x, y float64) float64 { return x / y })
	case OpFloorDiv:
		binLoop(out, a, b, func(x, y float64) float64 { return math.Floor(x / y) })
	case OpMod:
		binLoop(out, a, b, floorModFloat64)
	case OpPow:
		binLoop(out, a, b, math.Pow)
	case OpMin:
		binLoop(out, a, b, math.Min)
	case OpMax:
		binLoop(out, a, b, math.Max)
	default:
		return dtypeErrorf(op.String(), "not defined for %s", out.dtype)
	}
	return nil
}

func float32Arith(out, a, b *Raw, op BinOp) error {
	switch op {
	case OpAdd:
		binLoop(out, a, b, func(x, y float32) float32 { return x + y })
	case OpSub:
		binLoop(out, a, b, func(x, y float32) float32 { return x - y })
	case OpMul:
		binLoop(out, a, b, func(x, y float32) float32 { return x * y })
	case OpDiv:
		binLoop(out, a, b, func(x, y float32) float32 { return x / y })
	case OpFloorDiv:
		binLoop(out, a, b, func(x, y float32) float32 { return math32.Floor(x / y) })
	case OpMod:
		binLoop(out, a, b, floorModFloat32)
	case OpPow:
		binLoop(out, a, b, math32.Pow)
	case OpMin:
		binLoop(out, a, b, math32.Min)
	case OpMax:
		binLoop(out, a, b, math32.Max)
	default:
		return dtypeErrorf(op.String(), "not defined for %s", out.dtype)
	}
	return nil
}

func complexArith[C anyComplex](out, a, b *Raw, op BinOp) error {
	switch op {
	case OpAdd:
		binLoop(out, a, b, func(x, y C) C { return x + y })
	case OpSub:
		binLoop(out, a, b, func(x, y C) C { return x - y })
	case OpMul:
		binLoop(out, a, b, func(x, y C) C { return x * y })
	case OpDiv:
		binLoop(out, a, b, func(x, y C) C { return x / y })
	case OpPow:
		binLoop(out, a, b, func(x, y C) C {
			return C(cmplx.Pow(complex128(x), complex128(y)))
		})
	default:
		return dtypeErrorf(op.String(), "not defined for %s", out.dtype)
	}
	return nil
}

func compareKernel(out, a, b *Raw, op BinOp) error {
	switch a.dtype.kind {
	case KindBool:
		switch op {
		case OpEq:
			binLoop(out, a, b, func(x, y bool) bool { return x == y })
		case OpNe:
			binLoop(out, a, b, func(x, y bool) bool { return x != y })
		default:
			return dtypeErrorf(op.String(), "ordering is not defined for bool")
		}
	case KindInt8:
		cmpOrdered[int8](out, a, b, op)
	case KindInt16:
		cmpOrdered[int16](out, a, b, op)
	case KindInt32:
		cmpOrdered[int32](out, a, b, op)
	case KindInt64:
		cmpOrdered[int64](out, a, b, op)
	case KindUint8:
		cmpOrdered[uint8](out, a, b, op)
	case KindUint16:
		cmpOrdered[uint16](out, a, b, op)
	case KindUint32:
		cmpOrdered[uint32](out, a, b, op)
	case KindUint64:
		cmpOrdered[uint64](out, a, b, op)
	case KindFloat32:
		cmpOrdered[float32](out, a, b, op)
	case KindFloat64:
		cmpOrdered[float64](out, a, b, op)
	case KindComplex64:
		switch op {
		case OpEq:
			binLoop(out, a, b, func(x, y complex64) bool { return x == y })
		case OpNe:
			binLoop(out, a, b, func(x, y complex64) bool { return x != y })
		default:
			return dtypeErrorf(op.String(), "ordering is not defined for %s", a.dtype)
		}
	case KindComplex128:
		switch op {
		case OpEq:
			binLoop(out, a, b, func(x, y complex128) bool { return x == y })
		case OpNe:
			binLoop(out, a, b, func(x, y complex128) bool { return x != y })
		default:
			return dtypeErrorf(op.String(), "ordering is not defined for %s", a.dtype)
		}
	case KindStr:
		strCompareKernel(out, a, b, op)
	default:
		return dtypeErrorf(op.String(), "comparison is not defined for %s", a.dtype)
	}
	return nil
}

func cmpOrdered[T realOrdered](out, a, b *Raw, op BinOp) {
	switch op {
	case OpEq:
		binLoop(out, a, b, func(x, y T) bool { return x == y })
	case OpNe:
		binLoop(out, a, b, func(x, y T) bool { return x != y })
	case OpLt:
		binLoop(out, a, b, func(x, y T) bool { return x < y })
	case OpLe:
		binLoop(out, a, b, func(x, y T) bool { return x <= y })
	case OpGt:
		binLoop(out, a, b, func(x, y T) bool { return x > y })
	case OpGe:
		binLoop(out, a, b, func(x, y T) bool { return x >= y })
	}
}

// strCompareKernel compares fixed-width text slots byte-wise. Both
// operands are already cast to a common width, and zero padding sorts
// before any character, so shorter values order first.
func strCompareKernel(out, a, b *Raw, op BinOp) {
	w := a.dtype.size
	it := newNditer(out.shape, []int{out.off, a.off, b.off}, []Strides{out.strides, a.strides, b.strides})
	for ; !it.done(); it.advance() {
		c := bytes.Compare(a.buf.data[it.offs[1]:it.offs[1]+w], b.buf.data[it.offs[2]:it.offs[2]+w])
		var v bool
		switch op {
		case OpEq:
			v = c == 0
		case OpNe:
			v = c != 0
		case OpLt:
			v = c < 0
		case OpLe:
			v = c <= 0
		case OpGt:
			v = c > 0
		case OpGe:
			v = c >= 0
		}
		store(out.buf.data, it.offs[0], v)
	}
}

func logicalKernel(out, a, b *Raw, op BinOp) error {
	switch op {
	case OpAnd:
		binLoop(out, a, b, func(x, y bool) bool { return x && y })
	case OpOr:
		binLoop(out, a, b, func(x, y bool) bool { return x || y })
	case OpXor:
		binLoop(out, a, b, func(x, y bool) bool { return x != y })
	default:
		return dtypeErrorf(op.String(), "not a logical operation")
	}
	return nil
}

func unaryKernel(out, x *Raw, op UnOp) error {
	switch x.dtype.kind {
	case KindBool:
		if op != OpNot {
			return dtypeErrorf(op.String(), "not defined for bool")
		}
		unLoop(out, x, func(v bool) bool { return !v })
	case KindInt8:
		return intUnary[int8](out, x, op)
	case KindInt16:
		return intUnary[int16](out, x, op)
	case KindInt32:
		return intUnary[int32](out, x, op)
	case KindInt64:
		return intUnary[int64](out, x, op)
	case KindUint8:
		return uintUnary[uint8](out, x, op)
	case KindUint16:
		return uintUnary[uint16](out, x, op)
	case KindUint32:
		return uintUnary[uint32](out, x, op)
	case KindUint64:
		return uintUnary[uint64](out, x, op)
	case KindFloat32:
		return float32Unary(out, x, op)
	case KindFloat64:
		return float64Unary(out, x, op)
	case KindComplex64:
		if op == OpAbs {
			unLoop(out, x, func(v complex64) float32 { return float32(cmplx.Abs(complex128(v))) })
			return nil
		}
		return complexUnary[complex64](out, x, op)
	case KindComplex128:
		if op == OpAbs {
			unLoop(out, x, cmplx.Abs)
			return nil
		}
		return complexUnary[complex128](out, x, op)
	default:
		return dtypeErrorf(op.String(), "not defined for %s", x.dtype)
	}
	return nil
}

func intUnary[T signedInt](out, x *Raw, op UnOp) error {
	switch op {
	case OpNeg:
		unLoop(out, x, func(v T) T { return -v })
	case OpAbs:
		unLoop(out, x, func(v T) T {
			if v < 0 {
				return -v
			}
			return v
		})
	default:
		return dtypeErrorf(op.String(), "not defined for %s", x.dtype)
	}
	return nil
}

func uintUnary[T unsignedInt](out, x *Raw, op UnOp) error {
	switch op {
	case OpNeg:
		unLoop(out, x, func(v T) T { return -v })
	case OpAbs:
		unLoop(out, x, func(v T) T { return v })
	default:
		return dtypeErrorf(op.String(), "not defined for %s", x.dtype)
	}
	return nil
}

func float64Unary(out, x *Raw, op UnOp) error {
	switch op {
	case OpNeg:
		unLoop(out, x, func(v float64) float64 { return -v })
	case OpAbs:
		unLoop(out, x, math.Abs)
	case OpSqrt:
		unLoop(out, x, math.Sqrt)
	case OpExp:
		unLoop(out, x, math.Exp)
	case OpLog:
		unLoop(out, x, math.Log)
	case OpSin:
		unLoop(out, x, math.Sin)
	case OpCos:
		unLoop(out, x, math.Cos)
	default:
		return dtypeErrorf(op.String(), "not defined for %s", x.dtype)
	}
	return nil
}

func float32Unary(out, x *Raw, op UnOp) error {
	switch op {
	case OpNeg:
		unLoop(out, x, func(v float32) float32 { return -v })
	case OpAbs:
		unLoop(out, x, math32.Abs)
	case OpSqrt:
		unLoop(out, x, math32.Sqrt)
	case OpExp:
		unLoop(out, x, math32.Exp)
	case OpLog:
		unLoop(out, x, math32.Log)
	case OpSin:
		unLoop(out, x, math32.Sin)
	case OpCos:
		unLoop(out, x, math32.Cos)
	default:
		return dtypeErrorf(op.String(), "not defined for %s", x.dtype)
	}
	return nil
}

func complexUnary[C anyComplex](out, x *Raw, op UnOp) error {
	lift := func(f func(complex128) complex128) func(C) C {
		return func(v C) C { return C(f(complex128(v))) }
	}
	switch op {
	case OpNeg:
		unLoop(out, x, func(v C) C { return -v })
	case OpSqrt:
		unLoop(out, x, lift(cmplx.Sqrt))
	case OpExp:
		unLoop(out, x, lift(cmplx.Exp))
	case OpLog:
		unLoop(out, x, lift(cmplx.Log))
	case OpSin:
		unLoop(out, x, lift(cmplx.Sin))
	case OpCos:
		unLoop(out, x, lift(cmplx.Cos))
	default:
		return dtypeErrorf(op.String(), "not defined for %s", x.dtype)
	}
	return nil
}
