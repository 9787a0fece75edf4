package array

import "fmt"

// BinOp enumerates the elementwise binary operations.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv // true division; integer operands promote to float64
	OpFloorDiv
	OpMod
	OpPow
	OpMin
	OpMax
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpXor
)

var binOpNames = [...]string{
	"Add", "Sub", "Mul", "Div", "FloorDiv", "Mod", "Pow", "Min", "Max",
	"Eq", "Ne", "Lt", "Le", "Gt", "Ge", "And", "Or", "Xor",
}

func (op BinOp) String() string {
	if op < 0 || int(op) >= len(binOpNames) {
		return fmt.Sprintf("BinOp(%d)", int(op))
	}
	return binOpNames[op]
}

func (op BinOp) isComparison() bool { return op >= OpEq && op <= OpGe }
func (op BinOp) isLogical() bool    { return op >= OpAnd && op <= OpXor }

// UnOp enumerates the elementwise unary operations.
type UnOp int

const (
	OpNeg UnOp = iota
	OpAbs
	OpSqrt
	OpExp
	OpLog
	OpSin
	OpCos
	OpNot
)

var unOpNames = [...]string{"Neg", "Abs", "Sqrt", "Exp", "Log", "Sin", "Cos", "Not"}

func (op UnOp) String() string {
	if op < 0 || int(op) >= len(unOpNames) {
		return fmt.Sprintf("UnOp(%d)", int(op))
	}
	return unOpNames[op]
}

// binPlan resolves the broadcast result shape, the dtype operands are
// computed in, and the dtype of the result. Everything an operation can
// reject is rejected here, before any output slot is written.
func binPlan(op BinOp, a, b *Raw) (Shape, DataType, DataType, error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, DataType{}, DataType{}, err
	}
	switch {
	case op.isLogical():
		if a.dtype.kind != KindBool || b.dtype.kind != KindBool {
			return nil, DataType{}, DataType{}, dtypeErrorf(op.String(), "requires bool operands, got %s and %s", a.dtype, b.dtype)
		}
		return shape, Bool, Bool, nil
	case op.isComparison():
		p, err := PromoteTypes(a.dtype, b.dtype)
		if err != nil {
			return nil, DataType{}, DataType{}, err
		}
		if op != OpEq && op != OpNe && !p.IsOrdered() {
			return nil, DataType{}, DataType{}, dtypeErrorf(op.String(), "ordering is not defined for %s", p)
		}
		return shape, p, Bool, nil
	default:
		p, err := PromoteTypes(a.dtype, b.dtype)
		if err != nil {
			return nil, DataType{}, DataType{}, err
		}
		if !p.IsNumeric() {
			return nil, DataType{}, DataType{}, dtypeErrorf(op.String(), "arithmetic is not defined for %s", p)
		}
		switch op {
		case OpDiv:
			if p.IsInteger() {
				p = Float64
			}
		case OpFloorDiv, OpMod, OpMin, OpMax:
			if p.IsComplex() {
				return nil, DataType{}, DataType{}, dtypeErrorf(op.String(), "not defined for %s", p)
			}
		}
		return shape, p, p, nil
	}
}

// sameLayout reports whether two descriptors address identical slots.
func sameLayout(x, y *Raw) bool {
	return x.off == y.off && x.shape.Equal(y.shape) && x.strides.Equal(y.strides)
}

// decoupleOperand hands kernels an operand they can read freely: cast
// to the compute dtype when needed, and copied when it shares the output
// buffer under a different layout (a strided self-overlap would
// otherwise read half-written slots).
func decoupleOperand(x, out *Raw, compute DataType) (*Raw, bool, error) {
	if !x.dtype.Equal(compute) {
		c, err := Cast(x, compute)
		return c, true, err
	}
	if x.buf == out.buf && !sameLayout(x, out) {
		c, err := x.Copy()
		return c, true, err
	}
	return x, false, nil
}

// broadcastViewRaw builds a transient descriptor aligning x to shape
// with zero strides on repeated dimensions. It does not take a buffer
// reference; the value must not outlive x.
func broadcastViewRaw(x *Raw, shape Shape) Raw {
	return Raw{
		buf:     x.buf,
		shape:   shape,
		strides: broadcastStrides(x.shape, x.strides, shape),
		off:     x.off,
		dtype:   x.dtype,
	}
}

func hasNegativeInt(x *Raw) bool {
	it := newNditer(x.shape, []int{x.off}, []Strides{x.strides})
	for ; !it.done(); it.advance() {
		if loadInt(x.dtype, x.buf.data, it.offs[0]) < 0 {
			return true
		}
	}
	return false
}

func binExec(out *Raw, op BinOp, a, b *Raw, compute DataType) error {
	ac, ownA, err := decoupleOperand(a, out, compute)
	if err != nil {
		return err
	}
	if ownA {
		defer ac.Release()
	}
	bc, ownB, err := decoupleOperand(b, out, compute)
	if err != nil {
		return err
	}
	if ownB {
		defer bc.Release()
	}
	av := broadcastViewRaw(ac, out.shape)
	bv := broadcastViewRaw(bc, out.shape)
	if op == OpPow && compute.IsSignedInt() && hasNegativeInt(&bv) {
		return dtypeErrorf("Pow", "integers to negative integer powers are not allowed")
	}
	switch {
	case op.isComparison():
		return compareKernel(out, &av, &bv, op)
	case op.isLogical():
		return logicalKernel(out, &av, &bv, op)
	default:
		return arithKernel(out, &av, &bv, op)
	}
}

// Apply evaluates an elementwise binary operation over two broadcast
// operands, allocating the result. Operand dtypes promote to a common
// compute kind; comparisons yield Bool.
//
// Example:
//
//	c, _ := array.Apply(array.OpAdd, a, b)
func Apply(op BinOp, a, b *Raw) (*Raw, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s: nil operand", op)
	}
	shape, compute, result, err := binPlan(op, a, b)
	if err != nil {
		return nil, err
	}
	out, err := NewRawUninit(result, shape)
	if err != nil {
		return nil, err
	}
	if err := binExec(out, op, a, b, compute); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// ApplyInto evaluates an elementwise binary operation into an existing
// output. The output must match the broadcast result shape exactly and
// carry exactly the result dtype; both are checked before anything is
// written, so a failed call leaves out untouched. The output may alias
// an operand.
func ApplyInto(out *Raw, op BinOp, a, b *Raw) error {
	if out == nil || a == nil || b == nil {
		return fmt.Errorf("%s: nil operand", op)
	}
	shape, compute, result, err := binPlan(op, a, b)
	if err != nil {
		return err
	}
	if !out.shape.Equal(shape) {
		return shapeErrorf(op.String(), "output shape %v does not match result shape %v", out.shape, shape)
	}
	if !out.dtype.Equal(result) {
		return dtypeErrorf(op.String(), "output dtype %s does not match result dtype %s", out.dtype, result)
	}
	return binExec(out, op, a, b, compute)
}

// unPlan resolves the compute and result dtypes of a unary operation.
// Math functions promote integer and bool input to float64.
func unPlan(op UnOp, x *Raw) (DataType, DataType, error) {
	dt := x.dtype
	switch op {
	case OpNot:
		if dt.kind != KindBool {
			return DataType{}, DataType{}, dtypeErrorf(op.String(), "requires bool operand, got %s", dt)
		}
		return Bool, Bool, nil
	case OpNeg:
		if !dt.IsNumeric() {
			return DataType{}, DataType{}, dtypeErrorf(op.String(), "not defined for %s", dt)
		}
		return dt, dt, nil
	case OpAbs:
		switch {
		case dt.kind == KindComplex64:
			return dt, Float32, nil
		case dt.kind == KindComplex128:
			return dt, Float64, nil
		case dt.IsNumeric():
			return dt, dt, nil
		default:
			return DataType{}, DataType{}, dtypeErrorf(op.String(), "not defined for %s", dt)
		}
	default:
		switch {
		case dt.IsFloat() || dt.IsComplex():
			return dt, dt, nil
		case dt.IsInteger() || dt.kind == KindBool:
			return Float64, Float64, nil
		default:
			return DataType{}, DataType{}, dtypeErrorf(op.String(), "not defined for %s", dt)
		}
	}
}

func unExec(out *Raw, op UnOp, x *Raw, compute DataType) error {
	xc, own, err := decoupleOperand(x, out, compute)
	if err != nil {
		return err
	}
	if own {
		defer xc.Release()
	}
	xv := broadcastViewRaw(xc, out.shape)
	return unaryKernel(out, &xv, op)
}

// ApplyUnary evaluates an elementwise unary operation, allocating the
// result. Math functions on integer input produce float64.
func ApplyUnary(op UnOp, x *Raw) (*Raw, error) {
	if x == nil {
		return nil, fmt.Errorf("%s: nil operand", op)
	}
	compute, result, err := unPlan(op, x)
	if err != nil {
		return nil, err
	}
	out, err := NewRawUninit(result, x.shape)
	if err != nil {
		return nil, err
	}
	if err := unExec(out, op, x, compute); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// ApplyUnaryInto evaluates an elementwise unary operation into an
// existing output, with the same exact shape and dtype contract as
// ApplyInto.
func ApplyUnaryInto(out *Raw, op UnOp, x *Raw) error {
	if out == nil || x == nil {
		return fmt.Errorf("%s: nil operand", op)
	}
	compute, result, err := unPlan(op, x)
	if err != nil {
		return err
	}
	if !out.shape.Equal(x.shape) {
		return shapeErrorf(op.String(), "output shape %v does not match operand shape %v", out.shape, x.shape)
	}
	if !out.dtype.Equal(result) {
		return dtypeErrorf(op.String(), "output dtype %s does not match result dtype %s", out.dtype, result)
	}
	return unExec(out, op, x, compute)
}

// scalarDTypeFor picks the dtype a bare Go scalar takes on when it
// meets an array: it adopts the array's dtype when that loses nothing
// structural, otherwise its own natural kind.
func scalarDTypeFor(v any, hint DataType) DataType {
	switch s := v.(type) {
	case bool:
		return Bool
	case string:
		if len(s) == 0 {
			return StrType(1)
		}
		return StrType(len(s))
	case float32, float64:
		if hint.IsFloat() || hint.IsComplex() {
			return hint
		}
		return Float64
	case complex64, complex128:
		if hint.IsComplex() {
			return hint
		}
		return Complex128
	default:
		if hint.IsNumeric() {
			return hint
		}
		return Int64
	}
}

// ApplyScalar evaluates op with a bare Go scalar as the right operand.
//
// Example:
//
//	doubled, _ := array.ApplyScalar(array.OpMul, a, 2)
func ApplyScalar(op BinOp, a *Raw, v any) (*Raw, error) {
	if a == nil {
		return nil, fmt.Errorf("%s: nil operand", op)
	}
	s, err := scalarRaw(scalarDTypeFor(v, a.dtype), v)
	if err != nil {
		return nil, err
	}
	defer s.Release()
	return Apply(op, a, s)
}

// Named elementwise wrappers.

func Add(a, b *Raw) (*Raw, error)      { return Apply(OpAdd, a, b) }
func Sub(a, b *Raw) (*Raw, error)      { return Apply(OpSub, a, b) }
func Mul(a, b *Raw) (*Raw, error)      { return Apply(OpMul, a, b) }
func Div(a, b *Raw) (*Raw, error)      { return Apply(OpDiv, a, b) }
func FloorDiv(a, b *Raw) (*Raw, error) { return Apply(OpFloorDiv, a, b) }
func Mod(a, b *Raw) (*Raw, error)      { return Apply(OpMod, a, b) }
func Pow(a, b *Raw) (*Raw, error)      { return Apply(OpPow, a, b) }
func Minimum(a, b *Raw) (*Raw, error)  { return Apply(OpMin, a, b) }
func Maximum(a, b *Raw) (*Raw, error)  { return Apply(OpMax, a, b) }
func Eq(a, b *Raw) (*Raw, error)       { return Apply(OpEq, a, b) }
func Ne(a, b *Raw) (*Raw, error)       { return Apply(OpNe, a, b) }
func Lt(a, b *Raw) (*Raw, error)       { return Apply(OpLt, a, b) }
func Le(a, b *Raw) (*Raw, error)       { return Apply(OpLe, a, b) }
func Gt(a, b *Raw) (*Raw, error)       { return Apply(OpGt, a, b) }
func Ge(a, b *Raw) (*Raw, error)       { return Apply(OpGe, a, b) }
func And(a, b *Raw) (*Raw, error)      { return Apply(OpAnd, a, b) }
func Or(a, b *Raw) (*Raw, error)       { return Apply(OpOr, a, b) }
func Xor(a, b *Raw) (*Raw, error)      { return Apply(OpXor, a, b) }

func Neg(x *Raw) (*Raw, error)  { return ApplyUnary(OpNeg, x) }
func Abs(x *Raw) (*Raw, error)  { return ApplyUnary(OpAbs, x) }
func Sqrt(x *Raw) (*Raw, error) { return ApplyUnary(OpSqrt, x) }
func Exp(x *Raw) (*Raw, error)  { return ApplyUnary(OpExp, x) }
func Log(x *Raw) (*Raw, error)  { return ApplyUnary(OpLog, x) }
func Sin(x *Raw) (*Raw, error)  { return ApplyUnary(OpSin, x) }
func Cos(x *Raw) (*Raw, error)  { return ApplyUnary(OpCos, x) }
func Not(x *Raw) (*Raw, error)  { return ApplyUnary(OpNot, x) }
