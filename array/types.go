// Copyright 2025 The NumGo Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/numgo-dev/numgo/internal/array"
)

// Type aliases for the public API.

// DType constrains the Go element types an Array can hold.
type DType = array.DType

// DataType describes the element type of an array: a kind plus its
// byte size, and for record dtypes the field layout.
type DataType = array.DataType

// Kind is the closed enumeration of element categories.
type Kind = array.Kind

// Kind constants.
const (
	KindBool       Kind = array.KindBool
	KindInt8       Kind = array.KindInt8
	KindInt16      Kind = array.KindInt16
	KindInt32      Kind = array.KindInt32
	KindInt64      Kind = array.KindInt64
	KindUint8      Kind = array.KindUint8
	KindUint16     Kind = array.KindUint16
	KindUint32     Kind = array.KindUint32
	KindUint64     Kind = array.KindUint64
	KindFloat32    Kind = array.KindFloat32
	KindFloat64    Kind = array.KindFloat64
	KindComplex64  Kind = array.KindComplex64
	KindComplex128 Kind = array.KindComplex128
	KindStr        Kind = array.KindStr
	KindStruct     Kind = array.KindStruct
)

// Element type descriptors.
var (
	Bool       = array.Bool
	Int8       = array.Int8
	Int16      = array.Int16
	Int32      = array.Int32
	Int64      = array.Int64
	Uint8      = array.Uint8
	Uint16     = array.Uint16
	Uint32     = array.Uint32
	Uint64     = array.Uint64
	Float32    = array.Float32
	Float64    = array.Float64
	Complex64  = array.Complex64
	Complex128 = array.Complex128
)

// StrType returns a fixed-width string dtype of the given byte width.
func StrType(width int) DataType { return array.StrType(width) }

// Field names one member of a record dtype.
type Field = array.Field

// StructOf builds a record dtype with naturally aligned field offsets.
func StructOf(fields ...Field) (DataType, error) { return array.StructOf(fields...) }

// PromoteTypes returns the common dtype two operands compute in.
func PromoteTypes(a, b DataType) (DataType, error) { return array.PromoteTypes(a, b) }

// Shape holds the extent of each dimension.
// Example: Shape{2, 3, 4} is a 3-D array of 24 elements.
type Shape = array.Shape

// Strides holds the byte step per dimension. Zero and negative strides
// are legal; they express broadcasting and reversed views.
type Strides = array.Strides

// ContiguousStrides returns the dense row-major strides for a shape.
func ContiguousStrides(shape Shape, itemsize int) Strides {
	return array.ContiguousStrides(shape, itemsize)
}

// BroadcastShapes combines two shapes under the broadcasting rules.
func BroadcastShapes(a, b Shape) (Shape, error) { return array.BroadcastShapes(a, b) }

// Raw is the untyped array descriptor: a dtype-tagged strided view over
// a shared buffer. All Raw-level functions return errors rather than
// panicking.
type Raw = array.Raw

// Array is the statically typed wrapper over Raw. Methods panic on
// shape or dtype failures.
type Array[T DType] = array.Array[T]

// PrintOptions controls String and Format rendering.
type PrintOptions = array.PrintOptions

// Rng selects a half-open index range with a step, with Python slice
// semantics: omitted bounds default per step sign, negative indices
// count from the end, bounds clamp.
type Rng = array.Rng

// All selects every index of an axis.
func All() Rng { return array.All() }

// R selects [start, stop) with step 1.
func R(start, stop int) Rng { return array.R(start, stop) }

// Rs selects [start, stop) with an explicit step.
func Rs(start, stop, step int) Rng { return array.Rs(start, stop, step) }

// From selects [start, end of axis).
func From(start int) Rng { return array.From(start) }

// UpTo selects [0, stop).
func UpTo(stop int) Rng { return array.UpTo(stop) }

// Stepped selects the whole axis with a step; -1 reverses it.
func Stepped(step int) Rng { return array.Stepped(step) }

// Error types. Match with errors.As.

// ShapeError reports incompatible or invalid shapes.
type ShapeError = array.ShapeError

// BroadcastError reports shapes that cannot broadcast together.
type BroadcastError = array.BroadcastError

// IndexError reports an index or axis out of range.
type IndexError = array.IndexError

// DTypeError reports an operation unsupported for a dtype.
type DTypeError = array.DTypeError

// BinOp enumerates the binary elementwise operations.
type BinOp = array.BinOp

// UnOp enumerates the unary elementwise operations.
type UnOp = array.UnOp

// Binary operations.
const (
	OpAdd      BinOp = array.OpAdd
	OpSub      BinOp = array.OpSub
	OpMul      BinOp = array.OpMul
	OpDiv      BinOp = array.OpDiv
	OpFloorDiv BinOp = array.OpFloorDiv
	OpMod      BinOp = array.OpMod
	OpPow      BinOp = array.OpPow
	OpMin      BinOp = array.OpMin
	OpMax      BinOp = array.OpMax
	OpEq       BinOp = array.OpEq
	OpNe       BinOp = array.OpNe
	OpLt       BinOp = array.OpLt
	OpLe       BinOp = array.OpLe
	OpGt       BinOp = array.OpGt
	OpGe       BinOp = array.OpGe
	OpAnd      BinOp = array.OpAnd
	OpOr       BinOp = array.OpOr
	OpXor      BinOp = array.OpXor
)

// Unary operations.
const (
	OpNeg  UnOp = array.OpNeg
	OpAbs  UnOp = array.OpAbs
	OpSqrt UnOp = array.OpSqrt
	OpExp  UnOp = array.OpExp
	OpLog  UnOp = array.OpLog
	OpSin  UnOp = array.OpSin
	OpCos  UnOp = array.OpCos
	OpNot  UnOp = array.OpNot
)
