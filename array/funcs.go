// Copyright 2025 The NumGo Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"gonum.org/v1/gonum/mat"

	"github.com/numgo-dev/numgo/internal/array"
)

// Creation.

// NewArray copies a Go slice into a dense typed array.
//
// Example:
//
//	a, err := array.NewArray([]float64{1, 2, 3, 4}, array.Shape{2, 2})
func NewArray[T DType](data []T, shape Shape) (*Array[T], error) {
	return array.NewArray(data, shape)
}

// AsArray wraps a Raw whose dtype matches T; the buffer stays shared.
func AsArray[T DType](r *Raw) (*Array[T], error) { return array.AsArray[T](r) }

// ZerosOf allocates a zero-filled typed array.
func ZerosOf[T DType](shape Shape) (*Array[T], error) { return array.ZerosOf[T](shape) }

// OnesOf allocates a one-filled typed array.
func OnesOf[T DType](shape Shape) (*Array[T], error) { return array.OnesOf[T](shape) }

// FullOf allocates a typed array filled with one value.
func FullOf[T DType](shape Shape, v T) (*Array[T], error) { return array.FullOf(shape, v) }

// FromSlice copies a Go slice into a dense untyped array. A nil shape
// means 1-D.
func FromSlice[T DType](data []T, shape Shape) (*Raw, error) {
	return array.FromSlice(data, shape)
}

// FromAny builds an array from nested Go slices by reflection, or from
// a single scalar (rank 0). Ragged nesting is a ShapeError.
func FromAny(v any) (*Raw, error) { return array.FromAny(v) }

// FromStrings builds a fixed-width text array. Width 0 sizes to the
// longest value.
func FromStrings(values []string, width int) (*Raw, error) {
	return array.FromStrings(values, width)
}

// Zeros allocates a zero-filled array.
func Zeros(dt DataType, shape Shape) (*Raw, error) { return array.Zeros(dt, shape) }

// Ones allocates a one-filled array.
func Ones(dt DataType, shape Shape) (*Raw, error) { return array.Ones(dt, shape) }

// Full allocates an array filled with one value, converted to dt.
func Full(dt DataType, shape Shape, value any) (*Raw, error) {
	return array.Full(dt, shape, value)
}

// Empty allocates an array with unspecified contents.
func Empty(dt DataType, shape Shape) (*Raw, error) { return array.Empty(dt, shape) }

// Scalar wraps one value as a rank-0 array.
func Scalar(dt DataType, v any) (*Raw, error) { return array.Scalar(dt, v) }

// Arange fills [start, stop) stepping by step.
func Arange(dt DataType, start, stop, step float64) (*Raw, error) {
	return array.Arange(dt, start, stop, step)
}

// Linspace fills num evenly spaced values over [start, stop].
func Linspace(dt DataType, start, stop float64, num int) (*Raw, error) {
	return array.Linspace(dt, start, stop, num)
}

// Eye builds an n×m matrix with ones on diagonal k.
func Eye(dt DataType, n, m, k int) (*Raw, error) { return array.Eye(dt, n, m, k) }

// Identity builds the n×n identity matrix.
func Identity(dt DataType, n int) (*Raw, error) { return array.Identity(dt, n) }

// Rand fills with uniform samples from [0, 1).
func Rand(dt DataType, shape Shape) (*Raw, error) { return array.Rand(dt, shape) }

// Randn fills with standard normal samples.
func Randn(dt DataType, shape Shape) (*Raw, error) { return array.Randn(dt, shape) }

// RandInt fills with uniform integers from [low, high).
func RandInt(dt DataType, low, high int64, shape Shape) (*Raw, error) {
	return array.RandInt(dt, low, high, shape)
}

// SetSeed makes subsequent random fills deterministic.
func SetSeed(seed int64) { array.SetSeed(seed) }

// SetParallelism caps the worker count of the elementwise kernels.
// n <= 1 forces serial execution.
func SetParallelism(n int) { array.SetParallelism(n) }

// Manipulation. Results are views wherever the operation's contract
// allows one.

// Cast converts to another dtype, always copying.
func Cast(x *Raw, dt DataType) (*Raw, error) { return array.Cast(x, dt) }

// Reshape changes the shape: a view when the strides permit, otherwise
// a copy. One dimension may be -1 to infer.
func Reshape(r *Raw, shape Shape) (*Raw, error) { return array.Reshape(r, shape) }

// Transpose permutes axes as a view; no arguments reverses them all.
func Transpose(r *Raw, perm ...int) (*Raw, error) { return array.Transpose(r, perm...) }

// SwapAxes exchanges two axes as a view.
func SwapAxes(r *Raw, a, b int) (*Raw, error) { return array.SwapAxes(r, a, b) }

// ExpandDims inserts a unit axis.
func ExpandDims(r *Raw, axis int) (*Raw, error) { return array.ExpandDims(r, axis) }

// Squeeze removes unit axes: the named ones, or all of them.
func Squeeze(r *Raw, axes ...int) (*Raw, error) { return array.Squeeze(r, axes...) }

// Ravel flattens to 1-D: a view when contiguous, else a copy.
func Ravel(r *Raw) (*Raw, error) { return array.Ravel(r) }

// Flatten flattens to 1-D, always copying.
func Flatten(r *Raw) (*Raw, error) { return array.Flatten(r) }

// BroadcastTo expands to a larger shape with stride-0 repetition.
func BroadcastTo(r *Raw, target Shape) (*Raw, error) { return array.BroadcastTo(r, target) }

// Slice applies one range per leading axis and returns a view.
//
// Example:
//
//	v, _ := array.Slice(x, array.All(), array.Rs(0, 10, 2))
func Slice(r *Raw, rgs ...Rng) (*Raw, error) { return array.Slice(r, rgs...) }

// Sel fixes one axis at an index, returning a rank-1-lower view.
func Sel(r *Raw, axis, i int) (*Raw, error) { return array.Sel(r, axis, i) }

// Assign broadcasts src over dst and writes in place.
func Assign(dst, src *Raw) error { return array.Assign(dst, src) }

// Concat joins arrays along an existing axis into a new buffer.
func Concat(axis int, arrays ...*Raw) (*Raw, error) { return array.Concat(axis, arrays...) }

// Stack joins arrays along a fresh axis.
func Stack(axis int, arrays ...*Raw) (*Raw, error) { return array.Stack(axis, arrays...) }

// VStack stacks rows; 1-D inputs become rows.
func VStack(arrays ...*Raw) (*Raw, error) { return array.VStack(arrays...) }

// HStack concatenates along the last axis; 1-D inputs chain end to end.
func HStack(arrays ...*Raw) (*Raw, error) { return array.HStack(arrays...) }

// Split cuts an axis into equal sections, returned as views.
func Split(r *Raw, axis, sections int) ([]*Raw, error) { return array.Split(r, axis, sections) }

// SplitAt cuts an axis at explicit points into len(points)+1 views.
func SplitAt(r *Raw, axis int, points ...int) ([]*Raw, error) {
	return array.SplitAt(r, axis, points...)
}

// Elementwise operations. Operands broadcast; dtypes promote.

// Apply evaluates a binary operation over broadcast operands.
func Apply(op BinOp, a, b *Raw) (*Raw, error) { return array.Apply(op, a, b) }

// ApplyInto evaluates into an existing array, which must carry exactly
// the broadcast shape and promoted dtype. Validation precedes writes.
func ApplyInto(out *Raw, op BinOp, a, b *Raw) error { return array.ApplyInto(out, op, a, b) }

// ApplyScalar evaluates with a scalar right operand.
func ApplyScalar(op BinOp, a *Raw, v any) (*Raw, error) { return array.ApplyScalar(op, a, v) }

// ApplyUnary evaluates a unary operation elementwise.
func ApplyUnary(op UnOp, x *Raw) (*Raw, error) { return array.ApplyUnary(op, x) }

func Add(a, b *Raw) (*Raw, error)      { return array.Add(a, b) }
func Sub(a, b *Raw) (*Raw, error)      { return array.Sub(a, b) }
func Mul(a, b *Raw) (*Raw, error)      { return array.Mul(a, b) }
func Div(a, b *Raw) (*Raw, error)      { return array.Div(a, b) }
func FloorDiv(a, b *Raw) (*Raw, error) { return array.FloorDiv(a, b) }
func Mod(a, b *Raw) (*Raw, error)      { return array.Mod(a, b) }
func Pow(a, b *Raw) (*Raw, error)      { return array.Pow(a, b) }
func Minimum(a, b *Raw) (*Raw, error)  { return array.Minimum(a, b) }
func Maximum(a, b *Raw) (*Raw, error)  { return array.Maximum(a, b) }
func Eq(a, b *Raw) (*Raw, error)       { return array.Eq(a, b) }
func Ne(a, b *Raw) (*Raw, error)       { return array.Ne(a, b) }
func Lt(a, b *Raw) (*Raw, error)       { return array.Lt(a, b) }
func Le(a, b *Raw) (*Raw, error)       { return array.Le(a, b) }
func Gt(a, b *Raw) (*Raw, error)       { return array.Gt(a, b) }
func Ge(a, b *Raw) (*Raw, error)       { return array.Ge(a, b) }
func And(a, b *Raw) (*Raw, error)      { return array.And(a, b) }
func Or(a, b *Raw) (*Raw, error)       { return array.Or(a, b) }
func Xor(a, b *Raw) (*Raw, error)      { return array.Xor(a, b) }

func Neg(x *Raw) (*Raw, error)  { return array.Neg(x) }
func Abs(x *Raw) (*Raw, error)  { return array.Abs(x) }
func Sqrt(x *Raw) (*Raw, error) { return array.Sqrt(x) }
func Exp(x *Raw) (*Raw, error)  { return array.Exp(x) }
func Log(x *Raw) (*Raw, error)  { return array.Log(x) }
func Sin(x *Raw) (*Raw, error)  { return array.Sin(x) }
func Cos(x *Raw) (*Raw, error)  { return array.Cos(x) }
func Not(x *Raw) (*Raw, error)  { return array.Not(x) }

// Reductions.

// Reduce folds an associative operation over every element.
func Reduce(op BinOp, x *Raw) (*Raw, error) { return array.Reduce(op, x) }

// ReduceAxis folds along one axis; keepdims keeps a unit dimension.
func ReduceAxis(op BinOp, x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.ReduceAxis(op, x, axis, keepdims)
}

// Accumulate keeps every partial result of a fold, same shape as x.
func Accumulate(op BinOp, x *Raw, axis int) (*Raw, error) {
	return array.Accumulate(op, x, axis)
}

// Outer evaluates op over every pair from two 1-D arrays.
func Outer(op BinOp, a, b *Raw) (*Raw, error) { return array.Outer(op, a, b) }

func Sum(x *Raw) (*Raw, error)  { return array.Sum(x) }
func Prod(x *Raw) (*Raw, error) { return array.Prod(x) }
func Min(x *Raw) (*Raw, error)  { return array.Min(x) }
func Max(x *Raw) (*Raw, error)  { return array.Max(x) }
func Mean(x *Raw) (*Raw, error) { return array.Mean(x) }
func Var(x *Raw) (*Raw, error)  { return array.Var(x) }
func Std(x *Raw) (*Raw, error)  { return array.Std(x) }

func SumAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.SumAxis(x, axis, keepdims)
}
func ProdAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.ProdAxis(x, axis, keepdims)
}
func MinAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.MinAxis(x, axis, keepdims)
}
func MaxAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.MaxAxis(x, axis, keepdims)
}
func MeanAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.MeanAxis(x, axis, keepdims)
}
func VarAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.VarAxis(x, axis, keepdims)
}
func StdAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.StdAxis(x, axis, keepdims)
}

// AnyTrue reports whether any element of a bool array is true.
func AnyTrue(x *Raw) (bool, error) { return array.AnyTrue(x) }

// AllTrue reports whether every element of a bool array is true.
func AllTrue(x *Raw) (bool, error) { return array.AllTrue(x) }

// AnyAxis reduces with logical OR along one axis.
func AnyAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.AnyAxis(x, axis, keepdims)
}

// AllAxis reduces with logical AND along one axis.
func AllAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.AllAxis(x, axis, keepdims)
}

// CumSum keeps the running sum along one axis.
func CumSum(x *Raw, axis int) (*Raw, error) { return array.CumSum(x, axis) }

// CumProd keeps the running product along one axis.
func CumProd(x *Raw, axis int) (*Raw, error) { return array.CumProd(x, axis) }

// ArgMax returns the row-major position of the largest element.
func ArgMax(x *Raw) (int, error) { return array.ArgMax(x) }

// ArgMin returns the row-major position of the smallest element.
func ArgMin(x *Raw) (int, error) { return array.ArgMin(x) }

// ArgMaxAxis returns per-lane positions of the largest elements.
func ArgMaxAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.ArgMaxAxis(x, axis, keepdims)
}

// ArgMinAxis returns per-lane positions of the smallest elements.
func ArgMinAxis(x *Raw, axis int, keepdims bool) (*Raw, error) {
	return array.ArgMinAxis(x, axis, keepdims)
}

// Masking.

// CountTrue counts the true elements of a bool array.
func CountTrue(mask *Raw) (int, error) { return array.CountTrue(mask) }

// Compress selects the elements where mask is true into a fresh 1-D
// array, row-major.
func Compress(x, mask *Raw) (*Raw, error) { return array.Compress(x, mask) }

// MaskSet writes src into the selected elements in place.
func MaskSet(x, mask, src *Raw) error { return array.MaskSet(x, mask, src) }

// Nonzero returns the coordinates of true elements, one int64 array per
// axis.
func Nonzero(mask *Raw) ([]*Raw, error) { return array.Nonzero(mask) }

// Where selects from x where cond is true and from y elsewhere.
func Where(cond, x, y *Raw) (*Raw, error) { return array.Where(cond, x, y) }

// Fancy indexing.

// Take gathers whole subarrays by position along axis 0; result shape
// is ix.Shape() followed by x.Shape()[1:].
func Take(x, ix *Raw) (*Raw, error) { return array.Take(x, ix) }

// TakeAt gathers single elements at explicit per-dimension coordinates.
func TakeAt(x *Raw, ixs ...*Raw) (*Raw, error) { return array.TakeAt(x, ixs...) }

// Put scatters src into x by position along axis 0, in place. Duplicate
// indices resolve last-write-wins in row-major order.
func Put(x, ix, src *Raw) error { return array.Put(x, ix, src) }

// PutAt scatters single elements at explicit per-dimension coordinates.
func PutAt(x *Raw, ixs []*Raw, src *Raw) error { return array.PutAt(x, ixs, src) }

// Sorting and selection.

// Sort reorders each 1-D lane along the axis in place, ascending.
func Sort(x *Raw, axis int) error { return array.Sort(x, axis) }

// SortStable is Sort keeping equal elements in their original order.
func SortStable(x *Raw, axis int) error { return array.SortStable(x, axis) }

// Sorted returns a sorted copy.
func Sorted(x *Raw, axis int) (*Raw, error) { return array.Sorted(x, axis) }

// Argsort returns the stable per-lane sort permutation as int64.
func Argsort(x *Raw, axis int) (*Raw, error) { return array.Argsort(x, axis) }

// Partition rearranges each lane so its k smallest elements occupy
// positions [0, k), in expected linear time.
func Partition(x *Raw, k, axis int) error { return array.Partition(x, k, axis) }

// Argpartition is Partition's index analogue.
func Argpartition(x *Raw, k, axis int) (*Raw, error) { return array.Argpartition(x, k, axis) }

// Record dtypes.

// FieldView selects one named field of a record array as a view.
func FieldView(r *Raw, name string) (*Raw, error) { return array.FieldView(r, name) }

// FieldNames lists the fields of a record array in declaration order.
func FieldNames(r *Raw) []string { return array.FieldNames(r) }

// Interop and formatting.

// Matrix exposes a 2-D real-valued array as a gonum mat.Matrix sharing
// the buffer.
func Matrix(r *Raw) (mat.Matrix, error) { return array.Matrix(r) }

// FromMatrix copies a gonum matrix into a fresh float64 array.
func FromMatrix(m mat.Matrix) (*Raw, error) { return array.FromMatrix(m) }

// MatMul multiplies two 2-D arrays.
func MatMul(a, b *Raw) (*Raw, error) { return array.MatMul(a, b) }

// Format renders an array with explicit print options.
func Format(r *Raw, opts PrintOptions) string { return array.Format(r, opts) }
