package array

import "fmt"

// Array is the statically typed wrapper over Raw. Where the Raw
// functions return errors, Array methods panic: the typed surface is
// for code whose shapes are known by construction, and a shape or dtype
// failure there is a programming error.
//
// Example:
//
//	a, _ := array.NewArray([]float64{1, 2, 3, 4}, array.Shape{2, 2})
//	b := a.Add(a).MulScalar(0.5)
type Array[T DType] struct {
	raw *Raw
}

// NewArray copies a Go slice into a dense array of the given shape.
func NewArray[T DType](data []T, shape Shape) (*Array[T], error) {
	r, err := FromSlice(data, shape)
	if err != nil {
		return nil, err
	}
	return &Array[T]{raw: r}, nil
}

// AsArray wraps a Raw whose dtype matches T. The wrapper shares the
// buffer; it is a typed view, not a copy.
func AsArray[T DType](r *Raw) (*Array[T], error) {
	want := dtypeOf[T]()
	if !r.dtype.Equal(want) {
		return nil, dtypeErrorf("AsArray", "array dtype is %s, not %s", r.dtype, want)
	}
	return &Array[T]{raw: r.Clone()}, nil
}

// ZerosOf allocates a zero-filled typed array.
func ZerosOf[T DType](shape Shape) (*Array[T], error) {
	r, err := Zeros(dtypeOf[T](), shape)
	if err != nil {
		return nil, err
	}
	return &Array[T]{raw: r}, nil
}

// OnesOf allocates a one-filled typed array.
func OnesOf[T DType](shape Shape) (*Array[T], error) {
	r, err := Ones(dtypeOf[T](), shape)
	if err != nil {
		return nil, err
	}
	return &Array[T]{raw: r}, nil
}

// FullOf allocates a typed array filled with one value.
func FullOf[T DType](shape Shape, v T) (*Array[T], error) {
	r, err := Full(dtypeOf[T](), shape, v)
	if err != nil {
		return nil, err
	}
	return &Array[T]{raw: r}, nil
}

// wrap converts a Raw produced by an engine call back into the typed
// world, panicking when the operation changed the dtype out from under
// T (integer Div, for example, promotes; use the Raw API for those).
func wrap[T DType](r *Raw, err error) *Array[T] {
	if err != nil {
		panic(err)
	}
	a, err := AsArray[T](r)
	if err != nil {
		r.Release()
		panic(err)
	}
	r.Release()
	return a
}

// Raw returns the untyped descriptor. The buffer stays shared.
func (a *Array[T]) Raw() *Raw { return a.raw }

// Shape returns the extents.
func (a *Array[T]) Shape() Shape { return a.raw.Shape() }

// DType returns the element descriptor.
func (a *Array[T]) DType() DataType { return a.raw.DType() }

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int { return a.raw.Rank() }

// Len returns the total element count.
func (a *Array[T]) Len() int { return a.raw.NumElements() }

// Release drops the wrapper's hold on the buffer.
func (a *Array[T]) Release() { a.raw.Release() }

func (a *Array[T]) String() string { return a.raw.String() }

// At reads one element at a full-rank index. Negative indices count
// from the end of their axis.
func (a *Array[T]) At(ix ...int) T {
	off, err := a.raw.elemOffset("At", ix)
	if err != nil {
		panic(err)
	}
	return load[T](a.raw.buf.data, off)
}

// Set writes one element at a full-rank index.
func (a *Array[T]) Set(v T, ix ...int) {
	off, err := a.raw.elemOffset("Set", ix)
	if err != nil {
		panic(err)
	}
	store(a.raw.buf.data, off, v)
}

// Item returns the sole element of a one-element array.
func (a *Array[T]) Item() T {
	if a.raw.NumElements() != 1 {
		panic(fmt.Sprintf("Item: array holds %d elements, want exactly 1", a.raw.NumElements()))
	}
	return load[T](a.raw.buf.data, a.raw.off)
}

// Data exposes the contiguous storage as a typed slice sharing the
// buffer. Panics on non-contiguous views.
func (a *Array[T]) Data() []T { return dataOf[T](a.raw) }

// Copy materializes an independent dense array.
func (a *Array[T]) Copy() *Array[T] {
	return wrap[T](a.raw.Copy())
}

// Clone returns a new typed descriptor sharing the buffer.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{raw: a.raw.Clone()}
}

// Reshape views or copies into a new shape (see Reshape).
func (a *Array[T]) Reshape(shape Shape) *Array[T] {
	return wrap[T](Reshape(a.raw, shape))
}

// Transpose permutes the axes as a view; no axes reverses them all.
func (a *Array[T]) Transpose(perm ...int) *Array[T] {
	return wrap[T](Transpose(a.raw, perm...))
}

// T reverses all axes as a view.
func (a *Array[T]) T() *Array[T] {
	return wrap[T](Transpose(a.raw))
}

// Slice selects a range per leading axis and returns a typed view.
func (a *Array[T]) Slice(rgs ...Rng) *Array[T] {
	return wrap[T](Slice(a.raw, rgs...))
}

// Sel fixes one axis at an index and returns a rank-1-lower view.
func (a *Array[T]) Sel(axis, i int) *Array[T] {
	return wrap[T](Sel(a.raw, axis, i))
}

// Ravel views or copies the array as 1-D.
func (a *Array[T]) Ravel() *Array[T] {
	return wrap[T](Ravel(a.raw))
}

// ExpandDims inserts a unit axis at the given position as a view.
func (a *Array[T]) ExpandDims(axis int) *Array[T] {
	return wrap[T](ExpandDims(a.raw, axis))
}

// Squeeze drops unit axes as a view.
func (a *Array[T]) Squeeze(axes ...int) *Array[T] {
	return wrap[T](Squeeze(a.raw, axes...))
}

// BroadcastTo expands to a larger shape with stride-0 repetition.
func (a *Array[T]) BroadcastTo(shape Shape) *Array[T] {
	return wrap[T](BroadcastTo(a.raw, shape))
}

// Arithmetic. Results keep T; operations that would promote (integer
// Div, for instance) panic and belong on the Raw API.

func (a *Array[T]) Add(b *Array[T]) *Array[T] { return wrap[T](Add(a.raw, b.raw)) }
func (a *Array[T]) Sub(b *Array[T]) *Array[T] { return wrap[T](Sub(a.raw, b.raw)) }
func (a *Array[T]) Mul(b *Array[T]) *Array[T] { return wrap[T](Mul(a.raw, b.raw)) }
func (a *Array[T]) Div(b *Array[T]) *Array[T] { return wrap[T](Div(a.raw, b.raw)) }
func (a *Array[T]) Neg() *Array[T]            { return wrap[T](Neg(a.raw)) }

func (a *Array[T]) AddScalar(v T) *Array[T] { return wrap[T](ApplyScalar(OpAdd, a.raw, v)) }
func (a *Array[T]) SubScalar(v T) *Array[T] { return wrap[T](ApplyScalar(OpSub, a.raw, v)) }
func (a *Array[T]) MulScalar(v T) *Array[T] { return wrap[T](ApplyScalar(OpMul, a.raw, v)) }
func (a *Array[T]) DivScalar(v T) *Array[T] { return wrap[T](ApplyScalar(OpDiv, a.raw, v)) }

// Comparisons yield bool arrays.

func (a *Array[T]) Eq(b *Array[T]) *Array[bool] { return wrap[bool](Eq(a.raw, b.raw)) }
func (a *Array[T]) Ne(b *Array[T]) *Array[bool] { return wrap[bool](Ne(a.raw, b.raw)) }
func (a *Array[T]) Lt(b *Array[T]) *Array[bool] { return wrap[bool](Lt(a.raw, b.raw)) }
func (a *Array[T]) Le(b *Array[T]) *Array[bool] { return wrap[bool](Le(a.raw, b.raw)) }
func (a *Array[T]) Gt(b *Array[T]) *Array[bool] { return wrap[bool](Gt(a.raw, b.raw)) }
func (a *Array[T]) Ge(b *Array[T]) *Array[bool] { return wrap[bool](Ge(a.raw, b.raw)) }

// Reductions.

// Sum folds addition over every element.
func (a *Array[T]) Sum() T {
	return itemOf[T](Sum(a.raw))
}

// Prod folds multiplication over every element.
func (a *Array[T]) Prod() T {
	return itemOf[T](Prod(a.raw))
}

// Min returns the smallest element. Panics on empty arrays.
func (a *Array[T]) Min() T {
	return itemOf[T](Min(a.raw))
}

// Max returns the largest element. Panics on empty arrays.
func (a *Array[T]) Max() T {
	return itemOf[T](Max(a.raw))
}

// Mean averages every element in float64.
func (a *Array[T]) Mean() float64 {
	r, err := Mean(a.raw)
	if err != nil {
		panic(err)
	}
	defer r.Release()
	v, err := r.ItemAny()
	if err != nil {
		panic(err)
	}
	f, ok := toFloat64(v)
	if !ok {
		panic(fmt.Sprintf("Mean: non-real result %T", v))
	}
	return f
}

// SumAxis folds addition along one axis.
func (a *Array[T]) SumAxis(axis int, keepdims bool) *Array[T] {
	return wrap[T](SumAxis(a.raw, axis, keepdims))
}

// MaxAxis folds maximum along one axis.
func (a *Array[T]) MaxAxis(axis int, keepdims bool) *Array[T] {
	return wrap[T](MaxAxis(a.raw, axis, keepdims))
}

// MinAxis folds minimum along one axis.
func (a *Array[T]) MinAxis(axis int, keepdims bool) *Array[T] {
	return wrap[T](MinAxis(a.raw, axis, keepdims))
}

// ArgMax returns the row-major position of the largest element.
func (a *Array[T]) ArgMax() int {
	i, err := ArgMax(a.raw)
	if err != nil {
		panic(err)
	}
	return i
}

// Sorting.

// Sort reorders each lane along the axis in place.
func (a *Array[T]) Sort(axis int) {
	if err := Sort(a.raw, axis); err != nil {
		panic(err)
	}
}

// Argsort returns the stable per-lane sort permutation.
func (a *Array[T]) Argsort(axis int) *Array[int64] {
	return wrap[int64](Argsort(a.raw, axis))
}

// MatMul multiplies two 2-D typed arrays.
func (a *Array[T]) MatMul(b *Array[T]) *Array[T] {
	return wrap[T](MatMul(a.raw, b.raw))
}

func itemOf[T DType](r *Raw, err error) T {
	if err != nil {
		panic(err)
	}
	defer r.Release()
	want := dtypeOf[T]()
	if !r.dtype.Equal(want) {
		panic(fmt.Sprintf("reduction dtype is %s, not %s", r.dtype, want))
	}
	return load[T](r.buf.data, r.off)
}
