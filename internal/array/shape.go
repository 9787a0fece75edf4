package array

import "fmt"

// Shape describes the extent of each dimension. A nil or empty Shape is
// a rank-0 scalar holding exactly one element. Extents may be zero;
// negative extents are invalid.
type Shape []int

// NumElements returns the total number of elements, the product of all
// extents. Rank-0 shapes hold one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every extent is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return shapeErrorf("Shape.Validate", "dimension %d has negative size %d", i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical rank and extents.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}

// Strides gives the byte distance between consecutive elements along
// each dimension. Entries may be zero (broadcast repeat) or negative
// (reversed view).
type Strides []int

// Equal reports whether two stride vectors match entry for entry.
func (s Strides) Equal(other Strides) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the strides.
func (s Strides) Clone() Strides {
	if s == nil {
		return nil
	}
	out := make(Strides, len(s))
	copy(out, s)
	return out
}

// ContiguousStrides computes row-major byte strides for a shape with the
// given element width: the last dimension moves one element at a time
// and each earlier dimension spans the product of the later extents.
func ContiguousStrides(shape Shape, itemsize int) Strides {
	strides := make(Strides, len(shape))
	acc := itemsize
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// isContiguous reports whether a shape/strides pair walks the buffer in
// dense row-major order. Dimensions of extent 1 impose no constraint,
// and any empty shape is trivially contiguous.
func isContiguous(shape Shape, strides Strides, itemsize int) bool {
	acc := itemsize
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] == 0 {
			return true
		}
		if shape[i] != 1 && strides[i] != acc {
			return false
		}
		acc *= shape[i]
	}
	return true
}

// BroadcastShapes aligns two shapes from the trailing dimension, padding
// the shorter with leading 1s. Paired extents must be equal or one of
// them 1; the result takes the larger extent.
//
// Example:
//
//	BroadcastShapes(Shape{5, 1, 3}, Shape{4, 3}) // Shape{5, 4, 3}
func BroadcastShapes(a, b Shape) (Shape, error) {
	rank := maxInt(len(a), len(b))
	out := make(Shape, rank)
	for i := 1; i <= rank; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			out[rank-i] = da
		case da == 1:
			out[rank-i] = db
		case db == 1:
			out[rank-i] = da
		default:
			return nil, &BroadcastError{A: a.Clone(), B: b.Clone()}
		}
	}
	return out, nil
}

// broadcastStrides maps the strides of an operand onto a broadcast
// result shape: dimensions the operand lacks, or holds with extent 1,
// get stride 0 so the single value repeats virtually. The operand shape
// must already be broadcast-compatible with out.
func broadcastStrides(shape Shape, strides Strides, out Shape) Strides {
	bs := make(Strides, len(out))
	for i := 1; i <= len(shape); i++ {
		if shape[len(shape)-i] != 1 {
			bs[len(out)-i] = strides[len(strides)-i]
		}
	}
	return bs
}

// normAxis resolves a possibly negative axis against a rank.
func normAxis(op string, axis, rank int) (int, error) {
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, indexErrorf(op, "axis %d out of range for rank %d", axis, rank)
	}
	return axis, nil
}

// normIndex resolves a possibly negative element index against a
// dimension of the given size.
func normIndex(op string, idx, axis, size int) (int, error) {
	i := idx
	if i < 0 {
		i += size
	}
	if i < 0 || i >= size {
		return 0, &IndexError{Op: op, Index: idx, Axis: axis, Size: size}
	}
	return i, nil
}
