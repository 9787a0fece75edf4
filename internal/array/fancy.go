package array

// normalizeIndices validates an integer index array against an axis of
// size n and materializes it as dense non-negative int64 positions.
// Every index is checked before the caller writes anything.
func normalizeIndices(op string, ix *Raw, axis, n int) (*Raw, error) {
	if !ix.dtype.IsInteger() {
		return nil, dtypeErrorf(op, "index array must be integer, got %s", ix.dtype)
	}
	out, err := Cast(ix, Int64)
	if err != nil {
		return nil, err
	}
	data := dataOf[int64](out)
	for i, v := range data {
		j := v
		if j < 0 {
			j += int64(n)
		}
		if j < 0 || j >= int64(n) {
			out.Release()
			return nil, &IndexError{Op: op, Index: int(v), Axis: axis, Size: n}
		}
		data[i] = j
	}
	return out, nil
}

// Take selects whole subarrays of x by position along axis 0. The
// result shape is ix's shape followed by x's remaining dimensions, and
// it is always a fresh copy: the selected rows are generally scattered
// through the source buffer. Negative indices count from the end;
// anything out of range is an IndexError before any element is copied.
//
// Example:
//
//	rows, _ := array.FromSlice([]int64{3, 7, 4, 5}, array.Shape{2, 2})
//	picked, _ := array.Take(x, rows) // shape [2 2 ...x.Shape()[1:]]
func Take(x, ix *Raw) (*Raw, error) {
	if len(x.shape) == 0 {
		return nil, shapeErrorf("Take", "cannot index a rank-0 array")
	}
	ixc, err := normalizeIndices("Take", ix, 0, x.shape[0])
	if err != nil {
		return nil, err
	}
	defer ixc.Release()
	outShape := make(Shape, 0, len(ix.shape)+len(x.shape)-1)
	outShape = append(outShape, ix.shape...)
	outShape = append(outShape, x.shape[1:]...)
	out, err := NewRawUninit(x.dtype, outShape)
	if err != nil {
		return nil, err
	}
	// View the result as [k, ...rest] so each index fills one row.
	flatShape := append(Shape{ixc.NumElements()}, x.shape[1:]...)
	flat := out.view(flatShape, ContiguousStrides(flatShape, x.dtype.size), out.off, x.dtype)
	defer flat.Release()
	for j, i := range dataOf[int64](ixc) {
		src := x.narrow(0, int(i), 1)
		dst := flat.narrow(0, j, 1)
		copyRegion(dst, src)
		src.Release()
		dst.Release()
	}
	return out, nil
}

// TakeAt gathers single elements at explicit coordinates: one integer
// array per dimension of x, broadcast against each other. The result
// shape is the broadcast shape of the index arrays, and the values are
// always copied out.
//
// Example:
//
//	v, _ := array.TakeAt(m, rows, cols) // v[i] = m[rows[i], cols[i]]
func TakeAt(x *Raw, ixs ...*Raw) (*Raw, error) {
	rank := len(x.shape)
	if len(ixs) != rank {
		return nil, shapeErrorf("TakeAt", "got %d index arrays for rank %d", len(ixs), rank)
	}
	if rank == 0 {
		return x.Copy()
	}
	shape, norm, err := alignIndices("TakeAt", x, ixs)
	if err != nil {
		return nil, err
	}
	defer releaseAll(norm)
	out, err := NewRawUninit(x.dtype, shape)
	if err != nil {
		return nil, err
	}
	scatterGather(out, x, norm, shape, false)
	return out, nil
}

// alignIndices normalizes every index array and broadcasts them to a
// common shape, returning stride-aligned dense index views.
func alignIndices(op string, x *Raw, ixs []*Raw) (Shape, []*Raw, error) {
	shape := ixs[0].shape
	for _, ix := range ixs[1:] {
		s, err := BroadcastShapes(shape, ix.shape)
		if err != nil {
			return nil, nil, err
		}
		shape = s
	}
	norm := make([]*Raw, len(ixs))
	for d, ix := range ixs {
		n, err := normalizeIndices(op, ix, d, x.shape[d])
		if err != nil {
			releaseAll(norm[:d])
			return nil, nil, err
		}
		norm[d] = n
	}
	return shape, norm, nil
}

func releaseAll(rs []*Raw) {
	for _, r := range rs {
		if r != nil {
			r.Release()
		}
	}
}

// scatterGather moves single elements between x and the dense array
// flat, one per broadcast index tuple. When scatter is set the flow is
// flat→x (duplicate indices resolve last-write-wins in row-major
// order); otherwise x→flat.
func scatterGather(flat, x *Raw, norm []*Raw, shape Shape, scatter bool) {
	isz := x.dtype.size
	base := make([]int, 0, len(norm)+1)
	strides := make([]Strides, 0, len(norm)+1)
	base = append(base, flat.off)
	strides = append(strides, flat.strides)
	views := make([]Raw, len(norm))
	for d, ix := range norm {
		views[d] = broadcastViewRaw(ix, shape)
		base = append(base, views[d].off)
		strides = append(strides, views[d].strides)
	}
	it := newNditer(shape, base, strides)
	for ; !it.done(); it.advance() {
		xo := x.off
		for d := range norm {
			xo += int(load[int64](norm[d].buf.data, it.offs[d+1])) * x.strides[d]
		}
		if scatter {
			copy(x.buf.data[xo:xo+isz], flat.buf.data[it.offs[0]:it.offs[0]+isz])
		} else {
			copy(flat.buf.data[it.offs[0]:it.offs[0]+isz], x.buf.data[xo:xo+isz])
		}
	}
}

// Put writes whole subarrays of src into x by position along axis 0, in
// place. src broadcasts against the shape Take would return for the
// same indices. When an index repeats, writes land in row-major index
// order and the last one wins. All indices and shapes are validated
// before the first write.
//
// Example:
//
//	_ = array.Put(x, ix, row) // x[ix[j]] = row for every j
func Put(x, ix, src *Raw) error {
	if len(x.shape) == 0 {
		return shapeErrorf("Put", "cannot index a rank-0 array")
	}
	ixc, err := normalizeIndices("Put", ix, 0, x.shape[0])
	if err != nil {
		return err
	}
	defer ixc.Release()
	full := make(Shape, 0, len(ix.shape)+len(x.shape)-1)
	full = append(full, ix.shape...)
	full = append(full, x.shape[1:]...)
	bs, err := BroadcastShapes(full, src.shape)
	if err != nil {
		return err
	}
	if !bs.Equal(full) {
		return shapeErrorf("Put", "source shape %v would broadcast beyond target %v", src.shape, full)
	}
	// Materialize in x's dtype up front: conversion errors must surface
	// before any element of x changes, and a src aliasing x must read
	// pre-write values.
	sc, err := Cast(src, x.dtype)
	if err != nil {
		return err
	}
	defer sc.Release()
	sv := broadcastViewRaw(sc, full)
	// Row j of the flattened index list reads the source slot at the
	// j-th position of ix's shape; the trailing dims pass through.
	rowOffs := flattenOffsets(ix.shape, sv.strides[:len(ix.shape)])
	tail := sv.strides[len(ix.shape):]
	for j, i := range dataOf[int64](ixc) {
		dst, err := Sel(x, 0, int(i))
		if err != nil {
			return err
		}
		row := Raw{buf: sv.buf, shape: x.shape[1:], strides: tail, off: sv.off + rowOffs[j], dtype: sv.dtype}
		copyRegion(dst, &row)
		dst.Release()
	}
	return nil
}

// flattenOffsets enumerates the byte offset of every position of shape
// under the given strides, in row-major order.
func flattenOffsets(shape Shape, strides Strides) []int {
	out := make([]int, 0, shape.NumElements())
	it := newNditer(shape, []int{0}, []Strides{strides})
	for ; !it.done(); it.advance() {
		out = append(out, it.offs[0])
	}
	return out
}

// PutAt scatters single elements of src into x at explicit coordinates,
// one integer array per dimension, broadcast together as in TakeAt. src
// broadcasts to the index shape. Duplicate coordinates resolve
// last-write-wins in row-major order of the index arrays; everything is
// validated before the first write.
func PutAt(x *Raw, ixs []*Raw, src *Raw) error {
	rank := len(x.shape)
	if len(ixs) != rank {
		return shapeErrorf("PutAt", "got %d index arrays for rank %d", len(ixs), rank)
	}
	if rank == 0 {
		return shapeErrorf("PutAt", "cannot index a rank-0 array")
	}
	shape, norm, err := alignIndices("PutAt", x, ixs)
	if err != nil {
		return err
	}
	defer releaseAll(norm)
	bs, err := BroadcastShapes(shape, src.shape)
	if err != nil {
		return err
	}
	if !bs.Equal(shape) {
		return shapeErrorf("PutAt", "source shape %v would broadcast beyond index shape %v", src.shape, shape)
	}
	sc, err := Cast(src, x.dtype)
	if err != nil {
		return err
	}
	defer sc.Release()
	sv := broadcastViewRaw(sc, shape)
	scatterGather(&sv, x, norm, shape, true)
	return nil
}
