package array

// resolveReshapeShape validates a requested shape against an element
// count, inferring at most one -1 dimension from the others.
func resolveReshapeShape(op string, n int, shape Shape) (Shape, error) {
	out := shape.Clone()
	infer, prod := -1, 1
	for i, d := range out {
		switch {
		case d == -1:
			if infer >= 0 {
				return nil, shapeErrorf(op, "only one dimension may be -1, got %v", shape)
			}
			infer = i
		case d < 0:
			return nil, shapeErrorf(op, "dimension %d has negative size %d", i, d)
		default:
			prod *= d
		}
	}
	if infer >= 0 {
		if prod == 0 || n%prod != 0 {
			return nil, shapeErrorf(op, "cannot infer -1 in %v for %d elements", shape, n)
		}
		out[infer] = n / prod
	}
	if out.NumElements() != n {
		return nil, shapeErrorf(op, "cannot reshape %d elements into %v", n, out)
	}
	return out, nil
}

// reshapeStrides computes strides that make newShape walk the same
// elements in the same row-major order as the old geometry, without
// moving data. It reports false when the old strides cannot express the
// new grouping, in which case the caller must copy.
//
// Dimensions of extent 1 carry no ordering information; they are
// compressed out before grouping and refilled afterwards.
func reshapeStrides(oldShape Shape, old Strides, newShape Shape, itemsize int) (Strides, bool) {
	var od Shape
	var os Strides
	for i := range oldShape {
		if oldShape[i] != 1 {
			od = append(od, oldShape[i])
			os = append(os, old[i])
		}
	}
	var nd []int
	for i, d := range newShape {
		if d != 1 {
			nd = append(nd, i)
		}
	}
	ns := make(Strides, len(newShape))
	oi, ni := 0, 0
	for ni < len(nd) && oi < len(od) {
		nStart, oStart := ni, oi
		np, op := newShape[nd[ni]], od[oi]
		ni++
		oi++
		for np != op {
			if np < op {
				np *= newShape[nd[ni]]
				ni++
			} else {
				op *= od[oi]
				oi++
			}
		}
		// The old dimensions grouped together must be dense relative to
		// each other or the grouping cannot be expressed by strides.
		for k := oStart; k < oi-1; k++ {
			if os[k] != od[k+1]*os[k+1] {
				return nil, false
			}
		}
		ns[nd[ni-1]] = os[oi-1]
		for k := ni - 1; k > nStart; k-- {
			ns[nd[k-1]] = ns[nd[k]] * newShape[nd[k]]
		}
	}
	last := itemsize
	for i := len(newShape) - 1; i >= 0; i-- {
		if newShape[i] == 1 {
			ns[i] = last
		} else {
			last = ns[i] * newShape[i]
		}
	}
	return ns, true
}

// Reshape reinterprets the elements under a new shape of equal count.
// One dimension may be -1 to infer its size. The result is a view
// whenever the existing strides can express the new grouping (always
// for contiguous arrays); otherwise it is a dense copy.
//
// Example:
//
//	b, _ := array.Reshape(a, array.Shape{3, -1})
func Reshape(r *Raw, shape Shape) (*Raw, error) {
	n := r.NumElements()
	newShape, err := resolveReshapeShape("Reshape", n, shape)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return r.view(newShape, ContiguousStrides(newShape, r.dtype.size), r.off, r.dtype), nil
	}
	if ns, ok := reshapeStrides(r.shape, r.strides, newShape, r.dtype.size); ok {
		return r.view(newShape, ns, r.off, r.dtype), nil
	}
	c, err := r.Copy()
	if err != nil {
		return nil, err
	}
	c.shape = newShape
	c.strides = ContiguousStrides(newShape, r.dtype.size)
	return c, nil
}

// Ravel returns the elements as one dimension, as a view when the
// geometry allows and a copy otherwise.
func Ravel(r *Raw) (*Raw, error) {
	return Reshape(r, Shape{r.NumElements()})
}

// Flatten returns the elements as one dimension, always copying.
func Flatten(r *Raw) (*Raw, error) {
	c, err := r.Copy()
	if err != nil {
		return nil, err
	}
	c.shape = Shape{c.NumElements()}
	c.strides = ContiguousStrides(c.shape, c.dtype.size)
	return c, nil
}

// Transpose returns a view with axes permuted. With no arguments the
// axis order is reversed. Only the descriptor changes; no elements move.
//
// Example:
//
//	at, _ := array.Transpose(a)          // reverse all axes
//	bt, _ := array.Transpose(b, 0, 2, 1) // swap the trailing pair
func Transpose(r *Raw, perm ...int) (*Raw, error) {
	rank := len(r.shape)
	if len(perm) == 0 {
		perm = make([]int, rank)
		for i := range perm {
			perm[i] = rank - 1 - i
		}
	}
	if len(perm) != rank {
		return nil, shapeErrorf("Transpose", "permutation %v does not cover rank %d", perm, rank)
	}
	seen := make([]bool, rank)
	shape := make(Shape, rank)
	strides := make(Strides, rank)
	for i, p := range perm {
		ax, err := normAxis("Transpose", p, rank)
		if err != nil {
			return nil, err
		}
		if seen[ax] {
			return nil, shapeErrorf("Transpose", "axis %d repeated in permutation %v", ax, perm)
		}
		seen[ax] = true
		shape[i] = r.shape[ax]
		strides[i] = r.strides[ax]
	}
	return r.view(shape, strides, r.off, r.dtype), nil
}

// SwapAxes returns a view with two axes exchanged.
func SwapAxes(r *Raw, a, b int) (*Raw, error) {
	rank := len(r.shape)
	ax, err := normAxis("SwapAxes", a, rank)
	if err != nil {
		return nil, err
	}
	bx, err := normAxis("SwapAxes", b, rank)
	if err != nil {
		return nil, err
	}
	perm := make([]int, rank)
	for i := range perm {
		perm[i] = i
	}
	perm[ax], perm[bx] = perm[bx], perm[ax]
	return Transpose(r, perm...)
}

// ExpandDims returns a view with a new size-1 axis inserted before
// position axis. Valid positions run from -(rank+1) to rank inclusive.
func ExpandDims(r *Raw, axis int) (*Raw, error) {
	rank := len(r.shape)
	ax := axis
	if ax < 0 {
		ax += rank + 1
	}
	if ax < 0 || ax > rank {
		return nil, indexErrorf("ExpandDims", "axis %d out of range for rank %d", axis, rank)
	}
	shape := make(Shape, 0, rank+1)
	strides := make(Strides, 0, rank+1)
	shape = append(shape, r.shape[:ax]...)
	shape = append(shape, 1)
	shape = append(shape, r.shape[ax:]...)
	strides = append(strides, r.strides[:ax]...)
	strides = append(strides, 0)
	strides = append(strides, r.strides[ax:]...)
	return r.view(shape, strides, r.off, r.dtype), nil
}

// Squeeze returns a view with size-1 axes removed. With no arguments
// every size-1 axis goes; otherwise only the named axes, each of which
// must have extent 1.
func Squeeze(r *Raw, axes ...int) (*Raw, error) {
	rank := len(r.shape)
	drop := make([]bool, rank)
	if len(axes) == 0 {
		for d, size := range r.shape {
			if size == 1 {
				drop[d] = true
			}
		}
	} else {
		for _, a := range axes {
			ax, err := normAxis("Squeeze", a, rank)
			if err != nil {
				return nil, err
			}
			if r.shape[ax] != 1 {
				return nil, shapeErrorf("Squeeze", "axis %d has size %d, can only squeeze size 1", ax, r.shape[ax])
			}
			drop[ax] = true
		}
	}
	shape := make(Shape, 0, rank)
	strides := make(Strides, 0, rank)
	for d := range r.shape {
		if drop[d] {
			continue
		}
		shape = append(shape, r.shape[d])
		strides = append(strides, r.strides[d])
	}
	return r.view(shape, strides, r.off, r.dtype), nil
}

// BroadcastTo returns a read-intended view with the target shape, using
// zero strides to repeat size-1 and missing dimensions virtually. No
// elements are copied; writing through the view writes the shared slots.
//
// Example:
//
//	col, _ := array.Reshape(v, array.Shape{3, 1})
//	grid, _ := array.BroadcastTo(col, array.Shape{3, 4})
func BroadcastTo(r *Raw, target Shape) (*Raw, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	bs, err := BroadcastShapes(r.shape, target)
	if err != nil {
		return nil, err
	}
	if !bs.Equal(target) {
		return nil, &BroadcastError{A: r.shape.Clone(), B: target.Clone()}
	}
	return r.view(target.Clone(), broadcastStrides(r.shape, r.strides, target), r.off, r.dtype), nil
}
