package array

// Rng selects elements along one axis with Python range semantics:
// negative start or stop count from the end, bounds clamp to the axis
// rather than erroring, and a negative step walks backwards. The zero
// value selects the whole axis.
type Rng struct {
	start, stop, step          int
	hasStart, hasStop, hasStep bool
}

// All selects every element of the axis.
func All() Rng { return Rng{} }

// R selects the half-open interval [start, stop) with step 1.
func R(start, stop int) Rng {
	return Rng{start: start, stop: stop, hasStart: true, hasStop: true}
}

// Rs selects the half-open interval [start, stop) with the given step.
func Rs(start, stop, step int) Rng {
	return Rng{start: start, stop: stop, step: step, hasStart: true, hasStop: true, hasStep: true}
}

// From selects from start to the end of the axis.
func From(start int) Rng { return Rng{start: start, hasStart: true} }

// UpTo selects from the beginning of the axis up to stop, exclusive.
func UpTo(stop int) Rng { return Rng{stop: stop, hasStop: true} }

// Stepped selects the whole axis with the given step. Stepped(-1)
// reverses the axis.
func Stepped(step int) Rng { return Rng{step: step, hasStep: true} }

// resolve normalizes the range against an axis of size n, returning the
// first selected index, the selection length and the step. This follows
// the Python slice.indices algorithm: defaults depend on the step sign
// and out-of-range bounds clamp silently.
func (rg Rng) resolve(op string, n int) (start, count, step int, err error) {
	step = 1
	if rg.hasStep {
		step = rg.step
		if step == 0 {
			return 0, 0, 0, indexErrorf(op, "slice step cannot be zero")
		}
	}
	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	if step > 0 {
		start = 0
		if rg.hasStart {
			start = rg.start
			if start < 0 {
				start += n
			}
			start = clamp(start, 0, n)
		}
		stop := n
		if rg.hasStop {
			stop = rg.stop
			if stop < 0 {
				stop += n
			}
			stop = clamp(stop, 0, n)
		}
		if stop > start {
			count = (stop - start - 1) / step
			count++
		}
		return start, count, step, nil
	}
	start = n - 1
	if rg.hasStart {
		start = rg.start
		if start < 0 {
			start += n
		}
		start = clamp(start, -1, n-1)
	}
	stop := -1
	if rg.hasStop {
		stop = rg.stop
		if stop < 0 {
			stop += n
		}
		stop = clamp(stop, -1, n-1)
	}
	if start > stop {
		count = (start - stop - 1) / -step
		count++
	}
	return start, count, step, nil
}

// Slice returns a view selecting a range along each leading axis.
// Trailing axes without a range keep their full extent. The view shares
// the source buffer; writes through it are visible in the source.
//
// Example:
//
//	b, _ := array.Slice(a, array.R(1, 4), array.Stepped(2))
func Slice(r *Raw, rgs ...Rng) (*Raw, error) {
	if len(rgs) > len(r.shape) {
		return nil, indexErrorf("Slice", "got %d ranges for rank %d", len(rgs), len(r.shape))
	}
	shape := r.shape.Clone()
	strides := r.strides.Clone()
	off := r.off
	for d, rg := range rgs {
		start, count, step, err := rg.resolve("Slice", r.shape[d])
		if err != nil {
			return nil, err
		}
		if count > 0 {
			off += start * r.strides[d]
		}
		shape[d] = count
		strides[d] = r.strides[d] * step
	}
	return r.view(shape, strides, off, r.dtype), nil
}

// Sel returns a view with the given axis removed, fixed at index i.
// Negative i counts from the end of the axis.
//
// Example:
//
//	row, _ := array.Sel(a, 0, -1) // last row of a matrix
func Sel(r *Raw, axis, i int) (*Raw, error) {
	ax, err := normAxis("Sel", axis, len(r.shape))
	if err != nil {
		return nil, err
	}
	j, err := normIndex("Sel", i, ax, r.shape[ax])
	if err != nil {
		return nil, err
	}
	shape := make(Shape, 0, len(r.shape)-1)
	strides := make(Strides, 0, len(r.shape)-1)
	for d := range r.shape {
		if d == ax {
			continue
		}
		shape = append(shape, r.shape[d])
		strides = append(strides, r.strides[d])
	}
	return r.view(shape, strides, r.off+j*r.strides[ax], r.dtype), nil
}

// narrow is Sel's keep-the-axis sibling: a view of [start, start+count)
// along axis with step 1. Callers guarantee the bounds.
func (r *Raw) narrow(axis, start, count int) *Raw {
	shape := r.shape.Clone()
	shape[axis] = count
	return r.view(shape, r.strides.Clone(), r.off+start*r.strides[axis], r.dtype)
}

// Assign copies src into the elements dst selects, broadcasting src to
// dst's shape and converting to dst's dtype. When both arrays share one
// buffer the source is materialized first so overlapping views assign
// correctly.
//
// Example:
//
//	row, _ := array.Sel(a, 0, 1)
//	_ = array.Assign(row, ones) // writes through the view into a
func Assign(dst, src *Raw) error {
	bs, err := BroadcastShapes(dst.shape, src.shape)
	if err != nil {
		return err
	}
	if !bs.Equal(dst.shape) {
		return shapeErrorf("Assign", "source shape %v would broadcast beyond target %v", src.shape, dst.shape)
	}
	if dst.buf == src.buf {
		tmp, err := src.Copy()
		if err != nil {
			return err
		}
		defer tmp.Release()
		src = tmp
	}
	view := Raw{
		buf:     src.buf,
		shape:   dst.shape,
		strides: broadcastStrides(src.shape, src.strides, dst.shape),
		off:     src.off,
		dtype:   src.dtype,
	}
	return castInto(dst, &view)
}
