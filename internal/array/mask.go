package array

// maskCheck validates a boolean selector against the array it filters.
func maskCheck(op string, x, mask *Raw) error {
	if mask.dtype.kind != KindBool {
		return dtypeErrorf(op, "mask must be bool, got %s", mask.dtype)
	}
	if !mask.shape.Equal(x.shape) {
		return shapeErrorf(op, "mask shape %v does not match array shape %v", mask.shape, x.shape)
	}
	return nil
}

// CountTrue returns the number of true elements in a bool array.
func CountTrue(mask *Raw) (int, error) {
	if mask.dtype.kind != KindBool {
		return 0, dtypeErrorf("CountTrue", "mask must be bool, got %s", mask.dtype)
	}
	n := 0
	it := newNditer(mask.shape, []int{mask.off}, []Strides{mask.strides})
	for ; !it.done(); it.advance() {
		if load[bool](mask.buf.data, it.offs[0]) {
			n++
		}
	}
	return n, nil
}

// Compress selects the elements of x where mask is true, in row-major
// order. The mask must match x's shape exactly. The result is always a
// fresh 1-D array; selected elements are generally scattered, so no
// view can describe them.
//
// Example:
//
//	pos, _ := array.Gt(x, zero)
//	vals, _ := array.Compress(x, pos)
func Compress(x, mask *Raw) (*Raw, error) {
	if err := maskCheck("Compress", x, mask); err != nil {
		return nil, err
	}
	n, err := CountTrue(mask)
	if err != nil {
		return nil, err
	}
	out, err := NewRawUninit(x.dtype, Shape{n})
	if err != nil {
		return nil, err
	}
	isz := x.dtype.size
	do := out.off
	it := newNditer(x.shape, []int{x.off, mask.off}, []Strides{x.strides, mask.strides})
	for ; !it.done(); it.advance() {
		if load[bool](mask.buf.data, it.offs[1]) {
			copy(out.buf.data[do:do+isz], x.buf.data[it.offs[0]:it.offs[0]+isz])
			do += isz
		}
	}
	return out, nil
}

// MaskSet writes src into the elements of x where mask is true, in
// place and in row-major mask order. src is either one element,
// repeated into every selected position, or a 1-D array holding exactly
// one value per true mask entry. Everything is validated before the
// first write.
//
// Example:
//
//	neg, _ := array.Lt(x, zero)
//	_ = array.MaskSet(x, neg, zero) // clamp negatives in place
func MaskSet(x, mask, src *Raw) error {
	if err := maskCheck("MaskSet", x, mask); err != nil {
		return err
	}
	n, err := CountTrue(mask)
	if err != nil {
		return err
	}
	switch {
	case src.NumElements() == 1:
	case len(src.shape) == 1 && src.shape[0] == n:
	default:
		return shapeErrorf("MaskSet", "source shape %v fits neither one element nor the %d selected", src.shape, n)
	}
	sc, err := Cast(src, x.dtype)
	if err != nil {
		return err
	}
	defer sc.Release()
	isz := x.dtype.size
	so := sc.off
	step := isz
	if sc.NumElements() == 1 {
		step = 0
	}
	it := newNditer(x.shape, []int{x.off, mask.off}, []Strides{x.strides, mask.strides})
	for ; !it.done(); it.advance() {
		if load[bool](mask.buf.data, it.offs[1]) {
			copy(x.buf.data[it.offs[0]:it.offs[0]+isz], sc.buf.data[so:so+isz])
			so += step
		}
	}
	return nil
}

// Nonzero returns the coordinates of every true element as one int64
// array per axis, in row-major order. The results plug straight into
// TakeAt, which treats a mask as an implicit list of integer indices.
func Nonzero(mask *Raw) ([]*Raw, error) {
	if mask.dtype.kind != KindBool {
		return nil, dtypeErrorf("Nonzero", "mask must be bool, got %s", mask.dtype)
	}
	n, err := CountTrue(mask)
	if err != nil {
		return nil, err
	}
	rank := len(mask.shape)
	out := make([]*Raw, rank)
	for d := range out {
		r, err := NewRawUninit(Int64, Shape{n})
		if err != nil {
			for _, p := range out[:d] {
				p.Release()
			}
			return nil, err
		}
		out[d] = r
	}
	j := 0
	it := newNditer(mask.shape, []int{mask.off}, []Strides{mask.strides})
	for ; !it.done(); it.advance() {
		if load[bool](mask.buf.data, it.offs[0]) {
			for d := range out {
				store(out[d].buf.data, out[d].off+j*8, int64(it.coords[d]))
			}
			j++
		}
	}
	return out, nil
}

// Where selects elementwise from x where cond is true and from y where
// it is false. All three operands broadcast together; x and y promote
// to a common dtype.
//
// Example:
//
//	clipped, _ := array.Where(tooBig, limit, x)
func Where(cond, x, y *Raw) (*Raw, error) {
	if cond.dtype.kind != KindBool {
		return nil, dtypeErrorf("Where", "condition must be bool, got %s", cond.dtype)
	}
	dt, err := PromoteTypes(x.dtype, y.dtype)
	if err != nil {
		return nil, err
	}
	shape, err := BroadcastShapes(x.shape, y.shape)
	if err != nil {
		return nil, err
	}
	shape, err = BroadcastShapes(cond.shape, shape)
	if err != nil {
		return nil, err
	}
	xc, err := Cast(x, dt)
	if err != nil {
		return nil, err
	}
	defer xc.Release()
	yc, err := Cast(y, dt)
	if err != nil {
		return nil, err
	}
	defer yc.Release()
	out, err := NewRawUninit(dt, shape)
	if err != nil {
		return nil, err
	}
	cv := broadcastViewRaw(cond, shape)
	xv := broadcastViewRaw(xc, shape)
	yv := broadcastViewRaw(yc, shape)
	isz := dt.size
	it := newNditer(shape,
		[]int{out.off, cv.off, xv.off, yv.off},
		[]Strides{out.strides, cv.strides, xv.strides, yv.strides})
	for ; !it.done(); it.advance() {
		src, so := yv.buf.data, it.offs[3]
		if load[bool](cv.buf.data, it.offs[1]) {
			src, so = xv.buf.data, it.offs[2]
		}
		copy(out.buf.data[it.offs[0]:it.offs[0]+isz], src[so:so+isz])
	}
	return out, nil
}
