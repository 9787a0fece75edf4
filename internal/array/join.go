package array

// promoteAll folds PromoteTypes over the dtypes of several operands.
func promoteAll(op string, arrays []*Raw) (DataType, error) {
	dt := arrays[0].dtype
	for _, a := range arrays[1:] {
		p, err := PromoteTypes(dt, a.dtype)
		if err != nil {
			return DataType{}, dtypeErrorf(op, "%v", err)
		}
		dt = p
	}
	return dt, nil
}

// Concat joins arrays along an existing axis. All inputs must share
// rank and every extent except the one being joined; dtypes promote to
// a common kind. The result is always a fresh dense array.
//
// Example:
//
//	c, _ := array.Concat(0, a, b) // rows of a then rows of b
func Concat(axis int, arrays ...*Raw) (*Raw, error) {
	if len(arrays) == 0 {
		return nil, shapeErrorf("Concat", "needs at least one array")
	}
	rank := len(arrays[0].shape)
	ax, err := normAxis("Concat", axis, rank)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, a := range arrays {
		if len(a.shape) != rank {
			return nil, shapeErrorf("Concat", "rank mismatch: %d and %d", rank, len(a.shape))
		}
		for d := range a.shape {
			if d != ax && a.shape[d] != arrays[0].shape[d] {
				return nil, shapeErrorf("Concat", "shapes %v and %v differ on axis %d", arrays[0].shape, a.shape, d)
			}
		}
		total += a.shape[ax]
	}
	dt, err := promoteAll("Concat", arrays)
	if err != nil {
		return nil, err
	}
	outShape := arrays[0].shape.Clone()
	outShape[ax] = total
	out, err := NewRawUninit(dt, outShape)
	if err != nil {
		return nil, err
	}
	cursor := 0
	for _, a := range arrays {
		seg := out.narrow(ax, cursor, a.shape[ax])
		err := castInto(seg, a)
		seg.Release()
		if err != nil {
			out.Release()
			return nil, err
		}
		cursor += a.shape[ax]
	}
	return out, nil
}

// Stack joins arrays of identical shape along a new axis inserted at
// the given position.
//
// Example:
//
//	s, _ := array.Stack(0, a, b) // shape [2 ...a.Shape()]
func Stack(axis int, arrays ...*Raw) (*Raw, error) {
	if len(arrays) == 0 {
		return nil, shapeErrorf("Stack", "needs at least one array")
	}
	rank := len(arrays[0].shape)
	ax := axis
	if ax < 0 {
		ax += rank + 1
	}
	if ax < 0 || ax > rank {
		return nil, indexErrorf("Stack", "axis %d out of range for rank %d", axis, rank)
	}
	for _, a := range arrays[1:] {
		if !a.shape.Equal(arrays[0].shape) {
			return nil, shapeErrorf("Stack", "all inputs must share shape, got %v and %v", arrays[0].shape, a.shape)
		}
	}
	dt, err := promoteAll("Stack", arrays)
	if err != nil {
		return nil, err
	}
	outShape := make(Shape, 0, rank+1)
	outShape = append(outShape, arrays[0].shape[:ax]...)
	outShape = append(outShape, len(arrays))
	outShape = append(outShape, arrays[0].shape[ax:]...)
	out, err := NewRawUninit(dt, outShape)
	if err != nil {
		return nil, err
	}
	for i, a := range arrays {
		seg, err := Sel(out, ax, i)
		if err != nil {
			out.Release()
			return nil, err
		}
		err = castInto(seg, a)
		seg.Release()
		if err != nil {
			out.Release()
			return nil, err
		}
	}
	return out, nil
}

// atleast2d views 0-D input as [1 1] and 1-D input as [1 n].
func atleast2d(r *Raw) (*Raw, error) {
	switch len(r.shape) {
	case 0:
		return Reshape(r, Shape{1, 1})
	case 1:
		return Reshape(r, Shape{1, r.shape[0]})
	default:
		return r.Clone(), nil
	}
}

// VStack joins arrays row-wise: inputs below rank 2 are viewed as one
// row first, then everything concatenates along axis 0.
func VStack(arrays ...*Raw) (*Raw, error) {
	if len(arrays) == 0 {
		return nil, shapeErrorf("VStack", "needs at least one array")
	}
	rows := make([]*Raw, len(arrays))
	for i, a := range arrays {
		v, err := atleast2d(a)
		if err != nil {
			for _, r := range rows[:i] {
				r.Release()
			}
			return nil, err
		}
		rows[i] = v
	}
	out, err := Concat(0, rows...)
	for _, r := range rows {
		r.Release()
	}
	return out, err
}

// HStack joins arrays column-wise: rank-1 inputs concatenate along
// axis 0, anything higher along axis 1.
func HStack(arrays ...*Raw) (*Raw, error) {
	if len(arrays) == 0 {
		return nil, shapeErrorf("HStack", "needs at least one array")
	}
	axis := 1
	if len(arrays[0].shape) <= 1 {
		axis = 0
	}
	return Concat(axis, arrays...)
}

// Split divides an axis into equal sections, returning views that share
// the source buffer. The axis length must divide evenly.
//
// Example:
//
//	parts, _ := array.Split(a, 0, 3) // three views over thirds of a
func Split(r *Raw, axis, sections int) ([]*Raw, error) {
	ax, err := normAxis("Split", axis, len(r.shape))
	if err != nil {
		return nil, err
	}
	if sections <= 0 {
		return nil, shapeErrorf("Split", "sections must be positive, got %d", sections)
	}
	n := r.shape[ax]
	if n%sections != 0 {
		return nil, shapeErrorf("Split", "axis of size %d does not divide into %d equal sections", n, sections)
	}
	size := n / sections
	out := make([]*Raw, sections)
	for i := range out {
		out[i] = r.narrow(ax, i*size, size)
	}
	return out, nil
}

// SplitAt divides an axis at explicit points, returning len(points)+1
// views. Points must be non-decreasing and within [0, size]; a repeated
// point yields an empty segment.
func SplitAt(r *Raw, axis int, points ...int) ([]*Raw, error) {
	ax, err := normAxis("SplitAt", axis, len(r.shape))
	if err != nil {
		return nil, err
	}
	n := r.shape[ax]
	prev := 0
	for _, p := range points {
		if p < prev || p > n {
			return nil, shapeErrorf("SplitAt", "split point %d outside [%d, %d]", p, prev, n)
		}
		prev = p
	}
	out := make([]*Raw, 0, len(points)+1)
	start := 0
	for _, p := range points {
		out = append(out, r.narrow(ax, start, p-start))
		start = p
	}
	out = append(out, r.narrow(ax, start, n-start))
	return out, nil
}
