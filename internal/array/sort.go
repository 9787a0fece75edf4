package array

import (
	"bytes"
	"cmp"
	"slices"
)

// Ordering note: float lanes order NaN before every number (the
// cmp.Compare convention), and fixed-width text orders byte-wise with
// zero padding first, so shorter values sort ahead of their extensions.

// sortCheck rejects dtypes without a total element order.
func sortCheck(op string, dt DataType) error {
	if !dt.IsOrdered() {
		return dtypeErrorf(op, "ordering is not defined for %s", dt)
	}
	return nil
}

// eachLane calls fn once per 1-D lane along the axis, passing the byte
// offset of the lane's first element. The lane has x.shape[axis]
// elements spaced x.strides[axis] bytes apart.
func eachLane(x *Raw, axis int, fn func(off int)) {
	outer := axisRemoved(x.shape, axis)
	it := newNditer(outer, []int{x.off}, []Strides{axisRemoved(x.strides, axis)})
	for ; !it.done(); it.advance() {
		fn(it.offs[0])
	}
}

// gatherLane copies a strided lane into scratch; scatterLane writes it
// back.
func gatherLane[T any](x *Raw, off, n, st int, scratch []T) {
	for i := range scratch[:n] {
		scratch[i] = load[T](x.buf.data, off+i*st)
	}
}

func scatterLane[T any](x *Raw, off, n, st int, scratch []T) {
	for i := range scratch[:n] {
		store(x.buf.data, off+i*st, scratch[i])
	}
}

// sortLanes sorts every lane of a real-element array in place.
func sortLanes[T realOrdered](x *Raw, axis int, stable bool) {
	n := x.shape[axis]
	st := x.strides[axis]
	scratch := make([]T, n)
	eachLane(x, axis, func(off int) {
		gatherLane(x, off, n, st, scratch)
		if stable {
			slices.SortStableFunc(scratch, func(a, b T) int { return cmp.Compare(a, b) })
		} else {
			slices.SortFunc(scratch, func(a, b T) int { return cmp.Compare(a, b) })
		}
		scatterLane(x, off, n, st, scratch)
	})
}

// sortStrLanes sorts fixed-width text lanes byte-wise.
func sortStrLanes(x *Raw, axis int, stable bool) {
	n := x.shape[axis]
	st := x.strides[axis]
	w := x.dtype.size
	scratch := make([][]byte, n)
	eachLane(x, axis, func(off int) {
		for i := range scratch {
			scratch[i] = bytes.Clone(x.buf.data[off+i*st : off+i*st+w])
		}
		if stable {
			slices.SortStableFunc(scratch, bytes.Compare)
		} else {
			slices.SortFunc(scratch, bytes.Compare)
		}
		for i := range scratch {
			copy(x.buf.data[off+i*st:off+i*st+w], scratch[i])
		}
	})
}

func sortDispatch(x *Raw, axis int, stable bool) {
	switch x.dtype.kind {
	case KindInt8:
		sortLanes[int8](x, axis, stable)
	case KindInt16:
		sortLanes[int16](x, axis, stable)
	case KindInt32:
		sortLanes[int32](x, axis, stable)
	case KindInt64:
		sortLanes[int64](x, axis, stable)
	case KindUint8:
		sortLanes[uint8](x, axis, stable)
	case KindUint16:
		sortLanes[uint16](x, axis, stable)
	case KindUint32:
		sortLanes[uint32](x, axis, stable)
	case KindUint64:
		sortLanes[uint64](x, axis, stable)
	case KindFloat32:
		sortLanes[float32](x, axis, stable)
	case KindFloat64:
		sortLanes[float64](x, axis, stable)
	case KindStr:
		sortStrLanes(x, axis, stable)
	}
}

// Sort reorders every 1-D lane along the axis into ascending order, in
// place. The algorithm is unstable; use SortStable when equal elements
// must keep their relative order.
//
// Example:
//
//	_ = array.Sort(a, -1) // sort each row of a matrix
func Sort(x *Raw, axis int) error {
	ax, err := normAxis("Sort", axis, len(x.shape))
	if err != nil {
		return err
	}
	if err := sortCheck("Sort", x.dtype); err != nil {
		return err
	}
	sortDispatch(x, ax, false)
	return nil
}

// SortStable is Sort with equal elements keeping their original order.
func SortStable(x *Raw, axis int) error {
	ax, err := normAxis("Sort", axis, len(x.shape))
	if err != nil {
		return err
	}
	if err := sortCheck("Sort", x.dtype); err != nil {
		return err
	}
	sortDispatch(x, ax, true)
	return nil
}

// Sorted returns a sorted dense copy, leaving x untouched.
func Sorted(x *Raw, axis int) (*Raw, error) {
	ax, err := normAxis("Sort", axis, len(x.shape))
	if err != nil {
		return nil, err
	}
	out, err := x.Copy()
	if err != nil {
		return nil, err
	}
	if err := Sort(out, ax); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// argsortLanes fills out with the permutation that sorts each lane.
// The sort is stable, so equal elements keep their original positions
// in the permutation.
func argsortLanes[T realOrdered](out, x *Raw, axis int) {
	n := x.shape[axis]
	xst := x.strides[axis]
	ost := out.strides[axis]
	keys := make([]T, n)
	perm := make([]int64, n)
	outerOut := axisRemoved(out.strides, axis)
	it := newNditer(axisRemoved(x.shape, axis), []int{x.off, out.off}, []Strides{axisRemoved(x.strides, axis), outerOut})
	for ; !it.done(); it.advance() {
		gatherLane(x, it.offs[0], n, xst, keys)
		for i := range perm {
			perm[i] = int64(i)
		}
		slices.SortStableFunc(perm, func(a, b int64) int { return cmp.Compare(keys[a], keys[b]) })
		for i, p := range perm {
			store(out.buf.data, it.offs[1]+i*ost, p)
		}
	}
}

func argsortStrLanes(out, x *Raw, axis int) {
	n := x.shape[axis]
	xst := x.strides[axis]
	ost := out.strides[axis]
	w := x.dtype.size
	perm := make([]int64, n)
	it := newNditer(axisRemoved(x.shape, axis), []int{x.off, out.off}, []Strides{axisRemoved(x.strides, axis), axisRemoved(out.strides, axis)})
	for ; !it.done(); it.advance() {
		off := it.offs[0]
		for i := range perm {
			perm[i] = int64(i)
		}
		slices.SortStableFunc(perm, func(a, b int64) int {
			return bytes.Compare(
				x.buf.data[off+int(a)*xst:off+int(a)*xst+w],
				x.buf.data[off+int(b)*xst:off+int(b)*xst+w])
		})
		for i, p := range perm {
			store(out.buf.data, it.offs[1]+i*ost, p)
		}
	}
}

// Argsort returns, per lane, the index permutation that would sort the
// lane, without touching the data. The permutation is stable.
//
// Example:
//
//	perm, _ := array.Argsort(a, 0) // [1 0 3 2 4] for [2 1 4 3 5]
func Argsort(x *Raw, axis int) (*Raw, error) {
	ax, err := normAxis("Argsort", axis, len(x.shape))
	if err != nil {
		return nil, err
	}
	if err := sortCheck("Argsort", x.dtype); err != nil {
		return nil, err
	}
	out, err := NewRawUninit(Int64, x.shape)
	if err != nil {
		return nil, err
	}
	switch x.dtype.kind {
	case KindInt8:
		argsortLanes[int8](out, x, ax)
	case KindInt16:
		argsortLanes[int16](out, x, ax)
	case KindInt32:
		argsortLanes[int32](out, x, ax)
	case KindInt64:
		argsortLanes[int64](out, x, ax)
	case KindUint8:
		argsortLanes[uint8](out, x, ax)
	case KindUint16:
		argsortLanes[uint16](out, x, ax)
	case KindUint32:
		argsortLanes[uint32](out, x, ax)
	case KindUint64:
		argsortLanes[uint64](out, x, ax)
	case KindFloat32:
		argsortLanes[float32](out, x, ax)
	case KindFloat64:
		argsortLanes[float64](out, x, ax)
	case KindStr:
		argsortStrLanes(out, x, ax)
	}
	return out, nil
}

// quickselect rearranges v so the k smallest elements occupy v[:k], in
// no particular internal order. Hoare partitioning with a
// median-of-three pivot gives expected linear time.
func quickselect[T any](v []T, k int, less func(a, b T) bool) {
	lo, hi := 0, len(v)-1
	for hi > lo {
		// Median of three to dodge the sorted-input worst case.
		mid := lo + (hi-lo)/2
		if less(v[mid], v[lo]) {
			v[mid], v[lo] = v[lo], v[mid]
		}
		if less(v[hi], v[lo]) {
			v[hi], v[lo] = v[lo], v[hi]
		}
		if less(v[hi], v[mid]) {
			v[hi], v[mid] = v[mid], v[hi]
		}
		pivot := v[mid]
		i, j := lo-1, hi+1
		for {
			for {
				i++
				if !less(v[i], pivot) {
					break
				}
			}
			for {
				j--
				if !less(pivot, v[j]) {
					break
				}
			}
			if i >= j {
				break
			}
			v[i], v[j] = v[j], v[i]
		}
		// Recurse into the side containing position k only.
		if k <= j {
			hi = j
		} else {
			lo = j + 1
		}
	}
}

func partitionLanes[T realOrdered](x *Raw, k, axis int) {
	n := x.shape[axis]
	st := x.strides[axis]
	scratch := make([]T, n)
	less := func(a, b T) bool { return cmp.Less(a, b) }
	eachLane(x, axis, func(off int) {
		gatherLane(x, off, n, st, scratch)
		quickselect(scratch, k, less)
		scatterLane(x, off, n, st, scratch)
	})
}

func partitionStrLanes(x *Raw, k, axis int) {
	n := x.shape[axis]
	st := x.strides[axis]
	w := x.dtype.size
	scratch := make([][]byte, n)
	eachLane(x, axis, func(off int) {
		for i := range scratch {
			scratch[i] = bytes.Clone(x.buf.data[off+i*st : off+i*st+w])
		}
		quickselect(scratch, k, func(a, b []byte) bool { return bytes.Compare(a, b) < 0 })
		for i := range scratch {
			copy(x.buf.data[off+i*st:off+i*st+w], scratch[i])
		}
	})
}

func partitionCheck(op string, x *Raw, k, axis int) (int, error) {
	ax, err := normAxis(op, axis, len(x.shape))
	if err != nil {
		return 0, err
	}
	if err := sortCheck(op, x.dtype); err != nil {
		return 0, err
	}
	if k < 0 || k > x.shape[ax] {
		return 0, indexErrorf(op, "k=%d outside [0, %d]", k, x.shape[ax])
	}
	return ax, nil
}

// Partition rearranges every lane in place so its k smallest elements
// occupy positions [0, k), in expected linear time per lane. Neither
// side of the boundary is internally ordered; the contract is only the
// multiset split.
//
// Example:
//
//	_ = array.Partition(a, 3, 0) // three smallest values first
func Partition(x *Raw, k, axis int) error {
	ax, err := partitionCheck("Partition", x, k, axis)
	if err != nil {
		return err
	}
	if k == 0 || k == x.shape[ax] {
		return nil
	}
	switch x.dtype.kind {
	case KindInt8:
		partitionLanes[int8](x, k, ax)
	case KindInt16:
		partitionLanes[int16](x, k, ax)
	case KindInt32:
		partitionLanes[int32](x, k, ax)
	case KindInt64:
		partitionLanes[int64](x, k, ax)
	case KindUint8:
		partitionLanes[uint8](x, k, ax)
	case KindUint16:
		partitionLanes[uint16](x, k, ax)
	case KindUint32:
		partitionLanes[uint32](x, k, ax)
	case KindUint64:
		partitionLanes[uint64](x, k, ax)
	case KindFloat32:
		partitionLanes[float32](x, k, ax)
	case KindFloat64:
		partitionLanes[float64](x, k, ax)
	case KindStr:
		partitionStrLanes(x, k, ax)
	}
	return nil
}

func argpartitionLanes[T realOrdered](out, x *Raw, k, axis int) {
	n := x.shape[axis]
	xst := x.strides[axis]
	ost := out.strides[axis]
	keys := make([]T, n)
	perm := make([]int64, n)
	it := newNditer(axisRemoved(x.shape, axis), []int{x.off, out.off}, []Strides{axisRemoved(x.strides, axis), axisRemoved(out.strides, axis)})
	for ; !it.done(); it.advance() {
		gatherLane(x, it.offs[0], n, xst, keys)
		for i := range perm {
			perm[i] = int64(i)
		}
		quickselect(perm, k, func(a, b int64) bool { return cmp.Less(keys[a], keys[b]) })
		for i, p := range perm {
			store(out.buf.data, it.offs[1]+i*ost, p)
		}
	}
}

// Argpartition is Partition's index analogue: per lane, a permutation
// whose first k entries point at the k smallest elements.
func Argpartition(x *Raw, k, axis int) (*Raw, error) {
	ax, err := partitionCheck("Argpartition", x, k, axis)
	if err != nil {
		return nil, err
	}
	out, err := NewRawUninit(Int64, x.shape)
	if err != nil {
		return nil, err
	}
	if k == 0 || k == x.shape[ax] {
		// Identity permutation already satisfies the contract.
		fillIota(out, ax)
		return out, nil
	}
	switch x.dtype.kind {
	case KindInt8:
		argpartitionLanes[int8](out, x, k, ax)
	case KindInt16:
		argpartitionLanes[int16](out, x, k, ax)
	case KindInt32:
		argpartitionLanes[int32](out, x, k, ax)
	case KindInt64:
		argpartitionLanes[int64](out, x, k, ax)
	case KindUint8:
		argpartitionLanes[uint8](out, x, k, ax)
	case KindUint16:
		argpartitionLanes[uint16](out, x, k, ax)
	case KindUint32:
		argpartitionLanes[uint32](out, x, k, ax)
	case KindUint64:
		argpartitionLanes[uint64](out, x, k, ax)
	case KindFloat32:
		argpartitionLanes[float32](out, x, k, ax)
	case KindFloat64:
		argpartitionLanes[float64](out, x, k, ax)
	case KindStr:
		argpartitionStr(out, x, k, ax)
	}
	return out, nil
}

func argpartitionStr(out, x *Raw, k, axis int) {
	n := x.shape[axis]
	xst := x.strides[axis]
	ost := out.strides[axis]
	w := x.dtype.size
	perm := make([]int64, n)
	it := newNditer(axisRemoved(x.shape, axis), []int{x.off, out.off}, []Strides{axisRemoved(x.strides, axis), axisRemoved(out.strides, axis)})
	for ; !it.done(); it.advance() {
		off := it.offs[0]
		for i := range perm {
			perm[i] = int64(i)
		}
		quickselect(perm, k, func(a, b int64) bool {
			return bytes.Compare(
				x.buf.data[off+int(a)*xst:off+int(a)*xst+w],
				x.buf.data[off+int(b)*xst:off+int(b)*xst+w]) < 0
		})
		for i, p := range perm {
			store(out.buf.data, it.offs[1]+i*ost, p)
		}
	}
}

// fillIota writes 0..n-1 along the axis of an int64 array.
func fillIota(out *Raw, axis int) {
	n := out.shape[axis]
	st := out.strides[axis]
	eachLane(out, axis, func(off int) {
		for i := 0; i < n; i++ {
			store(out.buf.data, off+i*st, int64(i))
		}
	})
}
