package array

import "fmt"

// Lane accessors route single elements of any numeric kind through a
// common int64 / float64 / complex128 lane. They are the slow path for
// mixed-dtype traffic; same-dtype kernels use typed load/store directly.

func loadInt(dt DataType, b []byte, off int) int64 {
	switch dt.kind {
	case KindBool:
		if load[bool](b, off) {
			return 1
		}
		return 0
	case KindInt8:
		return int64(load[int8](b, off))
	case KindInt16:
		return int64(load[int16](b, off))
	case KindInt32:
		return int64(load[int32](b, off))
	case KindInt64:
		return load[int64](b, off)
	case KindUint8:
		return int64(load[uint8](b, off))
	case KindUint16:
		return int64(load[uint16](b, off))
	case KindUint32:
		return int64(load[uint32](b, off))
	case KindUint64:
		return int64(load[uint64](b, off))
	case KindFloat32:
		return int64(load[float32](b, off))
	case KindFloat64:
		return int64(load[float64](b, off))
	default:
		panic(fmt.Sprintf("loadInt: dtype %s has no integer lane", dt))
	}
}

func storeInt(dt DataType, b []byte, off int, v int64) {
	switch dt.kind {
	case KindBool:
		store(b, off, v != 0)
	case KindInt8:
		store(b, off, int8(v))
	case KindInt16:
		store(b, off, int16(v))
	case KindInt32:
		store(b, off, int32(v))
	case KindInt64:
		store(b, off, v)
	case KindUint8:
		store(b, off, uint8(v))
	case KindUint16:
		store(b, off, uint16(v))
	case KindUint32:
		store(b, off, uint32(v))
	case KindUint64:
		store(b, off, uint64(v))
	case KindFloat32:
		store(b, off, float32(v))
	case KindFloat64:
		store(b, off, float64(v))
	default:
		panic(fmt.Sprintf("storeInt: dtype %s has no integer lane", dt))
	}
}

func loadFloat(dt DataType, b []byte, off int) float64 {
	switch dt.kind {
	case KindFloat32:
		return float64(load[float32](b, off))
	case KindFloat64:
		return load[float64](b, off)
	case KindUint64:
		return float64(load[uint64](b, off))
	case KindComplex64:
		return float64(real(load[complex64](b, off)))
	case KindComplex128:
		return real(load[complex128](b, off))
	default:
		return float64(loadInt(dt, b, off))
	}
}

func storeFloat(dt DataType, b []byte, off int, v float64) {
	switch dt.kind {
	case KindFloat32:
		store(b, off, float32(v))
	case KindFloat64:
		store(b, off, v)
	case KindUint64:
		store(b, off, uint64(v))
	case KindComplex64:
		store(b, off, complex64(complex(v, 0)))
	case KindComplex128:
		store(b, off, complex(v, 0))
	default:
		storeInt(dt, b, off, int64(v))
	}
}

func loadComplex(dt DataType, b []byte, off int) complex128 {
	switch dt.kind {
	case KindComplex64:
		return complex128(load[complex64](b, off))
	case KindComplex128:
		return load[complex128](b, off)
	default:
		return complex(loadFloat(dt, b, off), 0)
	}
}

func storeComplex(dt DataType, b []byte, off int, v complex128) {
	switch dt.kind {
	case KindComplex64:
		store(b, off, complex64(v))
	case KindComplex128:
		store(b, off, v)
	default:
		storeFloat(dt, b, off, real(v))
	}
}

// converter selects a per-element conversion from src slots to dst
// slots. Text converts only to text (re-padding to the new width) and
// records convert only to an identical layout; every numeric pair is
// allowed, with complex dropping its imaginary part on the way down.
func converter(dst, src DataType) (func(db []byte, do int, sb []byte, so int), error) {
	if dst.Equal(src) {
		n := dst.size
		return func(db []byte, do int, sb []byte, so int) {
			copy(db[do:do+n], sb[so:so+n])
		}, nil
	}
	if dst.kind == KindStruct || src.kind == KindStruct {
		return nil, dtypeErrorf("Cast", "cannot convert %s to %s", src, dst)
	}
	if dst.kind == KindStr || src.kind == KindStr {
		if dst.kind == KindStr && src.kind == KindStr {
			dn, sn := dst.size, src.size
			return func(db []byte, do int, sb []byte, so int) {
				encodeStr(db[do:do+dn], decodeStr(sb[so:so+sn]))
			}, nil
		}
		return nil, dtypeErrorf("Cast", "cannot convert %s to %s", src, dst)
	}
	switch {
	case dst.kind == KindBool:
		return func(db []byte, do int, sb []byte, so int) {
			store(db, do, loadComplex(src, sb, so) != 0)
		}, nil
	case dst.IsComplex():
		return func(db []byte, do int, sb []byte, so int) {
			storeComplex(dst, db, do, loadComplex(src, sb, so))
		}, nil
	case dst.IsFloat() || src.IsFloat() || src.IsComplex():
		return func(db []byte, do int, sb []byte, so int) {
			storeFloat(dst, db, do, loadFloat(src, sb, so))
		}, nil
	default:
		return func(db []byte, do int, sb []byte, so int) {
			storeInt(dst, db, do, loadInt(src, sb, so))
		}, nil
	}
}

// castInto converts every element of src into dst. Shapes must already
// match; strides may be arbitrary on both sides.
func castInto(dst, src *Raw) error {
	if !dst.shape.Equal(src.shape) {
		return shapeErrorf("Cast", "target shape %v does not match source %v", dst.shape, src.shape)
	}
	if dst.dtype.Equal(src.dtype) {
		copyRegion(dst, src)
		return nil
	}
	conv, err := converter(dst.dtype, src.dtype)
	if err != nil {
		return err
	}
	it := newNditer(src.shape, []int{dst.off, src.off}, []Strides{dst.strides, src.strides})
	for ; !it.done(); it.advance() {
		conv(dst.buf.data, it.offs[0], src.buf.data, it.offs[1])
	}
	return nil
}

// Cast materializes a dense copy of x with the given dtype. The result
// never aliases x, even when the dtype is unchanged.
func Cast(x *Raw, dt DataType) (*Raw, error) {
	if x == nil {
		return nil, fmt.Errorf("Cast: nil array")
	}
	out, err := NewRawUninit(dt, x.shape)
	if err != nil {
		return nil, err
	}
	if err := castInto(out, x); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}
