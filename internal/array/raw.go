package array

import (
	"fmt"
	"unsafe"
)

// Raw is the dynamically typed array descriptor: a reference-counted
// byte buffer plus the geometry that interprets it. Geometry is a shape,
// byte strides per dimension, a byte offset of the first element, and
// the element dtype. Views are cheap descriptors over a shared buffer;
// whether two arrays alias is decided entirely by whether they share one.
type Raw struct {
	buf     *buffer
	shape   Shape
	strides Strides
	off     int
	dtype   DataType
}

// NewRaw allocates a dense row-major array with every element zero.
func NewRaw(dt DataType, shape Shape) (*Raw, error) {
	if dt.kind == KindInvalid {
		return nil, dtypeErrorf("NewRaw", "invalid dtype")
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	sh := shape.Clone()
	return &Raw{
		buf:     newBufferZeroed(sh.NumElements() * dt.size),
		shape:   sh,
		strides: ContiguousStrides(sh, dt.size),
		dtype:   dt,
	}, nil
}

// NewRawUninit allocates a dense row-major array without clearing the
// storage. Blocks are recycled through the allocation pool, so the
// initial contents are unspecified.
func NewRawUninit(dt DataType, shape Shape) (*Raw, error) {
	if dt.kind == KindInvalid {
		return nil, dtypeErrorf("NewRawUninit", "invalid dtype")
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	sh := shape.Clone()
	return &Raw{
		buf:     newBuffer(sh.NumElements() * dt.size),
		shape:   sh,
		strides: ContiguousStrides(sh, dt.size),
		dtype:   dt,
	}, nil
}

// view builds a descriptor over the same buffer with new geometry.
// The offset is absolute within the buffer.
func (r *Raw) view(shape Shape, strides Strides, off int, dt DataType) *Raw {
	r.buf.addRef()
	return &Raw{buf: r.buf, shape: shape, strides: strides, off: off, dtype: dt}
}

// Clone returns a new descriptor sharing the same buffer and geometry.
func (r *Raw) Clone() *Raw {
	return r.view(r.shape.Clone(), r.strides.Clone(), r.off, r.dtype)
}

// Release drops this descriptor's hold on the buffer. The storage is
// recycled once the last descriptor releases. Using the array after
// Release is invalid.
func (r *Raw) Release() {
	if r.buf != nil {
		r.buf.release()
		r.buf = nil
	}
}

// IsUnique reports whether no other descriptor shares the buffer.
func (r *Raw) IsUnique() bool {
	return r.buf.isUnique()
}

// Shape returns the extents. The slice is shared; callers must not
// modify it.
func (r *Raw) Shape() Shape { return r.shape }

// Strides returns the byte strides. The slice is shared; callers must
// not modify it.
func (r *Raw) Strides() Strides { return r.strides }

// Offset returns the byte position of the first element in the buffer.
func (r *Raw) Offset() int { return r.off }

// DType returns the element descriptor.
func (r *Raw) DType() DataType { return r.dtype }

// Rank returns the number of dimensions.
func (r *Raw) Rank() int { return len(r.shape) }

// NumElements returns the total element count.
func (r *Raw) NumElements() int { return r.shape.NumElements() }

// IsContiguous reports whether the elements occupy a dense row-major
// span of the buffer.
func (r *Raw) IsContiguous() bool {
	return isContiguous(r.shape, r.strides, r.dtype.size)
}

// Bytes exposes the dense storage span of a contiguous array. It panics
// on non-contiguous views; copy first with AsContiguous.
func (r *Raw) Bytes() []byte {
	if !r.IsContiguous() {
		panic("Bytes: array is not contiguous")
	}
	n := r.NumElements() * r.dtype.size
	return r.buf.data[r.off : r.off+n]
}

// elemOffset resolves a full-rank index to an absolute byte offset,
// normalizing negative entries.
func (r *Raw) elemOffset(op string, ix []int) (int, error) {
	if len(ix) != len(r.shape) {
		return 0, indexErrorf(op, "got %d indices for rank %d", len(ix), len(r.shape))
	}
	off := r.off
	for d, i := range ix {
		j, err := normIndex(op, i, d, r.shape[d])
		if err != nil {
			return 0, err
		}
		off += j * r.strides[d]
	}
	return off, nil
}

// GetAny reads one element at a full-rank index, boxed as the natural Go
// value: bool, int8..uint64, float32/64, complex64/128, string for text,
// or map[string]any for records.
func (r *Raw) GetAny(ix ...int) (any, error) {
	off, err := r.elemOffset("Get", ix)
	if err != nil {
		return nil, err
	}
	return r.valueAt(off), nil
}

func (r *Raw) valueAt(off int) any {
	b := r.buf.data
	switch r.dtype.kind {
	case KindBool:
		return load[bool](b, off)
	case KindInt8:
		return load[int8](b, off)
	case KindInt16:
		return load[int16](b, off)
	case KindInt32:
		return load[int32](b, off)
	case KindInt64:
		return load[int64](b, off)
	case KindUint8:
		return load[uint8](b, off)
	case KindUint16:
		return load[uint16](b, off)
	case KindUint32:
		return load[uint32](b, off)
	case KindUint64:
		return load[uint64](b, off)
	case KindFloat32:
		return load[float32](b, off)
	case KindFloat64:
		return load[float64](b, off)
	case KindComplex64:
		return load[complex64](b, off)
	case KindComplex128:
		return load[complex128](b, off)
	case KindStr:
		return decodeStr(b[off : off+r.dtype.size])
	case KindStruct:
		rec := make(map[string]any, len(r.dtype.rec.fields))
		for _, f := range r.dtype.rec.fields {
			fr := Raw{buf: r.buf, shape: Shape{}, strides: Strides{}, off: off + f.Offset, dtype: f.Type}
			rec[f.Name] = fr.valueAt(off + f.Offset)
		}
		return rec
	default:
		panic(fmt.Sprintf("valueAt: invalid dtype %s", r.dtype))
	}
}

// SetAny writes one element at a full-rank index, converting the boxed
// value to the array dtype.
func (r *Raw) SetAny(v any, ix ...int) error {
	off, err := r.elemOffset("Set", ix)
	if err != nil {
		return err
	}
	return r.setValueAt(off, v)
}

func (r *Raw) setValueAt(off int, v any) error {
	b := r.buf.data
	dt := r.dtype
	switch dt.kind {
	case KindStr:
		s, ok := v.(string)
		if !ok {
			return dtypeErrorf("Set", "cannot store %T into %s", v, dt)
		}
		encodeStr(b[off:off+dt.size], s)
		return nil
	case KindStruct:
		rec, ok := v.(map[string]any)
		if !ok {
			return dtypeErrorf("Set", "cannot store %T into %s", v, dt)
		}
		for name, fv := range rec {
			f, ok := dt.FieldByName(name)
			if !ok {
				return dtypeErrorf("Set", "record has no field %q", name)
			}
			fr := Raw{buf: r.buf, dtype: f.Type}
			if err := fr.setValueAt(off+f.Offset, fv); err != nil {
				return err
			}
		}
		return nil
	case KindBool:
		switch x := v.(type) {
		case bool:
			store(b, off, x)
			return nil
		default:
			i, ok := toInt64(v)
			if !ok {
				return dtypeErrorf("Set", "cannot store %T into %s", v, dt)
			}
			store(b, off, i != 0)
			return nil
		}
	case KindComplex64, KindComplex128:
		c, ok := toComplex128(v)
		if !ok {
			return dtypeErrorf("Set", "cannot store %T into %s", v, dt)
		}
		storeComplex(dt, b, off, c)
		return nil
	case KindFloat32, KindFloat64:
		f, ok := toFloat64(v)
		if !ok {
			return dtypeErrorf("Set", "cannot store %T into %s", v, dt)
		}
		storeFloat(dt, b, off, f)
		return nil
	default:
		i, ok := toInt64(v)
		if !ok {
			if f, okf := toFloat64(v); okf {
				storeInt(dt, b, off, int64(f))
				return nil
			}
			return dtypeErrorf("Set", "cannot store %T into %s", v, dt)
		}
		storeInt(dt, b, off, i)
		return nil
	}
}

// ItemAny returns the sole element of a one-element array.
func (r *Raw) ItemAny() (any, error) {
	if r.NumElements() != 1 {
		return nil, shapeErrorf("Item", "array holds %d elements, want exactly 1", r.NumElements())
	}
	return r.valueAt(r.off), nil
}

// Copy materializes an independent dense row-major array with the same
// shape, dtype and values. The result never aliases the source.
func (r *Raw) Copy() (*Raw, error) {
	out, err := NewRawUninit(r.dtype, r.shape)
	if err != nil {
		return nil, err
	}
	copyRegion(out, r)
	return out, nil
}

// AsContiguous returns the array itself when it is already dense
// row-major, otherwise a contiguous copy.
func (r *Raw) AsContiguous() (*Raw, error) {
	if r.IsContiguous() {
		return r.Clone(), nil
	}
	return r.Copy()
}

// copyRegion copies every element of src into dst byte-wise. Shapes and
// dtypes must already match; strides may be arbitrary on both sides.
func copyRegion(dst, src *Raw) {
	isz := src.dtype.size
	n := src.NumElements()
	if n == 0 {
		return
	}
	if dst.IsContiguous() && src.IsContiguous() {
		copy(dst.buf.data[dst.off:dst.off+n*isz], src.buf.data[src.off:src.off+n*isz])
		return
	}
	rank := len(src.shape)
	if rank > 0 && src.strides[rank-1] == isz && dst.strides[rank-1] == isz {
		// Dense innermost runs on both sides: copy row spans.
		run := src.shape[rank-1] * isz
		it := newNditer(src.shape[:rank-1], []int{dst.off, src.off}, []Strides{dst.strides[:rank-1], src.strides[:rank-1]})
		for ; !it.done(); it.advance() {
			copy(dst.buf.data[it.offs[0]:it.offs[0]+run], src.buf.data[it.offs[1]:it.offs[1]+run])
		}
		return
	}
	it := newNditer(src.shape, []int{dst.off, src.off}, []Strides{dst.strides, src.strides})
	for ; !it.done(); it.advance() {
		copy(dst.buf.data[it.offs[0]:it.offs[0]+isz], src.buf.data[it.offs[1]:it.offs[1]+isz])
	}
}

// scalarRaw wraps one value in a rank-0 array, used to splice Go
// scalars into elementwise operations.
func scalarRaw(dt DataType, v any) (*Raw, error) {
	r, err := NewRawUninit(dt, Shape{})
	if err != nil {
		return nil, err
	}
	if err := r.setValueAt(r.off, v); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *Raw) String() string {
	return formatRaw(r, defaultPrintOptions)
}

// nditer walks a shape in row-major order keeping one running byte
// offset per operand. Operands must already be stride-aligned to the
// iteration shape (see broadcastStrides).
type nditer struct {
	shape   Shape
	strides []Strides
	coords  []int
	offs    []int
	remain  int
}

func newNditer(shape Shape, base []int, strides []Strides) *nditer {
	return &nditer{
		shape:   shape,
		strides: strides,
		coords:  make([]int, len(shape)),
		offs:    append([]int(nil), base...),
		remain:  shape.NumElements(),
	}
}

func (it *nditer) done() bool { return it.remain <= 0 }

func (it *nditer) advance() {
	it.remain--
	for d := len(it.shape) - 1; d >= 0; d-- {
		it.coords[d]++
		for k := range it.offs {
			it.offs[k] += it.strides[k][d]
		}
		if it.coords[d] < it.shape[d] {
			return
		}
		it.coords[d] = 0
		for k := range it.offs {
			it.offs[k] -= it.shape[d] * it.strides[k][d]
		}
	}
}

// load reinterprets the bytes at off as a value of type T.
func load[T any](b []byte, off int) T {
	return *(*T)(unsafe.Pointer(&b[off]))
}

// store writes v into the bytes at off.
func store[T any](b []byte, off int, v T) {
	*(*T)(unsafe.Pointer(&b[off])) = v
}

// dataOf exposes the contiguous storage of r as a typed slice.
func dataOf[T DType](r *Raw) []T {
	want := dtypeOf[T]()
	if !r.dtype.Equal(want) {
		panic(fmt.Sprintf("Data: array dtype is %s, not %s", r.dtype, want))
	}
	if !r.IsContiguous() {
		panic("Data: array is not contiguous")
	}
	n := r.NumElements()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&r.buf.data[r.off])), n)
}

// decodeStr trims the zero padding from a fixed-width text slot.
func decodeStr(slot []byte) string {
	end := len(slot)
	for end > 0 && slot[end-1] == 0 {
		end--
	}
	return string(slot[:end])
}

// encodeStr writes s into a fixed-width slot, truncating or zero-padding
// on the right.
func encodeStr(slot []byte, s string) {
	n := copy(slot, s)
	clear(slot[n:])
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		i, ok := toInt64(v)
		return float64(i), ok
	}
}

func toComplex128(v any) (complex128, bool) {
	switch x := v.(type) {
	case complex64:
		return complex128(x), true
	case complex128:
		return x, true
	default:
		f, ok := toFloat64(v)
		return complex(f, 0), ok
	}
}
