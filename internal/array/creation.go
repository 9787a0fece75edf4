package array

import (
	"math"
	"math/rand"
	"reflect"
)

// rng drives Rand, Randn and RandInt. The stream is deterministic from
// process start (seed 1) until SetSeed changes it.
//
//nolint:gosec // G404: not cryptographic, reproducible streams are the point
var rng = rand.New(rand.NewSource(1))

// SetSeed reseeds the shared random stream.
func SetSeed(seed int64) {
	rng = rand.New(rand.NewSource(seed)) //nolint:gosec // G404: see above
}

// FromSlice copies a flat Go slice into a dense array of the given
// shape. A nil shape means 1-D of the slice length.
//
// Example:
//
//	a, _ := array.FromSlice([]float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*Raw, error) {
	if shape == nil {
		shape = Shape{len(data)}
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, shapeErrorf("FromSlice", "shape %v wants %d elements, slice has %d", shape, shape.NumElements(), len(data))
	}
	r, err := NewRawUninit(dtypeOf[T](), shape)
	if err != nil {
		return nil, err
	}
	copy(dataOf[T](r), data)
	return r, nil
}

// FromAny builds an array from (possibly nested) Go slices, inferring
// shape and dtype by reflection. Nesting must be rectangular; ragged
// input is a ShapeError. String leaves produce a fixed-width text dtype
// sized to the longest value.
//
// Example:
//
//	a, _ := array.FromAny([][]int64{{1, 2}, {3, 4}, {5, 6}}) // shape [3 2]
func FromAny(v any) (*Raw, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, dtypeErrorf("FromAny", "nil value")
	}
	t := rv.Type()
	var shape Shape
	cur := rv
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		shape = append(shape, cur.Len())
		t = t.Elem()
		if cur.Len() == 0 {
			// Remaining nesting levels are unknowable; descend types only.
			for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
				shape = append(shape, 0)
				t = t.Elem()
			}
			break
		}
		cur = cur.Index(0)
	}
	dt, err := dtypeFromGoKind(t, rv, len(shape))
	if err != nil {
		return nil, err
	}
	r, err := NewRaw(dt, shape)
	if err != nil {
		return nil, err
	}
	if err := fillFromReflect(r, r.off, rv, 0); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func dtypeFromGoKind(t reflect.Type, root reflect.Value, depth int) (DataType, error) {
	switch t.Kind() {
	case reflect.Bool:
		return Bool, nil
	case reflect.Int8:
		return Int8, nil
	case reflect.Int16:
		return Int16, nil
	case reflect.Int32:
		return Int32, nil
	case reflect.Int64, reflect.Int:
		return Int64, nil
	case reflect.Uint8:
		return Uint8, nil
	case reflect.Uint16:
		return Uint16, nil
	case reflect.Uint32:
		return Uint32, nil
	case reflect.Uint64, reflect.Uint:
		return Uint64, nil
	case reflect.Float32:
		return Float32, nil
	case reflect.Float64:
		return Float64, nil
	case reflect.Complex64:
		return Complex64, nil
	case reflect.Complex128:
		return Complex128, nil
	case reflect.String:
		w := maxStringLen(root, depth)
		if w == 0 {
			w = 1
		}
		return StrType(w), nil
	default:
		return DataType{}, dtypeErrorf("FromAny", "unsupported element type %s", t)
	}
}

func maxStringLen(v reflect.Value, depth int) int {
	if depth == 0 {
		return len(v.String())
	}
	w := 0
	for i := 0; i < v.Len(); i++ {
		if l := maxStringLen(v.Index(i), depth-1); l > w {
			w = l
		}
	}
	return w
}

func fillFromReflect(r *Raw, off int, v reflect.Value, dim int) error {
	if dim == len(r.shape) {
		return r.setValueAt(off, v.Interface())
	}
	if v.Len() != r.shape[dim] {
		return shapeErrorf("FromAny", "ragged nesting: dimension %d has length %d, want %d", dim, v.Len(), r.shape[dim])
	}
	for i := 0; i < v.Len(); i++ {
		if err := fillFromReflect(r, off+i*r.strides[dim], v.Index(i), dim+1); err != nil {
			return err
		}
	}
	return nil
}

// Zeros allocates a dense array with every element zero.
func Zeros(dt DataType, shape Shape) (*Raw, error) {
	return NewRaw(dt, shape)
}

// Empty allocates a dense array without initializing the storage. The
// contents are whatever the recycled block held.
func Empty(dt DataType, shape Shape) (*Raw, error) {
	return NewRawUninit(dt, shape)
}

// Ones allocates a dense array with every element one.
func Ones(dt DataType, shape Shape) (*Raw, error) {
	return Full(dt, shape, 1)
}

// Full allocates a dense array with every element set to value.
//
// Example:
//
//	a, _ := array.Full(array.Float32, array.Shape{2, 2}, 3.5)
func Full(dt DataType, shape Shape, value any) (*Raw, error) {
	r, err := NewRawUninit(dt, shape)
	if err != nil {
		return nil, err
	}
	if err := fillRaw(r, value); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

// fillRaw writes one encoded value into every element slot.
func fillRaw(r *Raw, value any) error {
	s, err := scalarRaw(r.dtype, value)
	if err != nil {
		return err
	}
	defer s.Release()
	isz := r.dtype.size
	slot := s.buf.data[s.off : s.off+isz]
	if r.IsContiguous() {
		b := r.buf.data
		for i, n := 0, r.NumElements(); i < n; i++ {
			copy(b[r.off+i*isz:], slot)
		}
		return nil
	}
	it := newNditer(r.shape, []int{r.off}, []Strides{r.strides})
	for ; !it.done(); it.advance() {
		copy(r.buf.data[it.offs[0]:it.offs[0]+isz], slot)
	}
	return nil
}

// Arange returns evenly spaced values in the half-open interval
// [start, stop) with the given step. The step may be negative; it must
// not be zero.
//
// Example:
//
//	a, _ := array.Arange(array.Int64, 0, 10, 2) // [0 2 4 6 8]
func Arange(dt DataType, start, stop, step float64) (*Raw, error) {
	if step == 0 {
		return nil, shapeErrorf("Arange", "step must be nonzero")
	}
	if !dt.IsNumeric() && dt.kind != KindBool {
		return nil, dtypeErrorf("Arange", "dtype %s is not numeric", dt)
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	r, err := NewRawUninit(dt, Shape{n})
	if err != nil {
		return nil, err
	}
	b, isz := r.buf.data, dt.size
	if dt.IsInteger() || dt.kind == KindBool {
		s0, st := int64(start), int64(step)
		for i := 0; i < n; i++ {
			storeInt(dt, b, r.off+i*isz, s0+int64(i)*st)
		}
		return r, nil
	}
	for i := 0; i < n; i++ {
		storeFloat(dt, b, r.off+i*isz, start+float64(i)*step)
	}
	return r, nil
}

// Linspace returns num values spaced evenly over the closed interval
// [start, stop]. The endpoint is stored exactly.
func Linspace(dt DataType, start, stop float64, num int) (*Raw, error) {
	if num < 0 {
		return nil, shapeErrorf("Linspace", "num must be non-negative, got %d", num)
	}
	if !dt.IsNumeric() {
		return nil, dtypeErrorf("Linspace", "dtype %s is not numeric", dt)
	}
	r, err := NewRawUninit(dt, Shape{num})
	if err != nil {
		return nil, err
	}
	b, isz := r.buf.data, dt.size
	if num == 1 {
		storeFloat(dt, b, r.off, start)
		return r, nil
	}
	step := (stop - start) / float64(num-1)
	for i := 0; i < num; i++ {
		v := start + float64(i)*step
		if i == num-1 {
			v = stop
		}
		storeFloat(dt, b, r.off+i*isz, v)
	}
	return r, nil
}

// Eye returns an n by m matrix with ones on the k-th diagonal and zeros
// elsewhere. Positive k shifts the diagonal above the main one.
func Eye(dt DataType, n, m, k int) (*Raw, error) {
	r, err := NewRaw(dt, Shape{n, m})
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		j := i + k
		if j < 0 || j >= m {
			continue
		}
		if err := r.setValueAt(r.off+i*r.strides[0]+j*r.strides[1], 1); err != nil {
			r.Release()
			return nil, err
		}
	}
	return r, nil
}

// Identity returns the n by n identity matrix.
func Identity(dt DataType, n int) (*Raw, error) {
	return Eye(dt, n, n, 0)
}

// Rand returns uniform samples from [0, 1) with a floating dtype.
func Rand(dt DataType, shape Shape) (*Raw, error) {
	if !dt.IsFloat() {
		return nil, dtypeErrorf("Rand", "dtype %s is not floating-point", dt)
	}
	r, err := NewRawUninit(dt, shape)
	if err != nil {
		return nil, err
	}
	b, isz := r.buf.data, dt.size
	for i, n := 0, r.NumElements(); i < n; i++ {
		storeFloat(dt, b, r.off+i*isz, rng.Float64())
	}
	return r, nil
}

// Randn returns standard normal samples with a floating dtype.
func Randn(dt DataType, shape Shape) (*Raw, error) {
	if !dt.IsFloat() {
		return nil, dtypeErrorf("Randn", "dtype %s is not floating-point", dt)
	}
	r, err := NewRawUninit(dt, shape)
	if err != nil {
		return nil, err
	}
	b, isz := r.buf.data, dt.size
	for i, n := 0, r.NumElements(); i < n; i++ {
		storeFloat(dt, b, r.off+i*isz, rng.NormFloat64())
	}
	return r, nil
}

// RandInt returns uniform integer samples from the half-open interval
// [low, high) with an integer dtype.
func RandInt(dt DataType, low, high int64, shape Shape) (*Raw, error) {
	if !dt.IsInteger() {
		return nil, dtypeErrorf("RandInt", "dtype %s is not integer", dt)
	}
	if high <= low {
		return nil, shapeErrorf("RandInt", "empty interval [%d, %d)", low, high)
	}
	r, err := NewRawUninit(dt, shape)
	if err != nil {
		return nil, err
	}
	b, isz := r.buf.data, dt.size
	span := high - low
	for i, n := 0, r.NumElements(); i < n; i++ {
		storeInt(dt, b, r.off+i*isz, low+rng.Int63n(span))
	}
	return r, nil
}

// FromStrings builds a 1-D fixed-width text array. A zero width sizes
// the slots to the longest value.
func FromStrings(values []string, width int) (*Raw, error) {
	if width == 0 {
		for _, s := range values {
			if len(s) > width {
				width = len(s)
			}
		}
		if width == 0 {
			width = 1
		}
	}
	r, err := NewRaw(StrType(width), Shape{len(values)})
	if err != nil {
		return nil, err
	}
	for i, s := range values {
		encodeStr(r.buf.data[r.off+i*width:r.off+(i+1)*width], s)
	}
	return r, nil
}

// Scalar wraps a single Go value in a rank-0 array of the given dtype.
func Scalar(dt DataType, v any) (*Raw, error) {
	return scalarRaw(dt, v)
}
