package array

import (
	"fmt"
	"strings"
)

// DType is the constraint for element types the typed Array facade can
// carry. Fixed-width text and record elements are handled dynamically
// through Raw and have no static counterpart here.
type DType interface {
	~bool |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Kind enumerates the element categories an array can hold.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindStr
	KindStruct
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindComplex64:
		return "complex64"
	case KindComplex128:
		return "complex128"
	case KindStr:
		return "str"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Field describes one member of a record dtype. Offset is the byte
// position of the field inside each record slot and is assigned by
// StructOf; values supplied by the caller are ignored.
type Field struct {
	Name   string
	Type   DataType
	Offset int
}

// record holds the layout of a compound dtype. It is shared by pointer
// so DataType values stay comparable.
type record struct {
	fields []Field
	align  int
}

// DataType describes how the bytes of one element slot are interpreted:
// the kind, the slot width in bytes, and for records the field layout.
// The zero value is invalid and rejected by every constructor.
type DataType struct {
	kind Kind
	size int
	rec  *record
}

// Scalar dtypes. These are the only values of their kinds, so == works
// for them; use Equal when record or text dtypes may be involved.
var (
	Bool       = DataType{kind: KindBool, size: 1}
	Int8       = DataType{kind: KindInt8, size: 1}
	Int16      = DataType{kind: KindInt16, size: 2}
	Int32      = DataType{kind: KindInt32, size: 4}
	Int64      = DataType{kind: KindInt64, size: 8}
	Uint8      = DataType{kind: KindUint8, size: 1}
	Uint16     = DataType{kind: KindUint16, size: 2}
	Uint32     = DataType{kind: KindUint32, size: 4}
	Uint64     = DataType{kind: KindUint64, size: 8}
	Float32    = DataType{kind: KindFloat32, size: 4}
	Float64    = DataType{kind: KindFloat64, size: 8}
	Complex64  = DataType{kind: KindComplex64, size: 8}
	Complex128 = DataType{kind: KindComplex128, size: 16}
)

// StrType returns a fixed-width text dtype holding width bytes per
// element. Shorter values are zero-padded on the right; longer values
// are truncated on store.
func StrType(width int) DataType {
	if width <= 0 {
		panic(fmt.Sprintf("StrType: width must be positive, got %d", width))
	}
	return DataType{kind: KindStr, size: width}
}

// StructOf builds a record dtype from named fields. Field slots are laid
// out in declaration order at naturally aligned offsets, and the record
// size is padded to a multiple of the widest member alignment so that
// consecutive records stay aligned.
//
// Example:
//
//	point := array.StructOf(
//		array.Field{Name: "x", Type: array.Float64},
//		array.Field{Name: "y", Type: array.Float64},
//		array.Field{Name: "tag", Type: array.StrType(4)},
//	)
func StructOf(fields ...Field) (DataType, error) {
	if len(fields) == 0 {
		return DataType{}, dtypeErrorf("StructOf", "record dtype needs at least one field")
	}
	seen := make(map[string]bool, len(fields))
	laid := make([]Field, len(fields))
	off, maxAlign := 0, 1
	for i, f := range fields {
		if f.Name == "" {
			return DataType{}, dtypeErrorf("StructOf", "field %d has empty name", i)
		}
		if seen[f.Name] {
			return DataType{}, dtypeErrorf("StructOf", "duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
		if f.Type.kind == KindInvalid {
			return DataType{}, dtypeErrorf("StructOf", "field %q has invalid dtype", f.Name)
		}
		a := f.Type.alignment()
		if a > maxAlign {
			maxAlign = a
		}
		off = alignUp(off, a)
		laid[i] = Field{Name: f.Name, Type: f.Type, Offset: off}
		off += f.Type.size
	}
	return DataType{
		kind: KindStruct,
		size: alignUp(off, maxAlign),
		rec:  &record{fields: laid, align: maxAlign},
	}, nil
}

func alignUp(n, a int) int {
	return (n + a - 1) / a * a
}

// alignment reports the required byte alignment of one element slot.
func (dt DataType) alignment() int {
	switch dt.kind {
	case KindStr:
		return 1
	case KindStruct:
		return dt.rec.align
	case KindComplex128:
		return 8
	default:
		if dt.size > 8 {
			return 8
		}
		return dt.size
	}
}

// Kind reports the element category.
func (dt DataType) Kind() Kind { return dt.kind }

// Size reports the width of one element slot in bytes.
func (dt DataType) Size() int { return dt.size }

// Fields returns the record layout, or nil for non-record dtypes.
func (dt DataType) Fields() []Field {
	if dt.rec == nil {
		return nil
	}
	return dt.rec.fields
}

// FieldByName looks up a record member by name.
func (dt DataType) FieldByName(name string) (Field, bool) {
	if dt.rec == nil {
		return Field{}, false
	}
	for _, f := range dt.rec.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Equal reports whether two dtypes describe the same interpretation,
// comparing record layouts structurally.
func (dt DataType) Equal(other DataType) bool {
	if dt.kind != other.kind || dt.size != other.size {
		return false
	}
	if dt.kind != KindStruct {
		return true
	}
	fa, fb := dt.rec.fields, other.rec.fields
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if fa[i].Name != fb[i].Name || fa[i].Offset != fb[i].Offset || !fa[i].Type.Equal(fb[i].Type) {
			return false
		}
	}
	return true
}

// String renders the dtype the way it appears in array reprs.
func (dt DataType) String() string {
	switch dt.kind {
	case KindStr:
		return fmt.Sprintf("str%d", dt.size)
	case KindStruct:
		var b strings.Builder
		b.WriteString("struct{")
		for i, f := range dt.rec.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			b.WriteString(f.Type.String())
		}
		b.WriteString("}")
		return b.String()
	default:
		return dt.kind.String()
	}
}

// IsNumeric reports whether arithmetic is defined for the dtype.
func (dt DataType) IsNumeric() bool {
	switch dt.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64, KindComplex64, KindComplex128:
		return true
	default:
		return false
	}
}

// IsSignedInt reports whether the dtype is a signed integer kind.
func (dt DataType) IsSignedInt() bool {
	switch dt.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

// IsUnsignedInt reports whether the dtype is an unsigned integer kind.
func (dt DataType) IsUnsignedInt() bool {
	switch dt.kind {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether the dtype is any integer kind.
func (dt DataType) IsInteger() bool {
	return dt.IsSignedInt() || dt.IsUnsignedInt()
}

// IsFloat reports whether the dtype is a floating-point kind.
func (dt DataType) IsFloat() bool {
	return dt.kind == KindFloat32 || dt.kind == KindFloat64
}

// IsComplex reports whether the dtype is a complex kind.
func (dt DataType) IsComplex() bool {
	return dt.kind == KindComplex64 || dt.kind == KindComplex128
}

// IsOrdered reports whether <, <=, >, >= are defined for the dtype.
func (dt DataType) IsOrdered() bool {
	switch dt.kind {
	case KindBool, KindComplex64, KindComplex128, KindStruct, KindInvalid:
		return false
	default:
		return true
	}
}

func signedOfSize(size int) DataType {
	switch size {
	case 1:
		return Int8
	case 2:
		return Int16
	case 4:
		return Int32
	default:
		return Int64
	}
}

func unsignedOfSize(size int) DataType {
	switch size {
	case 1:
		return Uint8
	case 2:
		return Uint16
	case 4:
		return Uint32
	default:
		return Uint64
	}
}

// PromoteTypes computes the smallest dtype that can represent values of
// both inputs, following the conventional widening lattice:
//
//   - bool widens to anything numeric
//   - within one class the larger width wins
//   - signed and unsigned integers join at the next signed width that
//     can hold both, spilling to float64 when none exists
//   - integers of width 2 or less join float32 at float32, wider
//     integers push it to float64
//   - any float or integer joins a complex kind at the complex width
//     that preserves its precision
//   - fixed-width text joins text at the larger width
//
// Record dtypes join nothing, not even themselves under a different
// layout.
func PromoteTypes(a, b DataType) (DataType, error) {
	if a.kind == KindInvalid || b.kind == KindInvalid {
		return DataType{}, dtypeErrorf("PromoteTypes", "invalid dtype operand")
	}
	if a.Equal(b) {
		return a, nil
	}
	if a.kind == KindStruct || b.kind == KindStruct {
		return DataType{}, dtypeErrorf("PromoteTypes", "cannot promote %s with %s", a, b)
	}
	if a.kind == KindStr || b.kind == KindStr {
		if a.kind == KindStr && b.kind == KindStr {
			return StrType(maxInt(a.size, b.size)), nil
		}
		return DataType{}, dtypeErrorf("PromoteTypes", "cannot promote %s with %s", a, b)
	}
	if a.kind == KindBool {
		return b, nil
	}
	if b.kind == KindBool {
		return a, nil
	}

	// Complex absorbs everything numeric.
	if a.IsComplex() || b.IsComplex() {
		if a.kind == KindComplex128 || b.kind == KindComplex128 {
			return Complex128, nil
		}
		other := a
		if a.IsComplex() {
			other = b
		}
		if other.kind == KindComplex64 || other.kind == KindFloat32 || (other.IsInteger() && other.size <= 2) {
			return Complex64, nil
		}
		return Complex128, nil
	}

	// Float absorbs integers.
	if a.IsFloat() || b.IsFloat() {
		if a.kind == KindFloat64 || b.kind == KindFloat64 {
			return Float64, nil
		}
		other := a
		if a.IsFloat() {
			other = b
		}
		if other.kind == KindFloat32 || (other.IsInteger() && other.size <= 2) {
			return Float32, nil
		}
		return Float64, nil
	}

	// Integer with integer.
	switch {
	case a.IsSignedInt() && b.IsSignedInt():
		return signedOfSize(maxInt(a.size, b.size)), nil
	case a.IsUnsignedInt() && b.IsUnsignedInt():
		return unsignedOfSize(maxInt(a.size, b.size)), nil
	default:
		u, s := a, b
		if b.IsUnsignedInt() {
			u, s = b, a
		}
		if u.size < s.size {
			return signedOfSize(s.size), nil
		}
		if u.size >= 8 {
			return Float64, nil
		}
		return signedOfSize(2 * u.size), nil
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// dtypeOf maps a static element type to its runtime descriptor.
func dtypeOf[T DType]() DataType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		panic(fmt.Sprintf("unsupported element type %T", zero))
	}
}
