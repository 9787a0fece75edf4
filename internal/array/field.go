package array

// FieldView selects one named field of a record array as a view: the
// result keeps the parent's shape and byte strides, shifts the offset
// by the field's position inside each record slot, and takes on the
// field's dtype. No element is copied, so writes through the view land
// in the parent records.
//
// Example:
//
//	xs, _ := array.FieldView(points, "x")
//	_ = array.Assign(xs, zeros) // zero the x of every point
func FieldView(r *Raw, name string) (*Raw, error) {
	if r.dtype.kind != KindStruct {
		return nil, dtypeErrorf("FieldView", "array dtype %s has no fields", r.dtype)
	}
	f, ok := r.dtype.FieldByName(name)
	if !ok {
		return nil, dtypeErrorf("FieldView", "dtype %s has no field %q", r.dtype, name)
	}
	return r.view(r.shape.Clone(), r.strides.Clone(), r.off+f.Offset, f.Type), nil
}

// FieldNames lists the fields of a record array in declaration order,
// or nil for non-record dtypes.
func FieldNames(r *Raw) []string {
	if r.dtype.kind != KindStruct {
		return nil
	}
	names := make([]string, len(r.dtype.rec.fields))
	for i, f := range r.dtype.rec.fields {
		names[i] = f.Name
	}
	return names
}
