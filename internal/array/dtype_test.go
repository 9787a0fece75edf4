package array

import (
	"errors"
	"testing"
)

func TestPromoteTypes(t *testing.T) {
	tests := []struct {
		name string
		a, b DataType
		want DataType
	}{
		{"bool+bool", Bool, Bool, Bool},
		{"bool+int32", Bool, Int32, Int32},
		{"int8+int32", Int8, Int32, Int32},
		{"uint8+uint16", Uint8, Uint16, Uint16},
		{"int32+uint8", Int32, Uint8, Int32},
		{"int32+uint32", Int32, Uint32, Int64},
		{"int64+uint64", Int64, Uint64, Float64},
		{"int16+float32", Int16, Float32, Float32},
		{"int64+float32", Int64, Float32, Float64},
		{"float32+float64", Float32, Float64, Float64},
		{"float32+complex64", Float32, Complex64, Complex64},
		{"float64+complex64", Float64, Complex64, Complex128},
		{"complex64+complex128", Complex64, Complex128, Complex128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PromoteTypes(tt.a, tt.b)
			if err != nil {
				t.Fatalf("PromoteTypes(%s, %s): %v", tt.a, tt.b, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("PromoteTypes(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
			// Promotion is symmetric.
			rev, err := PromoteTypes(tt.b, tt.a)
			if err != nil || !rev.Equal(tt.want) {
				t.Errorf("PromoteTypes(%s, %s) = %s (%v), want %s", tt.b, tt.a, rev, err, tt.want)
			}
		})
	}
}

func TestPromoteTypesStr(t *testing.T) {
	got, err := PromoteTypes(StrType(3), StrType(7))
	if err != nil {
		t.Fatalf("PromoteTypes(str3, str7): %v", err)
	}
	if got.Kind() != KindStr || got.Size() != 7 {
		t.Errorf("got %s, want str width 7", got)
	}

	if _, err := PromoteTypes(StrType(3), Int64); err == nil {
		t.Error("PromoteTypes(str, int64) should fail")
	}
	var de *DTypeError
	_, err = PromoteTypes(StrType(3), Float64)
	if !errors.As(err, &de) {
		t.Errorf("want DTypeError, got %v", err)
	}
}

func TestStructOfLayout(t *testing.T) {
	dt, err := StructOf(
		Field{Name: "tag", Type: Uint8},
		Field{Name: "x", Type: Float64},
		Field{Name: "n", Type: Int32},
	)
	if err != nil {
		t.Fatalf("StructOf: %v", err)
	}
	// uint8 at 0, float64 aligned to 8, int32 at 16, record padded to 24.
	wantOffsets := map[string]int{"tag": 0, "x": 8, "n": 16}
	for name, off := range wantOffsets {
		f, ok := dt.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %q", name)
		}
		if f.Offset != off {
			t.Errorf("field %q offset = %d, want %d", name, f.Offset, off)
		}
	}
	if dt.Size() != 24 {
		t.Errorf("record size = %d, want 24", dt.Size())
	}
}

func TestStructOfRejectsDuplicates(t *testing.T) {
	_, err := StructOf(
		Field{Name: "x", Type: Float64},
		Field{Name: "x", Type: Int32},
	)
	if err == nil {
		t.Fatal("duplicate field names should fail")
	}
}
