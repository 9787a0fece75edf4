package array

import (
	"strings"
	"testing"
)

func TestFormatVector(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{1, 2, 3}, nil))
	defer a.Release()
	got := a.String()
	want := "array([1 2 3], dtype=int64)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatMatrix(t *testing.T) {
	a := mustRaw(t)(FromSlice([]float64{1, 2.5, 3, 4}, Shape{2, 2}))
	defer a.Release()
	got := a.String()
	if !strings.Contains(got, "[1 2.5]") || !strings.Contains(got, "[3 4]") {
		t.Errorf("rows missing from %q", got)
	}
	if !strings.HasSuffix(got, "dtype=float64)") {
		t.Errorf("dtype suffix missing from %q", got)
	}
}

func TestFormatScalar(t *testing.T) {
	a := mustRaw(t)(FromAny(true))
	defer a.Release()
	if got := a.String(); got != "array(true, dtype=bool)" {
		t.Errorf("got %q", got)
	}
}

func TestFormatSummarizes(t *testing.T) {
	big := mustRaw(t)(Arange(Int64, 0, 2000, 1))
	defer big.Release()
	got := big.String()
	if !strings.Contains(got, "...") {
		t.Errorf("large array should summarize, got %q", got)
	}
	// Leading and trailing edges survive.
	if !strings.Contains(got, "[0 1 2") || !strings.Contains(got, "1999]") {
		t.Errorf("edges missing from %q", got)
	}
}

func TestFormatOptions(t *testing.T) {
	a := mustRaw(t)(FromSlice([]int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, nil))
	defer a.Release()
	got := Format(a, PrintOptions{Threshold: 5, EdgeItems: 2})
	if !strings.Contains(got, "[0 1 ... 8 9]") {
		t.Errorf("got %q", got)
	}

	// Small arrays never summarize.
	full := Format(a, PrintOptions{})
	if strings.Contains(full, "...") {
		t.Errorf("default threshold should print everything, got %q", full)
	}
}

func TestFormatStrings(t *testing.T) {
	a := mustRaw(t)(FromStrings([]string{"hi", "yo"}, 0))
	defer a.Release()
	got := a.String()
	if !strings.Contains(got, `"hi"`) || !strings.Contains(got, `"yo"`) {
		t.Errorf("got %q", got)
	}
}

func TestFormatRecord(t *testing.T) {
	dt, err := StructOf(Field{Name: "a", Type: Int64}, Field{Name: "b", Type: Float64})
	if err != nil {
		t.Fatal(err)
	}
	r := mustRaw(t)(Zeros(dt, Shape{1}))
	defer r.Release()
	got := r.String()
	if !strings.Contains(got, "(0, 0)") {
		t.Errorf("got %q", got)
	}
}
