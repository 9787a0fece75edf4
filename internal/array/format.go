package array

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintOptions controls how String renders an array. Arrays holding more
// than Threshold elements are summarized: each axis shows EdgeItems
// leading and trailing entries around an ellipsis.
type PrintOptions struct {
	Threshold int // Element count above which output is summarized.
	EdgeItems int // Entries shown at each end of a summarized axis.
	Precision int // Significant digits for floating-point values.
}

var defaultPrintOptions = PrintOptions{
	Threshold: 1000,
	EdgeItems: 3,
	Precision: 6,
}

// Format renders the array with explicit options.
func Format(r *Raw, opts PrintOptions) string {
	if opts.Threshold <= 0 {
		opts.Threshold = defaultPrintOptions.Threshold
	}
	if opts.EdgeItems <= 0 {
		opts.EdgeItems = defaultPrintOptions.EdgeItems
	}
	if opts.Precision <= 0 {
		opts.Precision = defaultPrintOptions.Precision
	}
	return formatRaw(r, opts)
}

func formatRaw(r *Raw, opts PrintOptions) string {
	if r == nil || r.buf == nil {
		return "array(<released>)"
	}
	var sb strings.Builder
	sb.WriteString("array(")
	summarize := r.NumElements() > opts.Threshold
	formatRec(&sb, r, r.off, 0, opts, summarize)
	fmt.Fprintf(&sb, ", dtype=%s)", r.dtype)
	return sb.String()
}

// formatRec writes the subarray rooted at byte offset off, descending
// one dimension per call.
func formatRec(sb *strings.Builder, r *Raw, off, dim int, opts PrintOptions, summarize bool) {
	if dim == len(r.shape) {
		sb.WriteString(formatElem(r, off, opts))
		return
	}
	n := r.shape[dim]
	st := r.strides[dim]
	sb.WriteByte('[')
	edge := opts.EdgeItems
	short := summarize && n > 2*edge+1
	sep := " "
	if dim < len(r.shape)-1 {
		// Separate subarrays with a newline and indentation aligned
		// under the opening bracket.
		sep = "\n" + strings.Repeat(" ", dim+len("array("))
	}
	for i := 0; i < n; i++ {
		if short && i == edge {
			sb.WriteString(sep)
			sb.WriteString("...")
			i = n - edge - 1
			continue
		}
		if i > 0 {
			sb.WriteString(sep)
		}
		formatRec(sb, r, off+i*st, dim+1, opts, summarize)
	}
	sb.WriteByte(']')
}

func formatElem(r *Raw, off int, opts PrintOptions) string {
	b := r.buf.data
	dt := r.dtype
	switch dt.kind {
	case KindBool:
		return strconv.FormatBool(load[bool](b, off))
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(loadInt(dt, b, off), 10)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(uint64(loadInt(dt, b, off)), 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(load[float32](b, off)), 'g', opts.Precision, 32)
	case KindFloat64:
		return strconv.FormatFloat(load[float64](b, off), 'g', opts.Precision, 64)
	case KindComplex64, KindComplex128:
		c := loadComplex(dt, b, off)
		return fmt.Sprintf("(%s%+si)",
			strconv.FormatFloat(real(c), 'g', opts.Precision, 64),
			strconv.FormatFloat(imag(c), 'g', opts.Precision, 64))
	case KindStr:
		return strconv.Quote(decodeStr(b[off : off+dt.size]))
	case KindStruct:
		var sb strings.Builder
		sb.WriteByte('(')
		for i, f := range dt.rec.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			fr := Raw{buf: r.buf, dtype: f.Type}
			sb.WriteString(formatElem(&fr, off+f.Offset, opts))
		}
		sb.WriteByte(')')
		return sb.String()
	default:
		return "?"
	}
}
