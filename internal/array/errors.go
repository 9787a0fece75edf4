package array

import "fmt"

// ShapeError reports shapes that are structurally incompatible for the
// requested operation: concatenation with mismatched dimensions, reshape
// to a different element count, split points out of range, or an output
// target whose shape does not match the result.
type ShapeError struct {
	Op     string
	Detail string
}

func (e *ShapeError) Error() string {
	return e.Op + ": " + e.Detail
}

func shapeErrorf(op, format string, args ...any) error {
	return &ShapeError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// BroadcastError reports two shapes that cannot be aligned under the
// broadcasting rule: after right-alignment some dimension pair has
// unequal sizes with neither equal to 1.
type BroadcastError struct {
	A, B Shape
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("shapes %v and %v are not broadcast-compatible", e.A, e.B)
}

// IndexError reports a scalar index that resolves outside the valid
// bounds of its dimension after negative-index normalization, or an
// invalid indexing parameter such as a zero slice step.
type IndexError struct {
	Op     string
	Index  int
	Axis   int
	Size   int
	Detail string
}

func (e *IndexError) Error() string {
	if e.Detail != "" {
		return e.Op + ": " + e.Detail
	}
	return fmt.Sprintf("%s: index %d out of range for axis %d with size %d", e.Op, e.Index, e.Axis, e.Size)
}

func indexErrorf(op, format string, args ...any) error {
	return &IndexError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// DTypeError reports element kinds an operation cannot promote or
// interpret, such as arithmetic on fixed-width text or an ordering
// comparison on complex values.
type DTypeError struct {
	Op     string
	Detail string
}

func (e *DTypeError) Error() string {
	return e.Op + ": " + e.Detail
}

func dtypeErrorf(op, format string, args ...any) error {
	return &DTypeError{Op: op, Detail: fmt.Sprintf(format, args...)}
}
