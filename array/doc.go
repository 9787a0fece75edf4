// Copyright 2025 The NumGo Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array is the public API of the numgo dense array engine.
//
// An array is a shaped, strided view over a reference-counted byte
// buffer. Slicing, transposing, reshaping (when strides permit), and
// broadcasting all produce views that share storage; Copy materializes
// an independent dense array. Elementwise operations broadcast their
// operands and promote dtypes the conventional way.
//
// The package offers two surfaces:
//
//   - Raw: the untyped engine. Every operation returns an explicit
//     error (ShapeError, BroadcastError, IndexError, DTypeError).
//   - Array[T]: a generic typed wrapper for code whose shapes are known
//     by construction. Its methods panic on those same errors.
//
// Example:
//
//	a, _ := array.NewArray([]float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
//	row := a.Sel(0, 1)              // view of the second row
//	b := a.Add(a).MulScalar(0.5)    // elementwise arithmetic
//	total := b.Sum()
package array
