// Copyright 2025 The NumGo Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package textio is the public API for loading and saving arrays as
// delimited text (CSV, TSV, space-separated), from local paths or
// http(s) URLs.
//
// Example:
//
//	a, err := textio.Load("data.csv", textio.LoadOptions{SkipRows: 1})
//	if err != nil {
//	    ...
//	}
//	defer a.Release()
package textio

import (
	"io"

	"github.com/numgo-dev/numgo/internal/array"
	"github.com/numgo-dev/numgo/internal/textio"
)

// Delims enumerates the supported field delimiters.
type Delims = textio.Delims

// Delimiter constants.
const (
	Detect Delims = textio.Detect
	Tab    Delims = textio.Tab
	Comma  Delims = textio.Comma
	Space  Delims = textio.Space
)

// ParseDelims maps a name like "comma" or "tab" to a Delims value.
func ParseDelims(s string) (Delims, error) { return textio.ParseDelims(s) }

// LoadOptions controls parsing; the zero value reads detected-delimiter
// float64 data.
type LoadOptions = textio.LoadOptions

// SaveOptions controls writing.
type SaveOptions = textio.SaveOptions

// Load reads delimited text from a local path or an http(s) URL into a
// 2-D array.
func Load(source string, opts LoadOptions) (*array.Raw, error) {
	return textio.Load(source, opts)
}

// Read parses delimited text from a reader. See Load.
func Read(r io.Reader, opts LoadOptions) (*array.Raw, error) {
	return textio.Read(r, opts)
}

// Save writes a 1-D or 2-D array as delimited text.
func Save(w io.Writer, a *array.Raw, opts SaveOptions) error {
	return textio.Save(w, a, opts)
}

// SaveFile writes the array to a freshly created file.
func SaveFile(path string, a *array.Raw, opts SaveOptions) error {
	return textio.SaveFile(path, a, opts)
}
