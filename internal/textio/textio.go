// Package textio loads and saves arrays as delimited text: CSV, TSV,
// and space-separated files, from local paths or http(s) URLs.
//
// Load parses the whole file into a 2-D array of one dtype (float64 by
// default). Save writes 1-D and 2-D arrays back out with configurable
// precision. Shapes richer than 2-D do not round-trip through text and
// are rejected.
package textio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/numgo-dev/numgo/internal/array"
)

// Delims enumerates the supported field delimiters.
type Delims int

const (
	// Detect inspects the first data line: tab wins over comma, comma
	// over space.
	Detect Delims = iota

	// Tab delimits TSV tab separated values.
	Tab

	// Comma delimits CSV comma separated values.
	Comma

	// Space delimits on any run of whitespace.
	Space
)

func (d Delims) String() string {
	switch d {
	case Tab:
		return "tab"
	case Comma:
		return "comma"
	case Space:
		return "space"
	default:
		return "detect"
	}
}

// Rune returns the delimiter character. Detect defaults to comma.
func (d Delims) Rune() rune {
	switch d {
	case Tab:
		return '\t'
	case Space:
		return ' '
	default:
		return ','
	}
}

// ParseDelims maps a user-facing name ("comma", "tab", "space",
// "detect") to a Delims value.
func ParseDelims(s string) (Delims, error) {
	switch strings.ToLower(s) {
	case "", "detect", "auto":
		return Detect, nil
	case "tab", "tsv", "\t":
		return Tab, nil
	case "comma", "csv", ",":
		return Comma, nil
	case "space", "ssv", " ":
		return Space, nil
	}
	return Detect, fmt.Errorf("textio: unknown delimiter %q", s)
}

// LoadOptions controls parsing. The zero value reads comma-or-detected
// delimited float64 data with no rows skipped.
type LoadOptions struct {
	// Delim selects the field separator; Detect sniffs the first line.
	Delim Delims

	// DType is the element type of the result: Float64 (default),
	// Int64, or a Str type. Anything else is rejected.
	DType array.DataType

	// SkipRows drops this many leading lines before parsing.
	SkipRows int

	// UseCols keeps only these column positions, in the given order.
	// Negative positions count from the last column.
	UseCols []int

	// Comments is a line prefix marking lines to ignore ("#" typically).
	Comments string

	// Fill replaces empty fields in numeric data. Defaults to NaN for
	// floats; integer data rejects empty fields unless FillSet is true.
	Fill    float64
	FillSet bool
}

// SaveOptions controls writing.
type SaveOptions struct {
	// Delim selects the separator; Detect writes commas.
	Delim Delims

	// Precision is the number of significant digits for floats.
	// Zero or negative means shortest round-trip formatting.
	Precision int
}

// Load reads delimited text from a local path or an http(s) URL into a
// 2-D array: one row per line, one column per field.
//
// Example:
//
//	a, err := textio.Load("measurements.csv", textio.LoadOptions{SkipRows: 1})
func Load(source string, opts LoadOptions) (*array.Raw, error) {
	rc, err := open(source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc, opts)
}

func open(source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("textio: fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("textio: fetch %s: %s", source, resp.Status)
		}
		return resp.Body, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("textio: %w", err)
	}
	return f, nil
}

// Read parses delimited text from a reader. See Load.
func Read(r io.Reader, opts LoadOptions) (*array.Raw, error) {
	dt := opts.DType
	if dt.Size() == 0 {
		dt = array.Float64
	}
	switch {
	case dt.Equal(array.Float64), dt.Equal(array.Int64), dt.Kind() == array.KindStr:
	default:
		return nil, fmt.Errorf("textio: unsupported load dtype %s (want float64, int64, or str)", dt)
	}

	rows, err := scanRows(r, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("textio: no data rows")
	}
	cols := len(rows[0])
	shape := array.Shape{len(rows), cols}

	switch {
	case dt.Equal(array.Int64):
		data := make([]int64, 0, len(rows)*cols)
		for i, rec := range rows {
			for j, field := range rec {
				if field == "" {
					if !opts.FillSet {
						return nil, fmt.Errorf("textio: row %d column %d: empty field in integer data", i, j)
					}
					data = append(data, int64(opts.Fill))
					continue
				}
				v, err := strconv.ParseInt(field, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("textio: row %d column %d: %w", i, j, err)
				}
				data = append(data, v)
			}
		}
		return array.FromSlice(data, shape)
	case dt.Kind() == array.KindStr:
		flat := make([]string, 0, len(rows)*cols)
		for _, rec := range rows {
			flat = append(flat, rec...)
		}
		// Width always tracks the longest field; the declared Str width
		// is only a type selector here.
		s, err := array.FromStrings(flat, 0)
		if err != nil {
			return nil, err
		}
		defer s.Release()
		return array.Reshape(s, shape)
	default:
		fill := math.NaN()
		if opts.FillSet {
			fill = opts.Fill
		}
		data := make([]float64, 0, len(rows)*cols)
		for i, rec := range rows {
			for j, field := range rec {
				if field == "" {
					data = append(data, fill)
					continue
				}
				v, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return nil, fmt.Errorf("textio: row %d column %d: %w", i, j, err)
				}
				data = append(data, v)
			}
		}
		return array.FromSlice(data, shape)
	}
}

// scanRows splits the input into uniform string records, applying
// SkipRows, comment filtering, delimiter detection, and UseCols.
// Comma and tab input goes through encoding/csv, so quoted fields work;
// space-delimited input splits on whitespace runs.
func scanRows(r io.Reader, opts LoadOptions) ([][]string, error) {
	lines, err := dataLines(r, opts)
	if err != nil || len(lines) == 0 {
		return nil, err
	}
	delim := opts.Delim
	if delim == Detect {
		delim = sniff(lines[0])
	}

	var rows [][]string
	if delim == Space {
		rows = make([][]string, len(lines))
		for i, l := range lines {
			rows[i] = strings.Fields(l)
		}
	} else {
		cr := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
		cr.Comma = delim.Rune()
		cr.FieldsPerRecord = -1 // uniformity checked below, with line numbers
		cr.TrimLeadingSpace = true
		rows, err = cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("textio: %w", err)
		}
	}

	for i, rec := range rows {
		if opts.UseCols != nil {
			picked, err := pickCols(rec, opts.UseCols, i+1)
			if err != nil {
				return nil, err
			}
			rows[i] = picked
			rec = picked
		}
		if len(rec) != len(rows[0]) {
			return nil, fmt.Errorf("textio: row %d has %d fields, want %d", i+1, len(rec), len(rows[0]))
		}
	}
	return rows, nil
}

// dataLines strips skipped, blank, and comment lines up front, keeping
// the delimiter-specific parser out of the filtering business.
func dataLines(r io.Reader, opts LoadOptions) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	n := 0
	for sc.Scan() {
		n++
		if n <= opts.SkipRows {
			continue
		}
		text := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		if opts.Comments != "" && strings.HasPrefix(trimmed, opts.Comments) {
			continue
		}
		lines = append(lines, text)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("textio: %w", err)
	}
	return lines, nil
}

func sniff(line string) Delims {
	switch {
	case strings.ContainsRune(line, '\t'):
		return Tab
	case strings.ContainsRune(line, ','):
		return Comma
	default:
		return Space
	}
}

func pickCols(rec []string, cols []int, line int) ([]string, error) {
	out := make([]string, len(cols))
	for i, c := range cols {
		j := c
		if j < 0 {
			j += len(rec)
		}
		if j < 0 || j >= len(rec) {
			return nil, fmt.Errorf("textio: line %d: column %d out of range (have %d)", line, c, len(rec))
		}
		out[i] = rec[j]
	}
	return out, nil
}

// Save writes a 1-D or 2-D array as delimited text, one row per line.
// 1-D arrays write as a single column.
//
// Example:
//
//	err := textio.Save(f, a, textio.SaveOptions{Delim: textio.Tab})
func Save(w io.Writer, a *array.Raw, opts SaveOptions) error {
	shape := a.Shape()
	var rows, cols int
	switch len(shape) {
	case 1:
		rows, cols = shape[0], 1
	case 2:
		rows, cols = shape[0], shape[1]
	default:
		return fmt.Errorf("textio: cannot save rank-%d array as text", len(shape))
	}
	cw := csv.NewWriter(w)
	cw.Comma = opts.Delim.Rune()
	rec := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			s, err := formatCell(a, i, j, len(shape), opts.Precision)
			if err != nil {
				return err
			}
			rec[j] = s
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("textio: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("textio: %w", err)
	}
	return nil
}

// SaveFile writes the array to a freshly created file. See Save.
func SaveFile(path string, a *array.Raw, opts SaveOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("textio: %w", err)
	}
	if err := Save(f, a, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatCell(a *array.Raw, i, j, rank, prec int) (string, error) {
	var v any
	var err error
	if rank == 1 {
		v, err = a.GetAny(i)
	} else {
		v, err = a.GetAny(i, j)
	}
	if err != nil {
		return "", err
	}
	if prec <= 0 {
		prec = -1
	}
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', prec, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', prec, 32), nil
	case bool:
		return strconv.FormatBool(x), nil
	case string:
		return x, nil
	case complex128:
		return strconv.FormatComplex(x, 'g', prec, 128), nil
	case complex64:
		return strconv.FormatComplex(complex128(x), 'g', prec, 64), nil
	default:
		return fmt.Sprint(v), nil
	}
}
