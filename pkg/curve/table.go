package curve

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
)

// Table maps brightness levels 1..256 (indices 0..255) to driver configurations.
type Table [Steps]Entry

// Lookup returns the entry for a brightness level. Level 0 is off and reports
// false; level n uses index n-1.
func (t *Table) Lookup(level uint8) (Entry, bool) {
	if level == 0 {
		return Entry{}, false
	}
	return t[level-1], true
}

// Outputs returns the normalized output of every entry.
func (t *Table) Outputs(p Params) []float32 {
	out := make([]float32, len(t))
	for i, e := range t {
		out[i] = e.Output(p)
	}
	return out
}

// Monotonic reports whether output never decreases with the index.
func (t *Table) Monotonic(p Params) bool {
	outs := t.Outputs(p)
	for i := 1; i < len(outs); i++ {
		if outs[i] < outs[i-1] {
			return false
		}
	}
	return true
}

// LowRangeCount returns how many entries use the low range.
func (t *Table) LowRangeCount() int {
	n := 0
	for _, e := range t {
		if !e.HighRange {
			n++
		}
	}
	return n
}

// WriteGo renders t as a gofmt-formatted Go source file declaring var name in
// package pkg.
func WriteGo(w io.Writer, pkg, name string, t *Table) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by curvegen; DO NOT EDIT.\n\npackage %s\n\nvar %s = Table{\n", pkg, name)
	for i, e := range t {
		fmt.Fprintf(&buf, "\t{HighRange: %t, Code: %d}, // %d\n", e.HighRange, e.Code, i)
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format table: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
