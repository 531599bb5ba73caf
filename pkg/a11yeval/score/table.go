package score

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"gonum.org/v1/gonum/mat"
)

// Row holds the values of one object in one label table.  Undefined
// values are NaN.
type Row struct {
	Name   string
	Values []float64
}

// Table is a parsed label table with one row per object.
type Table []Row

// Len returns the total number of values in the table.
func (t Table) Len() int {
	var n int
	for _, row := range t {
		n += len(row.Values)
	}
	return n
}

// Layout defines the parsing strategy of label tables.
type Layout int

// Available layouts.
const (
	// LayoutAuto uses LayoutListed if an object list is given and
	// LayoutRows otherwise.
	LayoutAuto Layout = iota
	// LayoutRows expects one row per object.  The first column holds
	// the object name and the remaining columns the sample values.
	LayoutRows
	// LayoutListed expects the tables of LayoutRows and reindexes
	// them to the object list.
	LayoutListed
	// LayoutColumns expects a header row of object names followed by
	// one row per sample.
	LayoutColumns
)

// ErrNoListedObjects is returned if a table does not contain any
// object of the object list.
var ErrNoListedObjects = errors.New("no listed objects")

// ParseLayout parses a layout name.
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return LayoutAuto, nil
	case "rows":
		return LayoutRows, nil
	case "listed":
		return LayoutListed, nil
	case "columns":
		return LayoutColumns, nil
	default:
		return 0, fmt.Errorf("parseLayout: invalid layout: %q", name)
	}
}

func (l Layout) String() string {
	switch l {
	case LayoutAuto:
		return "auto"
	case LayoutRows:
		return "rows"
	case LayoutListed:
		return "listed"
	case LayoutColumns:
		return "columns"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// resolve returns the concrete layout for the given object list.
func (l Layout) resolve(objects *a11yeval.ObjectList) Layout {
	if l != LayoutAuto {
		return l
	}
	if objects.Len() > 0 {
		return LayoutListed
	}
	return LayoutRows
}

// ParseRows parses a row per object table.  The first record is the
// header and is ignored.  Unknown values (-1) are relabeled as
// positive (1).
func ParseRows(r io.Reader) (Table, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("parseRows: %v", err)
	}
	t, err := parseRows(records, true)
	if err != nil {
		return nil, fmt.Errorf("parseRows: %v", err)
	}
	return t, nil
}

// ParseListed parses a row per object table like ParseRows and
// reindexes it to the given object list: the result contains exactly
// one row for each listed object in list order.  Listed objects that
// are missing from the table get a row of undefined values and rows
// of unlisted objects are dropped.  Values are not relabeled.  If the
// table has records but none of them is a listed object, an error
// wrapping ErrNoListedObjects is returned.
func ParseListed(r io.Reader, objects *a11yeval.ObjectList) (Table, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("parseListed: %v", err)
	}
	t, err := parseRows(records, false)
	if err != nil {
		return nil, fmt.Errorf("parseListed: %v", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	rows := make(map[string][]float64, len(t))
	n := 0
	for _, row := range t {
		if _, ok := rows[row.Name]; ok || !objects.Contains(row.Name) {
			continue
		}
		rows[row.Name] = row.Values
		if len(row.Values) > n {
			n = len(row.Values)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parseListed: %w", ErrNoListedObjects)
	}
	ret := make(Table, 0, objects.Len())
	for _, name := range objects.Names() {
		vals, ok := rows[name]
		if !ok {
			vals = undefined(n)
		}
		ret = append(ret, Row{Name: name, Values: vals})
	}
	return ret, nil
}

func parseRows(records [][]string, relabel bool) (Table, error) {
	if len(records) == 0 {
		return nil, nil
	}
	var t Table
	for i, record := range records[1:] {
		name := a11yeval.NormalizeName(record[0])
		if name == "" {
			continue
		}
		row := Row{Name: name, Values: make([]float64, 0, len(record)-1)}
		for j, cell := range record[1:] {
			val, err := parseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("record %d, column %d: %v", i+2, j+2, err)
			}
			if relabel && val == -1 {
				val = 1
			}
			row.Values = append(row.Values, val)
		}
		t = append(t, row)
	}
	return t, nil
}

func undefined(n int) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = math.NaN()
	}
	return vals
}

// ParseColumns parses a table with a header row of object names and
// one record per sample.  The result is reindexed to the given object
// list: it contains exactly one row for each listed object in list
// order.  Objects that are missing from the table get a row of
// undefined values and columns of unlisted objects are dropped.  If
// no header cell names a listed object, an error wrapping
// ErrNoListedObjects is returned.
func ParseColumns(r io.Reader, objects *a11yeval.ObjectList) (Table, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("parseColumns: %v", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	// Map each listed object to its first column in the header.
	cols := make(map[string]int)
	for j, cell := range records[0] {
		name := a11yeval.NormalizeName(cell)
		if _, ok := cols[name]; ok || !objects.Contains(name) {
			continue
		}
		cols[name] = j
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("parseColumns: %w", ErrNoListedObjects)
	}
	samples := records[1:]
	t := make(Table, 0, objects.Len())
	for _, name := range objects.Names() {
		row := Row{Name: name, Values: make([]float64, len(samples))}
		j, ok := cols[name]
		for i, record := range samples {
			if !ok || j >= len(record) {
				row.Values[i] = math.NaN()
				continue
			}
			val, err := parseValue(record[j])
			if err != nil {
				return nil, fmt.Errorf("parseColumns: record %d, column %d: %v", i+2, j+1, err)
			}
			row.Values[i] = val
		}
		t = append(t, row)
	}
	return t, nil
}

func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false
	return cr.ReadAll()
}

// parseValue parses a label value.  Empty cells and NaN are undefined.
func parseValue(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	val, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", cell)
	}
	return val, nil
}

// WriteMatrix writes the samples x objects matrix m as a table with a
// header row of the given labels and one record per sample.  The
// output can be read back with ParseColumns.
func WriteMatrix(w io.Writer, labels []string, m mat.Matrix) error {
	r, c := m.Dims()
	if c != len(labels) {
		return fmt.Errorf("writeMatrix: %d columns but %d labels", c, len(labels))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(labels); err != nil {
		return fmt.Errorf("writeMatrix: %v", err)
	}
	record := make([]string, c)
	for i := 0; i < r; i++ {
		for j := range record {
			record[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writeMatrix: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writeMatrix: %v", err)
	}
	return nil
}
