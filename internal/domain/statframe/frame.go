// Package statframe holds a parsed stats table as text cells keyed by column
// label, together with the column and number rules applied to it.
package statframe

// Frame is one parsed table. Rows hold raw cell text in column order.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Record is one row keyed by column label. When two columns share a label,
// the later column wins.
type Record map[string]string

func (f Frame) Len() int {
	return len(f.Rows)
}

func (f Frame) HasColumn(name string) bool {
	for _, c := range f.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Records materializes every row as a Record.
func (f Frame) Records() []Record {
	out := make([]Record, 0, len(f.Rows))
	for _, row := range f.Rows {
		rec := make(Record, len(f.Columns))
		for i, col := range f.Columns {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// Normalize returns a copy of f with every column label passed through NormalizeColumn.
func (f Frame) Normalize() Frame {
	cols := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		cols[i] = NormalizeColumn(c)
	}
	return Frame{Columns: cols, Rows: f.Rows}
}

// Pick returns the cell for the first alias present in the record.
func (r Record) Pick(aliases ...string) (string, bool) {
	for _, a := range aliases {
		if v, ok := r[a]; ok {
			return v, true
		}
	}
	return "", false
}

// Float coerces the cell for the first present alias. Missing columns and
// unparseable text both report false.
func (r Record) Float(aliases ...string) (float64, bool) {
	v, ok := r.Pick(aliases...)
	if !ok {
		return 0, false
	}
	return ParseNumber(v)
}
