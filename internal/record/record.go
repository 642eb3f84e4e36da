package record

import "github.com/dgallion1/modeltab/internal/params"

const (
	// FileColumn holds the source filename and is always the first column.
	FileColumn = "file"
	// CategoryColumn holds the derived size bucket.
	CategoryColumn = "MODEL_SIZE_CATEGORY"
)

// Field is one named cell of a table row.
type Field struct {
	Name  string
	Value string
}

// Table is one parsed ASCII table: its label (e.g. METADATA) and the retained data row.
type Table struct {
	Label  string
	Fields []Field
}

// Value returns the cell under name.
func (t Table) Value(name string) (string, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// FlatRecord is every table of one input file merged under LABEL_COLUMN keys.
type FlatRecord struct {
	keys   []string
	values map[string]string

	Count    params.Count
	Category params.Category
}

// New returns a record for file with an unknown size.
func New(file string) *FlatRecord {
	r := &FlatRecord{
		values:   make(map[string]string),
		Category: params.CategoryUnknown,
	}
	r.Set(FileColumn, file)
	return r
}

// File returns the source filename.
func (r *FlatRecord) File() string {
	return r.values[FileColumn]
}

// Set stores value under key. A repeated key keeps its first position and takes the last value.
func (r *FlatRecord) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// AddTable merges t into the record, prefixing each column with the table label.
// A column whose key would collide with the derived category is stored under
// the key with a _TABLE suffix instead.
func (r *FlatRecord) AddTable(t Table) {
	for _, f := range t.Fields {
		key := t.Label + "_" + f.Name
		if key == CategoryColumn {
			key += "_TABLE"
		}
		r.Set(key, f.Value)
	}
}

// Get returns the value under key, including the derived category column.
func (r *FlatRecord) Get(key string) (string, bool) {
	if key == CategoryColumn {
		return string(r.Category), true
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the stored keys in first-set order. The derived category column is not included.
func (r *FlatRecord) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len is the number of stored keys, file included.
func (r *FlatRecord) Len() int {
	return len(r.keys)
}
