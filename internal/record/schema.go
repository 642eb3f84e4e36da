package record

// Schema is an append-only registry of column names in first-seen order.
type Schema struct {
	index map[string]int
	names []string
}

func NewSchema() *Schema {
	return &Schema{index: make(map[string]int)}
}

// Add registers name and reports whether it was new.
func (s *Schema) Add(name string) bool {
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	return true
}

// Index returns the first-seen position of name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

func (s *Schema) Len() int {
	return len(s.names)
}

// Columns returns a copy of the registered names.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
