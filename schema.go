package dirscrape

// Field is a single output field: a name plus a natural-language
// description of its meaning. The description drives both heuristic keyword
// matching and enrichment instructions.
type Field struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FieldSchema is the ordered set of fields a caller wants extracted.
// Order matters: positional heuristics (e.g. header-less table rows) match
// fields in schema order.
type FieldSchema []Field

// Validate returns an error if the schema is empty or contains unnamed or
// duplicate fields.
func (s FieldSchema) Validate() error {
	if len(s) == 0 {
		return Errorf(EINVALID, "field schema required")
	}
	seen := make(map[string]bool, len(s))
	for _, f := range s {
		if f.Name == "" {
			return Errorf(EINVALID, "field name required")
		}
		if seen[f.Name] {
			return Errorf(EINVALID, "duplicate field %q", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Names returns the field names in schema order.
func (s FieldSchema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the schema contains a field with the given name.
func (s FieldSchema) Has(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Select returns the subset of the schema whose names satisfy keep,
// preserving order.
func (s FieldSchema) Select(keep func(name string) bool) FieldSchema {
	var sub FieldSchema
	for _, f := range s {
		if keep(f.Name) {
			sub = append(sub, f)
		}
	}
	return sub
}
