package dirscrape

// Record maps field names to extracted values. The empty string represents
// a field the heuristics (and enrichment, if any) could not fill. A record
// produced against a schema always carries exactly the schema's key set.
type Record map[string]string

// NewRecord returns a record with every schema field present and empty.
func NewRecord(schema FieldSchema) Record {
	r := make(Record, len(schema))
	for _, f := range schema {
		r[f.Name] = ""
	}
	return r
}

// Missing returns the subset of the schema whose fields are still empty in
// the record, preserving schema order.
func (r Record) Missing(schema FieldSchema) FieldSchema {
	return schema.Select(func(name string) bool {
		return r[name] == ""
	})
}

// MissingRatio returns the fraction of schema fields the record has not
// filled. An empty schema yields 0.
func (r Record) MissingRatio(schema FieldSchema) float64 {
	if len(schema) == 0 {
		return 0
	}
	missing := 0
	for _, f := range schema {
		if r[f.Name] == "" {
			missing++
		}
	}
	return float64(missing) / float64(len(schema))
}

// MergeMissing copies values from src into the record, but only for fields
// that are currently empty. Populated fields are never overwritten.
func (r Record) MergeMissing(src map[string]string) {
	for name, value := range src {
		if value == "" {
			continue
		}
		if cur, ok := r[name]; ok && cur == "" {
			r[name] = value
		}
	}
}
