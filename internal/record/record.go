package record

// Record is one decoded unit of the input stream.
type Record map[string]interface{}

// Get returns the value stored under field and whether it was present.
func (r Record) Get(field string) (interface{}, bool) {
	v, ok := r[field]
	return v, ok
}
