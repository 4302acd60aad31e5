package http

import "strings"

// Field is one header name/value pair.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered multimap of header fields. Names are normalized to
// lowercase, duplicates are allowed and insertion order is preserved, both
// globally and within one name.
type Header struct {
	fields []Field
}

// Add appends a field, keeping any existing fields with the same name.
func (h *Header) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: strings.ToLower(name), Value: value})
}

// Set replaces all fields named name with a single field.
func (h *Header) Set(name, value string) {
	h.Del(name)
	h.Add(name, value)
}

// Get returns the first value for name.
func (h *Header) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, f := range h.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether at least one field named name exists.
func (h *Header) Has(name string) bool {
	_, found := h.Get(name)
	return found
}

// Values returns all values for name in insertion order.
func (h *Header) Values(name string) []string {
	name = strings.ToLower(name)
	var values []string
	for _, f := range h.fields {
		if f.Name == name {
			values = append(values, f.Value)
		}
	}
	return values
}

// Del removes all fields named name.
func (h *Header) Del(name string) {
	name = strings.ToLower(name)
	kept := h.fields[:0]
	for _, f := range h.fields {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}

// Fields exposes the underlying fields in insertion order. The returned
// slice must not be modified.
func (h *Header) Fields() []Field {
	return h.fields
}

func (h *Header) Len() int {
	return len(h.fields)
}

// Clone returns a copy that shares nothing with h.
func (h *Header) Clone() Header {
	fields := make([]Field, len(h.fields))
	copy(fields, h.fields)
	return Header{fields: fields}
}
