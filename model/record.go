package model

import (
	"fmt"
	"strings"
)

// Record is a mutable container of named fields flowing through a pipeline.
// Each field holds an ordered sequence of values; insertion order of both
// fields and values is preserved and duplicates are permitted. A record is
// owned by the pipeline driver for the duration of a single Process call -
// commands mutate it in place and must not retain a reference afterwards.
type Record struct {
	names  []string
	fields map[string][]interface{}
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string][]interface{})}
}

// Has returns true when the record contains at least one value for the named field.
func (r *Record) Has(name string) bool {
	values, ok := r.fields[name]
	return ok && len(values) > 0
}

// Get returns all values of the named field in insertion order, or nil when absent.
func (r *Record) Get(name string) []interface{} {
	return r.fields[name]
}

// FirstValue returns the first value of the named field, or nil when absent.
func (r *Record) FirstValue(name string) interface{} {
	values := r.fields[name]
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// Put appends a value to the named field, creating the field when needed.
func (r *Record) Put(name string, value interface{}) {
	if _, ok := r.fields[name]; !ok {
		r.names = append(r.names, name)
	}
	r.fields[name] = append(r.fields[name], value)
}

// Replace discards any prior values of the named field and stores the single
// supplied value.
func (r *Record) Replace(name string, value interface{}) {
	if _, ok := r.fields[name]; !ok {
		r.names = append(r.names, name)
	}
	r.fields[name] = []interface{}{value}
}

// Remove deletes the named field and all its values.
func (r *Record) Remove(name string) {
	if _, ok := r.fields[name]; !ok {
		return
	}
	delete(r.fields, name)
	for i, candidate := range r.names {
		if candidate == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

// Fields returns field names in insertion order.
func (r *Record) Fields() []string {
	ret := make([]string, len(r.names))
	copy(ret, r.names)
	return ret
}

// Clone returns a deep copy of the field structure; values themselves are
// shared, matching the driver's transfer-of-ownership contract.
func (r *Record) Clone() *Record {
	ret := &Record{
		names:  make([]string, len(r.names)),
		fields: make(map[string][]interface{}, len(r.fields)),
	}
	copy(ret.names, r.names)
	for name, values := range r.fields {
		copied := make([]interface{}, len(values))
		copy(copied, values)
		ret.fields[name] = copied
	}
	return ret
}

// String renders the record for debug logging.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", name, r.fields[name])
	}
	b.WriteByte('}')
	return b.String()
}
