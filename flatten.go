package pemcsv

import (
	"fmt"
	"strings"
)

// Record is an ordered mapping of dotted-path keys to string values.
// Key order follows depth-first first-occurrence during flattening.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores a value under key. Setting an existing key overwrites the
// value but keeps the key's original position.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Values returns the values in key order.
func (r *Record) Values() []string {
	vals := make([]string, len(r.keys))
	for i, k := range r.keys {
		vals[i] = r.values[k]
	}
	return vals
}

// Merge copies all entries of other into r in order, overwriting on
// collision. Collisions cannot occur between sibling subtrees because
// every dotted path is unique, but merge-with-overwrite keeps the
// composition explicit.
func (r *Record) Merge(other *Record) {
	for _, k := range other.keys {
		r.Set(k, other.values[k])
	}
}

// Flatten linearizes an XML tree into a Record. Attributes become
// "@name" keys, direct text becomes "#text", child elements extend the
// dotted path by tag name, and repeated sibling tags are disambiguated
// with a 0-based "[i]" index in document order. The root element's own
// attributes and text are unprefixed; its tag name starts the dotted
// path for everything below it.
func Flatten(root *Element) *Record {
	return flatten(root, "", root.Name)
}

// flatten emits el's attributes and text under selfKey and recurses
// into children under childBase. The two differ only at the root.
func flatten(el *Element, selfKey, childBase string) *Record {
	rec := NewRecord()

	for _, attr := range el.Attrs {
		rec.Set(joinKey(selfKey, "@"+attr.Name.Local), attr.Value)
	}

	if text := strings.TrimSpace(el.Text); text != "" {
		rec.Set(joinKey(selfKey, "#text"), text)
	}

	// Group children by tag, preserving first-occurrence tag order.
	var tagOrder []string
	groups := make(map[string][]*Element)
	for _, child := range el.Children {
		if _, seen := groups[child.Name]; !seen {
			tagOrder = append(tagOrder, child.Name)
		}
		groups[child.Name] = append(groups[child.Name], child)
	}

	for _, tag := range tagOrder {
		children := groups[tag]
		if len(children) == 1 {
			key := joinKey(childBase, tag)
			rec.Merge(flatten(children[0], key, key))
			continue
		}
		for i, child := range children {
			key := joinKey(childBase, fmt.Sprintf("%s[%d]", tag, i))
			rec.Merge(flatten(child, key, key))
		}
	}

	return rec
}

func joinKey(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
