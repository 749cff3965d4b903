package ast

// OrderedMap is an insertion-ordered string-to-string mapping, used for
// structure fields and function parameters where first-appearance order
// is semantically significant (it fixes memory/frame layout).
type OrderedMap struct {
	keys   []string
	values map[string]string
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]string)}
}

// Set inserts or updates the value for key, appending key to the
// insertion order the first time it is seen.
func (m *OrderedMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Index returns the zero-based insertion position of key, or -1.
func (m *OrderedMap) Index(key string) int {
	for i, k := range m.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}
