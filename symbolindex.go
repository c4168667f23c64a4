package coil

import (
	"fmt"
	"hash/fnv"
)

// SymbolIndex is a chained-bucket hash map from symbol name to symbol table
// index, giving FindSymbol-style lookups without a linear scan over a large
// object's symbol table.
type SymbolIndex struct {
	buckets []symbolBucket
	size    int
	count   int
}

type symbolBucket struct {
	key      string
	value    uint16
	occupied bool
	next     *symbolBucket
}

// NewSymbolIndex creates an index with the given initial bucket count
// (rounded up to 16).
func NewSymbolIndex(initialSize int) *SymbolIndex {
	if initialSize < 16 {
		initialSize = 16
	}
	return &SymbolIndex{
		buckets: make([]symbolBucket, initialSize),
		size:    initialSize,
	}
}

// BuildSymbolIndex indexes every symbol of o by name. On a duplicate name
// the later symbol wins; this is also Object.FindSymbol's resolution rule,
// since FindSymbol lazily builds and maintains one of these per Object.
func BuildSymbolIndex(o *Object) *SymbolIndex {
	idx := NewSymbolIndex(len(o.Symbols))
	for i, s := range o.Symbols {
		idx.Set(s.Name, uint16(i))
	}
	return idx
}

func (m *SymbolIndex) hash(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

// Get returns the symbol table index stored under key, if any.
func (m *SymbolIndex) Get(key string) (uint16, bool) {
	idx := m.hash(key) % uint64(m.size)
	bucket := &m.buckets[idx]

	if bucket.occupied && bucket.key == key {
		return bucket.value, true
	}

	current := bucket.next
	for current != nil {
		if current.key == key {
			return current.value, true
		}
		current = current.next
	}

	return 0, false
}

// Set stores value under key, resizing when the load factor exceeds 0.75.
func (m *SymbolIndex) Set(key string, value uint16) {
	idx := m.hash(key) % uint64(m.size)
	bucket := &m.buckets[idx]

	if !bucket.occupied {
		bucket.key = key
		bucket.value = value
		bucket.occupied = true
		m.count++
		if float64(m.count)/float64(m.size) > 0.75 {
			m.resize()
		}
		return
	}

	if bucket.key == key {
		bucket.value = value
		return
	}

	current := bucket.next
	prev := bucket
	for current != nil {
		if current.key == key {
			current.value = value
			return
		}
		prev = current
		current = current.next
	}

	prev.next = &symbolBucket{key: key, value: value, occupied: true}
	m.count++

	if float64(m.count)/float64(m.size) > 0.75 {
		m.resize()
	}
}

func (m *SymbolIndex) resize() {
	oldBuckets := m.buckets
	m.size *= 2
	m.buckets = make([]symbolBucket, m.size)
	m.count = 0

	for i := range oldBuckets {
		bucket := &oldBuckets[i]
		if bucket.occupied {
			m.Set(bucket.key, bucket.value)
		}
		current := bucket.next
		for current != nil {
			m.Set(current.key, current.value)
			current = current.next
		}
	}
}

// Delete removes key from the index.
func (m *SymbolIndex) Delete(key string) bool {
	idx := m.hash(key) % uint64(m.size)
	bucket := &m.buckets[idx]

	if bucket.occupied && bucket.key == key {
		if bucket.next != nil {
			*bucket = *bucket.next
		} else {
			bucket.key = ""
			bucket.value = 0
			bucket.occupied = false
			bucket.next = nil
		}
		m.count--
		return true
	}

	prev := bucket
	current := bucket.next
	for current != nil {
		if current.key == key {
			prev.next = current.next
			m.count--
			return true
		}
		prev = current
		current = current.next
	}

	return false
}

// Keys returns every name currently indexed.
func (m *SymbolIndex) Keys() []string {
	keys := make([]string, 0, m.count)
	for i := range m.buckets {
		bucket := &m.buckets[i]
		if bucket.occupied {
			keys = append(keys, bucket.key)
		}
		current := bucket.next
		for current != nil {
			keys = append(keys, current.key)
			current = current.next
		}
	}
	return keys
}

// Count returns the number of indexed names.
func (m *SymbolIndex) Count() int { return m.count }

func (m *SymbolIndex) String() string {
	return fmt.Sprintf("SymbolIndex{count: %d, size: %d}", m.count, m.size)
}
