package coil

import "encoding/binary"

// TypeRegistry holds complex type descriptors (vectors-with-element-type,
// composites-with-fields) that don't fit in a 16-bit word alone. Ids are
// assigned sequentially starting at 0. The registry is process-local; it is
// not serialized into an Object.
type TypeRegistry struct {
	entries [][]byte
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{}
}

// RegisterVectorType appends a vector-type descriptor (`[type, element_type]`,
// little-endian u16 each) and returns its assigned id.
func (r *TypeRegistry) RegisterVectorType(vectorType, elementType Type) uint16 {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint16(data[0:2], uint16(vectorType))
	binary.LittleEndian.PutUint16(data[2:4], uint16(elementType))
	return r.register(data)
}

// RegisterCompositeType appends a composite-type descriptor
// (`[base, count, fields[count]]`, little-endian u16 each) and returns its
// assigned id.
func (r *TypeRegistry) RegisterCompositeType(base Type, fields []Type) uint16 {
	data := make([]byte, 4+2*len(fields))
	binary.LittleEndian.PutUint16(data[0:2], uint16(base))
	binary.LittleEndian.PutUint16(data[2:4], uint16(len(fields)))
	for i, f := range fields {
		binary.LittleEndian.PutUint16(data[4+2*i:6+2*i], uint16(f))
	}
	return r.register(data)
}

// Register appends a raw, already-encoded type descriptor and returns its
// assigned id. Exposed for callers constructing descriptors directly.
func (r *TypeRegistry) Register(typeData []byte) uint16 {
	return r.register(append([]byte(nil), typeData...))
}

func (r *TypeRegistry) register(data []byte) uint16 {
	r.entries = append(r.entries, data)
	return uint16(len(r.entries) - 1)
}

// Lookup returns the raw descriptor bytes for typeID. The second return
// value is false if typeID is out of range.
func (r *TypeRegistry) Lookup(typeID uint16) ([]byte, bool) {
	if int(typeID) >= len(r.entries) {
		return nil, false
	}
	return r.entries[typeID], true
}

// Exists reports whether typeID has been registered.
func (r *TypeRegistry) Exists(typeID uint16) bool {
	return int(typeID) < len(r.entries)
}

// Clear drops all registered entries.
func (r *TypeRegistry) Clear() {
	r.entries = nil
}

// Len returns the number of registered entries.
func (r *TypeRegistry) Len() int {
	return len(r.entries)
}
