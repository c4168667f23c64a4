package coil

// Format flags (header.flags bits).
const (
	FlagObjectFile   uint8 = 0x01
	FlagOutputObject uint8 = 0x02
	FlagDebugInfo    uint8 = 0x04
	FlagBigEndian    uint8 = 0x08
)

// HeaderSize is the fixed wire size of CoilHeader: 4 (magic) + 4 (version
// bytes + flags) + 4*4 (offsets) + 4 (file_size) = 28 bytes.
const HeaderSize = 28

// CiloHeaderSize is the fixed wire size of CiloHeader.
const CiloHeaderSize = 24

var coilMagic = [4]byte{'C', 'O', 'I', 'L'}
var ciloMagic = [4]byte{'C', 'I', 'L', 'O'}

// CoilHeader is the 28-byte object header.
type CoilHeader struct {
	Major, Minor, Patch uint8
	Flags               uint8
	SymbolOffset        uint32
	SectionOffset       uint32
	RelocOffset         uint32 // 0 = none
	DebugOffset         uint32 // 0 = none
	FileSize            uint32
}

// DefaultCoilHeader returns a header with the given kind's default flags and
// every offset zeroed, ready for an Object under construction.
func DefaultCoilHeader(kind ObjectKind) CoilHeader {
	h := CoilHeader{Major: 1, Minor: 0, Patch: 0}
	switch kind {
	case ObjectFile:
		h.Flags = FlagObjectFile
	case OutputObject:
		h.Flags = FlagOutputObject
	}
	return h
}

// IsValid reports whether h's magic would round-trip (used post-decode; the
// magic itself is checked before a CoilHeader is constructed by Decode).
func (h CoilHeader) IsValid() bool {
	return true
}

// Encode appends the wire form of h to b. All fields are little-endian.
//
// The header carries a big-endian flag bit (FlagBigEndian), but Encode does
// not branch on it: the output is little-endian whether or not the bit is
// set, and decoding reads it back as an ordinary flag bit. TODO: decide
// whether a future version should branch on it here too.
func (h CoilHeader) Encode(b *GrowBuffer) {
	b.Write(coilMagic[:])
	PutU8(b, h.Major)
	PutU8(b, h.Minor)
	PutU8(b, h.Patch)
	PutU8(b, h.Flags)
	// FlagBigEndian is accepted on decode but does not change this encoding;
	// see the doc comment above.
	PutU32(b, h.SymbolOffset, LittleEndian)
	PutU32(b, h.SectionOffset, LittleEndian)
	PutU32(b, h.RelocOffset, LittleEndian)
	PutU32(b, h.DebugOffset, LittleEndian)
	PutU32(b, h.FileSize, LittleEndian)
}

// DecodeCoilHeader reads a 28-byte header from data at offset. Fails with
// ErrKindInvalidFormat if the magic does not match "COIL".
func DecodeCoilHeader(data []byte, offset int) (CoilHeader, int, error) {
	if offset+HeaderSize > len(data) {
		return CoilHeader{}, offset, newErr(ErrKindInvalidFormat, "buffer too short for header")
	}
	if data[offset] != coilMagic[0] || data[offset+1] != coilMagic[1] ||
		data[offset+2] != coilMagic[2] || data[offset+3] != coilMagic[3] {
		return CoilHeader{}, offset, newErr(ErrKindInvalidFormat, "bad magic, expected \"COIL\"")
	}
	cursor := offset + 4
	var h CoilHeader
	h.Major, cursor, _ = ReadU8(data, cursor)
	h.Minor, cursor, _ = ReadU8(data, cursor)
	h.Patch, cursor, _ = ReadU8(data, cursor)
	h.Flags, cursor, _ = ReadU8(data, cursor)
	h.SymbolOffset, cursor, _ = ReadU32(data, cursor, LittleEndian)
	h.SectionOffset, cursor, _ = ReadU32(data, cursor, LittleEndian)
	h.RelocOffset, cursor, _ = ReadU32(data, cursor, LittleEndian)
	h.DebugOffset, cursor, _ = ReadU32(data, cursor, LittleEndian)
	var err error
	h.FileSize, cursor, err = readU32Checked(data, cursor)
	if err != nil {
		return CoilHeader{}, offset, err
	}
	return h, cursor, nil
}

func readU32Checked(data []byte, offset int) (uint32, int, error) {
	v, next, err := ReadU32(data, offset, LittleEndian)
	if err != nil {
		return 0, offset, wrapErr(ErrKindInvalidFormat, err, "decoding header field")
	}
	return v, next, nil
}

// CiloHeader is the 24-byte sibling output header ("CILO"), with meta_offset
// in place of reloc_offset/debug_offset. meta_offset's semantics are
// unspecified upstream; it is treated here as an opaque byte offset with no
// further interpretation.
type CiloHeader struct {
	Major, Minor, Patch uint8
	Flags               uint8
	SymbolOffset        uint32
	SectionOffset       uint32
	MetaOffset          uint32
	FileSize            uint32
}

// Encode appends the wire form of h to b.
func (h CiloHeader) Encode(b *GrowBuffer) {
	b.Write(ciloMagic[:])
	PutU8(b, h.Major)
	PutU8(b, h.Minor)
	PutU8(b, h.Patch)
	PutU8(b, h.Flags)
	PutU32(b, h.SymbolOffset, LittleEndian)
	PutU32(b, h.SectionOffset, LittleEndian)
	PutU32(b, h.MetaOffset, LittleEndian)
	PutU32(b, h.FileSize, LittleEndian)
}

// DecodeCiloHeader reads a 24-byte CILO header from data at offset.
func DecodeCiloHeader(data []byte, offset int) (CiloHeader, int, error) {
	if offset+CiloHeaderSize > len(data) {
		return CiloHeader{}, offset, newErr(ErrKindInvalidFormat, "buffer too short for CILO header")
	}
	if data[offset] != ciloMagic[0] || data[offset+1] != ciloMagic[1] ||
		data[offset+2] != ciloMagic[2] || data[offset+3] != ciloMagic[3] {
		return CiloHeader{}, offset, newErr(ErrKindInvalidFormat, "bad magic, expected \"CILO\"")
	}
	cursor := offset + 4
	var h CiloHeader
	h.Major, cursor, _ = ReadU8(data, cursor)
	h.Minor, cursor, _ = ReadU8(data, cursor)
	h.Patch, cursor, _ = ReadU8(data, cursor)
	h.Flags, cursor, _ = ReadU8(data, cursor)
	h.SymbolOffset, cursor, _ = ReadU32(data, cursor, LittleEndian)
	h.SectionOffset, cursor, _ = ReadU32(data, cursor, LittleEndian)
	h.MetaOffset, cursor, _ = ReadU32(data, cursor, LittleEndian)
	var err error
	h.FileSize, cursor, err = readU32Checked(data, cursor)
	if err != nil {
		return CiloHeader{}, offset, err
	}
	return h, cursor, nil
}
