package coil

// RelocationType enumerates how a relocation's addend is applied.
type RelocationType uint8

const (
	RelocAbsolute        RelocationType = 0x01
	RelocRelative        RelocationType = 0x02
	RelocPCRelative      RelocationType = 0x03
	RelocSectionRelative RelocationType = 0x04
	RelocSymbolAddend    RelocationType = 0x05
)

func (t RelocationType) Valid() bool {
	switch t {
	case RelocAbsolute, RelocRelative, RelocPCRelative, RelocSectionRelative, RelocSymbolAddend:
		return true
	default:
		return false
	}
}

// Relocation is one entry of an Object's relocation table.
type Relocation struct {
	Offset       uint32
	SymbolIndex  uint16
	SectionIndex uint16
	Type         RelocationType
	Size         uint8
}

// SizeValid reports whether r.Size is one of the widths a relocation patch
// can actually be applied at.
func (r Relocation) SizeValid() bool {
	switch r.Size {
	case 1, 2, 4, 8:
		return true
	default:
		return false
	}
}

// Encode appends the wire form of r to b: offset:u32, symbol_index:u16,
// section_index:u16, type:u8, size:u8.
func (r Relocation) Encode(b *GrowBuffer) {
	PutU32(b, r.Offset, LittleEndian)
	PutU16(b, r.SymbolIndex, LittleEndian)
	PutU16(b, r.SectionIndex, LittleEndian)
	PutU8(b, uint8(r.Type))
	PutU8(b, r.Size)
}

// DecodeRelocation reads one Relocation from data at offset.
func DecodeRelocation(data []byte, offset int) (Relocation, int, error) {
	var r Relocation
	var err error
	r.Offset, offset, err = ReadU32(data, offset, LittleEndian)
	if err != nil {
		return Relocation{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding relocation offset")
	}
	r.SymbolIndex, offset, err = ReadU16(data, offset, LittleEndian)
	if err != nil {
		return Relocation{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding relocation symbol index")
	}
	r.SectionIndex, offset, err = ReadU16(data, offset, LittleEndian)
	if err != nil {
		return Relocation{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding relocation section index")
	}
	typeByte, offset2, err := ReadU8(data, offset)
	if err != nil {
		return Relocation{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding relocation type")
	}
	r.Type = RelocationType(typeByte)
	offset = offset2
	r.Size, offset, err = ReadU8(data, offset)
	if err != nil {
		return Relocation{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding relocation size")
	}
	return r, offset, nil
}
