package coil

// Section flag bits (Section.Attributes).
const (
	SectionExecutable    uint32 = 0x01
	SectionWritable      uint32 = 0x02
	SectionReadable      uint32 = 0x04
	SectionInitialized   uint32 = 0x08
	SectionUninitialized uint32 = 0x10
	SectionLinked        uint32 = 0x20
	SectionDiscardable   uint32 = 0x40
)

// Section is one entry of an Object's section table, with its raw bytes
// carried alongside the table metadata rather than lazily re-read from a
// backing file.
type Section struct {
	NameIndex     uint16
	Attributes    uint32
	Offset        uint32
	Size          uint32
	Address       uint32
	Alignment     uint32
	ProcessorType uint8
	Data          []byte
}

// Encode appends the wire form of s to b: name_index:u16, attributes:u32,
// offset:u32, size:u32, address:u32, alignment:u32, processor_type:u8,
// followed by the raw section bytes (Size of them; Data is truncated or
// zero-padded to Size).
func (s Section) Encode(b *GrowBuffer) {
	PutU16(b, s.NameIndex, LittleEndian)
	PutU32(b, s.Attributes, LittleEndian)
	PutU32(b, s.Offset, LittleEndian)
	PutU32(b, s.Size, LittleEndian)
	PutU32(b, s.Address, LittleEndian)
	PutU32(b, s.Alignment, LittleEndian)
	PutU8(b, s.ProcessorType)
	data := s.Data
	if uint32(len(data)) > s.Size {
		data = data[:s.Size]
	}
	b.Write(data)
	if pad := int(s.Size) - len(data); pad > 0 {
		b.Write(make([]byte, pad))
	}
}

// DecodeSection reads one Section from data at offset.
func DecodeSection(data []byte, offset int) (Section, int, error) {
	var s Section
	var err error
	s.NameIndex, offset, err = ReadU16(data, offset, LittleEndian)
	if err != nil {
		return Section{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding section name index")
	}
	s.Attributes, offset, err = ReadU32(data, offset, LittleEndian)
	if err != nil {
		return Section{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding section attributes")
	}
	s.Offset, offset, err = ReadU32(data, offset, LittleEndian)
	if err != nil {
		return Section{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding section offset")
	}
	s.Size, offset, err = ReadU32(data, offset, LittleEndian)
	if err != nil {
		return Section{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding section size")
	}
	s.Address, offset, err = ReadU32(data, offset, LittleEndian)
	if err != nil {
		return Section{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding section address")
	}
	s.Alignment, offset, err = ReadU32(data, offset, LittleEndian)
	if err != nil {
		return Section{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding section alignment")
	}
	s.ProcessorType, offset, err = ReadU8(data, offset)
	if err != nil {
		return Section{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding section processor type")
	}
	s.Data, offset, err = ReadBytes(data, offset, int(s.Size))
	if err != nil {
		return Section{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding section data (%d bytes)", s.Size)
	}
	return s, offset, nil
}

func (s Section) IsExecutable() bool    { return s.Attributes&SectionExecutable != 0 }
func (s Section) IsWritable() bool      { return s.Attributes&SectionWritable != 0 }
func (s Section) IsReadable() bool      { return s.Attributes&SectionReadable != 0 }
func (s Section) IsInitialized() bool   { return s.Attributes&SectionInitialized != 0 }
func (s Section) IsUninitialized() bool { return s.Attributes&SectionUninitialized != 0 }
func (s Section) IsLinked() bool        { return s.Attributes&SectionLinked != 0 }
func (s Section) IsDiscardable() bool   { return s.Attributes&SectionDiscardable != 0 }

// IsAligned reports whether s.Alignment is zero or a power of two, the
// constraint checked by the section-table validator.
func (s Section) IsAligned() bool {
	return s.Alignment == 0 || s.Alignment&(s.Alignment-1) == 0
}
