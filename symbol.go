package coil

// Symbol flag bits (Symbol.Attributes).
const (
	SymbolGlobal   uint32 = 0x0001
	SymbolWeak     uint32 = 0x0002
	SymbolLocal    uint32 = 0x0004
	SymbolFunction uint32 = 0x0008
	SymbolData     uint32 = 0x0010
	SymbolAbsolute uint32 = 0x0020
	SymbolCommon   uint32 = 0x0040
	SymbolExported uint32 = 0x0080
)

// Symbol is one entry of an Object's symbol table.
type Symbol struct {
	Name          string
	Attributes    uint32
	Value         uint32
	SectionIndex  uint16
	ProcessorType uint8
}

// Encode appends the wire form of s to b: name_length:u16, name bytes,
// attributes:u32, value:u32, section_index:u16, processor_type:u8.
func (s Symbol) Encode(b *GrowBuffer) {
	PutLengthPrefixedString(b, s.Name, LittleEndian)
	PutU32(b, s.Attributes, LittleEndian)
	PutU32(b, s.Value, LittleEndian)
	PutU16(b, s.SectionIndex, LittleEndian)
	PutU8(b, s.ProcessorType)
}

// DecodeSymbol reads one Symbol from data at offset.
func DecodeSymbol(data []byte, offset int) (Symbol, int, error) {
	name, next, err := ReadLengthPrefixedString(data, offset, LittleEndian)
	if err != nil {
		return Symbol{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding symbol name")
	}
	var s Symbol
	s.Name = name
	s.Attributes, next, err = ReadU32(data, next, LittleEndian)
	if err != nil {
		return Symbol{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding symbol attributes")
	}
	s.Value, next, err = ReadU32(data, next, LittleEndian)
	if err != nil {
		return Symbol{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding symbol value")
	}
	s.SectionIndex, next, err = ReadU16(data, next, LittleEndian)
	if err != nil {
		return Symbol{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding symbol section index")
	}
	s.ProcessorType, next, err = ReadU8(data, next)
	if err != nil {
		return Symbol{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding symbol processor type")
	}
	return s, next, nil
}

// IsGlobal, IsWeak etc. read the corresponding attribute bit.
func (s Symbol) IsGlobal() bool   { return s.Attributes&SymbolGlobal != 0 }
func (s Symbol) IsWeak() bool     { return s.Attributes&SymbolWeak != 0 }
func (s Symbol) IsLocal() bool    { return s.Attributes&SymbolLocal != 0 }
func (s Symbol) IsFunction() bool { return s.Attributes&SymbolFunction != 0 }
func (s Symbol) IsData() bool     { return s.Attributes&SymbolData != 0 }
func (s Symbol) IsAbsolute() bool { return s.Attributes&SymbolAbsolute != 0 }
func (s Symbol) IsCommon() bool   { return s.Attributes&SymbolCommon != 0 }
func (s Symbol) IsExported() bool { return s.Attributes&SymbolExported != 0 }
