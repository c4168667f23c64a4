package coil

import "fmt"

// ObjectKind distinguishes a regular COIL object ("COIL" magic) from a
// linker/assembler output object ("CILO" magic, with a CiloHeader).
type ObjectKind int

const (
	ObjectFile ObjectKind = iota
	OutputObject
)

// Object is an in-memory COIL object: a header plus symbol, section and
// relocation tables. Sections carry their data resident. There is no
// separate string table: each Symbol stores its own name directly (per the
// Open Question decision in DESIGN.md), and Section.NameIndex is the index
// of the symbol table entry that names the section; Validate reports a
// NameIndex that is not below the symbol count.
type Object struct {
	Kind        ObjectKind
	Header      CoilHeader
	OutHeader   CiloHeader
	Symbols     []Symbol
	Sections    []Section
	Relocations []Relocation

	symIndex *SymbolIndex // lazily built/maintained by FindSymbol and AddSymbol
	arena    *Arena       // lazily created, backs section data growth
}

// NewObject creates an empty object of the given kind with a default header.
func NewObject(kind ObjectKind) *Object {
	return &Object{
		Kind:   kind,
		Header: DefaultCoilHeader(kind),
	}
}

// AddSymbol appends sym to the symbol table and returns its index.
func (o *Object) AddSymbol(sym Symbol) uint16 {
	o.Symbols = append(o.Symbols, sym)
	idx := uint16(len(o.Symbols) - 1)
	if o.symIndex != nil && sym.Name != "" {
		o.symIndex.Set(sym.Name, idx)
	}
	return idx
}

// AddSection appends sec to the section table and returns its index.
func (o *Object) AddSection(sec Section) uint16 {
	o.Sections = append(o.Sections, sec)
	return uint16(len(o.Sections) - 1)
}

// AddRelocation appends r to the relocation table.
func (o *Object) AddRelocation(r Relocation) {
	o.Relocations = append(o.Relocations, r)
}

// Symbol returns the symbol at index. Panics on an out-of-range index: a
// caller-supplied table index that doesn't exist is a programming error,
// not a recoverable I/O condition.
func (o *Object) Symbol(index uint16) Symbol {
	if int(index) >= len(o.Symbols) {
		panic(fmt.Sprintf("coil: symbol index %d out of range (%d symbols)", index, len(o.Symbols)))
	}
	return o.Symbols[index]
}

// Section returns the section at index. Panics on an out-of-range index.
func (o *Object) Section(index uint16) Section {
	if int(index) >= len(o.Sections) {
		panic(fmt.Sprintf("coil: section index %d out of range (%d sections)", index, len(o.Sections)))
	}
	return o.Sections[index]
}

// Relocation returns the relocation at index. Panics on an out-of-range index.
func (o *Object) Relocation(index uint16) Relocation {
	if int(index) >= len(o.Relocations) {
		panic(fmt.Sprintf("coil: relocation index %d out of range (%d relocations)", index, len(o.Relocations)))
	}
	return o.Relocations[index]
}

// UpdateSymbol replaces the symbol at index. Panics on an out-of-range index.
func (o *Object) UpdateSymbol(index uint16, sym Symbol) {
	if int(index) >= len(o.Symbols) {
		panic(fmt.Sprintf("coil: symbol index %d out of range (%d symbols)", index, len(o.Symbols)))
	}
	if o.symIndex != nil {
		if old := o.Symbols[index].Name; old != "" && old != sym.Name {
			o.symIndex.Delete(old)
		}
		if sym.Name != "" {
			o.symIndex.Set(sym.Name, index)
		}
	}
	o.Symbols[index] = sym
}

// UpdateSection replaces the section at index. Panics on an out-of-range index.
func (o *Object) UpdateSection(index uint16, sec Section) {
	if int(index) >= len(o.Sections) {
		panic(fmt.Sprintf("coil: section index %d out of range (%d sections)", index, len(o.Sections)))
	}
	o.Sections[index] = sec
}

// dataArena returns o's section-data arena, creating it on first use. All
// section bytes added via AddInstructionBytes/AddInstruction/
// UpdateSectionData are copied through this arena rather than handed to
// the Go allocator directly, one bump-allocated region per Object.
func (o *Object) dataArena() *Arena {
	if o.arena == nil {
		o.arena = NewDefaultArena("object-sections", ArenaFunction)
	}
	return o.arena
}

// UpdateSectionData replaces the data of the section at index and updates
// its Size field to match.
func (o *Object) UpdateSectionData(index uint16, data []byte) {
	if int(index) >= len(o.Sections) {
		panic(fmt.Sprintf("coil: section index %d out of range (%d sections)", index, len(o.Sections)))
	}
	buf := o.dataArena().Alloc(len(data))
	copy(buf, data)
	o.Sections[index].Data = buf
	o.Sections[index].Size = uint32(len(buf))
}

// SetSectionSize overrides the Size field of the section at index without
// touching its Data (used when Size intentionally diverges from len(Data),
// e.g. an UNINITIALIZED section).
func (o *Object) SetSectionSize(index uint16, size uint32) {
	if int(index) >= len(o.Sections) {
		panic(fmt.Sprintf("coil: section index %d out of range (%d sections)", index, len(o.Sections)))
	}
	o.Sections[index].Size = size
}

// SetSymbolSectionIndex updates the section a symbol belongs to.
func (o *Object) SetSymbolSectionIndex(symbolIndex, sectionIndex uint16) {
	if int(symbolIndex) >= len(o.Symbols) {
		panic(fmt.Sprintf("coil: symbol index %d out of range (%d symbols)", symbolIndex, len(o.Symbols)))
	}
	o.Symbols[symbolIndex].SectionIndex = sectionIndex
}

// FindSymbol returns the index of the symbol named name, or false if none
// exists. Lookups go through a lazily-built SymbolIndex rather than a
// linear scan, so large symbol tables resolve in O(1) after the first
// call.
func (o *Object) FindSymbol(name string) (uint16, bool) {
	if o.symIndex == nil {
		o.symIndex = BuildSymbolIndex(o)
	}
	return o.symIndex.Get(name)
}

// SymbolCount, SectionCount and RelocationCount return the current table
// lengths.
func (o *Object) SymbolCount() uint16     { return uint16(len(o.Symbols)) }
func (o *Object) SectionCount() uint16    { return uint16(len(o.Sections)) }
func (o *Object) RelocationCount() uint16 { return uint16(len(o.Relocations)) }

// ClearSectionData empties the data of the section at index, setting its
// Size to zero.
func (o *Object) ClearSectionData(index uint16) {
	if int(index) >= len(o.Sections) {
		panic(fmt.Sprintf("coil: section index %d out of range (%d sections)", index, len(o.Sections)))
	}
	o.Sections[index].Data = nil
	o.Sections[index].Size = 0
}

// AddInstructionBytes appends raw, already-encoded instruction bytes to the
// section at sectionIndex. Exposed alongside AddInstruction because callers
// that assemble instruction bytes themselves (e.g. a transcoding pass) don't
// need to round-trip through an Instruction value.
func (o *Object) AddInstructionBytes(sectionIndex uint16, raw []byte) {
	if int(sectionIndex) >= len(o.Sections) {
		panic(fmt.Sprintf("coil: section index %d out of range (%d sections)", sectionIndex, len(o.Sections)))
	}
	sec := &o.Sections[sectionIndex]
	buf := o.dataArena().Alloc(len(sec.Data) + len(raw))
	n := copy(buf, sec.Data)
	copy(buf[n:], raw)
	sec.Data = buf
	sec.Size = uint32(len(sec.Data))
}

// AddInstruction encodes instr and appends it to the section at
// sectionIndex. This is the canonical path; AddInstructionBytes exists for
// callers that already have encoded bytes in hand.
func (o *Object) AddInstruction(sectionIndex uint16, instr Instruction) {
	o.AddInstructionBytes(sectionIndex, instr.EncodeBytes())
}

// Encode serializes o to its wire form. Table offsets are computed in a
// fixed order: header, then symbol table, then section table, then
// relocation table. Each table's u32 entry-count prefix is omitted
// entirely when that table is empty, so an object with no symbols, no
// sections and no relocations serializes to exactly the header size.
func (o *Object) Encode() []byte {
	headerSize := HeaderSize
	if o.Kind == OutputObject {
		headerSize = CiloHeaderSize
	}

	symTable := NewGrowBuffer("symbol-table")
	if len(o.Symbols) > 0 {
		PutU32(symTable, uint32(len(o.Symbols)), LittleEndian)
		for _, s := range o.Symbols {
			s.Encode(symTable)
		}
	}

	secTable := NewGrowBuffer("section-table")
	if len(o.Sections) > 0 {
		PutU32(secTable, uint32(len(o.Sections)), LittleEndian)
		for _, s := range o.Sections {
			s.Encode(secTable)
		}
	}

	relTable := NewGrowBuffer("relocation-table")
	if len(o.Relocations) > 0 {
		PutU32(relTable, uint32(len(o.Relocations)), LittleEndian)
		for _, r := range o.Relocations {
			r.Encode(relTable)
		}
	}

	symOffset := uint32(headerSize)
	secOffset := symOffset + uint32(symTable.Len())
	relOffset := uint32(0)
	fileEnd := secOffset + uint32(secTable.Len())
	if len(o.Relocations) > 0 {
		relOffset = fileEnd
		fileEnd += uint32(relTable.Len())
	}

	out := NewGrowBufferSize("object", int(fileEnd))

	switch o.Kind {
	case OutputObject:
		h := o.OutHeader
		h.SymbolOffset = symOffset
		h.SectionOffset = secOffset
		h.FileSize = fileEnd
		h.Encode(out)
	default:
		h := o.Header
		h.SymbolOffset = symOffset
		h.SectionOffset = secOffset
		h.RelocOffset = relOffset
		h.FileSize = fileEnd
		h.Encode(out)
	}

	out.Write(symTable.Bytes())
	out.Write(secTable.Bytes())
	if len(o.Relocations) > 0 {
		out.Write(relTable.Bytes())
	}
	out.Commit()
	return out.Bytes()
}

// DecodeObject reconstructs an Object from its wire form, following the
// same offset layout Encode produces: header, then a u32 count + that many
// entries at each of symbol_offset and section_offset (omitted entirely
// when the table is empty), then (if reloc offset is non-zero) a u32 count
// + entries at reloc_offset.
func DecodeObject(data []byte) (*Object, error) {
	if len(data) < 4 {
		return nil, newErr(ErrKindInvalidFormat, "buffer too short to contain a magic number")
	}

	o := &Object{}
	if data[0] == ciloMagic[0] && data[1] == ciloMagic[1] && data[2] == ciloMagic[2] && data[3] == ciloMagic[3] {
		h, _, err := DecodeCiloHeader(data, 0)
		if err != nil {
			return nil, err
		}
		if int(h.FileSize) > len(data) {
			return nil, newErr(ErrKindInvalidFormat, "header file_size %d exceeds buffer length %d", h.FileSize, len(data))
		}
		o.Kind = OutputObject
		o.OutHeader = h
		if err := decodeTable(data, int(h.SymbolOffset), int(h.SectionOffset), func(cursor int) (int, error) {
			s, next, err := DecodeSymbol(data, cursor)
			if err != nil {
				return cursor, err
			}
			o.Symbols = append(o.Symbols, s)
			return next, nil
		}); err != nil {
			return nil, err
		}
		if err := decodeTable(data, int(h.SectionOffset), int(h.FileSize), func(cursor int) (int, error) {
			s, next, err := DecodeSection(data, cursor)
			if err != nil {
				return cursor, err
			}
			o.Sections = append(o.Sections, s)
			return next, nil
		}); err != nil {
			return nil, err
		}
		return o, nil
	}

	h, _, err := DecodeCoilHeader(data, 0)
	if err != nil {
		return nil, err
	}
	if int(h.FileSize) > len(data) {
		return nil, newErr(ErrKindInvalidFormat, "header file_size %d exceeds buffer length %d", h.FileSize, len(data))
	}
	o.Kind = ObjectFile
	o.Header = h
	sectionEnd := int(h.FileSize)
	if h.RelocOffset > 0 {
		sectionEnd = int(h.RelocOffset)
	}
	if err := decodeTable(data, int(h.SymbolOffset), int(h.SectionOffset), func(cursor int) (int, error) {
		s, next, err := DecodeSymbol(data, cursor)
		if err != nil {
			return cursor, err
		}
		o.Symbols = append(o.Symbols, s)
		return next, nil
	}); err != nil {
		return nil, err
	}
	if err := decodeTable(data, int(h.SectionOffset), sectionEnd, func(cursor int) (int, error) {
		s, next, err := DecodeSection(data, cursor)
		if err != nil {
			return cursor, err
		}
		o.Sections = append(o.Sections, s)
		return next, nil
	}); err != nil {
		return nil, err
	}
	if h.RelocOffset > 0 {
		if err := decodeTable(data, int(h.RelocOffset), int(h.FileSize), func(cursor int) (int, error) {
			r, next, err := DecodeRelocation(data, cursor)
			if err != nil {
				return cursor, err
			}
			o.Relocations = append(o.Relocations, r)
			return next, nil
		}); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// decodeTable reads a u32 entry count at offset, then calls decodeOne that
// many times, threading the cursor through. A table whose span [offset,
// end) is empty carries no count prefix at all (Encode omits it for an
// empty table), so decodeTable treats that as zero entries without
// attempting to read a count.
func decodeTable(data []byte, offset, end int, decodeOne func(cursor int) (int, error)) error {
	if offset >= end {
		return nil
	}
	count, cursor, err := ReadU32(data, offset, LittleEndian)
	if err != nil {
		return wrapErr(ErrKindInvalidFormat, err, "decoding table entry count")
	}
	for i := uint32(0); i < count; i++ {
		cursor, err = decodeOne(cursor)
		if err != nil {
			return err
		}
	}
	return nil
}
