package coil

import "testing"

func TestEmptyObjectEncodeRoundTrip(t *testing.T) {
	obj := NewObject(ObjectFile)
	data := obj.Encode()

	if len(data) != HeaderSize {
		t.Fatalf("empty object encoded length = %d, want %d", len(data), HeaderSize)
	}
	if string(data[0:4]) != "COIL" {
		t.Fatalf("magic = %q, want %q", data[0:4], "COIL")
	}

	decoded, err := DecodeObject(data)
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	if decoded.Kind != ObjectFile {
		t.Fatalf("Kind = %v, want ObjectFile", decoded.Kind)
	}
	if decoded.Header.FileSize != uint32(HeaderSize) {
		t.Fatalf("FileSize = %d, want %d", decoded.Header.FileSize, HeaderSize)
	}
	if len(decoded.Symbols) != 0 || len(decoded.Sections) != 0 || len(decoded.Relocations) != 0 {
		t.Fatalf("expected every table empty, got %+v", decoded)
	}
}

func TestObjectAddAndFindSymbol(t *testing.T) {
	obj := NewObject(ObjectFile)
	idx := obj.AddSymbol(Symbol{Name: "main", Attributes: SymbolGlobal | SymbolFunction})
	if idx != 0 {
		t.Fatalf("first symbol index = %d, want 0", idx)
	}
	found, ok := obj.FindSymbol("main")
	if !ok || found != 0 {
		t.Fatalf("FindSymbol(\"main\") = %d, %v, want 0, true", found, ok)
	}
	if _, ok := obj.FindSymbol("missing"); ok {
		t.Fatal("FindSymbol of an absent name should fail")
	}
}

func TestObjectSectionAndInstructionRoundTrip(t *testing.T) {
	obj := NewObject(ObjectFile)
	secIdx := obj.AddSection(Section{Attributes: SectionExecutable | SectionReadable, Alignment: 4})

	instr := NewInstruction(OpADD, NewRegisterOperand(1, RGPType), NewRegisterOperand(2, RGPType), NewRegisterOperand(3, RGPType))
	obj.AddInstruction(secIdx, instr)

	if obj.Section(secIdx).Size != uint32(instr.EncodedSize()) {
		t.Fatalf("section size = %d, want %d", obj.Section(secIdx).Size, instr.EncodedSize())
	}

	data := obj.Encode()
	decoded, err := DecodeObject(data)
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	if len(decoded.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(decoded.Sections))
	}

	roundInstr, _, err := DecodeInstruction(decoded.Sections[0].Data, 0)
	if err != nil {
		t.Fatalf("DecodeInstruction on round-tripped section data: %v", err)
	}
	if roundInstr.Opcode != OpADD || len(roundInstr.Operands) != 3 {
		t.Fatalf("round-tripped instruction = %+v", roundInstr)
	}
}

func TestObjectRelocationRoundTrip(t *testing.T) {
	obj := NewObject(ObjectFile)
	obj.AddSymbol(Symbol{Name: "x"})
	obj.AddSection(Section{})
	obj.AddRelocation(Relocation{Offset: 4, SymbolIndex: 0, SectionIndex: 0, Type: RelocAbsolute, Size: 4})

	data := obj.Encode()
	decoded, err := DecodeObject(data)
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	if len(decoded.Relocations) != 1 {
		t.Fatalf("len(Relocations) = %d, want 1", len(decoded.Relocations))
	}
	if decoded.Header.RelocOffset == 0 {
		t.Fatal("RelocOffset should be non-zero when relocations are present")
	}
}

func TestObjectNoRelocationTableWhenEmpty(t *testing.T) {
	obj := NewObject(ObjectFile)
	obj.AddSymbol(Symbol{Name: "x"})
	data := obj.Encode()
	decoded, err := DecodeObject(data)
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	if decoded.Header.RelocOffset != 0 {
		t.Fatalf("RelocOffset = %d, want 0 when no relocations exist", decoded.Header.RelocOffset)
	}
}

func TestOutputObjectEncodeDecode(t *testing.T) {
	obj := NewObject(OutputObject)
	obj.AddSymbol(Symbol{Name: "entry"})
	data := obj.Encode()
	if string(data[0:4]) != "CILO" {
		t.Fatalf("magic = %q, want %q", data[0:4], "CILO")
	}
	decoded, err := DecodeObject(data)
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	if decoded.Kind != OutputObject {
		t.Fatalf("Kind = %v, want OutputObject", decoded.Kind)
	}
	if len(decoded.Symbols) != 1 || decoded.Symbols[0].Name != "entry" {
		t.Fatalf("decoded symbols = %+v", decoded.Symbols)
	}
}

func TestObjectFindSymbolReflectsUpdateSymbol(t *testing.T) {
	obj := NewObject(ObjectFile)
	idx := obj.AddSymbol(Symbol{Name: "old"})

	if _, ok := obj.FindSymbol("old"); !ok {
		t.Fatal("FindSymbol(\"old\") should succeed before any rename")
	}

	obj.UpdateSymbol(idx, Symbol{Name: "new"})

	if _, ok := obj.FindSymbol("old"); ok {
		t.Fatal("FindSymbol(\"old\") should fail after the symbol is renamed")
	}
	found, ok := obj.FindSymbol("new")
	if !ok || found != idx {
		t.Fatalf("FindSymbol(\"new\") = %d, %v, want %d, true", found, ok, idx)
	}
}

func TestObjectFindSymbolAfterAddSymbolPostLookup(t *testing.T) {
	obj := NewObject(ObjectFile)
	obj.AddSymbol(Symbol{Name: "first"})
	if _, ok := obj.FindSymbol("first"); !ok {
		t.Fatal("FindSymbol(\"first\") should succeed")
	}

	// Index already built by the lookup above; AddSymbol must keep it current.
	idx := obj.AddSymbol(Symbol{Name: "second"})
	found, ok := obj.FindSymbol("second")
	if !ok || found != idx {
		t.Fatalf("FindSymbol(\"second\") = %d, %v, want %d, true", found, ok, idx)
	}
}

func TestObjectAddInstructionBytesUsesArena(t *testing.T) {
	obj := NewObject(ObjectFile)
	secIdx := obj.AddSection(Section{Attributes: SectionExecutable})
	obj.AddInstructionBytes(secIdx, []byte{1, 2})
	obj.AddInstructionBytes(secIdx, []byte{3, 4})

	if got, want := obj.Section(secIdx).Data, []byte{1, 2, 3, 4}; string(got) != string(want) {
		t.Fatalf("section data = % X, want % X", got, want)
	}
	if obj.arena == nil {
		t.Fatal("AddInstructionBytes should create the object's arena on first use")
	}
	if obj.arena.Used() == 0 {
		t.Fatal("object's arena should have allocated bytes")
	}
}

func TestObjectPanicsOnOutOfRangeIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Symbol(index) on an out-of-range index should panic")
		}
	}()
	obj := NewObject(ObjectFile)
	obj.Symbol(0)
}

func TestObjectUpdateSectionData(t *testing.T) {
	obj := NewObject(ObjectFile)
	idx := obj.AddSection(Section{})
	obj.UpdateSectionData(idx, []byte{1, 2, 3})
	if obj.Section(idx).Size != 3 {
		t.Fatalf("Size after UpdateSectionData = %d, want 3", obj.Section(idx).Size)
	}
	obj.ClearSectionData(idx)
	if obj.Section(idx).Size != 0 || obj.Section(idx).Data != nil {
		t.Fatalf("section after ClearSectionData = %+v", obj.Section(idx))
	}
}
