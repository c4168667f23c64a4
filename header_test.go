package coil

import "testing"

func TestDefaultCoilHeaderFlags(t *testing.T) {
	h := DefaultCoilHeader(ObjectFile)
	if h.Flags != FlagObjectFile {
		t.Fatalf("Flags = 0x%02X, want FlagObjectFile", h.Flags)
	}
	h2 := DefaultCoilHeader(OutputObject)
	if h2.Flags != FlagOutputObject {
		t.Fatalf("Flags = 0x%02X, want FlagOutputObject", h2.Flags)
	}
}

func TestCoilHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := DefaultCoilHeader(ObjectFile)
	h.SymbolOffset = 28
	h.SectionOffset = 40
	h.FileSize = 100

	b := NewGrowBuffer("header")
	h.Encode(b)
	if b.Len() != HeaderSize {
		t.Fatalf("encoded header length = %d, want %d", b.Len(), HeaderSize)
	}

	decoded, next, err := DecodeCoilHeader(b.Bytes(), 0)
	if err != nil {
		t.Fatalf("DecodeCoilHeader: %v", err)
	}
	if next != HeaderSize {
		t.Fatalf("next = %d, want %d", next, HeaderSize)
	}
	if decoded.SymbolOffset != 28 || decoded.SectionOffset != 40 || decoded.FileSize != 100 {
		t.Fatalf("decoded header = %+v, want matching offsets", decoded)
	}
}

func TestDecodeCoilHeaderRejectsBadMagic(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data, []byte("CILO"))
	if _, _, err := DecodeCoilHeader(data, 0); err == nil {
		t.Fatal("decoding a CILO-magic buffer as a CoilHeader should fail")
	}
}

func TestDecodeCoilHeaderRejectsShortBuffer(t *testing.T) {
	if _, _, err := DecodeCoilHeader(make([]byte, HeaderSize-1), 0); err == nil {
		t.Fatal("decoding a too-short buffer should fail")
	}
}

func TestCiloHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := CiloHeader{Major: 1, MetaOffset: 12, FileSize: 24}
	b := NewGrowBuffer("cilo")
	h.Encode(b)
	if b.Len() != CiloHeaderSize {
		t.Fatalf("encoded CILO header length = %d, want %d", b.Len(), CiloHeaderSize)
	}
	decoded, _, err := DecodeCiloHeader(b.Bytes(), 0)
	if err != nil {
		t.Fatalf("DecodeCiloHeader: %v", err)
	}
	if decoded.MetaOffset != 12 || decoded.FileSize != 24 {
		t.Fatalf("decoded = %+v", decoded)
	}
}
